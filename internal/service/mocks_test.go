package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/classplay/classplay-api/internal/domain"
	"github.com/classplay/classplay-api/internal/generation"
	"github.com/classplay/classplay-api/internal/service/auth"
	"github.com/classplay/classplay-api/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserStore mocks store.UserStore. WithTx returns the same mock.
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStore) UpdatePassword(ctx context.Context, id uuid.UUID, password string) error {
	return m.Called(ctx, id, password).Error(0)
}

func (m *MockUserStore) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *MockUserStore) ListByRole(
	ctx context.Context,
	role domain.Role,
	search string,
	page store.Page,
) ([]*domain.User, error) {
	args := m.Called(ctx, role, search, page)
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *MockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserStore) WithTx(*sql.Tx) store.UserStore { return m }

// MockClassStore mocks store.ClassStore.
type MockClassStore struct {
	mock.Mock
}

func (m *MockClassStore) Create(ctx context.Context, class *domain.Class) error {
	return m.Called(ctx, class).Error(0)
}

func (m *MockClassStore) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Class, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Class), args.Error(1)
}

func (m *MockClassStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Class, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]*domain.Class), args.Error(1)
}

func (m *MockClassStore) Update(ctx context.Context, class *domain.Class) error {
	return m.Called(ctx, class).Error(0)
}

func (m *MockClassStore) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return m.Called(ctx, ownerID, id).Error(0)
}

func (m *MockClassStore) WithTx(*sql.Tx) store.ClassStore { return m }

// MockResourceStore mocks store.ResourceStore.
type MockResourceStore struct {
	mock.Mock
}

func (m *MockResourceStore) Create(ctx context.Context, resource *domain.Resource) error {
	return m.Called(ctx, resource).Error(0)
}

func (m *MockResourceStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Resource, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]*domain.Resource), args.Error(1)
}

func (m *MockResourceStore) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return m.Called(ctx, ownerID, id).Error(0)
}

func (m *MockResourceStore) WithTx(*sql.Tx) store.ResourceStore { return m }

// MockUsageStore mocks store.UsageStore.
type MockUsageStore struct {
	mock.Mock
}

func (m *MockUsageStore) Create(ctx context.Context, record *domain.UsageRecord) error {
	return m.Called(ctx, record).Error(0)
}

func (m *MockUsageStore) TeacherTotals(ctx context.Context) ([]domain.TeacherUsage, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.TeacherUsage), args.Error(1)
}

func (m *MockUsageStore) WithTx(*sql.Tx) store.UsageStore { return m }

// MockOrganizationStore mocks store.OrganizationStore.
type MockOrganizationStore struct {
	mock.Mock
}

func (m *MockOrganizationStore) Create(ctx context.Context, org *domain.Organization) error {
	return m.Called(ctx, org).Error(0)
}

func (m *MockOrganizationStore) List(
	ctx context.Context,
	page store.Page,
	now time.Time,
) ([]domain.OrganizationLicense, error) {
	args := m.Called(ctx, page, now)
	return args.Get(0).([]domain.OrganizationLicense), args.Error(1)
}

func (m *MockOrganizationStore) WithTx(*sql.Tx) store.OrganizationStore { return m }

// MockPaymentStore mocks store.PaymentStore.
type MockPaymentStore struct {
	mock.Mock
}

func (m *MockPaymentStore) Create(ctx context.Context, payment *domain.Payment) error {
	return m.Called(ctx, payment).Error(0)
}

func (m *MockPaymentStore) List(ctx context.Context, page store.Page) ([]domain.PaymentView, error) {
	args := m.Called(ctx, page)
	return args.Get(0).([]domain.PaymentView), args.Error(1)
}

func (m *MockPaymentStore) WithTx(*sql.Tx) store.PaymentStore { return m }

// MockAuditStore mocks store.AuditStore.
type MockAuditStore struct {
	mock.Mock
}

func (m *MockAuditStore) Create(ctx context.Context, entry *domain.AuditEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockAuditStore) List(ctx context.Context, page store.Page) ([]*domain.AuditEntry, error) {
	args := m.Called(ctx, page)
	return args.Get(0).([]*domain.AuditEntry), args.Error(1)
}

func (m *MockAuditStore) WithTx(*sql.Tx) store.AuditStore { return m }

// MockGenerator mocks Generator.
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, req generation.Request) (*generation.Result, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*generation.Result), args.Error(1)
}

func (m *MockGenerator) Configured() bool {
	return m.Called().Bool(0)
}

// MockJWTService mocks auth.JWTService.
type MockJWTService struct {
	mock.Mock
}

func (m *MockJWTService) GenerateToken(ctx context.Context, user *domain.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *MockJWTService) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Claims), args.Error(1)
}

// MockPasswordVerifier mocks auth.PasswordVerifier.
type MockPasswordVerifier struct {
	mock.Mock
}

func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	return m.Called(hashedPassword, password).Error(0)
}
