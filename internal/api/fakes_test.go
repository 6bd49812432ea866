package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/classplay/classplay-api/internal/api/shared"
	"github.com/classplay/classplay-api/internal/domain"
	"github.com/classplay/classplay-api/internal/generation"
	"github.com/classplay/classplay-api/internal/service"
	"github.com/classplay/classplay-api/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type fakeAuthService struct {
	LoginFn          func(ctx context.Context, email, password string) (string, *domain.User, error)
	ChangePasswordFn func(ctx context.Context, userID uuid.UUID, current, next string) error
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return f.LoginFn(ctx, email, password)
}

func (f *fakeAuthService) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	return f.ChangePasswordFn(ctx, userID, current, next)
}

type fakeClassService struct {
	ListFn   func(ctx context.Context, ownerID uuid.UUID) ([]*domain.Class, error)
	CreateFn func(ctx context.Context, ownerID uuid.UUID, in service.ClassInput) (*domain.Class, error)
	UpdateFn func(ctx context.Context, ownerID, id uuid.UUID, in service.ClassInput) (*domain.Class, error)
	DeleteFn func(ctx context.Context, ownerID, id uuid.UUID) error
}

func (f *fakeClassService) List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Class, error) {
	return f.ListFn(ctx, ownerID)
}

func (f *fakeClassService) Create(ctx context.Context, ownerID uuid.UUID, in service.ClassInput) (*domain.Class, error) {
	return f.CreateFn(ctx, ownerID, in)
}

func (f *fakeClassService) Update(
	ctx context.Context,
	ownerID, id uuid.UUID,
	in service.ClassInput,
) (*domain.Class, error) {
	return f.UpdateFn(ctx, ownerID, id, in)
}

func (f *fakeClassService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return f.DeleteFn(ctx, ownerID, id)
}

type fakeResourceService struct {
	ListFn   func(ctx context.Context, ownerID uuid.UUID) ([]*domain.Resource, error)
	SaveFn   func(ctx context.Context, ownerID uuid.UUID, title, resourceType, content string) (*domain.Resource, error)
	DeleteFn func(ctx context.Context, ownerID, id uuid.UUID) error
}

func (f *fakeResourceService) List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Resource, error) {
	return f.ListFn(ctx, ownerID)
}

func (f *fakeResourceService) Save(
	ctx context.Context,
	ownerID uuid.UUID,
	title, resourceType, content string,
) (*domain.Resource, error) {
	return f.SaveFn(ctx, ownerID, title, resourceType, content)
}

func (f *fakeResourceService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return f.DeleteFn(ctx, ownerID, id)
}

type fakeGenerationService struct {
	GenerateFn func(
		ctx context.Context,
		userID uuid.UUID,
		req generation.Request,
		classID *uuid.UUID,
	) (*generation.Result, error)
}

func (f *fakeGenerationService) Generate(
	ctx context.Context,
	userID uuid.UUID,
	req generation.Request,
	classID *uuid.UUID,
) (*generation.Result, error) {
	return f.GenerateFn(ctx, userID, req, classID)
}

type fakeAdminService struct {
	CreateTeacherFn      func(ctx context.Context, actorID uuid.UUID, email, fullName, password string) (*domain.User, error)
	ListTeachersFn       func(ctx context.Context, search string, page store.Page) ([]*domain.User, error)
	DeleteTeacherFn      func(ctx context.Context, actorID, id uuid.UUID) error
	AnalyticsFn          func(ctx context.Context) ([]domain.TeacherUsage, error)
	CreateOrganizationFn func(
		ctx context.Context,
		actorID uuid.UUID,
		name, contact string,
		seats int,
		expiresAt time.Time,
	) (*domain.OrganizationLicense, error)
	ListOrganizationsFn func(ctx context.Context, page store.Page) ([]domain.OrganizationLicense, error)
	RecordPaymentFn     func(ctx context.Context, actorID uuid.UUID, in service.PaymentInput) (*domain.Payment, error)
	ListPaymentsFn      func(ctx context.Context, page store.Page) ([]domain.PaymentView, error)
	AuditLogFn          func(ctx context.Context, page store.Page) ([]*domain.AuditEntry, error)
}

func (f *fakeAdminService) CreateTeacher(
	ctx context.Context,
	actorID uuid.UUID,
	email, fullName, password string,
) (*domain.User, error) {
	return f.CreateTeacherFn(ctx, actorID, email, fullName, password)
}

func (f *fakeAdminService) ListTeachers(ctx context.Context, search string, page store.Page) ([]*domain.User, error) {
	return f.ListTeachersFn(ctx, search, page)
}

func (f *fakeAdminService) DeleteTeacher(ctx context.Context, actorID, id uuid.UUID) error {
	return f.DeleteTeacherFn(ctx, actorID, id)
}

func (f *fakeAdminService) Analytics(ctx context.Context) ([]domain.TeacherUsage, error) {
	return f.AnalyticsFn(ctx)
}

func (f *fakeAdminService) CreateOrganization(
	ctx context.Context,
	actorID uuid.UUID,
	name, contact string,
	seats int,
	expiresAt time.Time,
) (*domain.OrganizationLicense, error) {
	return f.CreateOrganizationFn(ctx, actorID, name, contact, seats, expiresAt)
}

func (f *fakeAdminService) ListOrganizations(
	ctx context.Context,
	page store.Page,
) ([]domain.OrganizationLicense, error) {
	return f.ListOrganizationsFn(ctx, page)
}

func (f *fakeAdminService) RecordPayment(
	ctx context.Context,
	actorID uuid.UUID,
	in service.PaymentInput,
) (*domain.Payment, error) {
	return f.RecordPaymentFn(ctx, actorID, in)
}

func (f *fakeAdminService) ListPayments(ctx context.Context, page store.Page) ([]domain.PaymentView, error) {
	return f.ListPaymentsFn(ctx, page)
}

func (f *fakeAdminService) AuditLog(ctx context.Context, page store.Page) ([]*domain.AuditEntry, error) {
	return f.AuditLogFn(ctx, page)
}

func testTeacher() *domain.User {
	return &domain.User{
		ID:       uuid.New(),
		Email:    "teacher@classplay.local",
		FullName: "Anna Petrova",
		Role:     domain.RoleTeacher,
		Status:   domain.UserStatusActive,
	}
}

// newAuthedRequest builds a request carrying user as the authenticated user.
// An empty body sends no body at all.
func newAuthedRequest(method, target, body string, user *domain.User) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if user != nil {
		req = req.WithContext(shared.WithUser(req.Context(), user))
	}
	return req
}

// serveRoute routes req through a chi router with handler mounted at
// pattern, so path parameters resolve as in production.
func serveRoute(method, pattern string, handler http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Method(method, pattern, handler)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}
