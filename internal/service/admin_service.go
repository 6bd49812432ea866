package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/classplay/classplay-api/internal/domain"
	"github.com/classplay/classplay-api/internal/platform/logger"
	"github.com/classplay/classplay-api/internal/store"
	"github.com/google/uuid"
)

// AdminStores groups the stores used by AdminService.
type AdminStores struct {
	Users         store.UserStore
	Usage         store.UsageStore
	Organizations store.OrganizationStore
	Payments      store.PaymentStore
	Audit         store.AuditStore
}

// PaymentInput carries the fields of a payment to record.
type PaymentInput struct {
	OrganizationID uuid.UUID
	AmountCents    int64
	Currency       string
	Method         string
	Period         string
	Status         domain.PaymentStatus
}

// AdminService implements the super admin back office: teacher accounts,
// usage analytics, organization licenses, payments and the audit log.
//
// Every mutation writes its audit entry in the same transaction, so an
// entry exists if and only if the change was committed.
type AdminService struct {
	db     store.TxBeginner
	stores AdminStores
	now    func() time.Time
	logger *slog.Logger
}

// NewAdminService creates an AdminService.
func NewAdminService(db store.TxBeginner, stores AdminStores, logger *slog.Logger) *AdminService {
	return &AdminService{
		db:     db,
		stores: stores,
		now:    time.Now,
		logger: logger.With("component", "admin_service"),
	}
}

// CreateTeacher creates an active teacher account.
func (s *AdminService) CreateTeacher(
	ctx context.Context,
	actorID uuid.UUID,
	email, fullName, password string,
) (*domain.User, error) {
	user, err := domain.NewUser(email, fullName, password, domain.RoleTeacher)
	if err != nil {
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.stores.Users.WithTx(tx).Create(ctx, user); err != nil {
			return err
		}
		return s.audit(ctx, tx, actorID, domain.AuditTeacherCreated, user.Email)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create teacher: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("teacher created",
		"user_id", user.ID,
		"actor_id", actorID)
	return user, nil
}

// ListTeachers returns teacher accounts whose name or email contains search.
func (s *AdminService) ListTeachers(ctx context.Context, search string, page store.Page) ([]*domain.User, error) {
	if err := checkPage(page); err != nil {
		return nil, err
	}
	users, err := s.stores.Users.ListByRole(ctx, domain.RoleTeacher, search, page.Normalize())
	if err != nil {
		return nil, fmt.Errorf("failed to list teachers: %w", err)
	}
	return users, nil
}

// DeleteTeacher removes a teacher account together with its classes,
// resources and usage. Accounts that are not teachers are reported as not
// found.
func (s *AdminService) DeleteTeacher(ctx context.Context, actorID, id uuid.UUID) error {
	if actorID == id {
		return ErrSelfDelete
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		users := s.stores.Users.WithTx(tx)
		user, err := users.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if user.Role != domain.RoleTeacher {
			return store.ErrUserNotFound
		}
		if err := users.Delete(ctx, id); err != nil {
			return err
		}
		return s.audit(ctx, tx, actorID, domain.AuditTeacherDeleted, user.Email)
	})
	if err != nil {
		return fmt.Errorf("failed to delete teacher: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("teacher deleted",
		"user_id", id,
		"actor_id", actorID)
	return nil
}

// Analytics returns total tokens and last activity per teacher. Teachers
// who never generated anything are included with zero tokens.
func (s *AdminService) Analytics(ctx context.Context) ([]domain.TeacherUsage, error) {
	rows, err := s.stores.Usage.TeacherTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load usage analytics: %w", err)
	}
	return rows, nil
}

// CreateOrganization registers a school or district license.
func (s *AdminService) CreateOrganization(
	ctx context.Context,
	actorID uuid.UUID,
	name, contact string,
	seats int,
	expiresAt time.Time,
) (*domain.OrganizationLicense, error) {
	org, err := domain.NewOrganization(name, contact, seats, expiresAt)
	if err != nil {
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.stores.Organizations.WithTx(tx).Create(ctx, org); err != nil {
			return err
		}
		return s.audit(ctx, tx, actorID, domain.AuditOrganizationCreated, org.Name)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	return &domain.OrganizationLicense{
		Organization: *org,
		UsedSeats:    0,
		Status:       org.LicenseStatus(s.now()),
	}, nil
}

// ListOrganizations returns organizations with their current license state.
func (s *AdminService) ListOrganizations(ctx context.Context, page store.Page) ([]domain.OrganizationLicense, error) {
	if err := checkPage(page); err != nil {
		return nil, err
	}
	orgs, err := s.stores.Organizations.List(ctx, page.Normalize(), s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	return orgs, nil
}

// RecordPayment stores a payment for an existing organization.
func (s *AdminService) RecordPayment(ctx context.Context, actorID uuid.UUID, in PaymentInput) (*domain.Payment, error) {
	payment, err := domain.NewPayment(in.OrganizationID, in.AmountCents, in.Currency, in.Method, in.Period, in.Status)
	if err != nil {
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.stores.Payments.WithTx(tx).Create(ctx, payment); err != nil {
			return err
		}
		target := fmt.Sprintf("%s %d %s", payment.OrganizationID, payment.AmountCents, payment.Currency)
		return s.audit(ctx, tx, actorID, domain.AuditPaymentRecorded, target)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}
	return payment, nil
}

// ListPayments returns payments, newest first.
func (s *AdminService) ListPayments(ctx context.Context, page store.Page) ([]domain.PaymentView, error) {
	if err := checkPage(page); err != nil {
		return nil, err
	}
	payments, err := s.stores.Payments.List(ctx, page.Normalize())
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

// AuditLog returns audit entries, newest first.
func (s *AdminService) AuditLog(ctx context.Context, page store.Page) ([]*domain.AuditEntry, error) {
	if err := checkPage(page); err != nil {
		return nil, err
	}
	entries, err := s.stores.Audit.List(ctx, page.Normalize())
	if err != nil {
		return nil, fmt.Errorf("failed to load audit log: %w", err)
	}
	return entries, nil
}

func (s *AdminService) audit(ctx context.Context, tx *sql.Tx, actorID uuid.UUID, action, target string) error {
	entry := domain.NewAuditEntry(actorID, action, target)
	if err := s.stores.Audit.WithTx(tx).Create(ctx, entry); err != nil {
		return fmt.Errorf("failed to write audit entry: %w", err)
	}
	return nil
}

func checkPage(page store.Page) error {
	if page.Skip < 0 || page.Limit < 0 {
		return ErrInvalidPage
	}
	return nil
}
