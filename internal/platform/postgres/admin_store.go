package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/classplay/classplay-api/internal/domain"
	"github.com/classplay/classplay-api/internal/platform/logger"
	"github.com/classplay/classplay-api/internal/store"
)

// PostgresOrganizationStore implements store.OrganizationStore.
type PostgresOrganizationStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresOrganizationStore creates an organization store over db.
func NewPostgresOrganizationStore(db store.DBTX, logger *slog.Logger) *PostgresOrganizationStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresOrganizationStore{db: db, logger: logger.With(slog.String("component", "organization_store"))}
}

var _ store.OrganizationStore = (*PostgresOrganizationStore)(nil)

// WithTx implements store.OrganizationStore.WithTx
func (s *PostgresOrganizationStore) WithTx(tx *sql.Tx) store.OrganizationStore {
	return &PostgresOrganizationStore{db: tx, logger: s.logger}
}

// Create implements store.OrganizationStore.Create
func (s *PostgresOrganizationStore) Create(ctx context.Context, org *domain.Organization) error {
	if err := org.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO organizations (id, name, contact, seats, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		org.ID, org.Name, org.Contact, org.Seats, org.ExpiresAt, org.CreatedAt)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to create organization",
			slog.String("error", err.Error()))
		return MapError(err)
	}
	return nil
}

// List implements store.OrganizationStore.List
func (s *PostgresOrganizationStore) List(
	ctx context.Context,
	page store.Page,
	now time.Time,
) ([]domain.OrganizationLicense, error) {
	page = page.Normalize()

	rows, err := s.db.QueryContext(ctx, `
		SELECT o.id, o.name, o.contact, o.seats, o.expires_at, o.created_at,
			COUNT(u.id) AS used
		FROM organizations o
		LEFT OUTER JOIN users u
			ON u.organization_id = o.id AND u.role = $1 AND u.status = $2
		GROUP BY o.id
		ORDER BY o.name, o.id
		OFFSET $3 LIMIT $4`,
		string(domain.RoleTeacher), string(domain.UserStatusActive), page.Skip, page.Limit)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	orgs := []domain.OrganizationLicense{}
	for rows.Next() {
		var l domain.OrganizationLicense
		if err := rows.Scan(
			&l.ID, &l.Name, &l.Contact, &l.Seats, &l.ExpiresAt, &l.CreatedAt, &l.UsedSeats,
		); err != nil {
			return nil, MapError(err)
		}
		l.Status = l.LicenseStatus(now)
		orgs = append(orgs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return orgs, nil
}

// PostgresPaymentStore implements store.PaymentStore.
type PostgresPaymentStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPaymentStore creates a payment store over db.
func NewPostgresPaymentStore(db store.DBTX, logger *slog.Logger) *PostgresPaymentStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresPaymentStore{db: db, logger: logger.With(slog.String("component", "payment_store"))}
}

var _ store.PaymentStore = (*PostgresPaymentStore)(nil)

// WithTx implements store.PaymentStore.WithTx
func (s *PostgresPaymentStore) WithTx(tx *sql.Tx) store.PaymentStore {
	return &PostgresPaymentStore{db: tx, logger: s.logger}
}

// Create implements store.PaymentStore.Create
func (s *PostgresPaymentStore) Create(ctx context.Context, p *domain.Payment) error {
	if err := p.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO payments (id, organization_id, amount_cents, currency, method, period, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.OrganizationID, p.AmountCents, p.Currency, p.Method, p.Period, string(p.Status), p.CreatedAt)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return store.ErrOrganizationNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to record payment",
			slog.String("error", err.Error()))
		return MapError(err)
	}
	return nil
}

// List implements store.PaymentStore.List
func (s *PostgresPaymentStore) List(ctx context.Context, page store.Page) ([]domain.PaymentView, error) {
	page = page.Normalize()

	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.organization_id, p.amount_cents, p.currency, p.method, p.period,
			p.status, p.created_at, o.name
		FROM payments p
		JOIN organizations o ON o.id = p.organization_id
		ORDER BY p.created_at DESC, p.id
		OFFSET $1 LIMIT $2`, page.Skip, page.Limit)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	payments := []domain.PaymentView{}
	for rows.Next() {
		var (
			v      domain.PaymentView
			status string
		)
		if err := rows.Scan(
			&v.ID, &v.OrganizationID, &v.AmountCents, &v.Currency, &v.Method, &v.Period,
			&status, &v.CreatedAt, &v.OrganizationName,
		); err != nil {
			return nil, MapError(err)
		}
		v.Status = domain.PaymentStatus(status)
		payments = append(payments, v)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return payments, nil
}

// PostgresAuditStore implements store.AuditStore.
type PostgresAuditStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAuditStore creates an audit store over db.
func NewPostgresAuditStore(db store.DBTX, logger *slog.Logger) *PostgresAuditStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresAuditStore{db: db, logger: logger.With(slog.String("component", "audit_store"))}
}

var _ store.AuditStore = (*PostgresAuditStore)(nil)

// WithTx implements store.AuditStore.WithTx
func (s *PostgresAuditStore) WithTx(tx *sql.Tx) store.AuditStore {
	return &PostgresAuditStore{db: tx, logger: s.logger}
}

// Create implements store.AuditStore.Create
func (s *PostgresAuditStore) Create(ctx context.Context, e *domain.AuditEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_log (id, actor_id, action, target, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		e.ID, e.ActorID, e.Action, e.Target, e.CreatedAt)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to write audit entry",
			slog.String("error", err.Error()),
			slog.String("action", e.Action))
		return MapError(err)
	}
	return nil
}

// List implements store.AuditStore.List
func (s *PostgresAuditStore) List(ctx context.Context, page store.Page) ([]*domain.AuditEntry, error) {
	page = page.Normalize()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, actor_id, action, target, created_at
		FROM audit_log
		ORDER BY created_at DESC, id
		OFFSET $1 LIMIT $2`, page.Skip, page.Limit)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	entries := []*domain.AuditEntry{}
	for rows.Next() {
		var e domain.AuditEntry
		if err := rows.Scan(&e.ID, &e.ActorID, &e.Action, &e.Target, &e.CreatedAt); err != nil {
			return nil, MapError(err)
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return entries, nil
}
