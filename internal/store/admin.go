package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/classplay/classplay-api/internal/domain"
)

// OrganizationStore persists organizations and their licenses.
type OrganizationStore interface {
	Create(ctx context.Context, org *domain.Organization) error
	// List returns organizations with seat usage computed from their active
	// teachers and license status evaluated at now.
	List(ctx context.Context, page Page, now time.Time) ([]domain.OrganizationLicense, error)
	WithTx(tx *sql.Tx) OrganizationStore
}

// PaymentStore persists license payments.
type PaymentStore interface {
	// Create returns ErrOrganizationNotFound when the organization does not exist.
	Create(ctx context.Context, payment *domain.Payment) error
	// List returns payments newest first, joined with the organization name.
	List(ctx context.Context, page Page) ([]domain.PaymentView, error)
	WithTx(tx *sql.Tx) PaymentStore
}

// AuditStore persists audit entries for admin mutations.
type AuditStore interface {
	Create(ctx context.Context, entry *domain.AuditEntry) error
	// List returns entries newest first.
	List(ctx context.Context, page Page) ([]*domain.AuditEntry, error)
	WithTx(tx *sql.Tx) AuditStore
}
