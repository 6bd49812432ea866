package store

import (
	"context"
	"database/sql"

	"github.com/classplay/classplay-api/internal/domain"
	"github.com/google/uuid"
)

// ResourceStore persists saved resources, scoped to their owner.
type ResourceStore interface {
	Create(ctx context.Context, resource *domain.Resource) error
	// ListByOwner returns the owner's resources, newest first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Resource, error)
	// Delete returns ErrResourceNotFound when no resource of ownerID has the id.
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	WithTx(tx *sql.Tx) ResourceStore
}
