package store

import (
	"context"
	"database/sql"

	"github.com/classplay/classplay-api/internal/domain"
	"github.com/google/uuid"
)

// ClassStore persists classes. Every lookup is scoped to the owning teacher;
// a class owned by someone else is reported as ErrClassNotFound.
type ClassStore interface {
	Create(ctx context.Context, class *domain.Class) error
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Class, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Class, error)
	Update(ctx context.Context, class *domain.Class) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	WithTx(tx *sql.Tx) ClassStore
}
