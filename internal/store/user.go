package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/classplay/classplay-api/internal/domain"
	"github.com/google/uuid"
)

// Page selects a window of a listing.
type Page struct {
	Skip  int
	Limit int
}

// DefaultPageLimit and MaxPageLimit bound listing sizes.
const (
	DefaultPageLimit = 50
	MaxPageLimit     = 200
)

// Normalize clamps p into the supported range.
func (p Page) Normalize() Page {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user, hashing user.Password.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// UpdatePassword hashes and stores a new password for the user.
	UpdatePassword(ctx context.Context, id uuid.UUID, password string) error

	// TouchLastLogin records a successful sign-in at the given time.
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error

	// ListByRole returns users of role whose name or email contains search
	// (case-insensitive), ordered by creation time.
	ListByRole(ctx context.Context, role domain.Role, search string, page Page) ([]*domain.User, error)

	// Delete removes a user. Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a UserStore bound to tx.
	WithTx(tx *sql.Tx) UserStore
}
