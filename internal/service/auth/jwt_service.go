package auth

import (
	"context"
	"time"

	"github.com/classplay/classplay-api/internal/domain"
	"github.com/google/uuid"
)

// JWTService issues and validates access tokens.
type JWTService interface {
	// GenerateToken issues an access token for user. The token carries the
	// user ID as subject and the user's role.
	GenerateToken(ctx context.Context, user *domain.User) (string, error)

	// ValidateToken parses and validates tokenString and returns its claims.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims are the validated contents of an access token.
type Claims struct {
	UserID    uuid.UUID
	Role      domain.Role
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}
