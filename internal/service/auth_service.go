package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/classplay/classplay-api/internal/domain"
	"github.com/classplay/classplay-api/internal/platform/logger"
	"github.com/classplay/classplay-api/internal/service/auth"
	"github.com/classplay/classplay-api/internal/store"
	"github.com/google/uuid"
)

// AuthService signs users in and manages their credentials.
type AuthService struct {
	users     store.UserStore
	tokens    auth.JWTService
	passwords auth.PasswordVerifier
	now       func() time.Time
	logger    *slog.Logger
}

// NewAuthService creates an AuthService.
func NewAuthService(
	users store.UserStore,
	tokens auth.JWTService,
	passwords auth.PasswordVerifier,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		now:       time.Now,
		logger:    logger.With("component", "auth_service"),
	}
}

// Login checks email and password and returns an access token for the user.
// Unknown emails, wrong passwords and blocked accounts all yield
// auth.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("login attempt for unknown email")
			return "", nil, auth.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.passwords.Compare(user.HashedPassword, password); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			log.Debug("login attempt with wrong password", "user_id", user.ID)
			return "", nil, auth.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to verify password: %w", err)
	}

	if user.Status == domain.UserStatusBlocked {
		log.Info("login attempt for blocked account", "user_id", user.ID)
		return "", nil, auth.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(ctx, user)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}

	now := s.now().UTC()
	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		log.Warn("failed to record last login", "user_id", user.ID, "error", err)
	} else {
		user.LastLoginAt = &now
	}

	log.Info("user logged in", "user_id", user.ID, "role", user.Role)
	return token, user, nil
}

// CurrentUser returns the active account with id. Blocked accounts yield
// auth.ErrAccountBlocked.
func (s *AuthService) CurrentUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load current user: %w", err)
	}
	if user.Status == domain.UserStatusBlocked {
		return nil, auth.ErrAccountBlocked
	}
	return user, nil
}

// ChangePassword replaces the password of userID after checking the current one.
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	user, err := s.CurrentUser(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.passwords.Compare(user.HashedPassword, current); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return auth.ErrInvalidCredentials
		}
		return fmt.Errorf("failed to verify password: %w", err)
	}

	if err := domain.ValidatePassword(next); err != nil {
		return err
	}

	if err := s.users.UpdatePassword(ctx, userID, next); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("password changed", "user_id", userID)
	return nil
}
