package auth

import (
	"context"
	"testing"
	"time"

	"github.com/classplay/classplay-api/internal/config"
	"github.com/classplay/classplay-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-that-is-long-enough-for-testing"

func testUser(role domain.Role) *domain.User {
	return &domain.User{ID: uuid.New(), Email: "teacher@school.edu", Role: role}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := newHMACJWTService(testSecret, time.Hour, fixedClock(now))
	user := testUser(domain.RoleSuperAdmin)

	token, err := svc.GenerateToken(context.Background(), user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.RoleSuperAdmin, claims.Role)
	assert.Equal(t, now.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, now.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)
}

func TestValidateTokenFailures(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer := newHMACJWTService(testSecret, time.Hour, fixedClock(now))
	token, err := issuer.GenerateToken(context.Background(), testUser(domain.RoleTeacher))
	require.NoError(t, err)

	sign := func(claims jwt.Claims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)
		return s
	}
	registered := jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}

	tests := []struct {
		name      string
		validator JWTService
		token     string
		wantErr   error
	}{
		{
			name:      "expired",
			validator: newHMACJWTService(testSecret, time.Hour, fixedClock(now.Add(2*time.Hour))),
			token:     token,
			wantErr:   ErrExpiredToken,
		},
		{
			name:      "within clock skew",
			validator: newHMACJWTService(testSecret, time.Hour, fixedClock(now.Add(time.Hour+time.Minute))),
			token:     token,
			wantErr:   nil,
		},
		{
			name:      "not yet valid",
			validator: newHMACJWTService(testSecret, time.Hour, fixedClock(now.Add(-time.Hour))),
			token:     token,
			wantErr:   ErrTokenNotYetValid,
		},
		{
			name:      "wrong secret",
			validator: newHMACJWTService("another-secret-that-is-long-enough-too", time.Hour, fixedClock(now)),
			token:     token,
			wantErr:   ErrInvalidToken,
		},
		{
			name:      "malformed",
			validator: issuer,
			token:     "not.a.jwt",
			wantErr:   ErrInvalidToken,
		},
		{
			name:      "empty",
			validator: issuer,
			token:     "",
			wantErr:   ErrMissingToken,
		},
		{
			name:      "unknown role",
			validator: issuer,
			token:     sign(jwtCustomClaims{Role: "janitor", RegisteredClaims: registered}),
			wantErr:   ErrInvalidToken,
		},
		{
			name:      "subject is not a uuid",
			validator: issuer,
			token: sign(jwtCustomClaims{Role: "teacher", RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "42",
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			}}),
			wantErr: ErrInvalidToken,
		},
		{
			name:      "no expiry",
			validator: issuer,
			token: sign(jwtCustomClaims{Role: "teacher", RegisteredClaims: jwt.RegisteredClaims{
				Subject: uuid.NewString(),
			}}),
			wantErr: ErrInvalidToken,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := tc.validator.ValidateToken(context.Background(), tc.token)
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestValidateTokenRejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	claims := jwtCustomClaims{Role: "teacher", RegisteredClaims: jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	svc := newHMACJWTService(testSecret, time.Hour, time.Now)
	_, err = svc.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	_, err := NewJWTService(config.AuthConfig{JWTSecret: "short", TokenLifetimeMinutes: 60})
	assert.Error(t, err)

	_, err = NewJWTService(config.AuthConfig{JWTSecret: testSecret})
	assert.Error(t, err)

	svc, err := NewJWTService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 60})
	require.NoError(t, err)
	_, err = svc.GenerateToken(context.Background(), nil)
	assert.Error(t, err)
}

func TestBcryptVerifier(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("teacher123", bcrypt.MinCost)
	require.NoError(t, err)

	v := NewBcryptVerifier()
	assert.NoError(t, v.Compare(hash, "teacher123"))
	assert.ErrorIs(t, v.Compare(hash, "teacher124"), ErrInvalidCredentials)

	err = v.Compare("not-a-bcrypt-hash", "teacher123")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestHashPasswordFallsBackToDefaultCost(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("admin123", 99)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
