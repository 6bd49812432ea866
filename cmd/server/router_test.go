package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/classplay/classplay-api/internal/config"
	"github.com/classplay/classplay-api/internal/domain"
	"github.com/classplay/classplay-api/internal/platform/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:               8080,
			LogLevel:           "debug",
			CORSAllowedOrigins: []string{"http://localhost:5173"},
		},
		Database: config.DatabaseConfig{URL: "postgres://localhost/classplay", MaxOpenConns: 2},
		Auth: config.AuthConfig{
			JWTSecret:            "test-secret-that-is-at-least-32-characters",
			TokenLifetimeMinutes: 60,
		},
		LLM: config.LLMConfig{
			Provider:                "gemini",
			TextModel:               "gemini-2.0-flash",
			OpenAIModel:             "gpt-3.5-turbo",
			ImageModels:             []string{"gemini-2.0-flash-exp"},
			MaxOutputTokens:         8192,
			OpenAIMaxOutputTokens:   4096,
			IllustrationConcurrency: 2,
			StoryPages:              4,
		},
	}
}

func newTestApp(t *testing.T) (*application, sqlmock.Sqlmock, http.Handler) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log, _ := logger.GetTestLogger(t)
	app, err := newApplication(context.Background(), testConfig(), log, db)
	require.NoError(t, err)

	return app, mock, app.setupRouter()
}

// expectUserLookup makes the next users-by-id query return user.
func expectUserLookup(mock sqlmock.Sqlmock, user *domain.User) {
	now := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "email", "full_name", "hashed_password", "role", "status",
		"organization_id", "last_login_at", "created_at", "updated_at",
	}).AddRow(
		user.ID.String(), user.Email, user.FullName, "$2a$10$hash", string(user.Role), string(user.Status),
		nil, nil, now, now,
	)
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
		WithArgs(user.ID).
		WillReturnRows(rows)
}

func TestHealth(t *testing.T) {
	t.Run("database reachable", func(t *testing.T) {
		_, mock, router := newTestApp(t)
		mock.ExpectPing()

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok","database":"ok","generation_configured":false}`, rec.Body.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database down", func(t *testing.T) {
		_, mock, router := newTestApp(t)
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"database":"unavailable"`)
	})
}

func TestRouter_RequiresAuthentication(t *testing.T) {
	_, _, router := newTestApp(t)

	for _, path := range []string{"/api/classes", "/api/resources", "/api/admin/teachers", "/api/auth/me"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
		assert.NotEmpty(t, rec.Header().Get("X-Trace-ID"), path)
	}
}

func TestRouter_AdminRequiresSuperAdmin(t *testing.T) {
	app, mock, router := newTestApp(t)
	teacher := &domain.User{
		ID:       uuid.New(),
		Email:    "teacher@school.edu",
		FullName: "Ms. Thompson",
		Role:     domain.RoleTeacher,
		Status:   domain.UserStatusActive,
	}
	token, err := app.jwtService.GenerateToken(context.Background(), teacher)
	require.NoError(t, err)
	expectUserLookup(mock, teacher)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/analytics", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Admin privileges required")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRouter_GenerationNotConfigured(t *testing.T) {
	app, mock, router := newTestApp(t)
	teacher := &domain.User{
		ID:     uuid.New(),
		Email:  "teacher@school.edu",
		Role:   domain.RoleTeacher,
		Status: domain.UserStatusActive,
	}
	token, err := app.jwtService.GenerateToken(context.Background(), teacher)
	require.NoError(t, err)
	expectUserLookup(mock, teacher)

	req := httptest.NewRequest(http.MethodPost, "/api/generate/math",
		strings.NewReader(`{"topic":"fractions","count":3}`))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "Content generation service is not configured")
}

func TestRouter_Metrics(t *testing.T) {
	_, _, router := newTestApp(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
