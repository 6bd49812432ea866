//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/classplay/classplay-api/internal/domain"
	"github.com/classplay/classplay-api/internal/platform/postgres"
	"github.com/classplay/classplay-api/internal/store"
	"github.com/classplay/classplay-api/internal/testdb"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testDB *sql.DB

// TestMain connects once and applies the embedded migrations.
// The suite is skipped when no test database URL is set.
func TestMain(m *testing.M) {
	db, err := testdb.Open(context.Background())
	if errors.Is(err, testdb.ErrNoDatabaseURL) {
		fmt.Println("no test database URL set, skipping postgres integration tests")
		os.Exit(0)
	}
	if err != nil {
		fmt.Printf("Failed to prepare test database: %v\n", err)
		os.Exit(1)
	}
	testDB = db

	code := m.Run()
	_ = testDB.Close()
	os.Exit(code)
}

func withTx(t *testing.T, fn func(tx *sql.Tx)) {
	t.Helper()
	testdb.WithTx(t, testDB, func(t *testing.T, tx *sql.Tx) { fn(tx) })
}

func createTeacher(t *testing.T, tx *sql.Tx, email string) *domain.User {
	t.Helper()
	users := postgres.NewPostgresUserStore(tx, bcrypt.MinCost, nil)
	user, err := domain.NewUser(email, "Teacher "+email, "password123", domain.RoleTeacher)
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func TestUserStoreRoundTrip(t *testing.T) {
	withTx(t, func(tx *sql.Tx) {
		ctx := context.Background()
		users := postgres.NewPostgresUserStore(tx, bcrypt.MinCost, nil)
		email := fmt.Sprintf("rt-%s@school.edu", uuid.NewString()[:8])
		user := createTeacher(t, tx, email)

		got, err := users.GetByEmail(ctx, email)
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got.HashedPassword), []byte("password123")))

		dup, err := domain.NewUser(email, "Other", "password123", domain.RoleTeacher)
		require.NoError(t, err)
		assert.ErrorIs(t, users.Create(ctx, dup), store.ErrEmailExists)

		require.NoError(t, users.TouchLastLogin(ctx, user.ID, time.Now()))
		require.NoError(t, users.UpdatePassword(ctx, user.ID, "newpassword1"))
		got, err = users.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.NotNil(t, got.LastLoginAt)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got.HashedPassword), []byte("newpassword1")))
	})
}

func TestClassStoreOwnerScoping(t *testing.T) {
	withTx(t, func(tx *sql.Tx) {
		ctx := context.Background()
		classes := postgres.NewPostgresClassStore(tx, nil)
		owner := createTeacher(t, tx, fmt.Sprintf("owner-%s@school.edu", uuid.NewString()[:8]))
		other := createTeacher(t, tx, fmt.Sprintf("other-%s@school.edu", uuid.NewString()[:8]))

		class, err := domain.NewClass(owner.ID, "3B", 3, 28, "Loves dinosaurs")
		require.NoError(t, err)
		require.NoError(t, classes.Create(ctx, class))

		_, err = classes.GetByID(ctx, other.ID, class.ID)
		assert.ErrorIs(t, err, store.ErrClassNotFound)
		assert.ErrorIs(t, classes.Delete(ctx, other.ID, class.ID), store.ErrClassNotFound)

		got, err := classes.GetByID(ctx, owner.ID, class.ID)
		require.NoError(t, err)
		assert.Equal(t, "Loves dinosaurs", got.Description)
	})
}

func TestUsageTotalsOuterJoin(t *testing.T) {
	withTx(t, func(tx *sql.Tx) {
		ctx := context.Background()
		usage := postgres.NewPostgresUsageStore(tx, nil)
		busy := createTeacher(t, tx, fmt.Sprintf("busy-%s@school.edu", uuid.NewString()[:8]))
		idle := createTeacher(t, tx, fmt.Sprintf("idle-%s@school.edu", uuid.NewString()[:8]))

		for _, tokens := range []int{100, 250} {
			rec, err := domain.NewUsageRecord(busy.ID, "quiz", tokens)
			require.NoError(t, err)
			require.NoError(t, usage.Create(ctx, rec))
		}

		totals, err := usage.TeacherTotals(ctx)
		require.NoError(t, err)

		byID := map[uuid.UUID]domain.TeacherUsage{}
		for _, row := range totals {
			byID[row.UserID] = row
		}
		assert.Equal(t, int64(350), byID[busy.ID].TotalTokens)
		require.Contains(t, byID, idle.ID)
		assert.Equal(t, int64(0), byID[idle.ID].TotalTokens)
		assert.Nil(t, byID[idle.ID].LastActive)
	})
}
