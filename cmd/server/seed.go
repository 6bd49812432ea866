package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/classplay/classplay-api/internal/domain"
	"github.com/classplay/classplay-api/internal/platform/postgres"
	"github.com/classplay/classplay-api/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// demoAccount is an account created by -seed.
type demoAccount struct {
	email    string
	password string
	fullName string
	role     domain.Role
}

var demoAccounts = []demoAccount{
	{"admin@school.edu", "admin123", "Principal Skinner", domain.RoleSuperAdmin},
	{"teacher@school.edu", "teacher123", "Ms. Thompson", domain.RoleTeacher},
}

// demoClasses belong to the demo teacher. Their descriptions become the
// prompt context when a class is selected.
var demoClasses = []struct {
	name         string
	grade        int
	studentCount int
	description  string
}{
	{
		name:         "3B",
		grade:        3,
		studentCount: 28,
		description: "Curious group. They love space and dinosaurs. They have just learned the " +
			"multiplication table and need easy multiplication exercises. Weak at fractions. Basic English.",
	},
	{
		name:         "4A Gifted",
		grade:        4,
		studentCount: 22,
		description: "Gifted group, one to two months ahead of the curriculum. Confident with " +
			"multiplication and division. Enjoy logic problems and puzzles; non-standard tasks are welcome.",
	},
}

// seedDemoData creates the demo accounts and, for a teacher without classes,
// the demo classes. Existing rows are left untouched, so seeding is
// idempotent.
func seedDemoData(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	log := logger.With("component", "seed")

	return store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		users := postgres.NewPostgresUserStore(tx, bcrypt.DefaultCost, logger)
		classes := postgres.NewPostgresClassStore(tx, logger)

		var teacher *domain.User
		for _, acc := range demoAccounts {
			user, err := ensureUser(ctx, users, acc)
			if err != nil {
				return err
			}
			log.Info("demo account ready", "email", user.Email, "role", user.Role)
			if user.Role == domain.RoleTeacher {
				teacher = user
			}
		}

		existing, err := classes.ListByOwner(ctx, teacher.ID)
		if err != nil {
			return fmt.Errorf("failed to list demo classes: %w", err)
		}
		if len(existing) > 0 {
			log.Info("demo classes already exist", "count", len(existing))
			return nil
		}

		for _, c := range demoClasses {
			class, err := domain.NewClass(teacher.ID, c.name, c.grade, c.studentCount, c.description)
			if err != nil {
				return err
			}
			if err := classes.Create(ctx, class); err != nil {
				return fmt.Errorf("failed to create demo class %q: %w", c.name, err)
			}
		}
		log.Info("demo classes created", "count", len(demoClasses))
		return nil
	})
}

func ensureUser(ctx context.Context, users store.UserStore, acc demoAccount) (*domain.User, error) {
	user, err := users.GetByEmail(ctx, acc.email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up %s: %w", acc.email, err)
	}

	user, err = domain.NewUser(acc.email, acc.fullName, acc.password, acc.role)
	if err != nil {
		return nil, err
	}
	if err := users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", acc.email, err)
	}
	return user, nil
}
