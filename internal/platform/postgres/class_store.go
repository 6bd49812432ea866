package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/classplay/classplay-api/internal/domain"
	"github.com/classplay/classplay-api/internal/platform/logger"
	"github.com/classplay/classplay-api/internal/store"
	"github.com/google/uuid"
)

const classColumns = `id, owner_id, name, grade, student_count, description, created_at, updated_at`

// PostgresClassStore implements store.ClassStore.
type PostgresClassStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresClassStore creates a class store over db.
func NewPostgresClassStore(db store.DBTX, logger *slog.Logger) *PostgresClassStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresClassStore{db: db, logger: logger.With(slog.String("component", "class_store"))}
}

var _ store.ClassStore = (*PostgresClassStore)(nil)

// WithTx implements store.ClassStore.WithTx
func (s *PostgresClassStore) WithTx(tx *sql.Tx) store.ClassStore {
	return &PostgresClassStore{db: tx, logger: s.logger}
}

// Create implements store.ClassStore.Create
func (s *PostgresClassStore) Create(ctx context.Context, class *domain.Class) error {
	if err := class.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO classes (`+classColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		class.ID, class.OwnerID, class.Name, class.Grade, class.StudentCount,
		class.Description, class.CreatedAt, class.UpdatedAt)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to create class",
			slog.String("error", err.Error()),
			slog.String("class_id", class.ID.String()))
		return MapError(err)
	}
	return nil
}

// GetByID implements store.ClassStore.GetByID
func (s *PostgresClassStore) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Class, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+classColumns+` FROM classes WHERE id = $1 AND owner_id = $2`, id, ownerID)

	class, err := scanClass(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrClassNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get class",
			slog.String("error", err.Error()),
			slog.String("class_id", id.String()))
		return nil, MapError(err)
	}
	return class, nil
}

// ListByOwner implements store.ClassStore.ListByOwner
func (s *PostgresClassStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Class, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+classColumns+` FROM classes WHERE owner_id = $1 ORDER BY name, id`, ownerID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	classes := []*domain.Class{}
	for rows.Next() {
		class, err := scanClass(rows)
		if err != nil {
			return nil, MapError(err)
		}
		classes = append(classes, class)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return classes, nil
}

// Update implements store.ClassStore.Update
func (s *PostgresClassStore) Update(ctx context.Context, class *domain.Class) error {
	if err := class.Validate(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE classes
		SET name = $1, grade = $2, student_count = $3, description = $4, updated_at = $5
		WHERE id = $6 AND owner_id = $7`,
		class.Name, class.Grade, class.StudentCount, class.Description, class.UpdatedAt,
		class.ID, class.OwnerID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to update class",
			slog.String("error", err.Error()),
			slog.String("class_id", class.ID.String()))
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrClassNotFound)
}

// Delete implements store.ClassStore.Delete
func (s *PostgresClassStore) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM classes WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrClassNotFound)
}

func scanClass(row rowScanner) (*domain.Class, error) {
	var c domain.Class
	if err := row.Scan(
		&c.ID, &c.OwnerID, &c.Name, &c.Grade, &c.StudentCount,
		&c.Description, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}
