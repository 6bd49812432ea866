package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/classplay/classplay-api/internal/domain"
	"github.com/classplay/classplay-api/internal/platform/logger"
	"github.com/classplay/classplay-api/internal/store"
	"github.com/google/uuid"
)

// PostgresResourceStore implements store.ResourceStore.
type PostgresResourceStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresResourceStore creates a resource store over db.
func NewPostgresResourceStore(db store.DBTX, logger *slog.Logger) *PostgresResourceStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresResourceStore{db: db, logger: logger.With(slog.String("component", "resource_store"))}
}

var _ store.ResourceStore = (*PostgresResourceStore)(nil)

// WithTx implements store.ResourceStore.WithTx
func (s *PostgresResourceStore) WithTx(tx *sql.Tx) store.ResourceStore {
	return &PostgresResourceStore{db: tx, logger: s.logger}
}

// Create implements store.ResourceStore.Create
func (s *PostgresResourceStore) Create(ctx context.Context, r *domain.Resource) error {
	if err := r.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO resources (id, owner_id, title, type, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		r.ID, r.OwnerID, r.Title, r.Type, r.Content, r.CreatedAt)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to create resource",
			slog.String("error", err.Error()),
			slog.String("resource_id", r.ID.String()))
		return MapError(err)
	}
	return nil
}

// ListByOwner implements store.ResourceStore.ListByOwner
func (s *PostgresResourceStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Resource, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner_id, title, type, content, created_at
		FROM resources
		WHERE owner_id = $1
		ORDER BY created_at DESC, id`, ownerID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	resources := []*domain.Resource{}
	for rows.Next() {
		var r domain.Resource
		if err := rows.Scan(&r.ID, &r.OwnerID, &r.Title, &r.Type, &r.Content, &r.CreatedAt); err != nil {
			return nil, MapError(err)
		}
		resources = append(resources, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return resources, nil
}

// Delete implements store.ResourceStore.Delete
func (s *PostgresResourceStore) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM resources WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrResourceNotFound)
}
