package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/classplay/classplay-api/internal/domain"
	"github.com/classplay/classplay-api/internal/platform/logger"
	"github.com/classplay/classplay-api/internal/store"
)

// PostgresUsageStore implements store.UsageStore.
type PostgresUsageStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUsageStore creates a usage store over db.
func NewPostgresUsageStore(db store.DBTX, logger *slog.Logger) *PostgresUsageStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresUsageStore{db: db, logger: logger.With(slog.String("component", "usage_store"))}
}

var _ store.UsageStore = (*PostgresUsageStore)(nil)

// WithTx implements store.UsageStore.WithTx
func (s *PostgresUsageStore) WithTx(tx *sql.Tx) store.UsageStore {
	return &PostgresUsageStore{db: tx, logger: s.logger}
}

// Create implements store.UsageStore.Create
func (s *PostgresUsageStore) Create(ctx context.Context, rec *domain.UsageRecord) error {
	if rec.Tokens <= 0 {
		return domain.ErrNoTokens
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO usage_records (id, user_id, feature, tokens, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		rec.ID, rec.UserID, rec.Feature, rec.Tokens, rec.CreatedAt)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to record usage",
			slog.String("error", err.Error()),
			slog.String("user_id", rec.UserID.String()),
			slog.String("feature", rec.Feature))
		return MapError(err)
	}
	return nil
}

// TeacherTotals implements store.UsageStore.TeacherTotals
func (s *PostgresUsageStore) TeacherTotals(ctx context.Context) ([]domain.TeacherUsage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT u.id, u.full_name, u.email,
			COALESCE(SUM(r.tokens), 0) AS total_tokens,
			MAX(r.created_at) AS last_active
		FROM users u
		LEFT OUTER JOIN usage_records r ON r.user_id = u.id
		WHERE u.role = $1
		GROUP BY u.id, u.full_name, u.email
		ORDER BY total_tokens DESC, u.full_name`, string(domain.RoleTeacher))
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to aggregate usage",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	totals := []domain.TeacherUsage{}
	for rows.Next() {
		var (
			row        domain.TeacherUsage
			lastActive sql.NullTime
		)
		if err := rows.Scan(&row.UserID, &row.FullName, &row.Email, &row.TotalTokens, &lastActive); err != nil {
			return nil, MapError(err)
		}
		if lastActive.Valid {
			t := lastActive.Time
			row.LastActive = &t
		}
		totals = append(totals, row)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return totals, nil
}
