package store

import (
	"context"
	"database/sql"

	"github.com/classplay/classplay-api/internal/domain"
)

// UsageStore records token spend and aggregates it for reporting.
type UsageStore interface {
	Create(ctx context.Context, record *domain.UsageRecord) error
	// TeacherTotals returns one row per teacher, including teachers without
	// any usage, ordered by total tokens descending.
	TeacherTotals(ctx context.Context) ([]domain.TeacherUsage, error)
	WithTx(tx *sql.Tx) UsageStore
}
