// Package postgres provides PostgreSQL implementations of the store
// interfaces declared in internal/store, backed by database/sql with the pgx
// driver. It also embeds the goose schema migrations.
package postgres
