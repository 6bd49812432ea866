// Package store declares the persistence contracts for users, classes,
// saved resources, token usage and the administrative records, together
// with the sentinel errors implementations return. PostgreSQL
// implementations live in internal/platform/postgres.
package store
