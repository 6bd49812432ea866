// Package logger configures the process-wide log/slog logger as JSON on
// stdout and carries request-scoped loggers through context.
package logger
