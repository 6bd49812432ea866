package logger

import (
	"context"
	"log/slog"
)

type contextKey string

const (
	loggerKey    contextKey = "logger"
	requestIDKey contextKey = "request_id"
)

// WithLogger returns a copy of ctx carrying l.
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// WithRequestID returns a copy of ctx carrying the request (trace) ID.
// Loggers obtained through FromContext include it as the "trace_id" attribute.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext returns the request ID stored in ctx, or "".
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// FromContext returns the logger stored in ctx, or the default logger.
// When ctx carries a request ID the returned logger is tagged with it.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return slog.Default()
	}

	l, ok := ctx.Value(loggerKey).(*slog.Logger)
	if !ok || l == nil {
		l = slog.Default()
	}

	if id := RequestIDFromContext(ctx); id != "" {
		return l.With("trace_id", id)
	}
	return l
}

// FromContextOrDefault is like FromContext but falls back to def instead of
// the process-wide default logger.
func FromContextOrDefault(ctx context.Context, def *slog.Logger) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(*slog.Logger); ok && l != nil {
			def = l
		}
	}
	if def == nil {
		def = slog.Default()
	}
	if id := RequestIDFromContext(ctx); id != "" {
		return def.With("trace_id", id)
	}
	return def
}
