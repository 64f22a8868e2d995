// Package logging carries the request-scoped logger through a context so that
// services and repositories can log with the request's fields.
package logging

import (
	"context"
	"log/slog"
)

type contextKey string

const ContextKey = contextKey("logger")

// FromContext returns the request logger, or the default logger outside a request.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ContextKey).(*slog.Logger); ok && logger != nil {
		return logger
	}

	return slog.Default()
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ContextKey, logger)
}
