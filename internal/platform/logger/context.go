package logger

import (
	"context"
	"log/slog"
)

// contextKey is an unexported type for context keys defined in this package,
// preventing collisions with keys defined elsewhere.
type contextKey struct{}

// loggerKey is the context key under which a request-scoped logger is stored.
var loggerKey = contextKey{}

// WithLogger returns a copy of ctx carrying the given logger.
// Middleware uses this to attach a request-scoped logger (e.g. one enriched
// with a trace ID) that downstream code retrieves via FromContext.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext retrieves the logger stored in ctx, falling back to the
// process default logger when none is present. It never returns nil.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok && logger != nil {
			return logger
		}
	}
	return slog.Default()
}

// FromContextOrDefault retrieves the logger stored in ctx, falling back to
// the provided default. Components use this to keep their component-scoped
// logger when no request-scoped one is available.
func FromContextOrDefault(ctx context.Context, def *slog.Logger) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok && logger != nil {
			return logger
		}
	}
	if def != nil {
		return def
	}
	return slog.Default()
}
