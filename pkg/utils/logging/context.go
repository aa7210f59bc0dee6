package logging

import (
	"context"
	"log/slog"
)

type ctxLoggerKey struct{}

// With returns a copy of ctx carrying logger.
func With(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxLoggerKey{}, logger)
}

// From returns the logger carried by ctx, or the default logger.
func From(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxLoggerKey{}).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return Default()
}
