// Package logging carries the zap logger through the CLI layers. The
// root command builds one logger, stores it on the cli context, and
// every subcommand and fx module pulls it back out instead of
// constructing its own.
package logging

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

type contextKey int

var loggerKey = contextKey(0)

var ErrNoLoggerInContext = errors.New("no logger in context")

// ContextWithLogger returns a child context carrying logger.
func ContextWithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext returns the logger stored by ContextWithLogger,
// or ErrNoLoggerInContext when the context carries none.
func LoggerFromContext(ctx context.Context) (*zap.Logger, error) {
	if logger, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return logger, nil
	}

	return nil, ErrNoLoggerInContext
}
