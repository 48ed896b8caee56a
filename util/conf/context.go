package conf

import (
	"context"
	"errors"
)

type contextKey int

var configKey = contextKey(1)

// GetConfigFromContext returns the parsed config stored by
// ContextWithConfig. The type parameter must match the type that was
// stored; commands parse one config type each, so a mismatch means
// the command pulled config from the wrong entrypoint.
func GetConfigFromContext[C any](ctx context.Context) (C, error) {
	var c C

	configValue := ctx.Value(configKey)

	if configValue == nil {
		return c, errors.New("config not found in context")
	}

	if config, ok := configValue.(C); ok {
		return config, nil
	}

	return c, errors.New("invalid config in context")
}

// ContextWithConfig returns a child context carrying the parsed
// config, so subcommands can share the root command's Parse result.
func ContextWithConfig[C any](ctx context.Context, config C) context.Context {
	return context.WithValue(ctx, configKey, config)
}
