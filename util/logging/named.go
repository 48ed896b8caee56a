package logging

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NamedLogger returns a decorator that scopes the logger to name.
func NamedLogger(name string) func(log *zap.Logger) *zap.Logger {
	return func(log *zap.Logger) *zap.Logger {
		return log.Named(name)
	}
}

// DecorateLogger scopes the logger inside an fx module, so each
// component logs under its own name.
func DecorateLogger(name string) fx.Option {
	return fx.Decorate(NamedLogger(name))
}
