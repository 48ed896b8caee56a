package handler

import "go.uber.org/fx"

// Module provides the app handler and its http routes.
func Module() fx.Option {
	return fx.Module("handler",
		// provide metrics registry
		fx.Provide(NewRegistry),
		// provide app handler
		fx.Provide(NewAppHandler),
		// provide routes
		fx.Provide(NewApiRoute),
		fx.Provide(NewHealthRoute),
		fx.Provide(NewMetricsRoute),
		fx.Provide(NewWebRoute),
	)
}
