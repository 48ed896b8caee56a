package dataapp

import "go.uber.org/fx"

// Module provides the data app.
func Module() fx.Option {
	return fx.Module(
		"dataapp",

		// provide data app
		fx.Provide(New),
	)
}
