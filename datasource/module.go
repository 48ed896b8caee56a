package datasource

import "go.uber.org/fx"

// Module provides a file-backed datasource module.
func Module(config Config) fx.Option {
	return fx.Module(
		"datasource",

		// provide datasource config
		fx.Supply(config),

		// provide file-backed source
		fx.Provide(NewLifecycleFileStore),
	)
}
