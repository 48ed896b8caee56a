package server

import "go.uber.org/fx"

// Module wires a lifecycle-managed HTTP server listening per config.
// The final fx.Invoke forces construction so the server starts even
// when nothing else depends on it.
func Module(config HttpConfig) fx.Option {
	return fx.Module("server",
		fx.Supply(config),
		fx.Provide(NewLifecycleServer),
		fx.Invoke(func(*HttpServer) {}),
	)
}
