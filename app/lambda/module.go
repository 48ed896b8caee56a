package lambda

import (
	"go.uber.org/fx"

	"github.com/manifold-dev/manifold/handler"
	"github.com/manifold-dev/manifold/util/logging"
)

// Module hosts the app behind an AWS Lambda proxy. It mounts the same
// route group the standalone server does, fed by proxy events instead
// of a listener.
func Module(config Config) fx.Option {
	return fx.Module(
		"lambda",
		fx.Supply(config),
		logging.DecorateLogger("lambda"),
		handler.Module(),
		fx.Provide(NewLifecycleHandler),
		fx.Invoke(func(*LambdaHandler) {}),
	)
}
