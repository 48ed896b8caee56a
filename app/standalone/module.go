package standalone

import (
	"go.uber.org/fx"

	"github.com/manifold-dev/manifold/handler"
	"github.com/manifold-dev/manifold/internal/server"
	"github.com/manifold-dev/manifold/util/logging"
)

// Module hosts the app behind its own HTTP listener: the route group
// from handler.Module mounted on a lifecycle-managed server.
func Module(config Config) fx.Option {
	return fx.Module(
		"serve",
		logging.DecorateLogger("serve"),
		handler.Module(),
		server.Module(config.HttpConfig),
	)
}
