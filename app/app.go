package app

import (
	"github.com/manifold-dev/manifold/config"
	"github.com/manifold-dev/manifold/dataapp"
	"github.com/manifold-dev/manifold/datasource"
	"github.com/manifold-dev/manifold/internal/shell"
	"github.com/manifold-dev/manifold/util/conf"
	"github.com/manifold-dev/manifold/util/logging"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"
)

func New(ctx *cli.Context) (*shell.Shell, error) {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return nil, err
	}

	config, err := conf.GetConfigFromContext[config.Config](ctx.Context)
	if err != nil {
		return nil, err
	}

	sharedModule := fx.Module(
		"shared",
		// provide global config
		fx.Supply(config),
		// provide datasource
		datasource.Module(config.Datasource),
		// provide data app
		dataapp.Module(),
		// provide root dispatcher
		fx.Provide(NewRoot),
	)

	return shell.New(log, sharedModule), nil
}
