package cmd

import (
	"github.com/manifold-dev/manifold/app"
	"github.com/manifold-dev/manifold/app/standalone"
	"github.com/manifold-dev/manifold/internal/server"
	"github.com/urfave/cli/v2"
)

var (
	serveCmdDescription = `The serve command starts a http server and dispatches
	incoming requests against the app's routing tree. This is
	the way to run manifold on a regular host or container.

	The command will launch the http server and blocks indefin-
	itely, processing incoming http requests.`
	serveCmd = &cli.Command{
		Name:        "serve",
		Usage:       "Start a http server and listen for requests.",
		Description: serveCmdDescription,
		Action:      serveAction,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "host",
				Aliases:  []string{"H"},
				Usage:    "The host to listen on.",
				Value:    "localhost",
				Category: "http",
				EnvVars:  []string{"HTTP_HOST"},
			},
			&cli.IntFlag{
				Name:     "port",
				Aliases:  []string{"P"},
				Usage:    "The port to listen on.",
				Value:    8080,
				Category: "http",
				EnvVars:  []string{"HTTP_PORT"},
			},
			&cli.BoolFlag{
				Name:     "h2c",
				Usage:    "Enable HTTP/2 cleartext upgrade.",
				Value:    false,
				Category: "http",
				EnvVars:  []string{"HTTP_H2C"},
			},
		},
	}
)

func serveAction(ctx *cli.Context) error {
	app, err := app.New(ctx)
	if err != nil {
		return err
	}

	config := standalone.Config{
		HttpConfig: server.HttpConfig{
			Host: ctx.String("host"),
			Port: ctx.Int("port"),
			H2c:  ctx.Bool("h2c"),
		},
	}

	return app.Run(ctx.Context, standalone.Module(config))
}

func init() {
	rootApp.Commands = append(rootApp.Commands, serveCmd)
}
