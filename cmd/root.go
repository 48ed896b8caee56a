package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/manifold-dev/manifold/config"
	"github.com/manifold-dev/manifold/internal/shell"
	"github.com/manifold-dev/manifold/util/conf"
	"github.com/manifold-dev/manifold/util/logging"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var (
	appName  = "manifold"
	appUsage = `A composable request routing and dispatch engine, serving
pluggable data apps over http or AWS Lambda.`
	rootApp = &cli.App{
		Name:            appName,
		Usage:           appUsage,
		HideHelpCommand: true,
		Args:            true,
		Flags: []cli.Flag{
			// general flags
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "set the log level. Options: debug, info, warn, error, panic, fatal.",
				EnvVars: []string{"MANIFOLD_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "set the log format. Options: production, development.",
				EnvVars: []string{"MANIFOLD_LOG_FORMAT"},
			},
			&cli.PathFlag{
				Name:    "config",
				Usage:   "load configuration from a json, yaml or dotenv file.",
				Aliases: []string{"f"},
				EnvVars: []string{"MANIFOLD_CONFIG"},
			},
			// app flags
			&cli.StringFlag{
				Name:     "data-dir",
				Usage:    "the directory holding one series document per channel.",
				Category: "app",
				EnvVars:  []string{"MANIFOLD_DATA_DIR"},
			},
			&cli.StringFlag{
				Name:     "web-dir",
				Usage:    "a directory of static files to serve at the web root.",
				Category: "app",
				EnvVars:  []string{"MANIFOLD_WEB_DIR"},
			},
		},
		Before: func(ctx *cli.Context) error {
			// create the logger
			log, err := createLogger(ctx)
			if err != nil {
				return err
			}

			// inject logger into cli context
			ctx.Context = logging.ContextWithLogger(ctx.Context, log)

			// parse config, layering defaults, file, env and cli flags
			cfg, err := conf.Parse[config.Config](conf.ParseOptions{
				Defaults:  config.DefaultConfig,
				EnvPrefix: "MANIFOLD_",
				FileName:  ctx.Path("config"),
				Cli:       ctx,
				CliMap: map[string]string{
					"data-dir": "datasource.data_dir",
				},
				Log: log,
			})
			if err != nil {
				return err
			}

			// inject the config into the cli context
			ctx.Context = conf.ContextWithConfig(ctx.Context, cfg)

			return nil
		},
		After: func(ctx *cli.Context) error {
			log, err := logging.LoggerFromContext(ctx.Context)
			if err != nil {
				return err
			}

			log.Sync()

			return nil
		},
	}
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:               "version",
		Usage:              "print the version",
		DisableDefaultText: true,
	}
}

type ExecuteParams struct {
	Version  string
	Compiled time.Time
}

func Execute(params ExecuteParams) {
	rootApp.Version = params.Version
	rootApp.Compiled = params.Compiled

	run(context.Background(), os.Args)
}

func run(ctx context.Context, args []string) {
	err := rootApp.RunContext(ctx, args)

	// if app exited without error, return
	if err == nil {
		return
	}

	// if the shell stopped on a signal, exit with its code
	var exitErr *shell.ExitError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.ExitCode)
	}

	fmt.Printf("exit error: %s\n", err.Error())

	os.Exit(1)
}

func createLogger(ctx *cli.Context) (*zap.Logger, error) {
	level := getLogLevelFromCLI(ctx)
	format := getLogFormatFromCLI(ctx)

	var config zap.Config
	if format == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}

	config.InitialFields = map[string]any{
		"app": "manifold",
	}

	config.Level = level

	return config.Build()
}

func getLogFormatFromCLI(ctx *cli.Context) string {
	format := ctx.String("log-format")
	if format != "" {
		return format
	}

	return "production"
}

func getLogLevelFromCLI(ctx *cli.Context) zap.AtomicLevel {
	lvl := ctx.String("log-level")

	if atom, err := zap.ParseAtomicLevel(lvl); err == nil {
		return atom
	}

	return zap.NewAtomicLevelAt(zap.InfoLevel)
}
