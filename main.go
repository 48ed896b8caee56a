package main

import (
	"log"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/manifold-dev/manifold/cmd"
	"github.com/manifold-dev/manifold/util"
)

// set via -ldflags at build time
var Version string
var Buildtime string
var Commit string

func main() {
	if err := setupSentry(); err != nil {
		log.Fatalf("sentry init failed: %s", err)
	}

	// flush buffered events before the program terminates
	defer sentry.Flush(2 * time.Second)

	appVersion := "local"
	if Version != "" {
		appVersion = Version
	}

	appBuildtime, _ := time.Parse(time.RFC3339, Buildtime)

	cmd.Execute(cmd.ExecuteParams{
		Version:  appVersion,
		Compiled: appBuildtime,
	})
}

// setupSentry enables error reporting when SENTRY_DSN is set and is a
// no-op otherwise.
func setupSentry() error {
	dsn := os.Getenv("SENTRY_DSN")
	if dsn == "" {
		return nil
	}

	environment := os.Getenv("SENTRY_ENVIRONMENT")
	if environment == "" {
		environment = "local"
	}

	return sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Debug:            util.Truthy(os.Getenv("SENTRY_DEBUG")),
		TracesSampleRate: 1.0,
		EnableTracing:    true,
		Environment:      environment,
		Release:          Commit,
	})
}
