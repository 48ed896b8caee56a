package config

import (
	"github.com/manifold-dev/manifold/datasource"
	"github.com/manifold-dev/manifold/util/conf"
)

type Config struct {
	// LogLevel is the log level for the application
	LogLevel string `conf:"log_level"`

	// LogFormat is the log format for the application
	LogFormat string `conf:"log_format"`

	// WebDir is a directory of static files to serve at the web root
	WebDir string `conf:"web_dir"`

	// Datasource is the datasource configuration
	Datasource datasource.Config `conf:"datasource"`
}

// DefaultConfig holds the default values for the root configuration.
// Component defaults are merged in under their config namespace.
var DefaultConfig = conf.MergeDefaults(conf.DefaultConfig{
	"log_level":  "info",
	"log_format": "production",
}, "datasource", datasource.DefaultConfig)
