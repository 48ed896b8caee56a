package standalone

import "github.com/manifold-dev/manifold/internal/server"

// Config holds the standalone-mode settings. The listener fields are
// squashed so they read from the same flat keys the serve flags set.
type Config struct {
	HttpConfig server.HttpConfig `conf:",squash"`
}
