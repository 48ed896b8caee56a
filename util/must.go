package util

import "fmt"

// Must unwraps a value-error pair, panicking on error. It is meant
// for initialization that only fails on programming errors, like
// compiling embedded assets.
func Must[V any](v V, err error) V {
	if err != nil {
		panic(fmt.Sprintf("util.Must: %v", err))
	}

	return v
}
