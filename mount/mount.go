// Package mount attaches a dispatcher tree to third-party http
// routers. Each adapter wraps the tree in a host handler and mounts
// it under a path prefix, so a dispatcher can serve a subtree of an
// existing application.
package mount

import "strings"

// normalize trims a trailing slash and ensures a leading one, so
// adapters can treat "" as the root mount.
func normalize(prefix string) string {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix != "" && !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}

	return prefix
}
