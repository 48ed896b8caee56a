package server

import (
	"net/http"

	"go.uber.org/fx"
)

// HttpHandler is one mountable route: a ServeMux pattern and the
// handler serving it.
type HttpHandler struct {
	Pattern string
	Handler http.Handler
}

// HttpHandlerResult provides one route into the "handlers" group the
// server mounts at startup.
type HttpHandlerResult struct {
	fx.Out

	Handler *HttpHandler `group:"handlers"`
}

// AsHttpHandler wraps a handler into a group result mounted under
// pattern.
func AsHttpHandler(
	pattern string,
	handler http.Handler,
) HttpHandlerResult {
	return HttpHandlerResult{
		Handler: &HttpHandler{
			Pattern: pattern,
			Handler: handler,
		},
	}
}
