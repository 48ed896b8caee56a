package mount

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/manifold-dev/manifold/handler"
	"github.com/manifold-dev/manifold/router"
)

// Chi mounts the app on a chi router under prefix.
func Chi(r chi.Router, prefix string, app router.Dispatcher, log *zap.Logger) {
	prefix = normalize(prefix)

	h := handler.New(app, log)
	if prefix == "" {
		r.Mount("/", h)
		return
	}

	r.Mount(prefix, http.StripPrefix(prefix, h))
}
