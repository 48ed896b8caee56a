package mount

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/manifold-dev/manifold/handler"
	"github.com/manifold-dev/manifold/router"
)

// Mux mounts the app on a gorilla/mux router under prefix.
func Mux(r *mux.Router, prefix string, app router.Dispatcher, log *zap.Logger) {
	prefix = normalize(prefix)

	h := handler.New(app, log)
	if prefix == "" {
		r.PathPrefix("/").Handler(h)
		return
	}

	stripped := http.StripPrefix(prefix, h)
	r.Path(prefix).Handler(stripped)
	r.PathPrefix(prefix + "/").Handler(stripped)
}
