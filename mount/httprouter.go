package mount

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"

	"github.com/manifold-dev/manifold/handler"
	"github.com/manifold-dev/manifold/router"
)

// methods covers every method a dispatcher tree can register rules
// for; httprouter needs one registration per method.
var methods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
}

// HTTPRouter mounts the app on a julienschmidt/httprouter router
// under prefix.
func HTTPRouter(r *httprouter.Router, prefix string, app router.Dispatcher, log *zap.Logger) {
	prefix = normalize(prefix)

	h := http.StripPrefix(prefix, handler.New(app, log))
	for _, method := range methods {
		r.Handler(method, prefix+"/*path", h)
	}
}
