package handler

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/manifold-dev/manifold/router"
)

// maxContentLength is the hard ceiling on declared request bodies.
const maxContentLength = 1 << 30

// AppHandlerParams defines the dependencies for the app handler.
type AppHandlerParams struct {
	fx.In

	App      router.Dispatcher
	Registry *prometheus.Registry
	Log      *zap.Logger
}

// NewAppHandler creates an instrumented app handler.
func NewAppHandler(params AppHandlerParams) *AppHandler {
	return New(params.App, params.Log).WithMetrics(params.Registry)
}

// AppHandler adapts one http exchange into one dispatch call: it
// reads the body per the declared length, dispatches the request
// against the app and renders the merged response.
type AppHandler struct {
	app     router.Dispatcher
	metrics *metrics
	log     *zap.Logger
}

// New creates an app handler without instrumentation.
func New(app router.Dispatcher, log *zap.Logger) *AppHandler {
	return &AppHandler{
		app: app,
		log: log,
	}
}

// WithMetrics instruments the handler with request counters and
// latency histograms registered on reg.
func (h *AppHandler) WithMetrics(reg prometheus.Registerer) *AppHandler {
	h.metrics = newMetrics(reg)
	return h
}

func (h *AppHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
	)

	start := time.Now()

	status := h.serve(w, r, log)

	h.metrics.observe(r.Method, status, time.Since(start))
}

func (h *AppHandler) serve(w http.ResponseWriter, r *http.Request, log *zap.Logger) int {
	body, status := readBody(r)
	if status != 0 {
		log.Debug("rejecting request body", zap.Int("status", status))
		w.WriteHeader(status)
		return status
	}

	req := router.NewRequest(
		r.Method,
		router.SplitPath(r.URL.Path),
		router.QueryMap(r.URL.Query()),
		body,
	)

	res := h.app.Dispatch(r.Context(), req)

	payload, err := res.Body()
	if err != nil {
		log.Error("failed to encode response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return http.StatusInternalServerError
	}

	// Map response headers
	for k, v := range res.Header {
		for _, vv := range v {
			w.Header().Add(k, vv)
		}
	}

	if ct := res.ContentType(); ct != "" {
		w.Header().Set("Content-Type", ct)
	}

	// Write response headers and status code
	w.WriteHeader(res.Status())

	// Write response body
	if _, err := w.Write(payload); err != nil {
		log.Debug("failed to write response", zap.Error(err))
	}

	return res.Status()
}

// readBody reads exactly the number of bytes the request declares.
// It returns a non-zero status for hard rejections: 400 when the
// declared length is not a valid non-negative integer or the body
// ends early, 507 when it exceeds the ceiling. An undeclared length
// means no body.
func readBody(r *http.Request) ([]byte, int) {
	length := r.ContentLength
	if raw := r.Header.Get("Content-Length"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			return nil, http.StatusBadRequest
		}
		length = parsed
	}

	if length > maxContentLength {
		return nil, http.StatusInsufficientStorage
	}

	if length <= 0 {
		return nil, 0
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(r.Body, body); err != nil {
		return nil, http.StatusBadRequest
	}

	return body, 0
}
