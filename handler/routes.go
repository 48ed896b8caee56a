package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/manifold-dev/manifold/config"
	"github.com/manifold-dev/manifold/internal/server"
)

// NewRegistry creates the metrics registry, preloaded with the
// standard process and runtime collectors.
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return registry
}

// NewApiRoute mounts the app handler under /api/.
func NewApiRoute(handler *AppHandler) server.HttpHandlerResult {
	return server.AsHttpHandler("/api/", http.StripPrefix("/api", handler))
}

// NewHealthRoute mounts the health endpoint.
func NewHealthRoute() server.HttpHandlerResult {
	return server.AsHttpHandler("/health", http.HandlerFunc(healthHandler))
}

// NewMetricsRoute mounts the prometheus endpoint.
func NewMetricsRoute(registry *prometheus.Registry) server.HttpHandlerResult {
	return server.AsHttpHandler("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
}

// NewWebRoute serves the configured web directory at the root. With
// no directory configured, no route is mounted.
func NewWebRoute(config config.Config) server.HttpHandlerResult {
	if config.WebDir == "" {
		return server.HttpHandlerResult{}
	}

	return server.AsHttpHandler("/", http.FileServer(http.Dir(config.WebDir)))
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}
