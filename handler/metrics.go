package handler

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the request instrumentation of an app handler.
type metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)

	return &metrics{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "manifold",
			Name:      "requests_total",
			Help:      "Total number of dispatched requests.",
		}, []string{"method", "status"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "manifold",
			Name:      "request_duration_seconds",
			Help:      "Request dispatch duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}
}

// observe records one request. A nil receiver is a no-op, so an
// uninstrumented handler records nothing.
func (m *metrics) observe(method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}

	m.requestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}
