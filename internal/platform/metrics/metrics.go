package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the HTTP-level Prometheus metrics shared by all handlers.
// Module-specific metrics live next to their module.
type Metrics struct {
	RequestDuration *prometheus.HistogramVec
	RequestsTotal   *prometheus.CounterVec
}

// New creates a new Metrics instance with all HTTP metrics registered.
func New() *Metrics {
	return &Metrics{
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "panguard_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by method and route",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "route"}),

		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "panguard_http_requests_total",
			Help: "Total HTTP requests by method, route, and status code",
		}, []string{"method", "route", "status"}),
	}
}

// ObserveRequest records one served request. Safe on a nil receiver so
// handlers can run without metrics in tests.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if m != nil {
		m.RequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
		m.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	}
}
