package ratelimit

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposes rate limiting counters. A nil *Metrics is valid and
// records nothing, so tests and tools can skip Prometheus registration.
type Metrics struct {
	ChecksTotal   *prometheus.CounterVec
	CheckDuration prometheus.Histogram
}

// NewMetrics registers the rate limit metrics on the default registry.
func NewMetrics() *Metrics {
	return &Metrics{
		ChecksTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "panguard_ratelimit_checks_total",
			Help: "Total number of rate limit checks by outcome",
		}, []string{"outcome"}),
		CheckDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "panguard_ratelimit_check_duration_seconds",
			Help:    "Latency of rate limit store checks in seconds",
			Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025},
		}),
	}
}

// ObserveCheck records one rate limit check and its store latency.
func (m *Metrics) ObserveCheck(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.ChecksTotal.WithLabelValues(outcome).Inc()
	m.CheckDuration.Observe(d.Seconds())
}
