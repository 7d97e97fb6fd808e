package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the validation module.
type Metrics struct {
	// Validation outcomes by scheme and reason
	Outcomes *prometheus.CounterVec

	// Operation latency for single and batch validation
	Latency *prometheus.HistogramVec

	// Submitted batch sizes
	BatchSize prometheus.Histogram
}

// New creates a new Metrics instance with all validation metrics registered.
func New() *Metrics {
	return &Metrics{
		Outcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "panguard_validation_outcomes_total",
			Help: "Total validation outcomes by scheme and reason",
		}, []string{"scheme", "reason"}),

		Latency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "panguard_validation_duration_seconds",
			Help:    "Duration of validation operations",
			Buckets: []float64{0.00001, 0.000025, 0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.01},
		}, []string{"operation"}), // operation: "card", "batch"

		BatchSize: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "panguard_validation_batch_size",
			Help:    "Number of cards per batch validation request",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 200},
		}),
	}
}

// ObserveOutcome records one validation outcome.
func (m *Metrics) ObserveOutcome(scheme, reason string) {
	if m != nil {
		m.Outcomes.WithLabelValues(scheme, reason).Inc()
	}
}

// ObserveLatency records the duration of a validation operation.
func (m *Metrics) ObserveLatency(operation string, d time.Duration) {
	if m != nil {
		m.Latency.WithLabelValues(operation).Observe(d.Seconds())
	}
}

// ObserveBatchSize records the size of a submitted batch.
func (m *Metrics) ObserveBatchSize(n int) {
	if m != nil {
		m.BatchSize.Observe(float64(n))
	}
}
