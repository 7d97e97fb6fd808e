package audit

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the audit pipeline.
type Metrics struct {
	// Events accepted into the buffer, by action
	EventsEmitted *prometheus.CounterVec

	// Events dropped because the buffer was full or a flush failed
	EventsDropped *prometheus.CounterVec

	// Flush round trip latency
	FlushDuration prometheus.Histogram

	// Events per flush
	FlushBatchSize prometheus.Histogram
}

// NewMetrics creates a Metrics instance with all audit pipeline metrics registered.
func NewMetrics() *Metrics {
	return &Metrics{
		EventsEmitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "panguard_audit_events_total",
			Help: "Total audit events accepted into the pipeline by action",
		}, []string{"action"}),

		EventsDropped: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "panguard_audit_events_dropped_total",
			Help: "Total audit events dropped by cause",
		}, []string{"cause"}), // cause: "buffer_full", "store_error"

		FlushDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "panguard_audit_flush_duration_seconds",
			Help:    "Duration of audit store flushes",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),

		FlushBatchSize: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "panguard_audit_flush_batch_size",
			Help:    "Number of events persisted per flush",
			Buckets: []float64{1, 2, 4, 8, 16, 32, 64, 128},
		}),
	}
}

// IncrementEmitted records an event accepted into the buffer.
func (m *Metrics) IncrementEmitted(action string) {
	if m != nil {
		m.EventsEmitted.WithLabelValues(action).Inc()
	}
}

// IncrementDropped records events lost before persistence.
func (m *Metrics) IncrementDropped(cause string, n int) {
	if m != nil {
		m.EventsDropped.WithLabelValues(cause).Add(float64(n))
	}
}

// ObserveFlush records one store flush.
func (m *Metrics) ObserveFlush(batchSize int, d time.Duration) {
	if m != nil {
		m.FlushDuration.Observe(d.Seconds())
		m.FlushBatchSize.Observe(float64(batchSize))
	}
}
