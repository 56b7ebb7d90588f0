// Package metrics provides observability for the photo disclosure module.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the disclosure pipeline.
// All methods are nil-safe so tests can pass a nil *Metrics.
type Metrics struct {
	// Disclosure outcomes by result: "disclosed", "invalid_input",
	// "not_found", "encryption_failed", "watermark_failed", "internal".
	DisclosureOutcome *prometheus.CounterVec

	// Latency of the individual pipeline stages.
	StageLatency *prometheus.HistogramVec

	// Overall disclosure latency.
	DiscloseLatency prometheus.Histogram
}

// New creates a Metrics instance with all disclosure metrics registered.
func New() *Metrics {
	return &Metrics{
		DisclosureOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "fotogate_disclosure_outcomes_total",
			Help: "Total photo disclosure outcomes by result",
		}, []string{"result"}),

		StageLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fotogate_disclosure_stage_duration_seconds",
			Help:    "Duration of disclosure pipeline stages",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"stage"}), // stage: "lookup", "watermark", "encrypt"

		DiscloseLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "fotogate_disclosure_duration_seconds",
			Help:    "Duration of the full disclosure pipeline",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

// IncrementOutcome records a disclosure result.
func (m *Metrics) IncrementOutcome(result string) {
	if m != nil {
		m.DisclosureOutcome.WithLabelValues(result).Inc()
	}
}

// ObserveStageLatency records the duration of one pipeline stage.
func (m *Metrics) ObserveStageLatency(stage string, d time.Duration) {
	if m != nil {
		m.StageLatency.WithLabelValues(stage).Observe(d.Seconds())
	}
}

// ObserveDiscloseLatency records the total pipeline duration.
func (m *Metrics) ObserveDiscloseLatency(d time.Duration) {
	if m != nil {
		m.DiscloseLatency.Observe(d.Seconds())
	}
}
