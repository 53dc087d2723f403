package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus instruments for the scoring pipeline.
type Metrics struct {
	FlightsScored *prometheus.CounterVec // label: risk_level
	BatchSize     prometheus.Histogram
	BatchDuration prometheus.Histogram
	ModelFailures prometheus.Counter
	ModelEnabled  prometheus.Gauge
}

// New creates and registers all scoring metrics with the default registry.
func New() *Metrics {
	m := build()
	prometheus.MustRegister(
		m.FlightsScored,
		m.BatchSize,
		m.BatchDuration,
		m.ModelFailures,
		m.ModelEnabled,
	)
	return m
}

// NewForTesting creates Metrics without registering them, avoiding
// "already registered" panics across tests.
func NewForTesting() *Metrics {
	return build()
}

func build() *Metrics {
	return &Metrics{
		FlightsScored: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "preflight",
			Name:      "flights_scored_total",
			Help:      "Total flight records scored, by resulting risk level.",
		}, []string{"risk_level"}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "preflight",
			Name:      "batch_size",
			Help:      "Number of rows per scored table.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		}),
		BatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "preflight",
			Name:      "batch_duration_seconds",
			Help:      "Duration of a complete table scoring pass.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}),
		ModelFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "preflight",
			Name:      "model_failures_total",
			Help:      "Model inference failures that fell back to rule-only scoring.",
		}),
		ModelEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "preflight",
			Name:      "model_enabled",
			Help:      "1 when a classifier artifact is loaded, 0 otherwise.",
		}),
	}
}
