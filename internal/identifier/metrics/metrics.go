package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the identifier module.
type Metrics struct {
	ValidationsTotal  *prometheus.CounterVec
	ValidationSeconds prometheus.Histogram
	Normalizations    prometheus.Counter
}

// New creates and registers the module metrics on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the module metrics on reg; tests pass a fresh
// registry to avoid duplicate registration.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ValidationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "clinid_identifier_validations_total",
			Help: "Total number of identifier validations by outcome",
		}, []string{"outcome"}),
		ValidationSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "clinid_identifier_validation_seconds",
			Help:    "Duration of identifier validation calls",
			Buckets: prometheus.DefBuckets,
		}),
		Normalizations: factory.NewCounter(prometheus.CounterOpts{
			Name: "clinid_identifier_normalizations_total",
			Help: "Total number of national-ID identifiers rewritten to normalized form",
		}),
	}
}

// ObserveValidation records one validation call with its outcome label
// and duration in seconds.
func (m *Metrics) ObserveValidation(outcome string, seconds float64) {
	m.ValidationsTotal.WithLabelValues(outcome).Inc()
	m.ValidationSeconds.Observe(seconds)
}

// IncrementNormalizations counts one in-place national-ID rewrite.
func (m *Metrics) IncrementNormalizations() {
	m.Normalizations.Inc()
}
