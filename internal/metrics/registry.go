// Package metrics instruments predicate evaluation with Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Config configures a Registry.
type Config struct {
	Namespace string
	Buckets   []float64
}

// DefaultConfig returns a Config with a namespace and latency buckets
// sized for microsecond-to-millisecond predicate evaluation.
func DefaultConfig() Config {
	return Config{
		Namespace: "matchql",
		Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05, .1},
	}
}

// Registry holds the Prometheus collectors for one or more
// instrumented Predicates.
type Registry struct {
	config   Config
	registry *prometheus.Registry

	testsTotal      *prometheus.CounterVec
	testDuration    prometheus.Histogram
	validationTotal *prometheus.CounterVec
}

// NewRegistry creates and registers a fresh metrics registry.
func NewRegistry(config Config) *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{config: config, registry: reg}

	r.testsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: config.Namespace,
		Subsystem: "predicate",
		Name:      "tests_total",
		Help:      "Total number of Predicate.Test evaluations, by result.",
	}, []string{"matched"})

	r.testDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: config.Namespace,
		Subsystem: "predicate",
		Name:      "test_duration_seconds",
		Help:      "Predicate.Test evaluation duration in seconds.",
		Buckets:   config.Buckets,
	})

	r.validationTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: config.Namespace,
		Subsystem: "predicate",
		Name:      "validations_total",
		Help:      "Total number of Predicate.Validate calls, by outcome.",
	}, []string{"valid"})

	reg.MustRegister(r.testsTotal, r.testDuration, r.validationTotal)
	return r
}

// PrometheusRegistry returns the underlying Prometheus registry, for
// hosts that want to expose it via an HTTP handler.
func (r *Registry) PrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// ObserveTest records one Predicate.Test call.
func (r *Registry) ObserveTest(d time.Duration, matched bool) {
	r.testDuration.Observe(d.Seconds())
	r.testsTotal.WithLabelValues(boolLabel(matched)).Inc()
}

// ObserveValidation records one Predicate.Validate call.
func (r *Registry) ObserveValidation(valid bool) {
	r.validationTotal.WithLabelValues(boolLabel(valid)).Inc()
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
