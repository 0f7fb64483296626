package evaluator

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "gometapath"
	subsystem = "function"
)

// DefaultMetrics is used by evaluators and dynamic contexts that are not given
// their own Metrics. It is not registered with any registry.
var DefaultMetrics = NewMetrics()

// Metrics holds prometheus metrics for function execution.
type Metrics struct {
	executionTime *prometheus.HistogramVec
	cacheLookups  *prometheus.CounterVec
}

// NewMetrics creates an unregistered set of metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		executionTime: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "execution_duration_seconds",
				Help:      "Function execution time in seconds, including argument conversion.",
				Buckets:   prometheus.ExponentialBuckets(0.000001, 4, 10), // 1µs to ~0.26s
			},
			[]string{"function", "result"}, // "success" or "error"
		),
		cacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "result_cache_lookups_total",
				Help:      "Dynamic context result cache lookups by outcome.",
			},
			[]string{"result"}, // "hit" or "miss"
		),
	}
}

// ObserveExecution records the duration of one function execution.
func (m *Metrics) ObserveExecution(function string, durationSeconds float64, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	m.executionTime.WithLabelValues(function, result).Observe(durationSeconds)
}

// ObserveCacheLookup records a result cache lookup.
func (m *Metrics) ObserveCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// MustRegister registers all metrics with registry.
func (m *Metrics) MustRegister(registry prometheus.Registerer) {
	registry.MustRegister(m.executionTime, m.cacheLookups)
}
