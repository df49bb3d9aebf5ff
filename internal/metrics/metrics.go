// Package metrics provides Prometheus metrics for the schedule core,
// adapted from the teacher's internal/metrics: a registry struct
// wrapping CounterVec/HistogramVec/GaugeVec, scraped by the HTTP
// host's /metrics endpoint.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every metric the core and host emit.
type Registry struct {
	registry prometheus.Registerer

	parsesTotal       prometheus.CounterVec
	parseFailuresTotal prometheus.CounterVec
	rowsParsedTotal    prometheus.CounterVec

	parseDuration prometheus.HistogramVec

	lastDCMAScore prometheus.GaugeVec

	mu sync.RWMutex
}

// NewRegistry registers every metric against the global registerer.
func NewRegistry() *Registry {
	return NewRegistryWithRegisterer(prometheus.DefaultRegisterer)
}

// NewRegistryWithRegisterer registers against a caller-supplied
// registerer, mainly for tests.
func NewRegistryWithRegisterer(registerer prometheus.Registerer) *Registry {
	m := &Registry{registry: registerer}

	m.parsesTotal = *prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schedcore_parses_total",
			Help: "Total parse invocations by detected format",
		},
		[]string{"format"},
	)
	m.registry.MustRegister(&m.parsesTotal)

	m.parseFailuresTotal = *prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schedcore_parse_failures_total",
			Help: "Total parse failures by schederr.Kind",
		},
		[]string{"error_kind"},
	)
	m.registry.MustRegister(&m.parseFailuresTotal)

	m.rowsParsedTotal = *prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schedcore_rows_parsed_total",
			Help: "Total XER %R rows parsed across all invocations",
		},
		[]string{"table"},
	)
	m.registry.MustRegister(&m.rowsParsedTotal)

	m.parseDuration = *prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "schedcore_parse_duration_seconds",
			Help:    "Parse+build duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"format"},
	)
	m.registry.MustRegister(&m.parseDuration)

	m.lastDCMAScore = *prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "schedcore_dcma_overall_score",
			Help: "Most recent DCMA overall score per project",
		},
		[]string{"project_id"},
	)
	m.registry.MustRegister(&m.lastDCMAScore)

	return m
}

// RecordParse records one parse invocation's format and duration.
func (m *Registry) RecordParse(format string, duration float64) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.parsesTotal.WithLabelValues(format).Inc()
	m.parseDuration.WithLabelValues(format).Observe(duration)
}

// RecordParseFailure records a failed parse by its error kind.
func (m *Registry) RecordParseFailure(errorKind string) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.parseFailuresTotal.WithLabelValues(errorKind).Inc()
}

// RecordRowsParsed adds count to the table's cumulative row counter.
func (m *Registry) RecordRowsParsed(table string, count int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.rowsParsedTotal.WithLabelValues(table).Add(float64(count))
}

// SetDCMAScore records the most recent DCMA overall score for a project.
func (m *Registry) SetDCMAScore(projectID string, score float64) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.lastDCMAScore.WithLabelValues(projectID).Set(score)
}

// Handler returns the Prometheus scrape endpoint handler.
func (m *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry.(prometheus.Gatherer), promhttp.HandlerOpts{})
}
