// Package metrics exposes prometheus collectors for comparison traffic.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Error kinds used as the "kind" label of ErrorsTotal.
const (
	KindMissingColumns = "missing_columns"
	KindParse          = "parse"
	KindBadRequest     = "bad_request"
	KindInternal       = "internal"
)

// Metrics groups the collectors the comparison handlers update.
type Metrics struct {
	registry *prometheus.Registry

	ComparisonsTotal *prometheus.CounterVec
	ErrorsTotal      *prometheus.CounterVec
	RosterRows       *prometheus.HistogramVec
}

// New creates the collectors on a private registry together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		ComparisonsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "roster_diff",
			Name:      "comparisons_total",
			Help:      "Completed comparisons by mode.",
		}, []string{"mode"}),
		ErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "roster_diff",
			Name:      "errors_total",
			Help:      "Rejected comparison requests by error kind.",
		}, []string{"kind"}),
		RosterRows: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "roster_diff",
			Name:      "rows",
			Help:      "Rows kept per roster after normalization.",
			Buckets:   []float64{10, 50, 100, 250, 500, 1000, 2500, 5000},
		}, []string{"roster"}),
	}
	reg.MustRegister(
		m.ComparisonsTotal,
		m.ErrorsTotal,
		m.RosterRows,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveComparison records one successful comparison.
func (m *Metrics) ObserveComparison(mode string, rowsA, rowsB int) {
	m.ComparisonsTotal.WithLabelValues(mode).Inc()
	m.RosterRows.WithLabelValues("file1").Observe(float64(rowsA))
	m.RosterRows.WithLabelValues("file2").Observe(float64(rowsB))
}

// ObserveError records one rejected request.
func (m *Metrics) ObserveError(kind string) {
	m.ErrorsTotal.WithLabelValues(kind).Inc()
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
