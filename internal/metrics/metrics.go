// Package metrics exposes Prometheus metrics for country queries and HTTP traffic.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Query names used as the "query" label.
const (
	QueryLanguage   = "language"
	QueryPopulation = "population"
	QueryArea       = "area"
	QueryView       = "view"
)

// Outcome label values.
const (
	OutcomeOK    = "ok"
	OutcomeEmpty = "empty"
	OutcomeError = "error"
)

// Metrics holds the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	// Queries by query name and outcome
	Queries *prometheus.CounterVec

	// Rows returned per query
	ResultRows *prometheus.HistogramVec

	// HTTP request latency by route pattern and status class
	RequestDuration *prometheus.HistogramVec

	// Records in the loaded dataset
	DatasetRecords prometheus.Gauge
}

// New creates a Metrics instance on its own registry, so several servers
// (or tests) can coexist in one process.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		Queries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "countries_queries_total",
			Help: "Country queries by query name and outcome",
		}, []string{"query", "outcome"}),

		ResultRows: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "countries_query_result_rows",
			Help:    "Number of rows returned by country queries",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
		}, []string{"query"}),

		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "countries_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status class",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
		}, []string{"route", "status"}),

		DatasetRecords: factory.NewGauge(prometheus.GaugeOpts{
			Name: "countries_dataset_records",
			Help: "Number of records in the loaded dataset",
		}),
	}
}

// ObserveQuery records one query and the size of its result.
func (m *Metrics) ObserveQuery(query string, rows int, err error) {
	if m == nil {
		return
	}

	outcome := OutcomeOK
	switch {
	case err != nil:
		outcome = OutcomeError
	case rows == 0:
		outcome = OutcomeEmpty
	}
	m.Queries.WithLabelValues(query, outcome).Inc()

	if err == nil {
		m.ResultRows.WithLabelValues(query).Observe(float64(rows))
	}
}

// ObserveRequest records the latency of an HTTP request.
func (m *Metrics) ObserveRequest(route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(route, statusClass(status)).Observe(d.Seconds())
}

// SetDatasetRecords records the size of the loaded dataset.
func (m *Metrics) SetDatasetRecords(n int) {
	if m == nil {
		return
	}
	m.DatasetRecords.Set(float64(n))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
