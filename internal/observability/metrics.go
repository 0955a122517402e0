package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Import outcomes recorded by ImportRuns.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Row outcomes recorded by ImportRows.
const (
	RowsRead     = "read"
	RowsFiltered = "filtered"
	RowsRejected = "rejected"
	RowsAccepted = "accepted"
)

// Metrics groups the catalogue import collectors.
type Metrics struct {
	ImportRuns     *prometheus.CounterVec
	ImportRows     *prometheus.CounterVec
	ImportDuration prometheus.Histogram
}

// NewMetrics creates the import collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ImportRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_import_runs_total",
				Help: "Catalogue import runs by outcome",
			},
			[]string{"status"},
		),
		ImportRows: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_import_rows_total",
				Help: "Spreadsheet rows processed by outcome",
			},
			[]string{"outcome"},
		),
		ImportDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "catalog_import_duration_seconds",
				Help:    "Time spent importing one catalogue file",
				Buckets: prometheus.DefBuckets,
			},
		),
	}

	reg.MustRegister(m.ImportRuns, m.ImportRows, m.ImportDuration)
	return m
}

// ObserveRows adds the row counters of one pipeline run.
func (m *Metrics) ObserveRows(read, filtered, rejected, accepted int) {
	if m == nil {
		return
	}
	m.ImportRows.WithLabelValues(RowsRead).Add(float64(read))
	m.ImportRows.WithLabelValues(RowsFiltered).Add(float64(filtered))
	m.ImportRows.WithLabelValues(RowsRejected).Add(float64(rejected))
	m.ImportRows.WithLabelValues(RowsAccepted).Add(float64(accepted))
}

// ObserveRun records the outcome and duration of one import.
func (m *Metrics) ObserveRun(status string, seconds float64) {
	if m == nil {
		return
	}
	m.ImportRuns.WithLabelValues(status).Inc()
	m.ImportDuration.Observe(seconds)
}

// Handler exposes the collectors of gatherer in the Prometheus text format.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
