package monitor

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "facttracker"

// Import record outcomes
const (
	ImportResultImported = "imported"
	ImportResultFailed   = "failed"
)

// Metrics holds all Prometheus metrics for the fact tracker.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	RequestsInFlight    prometheus.Gauge
	ImportRecordsTotal  *prometheus.CounterVec
	ImportBatchesTotal  prometheus.Counter
	ReportRowsTotal     prometheus.Counter
}

// NewMetrics creates and registers all Prometheus metrics using a dedicated registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,

		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests by method, route and status code.",
			},
			[]string{"method", "route", "status"},
		),

		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds.",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"method", "route"},
		),

		RequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "requests_in_flight",
				Help:      "Number of HTTP requests currently being served.",
			},
		),

		ImportRecordsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "import_records_total",
				Help:      "Bulk import records by outcome.",
			},
			[]string{"result"},
		),

		ImportBatchesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "import_batches_total",
				Help:      "Number of parsed bulk import batches.",
			},
		),

		ReportRowsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "report_rows_total",
				Help:      "Number of execution fact rows written to CSV reports.",
			},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.RequestsInFlight,
		m.ImportRecordsTotal,
		m.ImportBatchesTotal,
		m.ReportRowsTotal,
	)

	return m
}

// RecordRequest records a completed HTTP request.
func (m *Metrics) RecordRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordImportBatch counts a batch that parsed successfully.
func (m *Metrics) RecordImportBatch() {
	if m == nil {
		return
	}
	m.ImportBatchesTotal.Inc()
}

// RecordImportRecord counts one processed import record.
func (m *Metrics) RecordImportRecord(result string) {
	if m == nil {
		return
	}
	m.ImportRecordsTotal.WithLabelValues(result).Inc()
}

// RecordReportRows adds rows written to a CSV report.
func (m *Metrics) RecordReportRows(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.ReportRowsTotal.Add(float64(n))
}

// InFlight increments the in-flight gauge and returns the matching decrement.
func (m *Metrics) InFlight() func() {
	if m == nil {
		return func() {}
	}
	m.RequestsInFlight.Inc()
	return m.RequestsInFlight.Dec
}
