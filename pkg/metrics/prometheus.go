// Package metrics provides Prometheus metrics for the scouting service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Record store metrics
	tableLoads        *prometheus.CounterVec
	tableSaves        *prometheus.CounterVec
	tableAppends      *prometheus.CounterVec
	corruptRecoveries *prometheus.CounterVec
	tableRows         *prometheus.GaugeVec

	// Reporting pipeline metrics
	reportsCreated    prometheus.Counter
	chartSpecs        *prometheus.CounterVec
	radarPlaceholders prometheus.Counter
	pdfExports        prometheus.Counter
	pdfExportErrors   prometheus.Counter
	pdfExportDuration prometheus.Histogram

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec
	errorsByType        *prometheus.CounterVec
	errorLatency        *prometheus.HistogramVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid the default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "scouting",
		subsystem:        "reports",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.tableLoads = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "table_loads_total",
		Help:      "Total number of table loads by table name",
	}, []string{"table"})

	m.tableSaves = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "table_saves_total",
		Help:      "Total number of full-table saves by table name",
	}, []string{"table"})

	m.tableAppends = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "table_appends_total",
		Help:      "Total number of record appends by table name",
	}, []string{"table"})

	m.corruptRecoveries = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "table_corrupt_recoveries_total",
		Help:      "Times a missing or malformed table file was recovered as empty",
	}, []string{"table"})

	m.tableRows = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "table_rows",
		Help:      "Row count observed on the most recent load, by table name",
	}, []string{"table"})

	m.reportsCreated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "reports_created_total",
		Help:      "Total number of scouting reports created",
	})

	m.chartSpecs = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "chart_specs_total",
		Help:      "Chart specifications produced, by chart kind",
	}, []string{"kind"})

	m.radarPlaceholders = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "radar_placeholders_total",
		Help:      "Radar requests that degraded to a placeholder (fewer than 3 axes)",
	})

	m.pdfExports = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pdf_exports_total",
		Help:      "Total number of PDF report exports",
	})

	m.pdfExportErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pdf_export_errors_total",
		Help:      "PDF exports that failed to produce an output file",
	})

	m.pdfExportDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pdf_export_duration_milliseconds",
		Help:      "Histogram of PDF export duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint and method",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorsByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_endpoint_total",
		Help:      "Errors by endpoint, method, and error type",
	}, []string{"endpoint", "method", "error_type"})

	m.errorsByType = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_type_total",
		Help:      "Errors by type and severity",
	}, []string{"error_type", "severity"})

	m.errorLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "error_latency_milliseconds",
		Help:      "Latency of requests that ended in an error",
		Buckets:   m.histogramBuckets,
	}, []string{"component", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "memory_usage_bytes",
		Help:      "Current allocated heap memory in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "goroutines",
		Help:      "Current number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "gc_pause_milliseconds",
		Help:      "Average garbage collection pause time in milliseconds",
		Buckets:   m.histogramBuckets,
	})
}

// GetRegistry exposes the custom registry for the /healthz handler.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Record store helpers.

func RecordTableLoad(table string) {
	if globalManager.enabled {
		globalManager.tableLoads.WithLabelValues(table).Inc()
	}
}

func RecordTableSave(table string) {
	if globalManager.enabled {
		globalManager.tableSaves.WithLabelValues(table).Inc()
	}
}

func RecordTableAppend(table string) {
	if globalManager.enabled {
		globalManager.tableAppends.WithLabelValues(table).Inc()
	}
}

func RecordCorruptRecovery(table string) {
	if globalManager.enabled {
		globalManager.corruptRecoveries.WithLabelValues(table).Inc()
	}
}

func SetTableRows(table string, n int) {
	if globalManager.enabled {
		globalManager.tableRows.WithLabelValues(table).Set(float64(n))
	}
}

// Reporting pipeline helpers.

func RecordReportCreated() {
	if globalManager.enabled {
		globalManager.reportsCreated.Inc()
	}
}

func RecordChartSpec(kind string) {
	if globalManager.enabled {
		globalManager.chartSpecs.WithLabelValues(kind).Inc()
	}
}

func RecordRadarPlaceholder() {
	if globalManager.enabled {
		globalManager.radarPlaceholders.Inc()
	}
}

func RecordPDFExport(durationMs float64) {
	if globalManager.enabled {
		globalManager.pdfExports.Inc()
		globalManager.pdfExportDuration.Observe(durationMs)
	}
}

func RecordPDFExportError() {
	if globalManager.enabled {
		globalManager.pdfExportErrors.Inc()
	}
}

// HTTP helpers.

func RecordHTTPRequest(endpoint, method, statusCode string) {
	if globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	if globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
	}
}

func RecordErrorByEndpoint(endpoint, method, errorType string) {
	if globalManager.enabled {
		globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	}
}

func RecordErrorByType(errorType, severity string) {
	if globalManager.enabled {
		globalManager.errorsByType.WithLabelValues(errorType, severity).Inc()
	}
}

func RecordErrorLatency(component, errorType string, durationMs float64) {
	if globalManager.enabled {
		globalManager.errorLatency.WithLabelValues(component, errorType).Observe(durationMs)
	}
}

// System helpers.

func UpdateSystemMemoryUsage(bytes uint64) {
	if globalManager.enabled {
		globalManager.systemMemoryUsage.Set(float64(bytes))
	}
}

func UpdateSystemGoroutineCount(n int) {
	if globalManager.enabled {
		globalManager.systemGoroutineCount.Set(float64(n))
	}
}

func RecordSystemGCPauseTime(durationMs float64) {
	if globalManager.enabled {
		globalManager.systemGCPauseTime.Observe(durationMs)
	}
}
