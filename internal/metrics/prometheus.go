// Package metrics exposes the service's Prometheus instrumentation.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradejournal_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tradejournal_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"method", "path"},
	)

	// Auth metrics
	AuthAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradejournal_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"operation", "status"}, // operation: register|login, status: success|error|rate_limited
	)

	// Stats engine metrics
	StatsReports = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradejournal_stats_reports_total",
			Help: "Total number of statistics reports built",
		},
		[]string{"kind"}, // kind: user|strategy|equity_curve
	)

	StatsReportDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tradejournal_stats_report_duration_seconds",
			Help:    "Statistics report build duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"kind"},
	)

	// Database metrics
	DBQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradejournal_db_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"repository", "operation", "status"},
	)

	DBQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tradejournal_db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
		},
		[]string{"repository", "operation"},
	)
)

// Init registers all metrics with Prometheus
func Init() {
	prometheus.MustRegister(HTTPRequests)
	prometheus.MustRegister(HTTPDuration)
	prometheus.MustRegister(AuthAttempts)
	prometheus.MustRegister(StatsReports)
	prometheus.MustRegister(StatsReportDuration)
	prometheus.MustRegister(DBQueries)
	prometheus.MustRegister(DBQueryDuration)
}

// Handler returns the /metrics endpoint handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveHTTPRequest records one served request
func ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	HTTPRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordDBQuery records a database query
func RecordDBQuery(repository, operation string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	DBQueries.WithLabelValues(repository, operation, status).Inc()
	DBQueryDuration.WithLabelValues(repository, operation).Observe(duration.Seconds())
}
