package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPMetrics exposes request-level prometheus instruments.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewHTTPMetrics registers HTTP instruments on the default registry.
func NewHTTPMetrics() *HTTPMetrics {
	return &HTTPMetrics{
		requests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tipfolio_http_requests_total",
			Help: "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "status_code"}),
		duration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tipfolio_http_request_duration_seconds",
			Help:    "HTTP request latency by route and method.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
}

// GinMiddleware records request counts and latency per route.
func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		m.requests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

// ImportMetrics counts bulk-import pipeline outcomes so operators can see
// which upsert strategy actually lands writes.
type ImportMetrics struct {
	strategyAttempts *prometheus.CounterVec
	candidates       *prometheus.CounterVec
}

// NewImportMetrics registers importer instruments on the default registry.
func NewImportMetrics() *ImportMetrics {
	return &ImportMetrics{
		strategyAttempts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tipfolio_import_upsert_strategy_total",
			Help: "Upsert strategy attempts by strategy name and outcome.",
		}, []string{"strategy", "outcome"}),
		candidates: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tipfolio_import_candidates_total",
			Help: "Import candidates by final status.",
		}, []string{"status"}),
	}
}

// RecordStrategyAttempt counts one upsert strategy attempt.
func (m *ImportMetrics) RecordStrategyAttempt(strategy, outcome string) {
	if m == nil {
		return
	}
	m.strategyAttempts.WithLabelValues(strategy, outcome).Inc()
}

// RecordCandidate counts one candidate reaching a final status.
func (m *ImportMetrics) RecordCandidate(status string) {
	if m == nil {
		return
	}
	m.candidates.WithLabelValues(status).Inc()
}
