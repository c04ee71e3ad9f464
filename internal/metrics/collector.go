// Package metrics exposes Prometheus counters and histograms for the HTTP
// surface, pronunciation scoring and upstream AI calls.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector records application metrics on a registry
type Collector struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	scoringAttemptsTotal *prometheus.CounterVec
	activeSessions       prometheus.Gauge

	llmRequestsTotal   *prometheus.CounterVec
	llmRequestDuration *prometheus.HistogramVec
}

// NewCollector registers all metrics on reg under namespace
func NewCollector(namespace string, reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		scoringAttemptsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "scoring_attempts_total",
				Help:      "Scored pronunciation attempts by surface and feedback tier",
			},
			[]string{"surface", "tier"},
		),
		activeSessions: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "practice_sessions_active",
				Help:      "Practice sessions currently held in memory",
			},
		),
		llmRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "llm_requests_total",
				Help:      "Total number of upstream AI requests",
			},
			[]string{"kind", "status"},
		),
		llmRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "llm_request_duration_seconds",
				Help:      "Upstream AI request duration in seconds",
				Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
			},
			[]string{"kind"},
		),
	}
}

// RecordHTTPRequest records one served request. path should be the route
// pattern, not the raw URL, to keep label cardinality bounded.
func (c *Collector) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	c.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	c.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordScore counts a scored attempt
func (c *Collector) RecordScore(surface, tier string) {
	c.scoringAttemptsTotal.WithLabelValues(surface, tier).Inc()
}

// RecordLLMRequest records an upstream AI call. kind is reply, grammar or
// transcription; status is ok or an error class.
func (c *Collector) RecordLLMRequest(kind, status string, duration time.Duration) {
	c.llmRequestsTotal.WithLabelValues(kind, status).Inc()
	c.llmRequestDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// SetActiveSessions reports the in-memory practice session count
func (c *Collector) SetActiveSessions(n int) {
	c.activeSessions.Set(float64(n))
}
