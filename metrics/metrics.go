package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestCounter counts HTTP requests by status code, method, and path
	RequestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shredle_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"status", "method", "path"},
	)

	// RequestDuration measures HTTP request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shredle_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status", "method", "path"},
	)

	// RequestInProgress counts HTTP requests currently being processed
	RequestInProgress = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "shredle_http_requests_in_progress",
			Help: "Number of HTTP requests currently being processed",
		},
		[]string{"method", "path"},
	)

	// RateLimiterRejections counts rejected requests due to rate limiting
	RateLimiterRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shredle_rate_limiter_rejections_total",
			Help: "Total number of requests rejected by rate limiter",
		},
		[]string{"ip"},
	)

	// StoreOperationDuration measures solo-store operation duration
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shredle_store_operation_duration_seconds",
			Help:    "Solo store operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	// OracleRequestDuration measures OpenAI oracle call duration
	OracleRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shredle_oracle_request_duration_seconds",
			Help:    "Oracle call duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// OracleFallbacks counts oracle calls that degraded to local fallbacks
	OracleFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shredle_oracle_fallbacks_total",
			Help: "Total number of oracle calls that fell back to local logic",
		},
		[]string{"operation"},
	)

	// GuessesJudged counts judged guesses by outcome
	GuessesJudged = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shredle_guesses_judged_total",
			Help: "Total number of judged guesses",
		},
		[]string{"outcome"},
	)

	// DailyGamesCreated counts daily games created by the selection policy
	DailyGamesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shredle_daily_games_created_total",
			Help: "Total number of daily games created",
		},
	)

	// MemoryStats tracks memory usage stats
	MemoryStats = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "shredle_memory_stats_bytes",
			Help: "Memory statistics in bytes",
		},
		[]string{"type"},
	)

	// GoroutineCount tracks the number of goroutines
	GoroutineCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "shredle_goroutine_count",
			Help: "Number of goroutines",
		},
	)
)

// RecordStoreOperation records the duration of a solo-store operation
func RecordStoreOperation(operation string, table string, startTime time.Time) {
	duration := time.Since(startTime).Seconds()
	StoreOperationDuration.WithLabelValues(operation, table).Observe(duration)
}

// RecordOracleRequest records the duration of an oracle call
func RecordOracleRequest(operation string, startTime time.Time) {
	duration := time.Since(startTime).Seconds()
	OracleRequestDuration.WithLabelValues(operation).Observe(duration)
}
