// Package metrics provides Prometheus metrics collection for the ecommerce backend.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	cacheSubsystem     = "cache"
	dashboardSubsystem = "dashboard"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// CacheOperationsTotal tracks cache operations by key kind.
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: cacheSubsystem,
			Name:      "operations_total",
			Help:      "Read cache lookups and writes by result",
		},
		[]string{"operation", "result"},
	)

	// CacheSize tracks the number of live cache entries.
	CacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Subsystem: cacheSubsystem,
			Name:      "size",
			Help:      "Live entries in the read cache",
		},
	)

	// CacheInvalidationsTotal counts invalidation requests per affected domain.
	CacheInvalidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: cacheSubsystem,
			Name:      "invalidations_total",
			Help:      "Invalidation requests by the domain they touched",
		},
		[]string{"domain"},
	)

	// CacheEvictedKeysTotal counts keys actually removed by invalidation.
	CacheEvictedKeysTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Subsystem: cacheSubsystem,
			Name:      "evicted_keys_total",
			Help:      "Cache keys removed by invalidation",
		},
	)

	// AggregateBuildDuration tracks how long dashboard aggregates take to compute on a miss.
	AggregateBuildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Subsystem: dashboardSubsystem,
			Name:      "aggregate_build_duration_seconds",
			Help:      "Time spent computing a dashboard aggregate on a cache miss",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
		},
		[]string{"aggregate", "status"},
	)

	// OrdersTotal counts order lifecycle events.
	OrdersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_total",
			Help: "Order lifecycle events: placed, shipped, delivered, deleted",
		},
		[]string{"event"},
	)

	// CircuitBreakerState exposes breaker state (0 closed, 1 half-open, 2 open).
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"name"},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordCacheOperation records metrics for a cache operation.
func RecordCacheOperation(operation, result string) {
	CacheOperationsTotal.WithLabelValues(operation, result).Inc()
}

// UpdateCacheSize sets the cache size gauge.
func UpdateCacheSize(size int) {
	CacheSize.Set(float64(size))
}

// RecordInvalidation records one invalidation touching domain.
func RecordInvalidation(domain string) {
	CacheInvalidationsTotal.WithLabelValues(domain).Inc()
}

// RecordEvictedKeys adds n to the evicted keys counter.
func RecordEvictedKeys(n int) {
	CacheEvictedKeysTotal.Add(float64(n))
}

// RecordAggregateBuild records the duration of a dashboard aggregate computation.
func RecordAggregateBuild(aggregate string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	AggregateBuildDuration.WithLabelValues(aggregate, status).Observe(duration.Seconds())
}

// RecordOrderEvent records an order lifecycle event such as "placed" or "shipped".
func RecordOrderEvent(event string) {
	OrdersTotal.WithLabelValues(event).Inc()
}

// SetCircuitBreakerState publishes a breaker state value.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}
