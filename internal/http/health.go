package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/vikasdeshmukh63/ecom-backend/internal/circuitbreaker"
)

// readinessCheckTimeout bounds every dependency probe run by /readyz.
const readinessCheckTimeout = 2 * time.Second

// HealthCheckFunc probes one dependency.
type HealthCheckFunc func(ctx context.Context) error

// CacheSizer reports the number of live cache entries.
type CacheSizer interface {
	Len() int
}

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	checkers        map[string]HealthCheckFunc
	circuitBreakers map[string]*circuitbreaker.CircuitBreaker
	cache           CacheSizer
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		checkers:        make(map[string]HealthCheckFunc),
		circuitBreakers: make(map[string]*circuitbreaker.CircuitBreaker),
	}
}

// RegisterChecker adds a dependency probe to /readyz.
func (h *HealthHandler) RegisterChecker(name string, check HealthCheckFunc) {
	h.checkers[name] = check
}

// RegisterCircuitBreaker registers a circuit breaker for health monitoring.
func (h *HealthHandler) RegisterCircuitBreaker(name string, cb *circuitbreaker.CircuitBreaker) {
	h.circuitBreakers[name] = cb
}

// SetCache reports the size of c on /readyz.
func (h *HealthHandler) SetCache(c CacheSizer) {
	h.cache = c
}

// Register registers health endpoints on the router.
func (h *HealthHandler) Register(router *gin.Engine) {
	router.GET("/healthz", h.Liveness)
	router.GET("/readyz", h.Readiness)
}

// Liveness handles the liveness probe endpoint.
// @Summary     Liveness probe
// @Description Returns OK while the process is running.
// @Tags        Health
// @Produce     json
// @Success     200 {object} map[string]string "Service is alive"
// @Router      /healthz [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles the readiness probe endpoint.
// @Summary     Readiness probe
// @Description Returns OK when MongoDB answers and no circuit breaker is open. Also reports the read cache size.
// @Tags        Health
// @Produce     json
// @Success     200 {object} map[string]interface{} "Service is ready"
// @Failure     503 {object} map[string]interface{} "Service is not ready"
// @Router      /readyz [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	results := h.probe(c.Request.Context())
	healthy := true
	checks := make(map[string]any, len(results)+len(h.circuitBreakers))
	for name, err := range results {
		if err != nil {
			checks[name] = err.Error()
			healthy = false
			continue
		}
		checks[name] = "ok"
	}

	for name, cb := range h.circuitBreakers {
		stats := cb.GetStats()
		checks[name+"_circuit"] = stats.State
		healthy = healthy && stats.IsHealthy
	}

	if len(checks) == 0 {
		checks["service"] = "ok"
	}

	status, label := http.StatusOK, "ok"
	if !healthy {
		status, label = http.StatusServiceUnavailable, "degraded"
	}
	body := gin.H{"status": label, "checks": checks}
	if h.cache != nil {
		body["cache_entries"] = h.cache.Len()
	}
	c.JSON(status, body)
}

// probe runs every registered checker concurrently, each under its own deadline.
func (h *HealthHandler) probe(parent context.Context) map[string]error {
	var (
		mu      sync.Mutex
		g       errgroup.Group
		results = make(map[string]error, len(h.checkers))
	)
	for name, check := range h.checkers {
		g.Go(func() error {
			ctx, cancel := context.WithTimeout(parent, readinessCheckTimeout)
			defer cancel()
			err := check(ctx)
			mu.Lock()
			results[name] = err
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return results
}
