//go:build !integration

package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vikasdeshmukh63/ecom-backend/internal/circuitbreaker"
)

type fixedSize int

func (f fixedSize) Len() int { return int(f) }

func TestHealthHandler_Readiness(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		setupHandler   func() *HealthHandler
		expectedStatus int
		expectedChecks map[string]any
	}{
		{
			name:           "no checkers",
			setupHandler:   NewHealthHandler,
			expectedStatus: http.StatusOK,
			expectedChecks: map[string]any{"service": "ok"},
		},
		{
			name: "healthy circuit breaker",
			setupHandler: func() *HealthHandler {
				handler := NewHealthHandler()
				handler.RegisterCircuitBreaker("products", circuitbreaker.New(circuitbreaker.DefaultConfig()))
				return handler
			},
			expectedStatus: http.StatusOK,
			expectedChecks: map[string]any{"products_circuit": "closed"},
		},
		{
			name: "healthy mongodb",
			setupHandler: func() *HealthHandler {
				handler := NewHealthHandler()
				handler.RegisterChecker("mongodb", func(context.Context) error { return nil })
				return handler
			},
			expectedStatus: http.StatusOK,
			expectedChecks: map[string]any{"mongodb": "ok"},
		},
		{
			name: "failing mongodb",
			setupHandler: func() *HealthHandler {
				handler := NewHealthHandler()
				handler.RegisterChecker("mongodb", func(context.Context) error { return errors.New("server selection timeout") })
				return handler
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedChecks: map[string]any{"mongodb": "server selection timeout"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			tt.setupHandler().Register(router)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			var body struct {
				Status string         `json:"status"`
				Checks map[string]any `json:"checks"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			for k, v := range tt.expectedChecks {
				assert.Equal(t, v, body.Checks[k])
			}
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, "ok", body.Status)
			} else {
				assert.Equal(t, "degraded", body.Status)
			}
		})
	}
}

func TestHealthHandler_ReadinessBoundsChecks(t *testing.T) {
	handler := NewHealthHandler()
	var hadDeadline bool
	handler.RegisterChecker("mongodb", func(ctx context.Context) error {
		_, hadDeadline = ctx.Deadline()
		return nil
	})
	router := gin.New()
	handler.Register(router)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.True(t, hadDeadline)
}

func TestHealthHandler_ReadinessRunsChecksConcurrently(t *testing.T) {
	handler := NewHealthHandler()
	var started sync.WaitGroup
	started.Add(2)
	for _, name := range []string{"mongodb", "uploads"} {
		handler.RegisterChecker(name, func(ctx context.Context) error {
			started.Done()
			// Each probe waits for the other; a serial run would hit the deadline.
			waitCh := make(chan struct{})
			go func() { started.Wait(); close(waitCh) }()
			select {
			case <-waitCh:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}
	router := gin.New()
	handler.Register(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthHandler_ReportsCacheEntries(t *testing.T) {
	handler := NewHealthHandler()
	handler.SetCache(fixedSize(7))
	router := gin.New()
	handler.Register(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(7), body["cache_entries"])
}

func TestHealthHandler_Liveness(t *testing.T) {
	router := gin.New()
	NewHealthHandler().Register(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRouter_InfrastructureRoutes(t *testing.T) {
	router, _ := newTestRouter(t)
	e := newExpect(t, router)

	e.GET("/healthz").Expect().Status(http.StatusOK)
	e.GET("/metrics").Expect().Status(http.StatusOK).Body().Contains("go_goroutines")

	e.GET("/api/v1/nothing/here").Expect().
		Status(http.StatusNotFound).
		JSON().Object().
		HasValue("error", "not_found").
		HasValue("message", "Not found")
}
