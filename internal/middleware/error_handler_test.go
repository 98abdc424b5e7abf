//go:build !integration

package middleware

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/vikasdeshmukh63/ecom-backend/internal/logger"
)

func TestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		handler        gin.HandlerFunc
		acceptLanguage string
		expectedStatus int
		mustContain    []string
		expectLog      bool
	}{
		{
			name: "unwritten error becomes a 500",
			handler: func(c *gin.Context) {
				_ = c.Error(errors.New("mongodb: connection reset"))
			},
			expectedStatus: http.StatusInternalServerError,
			mustContain:    []string{"internal_error", "An unexpected error occurred"},
			expectLog:      true,
		},
		{
			name: "500 message follows Accept-Language",
			handler: func(c *gin.Context) {
				_ = c.Error(errors.New("mongodb: connection reset"))
			},
			acceptLanguage: "pt-BR",
			expectedStatus: http.StatusInternalServerError,
			mustContain:    []string{"Ocorreu um erro inesperado"},
			expectLog:      true,
		},
		{
			name: "written response is kept",
			handler: func(c *gin.Context) {
				_ = c.Error(errors.New("circuit breaker is open"))
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service_unavailable"})
			},
			expectedStatus: http.StatusServiceUnavailable,
			mustContain:    []string{"service_unavailable"},
			expectLog:      true,
		},
		{
			name: "no errors",
			handler: func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"data": []string{"electronics"}})
			},
			expectedStatus: http.StatusOK,
			mustContain:    []string{"electronics"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			logger.InitWithWriter("info", false, &logs)
			t.Cleanup(func() { logger.Init("info", false) })

			router := gin.New()
			router.Use(RequestID(), func(c *gin.Context) {
				c.Set(string(UserIDKey), "admin-1")
				c.Next()
			}, ErrorHandler())
			router.GET("/api/v1/product/categories", tt.handler)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/product/categories", nil)
			if tt.acceptLanguage != "" {
				req.Header.Set("Accept-Language", tt.acceptLanguage)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			for _, substr := range tt.mustContain {
				assert.Contains(t, w.Body.String(), substr)
			}
			if tt.expectLog {
				assert.Contains(t, logs.String(), `"user_id":"admin-1"`)
				assert.Contains(t, logs.String(), `"message":"request error"`)
			} else {
				assert.Empty(t, logs.String())
			}
		})
	}
}
