package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vikasdeshmukh63/ecom-backend/internal/domain/model"
	"github.com/vikasdeshmukh63/ecom-backend/internal/logger"
)

// RequestLogger writes one structured line per request and, when sink is set,
// queues the same record for persistence.
func RequestLogger(sink *AsyncLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		requestID := GetRequestID(c)
		userID := GetUserID(c)

		base := logger.Logger()
		var event *zerolog.Event
		switch getLogLevel(status) {
		case model.LogLevelError:
			event = base.Error()
		case model.LogLevelWarn:
			event = base.Warn()
		default:
			event = base.Info()
		}
		event.
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("route", c.FullPath()).
			Int("status_code", status).
			Int64("duration_ms", latency.Milliseconds()).
			Str("ip", c.ClientIP()).
			Str("user_agent", c.Request.UserAgent()).
			Str("user_id", userID).
			Msg("HTTP request")

		entry := &model.LogEntry{
			Timestamp:  start,
			Level:      getLogLevel(status),
			Message:    "HTTP request",
			RequestID:  requestID,
			Method:     c.Request.Method,
			Path:       c.Request.URL.Path,
			StatusCode: status,
			DurationMS: latency.Milliseconds(),
			IP:         c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
			UserID:     userID,
		}
		if len(c.Errors) > 0 {
			entry.Error = c.Errors.Last().Error()
		}
		sink.Log(entry)
	}
}

func getLogLevel(statusCode int) string {
	switch {
	case statusCode >= 500:
		return model.LogLevelError
	case statusCode >= 400:
		return model.LogLevelWarn
	default:
		return model.LogLevelInfo
	}
}
