// Package middleware holds the gin middleware stack of the ecommerce API.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// ContextKey names values stored on the gin context.
type ContextKey string

const (
	RequestIDKey ContextKey = "request_id"
	// UserIDKey holds the uid of the caller once AdminOnly has resolved it.
	UserIDKey ContextKey = "user_id"
)

// maxRequestIDLength bounds ids accepted from callers; they end up in logs and audit entries.
const maxRequestIDLength = 64

// RequestID reuses the caller's X-Request-ID or assigns a new uuid. Ids that
// are too long or contain anything but letters, digits, '-', '_' and '.' are replaced.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if !validRequestID(id) {
			id = uuid.NewString()
		}

		c.Set(string(RequestIDKey), id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID returns the request id, or "" outside the middleware chain.
func GetRequestID(c *gin.Context) string {
	return c.GetString(string(RequestIDKey))
}

// GetUserID returns the uid of the resolved caller, or "".
func GetUserID(c *gin.Context) string {
	return c.GetString(string(UserIDKey))
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
		default:
			return false
		}
	}
	return true
}
