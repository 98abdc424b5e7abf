package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vikasdeshmukh63/ecom-backend/internal/domain/model"
)

// Audit actions recorded for admin writes.
const (
	ActionProductCreate = "product.create"
	ActionProductUpdate = "product.update"
	ActionProductDelete = "product.delete"
	ActionOrderProcess  = "order.process"
	ActionOrderDelete   = "order.delete"
	ActionUserDelete    = "user.delete"
	ActionCouponCreate  = "coupon.create"
	ActionCouponDelete  = "coupon.delete"
)

// AuditLog queues an audit event describing a completed action.
func AuditLog(sink *AsyncLogger, c *gin.Context, action, message string, fields map[string]any) {
	sink.Log(auditEntry(c, model.LogLevelInfo, action, message, fields))
}

// AuditLogError queues an audit event for an action that failed.
func AuditLogError(sink *AsyncLogger, c *gin.Context, action, message string, err error, fields map[string]any) {
	entry := auditEntry(c, model.LogLevelError, action, message, fields)
	if err != nil {
		entry.Error = err.Error()
	}
	sink.Log(entry)
}

func auditEntry(c *gin.Context, level, action, message string, fields map[string]any) *model.LogEntry {
	entry := &model.LogEntry{
		Timestamp:  time.Now(),
		Level:      level,
		Message:    message,
		RequestID:  GetRequestID(c),
		Method:     c.Request.Method,
		Path:       c.Request.URL.Path,
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		UserID:     GetUserID(c),
		ActionType: action,
	}
	if len(fields) > 0 {
		entry.WithFields(fields)
	}
	return entry
}
