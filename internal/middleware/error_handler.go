package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vikasdeshmukh63/ecom-backend/internal/domain/dto"
	"github.com/vikasdeshmukh63/ecom-backend/internal/i18n"
	"github.com/vikasdeshmukh63/ecom-backend/internal/logger"
)

// ErrorHandler logs errors attached with c.Error. When no handler wrote a
// response it answers with a translated 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last()
		requestID := GetRequestID(c)
		log := logger.Logger()
		log.Error().
			Str("request_id", requestID).
			Str("user_id", GetUserID(c)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("errors", len(c.Errors)).
			Err(err.Err).
			Msg("request error")

		if !c.Writer.Written() {
			message := i18n.GetTranslator().Translate(i18n.ErrKeyInternalError, i18n.GetLocale(c))
			c.JSON(http.StatusInternalServerError, dto.NewError(dto.ErrCodeInternal, message).WithRequestID(requestID))
		}
	}
}
