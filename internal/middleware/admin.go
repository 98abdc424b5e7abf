package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vikasdeshmukh63/ecom-backend/internal/domain/dto"
	"github.com/vikasdeshmukh63/ecom-backend/internal/domain/model"
	"github.com/vikasdeshmukh63/ecom-backend/internal/i18n"
	"github.com/vikasdeshmukh63/ecom-backend/internal/logger"
	"github.com/vikasdeshmukh63/ecom-backend/internal/service"
)

// AdminIDQuery is the query parameter identifying the caller of admin routes.
const AdminIDQuery = "id"

// UserFinder looks up a user by uid.
type UserFinder interface {
	Get(ctx context.Context, id string) (*model.User, error)
}

// AdminOnly admits callers whose ?id= names an admin user.
// A missing id or unknown user gives 401, a non-admin user 403.
func AdminOnly(users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		locale := i18n.GetLocale(c)
		translator := i18n.GetTranslator()

		abort := func(status int, code, key string) {
			c.AbortWithStatusJSON(status, dto.NewError(code, translator.Translate(key, locale)).
				WithRequestID(GetRequestID(c)))
		}

		id := c.Query(AdminIDQuery)
		if id == "" {
			abort(http.StatusUnauthorized, dto.ErrCodeUnauthorized, i18n.ErrKeyLoginRequired)
			return
		}

		user, err := users.Get(c.Request.Context(), id)
		switch {
		case errors.Is(err, service.ErrNotFound):
			abort(http.StatusUnauthorized, dto.ErrCodeUnauthorized, i18n.ErrKeyUnauthorized)
			return
		case err != nil:
			log := logger.Logger()
			log.Error().Err(err).Str("request_id", GetRequestID(c)).Msg("Admin lookup failed")
			abort(http.StatusServiceUnavailable, dto.ErrCodeServiceUnavailable, i18n.ErrKeyServiceUnavailable)
			return
		}

		c.Set(string(UserIDKey), user.ID)
		if !user.IsAdmin() {
			abort(http.StatusForbidden, dto.ErrCodeForbidden, i18n.ErrKeyForbidden)
			return
		}

		c.Next()
	}
}
