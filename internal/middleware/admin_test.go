//go:build !integration

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/vikasdeshmukh63/ecom-backend/internal/domain/model"
	"github.com/vikasdeshmukh63/ecom-backend/internal/service"
)

type userFinderFunc func(ctx context.Context, id string) (*model.User, error)

func (f userFinderFunc) Get(ctx context.Context, id string) (*model.User, error) { return f(ctx, id) }

func TestAdminOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)

	users := userFinderFunc(func(_ context.Context, id string) (*model.User, error) {
		switch id {
		case "admin-1":
			return &model.User{ID: id, Role: model.RoleAdmin}, nil
		case "user-1":
			return &model.User{ID: id, Role: model.RoleUser}, nil
		case "broken":
			return nil, errors.New("connection reset")
		}
		return nil, service.ErrNotFound
	})

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantUserID string
	}{
		{name: "admin passes", query: "?id=admin-1", wantStatus: http.StatusOK, wantUserID: "admin-1"},
		{name: "missing id", query: "", wantStatus: http.StatusUnauthorized},
		{name: "unknown user", query: "?id=ghost", wantStatus: http.StatusUnauthorized},
		{name: "regular user", query: "?id=user-1", wantStatus: http.StatusForbidden},
		{name: "lookup failure", query: "?id=broken", wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			r := gin.New()
			r.GET("/admin", AdminOnly(users), func(c *gin.Context) {
				seen = GetUserID(c)
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin"+tt.query, nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantUserID, seen)
		})
	}
}
