package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vikasdeshmukh63/ecom-backend/internal/circuitbreaker"
	"github.com/vikasdeshmukh63/ecom-backend/internal/domain/dto"
	"github.com/vikasdeshmukh63/ecom-backend/internal/i18n"
	"github.com/vikasdeshmukh63/ecom-backend/internal/service"
)

// writeServiceError maps a service error onto a status code and error envelope.
func writeServiceError(c *gin.Context, err error) {
	rb := NewResponseBuilder(c)

	var vErr *dto.ValidationError
	switch {
	case errors.As(err, &vErr):
		rb.ErrorWithDetails(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody,
			map[string]string{vErr.Field: vErr.Message}, err)
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrInvalidID):
		rb.Error(http.StatusNotFound, i18n.ErrKeyNotFound, err)
	case errors.Is(err, service.ErrInvalidCoupon):
		rb.Error(http.StatusBadRequest, i18n.ErrKeyInvalidCoupon, err)
	case errors.Is(err, service.ErrConflict):
		rb.Error(http.StatusConflict, i18n.ErrKeyConflict, err)
	case errors.Is(err, service.ErrPaymentUnavailable):
		rb.Error(http.StatusServiceUnavailable, i18n.ErrKeyPaymentUnavailable, err)
	case errors.Is(err, circuitbreaker.ErrCircuitOpen):
		rb.Error(http.StatusServiceUnavailable, i18n.ErrKeyServiceUnavailable, err)
	case errors.Is(err, context.DeadlineExceeded):
		rb.Error(http.StatusGatewayTimeout, i18n.ErrKeyTimeout, err)
	default:
		rb.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
	}
}

// writeBindingError answers a request whose body, form or query did not bind.
func writeBindingError(c *gin.Context, err error) {
	var vErr *dto.ValidationError
	if errors.As(err, &vErr) {
		writeServiceError(c, err)
		return
	}
	NewResponseBuilder(c).ErrorWithDetails(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, bindingDetails(err), err)
}
