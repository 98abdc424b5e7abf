//go:build !integration

package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/vikasdeshmukh63/ecom-backend/internal/circuitbreaker"
	"github.com/vikasdeshmukh63/ecom-backend/internal/domain/model"
	"github.com/vikasdeshmukh63/ecom-backend/internal/service"
)

func TestPaymentHandler_CreateIntent(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]any
		secret         string
		err            error
		expectedStatus int
	}{
		{name: "client secret", body: map[string]any{"amount": 499.99}, secret: "pi_secret", expectedStatus: http.StatusCreated},
		{name: "no gateway", body: map[string]any{"amount": 10}, err: service.ErrPaymentUnavailable, expectedStatus: http.StatusServiceUnavailable},
		{name: "missing amount", body: map[string]any{}, expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, s := newTestRouter(t)
			if tt.secret != "" || tt.err != nil {
				s.payments.On("CreatePaymentIntent", mock.Anything, mock.Anything).Return(tt.secret, tt.err)
			}

			resp := newExpect(t, router).POST("/api/v1/payment/create").WithJSON(tt.body).
				Expect().Status(tt.expectedStatus)
			if tt.secret != "" {
				resp.JSON().Object().Value("data").Object().HasValue("clientSecret", tt.secret)
			}
		})
	}
}

func TestPaymentHandler_Coupons(t *testing.T) {
	router, s := newTestRouter(t)
	coupon := &model.Coupon{Code: "SAVE100", Amount: 100}
	s.payments.On("ApplyDiscount", mock.Anything, "SAVE100").Return(100.0, nil)
	s.payments.On("ApplyDiscount", mock.Anything, "NOPE").Return(0.0, service.ErrInvalidCoupon)
	s.payments.On("NewCoupon", mock.Anything, "SAVE100", 100.0).Return(coupon, nil)
	s.payments.On("NewCoupon", mock.Anything, "DUP", 5.0).Return(nil, errors.Join(service.ErrConflict, errors.New("E11000")))
	s.payments.On("AllCoupons", mock.Anything).Return([]model.Coupon{*coupon}, nil)
	s.payments.On("DeleteCoupon", mock.Anything, testObjectID).Return(coupon, nil)
	s.payments.On("DeleteCoupon", mock.Anything, "bad").Return(nil, fmt.Errorf("coupon: %w", service.ErrInvalidID))

	e := newExpect(t, router)
	e.GET("/api/v1/payment/coupon/discount").WithQuery("coupon", "SAVE100").Expect().Status(http.StatusOK).
		JSON().Object().Value("data").Object().HasValue("discount", 100)
	e.GET("/api/v1/payment/coupon/discount").WithQuery("coupon", "NOPE").Expect().Status(http.StatusBadRequest).
		JSON().Object().HasValue("message", "Invalid coupon code")
	e.GET("/api/v1/payment/coupon/discount").Expect().Status(http.StatusBadRequest)

	e.POST("/api/v1/payment/coupon/new").WithQuery("id", testAdminID).
		WithJSON(map[string]any{"coupon": "SAVE100", "amount": 100}).
		Expect().Status(http.StatusCreated).
		JSON().Object().HasValue("message", "Coupon SAVE100 created successfully")
	e.POST("/api/v1/payment/coupon/new").WithQuery("id", testAdminID).
		WithJSON(map[string]any{"coupon": "DUP", "amount": 5}).
		Expect().Status(http.StatusConflict)
	e.POST("/api/v1/payment/coupon/new").WithJSON(map[string]any{"coupon": "X", "amount": 5}).
		Expect().Status(http.StatusUnauthorized)

	e.GET("/api/v1/payment/coupon/all").WithQuery("id", testAdminID).Expect().Status(http.StatusOK).
		JSON().Object().Value("data").Array().Length().IsEqual(1)
	e.DELETE("/api/v1/payment/coupon/"+testObjectID).WithQuery("id", testAdminID).Expect().Status(http.StatusOK).
		JSON().Object().HasValue("message", "Coupon SAVE100 deleted successfully")
	e.DELETE("/api/v1/payment/coupon/bad").WithQuery("id", testAdminID).Expect().Status(http.StatusNotFound)
}

func TestPaymentHandler_CircuitOpen(t *testing.T) {
	router, s := newTestRouter(t)
	s.payments.On("AllCoupons", mock.Anything).Return(nil, circuitbreaker.ErrCircuitOpen)

	newExpect(t, router).GET("/api/v1/payment/coupon/all").WithQuery("id", testAdminID).
		Expect().Status(http.StatusServiceUnavailable).
		JSON().Object().HasValue("error", "service_unavailable")
}
