package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vikasdeshmukh63/ecom-backend/internal/domain/dto"
	"github.com/vikasdeshmukh63/ecom-backend/internal/i18n"
	"github.com/vikasdeshmukh63/ecom-backend/internal/middleware"
	"github.com/vikasdeshmukh63/ecom-backend/internal/service"
)

// PaymentHandler serves /payment routes.
type PaymentHandler struct {
	payments service.PaymentService
	audit    *middleware.AsyncLogger
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(payments service.PaymentService, audit *middleware.AsyncLogger) *PaymentHandler {
	return &PaymentHandler{payments: payments, audit: audit}
}

// RegisterRoutes implements RouteGroup.
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup, admin gin.HandlerFunc) {
	g := rg.Group("/payment")
	g.POST("/create", h.CreateIntent)
	g.GET("/coupon/discount", h.ApplyDiscount)
	g.POST("/coupon/new", admin, h.NewCoupon)
	g.GET("/coupon/all", admin, h.AllCoupons)
	g.DELETE("/coupon/:id", admin, h.DeleteCoupon)
}

// CreateIntent godoc
// @Summary     Create a payment intent
// @Tags        Payments
// @Accept      json
// @Produce     json
// @Param       request body dto.PaymentIntentRequest true "Amount"
// @Success     201 {object} dto.SuccessResponse{data=dto.ClientSecretResponse}
// @Failure     503 {object} dto.ErrorResponse "No payment gateway configured"
// @Router      /api/v1/payment/create [post]
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	req, err := BindJSON[dto.PaymentIntentRequest](c)
	if err != nil {
		writeBindingError(c, err)
		return
	}
	secret, err := h.payments.CreatePaymentIntent(c.Request.Context(), req.Amount)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	NewResponseBuilder(c).SuccessCreated(dto.ClientSecretResponse{ClientSecret: secret})
}

// ApplyDiscount godoc
// @Summary     Look up a coupon
// @Tags        Payments
// @Produce     json
// @Param       coupon query string true "Coupon code"
// @Success     200 {object} dto.SuccessResponse{data=dto.DiscountResponse}
// @Failure     400 {object} dto.ErrorResponse
// @Router      /api/v1/payment/coupon/discount [get]
func (h *PaymentHandler) ApplyDiscount(c *gin.Context) {
	code := strings.TrimSpace(c.Query("coupon"))
	if code == "" {
		NewResponseBuilder(c).Error(http.StatusBadRequest, i18n.ErrKeyInvalidCoupon, nil)
		return
	}
	discount, err := h.payments.ApplyDiscount(c.Request.Context(), code)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	NewResponseBuilder(c).SuccessOK(dto.DiscountResponse{Discount: discount})
}

// NewCoupon godoc
// @Summary     Create a coupon
// @Tags        Payments
// @Accept      json
// @Produce     json
// @Param       id query string true "Admin uid"
// @Param       request body dto.NewCouponRequest true "Coupon"
// @Success     201 {object} dto.SuccessResponse
// @Failure     409 {object} dto.ErrorResponse
// @Router      /api/v1/payment/coupon/new [post]
func (h *PaymentHandler) NewCoupon(c *gin.Context) {
	req, err := BindJSON[dto.NewCouponRequest](c)
	if err != nil {
		writeBindingError(c, err)
		return
	}
	coupon, err := h.payments.NewCoupon(c.Request.Context(), req.Code, req.Amount)
	if err != nil {
		middleware.AuditLogError(h.audit, c, middleware.ActionCouponCreate, "Coupon create failed", err, map[string]any{"code": req.Code})
		writeServiceError(c, err)
		return
	}
	middleware.AuditLog(h.audit, c, middleware.ActionCouponCreate, "Coupon created", map[string]any{"code": coupon.Code})
	NewResponseBuilder(c).SuccessMessage(http.StatusCreated, i18n.SuccessKeyCouponCreated, coupon, coupon.Code)
}

// AllCoupons godoc
// @Summary     List coupons
// @Tags        Payments
// @Produce     json
// @Param       id query string true "Admin uid"
// @Success     200 {object} dto.SuccessResponse
// @Router      /api/v1/payment/coupon/all [get]
func (h *PaymentHandler) AllCoupons(c *gin.Context) {
	coupons, err := h.payments.AllCoupons(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	NewResponseBuilder(c).SuccessOK(coupons)
}

// DeleteCoupon godoc
// @Summary     Delete a coupon
// @Tags        Payments
// @Produce     json
// @Param       id path string true "Coupon id"
// @Success     200 {object} dto.SuccessResponse
// @Failure     404 {object} dto.ErrorResponse
// @Router      /api/v1/payment/coupon/{id} [delete]
func (h *PaymentHandler) DeleteCoupon(c *gin.Context) {
	id := c.Param("id")
	coupon, err := h.payments.DeleteCoupon(c.Request.Context(), id)
	if err != nil {
		middleware.AuditLogError(h.audit, c, middleware.ActionCouponDelete, "Coupon delete failed", err, map[string]any{"coupon_id": id})
		writeServiceError(c, err)
		return
	}
	middleware.AuditLog(h.audit, c, middleware.ActionCouponDelete, "Coupon deleted", map[string]any{"code": coupon.Code})
	NewResponseBuilder(c).SuccessMessage(http.StatusOK, i18n.SuccessKeyCouponDeleted, coupon, coupon.Code)
}
