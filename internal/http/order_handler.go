package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vikasdeshmukh63/ecom-backend/internal/domain/dto"
	"github.com/vikasdeshmukh63/ecom-backend/internal/i18n"
	"github.com/vikasdeshmukh63/ecom-backend/internal/middleware"
	"github.com/vikasdeshmukh63/ecom-backend/internal/service"
)

// OrderHandler serves /order routes.
type OrderHandler struct {
	orders      service.OrderService
	audit       *middleware.AsyncLogger
	idempotency gin.HandlerFunc
}

// NewOrderHandler creates a new OrderHandler. Placing orders honours
// Idempotency-Key when store is non-nil.
func NewOrderHandler(orders service.OrderService, audit *middleware.AsyncLogger, store *middleware.IdempotencyStore) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		audit:  audit,
		idempotency: middleware.Idempotency(middleware.IdempotencyConfig{
			Store:   store,
			Enabled: store != nil,
		}),
	}
}

// RegisterRoutes implements RouteGroup.
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup, admin gin.HandlerFunc) {
	g := rg.Group("/order")
	g.POST("/new", h.idempotency, h.Place)
	g.GET("/my", h.MyOrders)
	g.GET("/all", admin, h.All)
	g.GET("/:id", h.Get)
	g.PUT("/:id", admin, h.Process)
	g.DELETE("/:id", admin, h.Delete)
}

// Place godoc
// @Summary     Place an order
// @Description Stores the order and reduces product stock. Retries carrying the same Idempotency-Key replay the first response.
// @Tags        Orders
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key header string false "Client retry key"
// @Param       request body dto.NewOrderRequest true "Order"
// @Success     201 {object} dto.SuccessResponse
// @Failure     400 {object} dto.ErrorResponse
// @Router      /api/v1/order/new [post]
func (h *OrderHandler) Place(c *gin.Context) {
	req, err := BindJSON[dto.NewOrderRequest](c)
	if err != nil {
		writeBindingError(c, err)
		return
	}

	order := req.ToModel()
	if err := h.orders.Place(c.Request.Context(), order); err != nil {
		writeServiceError(c, err)
		return
	}
	NewResponseBuilder(c).SuccessMessage(http.StatusCreated, i18n.SuccessKeyOrderPlaced, order)
}

// MyOrders godoc
// @Summary     Orders of a user
// @Tags        Orders
// @Produce     json
// @Param       id query string true "User uid"
// @Success     200 {object} dto.SuccessResponse
// @Failure     401 {object} dto.ErrorResponse
// @Router      /api/v1/order/my [get]
func (h *OrderHandler) MyOrders(c *gin.Context) {
	uid := c.Query(middleware.AdminIDQuery)
	if uid == "" {
		NewResponseBuilder(c).Error(http.StatusUnauthorized, i18n.ErrKeyLoginRequired, nil)
		return
	}
	orders, err := h.orders.MyOrders(c.Request.Context(), uid)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	NewResponseBuilder(c).SuccessOK(orders)
}

// All godoc
// @Summary     All orders
// @Tags        Orders
// @Produce     json
// @Param       id query string true "Admin uid"
// @Success     200 {object} dto.SuccessResponse
// @Router      /api/v1/order/all [get]
func (h *OrderHandler) All(c *gin.Context) {
	orders, err := h.orders.All(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	NewResponseBuilder(c).SuccessOK(orders)
}

// Get godoc
// @Summary     Get an order
// @Tags        Orders
// @Produce     json
// @Param       id path string true "Order id"
// @Success     200 {object} dto.SuccessResponse
// @Failure     404 {object} dto.ErrorResponse
// @Router      /api/v1/order/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	NewResponseBuilder(c).SuccessOK(order)
}

// Process godoc
// @Summary     Advance an order
// @Description Processing becomes Shipped, Shipped becomes Delivered, Delivered stays.
// @Tags        Orders
// @Produce     json
// @Param       id path string true "Order id"
// @Success     200 {object} dto.SuccessResponse
// @Failure     404 {object} dto.ErrorResponse
// @Router      /api/v1/order/{id} [put]
func (h *OrderHandler) Process(c *gin.Context) {
	id := c.Param("id")
	order, err := h.orders.Process(c.Request.Context(), id)
	if err != nil {
		middleware.AuditLogError(h.audit, c, middleware.ActionOrderProcess, "Order process failed", err, map[string]any{"order_id": id})
		writeServiceError(c, err)
		return
	}
	middleware.AuditLog(h.audit, c, middleware.ActionOrderProcess, "Order processed",
		map[string]any{"order_id": id, "status": string(order.Status)})
	NewResponseBuilder(c).SuccessMessage(http.StatusOK, i18n.SuccessKeyOrderProcessed, order)
}

// Delete godoc
// @Summary     Delete an order
// @Tags        Orders
// @Produce     json
// @Param       id path string true "Order id"
// @Success     200 {object} dto.SuccessResponse{data=dto.DeletedResponse}
// @Failure     404 {object} dto.ErrorResponse
// @Router      /api/v1/order/{id} [delete]
func (h *OrderHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.orders.Delete(c.Request.Context(), id); err != nil {
		middleware.AuditLogError(h.audit, c, middleware.ActionOrderDelete, "Order delete failed", err, map[string]any{"order_id": id})
		writeServiceError(c, err)
		return
	}
	middleware.AuditLog(h.audit, c, middleware.ActionOrderDelete, "Order deleted", map[string]any{"order_id": id})
	NewResponseBuilder(c).SuccessMessage(http.StatusOK, i18n.SuccessKeyOrderDeleted, dto.DeletedResponse{ID: id})
}
