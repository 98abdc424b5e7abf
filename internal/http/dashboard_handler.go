package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/vikasdeshmukh63/ecom-backend/internal/service"
)

// DashboardHandler serves the admin /dashboard aggregates.
type DashboardHandler struct {
	dashboard service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboard service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// RegisterRoutes implements RouteGroup. Every route is admin only.
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup, admin gin.HandlerFunc) {
	g := rg.Group("/dashboard", admin)
	g.GET("/stats", h.Stats)
	g.GET("/pie", h.PieCharts)
	g.GET("/bar", h.BarCharts)
	g.GET("/line", h.LineCharts)
}

func serveAggregate[T any](c *gin.Context, build func(context.Context) (T, error)) {
	v, err := build(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	NewResponseBuilder(c).SuccessOK(v)
}

// Stats godoc
// @Summary     Dashboard stats
// @Description Month-over-month changes, totals, six-month charts, category shares, gender ratio and latest transactions.
// @Tags        Dashboard
// @Produce     json
// @Param       id query string true "Admin uid"
// @Success     200 {object} dto.SuccessResponse{data=model.DashboardStats}
// @Router      /api/v1/dashboard/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	serveAggregate(c, h.dashboard.Stats)
}

// PieCharts godoc
// @Summary     Dashboard pie charts
// @Tags        Dashboard
// @Produce     json
// @Param       id query string true "Admin uid"
// @Success     200 {object} dto.SuccessResponse{data=model.PieCharts}
// @Router      /api/v1/dashboard/pie [get]
func (h *DashboardHandler) PieCharts(c *gin.Context) {
	serveAggregate(c, h.dashboard.PieCharts)
}

// BarCharts godoc
// @Summary     Dashboard bar charts
// @Tags        Dashboard
// @Produce     json
// @Param       id query string true "Admin uid"
// @Success     200 {object} dto.SuccessResponse{data=model.BarCharts}
// @Router      /api/v1/dashboard/bar [get]
func (h *DashboardHandler) BarCharts(c *gin.Context) {
	serveAggregate(c, h.dashboard.BarCharts)
}

// LineCharts godoc
// @Summary     Dashboard line charts
// @Tags        Dashboard
// @Produce     json
// @Param       id query string true "Admin uid"
// @Success     200 {object} dto.SuccessResponse{data=model.LineCharts}
// @Router      /api/v1/dashboard/line [get]
func (h *DashboardHandler) LineCharts(c *gin.Context) {
	serveAggregate(c, h.dashboard.LineCharts)
}
