package http

import (
	"github.com/gin-gonic/gin"
)

// RouteGroup is a resource that registers its routes under the API prefix.
// admin guards the routes that only admins may call.
type RouteGroup interface {
	RegisterRoutes(rg *gin.RouterGroup, admin gin.HandlerFunc)
}

// routeGroups returns the resource groups that have a backing service.
func routeGroups(cfg *RouterConfig) []RouteGroup {
	var groups []RouteGroup
	if cfg.Users != nil {
		groups = append(groups, NewUserHandler(cfg.Users, cfg.AuditLogger))
	}
	if cfg.Products != nil {
		groups = append(groups, NewProductHandler(cfg.Products, cfg.Photos, cfg.AuditLogger, cfg.ProductsPerPage))
	}
	if cfg.Orders != nil {
		groups = append(groups, NewOrderHandler(cfg.Orders, cfg.AuditLogger, cfg.Idempotency))
	}
	if cfg.Payments != nil {
		groups = append(groups, NewPaymentHandler(cfg.Payments, cfg.AuditLogger))
	}
	if cfg.Dashboard != nil {
		groups = append(groups, NewDashboardHandler(cfg.Dashboard))
	}
	return groups
}
