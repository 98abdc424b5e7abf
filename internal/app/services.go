package app

import (
	"github.com/vikasdeshmukh63/ecom-backend/config"
	"github.com/vikasdeshmukh63/ecom-backend/internal/service"
	"github.com/vikasdeshmukh63/ecom-backend/internal/service/cache"
)

// ServiceComponents holds the business services and the read cache they share.
type ServiceComponents struct {
	Cache       *cache.Store
	Coordinator *cache.Coordinator

	Users     service.UserService
	Products  service.ProductService
	Orders    service.OrderService
	Payments  service.PaymentService
	Dashboard service.DashboardService
	Logging   service.LoggingService
}

// InitializeServices builds the services over db. The logging service is only
// created when log persistence is enabled. No payment gateway is configured, so
// payment intents answer 503.
func InitializeServices(cfg config.Config, db *DatabaseComponents, photos service.PhotoRemover) *ServiceComponents {
	store := cache.NewStore()
	coordinator := cache.NewCoordinator(store)

	sc := &ServiceComponents{
		Cache:       store,
		Coordinator: coordinator,
		Users:       service.NewUserService(db.Users, coordinator),
		Products:    service.NewProductService(db.Products, photos, store, coordinator, cfg.Catalog.LatestProductsLimit),
		Orders:      service.NewOrderService(db.Orders, db.Products, store, coordinator),
		Payments:    service.NewPaymentService(db.Coupons, nil),
		Dashboard: service.NewDashboardService(db.Products, db.Orders, db.Users, store,
			cfg.Catalog.LatestTransactionsLimit),
	}
	if cfg.Database.LogsEnabled {
		sc.Logging = service.NewLoggingService(db.Logs)
	}
	return sc
}
