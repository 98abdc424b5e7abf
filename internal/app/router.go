package app

import (
	"context"

	"github.com/vikasdeshmukh63/ecom-backend/config"
	"github.com/vikasdeshmukh63/ecom-backend/internal/http"
	"github.com/vikasdeshmukh63/ecom-backend/internal/middleware"
)

// RouterComponents holds the router configuration and the background workers it started.
type RouterComponents struct {
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig

	// stoppers are run on shutdown in order.
	stoppers []func()
}

// Stop stops every background worker started by InitializeRouter.
func (rc *RouterComponents) Stop() {
	for _, stop := range rc.stoppers {
		stop()
	}
}

// InitializeRouter builds the router configuration with its rate limiter,
// idempotency store and optional async log writer.
func InitializeRouter(cfg config.Config, db *DatabaseComponents, services *ServiceComponents, photos http.PhotoStorage) *RouterComponents {
	rc := &RouterComponents{HealthHandler: http.NewHealthHandler()}

	if db != nil {
		if db.DB != nil {
			rc.HealthHandler.RegisterChecker("mongodb", func(ctx context.Context) error {
				return db.DB.HealthCheck(ctx)
			})
		}
		for name, cb := range db.CircuitBreakers {
			rc.HealthHandler.RegisterCircuitBreaker(name, cb)
		}
	}
	rc.HealthHandler.SetCache(services.Cache)

	routerCfg := http.DefaultRouterConfig()
	routerCfg.RequestTimeout = cfg.Server.RequestTimeout
	routerCfg.CORSOrigins = cfg.Server.CORSOrigins
	routerCfg.SwaggerUser = cfg.Server.SwaggerUser
	routerCfg.SwaggerPass = cfg.Server.SwaggerPass
	routerCfg.UploadDir = cfg.Server.UploadDir
	routerCfg.ProductsPerPage = cfg.Catalog.ProductsPerPage
	routerCfg.Photos = photos

	routerCfg.Users = services.Users
	routerCfg.Products = services.Products
	routerCfg.Orders = services.Orders
	routerCfg.Payments = services.Payments
	routerCfg.Dashboard = services.Dashboard

	if cfg.Server.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateWindow)
		routerCfg.RateLimiter = limiter
		rc.stoppers = append(rc.stoppers, limiter.Stop)
	}

	idempotency := middleware.NewIdempotencyStore(middleware.IdempotencyKeyTTL)
	routerCfg.Idempotency = idempotency
	rc.stoppers = append(rc.stoppers, idempotency.Stop)

	if services.Logging != nil {
		asyncLogger := middleware.NewAsyncLogger(services.Logging, middleware.DefaultAsyncLoggerConfig())
		routerCfg.AuditLogger = asyncLogger
		rc.stoppers = append(rc.stoppers, asyncLogger.Stop)
	}

	rc.Config = routerCfg
	return rc
}
