package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/vikasdeshmukh63/ecom-backend/internal/domain/dto"
	"github.com/vikasdeshmukh63/ecom-backend/internal/i18n"
	"github.com/vikasdeshmukh63/ecom-backend/internal/metrics"
	"github.com/vikasdeshmukh63/ecom-backend/internal/middleware"
	"github.com/vikasdeshmukh63/ecom-backend/internal/service"
)

// APIPrefix is the path prefix of every business route.
const APIPrefix = "/api/v1"

// RouterConfig holds router configuration options.
type RouterConfig struct {
	RateLimiter    *middleware.RateLimiter
	RequestTimeout time.Duration
	CORSOrigins    []string
	SwaggerUser    string
	SwaggerPass    string
	// UploadDir is served under /uploads when set.
	UploadDir       string
	ProductsPerPage int

	AuditLogger *middleware.AsyncLogger
	Idempotency *middleware.IdempotencyStore
	Photos      PhotoStorage

	Users     service.UserService
	Products  service.ProductService
	Orders    service.OrderService
	Payments  service.PaymentService
	Dashboard service.DashboardService
}

// DefaultRouterConfig returns the default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RequestTimeout:  middleware.DefaultRequestTimeout,
		ProductsPerPage: 8,
	}
}

// NewRouter creates and configures the Gin router of the ecommerce API.
func NewRouter(healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	registerValidators()

	router := gin.New()
	router.NoRoute(func(c *gin.Context) {
		NewResponseBuilder(c).Error(http.StatusNotFound, i18n.ErrKeyNotFound, nil)
	})

	configureGlobalMiddleware(router, &cfg)
	registerInfrastructureRoutes(router, healthHandler, &cfg)

	api := router.Group(APIPrefix)
	if cfg.RequestTimeout > 0 {
		api.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	admin := adminGuard(cfg.Users)
	for _, group := range routeGroups(&cfg) {
		group.RegisterRoutes(api, admin)
	}

	return router
}

// configureGlobalMiddleware sets up middleware applied to all routes.
func configureGlobalMiddleware(router *gin.Engine, cfg *RouterConfig) {
	router.Use(
		middleware.CORS(cfg.CORSOrigins),
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression(),
		middleware.RequestLogger(cfg.AuditLogger),
		middleware.ErrorHandler(),
	)

	if cfg.RateLimiter != nil {
		router.Use(cfg.RateLimiter.RateLimit())
	}
}

// registerInfrastructureRoutes registers health, metrics, uploads and documentation routes.
func registerInfrastructureRoutes(router *gin.Engine, healthHandler *HealthHandler, cfg *RouterConfig) {
	if healthHandler != nil {
		healthHandler.Register(router)
	}
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.UploadDir != "" {
		router.Static("/uploads", cfg.UploadDir)
	}

	// Swagger with optional basic auth
	if cfg.SwaggerUser != "" && cfg.SwaggerPass != "" {
		authorized := router.Group("/swagger", gin.BasicAuth(gin.Accounts{
			cfg.SwaggerUser: cfg.SwaggerPass,
		}))
		authorized.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	} else {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

// adminGuard returns the AdminOnly middleware, or a guard that always answers
// 503 when no user service is wired.
func adminGuard(users service.UserService) gin.HandlerFunc {
	if users != nil {
		return middleware.AdminOnly(users)
	}
	return func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, dto.NewError(dto.ErrCodeServiceUnavailable,
			i18n.GetTranslator().Translate(i18n.ErrKeyServiceUnavailable, i18n.GetLocale(c))).
			WithRequestID(middleware.GetRequestID(c)))
	}
}
