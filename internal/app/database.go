package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vikasdeshmukh63/ecom-backend/config"
	"github.com/vikasdeshmukh63/ecom-backend/internal/circuitbreaker"
	"github.com/vikasdeshmukh63/ecom-backend/internal/repository"
)

const setupTimeout = 10 * time.Second

// Breaker names double as readiness check keys.
const (
	breakerProducts = "mongodb_" + repository.CollectionProducts
	breakerOrders   = "mongodb_" + repository.CollectionOrders
	breakerUsers    = "mongodb_" + repository.CollectionUsers
	breakerCoupons  = "mongodb_" + repository.CollectionCoupons
	breakerLogs     = "mongodb_" + repository.CollectionLogs
)

// DatabaseComponents holds the MongoDB connection and the breaker-wrapped repositories.
type DatabaseComponents struct {
	DB *repository.MongoDB

	Products repository.ProductRepositoryInterface
	Orders   repository.OrderRepositoryInterface
	Users    repository.UserRepositoryInterface
	Coupons  repository.CouponRepositoryInterface
	Logs     repository.LogsRepositoryInterface

	CircuitBreakers map[string]*circuitbreaker.CircuitBreaker
}

// InitializeDatabase connects to MongoDB and wraps every collection's repository in
// its own circuit breaker.
func InitializeDatabase(cfg config.DatabaseConfig) (*DatabaseComponents, error) {
	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		return nil, fmt.Errorf("app: connect mongodb: %w", err)
	}
	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")

	if cfg.LogsEnabled {
		ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
		if err := db.SetLogsTTL(ctx, cfg.LogsTTL); err != nil {
			log.Warn().Err(err).Msg("Failed to set logs TTL index")
		}
		cancel()
	}

	breakers := map[string]*circuitbreaker.CircuitBreaker{}
	breaker := func(name string) *circuitbreaker.CircuitBreaker {
		cb := circuitbreaker.New(breakerConfig(cfg, name))
		breakers[name] = cb
		return cb
	}

	return &DatabaseComponents{
		DB:              db,
		Products:        repository.NewProductRepositoryWithCircuitBreaker(repository.NewProductRepository(db), breaker(breakerProducts)),
		Orders:          repository.NewOrderRepositoryWithCircuitBreaker(repository.NewOrderRepository(db), breaker(breakerOrders)),
		Users:           repository.NewUserRepositoryWithCircuitBreaker(repository.NewUserRepository(db), breaker(breakerUsers)),
		Coupons:         repository.NewCouponRepositoryWithCircuitBreaker(repository.NewCouponRepository(db), breaker(breakerCoupons)),
		Logs:            repository.NewLogsRepositoryWithCircuitBreaker(repository.NewLogsRepository(db), breaker(breakerLogs)),
		CircuitBreakers: breakers,
	}, nil
}

func breakerConfig(cfg config.DatabaseConfig, name string) circuitbreaker.Config {
	return circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             name,
		IsExpected:       isExpectedStoreError,
	}
}

// isExpectedStoreError reports store errors caused by the request rather than the database.
func isExpectedStoreError(err error) bool {
	return mongo.IsDuplicateKeyError(err) || errors.Is(err, mongo.ErrNoDocuments)
}
