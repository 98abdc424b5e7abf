package app

import (
	"io"
	"time"

	"github.com/vikasdeshmukh63/ecom-backend/config"
	"github.com/vikasdeshmukh63/ecom-backend/internal/circuitbreaker"
	"github.com/vikasdeshmukh63/ecom-backend/internal/mocks"
)

type mockRepos struct {
	products *mocks.MockProductRepository
	orders   *mocks.MockOrderRepository
	users    *mocks.MockUserRepository
	coupons  *mocks.MockCouponRepository
	logs     *mocks.MockLogsRepository
}

// newMockDatabase returns components backed by mocks, without a MongoDB connection.
func newMockDatabase() (*DatabaseComponents, *mockRepos) {
	r := &mockRepos{
		products: &mocks.MockProductRepository{},
		orders:   &mocks.MockOrderRepository{},
		users:    &mocks.MockUserRepository{},
		coupons:  &mocks.MockCouponRepository{},
		logs:     &mocks.MockLogsRepository{},
	}
	return &DatabaseComponents{
		Products: r.products,
		Orders:   r.orders,
		Users:    r.users,
		Coupons:  r.coupons,
		Logs:     r.logs,
		CircuitBreakers: map[string]*circuitbreaker.CircuitBreaker{
			breakerProducts: circuitbreaker.New(circuitbreaker.DefaultConfig()),
		},
	}, r
}

func testConfig() config.Config {
	return config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			RateLimit:      100,
			RateWindow:     time.Minute,
			RequestTimeout: 30 * time.Second,
		},
		Catalog: config.CatalogConfig{
			ProductsPerPage:         8,
			LatestProductsLimit:     5,
			LatestTransactionsLimit: 4,
		},
		Database: config.DatabaseConfig{
			DatabaseName:                   "ecommerce",
			CircuitBreakerFailureThreshold: 5,
			CircuitBreakerSuccessThreshold: 2,
			CircuitBreakerTimeout:          30 * time.Second,
		},
		Log: config.LogConfig{Level: "info"},
	}
}

type nopPhotos struct{}

func (nopPhotos) Save(_ io.Reader, name string) (string, error) { return "uploads/" + name, nil }
func (nopPhotos) Remove(string) error                           { return nil }
