package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vikasdeshmukh63/ecom-backend/internal/circuitbreaker"
	"github.com/vikasdeshmukh63/ecom-backend/internal/domain/model"
)

// protect runs fn through cb and returns its result.
func protect[T any](ctx context.Context, cb *circuitbreaker.CircuitBreaker, fn func() (T, error)) (T, error) {
	var result T
	err := cb.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = fn()
		return cbErr
	})
	return result, err
}

// ProductRepositoryWithCircuitBreaker wraps a ProductRepositoryInterface with circuit breaker protection.
type ProductRepositoryWithCircuitBreaker struct {
	repo           ProductRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewProductRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewProductRepositoryWithCircuitBreaker(repo ProductRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *ProductRepositoryWithCircuitBreaker {
	return &ProductRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

func (r *ProductRepositoryWithCircuitBreaker) Create(ctx context.Context, product *model.Product) error {
	return r.circuitBreaker.Execute(ctx, func() error { return r.repo.Create(ctx, product) })
}

func (r *ProductRepositoryWithCircuitBreaker) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Product, error) {
	return protect(ctx, r.circuitBreaker, func() (*model.Product, error) { return r.repo.FindByID(ctx, id) })
}

func (r *ProductRepositoryWithCircuitBreaker) FindAll(ctx context.Context) ([]model.Product, error) {
	return protect(ctx, r.circuitBreaker, func() ([]model.Product, error) { return r.repo.FindAll(ctx) })
}

func (r *ProductRepositoryWithCircuitBreaker) Latest(ctx context.Context, limit int) ([]model.Product, error) {
	return protect(ctx, r.circuitBreaker, func() ([]model.Product, error) { return r.repo.Latest(ctx, limit) })
}

func (r *ProductRepositoryWithCircuitBreaker) Categories(ctx context.Context) ([]string, error) {
	return protect(ctx, r.circuitBreaker, func() ([]string, error) { return r.repo.Categories(ctx) })
}

func (r *ProductRepositoryWithCircuitBreaker) Search(ctx context.Context, search model.ProductSearch) ([]model.Product, int64, error) {
	var total int64
	products, err := protect(ctx, r.circuitBreaker, func() ([]model.Product, error) {
		var (
			page []model.Product
			err  error
		)
		page, total, err = r.repo.Search(ctx, search)
		return page, err
	})
	return products, total, err
}

func (r *ProductRepositoryWithCircuitBreaker) Update(ctx context.Context, id primitive.ObjectID, update model.ProductUpdate) (*model.Product, error) {
	return protect(ctx, r.circuitBreaker, func() (*model.Product, error) { return r.repo.Update(ctx, id, update) })
}

func (r *ProductRepositoryWithCircuitBreaker) Delete(ctx context.Context, id primitive.ObjectID) (*model.Product, error) {
	return protect(ctx, r.circuitBreaker, func() (*model.Product, error) { return r.repo.Delete(ctx, id) })
}

func (r *ProductRepositoryWithCircuitBreaker) DecrementStock(ctx context.Context, id primitive.ObjectID, quantity int) (bool, error) {
	return protect(ctx, r.circuitBreaker, func() (bool, error) { return r.repo.DecrementStock(ctx, id, quantity) })
}

func (r *ProductRepositoryWithCircuitBreaker) Count(ctx context.Context) (int64, error) {
	return protect(ctx, r.circuitBreaker, func() (int64, error) { return r.repo.Count(ctx) })
}

func (r *ProductRepositoryWithCircuitBreaker) CountByCategory(ctx context.Context) (map[string]int, error) {
	return protect(ctx, r.circuitBreaker, func() (map[string]int, error) { return r.repo.CountByCategory(ctx) })
}

func (r *ProductRepositoryWithCircuitBreaker) CountOutOfStock(ctx context.Context) (int64, error) {
	return protect(ctx, r.circuitBreaker, func() (int64, error) { return r.repo.CountOutOfStock(ctx) })
}

func (r *ProductRepositoryWithCircuitBreaker) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	return protect(ctx, r.circuitBreaker, func() (int64, error) { return r.repo.CountCreatedBetween(ctx, from, to) })
}

func (r *ProductRepositoryWithCircuitBreaker) CreatedSince(ctx context.Context, from time.Time) ([]time.Time, error) {
	return protect(ctx, r.circuitBreaker, func() ([]time.Time, error) { return r.repo.CreatedSince(ctx, from) })
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *ProductRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// OrderRepositoryWithCircuitBreaker wraps an OrderRepositoryInterface with circuit breaker protection.
type OrderRepositoryWithCircuitBreaker struct {
	repo           OrderRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewOrderRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewOrderRepositoryWithCircuitBreaker(repo OrderRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *OrderRepositoryWithCircuitBreaker {
	return &OrderRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

func (r *OrderRepositoryWithCircuitBreaker) Create(ctx context.Context, order *model.Order) error {
	return r.circuitBreaker.Execute(ctx, func() error { return r.repo.Create(ctx, order) })
}

func (r *OrderRepositoryWithCircuitBreaker) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Order, error) {
	return protect(ctx, r.circuitBreaker, func() (*model.Order, error) { return r.repo.FindByID(ctx, id) })
}

func (r *OrderRepositoryWithCircuitBreaker) FindByUser(ctx context.Context, userID string) ([]model.Order, error) {
	return protect(ctx, r.circuitBreaker, func() ([]model.Order, error) { return r.repo.FindByUser(ctx, userID) })
}

func (r *OrderRepositoryWithCircuitBreaker) FindAll(ctx context.Context) ([]model.Order, error) {
	return protect(ctx, r.circuitBreaker, func() ([]model.Order, error) { return r.repo.FindAll(ctx) })
}

func (r *OrderRepositoryWithCircuitBreaker) UpdateStatus(ctx context.Context, id primitive.ObjectID, status model.OrderStatus) error {
	return r.circuitBreaker.Execute(ctx, func() error { return r.repo.UpdateStatus(ctx, id, status) })
}

func (r *OrderRepositoryWithCircuitBreaker) Delete(ctx context.Context, id primitive.ObjectID) (*model.Order, error) {
	return protect(ctx, r.circuitBreaker, func() (*model.Order, error) { return r.repo.Delete(ctx, id) })
}

func (r *OrderRepositoryWithCircuitBreaker) Latest(ctx context.Context, limit int) ([]model.Order, error) {
	return protect(ctx, r.circuitBreaker, func() ([]model.Order, error) { return r.repo.Latest(ctx, limit) })
}

func (r *OrderRepositoryWithCircuitBreaker) CountByStatus(ctx context.Context) (map[model.OrderStatus]int64, error) {
	return protect(ctx, r.circuitBreaker, func() (map[model.OrderStatus]int64, error) { return r.repo.CountByStatus(ctx) })
}

func (r *OrderRepositoryWithCircuitBreaker) Totals(ctx context.Context, from, to time.Time) (model.OrderTotals, error) {
	return protect(ctx, r.circuitBreaker, func() (model.OrderTotals, error) { return r.repo.Totals(ctx, from, to) })
}

func (r *OrderRepositoryWithCircuitBreaker) CreatedSince(ctx context.Context, from time.Time) ([]model.Order, error) {
	return protect(ctx, r.circuitBreaker, func() ([]model.Order, error) { return r.repo.CreatedSince(ctx, from) })
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *OrderRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// UserRepositoryWithCircuitBreaker wraps a UserRepositoryInterface with circuit breaker protection.
type UserRepositoryWithCircuitBreaker struct {
	repo           UserRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewUserRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewUserRepositoryWithCircuitBreaker(repo UserRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *UserRepositoryWithCircuitBreaker {
	return &UserRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

func (r *UserRepositoryWithCircuitBreaker) Create(ctx context.Context, user *model.User) error {
	return r.circuitBreaker.Execute(ctx, func() error { return r.repo.Create(ctx, user) })
}

func (r *UserRepositoryWithCircuitBreaker) FindByID(ctx context.Context, id string) (*model.User, error) {
	return protect(ctx, r.circuitBreaker, func() (*model.User, error) { return r.repo.FindByID(ctx, id) })
}

func (r *UserRepositoryWithCircuitBreaker) FindAll(ctx context.Context) ([]model.User, error) {
	return protect(ctx, r.circuitBreaker, func() ([]model.User, error) { return r.repo.FindAll(ctx) })
}

func (r *UserRepositoryWithCircuitBreaker) Delete(ctx context.Context, id string) (*model.User, error) {
	return protect(ctx, r.circuitBreaker, func() (*model.User, error) { return r.repo.Delete(ctx, id) })
}

func (r *UserRepositoryWithCircuitBreaker) Count(ctx context.Context) (int64, error) {
	return protect(ctx, r.circuitBreaker, func() (int64, error) { return r.repo.Count(ctx) })
}

func (r *UserRepositoryWithCircuitBreaker) CountByGender(ctx context.Context, gender model.Gender) (int64, error) {
	return protect(ctx, r.circuitBreaker, func() (int64, error) { return r.repo.CountByGender(ctx, gender) })
}

func (r *UserRepositoryWithCircuitBreaker) CountByRole(ctx context.Context, role model.Role) (int64, error) {
	return protect(ctx, r.circuitBreaker, func() (int64, error) { return r.repo.CountByRole(ctx, role) })
}

func (r *UserRepositoryWithCircuitBreaker) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	return protect(ctx, r.circuitBreaker, func() (int64, error) { return r.repo.CountCreatedBetween(ctx, from, to) })
}

func (r *UserRepositoryWithCircuitBreaker) CreatedSince(ctx context.Context, from time.Time) ([]time.Time, error) {
	return protect(ctx, r.circuitBreaker, func() ([]time.Time, error) { return r.repo.CreatedSince(ctx, from) })
}

func (r *UserRepositoryWithCircuitBreaker) BirthDates(ctx context.Context) ([]time.Time, error) {
	return protect(ctx, r.circuitBreaker, func() ([]time.Time, error) { return r.repo.BirthDates(ctx) })
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *UserRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// CouponRepositoryWithCircuitBreaker wraps a CouponRepositoryInterface with circuit breaker protection.
type CouponRepositoryWithCircuitBreaker struct {
	repo           CouponRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewCouponRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewCouponRepositoryWithCircuitBreaker(repo CouponRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *CouponRepositoryWithCircuitBreaker {
	return &CouponRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

func (r *CouponRepositoryWithCircuitBreaker) Create(ctx context.Context, coupon *model.Coupon) error {
	return r.circuitBreaker.Execute(ctx, func() error { return r.repo.Create(ctx, coupon) })
}

func (r *CouponRepositoryWithCircuitBreaker) FindByCode(ctx context.Context, code string) (*model.Coupon, error) {
	return protect(ctx, r.circuitBreaker, func() (*model.Coupon, error) { return r.repo.FindByCode(ctx, code) })
}

func (r *CouponRepositoryWithCircuitBreaker) FindAll(ctx context.Context) ([]model.Coupon, error) {
	return protect(ctx, r.circuitBreaker, func() ([]model.Coupon, error) { return r.repo.FindAll(ctx) })
}

func (r *CouponRepositoryWithCircuitBreaker) Delete(ctx context.Context, id primitive.ObjectID) (*model.Coupon, error) {
	return protect(ctx, r.circuitBreaker, func() (*model.Coupon, error) { return r.repo.Delete(ctx, id) })
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *CouponRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// LogsRepositoryWithCircuitBreaker wraps a LogsRepositoryInterface with circuit breaker protection.
// Writes are dropped silently while the circuit is open.
type LogsRepositoryWithCircuitBreaker struct {
	repo           LogsRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewLogsRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewLogsRepositoryWithCircuitBreaker(repo LogsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

func (r *LogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *model.LogEntry) error {
	err := r.circuitBreaker.Execute(ctx, func() error { return r.repo.Create(ctx, entry) })
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

func (r *LogsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*model.LogEntry) error {
	err := r.circuitBreaker.Execute(ctx, func() error { return r.repo.CreateMany(ctx, entries) })
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

func (r *LogsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts model.LogQueryOptions) ([]*model.LogEntry, error) {
	return protect(ctx, r.circuitBreaker, func() ([]*model.LogEntry, error) { return r.repo.Query(ctx, opts) })
}

func (r *LogsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	return protect(ctx, r.circuitBreaker, func() (int64, error) { return r.repo.Count(ctx, opts) })
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *LogsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}
