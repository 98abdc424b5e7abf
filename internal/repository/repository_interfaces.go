// Package repository is the MongoDB document store behind the services.
//
// Lookups by id return (nil, nil) when the document does not exist. Deletes
// return the removed document, or nil when there was nothing to remove.
package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vikasdeshmukh63/ecom-backend/internal/domain/model"
)

// ProductRepositoryInterface defines product persistence and the product queries of the dashboard.
type ProductRepositoryInterface interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Product, error)
	FindAll(ctx context.Context) ([]model.Product, error)
	Latest(ctx context.Context, limit int) ([]model.Product, error)
	Categories(ctx context.Context) ([]string, error)
	Search(ctx context.Context, search model.ProductSearch) ([]model.Product, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, update model.ProductUpdate) (*model.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*model.Product, error)
	DecrementStock(ctx context.Context, id primitive.ObjectID, quantity int) (bool, error)

	Count(ctx context.Context) (int64, error)
	CountByCategory(ctx context.Context) (map[string]int, error)
	CountOutOfStock(ctx context.Context) (int64, error)
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
	CreatedSince(ctx context.Context, from time.Time) ([]time.Time, error)
}

// OrderRepositoryInterface defines order persistence and the order queries of the dashboard.
type OrderRepositoryInterface interface {
	Create(ctx context.Context, order *model.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Order, error)
	FindByUser(ctx context.Context, userID string) ([]model.Order, error)
	FindAll(ctx context.Context) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status model.OrderStatus) error
	Delete(ctx context.Context, id primitive.ObjectID) (*model.Order, error)

	Latest(ctx context.Context, limit int) ([]model.Order, error)
	CountByStatus(ctx context.Context) (map[model.OrderStatus]int64, error)
	// Totals sums orders created in [from, to). Zero bounds are open.
	Totals(ctx context.Context, from, to time.Time) (model.OrderTotals, error)
	CreatedSince(ctx context.Context, from time.Time) ([]model.Order, error)
}

// UserRepositoryInterface defines user persistence and the user queries of the dashboard.
type UserRepositoryInterface interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindAll(ctx context.Context) ([]model.User, error)
	Delete(ctx context.Context, id string) (*model.User, error)

	Count(ctx context.Context) (int64, error)
	CountByGender(ctx context.Context, gender model.Gender) (int64, error)
	CountByRole(ctx context.Context, role model.Role) (int64, error)
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
	CreatedSince(ctx context.Context, from time.Time) ([]time.Time, error)
	BirthDates(ctx context.Context) ([]time.Time, error)
}

// CouponRepositoryInterface defines coupon persistence.
type CouponRepositoryInterface interface {
	Create(ctx context.Context, coupon *model.Coupon) error
	FindByCode(ctx context.Context, code string) (*model.Coupon, error)
	FindAll(ctx context.Context) ([]model.Coupon, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*model.Coupon, error)
}

// LogsRepositoryInterface defines the interface for logs repository operations.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *model.LogEntry) error
	CreateMany(ctx context.Context, entries []*model.LogEntry) error
	Query(ctx context.Context, opts model.LogQueryOptions) ([]*model.LogEntry, error)
	Count(ctx context.Context, opts model.LogQueryOptions) (int64, error)
}
