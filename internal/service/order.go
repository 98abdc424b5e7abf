package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/vikasdeshmukh63/ecom-backend/internal/domain/model"
	"github.com/vikasdeshmukh63/ecom-backend/internal/metrics"
	"github.com/vikasdeshmukh63/ecom-backend/internal/repository"
	"github.com/vikasdeshmukh63/ecom-backend/internal/service/cache"
)

// OrderService places orders and serves order reads.
type OrderService interface {
	Place(ctx context.Context, order *model.Order) error
	MyOrders(ctx context.Context, userID string) ([]model.Order, error)
	All(ctx context.Context) ([]model.Order, error)
	Get(ctx context.Context, id string) (*model.Order, error)
	Process(ctx context.Context, id string) (*model.Order, error)
	Delete(ctx context.Context, id string) error
}

// OrderServiceImpl implements OrderService.
type OrderServiceImpl struct {
	orders      repository.OrderRepositoryInterface
	products    repository.ProductRepositoryInterface
	cache       cache.Cache
	coordinator *cache.Coordinator
}

// NewOrderService creates a new order service.
func NewOrderService(
	orders repository.OrderRepositoryInterface,
	products repository.ProductRepositoryInterface,
	c cache.Cache,
	coordinator *cache.Coordinator,
) OrderService {
	return &OrderServiceImpl{
		orders:      orders,
		products:    products,
		cache:       c,
		coordinator: coordinator,
	}
}

var allOrdersKey = cache.NewTyped[[]model.Order](cache.AllOrdersKey())

// Place stores the order and reduces the stock of every ordered product.
// Once the order is stored the caches are invalidated even if a stock update fails.
func (s *OrderServiceImpl) Place(ctx context.Context, order *model.Order) error {
	if err := s.orders.Create(ctx, order); err != nil {
		return err
	}
	metrics.RecordOrderEvent("placed")

	defer s.coordinator.Invalidate(cache.Request{
		ProductChanged: true,
		OrderChanged:   true,
		AdminChanged:   true,
		UserID:         order.User,
		ProductIDs:     order.ProductIDs(),
	})

	for _, item := range order.OrderItems {
		found, err := s.products.DecrementStock(ctx, item.ProductID, item.Quantity)
		if err != nil {
			return err
		}
		if !found {
			log.Warn().
				Str("order_id", order.ID.Hex()).
				Str("product_id", item.ProductID.Hex()).
				Msg("Ordered product no longer exists, stock not reduced")
		}
	}
	return nil
}

func (s *OrderServiceImpl) MyOrders(ctx context.Context, userID string) ([]model.Order, error) {
	key := cache.NewTyped[[]model.Order](cache.MyOrdersKey(userID))
	return cache.ReadThrough(ctx, s.cache, key, func(ctx context.Context) ([]model.Order, error) {
		return s.orders.FindByUser(ctx, userID)
	})
}

func (s *OrderServiceImpl) All(ctx context.Context) ([]model.Order, error) {
	return cache.ReadThrough(ctx, s.cache, allOrdersKey, s.orders.FindAll)
}

func (s *OrderServiceImpl) Get(ctx context.Context, id string) (*model.Order, error) {
	oid, err := parseObjectID("order", id)
	if err != nil {
		return nil, err
	}

	key := cache.NewTyped[*model.Order](cache.OrderKey(oid.Hex()))
	return cache.ReadThrough(ctx, s.cache, key, func(ctx context.Context) (*model.Order, error) {
		order, err := s.orders.FindByID(ctx, oid)
		if err != nil {
			return nil, err
		}
		if order == nil {
			return nil, notFound("order")
		}
		return order, nil
	})
}

// Process advances the order one status: Processing, Shipped, Delivered.
func (s *OrderServiceImpl) Process(ctx context.Context, id string) (*model.Order, error) {
	oid, err := parseObjectID("order", id)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, notFound("order")
	}

	next := order.Status.Next()
	if err := s.orders.UpdateStatus(ctx, oid, next); err != nil {
		return nil, err
	}
	order.Status = next
	metrics.RecordOrderEvent(strings.ToLower(string(next)))

	s.coordinator.Invalidate(cache.Request{
		OrderChanged: true,
		AdminChanged: true,
		UserID:       order.User,
		OrderID:      oid.Hex(),
	})
	return order, nil
}

func (s *OrderServiceImpl) Delete(ctx context.Context, id string) error {
	oid, err := parseObjectID("order", id)
	if err != nil {
		return err
	}

	order, err := s.orders.Delete(ctx, oid)
	if err != nil {
		return err
	}
	if order == nil {
		return notFound("order")
	}
	metrics.RecordOrderEvent("deleted")

	s.coordinator.Invalidate(cache.Request{
		OrderChanged: true,
		AdminChanged: true,
		UserID:       order.User,
		OrderID:      oid.Hex(),
	})
	return nil
}
