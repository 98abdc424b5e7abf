//go:build !integration

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vikasdeshmukh63/ecom-backend/internal/domain/model"
	"github.com/vikasdeshmukh63/ecom-backend/internal/mocks"
	"github.com/vikasdeshmukh63/ecom-backend/internal/service/cache"
)

var dashboardToday = time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)

type dashboardFixture struct {
	svc      DashboardService
	products *mocks.MockProductRepository
	orders   *mocks.MockOrderRepository
	users    *mocks.MockUserRepository
	store    *cache.Store
}

func newDashboardFixture() dashboardFixture {
	f := dashboardFixture{
		products: new(mocks.MockProductRepository),
		orders:   new(mocks.MockOrderRepository),
		users:    new(mocks.MockUserRepository),
		store:    cache.NewStore(),
	}
	f.svc = NewDashboardService(f.products, f.orders, f.users, f.store, 4,
		WithClock(func() time.Time { return dashboardToday }))
	return f
}

func TestDashboardService_Stats(t *testing.T) {
	f := newDashboardFixture()
	thisMonth := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	lastMonth := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	sixMonths := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	latestID := primitive.NewObjectID()

	f.products.On("CountCreatedBetween", mock.Anything, thisMonth, time.Time{}).Return(int64(4), nil).Once()
	f.products.On("CountCreatedBetween", mock.Anything, lastMonth, thisMonth).Return(int64(2), nil).Once()
	f.users.On("CountCreatedBetween", mock.Anything, thisMonth, time.Time{}).Return(int64(3), nil).Once()
	f.users.On("CountCreatedBetween", mock.Anything, lastMonth, thisMonth).Return(int64(0), nil).Once()
	f.orders.On("Totals", mock.Anything, thisMonth, time.Time{}).Return(model.OrderTotals{Count: 2, Total: 300}, nil).Once()
	f.orders.On("Totals", mock.Anything, lastMonth, thisMonth).Return(model.OrderTotals{Count: 4, Total: 200}, nil).Once()
	f.orders.On("Totals", mock.Anything, time.Time{}, time.Time{}).Return(model.OrderTotals{Count: 10, Total: 1000}, nil).Once()
	f.products.On("Count", mock.Anything).Return(int64(10), nil).Once()
	f.users.On("Count", mock.Anything).Return(int64(5), nil).Once()
	f.users.On("CountByGender", mock.Anything, model.GenderFemale).Return(int64(2), nil).Once()
	f.products.On("Categories", mock.Anything).Return([]string{"electronics", "books"}, nil).Once()
	f.products.On("CountByCategory", mock.Anything).Return(map[string]int{"electronics": 7, "books": 3}, nil).Once()
	f.orders.On("CreatedSince", mock.Anything, sixMonths).Return([]model.Order{
		{CreatedAt: time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC), Total: 100},
		{CreatedAt: time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC), Total: 50.5},
	}, nil).Once()
	f.orders.On("Latest", mock.Anything, 4).Return([]model.Order{
		{ID: latestID, Total: 120, Discount: 10, Status: model.OrderShipped, OrderItems: make([]model.OrderItem, 2)},
	}, nil).Once()

	stats, err := f.svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, model.ChangePercent{Revenue: 50, Product: 100, User: 300, Order: -50}, stats.ChangePercent)
	assert.Equal(t, model.Counts{Revenue: 1000, User: 5, Product: 10, Order: 10}, stats.Counts)
	assert.Equal(t, []map[string]int{{"electronics": 70}, {"books": 30}}, stats.CategoryCount)
	assert.Equal(t, []int{0, 0, 0, 1, 0, 1}, stats.Chart.Order)
	assert.Equal(t, []float64{0, 0, 0, 50.5, 0, 100}, stats.Chart.Revenue)
	assert.Equal(t, model.UserRatio{Male: 3, Female: 2}, stats.UserRatio)
	require.Len(t, stats.LatestTransaction, 1)
	assert.Equal(t, model.LatestTransaction{ID: latestID, Discount: 10, Amount: 120, Quantity: 2, Status: model.OrderShipped}, stats.LatestTransaction[0])

	cached, err := f.svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, stats, cached)

	f.products.AssertExpectations(t)
	f.orders.AssertExpectations(t)
	f.users.AssertExpectations(t)
}

func TestDashboardService_PieCharts(t *testing.T) {
	f := newDashboardFixture()
	f.orders.On("CountByStatus", mock.Anything).Return(map[model.OrderStatus]int64{
		model.OrderProcessing: 3, model.OrderDelivered: 1,
	}, nil)
	f.products.On("Categories", mock.Anything).Return([]string{"books"}, nil)
	f.products.On("CountByCategory", mock.Anything).Return(map[string]int{"books": 4}, nil)
	f.products.On("Count", mock.Anything).Return(int64(4), nil)
	f.products.On("CountOutOfStock", mock.Anything).Return(int64(1), nil)
	f.orders.On("Totals", mock.Anything, time.Time{}, time.Time{}).Return(model.OrderTotals{
		Total: 1000, Discount: 50, ShippingCharges: 100, Tax: 180,
	}, nil)
	f.users.On("BirthDates", mock.Anything).Return([]time.Time{
		time.Date(2010, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(1960, time.January, 1, 0, 0, 0, 0, time.UTC),
	}, nil)
	f.users.On("Count", mock.Anything).Return(int64(6), nil)
	f.users.On("CountByRole", mock.Anything, model.RoleAdmin).Return(int64(1), nil)

	charts, err := f.svc.PieCharts(context.Background())
	require.NoError(t, err)

	assert.Equal(t, model.OrderFullfillment{Processing: 3, Delivered: 1}, charts.OrderFullfillment)
	assert.Equal(t, []map[string]int{{"books": 100}}, charts.ProductCategories)
	assert.Equal(t, model.StockAvailability{InStock: 3, OutOfStock: 1}, charts.StockAvailability)
	assert.Equal(t, 370.0, charts.RevenueDistribution.NetMargin)
	assert.Equal(t, 300.0, charts.RevenueDistribution.MarketingCost)
	assert.Equal(t, model.UsersAgeGroup{Teen: 1, Adult: 1, Old: 1}, charts.UsersAgeGroup)
	assert.Equal(t, model.AdminCustomer{Admin: 1, Customer: 5}, charts.AdminCustomer)
}

func TestDashboardService_BarAndLineCharts(t *testing.T) {
	f := newDashboardFixture()
	june := time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC)
	lastJuly := time.Date(2023, time.July, 20, 0, 0, 0, 0, time.UTC)

	f.products.On("CreatedSince", mock.Anything, mock.Anything).Return([]time.Time{june, june}, nil)
	f.users.On("CreatedSince", mock.Anything, mock.Anything).Return([]time.Time{june, lastJuly}, nil)
	f.orders.On("CreatedSince", mock.Anything, mock.Anything).Return([]model.Order{
		{CreatedAt: lastJuly, Total: 10, Discount: 1},
		{CreatedAt: june, Total: 20.255, Discount: 2},
	}, nil)

	bar, err := f.svc.BarCharts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0, 0, 0, 2}, bar.Products)
	assert.Equal(t, []int{0, 0, 0, 0, 0, 1}, bar.Users, "records older than the window are dropped")
	require.Len(t, bar.Orders, 12)
	assert.Equal(t, 1, bar.Orders[0])
	assert.Equal(t, 1, bar.Orders[11])

	line, err := f.svc.LineCharts(context.Background())
	require.NoError(t, err)
	require.Len(t, line.Users, 12)
	assert.Equal(t, 1, line.Users[0])
	assert.Equal(t, 1, line.Users[11])
	assert.Equal(t, 10.0, line.Revenue[0])
	assert.Equal(t, 1.0, line.Discount[0])
	assert.Equal(t, 2.0, line.Discount[11])
}

func TestDashboardService_QueryFailureNotCached(t *testing.T) {
	f := newDashboardFixture()
	f.products.On("CreatedSince", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))
	f.users.On("CreatedSince", mock.Anything, mock.Anything).Return([]time.Time{}, nil).Maybe()
	f.orders.On("CreatedSince", mock.Anything, mock.Anything).Return([]model.Order{}, nil).Maybe()

	_, err := f.svc.BarCharts(context.Background())

	assert.Error(t, err)
	assert.False(t, f.store.Has(cache.AdminBarChartsKey()))
}

func TestDashboardService_InvalidationForcesRebuild(t *testing.T) {
	f := newDashboardFixture()
	f.products.On("CreatedSince", mock.Anything, mock.Anything).Return([]time.Time{}, nil).Twice()
	f.users.On("CreatedSince", mock.Anything, mock.Anything).Return([]time.Time{}, nil).Twice()
	f.orders.On("CreatedSince", mock.Anything, mock.Anything).Return([]model.Order{}, nil).Twice()

	_, err := f.svc.BarCharts(context.Background())
	require.NoError(t, err)
	_, err = f.svc.BarCharts(context.Background())
	require.NoError(t, err)

	cache.NewCoordinator(f.store).Invalidate(cache.Request{AdminChanged: true})

	_, err = f.svc.BarCharts(context.Background())
	require.NoError(t, err)

	f.products.AssertExpectations(t)
	f.users.AssertExpectations(t)
	f.orders.AssertExpectations(t)
}
