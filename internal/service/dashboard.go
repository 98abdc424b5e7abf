package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vikasdeshmukh63/ecom-backend/internal/domain/model"
	"github.com/vikasdeshmukh63/ecom-backend/internal/metrics"
	"github.com/vikasdeshmukh63/ecom-backend/internal/repository"
	"github.com/vikasdeshmukh63/ecom-backend/internal/service/cache"
	"github.com/vikasdeshmukh63/ecom-backend/internal/service/stats"
)

const (
	shortWindow = 6
	longWindow  = 12
)

// DashboardService builds the cached admin aggregates.
type DashboardService interface {
	Stats(ctx context.Context) (model.DashboardStats, error)
	PieCharts(ctx context.Context) (model.PieCharts, error)
	BarCharts(ctx context.Context) (model.BarCharts, error)
	LineCharts(ctx context.Context) (model.LineCharts, error)
}

// DashboardServiceImpl implements DashboardService.
type DashboardServiceImpl struct {
	products    repository.ProductRepositoryInterface
	orders      repository.OrderRepositoryInterface
	users       repository.UserRepositoryInterface
	cache       cache.Cache
	latestLimit int
	now         func() time.Time
}

// DashboardOption configures a DashboardServiceImpl.
type DashboardOption func(*DashboardServiceImpl)

// WithClock replaces the clock used to anchor month windows.
func WithClock(now func() time.Time) DashboardOption {
	return func(s *DashboardServiceImpl) {
		s.now = now
	}
}

// NewDashboardService creates a new dashboard service. latestLimit bounds latestTransaction.
func NewDashboardService(
	products repository.ProductRepositoryInterface,
	orders repository.OrderRepositoryInterface,
	users repository.UserRepositoryInterface,
	c cache.Cache,
	latestLimit int,
	opts ...DashboardOption,
) DashboardService {
	s := &DashboardServiceImpl{
		products:    products,
		orders:      orders,
		users:       users,
		cache:       c,
		latestLimit: latestLimit,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	adminStatsKey      = cache.NewTyped[model.DashboardStats](cache.AdminStatsKey())
	adminPieChartsKey  = cache.NewTyped[model.PieCharts](cache.AdminPieChartsKey())
	adminBarChartsKey  = cache.NewTyped[model.BarCharts](cache.AdminBarChartsKey())
	adminLineChartsKey = cache.NewTyped[model.LineCharts](cache.AdminLineChartsKey())
)

// timed records the build duration of an aggregate under its key name.
func timed[T any](key cache.Typed[T], build cache.ComputeFunc[T]) cache.ComputeFunc[T] {
	return func(ctx context.Context) (T, error) {
		start := time.Now()
		v, err := build(ctx)
		metrics.RecordAggregateBuild(key.Key().String(), time.Since(start), err)
		return v, err
	}
}

func (s *DashboardServiceImpl) Stats(ctx context.Context) (model.DashboardStats, error) {
	return cache.ReadThrough(ctx, s.cache, adminStatsKey, timed(adminStatsKey, s.buildStats))
}

func (s *DashboardServiceImpl) PieCharts(ctx context.Context) (model.PieCharts, error) {
	return cache.ReadThrough(ctx, s.cache, adminPieChartsKey, timed(adminPieChartsKey, s.buildPieCharts))
}

func (s *DashboardServiceImpl) BarCharts(ctx context.Context) (model.BarCharts, error) {
	return cache.ReadThrough(ctx, s.cache, adminBarChartsKey, timed(adminBarChartsKey, s.buildBarCharts))
}

func (s *DashboardServiceImpl) LineCharts(ctx context.Context) (model.LineCharts, error) {
	return cache.ReadThrough(ctx, s.cache, adminLineChartsKey, timed(adminLineChartsKey, s.buildLineCharts))
}

func orderCreatedAt(o model.Order) time.Time { return o.CreatedAt }
func orderTotal(o model.Order) float64       { return o.Total }
func orderDiscount(o model.Order) float64    { return o.Discount }
func identity(t time.Time) time.Time         { return t }

func (s *DashboardServiceImpl) buildStats(ctx context.Context) (model.DashboardStats, error) {
	today := s.now()
	thisMonth := stats.MonthStart(today, 0)
	lastMonth := stats.MonthStart(today, -1)

	var (
		thisProducts, lastProducts int64
		thisUsers, lastUsers       int64
		thisOrders, lastOrders     model.OrderTotals
		allOrders                  model.OrderTotals
		productCount, userCount    int64
		femaleCount                int64
		categories                 []string
		categoryCounts             map[string]int
		recentOrders, latestOrders []model.Order
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		thisProducts, err = s.products.CountCreatedBetween(gctx, thisMonth, time.Time{})
		return err
	})
	g.Go(func() (err error) {
		lastProducts, err = s.products.CountCreatedBetween(gctx, lastMonth, thisMonth)
		return err
	})
	g.Go(func() (err error) {
		thisUsers, err = s.users.CountCreatedBetween(gctx, thisMonth, time.Time{})
		return err
	})
	g.Go(func() (err error) {
		lastUsers, err = s.users.CountCreatedBetween(gctx, lastMonth, thisMonth)
		return err
	})
	g.Go(func() (err error) {
		thisOrders, err = s.orders.Totals(gctx, thisMonth, time.Time{})
		return err
	})
	g.Go(func() (err error) {
		lastOrders, err = s.orders.Totals(gctx, lastMonth, thisMonth)
		return err
	})
	g.Go(func() (err error) {
		allOrders, err = s.orders.Totals(gctx, time.Time{}, time.Time{})
		return err
	})
	g.Go(func() (err error) {
		productCount, err = s.products.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		userCount, err = s.users.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		femaleCount, err = s.users.CountByGender(gctx, model.GenderFemale)
		return err
	})
	g.Go(func() (err error) {
		categories, err = s.products.Categories(gctx)
		return err
	})
	g.Go(func() (err error) {
		categoryCounts, err = s.products.CountByCategory(gctx)
		return err
	})
	g.Go(func() (err error) {
		recentOrders, err = s.orders.CreatedSince(gctx, stats.WindowStart(today, shortWindow))
		return err
	})
	g.Go(func() (err error) {
		latestOrders, err = s.orders.Latest(gctx, s.latestLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.DashboardStats{}, err
	}

	latest := make([]model.LatestTransaction, 0, len(latestOrders))
	for _, o := range latestOrders {
		latest = append(latest, model.LatestTransaction{
			ID:       o.ID,
			Discount: o.Discount,
			Amount:   o.Total,
			Quantity: len(o.OrderItems),
			Status:   o.Status,
		})
	}

	return model.DashboardStats{
		CategoryCount: stats.CategoryDistribution(categories, categoryCounts, int(productCount)),
		ChangePercent: model.ChangePercent{
			Revenue: stats.CalculatePercentage(thisOrders.Total, lastOrders.Total),
			Product: stats.CalculatePercentage(float64(thisProducts), float64(lastProducts)),
			User:    stats.CalculatePercentage(float64(thisUsers), float64(lastUsers)),
			Order:   stats.CalculatePercentage(float64(thisOrders.Count), float64(lastOrders.Count)),
		},
		Counts: model.Counts{
			Revenue: allOrders.Total,
			User:    userCount,
			Product: productCount,
			Order:   allOrders.Count,
		},
		Chart: model.Chart{
			Order:   stats.MonthlyCounts(shortWindow, today, recentOrders, orderCreatedAt),
			Revenue: stats.MonthlySums(shortWindow, today, recentOrders, orderCreatedAt, orderTotal),
		},
		UserRatio: model.UserRatio{
			Male:   userCount - femaleCount,
			Female: femaleCount,
		},
		LatestTransaction: latest,
	}, nil
}

func (s *DashboardServiceImpl) buildPieCharts(ctx context.Context) (model.PieCharts, error) {
	today := s.now()

	var (
		byStatus       map[model.OrderStatus]int64
		categories     []string
		categoryCounts map[string]int
		productCount   int64
		outOfStock     int64
		totals         model.OrderTotals
		birthDates     []time.Time
		userCount      int64
		adminCount     int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		byStatus, err = s.orders.CountByStatus(gctx)
		return err
	})
	g.Go(func() (err error) {
		categories, err = s.products.Categories(gctx)
		return err
	})
	g.Go(func() (err error) {
		categoryCounts, err = s.products.CountByCategory(gctx)
		return err
	})
	g.Go(func() (err error) {
		productCount, err = s.products.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		outOfStock, err = s.products.CountOutOfStock(gctx)
		return err
	})
	g.Go(func() (err error) {
		totals, err = s.orders.Totals(gctx, time.Time{}, time.Time{})
		return err
	})
	g.Go(func() (err error) {
		birthDates, err = s.users.BirthDates(gctx)
		return err
	})
	g.Go(func() (err error) {
		userCount, err = s.users.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		adminCount, err = s.users.CountByRole(gctx, model.RoleAdmin)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.PieCharts{}, err
	}

	return model.PieCharts{
		OrderFullfillment: model.OrderFullfillment{
			Processing: byStatus[model.OrderProcessing],
			Shipped:    byStatus[model.OrderShipped],
			Delivered:  byStatus[model.OrderDelivered],
		},
		ProductCategories: stats.CategoryDistribution(categories, categoryCounts, int(productCount)),
		StockAvailability: model.StockAvailability{
			InStock:    productCount - outOfStock,
			OutOfStock: outOfStock,
		},
		RevenueDistribution: stats.RevenueBreakdown(totals),
		UsersAgeGroup:       stats.AgeGroups(today, birthDates),
		AdminCustomer: model.AdminCustomer{
			Admin:    adminCount,
			Customer: userCount - adminCount,
		},
	}, nil
}

func (s *DashboardServiceImpl) buildBarCharts(ctx context.Context) (model.BarCharts, error) {
	today := s.now()

	var (
		products, users []time.Time
		orders          []model.Order
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = s.products.CreatedSince(gctx, stats.WindowStart(today, shortWindow))
		return err
	})
	g.Go(func() (err error) {
		users, err = s.users.CreatedSince(gctx, stats.WindowStart(today, shortWindow))
		return err
	})
	g.Go(func() (err error) {
		orders, err = s.orders.CreatedSince(gctx, stats.WindowStart(today, longWindow))
		return err
	})
	if err := g.Wait(); err != nil {
		return model.BarCharts{}, err
	}

	return model.BarCharts{
		Products: stats.MonthlyCounts(shortWindow, today, products, identity),
		Users:    stats.MonthlyCounts(shortWindow, today, users, identity),
		Orders:   stats.MonthlyCounts(longWindow, today, orders, orderCreatedAt),
	}, nil
}

func (s *DashboardServiceImpl) buildLineCharts(ctx context.Context) (model.LineCharts, error) {
	today := s.now()
	from := stats.WindowStart(today, longWindow)

	var (
		products, users []time.Time
		orders          []model.Order
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = s.products.CreatedSince(gctx, from)
		return err
	})
	g.Go(func() (err error) {
		users, err = s.users.CreatedSince(gctx, from)
		return err
	})
	g.Go(func() (err error) {
		orders, err = s.orders.CreatedSince(gctx, from)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.LineCharts{}, err
	}

	return model.LineCharts{
		Users:    stats.MonthlyCounts(longWindow, today, users, identity),
		Products: stats.MonthlyCounts(longWindow, today, products, identity),
		Discount: stats.MonthlySums(longWindow, today, orders, orderCreatedAt, orderDiscount),
		Revenue:  stats.MonthlySums(longWindow, today, orders, orderCreatedAt, orderTotal),
	}, nil
}
