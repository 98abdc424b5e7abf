//go:build !integration

package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vikasdeshmukh63/ecom-backend/internal/circuitbreaker"
	"github.com/vikasdeshmukh63/ecom-backend/internal/domain/model"
)

var errStore = errors.New("store unavailable")

// stubProducts embeds the interface so only the methods under test need bodies.
type stubProducts struct {
	ProductRepositoryInterface
	calls int
	err   error
	found *model.Product
	pages int64
}

func (s *stubProducts) FindByID(context.Context, primitive.ObjectID) (*model.Product, error) {
	s.calls++
	return s.found, s.err
}

func (s *stubProducts) Search(context.Context, model.ProductSearch) ([]model.Product, int64, error) {
	s.calls++
	if s.err != nil {
		return nil, 0, s.err
	}
	return []model.Product{{Name: "Phone"}}, s.pages, nil
}

type stubLogs struct {
	LogsRepositoryInterface
	err error
}

func (s *stubLogs) Create(context.Context, *model.LogEntry) error { return s.err }

func testBreaker(threshold int) *circuitbreaker.CircuitBreaker {
	return circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: threshold,
		SuccessThreshold: 1,
		Timeout:          time.Minute,
		Name:             "test",
	})
}

func TestProductRepositoryWithCircuitBreaker_PassesResultsThrough(t *testing.T) {
	product := &model.Product{Name: "Phone"}
	repo := NewProductRepositoryWithCircuitBreaker(&stubProducts{found: product, pages: 3}, testBreaker(3))

	got, err := repo.FindByID(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)
	assert.Same(t, product, got)

	page, total, err := repo.Search(context.Background(), model.ProductSearch{})
	require.NoError(t, err)
	assert.Len(t, page, 1)
	assert.Equal(t, int64(3), total)
}

func TestProductRepositoryWithCircuitBreaker_NotFoundIsNotAFailure(t *testing.T) {
	stub := &stubProducts{}
	repo := NewProductRepositoryWithCircuitBreaker(stub, testBreaker(1))

	for i := 0; i < 3; i++ {
		got, err := repo.FindByID(context.Background(), primitive.NewObjectID())
		require.NoError(t, err)
		assert.Nil(t, got)
	}
	assert.False(t, repo.GetCircuitBreaker().IsOpen())
}

func TestProductRepositoryWithCircuitBreaker_OpensAfterFailures(t *testing.T) {
	stub := &stubProducts{err: errStore}
	repo := NewProductRepositoryWithCircuitBreaker(stub, testBreaker(2))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := repo.FindByID(ctx, primitive.NewObjectID())
		assert.ErrorIs(t, err, errStore)
	}

	_, err := repo.FindByID(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
	assert.Equal(t, 2, stub.calls, "open circuit must not reach the store")

	_, _, err = repo.Search(ctx, model.ProductSearch{})
	assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
}

func TestLogsRepositoryWithCircuitBreaker_DropsWritesWhenOpen(t *testing.T) {
	repo := NewLogsRepositoryWithCircuitBreaker(&stubLogs{err: errStore}, testBreaker(1))
	ctx := context.Background()

	assert.ErrorIs(t, repo.Create(ctx, &model.LogEntry{}), errStore)
	assert.NoError(t, repo.Create(ctx, &model.LogEntry{}))
	assert.True(t, repo.GetCircuitBreaker().IsOpen())
}
