//go:build !integration

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type product struct {
	ID    string  `json:"_id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

var errNotFound = errors.New("not found")

// countingStore is a document store double that records how often it is queried.
type countingStore struct {
	calls    int
	products map[string]product
}

func (s *countingStore) find(id string) ComputeFunc[product] {
	return func(context.Context) (product, error) {
		s.calls++
		p, ok := s.products[id]
		if !ok {
			return product{}, errNotFound
		}
		return p, nil
	}
}

func TestReadThrough_SecondReadSkipsStore(t *testing.T) {
	c := NewStore()
	db := &countingStore{products: map[string]product{"a": {ID: "a", Name: "Mouse", Price: 25}}}
	key := NewTyped[product](ProductKey("a"))

	first, err := ReadThrough(context.Background(), c, key, db.find("a"))
	require.NoError(t, err)
	firstRaw, _ := c.Get(ProductKey("a"))

	second, err := ReadThrough(context.Background(), c, key, db.find("a"))
	require.NoError(t, err)
	secondRaw, _ := c.Get(ProductKey("a"))

	assert.Equal(t, 1, db.calls)
	assert.Equal(t, first, second)
	assert.Equal(t, firstRaw, secondRaw)

	encoded, _ := json.Marshal(first)
	assert.JSONEq(t, string(encoded), string(secondRaw))
}

func TestReadThrough_NotFoundIsNotCached(t *testing.T) {
	c := NewStore()
	db := &countingStore{products: map[string]product{}}
	key := NewTyped[product](ProductKey("missing"))

	_, err := ReadThrough(context.Background(), c, key, db.find("missing"))
	assert.ErrorIs(t, err, errNotFound)
	assert.False(t, c.Has(ProductKey("missing")))

	_, err = ReadThrough(context.Background(), c, key, db.find("missing"))
	assert.ErrorIs(t, err, errNotFound)
	assert.Equal(t, 2, db.calls)
}

func TestReadThrough_StoreErrorPropagates(t *testing.T) {
	c := NewStore()
	storeErr := errors.New("connection refused")
	key := NewTyped[[]product](AllProductsKey())

	_, err := ReadThrough(context.Background(), c, key, func(context.Context) ([]product, error) {
		return nil, storeErr
	})

	assert.Same(t, storeErr, err)
	assert.Equal(t, 0, c.Len())
}

func TestReadThrough_MalformedEntryIsAMiss(t *testing.T) {
	c := NewStore()
	c.Set(ProductKey("a"), []byte("{not json"))
	db := &countingStore{products: map[string]product{"a": {ID: "a", Name: "Mouse"}}}

	got, err := ReadThrough(context.Background(), c, NewTyped[product](ProductKey("a")), db.find("a"))

	require.NoError(t, err)
	assert.Equal(t, "Mouse", got.Name)
	assert.Equal(t, 1, db.calls)

	raw, ok := c.Get(ProductKey("a"))
	require.True(t, ok)
	assert.JSONEq(t, `{"_id":"a","name":"Mouse","price":0}`, string(raw))
}

func TestReadThrough_ReadAfterInvalidationRecomputes(t *testing.T) {
	c := NewStore()
	coord := NewCoordinator(c)
	db := &countingStore{products: map[string]product{"a": {ID: "a", Name: "Mouse"}}}
	key := NewTyped[product](ProductKey("a"))

	_, err := ReadThrough(context.Background(), c, key, db.find("a"))
	require.NoError(t, err)

	db.products["a"] = product{ID: "a", Name: "Wireless Mouse"}
	coord.Invalidate(Request{ProductChanged: true, ProductIDs: []string{"a"}})
	assert.False(t, c.Has(ProductKey("a")))

	got, err := ReadThrough(context.Background(), c, key, db.find("a"))
	require.NoError(t, err)
	assert.Equal(t, "Wireless Mouse", got.Name)
	assert.Equal(t, 2, db.calls)
}

// A fill that started before an invalidation must not land in the cache.
// Without the generation check the pre-write value would stay cached until the next write.
func TestReadThrough_FillRacingInvalidationIsDiscarded(t *testing.T) {
	c := NewStore()
	coord := NewCoordinator(c)
	key := NewTyped[[]product](LatestProductsKey())

	got, err := ReadThrough(context.Background(), c, key, func(context.Context) ([]product, error) {
		// The write lands and invalidates while this read is still querying.
		coord.Invalidate(Request{ProductChanged: true})
		return []product{{ID: "old"}}, nil
	})

	require.NoError(t, err)
	assert.Equal(t, []product{{ID: "old"}}, got, "the caller still gets its result")
	assert.False(t, c.Has(LatestProductsKey()), "but the stale result is not cached")

	got, err = ReadThrough(context.Background(), c, key, func(context.Context) ([]product, error) {
		return []product{{ID: "new"}}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []product{{ID: "new"}}, got)
	assert.True(t, c.Has(LatestProductsKey()))
}

func TestReadThrough_UnencodableValueIsReturnedButNotCached(t *testing.T) {
	c := NewStore()
	key := NewTyped[map[string]interface{}](AdminStatsKey())

	got, err := ReadThrough(context.Background(), c, key, func(context.Context) (map[string]interface{}, error) {
		return map[string]interface{}{"bad": make(chan int)}, nil
	})

	require.NoError(t, err)
	assert.Contains(t, got, "bad")
	assert.False(t, c.Has(AdminStatsKey()))
}
