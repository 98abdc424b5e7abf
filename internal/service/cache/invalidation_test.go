//go:build !integration

package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func seed(s *Store, keys ...Key) {
	for _, k := range keys {
		s.Set(k, []byte("{}"))
	}
}

func everyKey() []Key {
	return []Key{
		AllProductsKey(), LatestProductsKey(), CategoriesKey(),
		ProductKey("a"), ProductKey("b"), ProductKey("c"),
		AllOrdersKey(), MyOrdersKey("u1"), MyOrdersKey("u2"), OrderKey("o1"), OrderKey("o2"),
		AdminStatsKey(), AdminPieChartsKey(), AdminBarChartsKey(), AdminLineChartsKey(),
	}
}

func TestRequest_Keys(t *testing.T) {
	tests := []struct {
		name     string
		req      Request
		expected []string
	}{
		{
			name:     "nothing changed",
			req:      Request{},
			expected: nil,
		},
		{
			name:     "product change with ids",
			req:      Request{ProductChanged: true, ProductIDs: []string{"a", "b"}},
			expected: []string{"latest-products", "categories", "all-products", "product-a", "product-b"},
		},
		{
			name:     "single product id",
			req:      Request{ProductChanged: true, ProductIDs: []string{"a"}},
			expected: []string{"latest-products", "categories", "all-products", "product-a"},
		},
		{
			name:     "duplicate and empty product ids",
			req:      Request{ProductChanged: true, ProductIDs: []string{"a", "", "a"}},
			expected: []string{"latest-products", "categories", "all-products", "product-a"},
		},
		{
			name:     "order change with user and order",
			req:      Request{OrderChanged: true, UserID: "u1", OrderID: "o1"},
			expected: []string{"all-orders", "my-orders-u1", "order-o1"},
		},
		{
			name:     "order change without ids skips parametrized keys",
			req:      Request{OrderChanged: true},
			expected: []string{"all-orders"},
		},
		{
			name:     "admin change",
			req:      Request{AdminChanged: true},
			expected: []string{"admin-stats", "admin-pie-charts", "admin-bar-charts", "admin-line-charts"},
		},
		{
			name:     "ids are ignored when their flag is off",
			req:      Request{AdminChanged: true, UserID: "u1", ProductIDs: []string{"a"}},
			expected: []string{"admin-stats", "admin-pie-charts", "admin-bar-charts", "admin-line-charts"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keys := tt.req.Keys()
			if tt.expected == nil {
				assert.Empty(t, keys)
				return
			}
			assert.Equal(t, tt.expected, render(keys))
		})
	}
}

func TestCoordinator_ProductIDsEvictExactSet(t *testing.T) {
	s := NewStore()
	seed(s, everyKey()...)
	coord := NewCoordinator(s)

	removed := coord.Invalidate(Request{ProductChanged: true, ProductIDs: []string{"a", "b"}})

	assert.Equal(t, 5, removed)
	assert.Equal(t, []string{
		"admin-bar-charts", "admin-line-charts", "admin-pie-charts", "admin-stats",
		"all-orders", "my-orders-u1", "my-orders-u2", "order-o1", "order-o2", "product-c",
	}, storedKeys(s))
}

func TestCoordinator_PlacingAnOrderTouchesAllDomains(t *testing.T) {
	s := NewStore()
	seed(s, everyKey()...)
	coord := NewCoordinator(s)

	req := Request{
		ProductChanged: true,
		OrderChanged:   true,
		AdminChanged:   true,
		UserID:         "u1",
		ProductIDs:     []string{"a"},
	}
	coord.Invalidate(req)

	for _, k := range req.Keys() {
		assert.False(t, s.Has(k), k.String())
	}
	assert.Equal(t, []string{"my-orders-u2", "order-o1", "order-o2", "product-b", "product-c"}, storedKeys(s))
}

func TestCoordinator_FlagsEvictEveryDomainKey(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		evicted []Key
	}{
		{"product", Request{ProductChanged: true, ProductIDs: []string{"c"}}, []Key{AllProductsKey(), LatestProductsKey(), CategoriesKey(), ProductKey("c")}},
		{"order", Request{OrderChanged: true, UserID: "u2", OrderID: "o2"}, []Key{AllOrdersKey(), MyOrdersKey("u2"), OrderKey("o2")}},
		{"admin", Request{AdminChanged: true}, AdminKeys()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			seed(s, everyKey()...)
			NewCoordinator(s).Invalidate(tt.req)

			for _, k := range tt.evicted {
				assert.False(t, s.Has(k), k.String())
			}
			assert.Equal(t, len(everyKey())-len(tt.evicted), s.Len())
		})
	}
}

func TestCoordinator_EmptyRequestIsNoop(t *testing.T) {
	s := NewStore()
	seed(s, everyKey()...)

	assert.Equal(t, 0, NewCoordinator(s).Invalidate(Request{}))
	assert.Equal(t, len(everyKey()), s.Len())
}
