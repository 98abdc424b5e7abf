//go:build !integration

package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey_String(t *testing.T) {
	tests := []struct {
		name     string
		key      Key
		expected string
	}{
		{"all products", AllProductsKey(), "all-products"},
		{"latest products", LatestProductsKey(), "latest-products"},
		{"categories", CategoriesKey(), "categories"},
		{"all orders", AllOrdersKey(), "all-orders"},
		{"admin stats", AdminStatsKey(), "admin-stats"},
		{"admin pie", AdminPieChartsKey(), "admin-pie-charts"},
		{"admin bar", AdminBarChartsKey(), "admin-bar-charts"},
		{"admin line", AdminLineChartsKey(), "admin-line-charts"},
		{"product", ProductKey("665f1c"), "product-665f1c"},
		{"order", OrderKey("abc"), "order-abc"},
		{"my orders", MyOrdersKey("uid-1"), "my-orders-uid-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.key.String())
		})
	}
}

func TestKey_Accessors(t *testing.T) {
	k := ProductKey("p1")
	assert.Equal(t, KindProduct, k.Kind())
	assert.Equal(t, "p1", k.ID())
	assert.True(t, k.Kind().Parametrized())

	s := CategoriesKey()
	assert.Equal(t, "", s.ID())
	assert.False(t, s.Kind().Parametrized())
}

func TestKeyKind_String(t *testing.T) {
	assert.Equal(t, "product", KindProduct.String())
	assert.Equal(t, "my-orders", KindMyOrders.String())
	assert.Equal(t, "unknown", KeyKind(0).String())
}

func TestKeyGroups(t *testing.T) {
	assert.Equal(t, []string{"latest-products", "categories", "all-products"}, render(ProductListKeys()))
	assert.Equal(t, []string{"admin-stats", "admin-pie-charts", "admin-bar-charts", "admin-line-charts"}, render(AdminKeys()))
}

func TestTyped_Key(t *testing.T) {
	typed := NewTyped[[]string](CategoriesKey())
	assert.Equal(t, CategoriesKey(), typed.Key())
}

func render(keys []Key) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.String()
	}
	return out
}
