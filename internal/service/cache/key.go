package cache

// KeyKind enumerates every cached view. Each kind maps to exactly one result type.
type KeyKind int

const (
	KindAllProducts KeyKind = iota + 1
	KindLatestProducts
	KindCategories
	KindProduct
	KindAllOrders
	KindMyOrders
	KindOrder
	KindAdminStats
	KindAdminPieCharts
	KindAdminBarCharts
	KindAdminLineCharts
)

// names holds the rendered name of static kinds and the prefix of parametrized ones.
var names = map[KeyKind]string{
	KindAllProducts:     "all-products",
	KindLatestProducts:  "latest-products",
	KindCategories:      "categories",
	KindProduct:         "product",
	KindAllOrders:       "all-orders",
	KindMyOrders:        "my-orders",
	KindOrder:           "order",
	KindAdminStats:      "admin-stats",
	KindAdminPieCharts:  "admin-pie-charts",
	KindAdminBarCharts:  "admin-bar-charts",
	KindAdminLineCharts: "admin-line-charts",
}

// String returns the kind name, used as a metrics label.
func (k KeyKind) String() string {
	if n, ok := names[k]; ok {
		return n
	}
	return "unknown"
}

// Parametrized reports whether keys of this kind carry an id.
func (k KeyKind) Parametrized() bool {
	return k == KindProduct || k == KindMyOrders || k == KindOrder
}

// Key identifies one cache entry. The zero value is invalid.
type Key struct {
	kind KeyKind
	id   string
}

// Kind returns the key kind.
func (k Key) Kind() KeyKind { return k.kind }

// ID returns the identifier of a parametrized key, empty for static keys.
func (k Key) ID() string { return k.id }

// String renders the storage key. This is the only place keys are built.
func (k Key) String() string {
	if k.kind.Parametrized() {
		return names[k.kind] + "-" + k.id
	}
	return k.kind.String()
}

func AllProductsKey() Key     { return Key{kind: KindAllProducts} }
func LatestProductsKey() Key  { return Key{kind: KindLatestProducts} }
func CategoriesKey() Key      { return Key{kind: KindCategories} }
func AllOrdersKey() Key       { return Key{kind: KindAllOrders} }
func AdminStatsKey() Key      { return Key{kind: KindAdminStats} }
func AdminPieChartsKey() Key  { return Key{kind: KindAdminPieCharts} }
func AdminBarChartsKey() Key  { return Key{kind: KindAdminBarCharts} }
func AdminLineChartsKey() Key { return Key{kind: KindAdminLineCharts} }

// ProductKey returns the key for a single product.
func ProductKey(id string) Key { return Key{kind: KindProduct, id: id} }

// OrderKey returns the key for a single order.
func OrderKey(id string) Key { return Key{kind: KindOrder, id: id} }

// MyOrdersKey returns the key for the orders placed by one user.
func MyOrdersKey(userID string) Key { return Key{kind: KindMyOrders, id: userID} }

// ProductListKeys are the whole-collection product views.
func ProductListKeys() []Key {
	return []Key{LatestProductsKey(), CategoriesKey(), AllProductsKey()}
}

// AdminKeys are the four dashboard aggregates.
func AdminKeys() []Key {
	return []Key{AdminStatsKey(), AdminPieChartsKey(), AdminBarChartsKey(), AdminLineChartsKey()}
}

// Typed binds a key to the single result type stored under it.
type Typed[T any] struct {
	key Key
}

// NewTyped binds key to T.
func NewTyped[T any](key Key) Typed[T] {
	return Typed[T]{key: key}
}

// Key returns the untyped key.
func (t Typed[T]) Key() Key { return t.key }
