package cache

import (
	"github.com/rs/zerolog/log"

	"github.com/vikasdeshmukh63/ecom-backend/internal/metrics"
)

// Request describes a completed write. It is built and consumed within one write flow.
type Request struct {
	ProductChanged bool
	OrderChanged   bool
	AdminChanged   bool

	UserID     string
	OrderID    string
	ProductIDs []string
}

// Keys returns the exact set of keys the request evicts, without duplicates.
// Per-user and per-order keys are skipped when their id is empty.
func (r Request) Keys() []Key {
	var keys []Key
	seen := make(map[string]struct{})
	add := func(k Key) {
		if _, ok := seen[k.String()]; ok {
			return
		}
		seen[k.String()] = struct{}{}
		keys = append(keys, k)
	}

	if r.ProductChanged {
		for _, k := range ProductListKeys() {
			add(k)
		}
		for _, id := range r.ProductIDs {
			if id != "" {
				add(ProductKey(id))
			}
		}
	}

	if r.OrderChanged {
		add(AllOrdersKey())
		if r.UserID != "" {
			add(MyOrdersKey(r.UserID))
		}
		if r.OrderID != "" {
			add(OrderKey(r.OrderID))
		}
	}

	if r.AdminChanged {
		for _, k := range AdminKeys() {
			add(k)
		}
	}

	return keys
}

// Coordinator turns invalidation requests into batched deletes.
type Coordinator struct {
	cache Cache
}

// NewCoordinator creates a Coordinator over c.
func NewCoordinator(c Cache) *Coordinator {
	return &Coordinator{cache: c}
}

// Invalidate evicts every key named by req and returns how many entries were removed.
func (c *Coordinator) Invalidate(req Request) int {
	keys := req.Keys()
	if len(keys) == 0 {
		return 0
	}

	removed := c.cache.DeleteMany(keys)

	if req.ProductChanged {
		metrics.RecordInvalidation("product")
	}
	if req.OrderChanged {
		metrics.RecordInvalidation("order")
	}
	if req.AdminChanged {
		metrics.RecordInvalidation("admin")
	}
	metrics.RecordEvictedKeys(removed)

	log.Debug().
		Int("keys", len(keys)).
		Int("removed", removed).
		Bool("product", req.ProductChanged).
		Bool("order", req.OrderChanged).
		Bool("admin", req.AdminChanged).
		Msg("Cache invalidated")

	return removed
}
