// Package cache is the in-process read-through cache that fronts the document store.
//
// Entries never expire. They are removed only by the invalidation Coordinator
// when a write touches the data behind them.
package cache

// Cache defines the storage contract used by ReadThrough and the Coordinator.
type Cache interface {
	Has(key Key) bool
	Get(key Key) ([]byte, bool)
	Set(key Key, value []byte)
	// DeleteMany removes every present key and returns how many were removed.
	// Absent keys are no-ops.
	DeleteMany(keys []Key) int
	Len() int

	// Generation returns an invalidation counter covering key. It increases on
	// every DeleteMany that names the key, present or not. Implementations may
	// share one counter across keys.
	Generation(key Key) uint64
	// SetIfGeneration stores value only if key has not been invalidated since gen
	// was read. It reports whether the value was stored.
	SetIfGeneration(key Key, value []byte, gen uint64) bool
}

// Metrics provides cache counters.
type Metrics struct {
	Hits          int64
	Misses        int64
	Sets          int64
	Evictions     int64
	StaleDiscards int64
	Size          int
}

// CacheWithMetrics extends Cache with metrics reporting.
type CacheWithMetrics interface {
	Cache
	Metrics() Metrics
}
