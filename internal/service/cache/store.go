package cache

import (
	"sync"
	"sync/atomic"

	"github.com/vikasdeshmukh63/ecom-backend/internal/metrics"
)

// Store is an unbounded in-memory Cache. It is safe for concurrent use.
//
// Generations are store-wide: every DeleteMany advances one epoch, so a fill
// that overlaps any invalidation is discarded. The store keeps no per-key
// bookkeeping beyond its entries.
type Store struct {
	mu      sync.RWMutex
	entries map[string][]byte
	epoch   uint64

	hits          atomic.Int64
	misses        atomic.Int64
	sets          atomic.Int64
	evictions     atomic.Int64
	staleDiscards atomic.Int64
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{entries: make(map[string][]byte)}
}

// Has reports whether key is present.
func (s *Store) Has(key Key) bool {
	s.mu.RLock()
	_, ok := s.entries[key.String()]
	s.mu.RUnlock()
	return ok
}

// Get returns the serialized value under key. Callers must not modify it.
func (s *Store) Get(key Key) ([]byte, bool) {
	s.mu.RLock()
	v, ok := s.entries[key.String()]
	s.mu.RUnlock()

	if ok {
		s.hits.Add(1)
		metrics.RecordCacheOperation("get", "hit")
	} else {
		s.misses.Add(1)
		metrics.RecordCacheOperation("get", "miss")
	}
	return v, ok
}

// Set overwrites key unconditionally.
func (s *Store) Set(key Key, value []byte) {
	s.mu.Lock()
	s.entries[key.String()] = clone(value)
	size := len(s.entries)
	s.mu.Unlock()

	s.recordSet(size)
}

// Generation returns the current invalidation epoch. It is the same for every key.
func (s *Store) Generation(Key) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epoch
}

// SetIfGeneration stores value only when no invalidation happened after gen was read.
func (s *Store) SetIfGeneration(key Key, value []byte, gen uint64) bool {
	k := key.String()

	s.mu.Lock()
	if s.epoch != gen {
		s.mu.Unlock()
		s.staleDiscards.Add(1)
		metrics.RecordCacheOperation("set", "stale")
		return false
	}
	s.entries[k] = clone(value)
	size := len(s.entries)
	s.mu.Unlock()

	s.recordSet(size)
	return true
}

// DeleteMany removes keys and advances the epoch once.
func (s *Store) DeleteMany(keys []Key) int {
	if len(keys) == 0 {
		return 0
	}

	removed := 0
	s.mu.Lock()
	s.epoch++
	for _, key := range keys {
		k := key.String()
		if _, ok := s.entries[k]; ok {
			delete(s.entries, k)
			removed++
		}
	}
	size := len(s.entries)
	s.mu.Unlock()

	s.evictions.Add(int64(removed))
	metrics.UpdateCacheSize(size)
	return removed
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Metrics returns a snapshot of the store counters.
func (s *Store) Metrics() Metrics {
	return Metrics{
		Hits:          s.hits.Load(),
		Misses:        s.misses.Load(),
		Sets:          s.sets.Load(),
		Evictions:     s.evictions.Load(),
		StaleDiscards: s.staleDiscards.Load(),
		Size:          s.Len(),
	}
}

func (s *Store) recordSet(size int) {
	s.sets.Add(1)
	metrics.RecordCacheOperation("set", "success")
	metrics.UpdateCacheSize(size)
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
