package middleware

import (
	"sync"
	"time"
)

// IdempotencyStore keeps replayable responses for a fixed TTL.
type IdempotencyStore struct {
	mu    sync.RWMutex
	items map[string]*cachedResponse
	ttl   time.Duration
	now   func() time.Time

	stop chan struct{}
	once sync.Once
}

// NewIdempotencyStore creates a store and starts its cleanup loop.
func NewIdempotencyStore(ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = IdempotencyKeyTTL
	}
	s := &IdempotencyStore{
		items: make(map[string]*cachedResponse),
		ttl:   ttl,
		now:   time.Now,
		stop:  make(chan struct{}),
	}
	go s.cleanupLoop()
	return s
}

// Get returns a stored response that has not expired.
func (s *IdempotencyStore) Get(key string) (*cachedResponse, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	resp, ok := s.items[key]
	if !ok || s.now().Sub(resp.StoredAt) > s.ttl {
		return nil, false
	}
	return resp, true
}

// Set stores resp under key, stamping it with the current time.
func (s *IdempotencyStore) Set(key string, resp *cachedResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp.StoredAt = s.now()
	s.items[key] = resp
}

// Len reports how many responses are held, expired or not.
func (s *IdempotencyStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Stop ends the cleanup loop. It is safe to call more than once.
func (s *IdempotencyStore) Stop() {
	s.once.Do(func() { close(s.stop) })
}

func (s *IdempotencyStore) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stop:
			return
		}
	}
}

func (s *IdempotencyStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, resp := range s.items {
		if now.Sub(resp.StoredAt) > s.ttl {
			delete(s.items, key)
		}
	}
}
