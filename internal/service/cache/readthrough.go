package cache

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/vikasdeshmukh63/ecom-backend/internal/metrics"
)

// ComputeFunc loads the value for a missed key from the underlying store.
type ComputeFunc[T any] func(ctx context.Context) (T, error)

// ReadThrough returns the cached value under key, computing and storing it on a miss.
//
// A hit never calls compute. Errors from compute are returned unchanged and
// nothing is stored. An entry that fails to decode is treated as a miss.
// A computed value is only stored if key was not invalidated while compute ran;
// otherwise it is returned to the caller but not cached.
func ReadThrough[T any](ctx context.Context, c Cache, key Typed[T], compute ComputeFunc[T]) (T, error) {
	k := key.Key()

	if raw, ok := c.Get(k); ok {
		var cached T
		err := json.Unmarshal(raw, &cached)
		if err == nil {
			return cached, nil
		}
		metrics.RecordCacheOperation("decode", "error")
		log.Warn().Err(err).Str("key", k.String()).Msg("Malformed cache entry, recomputing")
	}

	gen := c.Generation(k)

	value, err := compute(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		metrics.RecordCacheOperation("encode", "error")
		log.Error().Err(err).Str("key", k.String()).Msg("Failed to encode cache entry")
		return value, nil
	}

	if !c.SetIfGeneration(k, raw, gen) {
		log.Debug().Str("key", k.String()).Msg("Discarded cache fill that raced an invalidation")
	}
	return value, nil
}
