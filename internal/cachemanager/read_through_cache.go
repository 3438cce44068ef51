package cachemanager

import (
	"context"
	"time"
)

// ReadThroughCache serves values from a cache and falls back to fn on a
// miss. Errors from fn are returned and never cached.
type ReadThroughCache[K ~string, V any, I any] struct {
	cache CacheManager[K, V]
	fn    func(ctx context.Context, input I) (V, error)
	skip  bool
}

// NewReadThroughCache wraps fn. With skip set every Get calls fn directly.
func NewReadThroughCache[K ~string, V any, I any](
	cache CacheManager[K, V],
	fn func(ctx context.Context, input I) (V, error),
	skip bool,
) *ReadThroughCache[K, V, I] {
	return &ReadThroughCache[K, V, I]{cache: cache, fn: fn, skip: skip}
}

// Get returns the cached value for key, or computes it from input and
// stores it for ttl. hit reports whether the cache answered.
func (r *ReadThroughCache[K, V, I]) Get(ctx context.Context, key K, input I, ttl time.Duration) (value V, hit bool, err error) {
	if r.skip {
		value, err = r.fn(ctx, input)
		return value, false, err
	}

	if v, ok := r.cache.Get(ctx, key); ok {
		return v, true, nil
	}

	value, err = r.fn(ctx, input)
	if err != nil {
		return value, false, err
	}
	r.cache.Set(ctx, key, value, ttl)
	return value, false, nil
}
