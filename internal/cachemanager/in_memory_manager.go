package cachemanager

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/irscope/internal/log"
)

const (
	DefaultExpiration      = 10 * time.Minute
	DefaultCleanupInterval = 30 * time.Minute
)

// InMemoryCacheManager is a CacheManager backed by go-cache.
type InMemoryCacheManager[K ~string, V any] struct {
	name  string
	cache *gocache.Cache
}

// NewInMemoryCacheManager creates a cache. name only appears in log lines.
func NewInMemoryCacheManager[K ~string, V any](name string, defaultExpiration, cleanupInterval time.Duration) *InMemoryCacheManager[K, V] {
	return &InMemoryCacheManager[K, V]{
		name:  name,
		cache: gocache.New(defaultExpiration, cleanupInterval),
	}
}

// Get returns the value stored under key. A value of the wrong type counts
// as a miss.
func (c *InMemoryCacheManager[K, V]) Get(_ context.Context, key K) (V, bool) {
	var zero V

	raw, found := c.cache.Get(string(key))
	if !found {
		return zero, false
	}
	v, ok := raw.(V)
	if !ok {
		log.Error(log.CatCache, "unexpected value type", "cache", c.name, "key", key)
		return zero, false
	}

	log.Debug(log.CatCache, "cache hit", "cache", c.name, "key", key)
	return v, true
}

// Set stores value under key for ttl.
func (c *InMemoryCacheManager[K, V]) Set(_ context.Context, key K, value V, ttl time.Duration) {
	c.cache.Set(string(key), value, ttl)
}

// Delete removes keys. Missing keys are ignored.
func (c *InMemoryCacheManager[K, V]) Delete(_ context.Context, keys ...K) error {
	for _, key := range keys {
		c.cache.Delete(string(key))
	}
	return nil
}

// Flush removes every entry.
func (c *InMemoryCacheManager[K, V]) Flush(_ context.Context) error {
	c.cache.Flush()
	return nil
}

// Len returns the number of stored entries, including expired ones not yet
// cleaned up.
func (c *InMemoryCacheManager[K, V]) Len() int {
	return c.cache.ItemCount()
}
