package cachemanager

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type sourceKey string

type result struct {
	IR     string
	Tokens int
}

func TestInMemoryCacheManager_SetGet(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemoryCacheManager[sourceKey, result]("compile", DefaultExpiration, DefaultCleanupInterval)

	want := result{IR: "define i32 @main()", Tokens: 5}
	cache.Set(ctx, "abc", want, DefaultExpiration)

	got, ok := cache.Get(ctx, "abc")
	require.True(t, ok)
	require.Equal(t, want, got)
	require.Equal(t, 1, cache.Len())
}

func TestInMemoryCacheManager_Miss(t *testing.T) {
	cache := NewInMemoryCacheManager[sourceKey, string]("compile", DefaultExpiration, DefaultCleanupInterval)

	got, ok := cache.Get(context.Background(), "missing")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemoryCacheManager_WrongTypeIsMiss(t *testing.T) {
	cache := NewInMemoryCacheManager[sourceKey, string]("compile", DefaultExpiration, DefaultCleanupInterval)
	cache.cache.Set("k", 123, DefaultExpiration)

	_, ok := cache.Get(context.Background(), "k")
	require.False(t, ok)
}

func TestInMemoryCacheManager_Expiry(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemoryCacheManager[sourceKey, string]("compile", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(ctx, "k", "v", time.Millisecond)

	require.Eventually(t, func() bool {
		_, ok := cache.Get(ctx, "k")
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestInMemoryCacheManager_DeleteAndFlush(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemoryCacheManager[sourceKey, string]("compile", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(ctx, "a", "1", DefaultExpiration)
	cache.Set(ctx, "b", "2", DefaultExpiration)

	require.NoError(t, cache.Delete(ctx, "a", "nope"))
	_, ok := cache.Get(ctx, "a")
	require.False(t, ok)

	require.NoError(t, cache.Flush(ctx))
	require.Zero(t, cache.Len())
}
