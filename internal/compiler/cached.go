package compiler

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/irscope/internal/cachemanager"
	"github.com/zjrosen/irscope/internal/tracing"
)

// SourceKey identifies a source text in the compile cache.
type SourceKey string

// KeyOf returns the cache key of source.
func KeyOf(source string) SourceKey {
	sum := sha256.Sum256([]byte(source))
	return SourceKey(hex.EncodeToString(sum[:]))
}

// Cached serves repeated compiles of identical source from a cache.
// Failures are never cached.
type Cached struct {
	next Compiler
	rt   *cachemanager.ReadThroughCache[SourceKey, *CompileResult, string]
	ttl  time.Duration
}

// NewCached wraps next with cache. Entries live for ttl.
func NewCached(next Compiler, cache cachemanager.CacheManager[SourceKey, *CompileResult], ttl time.Duration) *Cached {
	return &Cached{
		next: next,
		rt:   cachemanager.NewReadThroughCache[SourceKey, *CompileResult, string](cache, next.Compile, false),
		ttl:  ttl,
	}
}

// Compile implements Compiler. A cache hit is recorded on the span in ctx.
func (c *Cached) Compile(ctx context.Context, source string) (*CompileResult, error) {
	res, hit, err := c.rt.Get(ctx, KeyOf(source), source, c.ttl)
	trace.SpanFromContext(ctx).SetAttributes(attribute.Bool(tracing.AttrCacheHit, hit))
	return res, err
}

// Initialize forwards to the wrapped compiler.
func (c *Cached) Initialize(ctx context.Context) error {
	if i, ok := c.next.(Initializer); ok {
		return i.Initialize(ctx)
	}
	return nil
}
