package cmd

import (
	"fmt"
	"time"

	"github.com/zjrosen/irscope/internal/cachemanager"
	"github.com/zjrosen/irscope/internal/compiler"
	"github.com/zjrosen/irscope/internal/config"
	"github.com/zjrosen/irscope/internal/log"
	"github.com/zjrosen/irscope/internal/tracing"
)

// compilerStack is the configured compiler chain and the resources it owns.
type compilerStack struct {
	compiler    compiler.Compiler
	initializer compiler.Initializer
	provider    *tracing.Provider
}

// buildCompiler wires process → cache → tracing according to cfg.
func buildCompiler(cfg config.Config) (*compilerStack, error) {
	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return nil, fmt.Errorf("creating tracing provider: %w", err)
	}
	if provider.Enabled() {
		log.Info(log.CatTrace, "tracing enabled",
			"exporter", cfg.Tracing.Exporter, "session", provider.SessionID())
	}

	process := compiler.NewProcessCompiler(cfg.Compiler.Command, cfg.Compiler.Probe)

	var c compiler.Compiler = process
	if cfg.Cache.Enabled {
		cache := cachemanager.NewInMemoryCacheManager[compiler.SourceKey, *compiler.CompileResult](
			"compile", cfg.Cache.TTL, time.Minute)
		c = compiler.NewCached(c, cache, cfg.Cache.TTL)
	}
	traced := compiler.NewTraced(c, provider.Tracer())

	return &compilerStack{
		compiler:    traced,
		initializer: traced,
		provider:    provider,
	}, nil
}

// shutdown flushes pending spans.
func (s *compilerStack) shutdown() {
	ctx, cancel := shutdownTimeout()
	defer cancel()
	if err := s.provider.Shutdown(ctx); err != nil {
		log.ErrorErr(log.CatTrace, "tracing shutdown", err)
	}
}
