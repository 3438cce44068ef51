package compiler

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/irscope/internal/tracing"
)

// Traced records a span around every compile and initialization.
type Traced struct {
	next   Compiler
	tracer trace.Tracer
}

// NewTraced wraps next.
func NewTraced(next Compiler, tracer trace.Tracer) *Traced {
	return &Traced{next: next, tracer: tracer}
}

// Compile implements Compiler.
func (t *Traced) Compile(ctx context.Context, source string) (*CompileResult, error) {
	ctx, sp := t.tracer.Start(ctx, tracing.SpanCompile,
		trace.WithAttributes(
			attribute.Int(tracing.AttrSourceBytes, len(source)),
			attribute.String(tracing.AttrSourceHash, string(KeyOf(source))),
		),
	)
	defer sp.End()

	res, err := t.next.Compile(ctx, source)
	if err != nil {
		var f *Failure
		sp.SetAttributes(attribute.Bool(tracing.AttrFailure, errors.As(err, &f)))
		sp.SetAttributes(attribute.String(tracing.AttrErrorMessage, err.Error()))
		sp.SetStatus(codes.Error, "compile failed")
		return nil, err
	}

	sp.SetAttributes(
		attribute.Int(tracing.AttrTokenCount, len(res.Tokens)),
		attribute.Int(tracing.AttrFunctions, len(res.AST.Functions)),
		attribute.Int(tracing.AttrIRChars, len([]rune(res.IR))),
	)
	sp.SetStatus(codes.Ok, "")
	return res, nil
}

// Initialize forwards to the wrapped compiler inside its own span.
func (t *Traced) Initialize(ctx context.Context) error {
	i, ok := t.next.(Initializer)
	if !ok {
		return nil
	}
	ctx, sp := t.tracer.Start(ctx, tracing.SpanInitialize)
	defer sp.End()

	if err := i.Initialize(ctx); err != nil {
		sp.SetAttributes(attribute.String(tracing.AttrErrorMessage, err.Error()))
		sp.SetStatus(codes.Error, "initialize failed")
		return err
	}
	sp.SetStatus(codes.Ok, "")
	return nil
}
