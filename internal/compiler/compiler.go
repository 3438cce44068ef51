// Package compiler is the boundary to the external compiler whose artifacts
// irscope displays.
package compiler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/zjrosen/irscope/internal/ast"
	"github.com/zjrosen/irscope/internal/span"
)

// ErrNotInitialized is returned by Compile before Initialize succeeded.
var ErrNotInitialized = errors.New("compiler not initialized")

// Compiler turns source text into tokens, an AST and IR.
type Compiler interface {
	Compile(ctx context.Context, source string) (*CompileResult, error)
}

// Initializer is implemented by compilers that need a one-shot setup step
// before the first Compile.
type Initializer interface {
	Initialize(ctx context.Context) error
}

// Func adapts a function to Compiler.
type Func func(ctx context.Context, source string) (*CompileResult, error)

// Compile calls f.
func (f Func) Compile(ctx context.Context, source string) (*CompileResult, error) {
	return f(ctx, source)
}

// Token is one lexer token with its source span.
type Token struct {
	Value ast.Value `json:"value"`
	Span  span.Span `json:"span"`
}

// CompileResult is the output of one successful compile.
type CompileResult struct {
	Tokens []Token     `json:"tokens"`
	AST    ast.Program `json:"ast"`
	IR     string      `json:"ir"`
}

// Decode parses the compiler's JSON output.
func Decode(data []byte) (*CompileResult, error) {
	var res CompileResult
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&res); err != nil {
		return nil, fmt.Errorf("decode compile result: %w", err)
	}
	return &res, nil
}

// Failure is a compile error reported by the compiler. Message is the
// compiler's diagnostic text and may contain ANSI escapes.
type Failure struct {
	Message string
}

func (f *Failure) Error() string {
	return f.Message
}

// Lines splits the message into display lines. A trailing newline does not
// produce an empty last line.
func (f *Failure) Lines() []string {
	msg := strings.TrimRight(f.Message, "\r\n")
	if msg == "" {
		return nil
	}
	lines := strings.Split(msg, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// AsFailure returns err as a *Failure. Errors that are not failures are
// wrapped into one carrying their text.
func AsFailure(err error) *Failure {
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	return &Failure{Message: err.Error()}
}
