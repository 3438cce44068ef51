package orchestrator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/irscope/internal/ast"
	"github.com/zjrosen/irscope/internal/compiler"
	"github.com/zjrosen/irscope/internal/span"
)

type recordingDiagnostics struct {
	lines  []string
	clears int
}

func (r *recordingDiagnostics) Clear() {
	r.clears++
	r.lines = nil
}

func (r *recordingDiagnostics) WriteLine(text string) {
	r.lines = append(r.lines, text)
}

func fiveTokens() []compiler.Token {
	tokens := make([]compiler.Token, 5)
	for i := range tokens {
		tokens[i] = compiler.Token{
			Value: ast.String("T"),
			Span:  span.Span{Start: span.Position{Abs: i * 2}, End: span.Position{Abs: i*2 + 1}},
		}
	}
	return tokens
}

func successResult() *compiler.CompileResult {
	return &compiler.CompileResult{
		Tokens: fiveTokens(),
		AST: ast.Program{
			Functions:   []ast.Entry{{Name: "main", Node: ast.Map(ast.F("name", ast.String("main")))}},
			RequireMain: true,
		},
		IR: "define i32 @main() {\n  ret i32 0\n}",
	}
}

// scripted returns results keyed by source; sources missing from the map
// fail with their own text as message.
func scripted(results map[string]*compiler.CompileResult) compiler.Compiler {
	return compiler.Func(func(_ context.Context, src string) (*compiler.CompileResult, error) {
		if res, ok := results[src]; ok {
			return res, nil
		}
		return nil, &compiler.Failure{Message: src}
	})
}

func readyOrchestrator(c compiler.Compiler, diag Diagnostics, auto bool) *Orchestrator {
	o := New(c, diag, auto)
	o.MarkInitialized(nil)
	return o
}

func TestCompile_Success(t *testing.T) {
	diag := &recordingDiagnostics{}
	o := readyOrchestrator(scripted(map[string]*compiler.CompileResult{"fn main() {}": successResult()}), diag, false)

	out := o.Compile(context.Background(), "fn main() {}")

	require.NotNil(t, out.Result)
	require.Nil(t, out.Failure)
	require.Len(t, o.Tokens(), 5)
	require.NotNil(t, o.Program())
	require.True(t, o.Program().RequireMain)
	require.Empty(t, o.Program().DataTypes)
	require.NotEmpty(t, o.IR())
	require.Empty(t, o.Errors())

	require.Equal(t, 1, diag.clears)
	require.Equal(t, []string{"\x1b[32m✓ Compilation successful\x1b[0m"}, diag.lines)
}

func TestCompile_FailureClearsEverything(t *testing.T) {
	diag := &recordingDiagnostics{}
	o := readyOrchestrator(scripted(map[string]*compiler.CompileResult{"ok": successResult()}), diag, false)
	o.Compile(context.Background(), "ok")

	out := o.Compile(context.Background(), "line 3: unexpected token")

	require.NotNil(t, out.Failure)
	require.Nil(t, o.Tokens())
	require.Nil(t, o.Program())
	require.Empty(t, o.IR())
	require.Equal(t, []string{"line 3: unexpected token"}, o.Errors())

	require.Equal(t, 2, diag.clears)
	require.Equal(t, []string{
		"\x1b[31m✗ Compilation failed:\x1b[0m",
		"line 3: unexpected token",
	}, diag.lines)
}

func TestCompile_MultiLineFailure(t *testing.T) {
	diag := &recordingDiagnostics{}
	o := readyOrchestrator(scripted(nil), diag, false)

	o.Compile(context.Background(), "error: bad\n --> 3:4\n")

	require.Equal(t, []string{"error: bad", " --> 3:4"}, o.Errors())
	require.Len(t, diag.lines, 3)
}

func TestCompile_NonFailureErrorIsDisplayed(t *testing.T) {
	diag := &recordingDiagnostics{}
	c := compiler.Func(func(context.Context, string) (*compiler.CompileResult, error) {
		return nil, errors.New("run compiler: broken pipe")
	})
	o := readyOrchestrator(c, diag, false)

	out := o.Compile(context.Background(), "x")
	require.NotNil(t, out.Failure)
	require.Equal(t, []string{"run compiler: broken pipe"}, o.Errors())
}

func TestRequest_RefusedUntilInitialized(t *testing.T) {
	calls := 0
	c := compiler.Func(func(context.Context, string) (*compiler.CompileResult, error) {
		calls++
		return successResult(), nil
	})
	diag := &recordingDiagnostics{}
	o := New(c, diag, true)

	_, ok := o.OnSourceChanged("fn main() {}")
	require.False(t, ok)
	require.Zero(t, o.Compile(context.Background(), "fn main() {}").Generation)
	require.Zero(t, calls)
	require.Empty(t, diag.lines)

	// Nothing was queued: becoming ready does not compile by itself.
	o.MarkInitialized(nil)
	require.Zero(t, calls)

	_, ok = o.OnSourceChanged("fn main() {}")
	require.True(t, ok)
}

func TestMarkInitialized_Failure(t *testing.T) {
	diag := &recordingDiagnostics{}
	o := New(scripted(nil), diag, true)

	o.MarkInitialized(errors.New("resolve compiler \"fakec\": not found"))

	state, err := o.InitState()
	require.Equal(t, InitFailed, state)
	require.Error(t, err)
	require.False(t, o.Ready())
	require.Equal(t, "\x1b[31m✗ Compiler initialization failed:\x1b[0m", diag.lines[0])

	_, ok := o.Request()
	require.False(t, ok)
}

func TestOnSourceChanged_ManualMode(t *testing.T) {
	o := readyOrchestrator(scripted(nil), nil, false)

	_, ok := o.OnSourceChanged("fn main() {}")
	require.False(t, ok)
	require.Equal(t, "fn main() {}", o.Source())

	job, ok := o.Request()
	require.True(t, ok)
	require.Equal(t, "fn main() {}", job.Source)

	o.SetAutoCompile(true)
	require.True(t, o.AutoCompile())
	_, ok = o.OnSourceChanged("fn main() { }")
	require.True(t, ok)
}

func TestApply_StaleOutcomeDiscarded(t *testing.T) {
	results := map[string]*compiler.CompileResult{"new": successResult()}
	diag := &recordingDiagnostics{}
	o := readyOrchestrator(scripted(results), diag, true)

	slow, _ := o.OnSourceChanged("old")
	fast, _ := o.OnSourceChanged("new")

	require.True(t, o.Apply(o.Run(context.Background(), fast)))
	require.False(t, o.Apply(o.Run(context.Background(), slow)))

	require.Len(t, o.Tokens(), 5)
	require.Empty(t, o.Errors())
	require.Equal(t, fast.Generation, o.Generation())
}

func TestApply_PreviousIR(t *testing.T) {
	first := successResult()
	second := successResult()
	second.IR = "define i32 @main() {\n  ret i32 1\n}"
	o := readyOrchestrator(scripted(map[string]*compiler.CompileResult{"a": first, "b": second}), nil, false)

	o.Compile(context.Background(), "a")
	require.Empty(t, o.PreviousIR())

	o.Compile(context.Background(), "broken")
	o.Compile(context.Background(), "b")
	require.Equal(t, first.IR, o.PreviousIR())
	require.Equal(t, second.IR, o.IR())
}

func TestCompileAtomicity(t *testing.T) {
	o := readyOrchestrator(scripted(map[string]*compiler.CompileResult{"ok": successResult()}), nil, false)

	for _, src := range []string{"ok", "bad", "ok", "bad", "bad", "ok"} {
		o.Compile(context.Background(), src)
		hasTokens := o.Tokens() != nil
		hasAST := o.Program() != nil
		hasIR := o.IR() != ""
		require.Equal(t, hasTokens, hasAST, "after %q", src)
		require.Equal(t, hasAST, hasIR, "after %q", src)
		require.Equal(t, !hasAST, len(o.Errors()) > 0, "after %q", src)
	}
}

func TestInitState_String(t *testing.T) {
	require.Equal(t, "initializing", InitPending.String())
	require.Equal(t, "ready", InitReady.String())
	require.Equal(t, "failed", InitFailed.String())
}
