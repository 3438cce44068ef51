// Package orchestrator owns the source text, drives the compiler and fans
// each outcome out to the result panes and the diagnostic display.
package orchestrator

import (
	"context"
	"errors"

	"github.com/muesli/termenv"

	"github.com/zjrosen/irscope/internal/ast"
	"github.com/zjrosen/irscope/internal/compiler"
	"github.com/zjrosen/irscope/internal/log"
)

// Diagnostic marker lines.
const (
	SuccessMarker    = "✓ Compilation successful"
	FailureMarker    = "✗ Compilation failed:"
	InitFailedMarker = "✗ Compiler initialization failed:"
)

// Diagnostics is the display compiler diagnostics are written to.
type Diagnostics interface {
	Clear()
	WriteLine(text string)
}

// InitState is the compiler's initialization state.
type InitState int

const (
	InitPending InitState = iota
	InitReady
	InitFailed
)

func (s InitState) String() string {
	switch s {
	case InitPending:
		return "initializing"
	case InitReady:
		return "ready"
	case InitFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Job is a compile request that has been accepted.
type Job struct {
	Generation uint64
	Source     string
}

// Outcome is the result of running a Job.
type Outcome struct {
	Generation uint64
	Result     *compiler.CompileResult
	Failure    *compiler.Failure
}

// Orchestrator holds the current source and the latest compile outcome.
// Methods other than Run must be called from one goroutine.
type Orchestrator struct {
	compiler compiler.Compiler
	diag     Diagnostics
	auto     bool

	init    InitState
	initErr error

	source  string
	issued  uint64
	applied uint64

	tokens   []compiler.Token
	program  *ast.Program
	ir       string
	errLines []string

	lastGoodIR string
	previousIR string
}

// New returns an orchestrator waiting for MarkInitialized. With auto set,
// every source change requests a compile.
func New(c compiler.Compiler, diag Diagnostics, auto bool) *Orchestrator {
	return &Orchestrator{compiler: c, diag: diag, auto: auto}
}

// MarkInitialized records the outcome of the compiler's initialization. A
// non-nil err leaves the orchestrator refusing every request.
func (o *Orchestrator) MarkInitialized(err error) {
	if err != nil {
		o.init = InitFailed
		o.initErr = err
		log.ErrorErr(log.CatCompile, "compiler initialization failed", err)
		if o.diag != nil {
			o.diag.Clear()
			o.diag.WriteLine(red(InitFailedMarker))
			for _, line := range compiler.AsFailure(err).Lines() {
				o.diag.WriteLine(line)
			}
		}
		return
	}
	o.init = InitReady
	o.initErr = nil
	log.Info(log.CatCompile, "compiler ready")
}

// InitState returns the initialization state and, when failed, its error.
func (o *Orchestrator) InitState() (InitState, error) { return o.init, o.initErr }

// Ready reports whether compile requests are accepted.
func (o *Orchestrator) Ready() bool { return o.init == InitReady }

// AutoCompile reports whether source changes trigger compiles.
func (o *Orchestrator) AutoCompile() bool { return o.auto }

// SetAutoCompile switches the trigger policy.
func (o *Orchestrator) SetAutoCompile(auto bool) { o.auto = auto }

// Source returns the current source text.
func (o *Orchestrator) Source() string { return o.source }

// SetSource replaces the source text without requesting a compile.
func (o *Orchestrator) SetSource(src string) { o.source = src }

// OnSourceChanged records src and, under auto-compile, requests a compile.
func (o *Orchestrator) OnSourceChanged(src string) (Job, bool) {
	o.source = src
	if !o.auto {
		return Job{}, false
	}
	return o.Request()
}

// Request accepts a compile of the current source. While the compiler is
// not ready the request is refused and nothing is queued.
func (o *Orchestrator) Request() (Job, bool) {
	if o.init != InitReady {
		log.Debug(log.CatCompile, "compile refused", "state", o.init)
		return Job{}, false
	}
	o.issued++
	return Job{Generation: o.issued, Source: o.source}, true
}

// Run performs the compile for job. It touches no orchestrator state and
// may run on any goroutine.
func (o *Orchestrator) Run(ctx context.Context, job Job) Outcome {
	res, err := o.compiler.Compile(ctx, job.Source)
	if err != nil {
		if !errors.As(err, new(*compiler.Failure)) {
			log.ErrorErr(log.CatCompile, "compiler invocation failed", err)
		}
		return Outcome{Generation: job.Generation, Failure: compiler.AsFailure(err)}
	}
	return Outcome{Generation: job.Generation, Result: res}
}

// Apply installs out. Outcomes older than the last applied one are
// discarded and Apply reports false.
func (o *Orchestrator) Apply(out Outcome) bool {
	if out.Generation <= o.applied {
		log.Debug(log.CatCompile, "stale outcome discarded", "generation", out.Generation, "applied", o.applied)
		return false
	}
	o.applied = out.Generation

	if out.Failure != nil || out.Result == nil {
		f := out.Failure
		if f == nil {
			f = &compiler.Failure{Message: "compiler returned no result"}
		}
		o.tokens, o.program, o.ir = nil, nil, ""
		o.errLines = f.Lines()
		log.Warn(log.CatCompile, "compile failed", "generation", out.Generation, "lines", len(o.errLines))

		if o.diag != nil {
			o.diag.Clear()
			o.diag.WriteLine(red(FailureMarker))
			for _, line := range o.errLines {
				o.diag.WriteLine(line)
			}
		}
		return true
	}

	res := out.Result
	program := res.AST
	o.tokens, o.program, o.ir = res.Tokens, &program, res.IR
	o.errLines = nil
	o.previousIR, o.lastGoodIR = o.lastGoodIR, res.IR
	log.Info(log.CatCompile, "compile succeeded", "generation", out.Generation,
		"tokens", len(res.Tokens), "functions", len(program.Functions))

	if o.diag != nil {
		o.diag.Clear()
		o.diag.WriteLine(green(SuccessMarker))
	}
	return true
}

// Compile sets src as the source and compiles it synchronously. The
// returned outcome has generation 0 when the request was refused.
func (o *Orchestrator) Compile(ctx context.Context, src string) Outcome {
	o.source = src
	job, ok := o.Request()
	if !ok {
		return Outcome{}
	}
	out := o.Run(ctx, job)
	o.Apply(out)
	return out
}

// Tokens returns the tokens of the last successful compile.
func (o *Orchestrator) Tokens() []compiler.Token { return o.tokens }

// Program returns the AST of the last compile, or nil after a failure.
func (o *Orchestrator) Program() *ast.Program { return o.program }

// IR returns the IR of the last compile.
func (o *Orchestrator) IR() string { return o.ir }

// PreviousIR returns the IR of the successful compile before the current
// one.
func (o *Orchestrator) PreviousIR() string { return o.previousIR }

// Errors returns the failure message lines of the last compile.
func (o *Orchestrator) Errors() []string { return o.errLines }

// Generation returns the generation of the last applied outcome.
func (o *Orchestrator) Generation() uint64 { return o.applied }

func green(s string) string {
	return termenv.ANSI.String(s).Foreground(termenv.ANSIGreen).String()
}

func red(s string) string {
	return termenv.ANSI.String(s).Foreground(termenv.ANSIRed).String()
}
