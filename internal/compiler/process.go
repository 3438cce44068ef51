package compiler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"github.com/zjrosen/irscope/internal/log"
)

// Compile-time check that ProcessCompiler implements both interfaces.
var (
	_ Compiler    = (*ProcessCompiler)(nil)
	_ Initializer = (*ProcessCompiler)(nil)
)

// ProcessCompiler runs an external command per compile. The source is
// written to the command's stdin; on exit status 0 stdout must hold the
// JSON compile result, otherwise stderr holds the diagnostic.
type ProcessCompiler struct {
	command []string
	probe   []string

	mu   sync.Mutex
	path string
}

// NewProcessCompiler returns a compiler for command. probe, when non-empty,
// is appended to the command's arguments and run once by Initialize.
func NewProcessCompiler(command, probe []string) *ProcessCompiler {
	return &ProcessCompiler{command: command, probe: probe}
}

// Initialize resolves the executable and runs the probe.
func (p *ProcessCompiler) Initialize(ctx context.Context) error {
	if len(p.command) == 0 || p.command[0] == "" {
		return errors.New("compiler command is empty")
	}
	path, err := exec.LookPath(p.command[0])
	if err != nil {
		return fmt.Errorf("resolve compiler %q: %w", p.command[0], err)
	}

	if len(p.probe) > 0 {
		args := append(append([]string{}, p.command[1:]...), p.probe...)
		out, stderr, err := run(ctx, path, args, "")
		if err != nil {
			if msg := strings.TrimSpace(stderr); msg != "" {
				return fmt.Errorf("probe %s: %s: %w", strings.Join(p.probe, " "), msg, err)
			}
			return fmt.Errorf("probe %s: %w", strings.Join(p.probe, " "), err)
		}
		log.Info(log.CatCompile, "compiler probed", "path", path, "output", strings.TrimSpace(out))
	}

	p.mu.Lock()
	p.path = path
	p.mu.Unlock()
	return nil
}

// Compile runs the command on source.
func (p *ProcessCompiler) Compile(ctx context.Context, source string) (*CompileResult, error) {
	p.mu.Lock()
	path := p.path
	p.mu.Unlock()
	if path == "" {
		return nil, ErrNotInitialized
	}

	out, stderr, err := run(ctx, path, p.command[1:], source)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			msg := stderr
			if strings.TrimSpace(msg) == "" {
				msg = exitErr.Error()
			}
			return nil, &Failure{Message: msg}
		}
		return nil, fmt.Errorf("run compiler: %w", err)
	}

	res, err := Decode([]byte(out))
	if err != nil {
		return nil, &Failure{Message: "invalid compiler output: " + err.Error()}
	}
	return res, nil
}

func run(ctx context.Context, path string, args []string, stdin string) (string, string, error) {
	//nolint:gosec // G204: command comes from the user's own config
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = strings.NewReader(stdin)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}
