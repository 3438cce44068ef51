package compiler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const helperEnv = "IRSCOPE_COMPILER_HELPER"

// TestHelperProcess is not a real test. It is the fake compiler the process
// tests execute.
func TestHelperProcess(t *testing.T) {
	if os.Getenv(helperEnv) != "1" {
		return
	}

	args := os.Args
	for i, a := range args {
		if a == "--" {
			args = args[i+1:]
			break
		}
	}
	if len(args) > 0 {
		switch args[0] {
		case "--version":
			fmt.Println("fakec 1.0")
			os.Exit(0)
		case "--broken":
			fmt.Fprintln(os.Stderr, "missing runtime")
			os.Exit(3)
		}
	}

	src, _ := io.ReadAll(os.Stdin)
	switch {
	case strings.Contains(string(src), "boom"):
		fmt.Fprint(os.Stderr, "\x1b[31merror\x1b[0m\nline 3: unexpected token\n")
		os.Exit(1)
	case strings.Contains(string(src), "silent"):
		os.Exit(2)
	case strings.Contains(string(src), "garbage"):
		fmt.Print("not json")
	default:
		fmt.Print(fixture)
	}
	os.Exit(0)
}

func helperCommand(t *testing.T) []string {
	t.Helper()
	t.Setenv(helperEnv, "1")
	return []string{os.Args[0], "-test.run=TestHelperProcess", "--"}
}

func TestProcessCompiler_NotInitialized(t *testing.T) {
	p := NewProcessCompiler(helperCommand(t), nil)
	_, err := p.Compile(context.Background(), "fn main() {}")
	require.ErrorIs(t, err, ErrNotInitialized)
}

func TestProcessCompiler_Success(t *testing.T) {
	p := NewProcessCompiler(helperCommand(t), []string{"--version"})
	require.NoError(t, p.Initialize(context.Background()))

	res, err := p.Compile(context.Background(), "fn main() {}")
	require.NoError(t, err)
	require.Len(t, res.Tokens, 5)
	require.True(t, res.AST.RequireMain)
}

func TestProcessCompiler_Failure(t *testing.T) {
	p := NewProcessCompiler(helperCommand(t), nil)
	require.NoError(t, p.Initialize(context.Background()))

	_, err := p.Compile(context.Background(), "boom")
	var f *Failure
	require.True(t, errors.As(err, &f))
	require.Equal(t, []string{"\x1b[31merror\x1b[0m", "line 3: unexpected token"}, f.Lines())
}

func TestProcessCompiler_FailureWithoutStderr(t *testing.T) {
	p := NewProcessCompiler(helperCommand(t), nil)
	require.NoError(t, p.Initialize(context.Background()))

	_, err := p.Compile(context.Background(), "silent")
	var f *Failure
	require.True(t, errors.As(err, &f))
	require.Contains(t, f.Message, "exit status 2")
}

func TestProcessCompiler_InvalidOutput(t *testing.T) {
	p := NewProcessCompiler(helperCommand(t), nil)
	require.NoError(t, p.Initialize(context.Background()))

	_, err := p.Compile(context.Background(), "garbage")
	var f *Failure
	require.True(t, errors.As(err, &f))
	require.Contains(t, f.Message, "invalid compiler output")
}

func TestProcessCompiler_InitializeErrors(t *testing.T) {
	require.Error(t, NewProcessCompiler(nil, nil).Initialize(context.Background()))

	err := NewProcessCompiler([]string{"irscope-no-such-compiler-xyz"}, nil).Initialize(context.Background())
	require.ErrorContains(t, err, "resolve compiler")

	p := NewProcessCompiler(helperCommand(t), []string{"--broken"})
	err = p.Initialize(context.Background())
	require.ErrorContains(t, err, "missing runtime")

	_, err = p.Compile(context.Background(), "fn main() {}")
	require.ErrorIs(t, err, ErrNotInitialized)
}
