package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zjrosen/irscope/internal/compiler"
	"github.com/zjrosen/irscope/internal/config"
	"github.com/zjrosen/irscope/internal/ui/tree"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [file]",
	Short: "Compile once and print tokens, AST and IR",
	Long: `Compile the file (or the built-in sample) once and print the token
stream, the normalized syntax tree and the generated IR to stdout.

Exits with status 1 when the compiler reports a failure.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDumpCmd,
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}

// errCompileFailed is returned after a failure has been printed.
var errCompileFailed = errors.New("compilation failed")

func runDumpCmd(cmd *cobra.Command, args []string) error {
	_, cleanup, err := initLogging()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	_, source, err := loadSource(args)
	if err != nil {
		return err
	}
	stack, err := buildCompiler(cfg)
	if err != nil {
		return err
	}
	defer stack.shutdown()

	err = runDump(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), stack.compiler, stack.initializer, cfg.UI.TreeIndent, source)
	if errors.Is(err, errCompileFailed) {
		// the diagnostics are already on stderr
		cmd.SilenceErrors = true
	}
	return err
}

// runDump initializes c, compiles source and writes the three artifacts to
// out. Compiler failures are written to errOut and reported as
// errCompileFailed.
func runDump(ctx context.Context, out, errOut io.Writer, c compiler.Compiler, initializer compiler.Initializer, indent int, source string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if initializer != nil {
		if err := initializer.Initialize(ctx); err != nil {
			return fmt.Errorf("initializing compiler: %w", err)
		}
	}

	res, err := c.Compile(ctx, source)
	if err != nil {
		for _, line := range compiler.AsFailure(err).Lines() {
			_, _ = fmt.Fprintln(errOut, line)
		}
		return errCompileFailed
	}

	_, _ = fmt.Fprintf(out, "== Tokens (%d)\n", len(res.Tokens))
	for _, tok := range res.Tokens {
		_, _ = fmt.Fprintf(out, "%s\t%s\n", tok.Value.Compact(), tok.Span.String())
	}

	_, _ = fmt.Fprintln(out, "\n== Abstract Syntax Tree")
	t := tree.New(indent, nil)
	t.SetProgram(&res.AST)
	for _, line := range t.PlainLines() {
		_, _ = fmt.Fprintln(out, line)
	}

	_, _ = fmt.Fprintf(out, "\n== IR (%d characters)\n", len([]rune(res.IR)))
	_, _ = fmt.Fprintln(out, res.IR)
	return nil
}
