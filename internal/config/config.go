// Package config provides configuration types, defaults and validation for
// irscope.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/irscope/internal/log"
	"github.com/zjrosen/irscope/internal/tracing"
)

// Config holds all configuration options for irscope.
type Config struct {
	Compiler    CompilerConfig `mapstructure:"compiler"`
	AutoCompile bool           `mapstructure:"auto_compile"`
	Watch       bool           `mapstructure:"watch"`
	Cache       CacheConfig    `mapstructure:"cache"`
	Layout      LayoutConfig   `mapstructure:"layout"`
	UI          UIConfig       `mapstructure:"ui"`
	Tracing     tracing.Config `mapstructure:"tracing"`
}

// CompilerConfig describes the external compiler command.
type CompilerConfig struct {
	// Command is the executable and its arguments. The source is written to
	// its stdin and the JSON result read from stdout.
	Command []string `mapstructure:"command"`

	// Probe, when set, is appended to Command and run once at startup.
	Probe []string `mapstructure:"probe"`
}

// CacheConfig controls the compile cache.
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// LayoutConfig holds pane geometry in terminal cells.
type LayoutConfig struct {
	TerminalHeight    int  `mapstructure:"terminal_height"`
	TerminalMinHeight int  `mapstructure:"terminal_min_height"`
	AnchorToMidpoint  bool `mapstructure:"anchor_to_midpoint"` // recompute splits from the midpoint on every drag
}

// UIConfig holds display options.
type UIConfig struct {
	TreeIndent    int    `mapstructure:"tree_indent"`
	WrapIR        bool   `mapstructure:"wrap_ir"`
	MarkdownStyle string `mapstructure:"markdown_style"` // "dark" (default) or "light"
}

// DefaultTracesFilePath returns ~/.config/irscope/traces/traces.jsonl, or ""
// when the home directory is unknown.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "irscope", "traces", "traces.jsonl")
}

// Defaults returns a Config with default values.
func Defaults() Config {
	tc := tracing.DefaultConfig()
	tc.FilePath = DefaultTracesFilePath()

	return Config{
		Compiler: CompilerConfig{
			Command: []string{"irc", "--json"},
		},
		AutoCompile: true,
		Watch:       true,
		Cache: CacheConfig{
			Enabled: true,
			TTL:     10 * time.Minute,
		},
		Layout: LayoutConfig{
			TerminalHeight:    10,
			TerminalMinHeight: 4,
		},
		UI: UIConfig{
			TreeIndent:    2,
			WrapIR:        false,
			MarkdownStyle: "dark",
		},
		Tracing: tc,
	}
}

// Validate checks cfg for errors.
func Validate(cfg Config) error {
	var errs []error

	if len(cfg.Compiler.Command) == 0 || cfg.Compiler.Command[0] == "" {
		errs = append(errs, errors.New("compiler.command must name an executable"))
	}
	if cfg.Cache.Enabled && cfg.Cache.TTL <= 0 {
		errs = append(errs, fmt.Errorf("cache.ttl must be positive, got %s", cfg.Cache.TTL))
	}
	if err := ValidateLayout(cfg.Layout); err != nil {
		errs = append(errs, err)
	}
	if cfg.UI.TreeIndent < 1 || cfg.UI.TreeIndent > 8 {
		errs = append(errs, fmt.Errorf("ui.tree_indent must be between 1 and 8, got %d", cfg.UI.TreeIndent))
	}
	switch cfg.UI.MarkdownStyle {
	case "", "dark", "light":
	default:
		errs = append(errs, fmt.Errorf("ui.markdown_style must be \"dark\" or \"light\", got %q", cfg.UI.MarkdownStyle))
	}
	if err := ValidateTracing(cfg.Tracing); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// ValidateLayout checks the terminal pane sizes.
func ValidateLayout(l LayoutConfig) error {
	if l.TerminalHeight <= 0 {
		return fmt.Errorf("layout.terminal_height must be positive, got %d", l.TerminalHeight)
	}
	if l.TerminalMinHeight <= 0 {
		return fmt.Errorf("layout.terminal_min_height must be positive, got %d", l.TerminalMinHeight)
	}
	if l.TerminalMinHeight > l.TerminalHeight {
		return fmt.Errorf("layout.terminal_min_height (%d) exceeds layout.terminal_height (%d)", l.TerminalMinHeight, l.TerminalHeight)
	}
	return nil
}

// ValidateTracing checks tracing configuration. Path requirements apply only
// when tracing is enabled.
func ValidateTracing(tc tracing.Config) error {
	if tc.SampleRate <= 0 || tc.SampleRate > 1 {
		return fmt.Errorf("tracing.sample_rate must be in (0, 1], got %v", tc.SampleRate)
	}
	if !tracing.ValidExporter(tc.Exporter) {
		return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tc.Exporter)
	}
	if tc.Enabled {
		if tc.Exporter == tracing.ExporterFile && tc.FilePath == "" {
			return errors.New("tracing.file_path is required when exporter is \"file\"")
		}
		if tc.Exporter == tracing.ExporterOTLP && tc.OTLPEndpoint == "" {
			return errors.New("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}
	return nil
}

// DefaultConfigTemplate returns the default config as commented YAML.
func DefaultConfigTemplate() string {
	return `# irscope configuration

# External compiler. The source buffer is written to stdin; on success the
# command prints {"tokens": [...], "ast": {...}, "ir": "..."} as JSON and
# exits 0. On failure it exits non-zero and prints diagnostics to stderr.
compiler:
  command: ["irc", "--json"]
  # probe: ["--version"]   # run once at startup to check the compiler works

# Recompile on every edit (toggle with ctrl+a)
auto_compile: true

# Reload the source file when it changes on disk
watch: true

# Reuse results for identical source text
cache:
  enabled: true
  ttl: 10m

# Pane geometry, in terminal rows
layout:
  terminal_height: 10
  terminal_min_height: 4
  # anchor_to_midpoint: false  # recompute splits from the midpoint on every drag

ui:
  tree_indent: 2
  wrap_ir: false
  # markdown_style: dark  # help rendering style: "dark" (default) or "light"

# Tracing of compiler invocations
# tracing:
#   enabled: false
#   exporter: file                 # none, file, stdout, otlp
#   file_path: ~/.config/irscope/traces/traces.jsonl
#   otlp_endpoint: localhost:4317
#   sample_rate: 1.0
`
}

// WriteDefaultConfig writes the default template to configPath, creating
// the parent directory.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
