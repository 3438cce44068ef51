package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaults_Valid(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, Validate(cfg))
	require.True(t, cfg.AutoCompile)
	require.Equal(t, []string{"irc", "--json"}, cfg.Compiler.Command)
	require.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	require.Equal(t, 10, cfg.Layout.TerminalHeight)
	require.Equal(t, 4, cfg.Layout.TerminalMinHeight)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty command", func(c *Config) { c.Compiler.Command = nil }, "compiler.command"},
		{"blank executable", func(c *Config) { c.Compiler.Command = []string{""} }, "compiler.command"},
		{"zero ttl", func(c *Config) { c.Cache.TTL = 0 }, "cache.ttl"},
		{"zero terminal", func(c *Config) { c.Layout.TerminalHeight = 0 }, "layout.terminal_height"},
		{"zero min", func(c *Config) { c.Layout.TerminalMinHeight = 0 }, "layout.terminal_min_height"},
		{"min above base", func(c *Config) { c.Layout.TerminalMinHeight = 20 }, "exceeds"},
		{"indent", func(c *Config) { c.UI.TreeIndent = 0 }, "ui.tree_indent"},
		{"markdown style", func(c *Config) { c.UI.MarkdownStyle = "neon" }, "ui.markdown_style"},
		{"sample rate", func(c *Config) { c.Tracing.SampleRate = 1.5 }, "sample_rate"},
		{"zero sample rate", func(c *Config) { c.Tracing.SampleRate = 0 }, "sample_rate"},
		{"exporter", func(c *Config) { c.Tracing.Exporter = "zipkin" }, "tracing.exporter"},
		{"file path", func(c *Config) {
			c.Tracing.Enabled = true
			c.Tracing.FilePath = ""
		}, "tracing.file_path"},
		{"otlp endpoint", func(c *Config) {
			c.Tracing.Enabled = true
			c.Tracing.Exporter = "otlp"
			c.Tracing.OTLPEndpoint = ""
		}, "tracing.otlp_endpoint"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			require.ErrorContains(t, Validate(cfg), tt.want)
		})
	}
}

func TestValidate_DisabledCacheIgnoresTTL(t *testing.T) {
	cfg := Defaults()
	cfg.Cache.Enabled = false
	cfg.Cache.TTL = 0
	require.NoError(t, Validate(cfg))
}

func TestValidate_JoinsErrors(t *testing.T) {
	cfg := Defaults()
	cfg.Compiler.Command = nil
	cfg.UI.TreeIndent = 0

	err := Validate(cfg)
	require.ErrorContains(t, err, "compiler.command")
	require.ErrorContains(t, err, "ui.tree_indent")
}

func TestDefaultConfigTemplate_ParsesAndMatchesDefaults(t *testing.T) {
	var doc struct {
		Compiler struct {
			Command []string `yaml:"command"`
		} `yaml:"compiler"`
		AutoCompile bool `yaml:"auto_compile"`
		Watch       bool `yaml:"watch"`
		Layout      struct {
			TerminalHeight    int `yaml:"terminal_height"`
			TerminalMinHeight int `yaml:"terminal_min_height"`
		} `yaml:"layout"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(DefaultConfigTemplate()), &doc))

	d := Defaults()
	require.Equal(t, d.Compiler.Command, doc.Compiler.Command)
	require.Equal(t, d.AutoCompile, doc.AutoCompile)
	require.Equal(t, d.Watch, doc.Watch)
	require.Equal(t, d.Layout.TerminalHeight, doc.Layout.TerminalHeight)
	require.Equal(t, d.Layout.TerminalMinHeight, doc.Layout.TerminalMinHeight)
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfigTemplate(), string(data))
}
