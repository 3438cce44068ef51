package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/irscope/internal/app"
	"github.com/zjrosen/irscope/internal/config"
	"github.com/zjrosen/irscope/internal/log"
)

func init() {
	// Query the terminal background before the program starts so the OSC 11
	// reply cannot race with Bubble Tea's input loop.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const localConfigPath = ".irscope/config.yaml"

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:   "irscope [file]",
	Short: "Inspect compiler tokens, AST and IR side by side",
	Long: `irscope is a terminal inspector for a compiler's intermediate artifacts.

Edit source on the left and see the token stream, the abstract syntax tree
and the generated IR update as you type. Hovering a token or tree node
highlights the source it came from.`,
	Version:       version,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE:          runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/irscope/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write a debug log and enable the log overlay (ctrl+x)")
	rootCmd.Flags().Bool("no-auto-compile", false,
		"start with auto-compile off")
	rootCmd.Flags().Bool("no-watch", false,
		"do not reload the file when it changes on disk")
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("compiler.command", defaults.Compiler.Command)
	viper.SetDefault("compiler.probe", defaults.Compiler.Probe)
	viper.SetDefault("auto_compile", defaults.AutoCompile)
	viper.SetDefault("watch", defaults.Watch)
	viper.SetDefault("cache.enabled", defaults.Cache.Enabled)
	viper.SetDefault("cache.ttl", defaults.Cache.TTL)
	viper.SetDefault("layout.terminal_height", defaults.Layout.TerminalHeight)
	viper.SetDefault("layout.terminal_min_height", defaults.Layout.TerminalMinHeight)
	viper.SetDefault("layout.anchor_to_midpoint", defaults.Layout.AnchorToMidpoint)
	viper.SetDefault("ui.tree_indent", defaults.UI.TreeIndent)
	viper.SetDefault("ui.wrap_ir", defaults.UI.WrapIR)
	viper.SetDefault("ui.markdown_style", defaults.UI.MarkdownStyle)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.file_path", defaults.Tracing.FilePath)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	viper.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)

	viper.SetEnvPrefix("IRSCOPE")
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .irscope/config.yaml (current directory)
		// 2. ~/.config/irscope/config.yaml (user config)
		if _, err := os.Stat(localConfigPath); err == nil {
			viper.SetConfigFile(localConfigPath)
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "irscope"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			if writeErr := config.WriteDefaultConfig(localConfigPath); writeErr == nil {
				viper.SetConfigFile(localConfigPath)
				_ = viper.ReadInConfig()
			}
		}
	}

	_ = viper.Unmarshal(&cfg)
}

// initLogging opens the debug log when --debug or IRSCOPE_DEBUG is set.
// The returned cleanup is never nil.
func initLogging() (bool, func(), error) {
	debug := debugFlag || os.Getenv("IRSCOPE_DEBUG") != ""
	if !debug {
		return false, func() {}, nil
	}
	logPath := os.Getenv("IRSCOPE_LOG")
	if logPath == "" {
		logPath = "debug.log"
	}
	cleanup, err := log.Init(logPath)
	if err != nil {
		return false, func() {}, fmt.Errorf("initializing logging: %w", err)
	}
	log.Info(log.CatConfig, "irscope starting", "version", version, "logPath", logPath)
	return true, cleanup, nil
}

func runApp(cmd *cobra.Command, args []string) error {
	debug, cleanup, err := initLogging()
	if err != nil {
		return err
	}
	defer cleanup()

	if noAuto, _ := cmd.Flags().GetBool("no-auto-compile"); noAuto {
		cfg.AutoCompile = false
	}
	if noWatch, _ := cmd.Flags().GetBool("no-watch"); noWatch {
		cfg.Watch = false
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	sourcePath, source, err := loadSource(args)
	if err != nil {
		return err
	}

	stack, err := buildCompiler(cfg)
	if err != nil {
		return err
	}
	defer stack.shutdown()

	configFilePath := viper.ConfigFileUsed()
	if configFilePath == "" {
		configFilePath = localConfigPath
	}

	model := app.New(app.Config{
		Compiler:    stack.compiler,
		Initializer: stack.initializer,
		Settings:    cfg,
		ConfigPath:  configFilePath,
		SourcePath:  sourcePath,
		Source:      source,
		Debug:       debug,
	})
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	_, err = p.Run()

	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// loadSource reads the file named by args, or returns the built-in sample
// when there is none. A missing file starts an empty buffer that ctrl+s
// will create.
func loadSource(args []string) (path, source string, err error) {
	if len(args) == 0 {
		return "", app.SampleSource, nil
	}
	path = args[0]
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is the user's file argument
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return path, "", nil
		}
		return "", "", fmt.Errorf("reading %s: %w", path, err)
	}
	return path, string(data), nil
}

func shutdownTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

// Execute runs the root command
func Execute() error {
	// Panes and handles are hit-tested through the global zone manager.
	zone.NewGlobal()
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
