// Package app contains the root application model: the pane grid, resize
// gestures, hover routing and the compile loop.
package app

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/irscope/internal/compiler"
	"github.com/zjrosen/irscope/internal/config"
	"github.com/zjrosen/irscope/internal/highlight"
	"github.com/zjrosen/irscope/internal/keys"
	"github.com/zjrosen/irscope/internal/layout"
	"github.com/zjrosen/irscope/internal/log"
	"github.com/zjrosen/irscope/internal/orchestrator"
	"github.com/zjrosen/irscope/internal/pubsub"
	"github.com/zjrosen/irscope/internal/span"
	"github.com/zjrosen/irscope/internal/ui/editor"
	"github.com/zjrosen/irscope/internal/ui/help"
	"github.com/zjrosen/irscope/internal/ui/irview"
	"github.com/zjrosen/irscope/internal/ui/shared/logoverlay"
	"github.com/zjrosen/irscope/internal/ui/terminal"
	"github.com/zjrosen/irscope/internal/ui/toaster"
	"github.com/zjrosen/irscope/internal/ui/tokenlist"
	"github.com/zjrosen/irscope/internal/ui/tree"
	"github.com/zjrosen/irscope/internal/watcher"
)

const (
	initTimeout    = 30 * time.Second
	compileTimeout = 30 * time.Second
)

// pane identifies a focusable pane, in tab order.
type pane int

const (
	paneEditor pane = iota
	paneTokens
	paneTree
	paneIR
	paneTerminal
	paneCount
)

func (p pane) String() string {
	switch p {
	case paneEditor:
		return "editor"
	case paneTokens:
		return "tokens"
	case paneTree:
		return "tree"
	case paneIR:
		return "ir"
	case paneTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// Config holds everything the root model needs from the command line.
type Config struct {
	Compiler    compiler.Compiler
	Initializer compiler.Initializer // nil means the compiler needs no setup
	Settings    config.Config

	ConfigPath string // where the auto-compile toggle is saved; empty disables saving
	SourcePath string // file being inspected; empty edits an unsaved sample
	Source     string // initial buffer contents

	Debug bool // enables the log overlay
}

// Model is the root application state.
type Model struct {
	cfg  Config
	keys keys.KeyMap

	width  int
	height int
	sizes  layout.Sizes

	engine      *layout.Engine
	orch        *orchestrator.Orchestrator
	coordinator *highlight.Coordinator

	editor   *editor.Model
	tokens   *tokenlist.Model
	tree     *tree.Model
	ir       *irview.Model
	terminal *terminal.Model

	help       help.Model
	showHelp   bool
	logOverlay *logoverlay.Model

	focus      pane
	hoverKey   string
	zonePrefix string

	dirty         bool
	toast         toaster.Model
	toastDuration time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	watcherHandle   *watcher.Watcher
	watcherListener *pubsub.ContinuousListener[string]
	logListener     *log.LogListener
}

// New creates the root model. The compiler is initialized from Init.
func New(cfg Config) Model {
	ctx, cancel := context.WithCancel(context.Background())

	geo := layout.DefaultGeometry()
	geo.TerminalBase = float64(cfg.Settings.Layout.TerminalHeight)
	geo.TerminalMin = float64(cfg.Settings.Layout.TerminalMinHeight)
	geo.AnchorToMidpoint = cfg.Settings.Layout.AnchorToMidpoint

	ed := editor.New(editor.Config{Placeholder: "Type source code here"})
	term := terminal.New()
	coordinator := highlight.New(ed)

	m := Model{
		cfg:         cfg,
		keys:        keys.DefaultKeyMap(),
		engine:      layout.NewEngine(geo),
		orch:        orchestrator.New(cfg.Compiler, term, cfg.Settings.AutoCompile),
		coordinator: coordinator,
		editor:      ed,
		tokens:      tokenlist.New(coordinator.IsHovered),
		tree:        tree.New(cfg.Settings.UI.TreeIndent, coordinator.IsHovered),
		ir:          irview.New(cfg.Settings.UI.WrapIR),
		terminal:    term,
		help:        help.New().WithStyle(cfg.Settings.UI.MarkdownStyle),
		logOverlay:  logoverlay.New(),
		toast:       toaster.New(),
		zonePrefix:  zone.NewPrefix(),
		ctx:         ctx,
		cancel:      cancel,

		toastDuration: toaster.DefaultDuration,
	}

	ed.SetValue(cfg.Source)
	m.orch.SetSource(ed.Value())
	m.applyFocus()
	term.SetStatus(orchestrator.InitPending.String())

	if cfg.Settings.Watch && cfg.SourcePath != "" {
		m.startWatcher()
	}
	if cfg.Debug {
		m.logListener = log.NewListener(ctx)
	}
	return m
}

func (m *Model) startWatcher() {
	w, err := watcher.New(watcher.DefaultConfig(m.cfg.SourcePath))
	if err != nil {
		log.ErrorErr(log.CatWatcher, "watcher unavailable", err)
		return
	}
	if err := w.Start(); err != nil {
		log.ErrorErr(log.CatWatcher, "watcher failed to start", err)
		_ = w.Stop()
		return
	}
	m.watcherHandle = w
	m.watcherListener = pubsub.NewContinuousListener(m.ctx, w.Broker())
}

// Init implements tea.Model. It starts compiler initialization and the
// watcher and log listeners.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.initCmd()}
	if m.watcherListener != nil {
		cmds = append(cmds, m.listenWatcher())
	}
	if m.logListener != nil {
		cmds = append(cmds, m.listenLog())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help = m.help.SetSize(msg.Width, msg.Height)
		m.toast = m.toast.SetSize(msg.Width, msg.Height)
		m.logOverlay.SetSize(msg.Width, msg.Height)
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case highlight.HoverMsg:
		m.hover(msg.Key, msg.Span, msg.Keyboard)
		return m, nil

	case editor.ChangedMsg:
		m.dirty = m.cfg.SourcePath != ""
		if job, ok := m.orch.OnSourceChanged(msg.Value); ok {
			return m, m.compileCmd(job)
		}
		return m, nil

	case initDoneMsg:
		m.orch.MarkInitialized(msg.err)
		state, _ := m.orch.InitState()
		m.terminal.SetStatus(state.String())
		// Manual mode waits for an explicit compile request.
		if !m.orch.AutoCompile() {
			return m, nil
		}
		if job, ok := m.orch.Request(); ok {
			return m, m.compileCmd(job)
		}
		return m, nil

	case compiledMsg:
		if m.orch.Apply(msg.outcome) {
			m.refreshResults()
		}
		return m, nil

	case sourceChangedMsg:
		return m, tea.Batch(m.readSourceCmd(), m.listenWatcher())

	case sourceLoadedMsg:
		return m.handleSourceLoaded(msg)

	case savedMsg:
		if msg.err != nil {
			log.ErrorErr(log.CatUI, "save failed", msg.err, "path", m.cfg.SourcePath)
			return m, m.notify("save failed: "+msg.err.Error(), toaster.StyleError)
		}
		m.dirty = false
		return m, m.notify("saved "+m.cfg.SourcePath, toaster.StyleSuccess)

	case configSavedMsg:
		if msg.err != nil {
			log.ErrorErr(log.CatConfig, "saving auto_compile", msg.err)
		}
		return m, nil

	case logEntryMsg:
		m.logOverlay.Refresh()
		return m, m.listenLog()

	case toaster.DismissMsg:
		m.toast = m.toast.Dismiss(msg)
		return m, nil

	case logoverlay.CloseMsg:
		m.logOverlay.Hide()
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	if m.cfg.Debug && key.Matches(msg, m.keys.Logs) {
		m.logOverlay.Toggle()
		return m, nil
	}
	if m.logOverlay.Visible() {
		return m, m.logOverlay.Update(msg)
	}

	if m.showHelp {
		if key.Matches(msg, m.keys.Help, m.keys.Escape, m.keys.Quit) {
			m.showHelp = false
		}
		return m, nil
	}

	inEditor := m.focus == paneEditor
	switch {
	case key.Matches(msg, m.keys.Help) && (!inEditor || msg.Type == tea.KeyF1):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Compile):
		if job, ok := m.orch.Request(); ok {
			return m, m.compileCmd(job)
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleAuto):
		auto := !m.orch.AutoCompile()
		m.orch.SetAutoCompile(auto)
		log.Info(log.CatCompile, "auto-compile toggled", "on", auto)
		return m, tea.Batch(m.notify("auto-compile "+onOff(auto), toaster.StyleInfo), m.saveAutoCompileCmd(auto))

	case key.Matches(msg, m.keys.Save):
		if m.cfg.SourcePath == "" {
			return m, m.notify("no source file to save to", toaster.StyleError)
		}
		return m, m.saveCmd()

	case key.Matches(msg, m.keys.NextPane):
		m.setFocus((m.focus + 1) % paneCount)
		return m, nil

	case key.Matches(msg, m.keys.PrevPane):
		m.setFocus((m.focus + paneCount - 1) % paneCount)
		return m, nil

	case key.Matches(msg, m.keys.Escape) && inEditor:
		m.setFocus(paneTokens)
		return m, nil

	case key.Matches(msg, m.keys.Quit) && !inEditor:
		return m, tea.Quit
	}

	switch m.focus {
	case paneEditor:
		return m, m.editor.Update(msg)
	case paneTokens:
		return m, m.tokens.Update(msg)
	case paneTree:
		return m, m.tree.Update(msg)
	case paneIR:
		return m, m.ir.Update(msg)
	case paneTerminal:
		return m, m.terminal.Update(msg)
	}
	return m, nil
}

func (m Model) handleSourceLoaded(msg sourceLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		log.ErrorErr(log.CatWatcher, "reloading source", msg.err, "path", m.cfg.SourcePath)
		return m, nil
	}
	if msg.content == m.editor.Value() {
		return m, nil
	}
	log.Info(log.CatWatcher, "source reloaded", "path", m.cfg.SourcePath)
	m.editor.SetValue(msg.content)
	m.dirty = false
	cmd := m.notify("reloaded "+m.cfg.SourcePath, toaster.StyleInfo)
	if job, ok := m.orch.OnSourceChanged(m.editor.Value()); ok {
		return m, tea.Batch(cmd, m.compileCmd(job))
	}
	return m, cmd
}

// refreshResults copies the orchestrator's artifacts into the panes. The
// hover slot is released since the rows it pointed at are gone.
func (m *Model) refreshResults() {
	m.tokens.SetTokens(m.orch.Tokens())
	m.tree.SetProgram(m.orch.Program())
	m.ir.SetIR(m.orch.IR(), m.orch.PreviousIR())
	if m.hoverKey != "" {
		m.hoverKey = ""
		m.coordinator.OnHover(nil)
	}
}

// hover routes a hover change to the coordinator. Repeated hovers of the
// same row are ignored so pointer motion within a row does not re-select.
func (m *Model) hover(hoverKey string, s *span.Span, keyboard bool) {
	if hoverKey == m.hoverKey {
		return
	}
	m.hoverKey = hoverKey
	m.coordinator.OnHover(s)
	if s == nil {
		return
	}
	if !keyboard {
		// the coordinator focused the editor
		m.focus = paneEditor
	}
	m.applyFocus()
}

// notify shows a toast and returns the command that dismisses it.
func (m *Model) notify(message string, style toaster.Style) tea.Cmd {
	var cmd tea.Cmd
	m.toast, cmd = m.toast.Show(message, style, m.toastDuration)
	return cmd
}

func (m *Model) setFocus(p pane) {
	if p == m.focus {
		return
	}
	log.Debug(log.CatUI, "focus", "from", m.focus, "to", p)
	m.focus = p
	m.applyFocus()
}

// applyFocus gives keyboard focus to m.focus and removes it everywhere else.
func (m *Model) applyFocus() {
	type focusable interface {
		Focus()
		Blur()
	}
	all := []focusable{m.editor, m.tokens, m.tree, m.ir, m.terminal}
	for i, f := range all {
		if pane(i) == m.focus {
			f.Focus()
		} else {
			f.Blur()
		}
	}
}

// resize recomputes pane sizes from the layout and the window.
func (m *Model) resize() {
	m.sizes = m.engine.Layout().Resolve(m.width, m.gridHeight())
	m.editor.SetSize(max(m.sizes.Left-2, 1), max(m.sizes.Top-2, 1))
}

// gridHeight is the height left for panes under the header and above the
// status bar.
func (m Model) gridHeight() int {
	return max(m.height-2, 0)
}

// Close releases the watcher and listeners.
func (m *Model) Close() error {
	m.cancel()
	if m.watcherHandle != nil {
		return m.watcherHandle.Stop()
	}
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
