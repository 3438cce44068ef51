package app

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/irscope/internal/layout"
	"github.com/zjrosen/irscope/internal/orchestrator"
	"github.com/zjrosen/irscope/internal/ui/shared/panes"
	"github.com/zjrosen/irscope/internal/ui/styles"
)

// EditorTitle is the title of the source pane.
const EditorTitle = "Source Code"

var (
	appNameStyle = lipgloss.NewStyle().Bold(true).Foreground(styles.TextPrimaryColor)
	idleHandle   = lipgloss.NewStyle().Foreground(styles.HandleColor)
	activeHandle = lipgloss.NewStyle().Foreground(styles.HandleActiveColor)
)

// View implements tea.Model.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	parts := []string{m.renderHeader()}
	if grid := m.renderGrid(); grid != "" {
		parts = append(parts, grid)
	}
	if m.height > 1 {
		parts = append(parts, m.renderStatusBar())
	}
	view := strings.Join(parts, "\n")

	view = m.toast.Overlay(view)
	if m.showHelp {
		view = m.help.Overlay(view)
	}
	if m.cfg.Debug && m.logOverlay.Visible() {
		view = m.logOverlay.Overlay(view)
	}
	return zone.Scan(view)
}

func (m Model) renderHeader() string {
	name := "[sample]"
	if m.cfg.SourcePath != "" {
		name = filepath.Base(m.cfg.SourcePath)
	}
	if m.dirty {
		name += " *"
	}
	left := appNameStyle.Render("irscope") + "  " + styles.MutedStyle.Render(name)

	state, _ := m.orch.InitState()
	var compilerState string
	switch state {
	case orchestrator.InitReady:
		compilerState = styles.StatusReadyStyle.Render("compiler " + state.String())
	case orchestrator.InitFailed:
		compilerState = styles.StatusFailedStyle.Render("compiler " + state.String())
	default:
		compilerState = styles.StatusPendingStyle.Render("compiler " + state.String())
	}
	right := compilerState + styles.MutedStyle.Render("  auto-compile "+onOff(m.orch.AutoCompile()))

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return panes.FitLine(left+strings.Repeat(" ", gap)+right, m.width)
}

func (m Model) renderStatusBar() string {
	hints := make([]string, 0, 5)
	for _, b := range m.keys.ShortHelp() {
		hints = append(hints, b.Help().Key+" "+b.Help().Desc)
	}
	return panes.FitLine(styles.StatusBarStyle.Render(strings.Join(hints, " • ")), m.width)
}

// renderGrid draws the panes and handles:
//
//	editor | tokens
//	─────────────────
//	tree   | ir
//	─────────────────
//	terminal
func (m Model) renderGrid() string {
	s := m.sizes
	var rows []string

	if s.Top > 0 {
		rows = append(rows, m.joinRow(
			m.renderEditor(s.Left, s.Top),
			m.columnHandle(zoneColumnsTop, s.Top),
			m.tokens.View(s.Right, s.Top),
			s.Top,
		)...)
	}
	if m.rowHandleHeight() > 0 {
		rows = append(rows, m.rowHandle(zoneRows, layout.HandleRows))
	}
	if s.Middle > 0 {
		rows = append(rows, m.joinRow(
			m.tree.View(s.Left, s.Middle),
			m.columnHandle(zoneColumnsMiddle, s.Middle),
			m.ir.View(s.Right, s.Middle),
			s.Middle,
		)...)
	}
	if m.terminalHandleHeight() > 0 {
		rows = append(rows, m.rowHandle(zoneTerminal, layout.HandleTerminal))
	}
	if s.Terminal > 0 {
		rows = append(rows, fitBlock(m.terminal.View(s.Width, s.Terminal), s.Width, s.Terminal)...)
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderEditor(width, height int) string {
	right := ""
	if m.cfg.SourcePath != "" {
		right = filepath.Base(m.cfg.SourcePath)
	}
	return panes.BorderedPane(panes.BorderConfig{
		Content:  m.editor.View(),
		Width:    width,
		Height:   height,
		TopLeft:  EditorTitle,
		TopRight: right,
		Focused:  m.focus == paneEditor,
	})
}

// joinRow places left, handle and right side by side, each cut to its
// track size.
func (m Model) joinRow(left, handle, right string, height int) []string {
	l := fitBlock(left, m.sizes.Left, height)
	h := fitBlock(handle, m.columnHandleWidth(), height)
	r := fitBlock(right, m.sizes.Right, height)
	out := make([]string, height)
	for i := range out {
		out[i] = l[i] + h[i] + r[i]
	}
	return out
}

func (m Model) handleStyle(h layout.Handle) lipgloss.Style {
	if g := m.engine.Active(); g != nil && g.Handle() == h {
		return activeHandle
	}
	return idleHandle
}

func (m Model) columnHandle(id string, height int) string {
	w := m.columnHandleWidth()
	if w <= 0 {
		return ""
	}
	line := m.handleStyle(layout.HandleColumns).Render(strings.Repeat("│", w))
	lines := make([]string, height)
	for i := range lines {
		lines[i] = line
	}
	return zone.Mark(m.zonePrefix+id, strings.Join(lines, "\n"))
}

func (m Model) rowHandle(id string, h layout.Handle) string {
	return zone.Mark(m.zonePrefix+id, m.handleStyle(h).Render(strings.Repeat("─", m.width)))
}

// fitBlock cuts or pads s to exactly height lines of width cells.
func fitBlock(s string, width, height int) []string {
	lines := strings.Split(s, "\n")
	out := make([]string, height)
	for i := range out {
		if width <= 0 {
			continue
		}
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		out[i] = panes.FitLine(line, width)
	}
	return out
}
