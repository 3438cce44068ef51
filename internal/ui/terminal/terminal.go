// Package terminal is the diagnostic pane that shows compiler status lines.
// It implements the orchestrator's diagnostics sink.
package terminal

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/irscope/internal/keys"
	"github.com/zjrosen/irscope/internal/ui/shared/panes"
)

// Title is the pane title.
const Title = "Compiler output"

// maxLines bounds the scrollback.
const maxLines = 1000

// Model holds the diagnostic lines written since the last Clear.
type Model struct {
	lines    []string
	viewport viewport.Model
	keys     keys.KeyMap
	focused  bool
	status   string
}

// New creates an empty terminal pane.
func New() *Model {
	return &Model{
		viewport: viewport.New(0, 0),
		keys:     keys.DefaultKeyMap(),
	}
}

// Clear drops all lines.
func (m *Model) Clear() {
	m.lines = m.lines[:0]
	m.viewport.GotoTop()
}

// WriteLine appends one line. Embedded line breaks start new lines.
func (m *Model) WriteLine(text string) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	m.lines = append(m.lines, strings.Split(text, "\n")...)
	if over := len(m.lines) - maxLines; over > 0 {
		m.lines = m.lines[over:]
	}
}

// Lines returns a copy of the current lines.
func (m *Model) Lines() []string {
	return append([]string(nil), m.lines...)
}

// SetStatus sets the text shown on the right of the title bar.
func (m *Model) SetStatus(status string) {
	m.status = status
}

// Focus gives the pane keyboard focus.
func (m *Model) Focus() { m.focused = true }

// Blur removes keyboard focus.
func (m *Model) Blur() { m.focused = false }

// Focused returns whether the pane has keyboard focus.
func (m *Model) Focused() bool { return m.focused }

// Update scrolls the scrollback while focused.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if !m.focused {
		return nil
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Up):
			m.viewport.ScrollUp(1)
		case key.Matches(msg, m.keys.Down):
			m.viewport.ScrollDown(1)
		case key.Matches(msg, m.keys.PageUp):
			m.viewport.PageUp()
		case key.Matches(msg, m.keys.PageDown):
			m.viewport.PageDown()
		case key.Matches(msg, m.keys.Top):
			m.viewport.GotoTop()
		case key.Matches(msg, m.keys.Bottom):
			m.viewport.GotoBottom()
		}
	case tea.MouseMsg:
		return m.Scroll(msg)
	}
	return nil
}

// Scroll handles wheel events regardless of focus.
func (m *Model) Scroll(msg tea.MouseMsg) tea.Cmd {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.viewport.ScrollUp(3)
	case tea.MouseButtonWheelDown:
		m.viewport.ScrollDown(3)
	}
	return nil
}

// View renders the pane at the given size, borders included.
func (m *Model) View(width, height int) string {
	return panes.ScrollablePane(width, height, panes.ScrollableConfig{
		Viewport:   &m.viewport,
		LeftTitle:  Title,
		RightTitle: m.status,
		Focused:    m.focused,
		FollowTail: true,
	}, strings.Join(m.lines, "\n"))
}
