// Package irview is the pane showing the generated IR, optionally wrapped or
// diffed against the previous successful compile.
package irview

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/zjrosen/irscope/internal/keys"
	"github.com/zjrosen/irscope/internal/log"
	"github.com/zjrosen/irscope/internal/ui/shared/panes"
	"github.com/zjrosen/irscope/internal/ui/styles"
)

// Placeholder is shown when there is no IR.
const Placeholder = "No IR generated"

// Model is the IR pane.
type Model struct {
	ir       string
	previous string

	viewport viewport.Model
	keys     keys.KeyMap
	focused  bool
	wrap     bool
	diff     bool
}

// New creates an empty IR pane. wrap sets the initial wrapping mode.
func New(wrap bool) *Model {
	return &Model{
		viewport: viewport.New(0, 0),
		keys:     keys.DefaultKeyMap(),
		wrap:     wrap,
	}
}

// SetIR replaces the displayed IR. previous is the IR the diff mode compares
// against.
func (m *Model) SetIR(ir, previous string) {
	m.ir = ir
	m.previous = previous
}

// IR returns the displayed IR.
func (m *Model) IR() string { return m.ir }

// Title is the pane title including the IR size in characters.
func (m *Model) Title() string {
	return fmt.Sprintf("IR (%d characters)", utf8.RuneCountInString(m.ir))
}

// Wrapping reports whether long lines are wrapped.
func (m *Model) Wrapping() bool { return m.wrap }

// Diffing reports whether the pane shows changes since the previous IR.
func (m *Model) Diffing() bool { return m.diff }

// ToggleWrap switches line wrapping.
func (m *Model) ToggleWrap() {
	m.wrap = !m.wrap
	log.Debug(log.CatUI, "ir wrap", "on", m.wrap)
}

// ToggleDiff switches between the plain IR and the diff against the
// previous IR.
func (m *Model) ToggleDiff() {
	m.diff = !m.diff
	m.viewport.GotoTop()
	log.Debug(log.CatUI, "ir diff", "on", m.diff)
}

// Focus gives the pane keyboard focus.
func (m *Model) Focus() { m.focused = true }

// Blur removes keyboard focus.
func (m *Model) Blur() { m.focused = false }

// Focused returns whether the pane has keyboard focus.
func (m *Model) Focused() bool { return m.focused }

// Update handles mode toggles and scrolling while focused.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if !m.focused {
		return nil
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Diff):
			m.ToggleDiff()
		case key.Matches(msg, m.keys.Wrap):
			m.ToggleWrap()
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
		m.Scroll(msg)
	}
	return nil
}

// Scroll handles wheel events.
func (m *Model) Scroll(msg tea.MouseMsg) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.viewport.ScrollUp(3)
	case tea.MouseButtonWheelDown:
		m.viewport.ScrollDown(3)
	}
}

// YOffset is the current scroll position.
func (m *Model) YOffset() int { return m.viewport.YOffset }

// View renders the pane at the given size, borders included.
func (m *Model) View(width, height int) string {
	inner := max(width-2, 1)

	var mode []string
	if m.diff {
		mode = append(mode, "diff")
	}
	if m.wrap {
		mode = append(mode, "wrap")
	}

	return panes.ScrollablePane(width, height, panes.ScrollableConfig{
		Viewport:   &m.viewport,
		LeftTitle:  m.Title(),
		RightTitle: strings.Join(mode, " "),
		Focused:    m.focused,
	}, m.content(inner))
}

func (m *Model) content(width int) string {
	if m.ir == "" && !(m.diff && m.previous != "") {
		return styles.PlaceholderStyle.Render(Placeholder)
	}
	if !m.diff {
		if m.wrap {
			return WrapText(m.ir, width)
		}
		return m.ir
	}

	lines := LineDiff(m.previous, m.ir)
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		text := l.Text
		if m.wrap {
			text = WrapText(text, max(width-2, 1))
		}
		for i, piece := range strings.Split(text, "\n") {
			out = append(out, diffLine(l.Op, piece, i > 0))
		}
	}
	return strings.Join(out, "\n")
}

func diffLine(op Op, text string, continuation bool) string {
	marker := "  "
	if !continuation {
		switch op {
		case OpInsert:
			marker = "+ "
		case OpDelete:
			marker = "- "
		}
	}
	switch op {
	case OpInsert:
		return styles.DiffAddedStyle.Render(marker + text)
	case OpDelete:
		return styles.DiffRemovedStyle.Render(marker + text)
	default:
		return marker + text
	}
}

// WrapText wraps s at word boundaries to width cells, breaking words that
// are longer than a line.
func WrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	return wrap.String(wordwrap.String(s, width), width)
}
