// Package tokenlist renders the compiler's token stream, one token per row.
package tokenlist

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/irscope/internal/compiler"
	"github.com/zjrosen/irscope/internal/highlight"
	"github.com/zjrosen/irscope/internal/keys"
	"github.com/zjrosen/irscope/internal/span"
	"github.com/zjrosen/irscope/internal/ui/shared/panes"
	"github.com/zjrosen/irscope/internal/ui/styles"
)

// Placeholder is shown when there are no tokens.
const Placeholder = "No tokens available"

// Model is the token list pane.
type Model struct {
	tokens []compiler.Token

	cursor int
	offset int // first visible row
	rows   int // visible rows from the last render

	focused    bool
	isHovered  func(span.Span) bool
	zonePrefix string
	keys       keys.KeyMap
}

// New creates an empty token list. isHovered reports whether a span is the
// one currently highlighted; it may be nil.
func New(isHovered func(span.Span) bool) *Model {
	return &Model{
		isHovered:  isHovered,
		zonePrefix: zone.NewPrefix(),
		keys:       keys.DefaultKeyMap(),
	}
}

// SetTokens replaces the token stream. The cursor is kept when it still
// points at a token.
func (m *Model) SetTokens(tokens []compiler.Token) {
	m.tokens = tokens
	m.cursor = min(m.cursor, max(len(tokens)-1, 0))
	m.offset = min(m.offset, m.cursor)
}

// Tokens returns the current token stream.
func (m *Model) Tokens() []compiler.Token {
	return m.tokens
}

// Title returns the pane title.
func (m *Model) Title() string {
	return fmt.Sprintf("Tokens (%d)", len(m.tokens))
}

// Cursor returns the index of the keyboard cursor row.
func (m *Model) Cursor() int {
	return m.cursor
}

// Focus gives the pane keyboard focus.
func (m *Model) Focus() { m.focused = true }

// Blur removes keyboard focus.
func (m *Model) Blur() { m.focused = false }

// Focused returns whether the pane has keyboard focus.
func (m *Model) Focused() bool { return m.focused }

// Update moves the keyboard cursor while focused. Landing on a token emits a
// hover for its span.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.focused || len(m.tokens) == 0 {
		return nil
	}

	prev := m.cursor
	page := max(m.rows-1, 1)
	switch {
	case key.Matches(keyMsg, m.keys.Up):
		m.cursor--
	case key.Matches(keyMsg, m.keys.Down):
		m.cursor++
	case key.Matches(keyMsg, m.keys.PageUp):
		m.cursor -= page
	case key.Matches(keyMsg, m.keys.PageDown):
		m.cursor += page
	case key.Matches(keyMsg, m.keys.Top):
		m.cursor = 0
	case key.Matches(keyMsg, m.keys.Bottom):
		m.cursor = len(m.tokens) - 1
	default:
		return nil
	}
	m.cursor = max(0, min(m.cursor, len(m.tokens)-1))
	m.ensureCursorVisible()
	if m.cursor == prev {
		return nil
	}

	s := m.tokens[m.cursor].Span
	hover := highlight.HoverMsg{Key: rowKey(m.cursor), Span: &s, Keyboard: true}
	return func() tea.Msg { return hover }
}

// Scroll handles wheel events.
func (m *Model) Scroll(msg tea.MouseMsg) {
	maxOffset := max(len(m.tokens)-m.rows, 0)
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.offset = max(m.offset-3, 0)
	case tea.MouseButtonWheelDown:
		m.offset = min(m.offset+3, maxOffset)
	}
}

// HoverAt returns the token row under the pointer.
func (m *Model) HoverAt(msg tea.MouseMsg) (string, *span.Span, bool) {
	end := min(m.offset+m.rows, len(m.tokens))
	for i := m.offset; i < end; i++ {
		if z := zone.Get(m.zoneID(i)); z != nil && z.InBounds(msg) {
			s := m.tokens[i].Span
			return rowKey(i), &s, true
		}
	}
	return "", nil, false
}

func (m *Model) ensureCursorVisible() {
	if m.rows <= 0 {
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.rows {
		m.offset = m.cursor - m.rows + 1
	}
}

func rowKey(i int) string {
	return "tok-" + strconv.Itoa(i)
}

func (m *Model) zoneID(i int) string {
	return m.zonePrefix + rowKey(i)
}

// View renders the pane at the given size, borders included.
func (m *Model) View(width, height int) string {
	inner := max(width-2, 1)
	m.rows = max(height-2, 1)
	m.offset = max(0, min(m.offset, len(m.tokens)-m.rows))

	var content string
	if len(m.tokens) == 0 {
		content = styles.PlaceholderStyle.Render(Placeholder)
	} else {
		end := min(m.offset+m.rows, len(m.tokens))
		lines := make([]string, 0, end-m.offset)
		for i := m.offset; i < end; i++ {
			lines = append(lines, zone.Mark(m.zoneID(i), m.renderRow(i, inner)))
		}
		content = strings.Join(lines, "\n")
	}

	return panes.BorderedPane(panes.BorderConfig{
		Content: content,
		Width:   width,
		Height:  height,
		TopLeft: m.Title(),
		Focused: m.focused,
	})
}

// renderRow renders "> value          row:col - row:col" padded to width.
func (m *Model) renderRow(i, width int) string {
	tok := m.tokens[i]

	prefix := "  "
	if m.focused && i == m.cursor {
		prefix = styles.SelectionIndicatorStyle.Render(">") + " "
	}

	where := tok.Span.String()
	valueWidth := max(width-2-runewidth.StringWidth(where)-2, 1)
	value := styles.TruncateString(tok.Value.Compact(), valueWidth)
	gap := max(width-2-runewidth.StringWidth(value)-runewidth.StringWidth(where), 1)

	row := panes.FitLine(prefix+value+strings.Repeat(" ", gap)+styles.MutedStyle.Render(where), width)
	if m.isHovered != nil && m.isHovered(tok.Span) {
		return styles.HoverStyle.Render(row)
	}
	return row
}
