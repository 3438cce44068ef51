package app

import (
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/irscope/internal/layout"
)

// Zone ids of the resize handles. The column handle is drawn twice, once
// beside the top row and once beside the middle row.
const (
	zoneColumnsTop    = "handle-columns-top"
	zoneColumnsMiddle = "handle-columns-middle"
	zoneRows          = "handle-rows"
	zoneTerminal      = "handle-terminal"
)

var handleZones = []struct {
	id     string
	handle layout.Handle
}{
	{zoneColumnsTop, layout.HandleColumns},
	{zoneColumnsMiddle, layout.HandleColumns},
	{zoneRows, layout.HandleRows},
	{zoneTerminal, layout.HandleTerminal},
}

// rect is a pane's screen area.
type rect struct{ x, y, w, h int }

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	// A live gesture owns the pointer until any release, wherever it lands,
	// even one that arrives while an overlay is open.
	if g := m.engine.Active(); g != nil && msg.Action == tea.MouseActionRelease {
		g.End()
		return m, nil
	}

	if m.showHelp || m.logOverlay.Visible() {
		return m, nil
	}

	if g := m.engine.Active(); g != nil && msg.Action == tea.MouseActionMotion {
		g.Move(layout.Point{X: msg.X, Y: msg.Y})
		m.resize()
		return m, nil
	}

	switch {
	case msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown:
		m.scrollAt(msg)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.press(msg)
	case msg.Action == tea.MouseActionMotion:
		m.hoverAt(msg)
	}
	return m, nil
}

// press starts a resize gesture on a handle, or focuses and clicks the pane
// under the pointer.
func (m *Model) press(msg tea.MouseMsg) {
	if h, ok := m.handleAt(msg); ok {
		m.engine.Begin(h, layout.Point{X: msg.X, Y: msg.Y}, layout.Size{Width: m.width, Height: m.gridHeight()})
		return
	}

	p, ok := m.paneAt(msg.X, msg.Y)
	if !ok {
		return
	}
	m.setFocus(p)
	switch p {
	case paneEditor:
		r := m.paneRect(paneEditor)
		m.editor.ClickAt(msg.X-r.x-1, msg.Y-r.y-1)
	case paneTree:
		m.tree.ClickAt(msg)
	}
}

func (m *Model) hoverAt(msg tea.MouseMsg) {
	hoverKey, s, ok := m.tokens.HoverAt(msg)
	if !ok {
		hoverKey, s, ok = m.tree.HoverAt(msg)
	}
	if !ok {
		hoverKey, s = "", nil
	}
	m.hover(hoverKey, s, false)
}

func (m *Model) scrollAt(msg tea.MouseMsg) {
	p, ok := m.paneAt(msg.X, msg.Y)
	if !ok {
		return
	}
	switch p {
	case paneTokens:
		m.tokens.Scroll(msg)
	case paneTree:
		m.tree.Scroll(msg)
	case paneIR:
		m.ir.Scroll(msg)
	case paneTerminal:
		m.terminal.Scroll(msg)
	}
}

func (m Model) handleAt(msg tea.MouseMsg) (layout.Handle, bool) {
	for _, hz := range handleZones {
		if z := zone.Get(m.zonePrefix + hz.id); z != nil && z.InBounds(msg) {
			return hz.handle, true
		}
	}
	return 0, false
}

func (m Model) paneAt(x, y int) (pane, bool) {
	for p := paneEditor; p < paneCount; p++ {
		if m.paneRect(p).contains(x, y) {
			return p, true
		}
	}
	return 0, false
}

// paneRect returns the screen area of p for the current sizes. The grid
// starts under the one-line header.
func (m Model) paneRect(p pane) rect {
	s := m.sizes
	top := 1
	middle := top + s.Top + m.rowHandleHeight()
	term := top + s.TerminalHandleY + m.terminalHandleHeight()
	right := s.Left + m.columnHandleWidth()

	switch p {
	case paneEditor:
		return rect{0, top, s.Left, s.Top}
	case paneTokens:
		return rect{right, top, s.Right, s.Top}
	case paneTree:
		return rect{0, middle, s.Left, s.Middle}
	case paneIR:
		return rect{right, middle, s.Right, s.Middle}
	default:
		return rect{0, term, s.Width, s.Terminal}
	}
}

func (m Model) columnHandleWidth() int {
	return max(m.sizes.Width-m.sizes.Left-m.sizes.Right, 0)
}

func (m Model) rowHandleHeight() int {
	return max(m.sizes.TerminalHandleY-m.sizes.Top-m.sizes.Middle, 0)
}

func (m Model) terminalHandleHeight() int {
	return max(m.sizes.Height-m.sizes.TerminalHandleY-m.sizes.Terminal, 0)
}
