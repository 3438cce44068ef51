// Package editor is the source editing surface: a plain-text buffer with a
// cursor, a line-number gutter and an externally driven highlight selection.
package editor

import (
	"regexp"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/irscope/internal/log"
	"github.com/zjrosen/irscope/internal/span"
)

// mouseEscapePattern matches SGR mouse sequences bubbletea failed to parse,
// which otherwise arrive as rune input ("[<65;87;15M").
var mouseEscapePattern = regexp.MustCompile(`^\[?<\d+;\d+;\d+[Mm]$`)

func isMouseEscapeSequence(runes []rune) bool {
	return len(runes) >= 6 && mouseEscapePattern.MatchString(string(runes))
}

// DefaultTabWidth is the number of cells a tab advances to.
const DefaultTabWidth = 4

// ChangedMsg is emitted after every edit that changes the buffer.
type ChangedMsg struct {
	Value string
}

// Config configures an editor.
type Config struct {
	// Placeholder is shown when the buffer is empty.
	Placeholder string

	// TabWidth is the display width of a tab stop. Zero means DefaultTabWidth.
	TabWidth int

	// OnChange produces a custom message on edits. If nil, ChangedMsg is used.
	OnChange func(value string) tea.Msg
}

// Model holds the editor state. Offsets used by SetSelection count runes of
// the buffer with "\n" separating lines, the same unit the compiler reports
// spans in.
type Model struct {
	config Config

	lines     [][]rune
	cursorRow int
	cursorCol int // rune index within the line

	// selection is stored exactly as requested. Rendering clamps it to the
	// buffer; out-of-range offsets are never rejected.
	selection    span.Selection
	hasSelection bool

	width   int
	height  int
	focused bool

	scrollRow int // first visible line
	scrollCol int // first visible cell of the text area
}

// New creates an empty editor.
func New(cfg Config) *Model {
	if cfg.TabWidth <= 0 {
		cfg.TabWidth = DefaultTabWidth
	}
	return &Model{
		config: cfg,
		lines:  [][]rune{{}},
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles keyboard input while focused. Any edit clears the highlight
// selection and returns a command producing the change message.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.focused {
		return nil
	}

	changed := m.handleKey(keyMsg)
	m.ensureCursorVisible()
	if !changed {
		return nil
	}

	m.ClearSelection()
	value := m.Value()
	if m.config.OnChange != nil {
		return func() tea.Msg { return m.config.OnChange(value) }
	}
	return func() tea.Msg { return ChangedMsg{Value: value} }
}

// handleKey applies one key press and reports whether the buffer changed.
func (m *Model) handleKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyRunes:
		if isMouseEscapeSequence(msg.Runes) {
			return false
		}
		m.insert(msg.Runes)
		return true
	case tea.KeySpace:
		m.insert([]rune{' '})
		return true
	case tea.KeyEnter:
		m.newline()
		return true
	case tea.KeyBackspace:
		return m.backspace()
	case tea.KeyDelete:
		return m.deleteForward()
	case tea.KeyLeft:
		m.moveLeft()
	case tea.KeyRight:
		m.moveRight()
	case tea.KeyUp:
		m.moveVertical(-1)
	case tea.KeyDown:
		m.moveVertical(1)
	case tea.KeyPgUp:
		m.moveVertical(-max(m.height-1, 1))
	case tea.KeyPgDown:
		m.moveVertical(max(m.height-1, 1))
	case tea.KeyHome:
		m.cursorCol = 0
	case tea.KeyEnd:
		m.cursorCol = len(m.lines[m.cursorRow])
	case tea.KeyCtrlHome:
		m.cursorRow, m.cursorCol = 0, 0
	case tea.KeyCtrlEnd:
		m.cursorRow = len(m.lines) - 1
		m.cursorCol = len(m.lines[m.cursorRow])
	}
	return false
}

func (m *Model) insert(runes []rune) {
	for _, r := range runes {
		switch r {
		case '\r':
			continue
		case '\n':
			m.newline()
			continue
		}
		line := m.lines[m.cursorRow]
		next := make([]rune, 0, len(line)+1)
		next = append(next, line[:m.cursorCol]...)
		next = append(next, r)
		next = append(next, line[m.cursorCol:]...)
		m.lines[m.cursorRow] = next
		m.cursorCol++
	}
}

// newline splits the current line at the cursor and carries the leading
// indentation of the line over to the new one.
func (m *Model) newline() {
	line := m.lines[m.cursorRow]
	head := append([]rune(nil), line[:m.cursorCol]...)
	indent := leadingIndent(head)
	tail := append(append([]rune(nil), indent...), line[m.cursorCol:]...)

	m.lines[m.cursorRow] = head
	m.lines = append(m.lines[:m.cursorRow+1], append([][]rune{tail}, m.lines[m.cursorRow+1:]...)...)
	m.cursorRow++
	m.cursorCol = len(indent)
}

func leadingIndent(line []rune) []rune {
	n := 0
	for n < len(line) && (line[n] == ' ' || line[n] == '\t') {
		n++
	}
	return line[:n]
}

func (m *Model) backspace() bool {
	if m.cursorCol > 0 {
		line := m.lines[m.cursorRow]
		m.lines[m.cursorRow] = append(line[:m.cursorCol-1:m.cursorCol-1], line[m.cursorCol:]...)
		m.cursorCol--
		return true
	}
	if m.cursorRow == 0 {
		return false
	}
	prev := m.lines[m.cursorRow-1]
	m.cursorCol = len(prev)
	m.lines[m.cursorRow-1] = append(prev[:len(prev):len(prev)], m.lines[m.cursorRow]...)
	m.lines = append(m.lines[:m.cursorRow], m.lines[m.cursorRow+1:]...)
	m.cursorRow--
	return true
}

func (m *Model) deleteForward() bool {
	line := m.lines[m.cursorRow]
	if m.cursorCol < len(line) {
		m.lines[m.cursorRow] = append(line[:m.cursorCol:m.cursorCol], line[m.cursorCol+1:]...)
		return true
	}
	if m.cursorRow == len(m.lines)-1 {
		return false
	}
	m.lines[m.cursorRow] = append(line[:len(line):len(line)], m.lines[m.cursorRow+1]...)
	m.lines = append(m.lines[:m.cursorRow+1], m.lines[m.cursorRow+2:]...)
	return true
}

func (m *Model) moveLeft() {
	switch {
	case m.cursorCol > 0:
		m.cursorCol--
	case m.cursorRow > 0:
		m.cursorRow--
		m.cursorCol = len(m.lines[m.cursorRow])
	}
}

func (m *Model) moveRight() {
	switch {
	case m.cursorCol < len(m.lines[m.cursorRow]):
		m.cursorCol++
	case m.cursorRow < len(m.lines)-1:
		m.cursorRow++
		m.cursorCol = 0
	}
}

func (m *Model) moveVertical(delta int) {
	m.cursorRow = clamp(m.cursorRow+delta, 0, len(m.lines)-1)
	m.cursorCol = min(m.cursorCol, len(m.lines[m.cursorRow]))
}

// Focus gives the editor keyboard focus.
func (m *Model) Focus() {
	m.focused = true
}

// Blur removes keyboard focus.
func (m *Model) Blur() {
	m.focused = false
}

// Focused returns whether the editor has keyboard focus.
func (m *Model) Focused() bool {
	return m.focused
}

// SetSize sets the interior dimensions, gutter included.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.ensureCursorVisible()
}

// Value returns the buffer with lines joined by "\n".
func (m *Model) Value() string {
	parts := make([]string, len(m.lines))
	for i, line := range m.lines {
		parts[i] = string(line)
	}
	return strings.Join(parts, "\n")
}

// SetValue replaces the buffer. CRLF line endings are normalized to LF. The
// cursor moves to the start and any selection is dropped.
func (m *Model) SetValue(s string) {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	raw := strings.Split(s, "\n")
	m.lines = make([][]rune, len(raw))
	for i, line := range raw {
		m.lines[i] = []rune(line)
	}
	m.cursorRow, m.cursorCol = 0, 0
	m.scrollRow, m.scrollCol = 0, 0
	m.ClearSelection()
}

// SetSelection highlights [start, end) and moves the cursor to start so the
// range scrolls into view. Offsets are recorded as given.
func (m *Model) SetSelection(start, end int) {
	m.selection = span.Selection{Start: start, End: end}
	m.hasSelection = true

	m.cursorRow, m.cursorCol = m.positionOf(start)
	m.ensureCursorVisible()
	log.Debug(log.CatHover, "editor selection", "start", start, "end", end)
}

// Selection returns the active highlight selection, if any.
func (m *Model) Selection() (span.Selection, bool) {
	return m.selection, m.hasSelection
}

// ClearSelection drops the highlight selection. Text is never deleted.
func (m *Model) ClearSelection() {
	m.selection = span.Selection{}
	m.hasSelection = false
}

// Cursor returns the cursor as (row, column) in runes.
func (m *Model) Cursor() (row, col int) {
	return m.cursorRow, m.cursorCol
}

// CursorOffset returns the cursor as an absolute rune offset.
func (m *Model) CursorOffset() int {
	return m.offsetOf(m.cursorRow, m.cursorCol)
}

// ClickAt moves the cursor to the cell at (x, y) relative to the editor's
// top-left corner, gutter included.
func (m *Model) ClickAt(x, y int) {
	row := clamp(m.scrollRow+y, 0, len(m.lines)-1)
	cell := x - m.gutterWidth() + m.scrollCol
	m.cursorRow = row
	m.cursorCol = m.colAtCell(m.lines[row], cell)
	m.ensureCursorVisible()
}

// LineCount returns the number of lines in the buffer.
func (m *Model) LineCount() int {
	return len(m.lines)
}

// positionOf maps an absolute rune offset to (row, col), clamped to the buffer.
func (m *Model) positionOf(offset int) (row, col int) {
	if offset <= 0 {
		return 0, 0
	}
	for i, line := range m.lines {
		if offset <= len(line) {
			return i, offset
		}
		offset -= len(line) + 1
	}
	last := len(m.lines) - 1
	return last, len(m.lines[last])
}

// offsetOf maps (row, col) to an absolute rune offset.
func (m *Model) offsetOf(row, col int) int {
	offset := 0
	for i := range row {
		offset += len(m.lines[i]) + 1
	}
	return offset + col
}

func (m *Model) ensureCursorVisible() {
	if m.height > 0 {
		if m.cursorRow < m.scrollRow {
			m.scrollRow = m.cursorRow
		}
		if m.cursorRow >= m.scrollRow+m.height {
			m.scrollRow = m.cursorRow - m.height + 1
		}
	}

	textWidth := m.textWidth()
	if textWidth <= 0 {
		return
	}
	cell := m.cellOf(m.lines[m.cursorRow], m.cursorCol)
	if cell < m.scrollCol {
		m.scrollCol = cell
	}
	// One extra cell so the cursor can sit after the last rune.
	if cell >= m.scrollCol+textWidth {
		m.scrollCol = cell - textWidth + 1
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
