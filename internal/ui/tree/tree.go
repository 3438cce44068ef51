// Package tree renders AST values as a collapsible tree and lays out the AST
// pane: one section per program table plus the require-main flag.
package tree

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/irscope/internal/ast"
	"github.com/zjrosen/irscope/internal/highlight"
	"github.com/zjrosen/irscope/internal/keys"
	"github.com/zjrosen/irscope/internal/log"
	"github.com/zjrosen/irscope/internal/span"
	"github.com/zjrosen/irscope/internal/ui/shared/panes"
	"github.com/zjrosen/irscope/internal/ui/styles"
)

const (
	// Title is the pane title.
	Title = "Abstract Syntax Tree"
	// Placeholder is shown when there is no program.
	Placeholder = "No AST available"

	DefaultIndent = 2

	glyphExpanded  = "▼ "
	glyphCollapsed = "▶ "
	glyphLeaf      = "  "
	spanMarker     = "(has span)"
)

// Row is one visible line of the pane: a section header, a "None" filler,
// or a tree node.
type Row struct {
	Text string // header or filler text; empty for node rows
	Node *Node
	Key  string
}

// Model is the AST pane.
type Model struct {
	program *ast.Program
	roots   []*Node
	layout  []entry // sections in display order

	// collapsed holds the expand state keyed by node path. Absent means
	// expanded.
	collapsed map[string]bool
	rows      []Row

	cursor  int
	offset  int
	visible int

	indent     int
	focused    bool
	isHovered  func(span.Span) bool
	zonePrefix string
	keys       keys.KeyMap
}

// entry is a slot of the pane layout: a text line or a root node.
type entry struct {
	text string
	root *Node
}

// New creates an empty AST pane. indent is the number of cells per depth
// level; isHovered may be nil.
func New(indent int, isHovered func(span.Span) bool) *Model {
	if indent <= 0 {
		indent = DefaultIndent
	}
	return &Model{
		collapsed:  make(map[string]bool),
		indent:     indent,
		isHovered:  isHovered,
		zonePrefix: zone.NewPrefix(),
		keys:       keys.DefaultKeyMap(),
	}
}

// SetProgram replaces the displayed program. nil shows the placeholder.
// Expand state is kept by path so re-compiling an unchanged program keeps the
// tree as the user left it.
func (m *Model) SetProgram(p *ast.Program) {
	m.program = p
	m.roots = nil
	m.layout = nil

	if p != nil {
		m.addSection("Data Types:", p.CustomTypes)
		m.addSection("Functions:", p.Functions)
		requireMain := "No"
		if p.RequireMain {
			requireMain = "Yes"
		}
		m.layout = append(m.layout, entry{text: "Require Main: " + requireMain})
	}

	m.refreshRows()
	log.Debug(log.CatUI, "ast pane updated", "roots", len(m.roots), "rows", len(m.rows))
}

func (m *Model) addSection(title string, entries []ast.Entry) {
	m.layout = append(m.layout, entry{text: title})
	if len(entries) == 0 {
		m.layout = append(m.layout, entry{text: " None"})
		return
	}
	for _, e := range entries {
		root := buildAt(e.Name, ast.NormalizeOrNull(e.Node, true), NodePath{len(m.roots)}, 0)
		m.roots = append(m.roots, root)
		m.layout = append(m.layout, entry{root: root})
	}
}

// Program returns the displayed program.
func (m *Model) Program() *ast.Program {
	return m.program
}

// Roots returns the root node of every table entry.
func (m *Model) Roots() []*Node {
	return m.roots
}

// Rows returns the visible rows in display order.
func (m *Model) Rows() []Row {
	return m.rows
}

// Expanded reports whether the node at path shows its children.
func (m *Model) Expanded(path NodePath) bool {
	return !m.collapsed[path.key()]
}

// Toggle flips the expand state of the node at path. Nothing else changes.
func (m *Model) Toggle(path NodePath) {
	k := path.key()
	if m.collapsed[k] {
		delete(m.collapsed, k)
	} else {
		m.collapsed[k] = true
	}
	m.refreshRows()
}

// ExpandAll expands every node.
func (m *Model) ExpandAll() {
	clear(m.collapsed)
	m.refreshRows()
}

// CollapseAll collapses every expandable node.
func (m *Model) CollapseAll() {
	for _, root := range m.roots {
		root.Walk(func(n *Node) {
			if n.Expandable() {
				m.collapsed[n.Path.key()] = true
			}
		})
	}
	m.refreshRows()
}

// refreshRows flattens the layout into visible rows.
func (m *Model) refreshRows() {
	m.rows = m.rows[:0]
	for i, e := range m.layout {
		if e.root == nil {
			m.rows = append(m.rows, Row{Text: e.text, Key: "ast-h" + strconv.Itoa(i)})
			continue
		}
		m.appendVisible(e.root)
	}
	m.cursor = max(0, min(m.cursor, len(m.rows)-1))
	m.clampOffset()
}

func (m *Model) appendVisible(n *Node) {
	m.rows = append(m.rows, Row{Node: n, Key: "ast-" + n.Path.key()})
	if !n.Expandable() || !m.Expanded(n.Path) {
		return
	}
	for _, c := range n.Children {
		m.appendVisible(c)
	}
}

// Focus gives the pane keyboard focus.
func (m *Model) Focus() { m.focused = true }

// Blur removes keyboard focus.
func (m *Model) Blur() { m.focused = false }

// Focused returns whether the pane has keyboard focus.
func (m *Model) Focused() bool { return m.focused }

// Cursor returns the index of the keyboard cursor row.
func (m *Model) Cursor() int {
	return m.cursor
}

// SelectedNode returns the node under the keyboard cursor, if any.
func (m *Model) SelectedNode() *Node {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor].Node
}

// Update handles keyboard navigation while focused. Moving the cursor onto
// a row emits a hover for that row; rows without a span emit a hover with a
// nil span so the previous highlight is released.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.focused || len(m.rows) == 0 {
		return nil
	}

	page := max(m.visible-1, 1)
	switch {
	case key.Matches(keyMsg, m.keys.Up):
		return m.MoveCursor(-1)
	case key.Matches(keyMsg, m.keys.Down):
		return m.MoveCursor(1)
	case key.Matches(keyMsg, m.keys.PageUp):
		return m.MoveCursor(-page)
	case key.Matches(keyMsg, m.keys.PageDown):
		return m.MoveCursor(page)
	case key.Matches(keyMsg, m.keys.Top):
		return m.MoveCursor(-len(m.rows))
	case key.Matches(keyMsg, m.keys.Bottom):
		return m.MoveCursor(len(m.rows))
	case key.Matches(keyMsg, m.keys.Toggle):
		if n := m.SelectedNode(); n != nil && n.Expandable() {
			m.Toggle(n.Path)
		}
	case key.Matches(keyMsg, m.keys.ExpandAll):
		m.ExpandAll()
	case key.Matches(keyMsg, m.keys.CollapseAll):
		m.CollapseAll()
	}
	return nil
}

// MoveCursor moves the cursor by delta, respecting bounds, and returns the
// hover command for the row it lands on.
func (m *Model) MoveCursor(delta int) tea.Cmd {
	prev := m.cursor
	m.cursor = max(0, min(m.cursor+delta, len(m.rows)-1))
	m.ensureCursorVisible()
	if m.cursor == prev || len(m.rows) == 0 {
		return nil
	}

	row := m.rows[m.cursor]
	hover := highlight.HoverMsg{Key: row.Key, Span: rowSpan(row), Keyboard: true}
	return func() tea.Msg { return hover }
}

func rowSpan(row Row) *span.Span {
	if row.Node == nil {
		return nil
	}
	s, ok := row.Node.Span()
	if !ok {
		return nil
	}
	return &s
}

func (m *Model) ensureCursorVisible() {
	if m.visible <= 0 {
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.visible {
		m.offset = m.cursor - m.visible + 1
	}
}

func (m *Model) clampOffset() {
	m.offset = max(0, min(m.offset, len(m.rows)-m.visible))
}

// Scroll handles wheel events.
func (m *Model) Scroll(msg tea.MouseMsg) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.offset -= 3
	case tea.MouseButtonWheelDown:
		m.offset += 3
	}
	m.clampOffset()
}

// rowAt returns the index of the visible row under the pointer.
func (m *Model) rowAt(msg tea.MouseMsg) (int, bool) {
	end := min(m.offset+m.visible, len(m.rows))
	for i := m.offset; i < end; i++ {
		if z := zone.Get(m.zonePrefix + m.rows[i].Key); z != nil && z.InBounds(msg) {
			return i, true
		}
	}
	return 0, false
}

// HoverAt returns the row under the pointer. The span is nil for rows that
// carry none, including rows whose span field is malformed.
func (m *Model) HoverAt(msg tea.MouseMsg) (string, *span.Span, bool) {
	i, ok := m.rowAt(msg)
	if !ok {
		return "", nil, false
	}
	return m.rows[i].Key, rowSpan(m.rows[i]), true
}

// ClickAt moves the cursor to the row under the pointer and toggles it when
// it is expandable. It reports whether a row was hit.
func (m *Model) ClickAt(msg tea.MouseMsg) bool {
	i, ok := m.rowAt(msg)
	if !ok {
		return false
	}
	m.cursor = i
	if n := m.rows[i].Node; n != nil && n.Expandable() {
		m.Toggle(n.Path)
	}
	return true
}

// View renders the pane at the given size, borders included.
func (m *Model) View(width, height int) string {
	inner := max(width-2, 1)
	m.visible = max(height-2, 1)
	m.clampOffset()

	var content string
	if m.program == nil {
		content = styles.PlaceholderStyle.Render(Placeholder)
	} else {
		end := min(m.offset+m.visible, len(m.rows))
		lines := make([]string, 0, end-m.offset)
		for i := m.offset; i < end; i++ {
			line := panes.FitLine(m.renderRow(i), inner)
			if n := m.rows[i].Node; n != nil && m.isHovered != nil {
				if s, ok := n.Span(); ok && m.isHovered(s) {
					line = styles.HoverStyle.Render(line)
				}
			}
			lines = append(lines, zone.Mark(m.zonePrefix+m.rows[i].Key, line))
		}
		content = strings.Join(lines, "\n")
	}

	return panes.BorderedPane(panes.BorderConfig{
		Content: content,
		Width:   width,
		Height:  height,
		TopLeft: Title,
		Focused: m.focused,
	})
}

func (m *Model) renderRow(i int) string {
	row := m.rows[i]

	prefix := "  "
	if m.focused && i == m.cursor {
		prefix = styles.SelectionIndicatorStyle.Render(">") + " "
	}

	if row.Node == nil {
		if strings.HasPrefix(row.Text, " ") {
			return prefix + styles.MutedStyle.Render(row.Text)
		}
		return prefix + styles.SectionHeaderStyle.Render(row.Text)
	}

	n := row.Node
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(strings.Repeat(" ", n.Depth*m.indent))
	b.WriteString(m.glyph(n))
	b.WriteString(styles.TreeLabelStyle.Render(n.Label + ":"))
	b.WriteString(" ")
	b.WriteString(summaryStyle(n.Value).Render(n.Summary()))
	if n.HasSpan() {
		b.WriteString(" ")
		b.WriteString(styles.TreeSpanStyle.Render(spanMarker))
	}
	return b.String()
}

func (m *Model) glyph(n *Node) string {
	switch {
	case !n.Expandable():
		return glyphLeaf
	case m.Expanded(n.Path):
		return glyphExpanded
	default:
		return glyphCollapsed
	}
}

// PlainLines renders every visible row without styling, cursor or hover. The
// dump command prints it.
func (m *Model) PlainLines() []string {
	if m.program == nil {
		return []string{Placeholder}
	}
	out := make([]string, 0, len(m.rows))
	for _, row := range m.rows {
		if row.Node == nil {
			out = append(out, row.Text)
			continue
		}
		n := row.Node
		line := strings.Repeat(" ", n.Depth*m.indent) + m.glyph(n) + n.Label + ": " + n.Summary()
		if n.HasSpan() {
			line += " " + spanMarker
		}
		out = append(out, line)
	}
	return out
}

func summaryStyle(v ast.Value) lipgloss.Style {
	switch v.Kind() {
	case ast.KindString:
		return styles.TreeStringStyle
	case ast.KindNumber:
		return styles.TreeNumberStyle
	case ast.KindNull, ast.KindBool:
		return styles.TreeKeywordStyle
	default:
		return styles.TreeSummaryStyle
	}
}
