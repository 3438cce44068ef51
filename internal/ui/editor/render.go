package editor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/irscope/internal/ui/styles"
)

// ANSI codes for cursor and selection. The cursor is reverse video; the
// highlight selection uses a gray background so both stay distinguishable
// when the cursor sits inside a highlighted span.
const (
	cursorOn     = "\x1b[7m"
	cursorOff    = "\x1b[27m"
	selectionOn  = "\x1b[48;5;238;38;5;255m"
	selectionOff = "\x1b[49;39m"
)

// View renders the visible window of the buffer.
func (m *Model) View() string {
	if m.isEmpty() && !m.focused && m.config.Placeholder != "" {
		return m.gutter(0) + styles.PlaceholderStyle.Render(m.config.Placeholder)
	}

	selStart, selEnd := m.clampedSelection()

	last := len(m.lines)
	if m.height > 0 {
		last = min(last, m.scrollRow+m.height)
	}

	out := make([]string, 0, last-m.scrollRow)
	for row := m.scrollRow; row < last; row++ {
		out = append(out, m.gutter(row)+m.renderLine(row, selStart, selEnd))
	}
	return strings.Join(out, "\n")
}

func (m *Model) isEmpty() bool {
	return len(m.lines) == 1 && len(m.lines[0]) == 0
}

func (m *Model) gutter(row int) string {
	digits := len(strconv.Itoa(len(m.lines)))
	return styles.MutedStyle.Render(fmt.Sprintf("%*d ", digits, row+1))
}

func (m *Model) gutterWidth() int {
	return len(strconv.Itoa(len(m.lines))) + 1
}

func (m *Model) textWidth() int {
	if m.width <= 0 {
		return 0
	}
	return max(m.width-m.gutterWidth(), 1)
}

// clampedSelection returns the selection limited to the buffer, or an empty
// range when there is none.
func (m *Model) clampedSelection() (start, end int) {
	if !m.hasSelection {
		return 0, 0
	}
	total := m.offsetOf(len(m.lines)-1, len(m.lines[len(m.lines)-1]))
	start = clamp(m.selection.Start, 0, total)
	end = clamp(m.selection.End, start, total)
	return start, end
}

// renderLine renders one line clipped to the horizontal window, with the
// selection and cursor painted in.
func (m *Model) renderLine(row, selStart, selEnd int) string {
	line := m.lines[row]
	base := m.offsetOf(row, 0)

	lo := m.scrollCol
	hi := -1
	if tw := m.textWidth(); tw > 0 {
		hi = lo + tw
	}
	visible := func(cell, w int) bool {
		return cell >= lo && (hi < 0 || cell+w <= hi)
	}

	var b strings.Builder
	inSelection := false
	cell := 0
	for i, r := range line {
		w := m.runeWidth(r, cell)
		if !visible(cell, w) {
			cell += w
			continue
		}

		offset := base + i
		selected := offset >= selStart && offset < selEnd
		if selected != inSelection {
			if selected {
				b.WriteString(selectionOn)
			} else {
				b.WriteString(selectionOff)
			}
			inSelection = selected
		}

		glyph := string(r)
		if r == '\t' {
			glyph = strings.Repeat(" ", w)
		}
		if m.focused && row == m.cursorRow && i == m.cursorCol {
			b.WriteString(cursorOn + glyph + cursorOff)
		} else {
			b.WriteString(glyph)
		}
		cell += w
	}
	if inSelection {
		b.WriteString(selectionOff)
	}

	if m.focused && row == m.cursorRow && m.cursorCol == len(line) && visible(cell, 1) {
		b.WriteString(cursorOn + " " + cursorOff)
	}
	return b.String()
}

// runeWidth returns the display width of r when it starts at cell.
func (m *Model) runeWidth(r rune, cell int) int {
	if r == '\t' {
		return m.config.TabWidth - cell%m.config.TabWidth
	}
	return max(runewidth.RuneWidth(r), 0)
}

// cellOf returns the display cell where rune index col starts.
func (m *Model) cellOf(line []rune, col int) int {
	cell := 0
	for i := 0; i < col && i < len(line); i++ {
		cell += m.runeWidth(line[i], cell)
	}
	return cell
}

// colAtCell returns the rune index covering the given display cell.
func (m *Model) colAtCell(line []rune, target int) int {
	if target <= 0 {
		return 0
	}
	cell := 0
	for i, r := range line {
		w := m.runeWidth(r, cell)
		if target < cell+w {
			return i
		}
		cell += w
	}
	return len(line)
}
