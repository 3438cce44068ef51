package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rivo/uniseg"
)

// TruncateString truncates a string to fit within maxWidth, adding ellipsis if needed.
// Cuts fall between grapheme clusters, so combining marks stay with their base.
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}

	if lipgloss.Width(s) <= maxWidth {
		return s
	}

	// Need to truncate - leave room for ellipsis
	if maxWidth <= 3 {
		return strings.Repeat(".", maxWidth)
	}

	var b strings.Builder
	width := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := g.Width()
		if width+w > maxWidth-3 {
			break
		}
		b.WriteString(g.Str())
		width += w
	}

	return b.String() + "..."
}

// PadRight pads s with spaces to exactly width cells. Longer strings are
// returned unchanged.
func PadRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
