// Package overlay composites a floating box (help, logs) over the pane grid
// without clearing what is underneath.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Place renders fg centered on top of bg, which is treated as a width x height
// screen. Styling on both layers is preserved; background cells hidden by the
// foreground are dropped.
func Place(width, height int, fg, bg string) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < height {
		bgLines = append(bgLines, strings.Repeat(" ", width))
	}

	x := max((width-lipgloss.Width(fg))/2, 0)
	y := max((height-len(fgLines))/2, 0)
	return placeAt(fgLines, bgLines, x, y)
}

// PlaceBottom renders fg horizontally centered, padY rows above the bottom
// edge of bg.
func PlaceBottom(width, height, padY int, fg, bg string) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < height {
		bgLines = append(bgLines, strings.Repeat(" ", width))
	}

	x := max((width-lipgloss.Width(fg))/2, 0)
	y := max(height-padY-len(fgLines), 0)
	return placeAt(fgLines, bgLines, x, y)
}

func placeAt(fgLines, bgLines []string, x, y int) string {
	for i, line := range fgLines {
		row := y + i
		if row >= len(bgLines) {
			break
		}
		bgLines[row] = splice(bgLines[row], line, x)
	}
	return strings.Join(bgLines, "\n")
}

// splice writes fg into bg starting at cell x.
func splice(bg, fg string, x int) string {
	left := ansi.Truncate(bg, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}

	end := x + ansi.StringWidth(fg)
	var right string
	if end < ansi.StringWidth(bg) {
		right = ansi.TruncateLeft(bg, end, "")
	}
	return left + fg + right
}
