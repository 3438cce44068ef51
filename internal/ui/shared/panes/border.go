// Package panes renders the bordered panels irscope lays out on screen.
package panes

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/irscope/internal/ui/styles"
)

// Border characters (rounded)
const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// BorderConfig configures the appearance of a bordered panel.
type BorderConfig struct {
	Content string // Content rendered inside the border, one string per line
	Width   int    // Total width including borders
	Height  int    // Total height including borders

	TopLeft     string // Title on top border, left-aligned
	TopRight    string // Title on top border, right-aligned
	BottomLeft  string // Title on bottom border, left-aligned
	BottomRight string // Title on bottom border, right-aligned

	Focused            bool
	TitleColor         lipgloss.TerminalColor // Defaults to BorderDefaultColor
	BorderColor        lipgloss.TerminalColor // Defaults to BorderDefaultColor
	FocusedBorderColor lipgloss.TerminalColor // Defaults to BorderHighlightFocusColor
}

// BorderedPane renders content within a bordered panel with optional titles.
// Content lines wider than the panel are truncated, never wrapped, so a
// pane's row count always equals its height. Callers that want wrapping do
// it before handing content over.
func BorderedPane(cfg BorderConfig) string {
	borderStyle := lipgloss.NewStyle().Foreground(resolveBorderColor(cfg))

	titleColor := cfg.TitleColor
	if titleColor == nil {
		titleColor = styles.BorderDefaultColor
	}
	titleStyle := lipgloss.NewStyle().Foreground(titleColor)

	innerWidth := max(cfg.Width-2, 1)
	contentHeight := max(cfg.Height-2, 1)

	var b strings.Builder
	b.WriteString(titledEdge(borderTopLeft, borderTopRight, cfg.TopLeft, cfg.TopRight, innerWidth, borderStyle, titleStyle))
	b.WriteString("\n")

	lines := strings.Split(cfg.Content, "\n")
	side := borderStyle.Render(borderVertical)
	for i := range contentHeight {
		var line string
		if i < len(lines) {
			line = FitLine(lines[i], innerWidth)
		} else {
			line = strings.Repeat(" ", innerWidth)
		}
		b.WriteString(side)
		b.WriteString(line)
		b.WriteString(side)
		b.WriteString("\n")
	}

	b.WriteString(titledEdge(borderBottomLeft, borderBottomRight, cfg.BottomLeft, cfg.BottomRight, innerWidth, borderStyle, titleStyle))
	return b.String()
}

// FitLine truncates or pads an ANSI-styled line to exactly width cells.
func FitLine(line string, width int) string {
	if ansi.StringWidth(line) > width {
		line = ansi.Truncate(line, width, "")
	}
	if w := ansi.StringWidth(line); w < width {
		line += strings.Repeat(" ", width-w)
	}
	return line
}

func resolveBorderColor(cfg BorderConfig) lipgloss.TerminalColor {
	if cfg.Focused {
		if cfg.FocusedBorderColor != nil {
			return cfg.FocusedBorderColor
		}
		return styles.BorderHighlightFocusColor
	}
	if cfg.BorderColor != nil {
		return cfg.BorderColor
	}
	return styles.BorderDefaultColor
}

// titledEdge builds a top or bottom border with embedded titles:
//
//	╭─ Left ───────── Right ─╮
//
// The right title is dropped first when space runs out, then the left title
// is truncated with an ellipsis.
func titledEdge(leftCorner, rightCorner, left, right string, innerWidth int, borderStyle, titleStyle lipgloss.Style) string {
	plain := func() string {
		return borderStyle.Render(leftCorner + strings.Repeat(borderHorizontal, innerWidth) + rightCorner)
	}
	if left == "" && right == "" {
		return plain()
	}

	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(right)

	// "─ " + left + " " + dashes + " " + right + " ─"
	need := 1
	if left != "" {
		need += 3 + leftWidth
	}
	if right != "" {
		need += 3 + rightWidth
	}
	if need > innerWidth && right != "" {
		right, rightWidth = "", 0
		need = 4 + leftWidth
	}
	if left != "" && need > innerWidth {
		if innerWidth < 5 {
			return plain()
		}
		left = styles.TruncateString(left, innerWidth-4)
		leftWidth = lipgloss.Width(left)
		need = 4 + leftWidth
	}
	if left == "" && right == "" {
		return plain()
	}

	dashes := max(innerWidth-need+1, 1)

	var b strings.Builder
	b.WriteString(borderStyle.Render(leftCorner))
	if left != "" {
		b.WriteString(borderStyle.Render(borderHorizontal + " "))
		b.WriteString(titleStyle.Render(left))
		b.WriteString(borderStyle.Render(" "))
	}
	b.WriteString(borderStyle.Render(strings.Repeat(borderHorizontal, dashes)))
	if right != "" {
		b.WriteString(borderStyle.Render(" "))
		b.WriteString(titleStyle.Render(right))
		b.WriteString(borderStyle.Render(" " + borderHorizontal))
	}
	b.WriteString(borderStyle.Render(rightCorner))
	return b.String()
}
