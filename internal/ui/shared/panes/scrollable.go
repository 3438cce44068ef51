package panes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/irscope/internal/ui/styles"
)

// ScrollIndicatorStyle is the style for scroll position indicators (e.g., "↑50%").
var ScrollIndicatorStyle = lipgloss.NewStyle().Foreground(styles.TextMutedColor)

// ScrollableConfig holds the configuration for rendering a scrollable pane.
type ScrollableConfig struct {
	// Viewport must be a pointer so scroll state survives between renders.
	Viewport *viewport.Model

	LeftTitle  string
	RightTitle string
	BottomLeft string

	Focused bool

	// FollowTail keeps the view pinned to the last line while the user has
	// not scrolled away from it. The diagnostic terminal uses it; the IR
	// pane stays top-aligned.
	FollowTail bool
}

// ScrollablePane sizes the viewport to the pane interior, installs content and
// renders it inside a BorderedPane with a scroll indicator in the bottom-right
// corner.
//
// wasAtBottom is captured before SetContent, otherwise a follow-tail pane
// would yank the user back to the bottom on every render.
func ScrollablePane(width, height int, cfg ScrollableConfig, content string) string {
	vpWidth := max(width-2, 1)
	vpHeight := max(height-2, 1)

	wasAtBottom := cfg.Viewport.AtBottom()

	cfg.Viewport.Width = vpWidth
	cfg.Viewport.Height = vpHeight
	cfg.Viewport.SetContent(clipLines(content, vpWidth))

	if cfg.FollowTail && wasAtBottom {
		cfg.Viewport.GotoBottom()
	}

	return BorderedPane(BorderConfig{
		Content:     cfg.Viewport.View(),
		Width:       width,
		Height:      height,
		TopLeft:     cfg.LeftTitle,
		TopRight:    cfg.RightTitle,
		BottomLeft:  cfg.BottomLeft,
		BottomRight: BuildScrollIndicator(*cfg.Viewport),
		Focused:     cfg.Focused,
	})
}

// BuildScrollIndicator returns "↑XX%" while the viewport is scrolled away from
// the bottom, and an empty string when content fits or the view is at the end.
func BuildScrollIndicator(vp viewport.Model) string {
	if vp.TotalLineCount() <= vp.Height {
		return ""
	}
	if vp.AtBottom() {
		return ""
	}
	return ScrollIndicatorStyle.Render(fmt.Sprintf("↑%.0f%%", vp.ScrollPercent()*100))
}

// clipLines truncates every line to width cells. The viewport would otherwise
// soft-wrap long lines and shift everything below them.
func clipLines(content string, width int) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if ansi.StringWidth(line) > width {
			lines[i] = ansi.Truncate(line, width, "")
		}
	}
	return strings.Join(lines, "\n")
}
