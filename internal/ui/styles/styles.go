// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#CCCCCC"}
	TextSecondaryColor   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"} // Token spans, field summaries
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#696969"} // Hints, line numbers, placeholders
	TextPlaceholderColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#777777"}

	// Borders
	BorderDefaultColor        = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#696969"}
	BorderHighlightFocusColor = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}
	HandleColor               = lipgloss.AdaptiveColor{Light: "#CCCCCC", Dark: "#444444"} // Resize handles at rest
	HandleActiveColor         = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"} // Resize handle while dragging

	// Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	// Tree rows
	TreeLabelColor   = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#89B4FA"}
	TreeStringColor  = lipgloss.AdaptiveColor{Light: "#DF8E1D", Dark: "#F9E2AF"}
	TreeNumberColor  = lipgloss.AdaptiveColor{Light: "#FE640B", Dark: "#FAB387"}
	TreeKeywordColor = lipgloss.AdaptiveColor{Light: "#8839EF", Dark: "#CBA6F7"} // null, true, false
	TreeSpanColor    = lipgloss.AdaptiveColor{Light: "#179299", Dark: "#94E2D5"}

	// Hover highlight shared by token rows and tree rows
	HoverBgColor = lipgloss.AdaptiveColor{Light: "#DDE6F5", Dark: "#313244"}

	// IR diff
	DiffAddedColor   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	DiffRemovedColor = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	SelectionIndicatorColor = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}

	// Overlay colors
	OverlayTitleColor  = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#C9C9C9"}
	OverlayBorderColor = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#8C8C8C"}

	// Selection indicator style (used for ">" prefix on the cursor row)
	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)

	HoverStyle       = lipgloss.NewStyle().Background(HoverBgColor)
	MutedStyle       = lipgloss.NewStyle().Foreground(TextMutedColor)
	PlaceholderStyle = lipgloss.NewStyle().Foreground(TextPlaceholderColor).Italic(true)

	TreeLabelStyle   = lipgloss.NewStyle().Foreground(TreeLabelColor)
	TreeStringStyle  = lipgloss.NewStyle().Foreground(TreeStringColor)
	TreeNumberStyle  = lipgloss.NewStyle().Foreground(TreeNumberColor)
	TreeKeywordStyle = lipgloss.NewStyle().Foreground(TreeKeywordColor)
	TreeSummaryStyle = lipgloss.NewStyle().Foreground(TextSecondaryColor)
	TreeSpanStyle    = lipgloss.NewStyle().Foreground(TreeSpanColor).Italic(true)

	SectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(TextPrimaryColor)

	DiffAddedStyle   = lipgloss.NewStyle().Foreground(DiffAddedColor)
	DiffRemovedStyle = lipgloss.NewStyle().Foreground(DiffRemovedColor)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor).
			Padding(0, 1)

	StatusReadyStyle   = lipgloss.NewStyle().Foreground(StatusSuccessColor)
	StatusPendingStyle = lipgloss.NewStyle().Foreground(StatusWarningColor)
	StatusFailedStyle  = lipgloss.NewStyle().Foreground(StatusErrorColor).Bold(true)
)
