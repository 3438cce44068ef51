// Package help contains the help overlay component. The key reference is
// generated as markdown from the key map and rendered with glamour.
package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/irscope/internal/keys"
	"github.com/zjrosen/irscope/internal/log"
	"github.com/zjrosen/irscope/internal/ui/overlay"
	"github.com/zjrosen/irscope/internal/ui/styles"
)

// noMarginStyle removes glamour's document margins.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// groupTitles names the groups returned by KeyMap.FullHelp, in order.
var groupTitles = []string{"Navigation", "Tree", "IR", "Compile", "General"}

const footer = "Press ? or Esc to close"

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.OverlayBorderColor).
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(styles.TextMutedColor)
)

// Model holds the help view state.
type Model struct {
	keys   keys.KeyMap
	style  string // glamour standard style; empty detects the background
	width  int
	height int
}

// New creates a help view for the default key map.
func New() Model {
	return Model{keys: keys.DefaultKeyMap()}
}

// WithStyle selects a glamour standard style such as "dark" or "light".
func (m Model) WithStyle(style string) Model {
	m.style = style
	return m
}

// SetSize updates dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// Markdown returns the key reference as a markdown document.
func (m Model) Markdown() string {
	var b strings.Builder
	b.WriteString("# Keybindings\n")
	for i, group := range m.keys.FullHelp() {
		title := "More"
		if i < len(groupTitles) {
			title = groupTitles[i]
		}
		fmt.Fprintf(&b, "\n## %s\n\n| Key | Action |\n| --- | --- |\n", title)
		for _, binding := range group {
			b.WriteString(row(binding))
		}
	}
	b.WriteString("\nHovering a token or a tree row with a span selects its source range in the editor.\n")
	return b.String()
}

func row(b key.Binding) string {
	h := b.Help()
	return fmt.Sprintf("| %s | %s |\n", h.Key, h.Desc)
}

// boxWidth is the width of the rendered help box, capped by the screen.
func (m Model) boxWidth() int {
	w := 64
	if m.width > 0 {
		w = min(w, m.width-2)
	}
	return max(w, 20)
}

// render turns the markdown into styled text. A renderer failure falls back
// to the raw markdown.
func (m Model) render(width int) string {
	styleOpt := glamour.WithAutoStyle()
	if m.style != "" {
		styleOpt = glamour.WithStandardStyle(m.style)
	}
	r, err := glamour.NewTermRenderer(
		styleOpt,
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		log.ErrorErr(log.CatUI, "help renderer", err)
		return m.Markdown()
	}
	out, err := r.Render(m.Markdown())
	if err != nil {
		log.ErrorErr(log.CatUI, "help render", err)
		return m.Markdown()
	}
	return strings.Trim(out, "\n")
}

// View renders the help box without a background.
func (m Model) View() string {
	inner := m.boxWidth() - 4
	body := m.render(inner)

	lines := strings.Split(body, "\n")
	if m.height > 0 {
		// border, footer and its spacer
		if limit := m.height - 4; limit > 0 && len(lines) > limit {
			lines = lines[:limit]
		}
	}
	lines = append(lines, "", footerStyle.Render(footer))
	return boxStyle.Width(m.boxWidth() - 2).Render(strings.Join(lines, "\n"))
}

// Overlay renders the help box centered on top of background.
func (m Model) Overlay(background string) string {
	return overlay.Place(m.width, m.height, m.View(), background)
}
