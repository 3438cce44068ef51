// Package logoverlay shows the in-memory debug log on top of the panes. It
// filters by level and category and follows new entries while open.
package logoverlay

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/irscope/internal/log"
	"github.com/zjrosen/irscope/internal/ui/overlay"
	"github.com/zjrosen/irscope/internal/ui/styles"
)

const (
	viewportMaxHeight = 25
	viewportMinHeight = 5
	boxMaxWidth       = 160
	boxMinWidth       = 40
	maxEntries        = 10000
)

// categories is the cycle order of the category filter. Empty means all.
var categories = []log.Category{
	"",
	log.CatCompile,
	log.CatHover,
	log.CatLayout,
	log.CatUI,
	log.CatConfig,
	log.CatWatcher,
	log.CatCache,
	log.CatTrace,
}

// CloseMsg is sent when the overlay closes itself.
type CloseMsg struct{}

// Model is the log overlay.
type Model struct {
	visible  bool
	minLevel log.Level
	category int // index into categories
	width    int
	height   int
	viewport viewport.Model
}

// New creates a hidden overlay showing every level.
func New() *Model {
	return &Model{minLevel: log.LevelDebug}
}

// Update handles keys while visible.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if !m.visible {
		return nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch keyMsg.String() {
	case "c":
		log.ClearBuffer()
	case "d":
		m.minLevel = log.LevelDebug
	case "i":
		m.minLevel = log.LevelInfo
	case "w":
		m.minLevel = log.LevelWarn
	case "e":
		m.minLevel = log.LevelError
	case "tab":
		m.category = (m.category + 1) % len(categories)
	case "j", "down":
		m.viewport.ScrollDown(1)
		return nil
	case "k", "up":
		m.viewport.ScrollUp(1)
		return nil
	case "g":
		m.viewport.GotoTop()
		return nil
	case "G":
		m.viewport.GotoBottom()
		return nil
	case "ctrl+x", "esc":
		m.visible = false
		return func() tea.Msg { return CloseMsg{} }
	default:
		return nil
	}
	m.Refresh()
	return nil
}

// Refresh reloads the entries. Called when a new entry is published; the
// view stays pinned to the newest entry unless the user scrolled up.
func (m *Model) Refresh() {
	if !m.visible || m.width == 0 || m.height == 0 {
		return
	}
	follow := m.viewport.AtBottom()

	contentWidth := m.contentWidth()
	viewportHeight := max(min(viewportMaxHeight, m.height-6), viewportMinHeight)
	if m.viewport.Width != contentWidth || m.viewport.Height != viewportHeight {
		m.viewport = viewport.New(contentWidth, viewportHeight)
		follow = true
	}
	m.viewport.SetContent(m.content(contentWidth))
	if follow {
		m.viewport.GotoBottom()
	}
}

// Entries returns the buffered entries that pass the current filters.
func (m *Model) Entries() []string {
	var out []string
	for _, entry := range log.GetRecentLogs(maxEntries) {
		if m.matches(entry) {
			out = append(out, strings.TrimSuffix(entry, "\n"))
		}
	}
	return out
}

func (m *Model) content(width int) string {
	entries := m.Entries()
	if len(entries) == 0 {
		return styles.PlaceholderStyle.Render("No logs to display")
	}
	lines := make([]string, len(entries))
	for i, entry := range entries {
		lines[i] = colorize(entry, width)
	}
	return strings.Join(lines, "\n")
}

// View renders the overlay box, or nothing while hidden.
func (m *Model) View() string {
	if !m.visible {
		return ""
	}
	boxWidth := m.boxWidth()

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.OverlayTitleColor).PaddingLeft(1)
	dividerStyle := lipgloss.NewStyle().Foreground(styles.OverlayBorderColor)
	divider := dividerStyle.Render(strings.Repeat("─", boxWidth))

	title := "Logs"
	if cat := categories[m.category]; cat != "" {
		title += " [" + string(cat) + "]"
	}

	body := strings.Join([]string{
		titleStyle.Render(title),
		divider,
		m.viewport.View(),
		divider,
		m.hints(),
	}, "\n")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(boxWidth).
		Render(body)
}

// Overlay renders the box centered on bg.
func (m *Model) Overlay(bg string) string {
	if !m.visible {
		return bg
	}
	return overlay.Place(m.width, m.height, m.View(), bg)
}

// Visible returns whether the overlay is shown.
func (m *Model) Visible() bool { return m.visible }

// Toggle shows or hides the overlay.
func (m *Model) Toggle() {
	if m.visible {
		m.Hide()
		return
	}
	m.Show()
}

// Show makes the overlay visible.
func (m *Model) Show() {
	m.visible = true
	m.viewport = viewport.Model{}
	m.Refresh()
}

// Hide makes the overlay invisible.
func (m *Model) Hide() { m.visible = false }

// SetSize records the screen size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.Refresh()
}

func (m *Model) boxWidth() int {
	return max(min(m.width-4, boxMaxWidth), boxMinWidth)
}

func (m *Model) contentWidth() int {
	return m.boxWidth() - 2
}

func (m *Model) matches(entry string) bool {
	if cat := categories[m.category]; cat != "" && !strings.Contains(entry, "["+string(cat)+"]") {
		return false
	}
	level, ok := levelOf(entry)
	return !ok || level >= m.minLevel
}

func levelOf(entry string) (log.Level, bool) {
	for _, l := range []log.Level{log.LevelError, log.LevelWarn, log.LevelInfo, log.LevelDebug} {
		if strings.Contains(entry, "["+l.String()+"]") {
			return l, true
		}
	}
	return 0, false
}

func colorize(entry string, width int) string {
	if ansi.StringWidth(entry) > width {
		entry = ansi.Truncate(entry, width-3, "...")
	}

	color := lipgloss.TerminalColor(styles.TextPrimaryColor)
	if level, ok := levelOf(entry); ok {
		switch level {
		case log.LevelError:
			color = styles.StatusErrorColor
		case log.LevelWarn:
			color = styles.StatusWarningColor
		case log.LevelInfo:
			color = styles.BorderHighlightFocusColor
		case log.LevelDebug:
			color = styles.TextMutedColor
		}
	}
	return lipgloss.NewStyle().Foreground(color).Render(entry)
}

func (m *Model) hints() string {
	hint := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	active := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor).Bold(true)

	parts := []string{hint.Render("[c] Clear"), hint.Render("[tab] Category")}
	for _, opt := range []struct {
		label string
		level log.Level
	}{
		{"[d] Debug", log.LevelDebug},
		{"[i] Info", log.LevelInfo},
		{"[w] Warn", log.LevelWarn},
		{"[e] Error", log.LevelError},
	} {
		if m.minLevel == opt.level {
			parts = append(parts, active.Render(opt.label))
		} else {
			parts = append(parts, hint.Render(opt.label))
		}
	}
	return strings.Join(parts, "  ")
}
