package help

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestHelp_SetSizeReturnsCopy(t *testing.T) {
	m := New().SetSize(120, 40)
	m2 := m.SetSize(80, 24)

	require.Equal(t, 120, m.width)
	require.Equal(t, 80, m2.width)
	require.Equal(t, 24, m2.height)
}

func TestHelp_MarkdownListsEveryBinding(t *testing.T) {
	m := New()
	md := m.Markdown()

	for _, title := range groupTitles {
		require.Contains(t, md, "## "+title)
	}
	for _, group := range m.keys.FullHelp() {
		for _, b := range group {
			require.Contains(t, md, "| "+b.Help().Key+" | "+b.Help().Desc+" |")
		}
	}
}

func TestHelp_ViewRendersMarkdown(t *testing.T) {
	view := ansi.Strip(New().SetSize(100, 60).View())

	require.Contains(t, view, "Keybindings")
	require.Contains(t, view, "compile now")
	require.Contains(t, view, "expand/collapse node")
	require.Contains(t, view, footer)
}

func TestHelp_ViewFitsNarrowScreens(t *testing.T) {
	view := New().SetSize(40, 60).View()
	for _, line := range strings.Split(view, "\n") {
		require.LessOrEqual(t, lipgloss.Width(line), 40, "line %q", ansi.Strip(line))
	}
}

func TestHelp_ViewTruncatedToHeight(t *testing.T) {
	view := New().SetSize(100, 12).View()
	require.LessOrEqual(t, len(strings.Split(view, "\n")), 12)
	require.Contains(t, ansi.Strip(view), footer)
}

func TestHelp_OverlayKeepsBackground(t *testing.T) {
	m := New().SetSize(100, 40)
	bg := strings.Repeat(strings.Repeat("x", 100)+"\n", 39) + strings.Repeat("x", 100)

	out := m.Overlay(bg)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 40)
	for _, line := range lines {
		require.True(t, strings.HasPrefix(line, strings.Repeat("x", 18)), "left edge of %q", line)
	}
	require.Contains(t, ansi.Strip(out), "Keybindings")
}

func TestHelp_WithStyle(t *testing.T) {
	m := New().WithStyle("light").SetSize(100, 60)
	require.Equal(t, "light", m.style)
	require.Contains(t, ansi.Strip(m.View()), "toggle auto-compile")
}
