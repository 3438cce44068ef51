// Package toaster shows short-lived notifications (saved, reloaded, save
// failures) above the status bar.
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/irscope/internal/ui/overlay"
	"github.com/zjrosen/irscope/internal/ui/styles"
)

// DefaultDuration is how long a toast stays up.
const DefaultDuration = 3 * time.Second

// Style determines the visual appearance of the toast.
type Style int

const (
	StyleSuccess Style = iota
	StyleError
	StyleInfo
)

// Model holds the toaster state.
type Model struct {
	message string
	style   Style
	visible bool
	seq     int
	width   int
	height  int
}

// New creates a new toaster model.
func New() Model {
	return Model{}
}

// Show displays a toast with the given message and style, replacing any
// toast already up. The returned command dismisses it after d.
func (m Model) Show(message string, style Style, d time.Duration) (Model, tea.Cmd) {
	m.message = message
	m.style = style
	m.visible = true
	m.seq++
	return m, ScheduleDismiss(m.seq, d)
}

// Hide dismisses the toast.
func (m Model) Hide() Model {
	m.visible = false
	m.message = ""
	return m
}

// Dismiss hides the toast if msg belongs to the toast currently showing.
// Timers of replaced toasts are ignored.
func (m Model) Dismiss(msg DismissMsg) Model {
	if msg.seq != m.seq {
		return m
	}
	return m.Hide()
}

// Visible returns whether the toast is currently showing.
func (m Model) Visible() bool {
	return m.visible
}

// Message returns the text of the toast, or "" when hidden.
func (m Model) Message() string {
	return m.message
}

// SetSize updates the screen dimensions for overlay positioning.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// View renders the toast box.
func (m Model) View() string {
	if !m.visible || m.message == "" {
		return ""
	}

	style := lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder())

	var content string
	switch m.style {
	case StyleError:
		style = style.BorderForeground(styles.StatusErrorColor)
		content = "✗ " + m.message
	case StyleInfo:
		style = style.BorderForeground(styles.BorderHighlightFocusColor)
		content = "• " + m.message
	default:
		style = style.BorderForeground(styles.StatusSuccessColor)
		content = "✓ " + m.message
	}

	return style.Render(content)
}

// Overlay renders the toast bottom-center on top of bg, clear of the status
// bar.
func (m Model) Overlay(bg string) string {
	if !m.visible || m.message == "" {
		return bg
	}
	return overlay.PlaceBottom(m.width, m.height, 1, m.View(), bg)
}

// DismissMsg signals that a toast's time is up.
type DismissMsg struct{ seq int }

// ScheduleDismiss returns a command that dismisses toast seq after d.
func ScheduleDismiss(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return DismissMsg{seq: seq}
	})
}
