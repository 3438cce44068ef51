package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap_Assignments(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name     string
		binding  key.Binding
		expected []string
	}{
		{"compile", km.Compile, []string{"ctrl+r"}},
		{"auto-compile toggle", km.ToggleAuto, []string{"ctrl+a"}},
		{"save", km.Save, []string{"ctrl+s"}},
		{"logs", km.Logs, []string{"ctrl+x"}},
		{"toggle node", km.Toggle, []string{"enter", " "}},
		{"expand all", km.ExpandAll, []string{"E"}},
		{"collapse all", km.CollapseAll, []string{"C"}},
		{"force quit", km.ForceQuit, []string{"ctrl+c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.binding.Keys())
			require.NotEmpty(t, tt.binding.Help().Desc)
		})
	}
}

func TestDefaultKeyMap_Matches(t *testing.T) {
	km := DefaultKeyMap()

	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlR}, km.Compile))
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyTab}, km.NextPane))
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyShiftTab}, km.PrevPane))
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}, km.Down))
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, km.Toggle))
	require.False(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, km.ForceQuit))
}

func TestKeyMap_HelpGroupsCoverEveryBinding(t *testing.T) {
	km := DefaultKeyMap()

	count := 0
	for _, group := range km.FullHelp() {
		for _, b := range group {
			require.NotEmpty(t, b.Help().Key)
			count++
		}
	}
	require.Equal(t, 21, count)
	require.Len(t, km.ShortHelp(), 5)
}
