package editor

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/irscope/internal/span"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func focused(value string) *Model {
	m := New(Config{})
	m.SetValue(value)
	m.Focus()
	return m
}

func TestSetValue_NormalizesLineEndings(t *testing.T) {
	m := New(Config{})
	m.SetValue("a\r\nb\nc")

	require.Equal(t, "a\nb\nc", m.Value())
	require.Equal(t, 3, m.LineCount())
}

func TestUpdate_TypingEmitsChange(t *testing.T) {
	m := focused("ab")
	m.Update(key(tea.KeyEnd))

	cmd := m.Update(runes("c"))
	require.NotNil(t, cmd)
	require.Equal(t, ChangedMsg{Value: "abc"}, cmd())
}

func TestUpdate_CustomOnChange(t *testing.T) {
	type sourceEdited struct{ src string }
	m := New(Config{OnChange: func(v string) tea.Msg { return sourceEdited{v} }})
	m.Focus()

	cmd := m.Update(runes("x"))
	require.Equal(t, sourceEdited{"x"}, cmd())
}

func TestUpdate_IgnoredWhenBlurred(t *testing.T) {
	m := New(Config{})
	m.SetValue("abc")

	require.Nil(t, m.Update(runes("x")))
	require.Equal(t, "abc", m.Value())
}

func TestUpdate_NavigationDoesNotEmit(t *testing.T) {
	m := focused("ab\ncd")
	require.Nil(t, m.Update(key(tea.KeyDown)))
	require.Nil(t, m.Update(key(tea.KeyRight)))

	row, col := m.Cursor()
	require.Equal(t, 1, row)
	require.Equal(t, 1, col)
}

func TestUpdate_EnterKeepsIndentation(t *testing.T) {
	m := focused("  foo")
	m.Update(key(tea.KeyEnd))
	m.Update(key(tea.KeyEnter))

	require.Equal(t, "  foo\n  ", m.Value())
	row, col := m.Cursor()
	require.Equal(t, 1, row)
	require.Equal(t, 2, col)
}

func TestUpdate_BackspaceJoinsLines(t *testing.T) {
	m := focused("ab\ncd")
	m.Update(key(tea.KeyDown))
	m.Update(key(tea.KeyBackspace))

	require.Equal(t, "abcd", m.Value())
	row, col := m.Cursor()
	require.Equal(t, 0, row)
	require.Equal(t, 2, col)

	m.Update(key(tea.KeyCtrlHome))
	require.Nil(t, m.Update(key(tea.KeyBackspace)), "backspace at buffer start changes nothing")
}

func TestUpdate_DeleteJoinsLines(t *testing.T) {
	m := focused("ab\ncd")
	m.Update(key(tea.KeyEnd))

	cmd := m.Update(key(tea.KeyDelete))
	require.NotNil(t, cmd)
	require.Equal(t, "abcd", m.Value())

	m.Update(key(tea.KeyCtrlEnd))
	require.Nil(t, m.Update(key(tea.KeyDelete)))
}

func TestUpdate_PasteWithNewlines(t *testing.T) {
	m := focused("")
	m.Update(runes("a\r\nb"))
	require.Equal(t, "a\nb", m.Value())
}

func TestUpdate_MouseEscapeFiltered(t *testing.T) {
	m := focused("x")
	require.Nil(t, m.Update(runes("[<65;87;15M")))
	require.Equal(t, "x", m.Value())
}

func TestUpdate_EditClearsSelection(t *testing.T) {
	m := focused("abcdef")
	m.SetSelection(1, 3)

	m.Update(runes("z"))
	_, ok := m.Selection()
	require.False(t, ok)
	require.Equal(t, "azbcdef", m.Value(), "selection text is not replaced")
}

func TestSetSelection_RecordsRawOffsets(t *testing.T) {
	m := New(Config{})
	m.SetValue("short")

	m.SetSelection(3, 400)
	sel, ok := m.Selection()
	require.True(t, ok)
	require.Equal(t, span.Selection{Start: 3, End: 400}, sel)

	view := m.View()
	require.Contains(t, view, "sho"+selectionOn+"rt"+selectionOff)
}

func TestSetSelection_HighlightsSecondLine(t *testing.T) {
	m := New(Config{})
	m.SetValue("let x = 1;\nfn main() {}")
	m.SetSelection(14, 18)

	require.Contains(t, m.View(), "2 fn "+selectionOn+"main"+selectionOff+"() {}")

	row, col := m.Cursor()
	require.Equal(t, 1, row)
	require.Equal(t, 3, col)
	require.Equal(t, 14, m.CursorOffset())
}

func TestView_CursorInsideSelection(t *testing.T) {
	m := focused("let x = 1;\nfn main() {}")
	m.SetSelection(14, 18)

	require.Contains(t, m.View(), selectionOn+cursorOn+"m"+cursorOff+"ain"+selectionOff)
}

func TestView_CursorAtLineEnd(t *testing.T) {
	m := focused("ab")
	m.Update(key(tea.KeyEnd))
	require.Contains(t, m.View(), "ab"+cursorOn+" "+cursorOff)
}

func TestView_ScrollsToSelection(t *testing.T) {
	lines := make([]string, 10)
	for i := range lines {
		lines[i] = fmt.Sprintf("l%d", i)
	}
	m := New(Config{})
	m.SetValue(strings.Join(lines, "\n"))
	m.SetSize(20, 3)

	m.SetSelection(21, 23)

	view := m.View()
	require.Len(t, strings.Split(view, "\n"), 3)
	require.Contains(t, view, " 8 "+selectionOn+"l7"+selectionOff)
	require.NotContains(t, view, "l0")
}

func TestView_HorizontalScrollFollowsCursor(t *testing.T) {
	m := focused(strings.Repeat("a", 30) + "XYZ")
	m.SetSize(12, 1)
	m.Update(key(tea.KeyEnd))

	view := m.View()
	require.Contains(t, view, "XYZ"+cursorOn+" "+cursorOff)
	require.NotContains(t, view, strings.Repeat("a", 10))
}

func TestView_TabsExpand(t *testing.T) {
	m := New(Config{})
	m.SetValue("\tx")
	require.Equal(t, "1     x", m.View())
}

func TestView_Placeholder(t *testing.T) {
	m := New(Config{Placeholder: "type source here"})
	require.Contains(t, m.View(), "type source here")

	m.Focus()
	require.NotContains(t, m.View(), "type source here")
}

func TestClickAt(t *testing.T) {
	m := New(Config{})
	m.SetValue("hello\nworld")
	m.SetSize(20, 5)

	m.ClickAt(4, 1)
	row, col := m.Cursor()
	require.Equal(t, 1, row)
	require.Equal(t, 2, col)

	m.ClickAt(50, 9)
	row, col = m.Cursor()
	require.Equal(t, 1, row)
	require.Equal(t, 5, col)

	m.ClickAt(0, 0)
	row, col = m.Cursor()
	require.Equal(t, 0, row)
	require.Equal(t, 0, col)
}

func TestFocusBlur(t *testing.T) {
	m := New(Config{})
	require.False(t, m.Focused())
	m.Focus()
	require.True(t, m.Focused())
	m.Blur()
	require.False(t, m.Focused())
}
