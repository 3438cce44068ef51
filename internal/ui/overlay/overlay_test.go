package overlay

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func background(width, height int) string {
	lines := make([]string, height)
	for i := range lines {
		lines[i] = strings.Repeat(".", width)
	}
	return strings.Join(lines, "\n")
}

func TestPlace_Center(t *testing.T) {
	out := Place(10, 5, "ab\ncd", background(10, 5))
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 5)
	require.Equal(t, "..........", lines[0])
	require.Equal(t, "....ab....", lines[1])
	require.Equal(t, "....cd....", lines[2])
	require.Equal(t, "..........", lines[3])
}

func TestPlace_ForegroundWiderThanScreen(t *testing.T) {
	out := Place(4, 1, "abcdef", "....")
	require.Equal(t, "abcdef", out)
}

func TestPlace_ShortBackgroundPadded(t *testing.T) {
	out := Place(6, 3, "xy", "")
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 3)
	require.Equal(t, "  xy  ", lines[1])
}

func TestPlace_PreservesStyledBackground(t *testing.T) {
	bg := "\x1b[31m" + strings.Repeat("r", 8) + "\x1b[0m"
	out := Place(8, 1, "XX", bg)

	require.Contains(t, out, "\x1b[31m")
	require.Contains(t, out, "XX")
}

func TestPlaceBottom(t *testing.T) {
	out := PlaceBottom(10, 5, 1, "ab", background(10, 5))
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 5)
	require.Equal(t, "....ab....", lines[3])
	require.Equal(t, "..........", lines[4])
	require.Equal(t, "..........", lines[0])
}

func TestPlaceBottom_TallerThanScreen(t *testing.T) {
	out := PlaceBottom(4, 2, 1, "a\nb\nc", "....\n....")
	require.Equal(t, ".a..\n.b..", out)
}
