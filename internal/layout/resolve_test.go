package layout

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestResolveTracks_FixedFirst(t *testing.T) {
	got := ResolveTracks([]Track{Fr(0.5), Fixed(1), Fr(0.5)}, 81)
	require.Equal(t, []int{40, 1, 40}, got)
}

func TestResolveTracks_RoundingGoesToLastWeighted(t *testing.T) {
	got := ResolveTracks([]Track{Fr(0.5), Fixed(1), Fr(0.5)}, 80)
	require.Equal(t, []int{39, 1, 40}, got)
}

func TestResolveTracks_FixedCappedByAvailable(t *testing.T) {
	got := ResolveTracks([]Track{Fr(1), Fixed(5), Fixed(10)}, 8)
	require.Equal(t, []int{0, 5, 3}, got)
}

func TestResolveTracks_ZeroWeightSplitsEvenly(t *testing.T) {
	got := ResolveTracks([]Track{Fr(0), Fr(-1)}, 9)
	require.Equal(t, []int{5, 4}, got)
}

func TestPaneLayout_Resolve(t *testing.T) {
	geo := DefaultGeometry()
	geo.TerminalBase = 10
	l := geo.Initial()

	s := l.Resolve(101, 52)
	require.Equal(t, 50, s.Left)
	require.Equal(t, 50, s.Right)
	require.Equal(t, 50, s.ColumnHandleX)
	require.Equal(t, 10, s.Terminal)
	require.Equal(t, 52-10-2, s.Top+s.Middle)
	require.Equal(t, s.Top, s.RowHandleY)
	require.Equal(t, s.Top+1+s.Middle, s.TerminalHandleY)
}

func TestResolveTracks_SumsToTotal(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		total := rapid.IntRange(0, 500).Draw(t, "total")
		n := rapid.IntRange(1, 5).Draw(t, "n")
		tracks := make([]Track, 0, n)
		hasFr := false
		for range n {
			if rapid.Bool().Draw(t, "fixed") {
				tracks = append(tracks, Fixed(rapid.IntRange(0, 50).Draw(t, "size")))
			} else {
				hasFr = true
				tracks = append(tracks, Fr(rapid.Float64Range(-1, 1).Draw(t, "fr")))
			}
		}

		got := ResolveTracks(tracks, total)
		sum := 0
		for _, v := range got {
			if v < 0 {
				t.Fatalf("negative size in %v", got)
			}
			sum += v
		}
		if hasFr && sum != total {
			t.Fatalf("sizes %v sum to %d, want %d", got, sum, total)
		}
		if sum > total {
			t.Fatalf("sizes %v exceed %d", got, total)
		}
	})
}
