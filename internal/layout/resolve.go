package layout

import "math"

// HandleSize is the thickness of a resize handle in cells.
const HandleSize = 1

// Track is one column or row of the pane grid: a fraction of the space left
// after fixed tracks, or a fixed size.
type Track struct {
	Fraction float64
	Fixed    int
	IsFixed  bool
}

// Fr returns a fractional track.
func Fr(f float64) Track { return Track{Fraction: f} }

// Fixed returns a fixed-size track.
func Fixed(n int) Track { return Track{Fixed: n, IsFixed: true} }

// Columns returns the column tracks: left, handle, right.
func (l PaneLayout) Columns() []Track {
	return []Track{Fr(l.Left), Fixed(HandleSize), Fr(l.Right)}
}

// Rows returns the row tracks: top, handle, middle, handle, terminal.
func (l PaneLayout) Rows() []Track {
	return []Track{
		Fr(l.Top),
		Fixed(HandleSize),
		Fr(l.Middle),
		Fixed(HandleSize),
		Fixed(int(math.Round(l.Terminal))),
	}
}

// Sizes are resolved cell sizes of every pane.
type Sizes struct {
	Left, Right     int
	Top, Middle     int
	Terminal        int
	ColumnHandleX   int // x of the column handle
	RowHandleY      int // y of the handle between top and middle
	TerminalHandleY int // y of the handle above the terminal
	Width, Height   int
}

// Resolve converts the layout into cell sizes for a width x height grid.
func (l PaneLayout) Resolve(width, height int) Sizes {
	cols := ResolveTracks(l.Columns(), width)
	rows := ResolveTracks(l.Rows(), height)
	return Sizes{
		Left:            cols[0],
		Right:           cols[2],
		Top:             rows[0],
		Middle:          rows[2],
		Terminal:        rows[4],
		ColumnHandleX:   cols[0],
		RowHandleY:      rows[0],
		TerminalHandleY: rows[0] + rows[1] + rows[2],
		Width:           width,
		Height:          height,
	}
}

// ResolveTracks distributes total cells over tracks. Fixed tracks are served
// first in order and capped by what is left; the remainder is split by
// fraction weight, negative fractions counting as zero. Cells lost to
// rounding go to the last track with a positive weight.
func ResolveTracks(tracks []Track, total int) []int {
	out := make([]int, len(tracks))
	remaining := max(total, 0)

	for i, t := range tracks {
		if !t.IsFixed {
			continue
		}
		n := min(max(t.Fixed, 0), remaining)
		out[i] = n
		remaining -= n
	}

	var weight float64
	lastFr := -1
	frCount := 0
	for i, t := range tracks {
		if t.IsFixed {
			continue
		}
		weight += math.Max(t.Fraction, 0)
		if lastFr < 0 || t.Fraction > 0 {
			lastFr = i
		}
		frCount++
	}
	if lastFr < 0 {
		return out
	}

	used := 0
	for i, t := range tracks {
		if t.IsFixed {
			continue
		}
		var n int
		if weight > 0 {
			n = int(float64(remaining) * math.Max(t.Fraction, 0) / weight)
		} else {
			n = remaining / frCount
		}
		out[i] = n
		used += n
	}
	out[lastFr] += remaining - used
	return out
}
