// Package layout holds the pane-size state of the inspector and updates it
// from resize-handle drags.
package layout

import "math"

// Geometry holds the constants the resize formulas are computed from.
type Geometry struct {
	ColumnMin      float64
	ColumnMax      float64
	ColumnBaseline float64

	RowMin      float64
	RowMax      float64
	RowBudget   float64 // share of the fractional height split by the two rows
	RowBaseline float64

	TerminalBase float64
	TerminalMin  float64

	// AnchorToMidpoint recomputes every split drag from the fixed baselines
	// instead of from the layout captured when the gesture began.
	AnchorToMidpoint bool
}

// DefaultGeometry returns the reference constants, in pixels for the
// terminal track.
func DefaultGeometry() Geometry {
	return Geometry{
		ColumnMin:      0.1,
		ColumnMax:      0.9,
		ColumnBaseline: 0.5,
		RowMin:         0.1,
		RowMax:         0.8,
		RowBudget:      0.67,
		RowBaseline:    0.33,
		TerminalBase:   300,
		TerminalMin:    100,
	}
}

// PaneLayout is the session's pane-size state.
type PaneLayout struct {
	Left, Right float64 // column fractions
	Top, Middle float64 // row fractions
	Terminal    float64 // fixed terminal height
}

// Initial returns the layout a session starts with.
func (g Geometry) Initial() PaneLayout {
	return PaneLayout{
		Left:     g.ColumnBaseline,
		Right:    1 - g.ColumnBaseline,
		Top:      g.RowBaseline,
		Middle:   g.RowBudget - g.RowBaseline,
		Terminal: g.TerminalBase,
	}
}

// ColumnSplit returns the left column fraction after a drag of delta across
// a container of the given width, starting from base.
func (g Geometry) ColumnSplit(base, delta, width float64) float64 {
	return clamp(g.ColumnMin, g.ColumnMax, (width*base+delta)/width)
}

// RowSplit returns the top row fraction after a drag of delta across a
// container of the given height, starting from base.
func (g Geometry) RowSplit(base, delta, height float64) float64 {
	return clamp(g.RowMin, g.RowMax, (height*base+delta)/height)
}

// TerminalHeight returns the terminal height after dragging its handle by
// delta. Dragging down shrinks the terminal.
func (g Geometry) TerminalHeight(base, delta float64) float64 {
	return math.Max(g.TerminalMin, base-delta)
}

func clamp(lo, hi, v float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
