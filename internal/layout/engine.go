package layout

import (
	"github.com/zjrosen/irscope/internal/log"
)

// Handle identifies a resize handle.
type Handle int

const (
	HandleColumns  Handle = iota // between the left and right columns
	HandleRows                   // between the top and middle rows
	HandleTerminal               // above the terminal
)

func (h Handle) String() string {
	switch h {
	case HandleColumns:
		return "columns"
	case HandleRows:
		return "rows"
	case HandleTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// Point is a pointer position.
type Point struct{ X, Y int }

// Size is the measured size of the pane container.
type Size struct{ Width, Height int }

// Engine owns the layout and at most one live gesture.
type Engine struct {
	geo    Geometry
	layout PaneLayout
	active *Gesture
}

// NewEngine returns an engine starting from geo's initial layout.
func NewEngine(geo Geometry) *Engine {
	return &Engine{geo: geo, layout: geo.Initial()}
}

// Layout returns the current layout.
func (e *Engine) Layout() PaneLayout { return e.layout }

// Geometry returns the engine's constants.
func (e *Engine) Geometry() Geometry { return e.geo }

// Active returns the live gesture, or nil.
func (e *Engine) Active() *Gesture { return e.active }

// Begin starts a drag on handle. A gesture still alive from a lost release
// is ended first.
func (e *Engine) Begin(handle Handle, origin Point, container Size) *Gesture {
	if e.active != nil {
		log.Debug(log.CatLayout, "ending stale gesture", "handle", e.active.handle)
		e.active.End()
	}
	g := &Gesture{
		engine:    e,
		handle:    handle,
		origin:    origin,
		container: container,
		start:     e.layout,
	}
	e.active = g
	log.Debug(log.CatLayout, "gesture begin", "handle", handle, "x", origin.X, "y", origin.Y)
	return g
}

// Gesture is the capture session of one drag. It records everything the
// formulas need at pointer-down so later moves never re-measure.
type Gesture struct {
	engine    *Engine
	handle    Handle
	origin    Point
	container Size
	start     PaneLayout
	ended     bool
}

// Handle returns the handle being dragged.
func (g *Gesture) Handle() Handle { return g.handle }

// Active reports whether the gesture has not ended.
func (g *Gesture) Active() bool { return !g.ended }

// Move recomputes the layout for the pointer at pt. Moves after End are
// ignored.
func (g *Gesture) Move(pt Point) {
	if g.ended {
		return
	}
	e := g.engine
	geo := e.geo

	switch g.handle {
	case HandleColumns:
		if g.container.Width <= 0 {
			return
		}
		base := geo.ColumnBaseline
		if !geo.AnchorToMidpoint {
			base = columnRatio(g.start)
		}
		rel := geo.ColumnSplit(base, float64(pt.X-g.origin.X), float64(g.container.Width))
		e.layout.Left, e.layout.Right = rel, 1-rel

	case HandleRows:
		if g.container.Height <= 0 {
			return
		}
		base := geo.RowBaseline
		if !geo.AnchorToMidpoint {
			base = g.start.Top
		}
		rel := geo.RowSplit(base, float64(pt.Y-g.origin.Y), float64(g.container.Height))
		e.layout.Top, e.layout.Middle = rel, geo.RowBudget-rel

	case HandleTerminal:
		base := geo.TerminalBase
		if !geo.AnchorToMidpoint {
			base = g.start.Terminal
		}
		e.layout.Terminal = geo.TerminalHeight(base, float64(pt.Y-g.origin.Y))
	}
}

// End disposes the gesture. It is safe to call more than once.
func (g *Gesture) End() {
	if g.ended {
		return
	}
	g.ended = true
	if g.engine.active == g {
		g.engine.active = nil
	}
	log.Debug(log.CatLayout, "gesture end", "handle", g.handle)
}

func columnRatio(l PaneLayout) float64 {
	total := l.Left + l.Right
	if total <= 0 {
		return 0.5
	}
	return l.Left / total
}
