// Package highlight maps the span under the pointer to a selection in the
// source editor.
package highlight

import (
	"github.com/zjrosen/irscope/internal/log"
	"github.com/zjrosen/irscope/internal/span"
)

// Surface is the source-editing surface a highlight is sent to.
type Surface interface {
	Focus()
	SetSelection(start, end int)
}

// Coordinator owns the single hover slot. It is not safe for concurrent
// use; the root model calls it from the update loop only.
type Coordinator struct {
	surface Surface
	hovered *span.Span
}

// New returns a coordinator that drives surface.
func New(surface Surface) *Coordinator {
	return &Coordinator{surface: surface}
}

// OnHover records s as the hovered span and selects its range in the
// surface. A nil span clears the slot and leaves the surface alone.
func (c *Coordinator) OnHover(s *span.Span) {
	if s == nil {
		c.hovered = nil
		return
	}

	held := *s
	c.hovered = &held

	if c.surface == nil {
		return
	}
	sel := held.Selection()
	c.surface.Focus()
	c.surface.SetSelection(sel.Start, sel.End)
	log.Debug(log.CatHover, "selection", "start", sel.Start, "end", sel.End)
}

// Hovered returns the last hovered span, if any.
func (c *Coordinator) Hovered() (span.Span, bool) {
	if c.hovered == nil {
		return span.Span{}, false
	}
	return *c.hovered, true
}

// IsHovered reports whether s is the span currently in the slot.
func (c *Coordinator) IsHovered(s span.Span) bool {
	return c.hovered != nil && *c.hovered == s
}
