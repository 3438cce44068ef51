package highlight

import "github.com/zjrosen/irscope/internal/span"

// HoverMsg reports that the row under the pointer or the keyboard cursor
// changed. Key identifies the row within its pane; Span is nil for rows that
// carry no span.
type HoverMsg struct {
	Key      string
	Span     *span.Span
	Keyboard bool
}
