// Package span defines the shared coordinate system used to correlate tokens and
// AST nodes with ranges of the source buffer.
package span

import "fmt"

// Position is a location in source text. Abs counts runes from the start of
// the buffer; Row and Column are zero-based.
type Position struct {
	Abs    int `json:"abs"`
	Row    int `json:"row"`
	Column int `json:"column"`
}

// String renders the position as "row:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Row, p.Column)
}

// Span is a range of source text. Start.Abs <= End.Abs for spans produced by
// the compiler; spans are never mutated after decoding.
type Span struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Selection is a rune range [Start, End) in the source buffer.
type Selection struct {
	Start int
	End   int
}

// Len returns the number of runes covered by the selection.
func (s Selection) Len() int {
	return s.End - s.Start
}

// Empty reports whether the selection covers nothing.
func (s Selection) Empty() bool {
	return s.End <= s.Start
}

// Selection converts the span into an editor selection. No clamping is done:
// a span computed against an older buffer is passed through as-is and the
// editing surface decides what to do with out-of-range offsets.
func (s Span) Selection() Selection {
	return Selection{Start: s.Start.Abs, End: s.End.Abs}
}

// Contains reports whether offset falls inside [Start.Abs, End.Abs).
func (s Span) Contains(offset int) bool {
	return offset >= s.Start.Abs && offset < s.End.Abs
}

// String renders the span as "row:col - row:col".
func (s Span) String() string {
	return s.Start.String() + " - " + s.End.String()
}
