package irview

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Op is the kind of a diff line.
type Op int

const (
	OpEqual Op = iota
	OpInsert
	OpDelete
)

// DiffLine is one line of a line-level diff.
type DiffLine struct {
	Op   Op
	Text string
}

// LineDiff compares old and current line by line.
func LineDiff(old, current string) []DiffLine {
	if old == current {
		out := make([]DiffLine, 0)
		for _, l := range splitLines(current) {
			out = append(out, DiffLine{Op: OpEqual, Text: l})
		}
		return out
	}

	dmp := diffmatchpatch.New()
	a, b, table := dmp.DiffLinesToChars(terminate(old), terminate(current))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), table)

	var out []DiffLine
	for _, d := range diffs {
		op := OpEqual
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			op = OpInsert
		case diffmatchpatch.DiffDelete:
			op = OpDelete
		}
		for _, l := range splitLines(d.Text) {
			out = append(out, DiffLine{Op: op, Text: l})
		}
	}
	return out
}

// terminate ends s with a newline so the last line compares equal to the
// same line followed by more text.
func terminate(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
