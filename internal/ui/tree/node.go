package tree

import (
	"strconv"
	"strings"

	"github.com/zjrosen/irscope/internal/ast"
	"github.com/zjrosen/irscope/internal/span"
)

// NodePath addresses a node by child indices from its root.
type NodePath []int

// Child returns a new path one level below p.
func (p NodePath) Child(i int) NodePath {
	out := make(NodePath, len(p)+1)
	copy(out, p)
	out[len(p)] = i
	return out
}

// String renders the path as dot-separated indices.
func (p NodePath) String() string {
	parts := make([]string, len(p))
	for i, idx := range p {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, ".")
}

// key is the map key used for expand state.
func (p NodePath) key() string {
	return p.String()
}

// Node is one entry of the rendered tree. Children are built eagerly; the
// tree is read-only once built.
type Node struct {
	Label    string
	Value    ast.Value
	Path     NodePath
	Depth    int
	Children []*Node

	hasSpan bool // the value is a map with a span field
	span    span.Span
	spanOK  bool // the span field decoded into a Span
}

// Build builds the tree for v with the given root label.
func Build(label string, v ast.Value) *Node {
	return buildAt(label, v, NodePath{}, 0)
}

func buildAt(label string, v ast.Value, path NodePath, depth int) *Node {
	n := &Node{
		Label:   label,
		Value:   v,
		Path:    path,
		Depth:   depth,
		hasSpan: v.HasSpan(),
	}
	if n.hasSpan {
		n.span, n.spanOK = v.Span()
	}

	switch v.Kind() {
	case ast.KindSequence:
		for i, item := range v.Items() {
			n.Children = append(n.Children, buildAt("["+strconv.Itoa(i)+"]", item, path.Child(i), depth+1))
		}
	case ast.KindMap:
		for i, f := range v.Fields() {
			n.Children = append(n.Children, buildAt(f.Key, f.Value, path.Child(i), depth+1))
		}
	}
	return n
}

// Expandable reports whether the node has children to show.
func (n *Node) Expandable() bool {
	return len(n.Children) > 0
}

// HasSpan reports whether the node's value carries a span field, decodable
// or not.
func (n *Node) HasSpan() bool {
	return n.hasSpan
}

// Span returns the node's source span when it carries a well-formed one.
func (n *Node) Span() (span.Span, bool) {
	return n.span, n.spanOK
}

// Summary is the one-line rendering of the node's value.
func (n *Node) Summary() string {
	return Summarize(n.Value)
}

// Summarize renders a value the way a tree row shows it: primitives as
// literals, containers by their size.
func Summarize(v ast.Value) string {
	switch v.Kind() {
	case ast.KindNull:
		return "null"
	case ast.KindBool:
		if v.BoolValue() {
			return "true"
		}
		return "false"
	case ast.KindNumber:
		return v.NumberText()
	case ast.KindString:
		return strconv.Quote(v.Str())
	case ast.KindSequence:
		return plural(v.Len(), "item", "items", "[", "]")
	case ast.KindMap:
		return plural(v.Len(), "field", "fields", "{", "}")
	default:
		return v.Compact()
	}
}

func plural(n int, one, many, open, close string) string {
	word := many
	if n == 1 {
		word = one
	}
	return open + strconv.Itoa(n) + " " + word + close
}

// Walk calls fn for n and every descendant in display order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}
