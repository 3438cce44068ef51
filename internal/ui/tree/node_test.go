package tree

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/irscope/internal/ast"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name string
		in   ast.Value
		want string
	}{
		{"null", ast.Null(), "null"},
		{"true", ast.Bool(true), "true"},
		{"false", ast.Bool(false), "false"},
		{"number", ast.Number("2.5"), "2.5"},
		{"string", ast.String(`say "hi"`), `"say \"hi\""`},
		{"one item", ast.Seq(ast.Int(1)), "[1 item]"},
		{"items", ast.Seq(ast.Int(1), ast.Int(2)), "[2 items]"},
		{"empty map", ast.Map(), "{0 fields}"},
		{"one field", ast.Map(ast.F("a", ast.Int(1))), "{1 field}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Summarize(tt.in))
		})
	}
}

func TestBuild_LabelsAndPaths(t *testing.T) {
	v := ast.Map(
		ast.F("name", ast.String("main")),
		ast.F("args", ast.Seq(ast.String("a"), ast.String("b"))),
	)

	root := Build("main", v)
	require.Equal(t, "main", root.Label)
	require.True(t, root.Expandable())
	require.Len(t, root.Children, 2)

	args := root.Children[1]
	require.Equal(t, "args", args.Label)
	require.Equal(t, 1, args.Depth)
	require.Equal(t, NodePath{1}, args.Path)
	require.Equal(t, "[1]", args.Children[1].Label)
	require.Equal(t, NodePath{1, 1}, args.Children[1].Path)
	require.False(t, args.Children[1].Expandable())
}

func TestBuild_EmptyContainersAreLeaves(t *testing.T) {
	require.False(t, Build("x", ast.Seq()).Expandable())
	require.False(t, Build("x", ast.Map()).Expandable())
}

func TestBuild_Spans(t *testing.T) {
	good := Build("f", ast.Map(ast.F("span", spanValue(2, 9))))
	require.True(t, good.HasSpan())
	s, ok := good.Span()
	require.True(t, ok)
	require.Equal(t, 2, s.Start.Abs)
	require.Equal(t, 9, s.End.Abs)

	bad := Build("f", ast.Map(ast.F("span", ast.String("oops"))))
	require.True(t, bad.HasSpan())
	_, ok = bad.Span()
	require.False(t, ok)

	none := Build("f", ast.Map(ast.F("x", ast.Int(1))))
	require.False(t, none.HasSpan())
}

func TestNodePath_ChildDoesNotAlias(t *testing.T) {
	base := make(NodePath, 1, 8)
	a := base.Child(1)
	b := base.Child(2)

	require.Equal(t, NodePath{0, 1}, a)
	require.Equal(t, NodePath{0, 2}, b)
	require.Equal(t, "0.1", a.String())
	require.Equal(t, "", NodePath{}.String())
}

func TestWalk_DisplayOrder(t *testing.T) {
	root := Build("r", ast.Map(
		ast.F("a", ast.Seq(ast.Int(1))),
		ast.F("b", ast.Int(2)),
	))

	var labels []string
	root.Walk(func(n *Node) { labels = append(labels, n.Label) })
	require.Equal(t, []string{"r", "a", "[0]", "b"}, labels)
}
