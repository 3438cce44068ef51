package compiler

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

const fixture = `{
	"tokens": [
		{"value": "Fn", "span": {"start": {"abs": 0, "row": 0, "column": 0}, "end": {"abs": 2, "row": 0, "column": 2}}},
		{"value": {"Ident": "main"}, "span": {"start": {"abs": 3, "row": 0, "column": 3}, "end": {"abs": 7, "row": 0, "column": 7}}},
		{"value": "LParen", "span": {"start": {"abs": 7, "row": 0, "column": 7}, "end": {"abs": 8, "row": 0, "column": 8}}},
		{"value": "RParen", "span": {"start": {"abs": 8, "row": 0, "column": 8}, "end": {"abs": 9, "row": 0, "column": 9}}},
		{"value": "LBrace", "span": {"start": {"abs": 10, "row": 0, "column": 10}, "end": {"abs": 14, "row": 0, "column": 14}}}
	],
	"ast": {
		"data_types": [],
		"custom_types": [],
		"functions": [["main", {"value": {"name": "main", "body": []}, "span": {"start": {"abs": 0, "row": 0, "column": 0}, "end": {"abs": 16, "row": 1, "column": 1}}}]],
		"require_main": true
	},
	"ir": "define i32 @main() {\n  ret i32 0\n}\n"
}`

func TestDecode_Fixture(t *testing.T) {
	res, err := Decode([]byte(fixture))
	require.NoError(t, err)

	require.Len(t, res.Tokens, 5)
	require.Equal(t, "Fn", res.Tokens[0].Value.Str())
	ident, ok := res.Tokens[1].Value.Get("Ident")
	require.True(t, ok)
	require.Equal(t, "main", ident.Str())
	require.Equal(t, 10, res.Tokens[4].Span.Start.Abs)
	require.Equal(t, 14, res.Tokens[4].Span.End.Abs)

	require.Empty(t, res.AST.CustomTypes)
	require.Len(t, res.AST.Functions, 1)
	require.Equal(t, "main", res.AST.Functions[0].Name)
	require.True(t, res.AST.RequireMain)
	require.Contains(t, res.IR, "define i32 @main()")
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode([]byte("not json"))
	require.Error(t, err)
}

func TestFailure_Lines(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		want []string
	}{
		{name: "single", msg: "line 3: unexpected token", want: []string{"line 3: unexpected token"}},
		{name: "trailing newline", msg: "a\nb\n", want: []string{"a", "b"}},
		{name: "crlf", msg: "a\r\nb\r\n", want: []string{"a", "b"}},
		{name: "keeps inner blank", msg: "a\n\nb", want: []string{"a", "", "b"}},
		{name: "empty", msg: "", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, (&Failure{Message: tt.msg}).Lines())
		})
	}
}

func TestAsFailure(t *testing.T) {
	f := &Failure{Message: "bad"}
	require.Same(t, f, AsFailure(fmt.Errorf("wrapped: %w", f)))
	require.Equal(t, "plain", AsFailure(errors.New("plain")).Message)
}
