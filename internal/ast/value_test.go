package ast

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/irscope/internal/span"
)

func TestDecode_PreservesFieldOrder(t *testing.T) {
	v, err := Decode([]byte(`{"zeta": 1, "alpha": [true, null, "s"], "mid": {"b": 2.5, "a": -1}}`))
	require.NoError(t, err)

	require.Equal(t, KindMap, v.Kind())
	keys := []string{}
	for _, f := range v.Fields() {
		keys = append(keys, f.Key)
	}
	require.Equal(t, []string{"zeta", "alpha", "mid"}, keys)

	alpha, ok := v.Get("alpha")
	require.True(t, ok)
	require.Equal(t, 3, alpha.Len())
	require.True(t, alpha.Items()[0].BoolValue())
	require.True(t, alpha.Items()[1].IsNull())
	require.Equal(t, "s", alpha.Items()[2].Str())

	mid, _ := v.Get("mid")
	b, _ := mid.Get("b")
	require.Equal(t, "2.5", b.NumberText())
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode([]byte(`{"a": }`))
	require.Error(t, err)

	_, err = Decode([]byte(`[1, 2`))
	require.Error(t, err)

	_, err = Decode([]byte(`1 2`))
	require.Error(t, err)
}

func TestValue_MarshalRoundTripKeepsOrder(t *testing.T) {
	raw := `{"b":1,"a":["x",false,null],"c":{}}`
	v, err := Decode([]byte(raw))
	require.NoError(t, err)
	require.Equal(t, raw, v.Compact())
}

func TestValue_UnmarshalInsideStruct(t *testing.T) {
	var holder struct {
		Value Value `json:"value"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"value":{"Ident":"foo"}}`), &holder))

	ident, ok := holder.Value.Get("Ident")
	require.True(t, ok)
	require.Equal(t, "foo", ident.Str())
}

func TestValue_Span(t *testing.T) {
	v, err := Decode([]byte(`{"name":"f","span":{"start":{"abs":10,"row":2,"column":1},"end":{"abs":14,"row":2,"column":5}}}`))
	require.NoError(t, err)

	require.True(t, v.HasSpan())
	s, ok := v.Span()
	require.True(t, ok)
	require.Equal(t, span.Span{
		Start: span.Position{Abs: 10, Row: 2, Column: 1},
		End:   span.Position{Abs: 14, Row: 2, Column: 5},
	}, s)
}

func TestValue_SpanMalformed(t *testing.T) {
	v := Map(F("span", String("oops")))
	require.True(t, v.HasSpan())
	_, ok := v.Span()
	require.False(t, ok)

	_, ok = String("x").Span()
	require.False(t, ok)
}

func TestValue_Int(t *testing.T) {
	n, ok := Number("12").Int()
	require.True(t, ok)
	require.Equal(t, 12, n)

	n, ok = Number("3.0").Int()
	require.True(t, ok)
	require.Equal(t, 3, n)

	_, ok = Number("3.5").Int()
	require.False(t, ok)

	_, ok = String("3").Int()
	require.False(t, ok)
}

func TestEqual(t *testing.T) {
	a := Map(F("x", Int(1)), F("y", Seq(String("a"))))
	b := Map(F("x", Int(1)), F("y", Seq(String("a"))))
	c := Map(F("y", Seq(String("a"))), F("x", Int(1)))

	require.True(t, Equal(a, b))
	require.False(t, Equal(a, c), "field order is significant")
	require.False(t, Equal(Int(1), String("1")))
}

func TestKind_String(t *testing.T) {
	require.Equal(t, "sequence", KindSequence.String())
	require.Equal(t, "unknown", Kind(99).String())
}
