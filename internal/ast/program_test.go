package ast

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProgram_PairTables(t *testing.T) {
	raw := `{
		"data_types": [["int32", {"size": 4}]],
		"custom_types": [["Foo", {"value": {"fields": []}, "span": {"start": {"abs": 1, "row": 0, "column": 1}, "end": {"abs": 9, "row": 0, "column": 9}}}]],
		"functions": [["main", {"value": {"name": "main"}}]],
		"require_main": true
	}`

	var p Program
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	require.Len(t, p.DataTypes, 1)
	require.Equal(t, "int32", p.DataTypes[0].Name)
	require.Len(t, p.CustomTypes, 1)
	require.Equal(t, "Foo", p.CustomTypes[0].Name)
	require.True(t, p.CustomTypes[0].Node.HasSpan())
	require.Len(t, p.Functions, 1)
	require.Equal(t, "main", p.Functions[0].Name)
	require.True(t, p.RequireMain)
}

func TestProgram_ObjectTables(t *testing.T) {
	raw := `{"custom_types": {"Bar": {"a": 1}, "Baz": {"b": 2}}, "functions": {}, "require_main": false}`

	var p Program
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	require.Len(t, p.CustomTypes, 2)
	require.Equal(t, "Bar", p.CustomTypes[0].Name)
	require.Equal(t, "Baz", p.CustomTypes[1].Name)
	require.Empty(t, p.Functions)
	require.False(t, p.RequireMain)
}

func TestProgram_BareNodeFunctions(t *testing.T) {
	raw := `{"functions": [{"value": {"name": "baz"}}, {"name": "qux"}, {"value": {}}]}`

	var p Program
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	require.Len(t, p.Functions, 3)
	require.Equal(t, "baz", p.Functions[0].Name)
	require.Equal(t, "qux", p.Functions[1].Name)
	require.Equal(t, "2", p.Functions[2].Name)
}

func TestProgram_Errors(t *testing.T) {
	var p Program
	require.Error(t, json.Unmarshal([]byte(`[1]`), &p))
	require.Error(t, json.Unmarshal([]byte(`{"functions": 3}`), &p))
	require.Error(t, json.Unmarshal([]byte(`{"require_main": "yes"}`), &p))
}

func TestProgram_MissingTablesAreEmpty(t *testing.T) {
	p, err := ProgramFrom(Map())
	require.NoError(t, err)
	require.Empty(t, p.CustomTypes)
	require.Empty(t, p.Functions)
	require.False(t, p.RequireMain)
}
