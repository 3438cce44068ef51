package ast

import (
	"fmt"
	"strconv"
)

// Entry is a named top-level declaration.
type Entry struct {
	Name string
	Node Value
}

// Program is the AST root of a successful compile.
type Program struct {
	DataTypes   []Entry
	CustomTypes []Entry
	Functions   []Entry
	RequireMain bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Program) UnmarshalJSON(data []byte) error {
	v, err := Decode(data)
	if err != nil {
		return err
	}
	prog, err := ProgramFrom(v)
	if err != nil {
		return err
	}
	*p = prog
	return nil
}

// ProgramFrom interprets a decoded value as a Program.
//
// Each declaration table may be an array of [name, node] pairs, an object
// keyed by name, or an array of bare nodes. Bare nodes are named after their
// "name" field (directly or under "value") and otherwise after their index.
func ProgramFrom(v Value) (Program, error) {
	if v.Kind() != KindMap {
		return Program{}, fmt.Errorf("decoding program: expected map, got %s", v.Kind())
	}

	var p Program
	var err error
	if p.DataTypes, err = tableField(v, "data_types"); err != nil {
		return Program{}, err
	}
	if p.CustomTypes, err = tableField(v, "custom_types"); err != nil {
		return Program{}, err
	}
	if p.Functions, err = tableField(v, "functions"); err != nil {
		return Program{}, err
	}
	if rm, ok := v.Get("require_main"); ok {
		switch rm.Kind() {
		case KindBool:
			p.RequireMain = rm.BoolValue()
		case KindNull:
		default:
			return Program{}, fmt.Errorf("decoding program: require_main must be bool, got %s", rm.Kind())
		}
	}
	return p, nil
}

func tableField(v Value, key string) ([]Entry, error) {
	t, ok := v.Get(key)
	if !ok {
		return nil, nil
	}
	entries, err := table(t)
	if err != nil {
		return nil, fmt.Errorf("decoding program %s: %w", key, err)
	}
	return entries, nil
}

func table(v Value) ([]Entry, error) {
	switch v.Kind() {
	case KindNull:
		return nil, nil
	case KindMap:
		entries := make([]Entry, 0, v.Len())
		for _, f := range v.Fields() {
			entries = append(entries, Entry{Name: f.Key, Node: f.Value})
		}
		return entries, nil
	case KindSequence:
		entries := make([]Entry, 0, v.Len())
		for i, item := range v.Items() {
			entries = append(entries, entryOf(i, item))
		}
		return entries, nil
	default:
		return nil, fmt.Errorf("expected sequence or map, got %s", v.Kind())
	}
}

func entryOf(index int, item Value) Entry {
	if item.Kind() == KindSequence && item.Len() == 2 && item.Items()[0].Kind() == KindString {
		return Entry{Name: item.Items()[0].Str(), Node: item.Items()[1]}
	}
	if name, ok := declName(item); ok {
		return Entry{Name: name, Node: item}
	}
	return Entry{Name: strconv.Itoa(index), Node: item}
}

func declName(item Value) (string, bool) {
	if n, ok := item.Get("name"); ok && n.Kind() == KindString {
		return n.Str(), true
	}
	if inner, ok := item.Get("value"); ok {
		if n, ok := inner.Get("name"); ok && n.Kind() == KindString {
			return n.Str(), true
		}
	}
	return "", false
}
