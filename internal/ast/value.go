// Package ast models the compiler's AST as a tagged variant and provides the
// normalization pass that prepares it for display.
package ast

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/zjrosen/irscope/internal/span"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindSequence
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// SpanField is the field name the compiler uses for position metadata.
const SpanField = "span"

// Field is a single key/value entry of a map. Maps keep the field order of
// the compiler's output.
type Field struct {
	Key   string
	Value Value
}

// Value is an arbitrary AST value. The zero Value is Null.
type Value struct {
	kind   Kind
	b      bool
	num    string // number literal text, kept verbatim
	str    string
	items  []Value
	fields []Field
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number wraps a number literal. The text is not validated.
func Number(text string) Value { return Value{kind: KindNumber, num: text} }

// Int wraps an integer.
func Int(n int) Value { return Number(strconv.Itoa(n)) }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Seq builds a sequence. A nil or empty items slice yields an empty sequence.
func Seq(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindSequence, items: items}
}

// Map builds a map with the given fields in order.
func Map(fields ...Field) Value {
	if fields == nil {
		fields = []Field{}
	}
	return Value{kind: KindMap, fields: fields}
}

// F is shorthand for constructing a Field.
func F(key string, v Value) Field { return Field{Key: key, Value: v} }

// Kind returns the variant of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// BoolValue returns the boolean payload.
func (v Value) BoolValue() bool { return v.b }

// NumberText returns the number literal as written by the compiler.
func (v Value) NumberText() string { return v.num }

// Int returns the number as an int when it is integral.
func (v Value) Int() (int, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	n, err := strconv.Atoi(v.num)
	if err != nil {
		f, ferr := strconv.ParseFloat(v.num, 64)
		if ferr != nil || f != float64(int(f)) {
			return 0, false
		}
		return int(f), true
	}
	return n, true
}

// Str returns the string payload.
func (v Value) Str() string { return v.str }

// Items returns the elements of a sequence.
func (v Value) Items() []Value { return v.items }

// Fields returns the fields of a map in order.
func (v Value) Fields() []Field { return v.fields }

// Len returns the element count of a sequence or the field count of a map.
func (v Value) Len() int {
	switch v.kind {
	case KindSequence:
		return len(v.items)
	case KindMap:
		return len(v.fields)
	default:
		return 0
	}
}

// IsContainer reports whether v is a sequence or a map.
func (v Value) IsContainer() bool {
	return v.kind == KindSequence || v.kind == KindMap
}

// Get returns the value of the named field of a map.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindMap {
		return Value{}, false
	}
	for _, f := range v.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

// HasSpan reports whether v is a map carrying a span field.
func (v Value) HasSpan() bool {
	_, ok := v.Get(SpanField)
	return ok
}

// Span decodes the span field of a map. It returns false when there is no
// span field or it does not have the {start, end} shape.
func (v Value) Span() (span.Span, bool) {
	raw, ok := v.Get(SpanField)
	if !ok {
		return span.Span{}, false
	}
	return SpanOf(raw)
}

// SpanOf interprets v itself as a span value.
func SpanOf(v Value) (span.Span, bool) {
	start, ok := v.Get("start")
	if !ok {
		return span.Span{}, false
	}
	end, ok := v.Get("end")
	if !ok {
		return span.Span{}, false
	}
	sp, ok1 := positionOf(start)
	ep, ok2 := positionOf(end)
	if !ok1 || !ok2 {
		return span.Span{}, false
	}
	return span.Span{Start: sp, End: ep}, true
}

func positionOf(v Value) (span.Position, bool) {
	absV, ok := v.Get("abs")
	if !ok {
		return span.Position{}, false
	}
	abs, ok := absV.Int()
	if !ok {
		return span.Position{}, false
	}
	var p span.Position
	p.Abs = abs
	if r, ok := v.Get("row"); ok {
		p.Row, _ = r.Int()
	}
	if c, ok := v.Get("column"); ok {
		p.Column, _ = c.Int()
	}
	return p, true
}

// Equal reports deep equality, including map field order.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindNumber:
		return a.num == b.num
	case KindString:
		return a.str == b.str
	case KindSequence:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(a.fields) != len(b.fields) {
			return false
		}
		for i := range a.fields {
			if a.fields[i].Key != b.fields[i].Key || !Equal(a.fields[i].Value, b.fields[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

// Decode parses a JSON document into a Value, preserving object key order.
func Decode(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, err
	}
	if dec.More() {
		return Value{}, fmt.Errorf("decoding value: trailing data")
	}
	return v, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	decoded, err := Decode(data)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, fmt.Errorf("decoding value: %w", err)
	}
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return Number(t.String()), nil
	case string:
		return String(t), nil
	case json.Delim:
		switch t {
		case '[':
			items := []Value{}
			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, fmt.Errorf("decoding sequence: %w", err)
			}
			return Seq(items...), nil
		case '{':
			fields := []Field{}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, fmt.Errorf("decoding map key: %w", err)
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("decoding map key: unexpected %v", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				fields = append(fields, F(key, val))
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, fmt.Errorf("decoding map: %w", err)
			}
			return Map(fields...), nil
		}
	}
	return Value{}, fmt.Errorf("decoding value: unexpected token %v", tok)
}

// MarshalJSON implements json.Marshaler, preserving field order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, v Value) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.b))
	case KindNumber:
		if v.num == "" {
			buf.WriteString("0")
		} else {
			buf.WriteString(v.num)
		}
	case KindString:
		b, err := json.Marshal(v.str)
		if err != nil {
			return err
		}
		buf.Write(b)
	case KindSequence:
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeValue(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindMap:
		buf.WriteByte('{')
		for i, f := range v.fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			k, err := json.Marshal(f.Key)
			if err != nil {
				return err
			}
			buf.Write(k)
			buf.WriteByte(':')
			if err := encodeValue(buf, f.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("encoding value: unknown kind %d", v.kind)
	}
	return nil
}

// Compact renders v as single-line JSON. Encoding failures fall back to the
// kind name so callers never have to handle an error for display.
func (v Value) Compact() string {
	b, err := v.MarshalJSON()
	if err != nil {
		return v.kind.String()
	}
	return string(b)
}
