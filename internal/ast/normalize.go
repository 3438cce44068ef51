package ast

// Normalize strips display noise from a raw AST value: null values, empty
// sequences and maps, and every span field except the outermost one when
// keepOuterSpan is set. The boolean result is false when the whole value
// vanishes. Normalize is pure.
//
// The outer span survives so that hovering a top-level declaration can still
// highlight its whole body.
func Normalize(v Value, keepOuterSpan bool) (Value, bool) {
	switch v.kind {
	case KindNull:
		return Value{}, false

	case KindSequence:
		items := make([]Value, 0, len(v.items))
		for _, item := range v.items {
			if n, ok := Normalize(item, false); ok {
				items = append(items, n)
			}
		}
		if len(items) == 0 {
			return Value{}, false
		}
		return Seq(items...), true

	case KindMap:
		fields := make([]Field, 0, len(v.fields))
		for _, f := range v.fields {
			if f.Key == SpanField {
				if keepOuterSpan {
					fields = append(fields, f)
				}
				continue
			}
			if n, ok := Normalize(f.Value, false); ok {
				fields = append(fields, F(f.Key, n))
			}
		}
		if len(fields) == 0 {
			return Value{}, false
		}
		return Map(fields...), true

	default:
		// Primitives, and any kind this switch does not know, pass through.
		return v, true
	}
}

// NormalizeOrNull is Normalize for display call sites that need a value even
// when everything vanished.
func NormalizeOrNull(v Value, keepOuterSpan bool) Value {
	n, ok := Normalize(v, keepOuterSpan)
	if !ok {
		return Null()
	}
	return n
}
