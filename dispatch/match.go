package dispatch

// Generic shape helpers over msgpack's decoded dynamic representation.
// A wire tuple decodes to []any; a wire unit "()" decodes to nil or an
// empty []any depending on the encoder, so isUnit accepts both.

func asTuple(v any) ([]any, bool) {
	t, ok := v.([]any)

	return t, ok
}

func asString(v any) (string, bool) {
	s, ok := v.(string)

	return s, ok
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

func asBool(v any) (bool, bool) {
	b, ok := v.(bool)

	return b, ok
}

func isUnit(v any) bool {
	if v == nil {
		return true
	}
	t, ok := v.([]any)

	return ok && len(t) == 0
}

// clauseValue matches a 3-element clause tuple (field, op, value) against a
// literal field and op, returning the value element.
func clauseValue(v any, field, op string) (any, bool) {
	t, ok := asTuple(v)
	if !ok || len(t) != 3 {
		return nil, false
	}
	f, fok := asString(t[0])
	o, ook := asString(t[1])
	if !fok || !ook || f != field || o != op {
		return nil, false
	}

	return t[2], true
}

// clauseStringValue is clauseValue narrowed to a string payload.
func clauseStringValue(v any, field, op string) (string, bool) {
	raw, ok := clauseValue(v, field, op)
	if !ok {
		return "", false
	}

	return asString(raw)
}
