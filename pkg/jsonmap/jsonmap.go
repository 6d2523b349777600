package jsonmap

import (
	"encoding/json"
	"math"
	"strconv"
)

// Map is a decoded JSON object.
type Map = map[string]any

// Clone returns a deep copy of a decoded JSON value.
// Maps and slices are copied recursively, scalars are returned as is.
func Clone(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return CloneMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Clone(item)
		}
		return out
	case []map[string]any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = CloneMap(item)
		}
		return out
	case []string:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = item
		}
		return out
	default:
		return val
	}
}

// CloneMap returns a deep copy of m. A nil map stays nil.
func CloneMap(m Map) Map {
	if m == nil {
		return nil
	}
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = Clone(v)
	}
	return out
}

// Object returns v as a JSON object when it is one.
func Object(v any) (Map, bool) {
	m, ok := v.(map[string]any)
	return m, ok && m != nil
}

// Key renders a JSON value used as an identifier in its canonical string form.
// Numbers decoded as float64 are printed without a fractional part when they are
// integral, so a translation_id of 44 becomes "44" and matches object keys.
func Key(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case float64:
		if val == math.Trunc(val) && !math.IsInf(val, 0) {
			return strconv.FormatInt(int64(val), 10), true
		}
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case json.Number:
		return val.String(), true
	default:
		return "", false
	}
}

// Strings returns the string items of a decoded JSON array.
// Non-string items are skipped. The second value reports whether v was a list.
func Strings(v any) ([]string, bool) {
	switch val := v.(type) {
	case []string:
		return val, true
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := Key(item); ok {
				out = append(out, s)
			}
		}
		return out, true
	default:
		return nil, false
	}
}

// String returns m[key] when it holds a string.
func String(m Map, key string) string {
	s, _ := m[key].(string)
	return s
}
