// Package payload reads values out of decoded JSON documents without trusting their shape.
package payload

import (
	"encoding/json"
	"math"
	"strings"
)

// Object is a decoded JSON object.
type Object = map[string]any

// Resolve walks a dotted path through nested objects. It returns fallback when a
// segment is missing, when an intermediate value is not an object, or when the
// final value is null.
func Resolve(obj any, path string, fallback any) any {
	cur := obj
	for _, key := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok || m == nil {
			return fallback
		}
		next, exists := m[key]
		if !exists {
			return fallback
		}
		cur = next
	}
	if cur == nil {
		return fallback
	}
	return cur
}

// ObjectAt resolves path and returns it only when it is a non-nil object.
func ObjectAt(obj any, path string) (Object, bool) {
	m, ok := Resolve(obj, path, nil).(map[string]any)
	if !ok || m == nil {
		return nil, false
	}
	return m, true
}

// Truthy reports whether a JSON value counts as present for shape detection:
// null, false, zero and the empty string do not.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0 && !math.IsNaN(t)
	case json.Number:
		f, err := t.Float64()
		return err != nil || (f != 0 && !math.IsNaN(f))
	case int:
		return t != 0
	case int64:
		return t != 0
	default:
		return true
	}
}
