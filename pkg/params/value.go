package params

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"

	json "github.com/goccy/go-json"
)

// Run-time type tags reported by TypeOf.
const (
	KindString  = "string"
	KindNumber  = "number"
	KindBoolean = "boolean"
	KindObject  = "object"
	KindArray   = "array"
	KindNull    = "null"
)

// Normalize converts a Go value into the bag representation:
// numbers become float64, maps become *Object (keys sorted), slices become []any.
// Values that already are bag values are returned as is.
func Normalize(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case bool, string, float64, *Object:
		return t
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = Normalize(item)
		}
		return out
	case map[string]any:
		o := NewObject()
		for _, k := range sortedKeys(t) {
			o.Set(k, Normalize(t[k]))
		}
		return o
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case int:
		return float64(t)
	case int8:
		return float64(t)
	case int16:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case uint:
		return float64(t)
	case uint8:
		return float64(t)
	case uint16:
		return float64(t)
	case uint32:
		return float64(t)
	case uint64:
		return float64(t)
	case float32:
		return float64(t)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = Normalize(rv.Index(i).Interface())
		}
		return out
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	default:
		return v
	}
}

// TypeOf returns the run-time type tag of a bag value.
func TypeOf(v any) string {
	switch Normalize(v).(type) {
	case nil:
		return KindNull
	case string:
		return KindString
	case float64:
		return KindNumber
	case bool:
		return KindBoolean
	case *Object:
		return KindObject
	case []any:
		return KindArray
	default:
		return fmt.Sprintf("%T", v)
	}
}

// Equal reports primitive equality of two values after normalization.
// Objects and arrays are never equal to anything, including themselves.
func Equal(a, b any) bool {
	na, nb := Normalize(a), Normalize(b)
	switch x := na.(type) {
	case nil:
		return nb == nil
	case string:
		y, ok := nb.(string)
		return ok && x == y
	case float64:
		y, ok := nb.(float64)
		return ok && x == y
	case bool:
		y, ok := nb.(bool)
		return ok && x == y
	default:
		return false
	}
}

// Format renders a bag value the way it appears in messages.
func Format(v any) string {
	switch t := Normalize(v).(type) {
	case nil:
		return "null"
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
