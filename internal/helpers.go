package internal

import (
	"math"
	"strconv"
)

// ContextValue returns a typed value stored with Context.Set.
func ContextValue[T any](c Context, key any) T {
	if v, ok := c.Get(key).(T); ok {
		return v
	}
	var zero T
	return zero
}

// ParamAs returns a top-level parameter converted to T. JSON numbers
// become int or int64 when integral; strings from the query string are
// parsed. It reports false when the key is missing or cannot be converted.
//
//	page, ok := fnhttp.ParamAs[int](c, "page")
func ParamAs[T string | int | int64 | float64 | bool](c Context, key string) (T, bool) {
	v, ok := c.Param(key)
	if !ok {
		var zero T
		return zero, false
	}
	return convertParam[T](v)
}

// ParamOr is ParamAs with a fallback.
func ParamOr[T string | int | int64 | float64 | bool](c Context, key string, def T) T {
	if v, ok := ParamAs[T](c, key); ok {
		return v
	}
	return def
}

func convertParam[T string | int | int64 | float64 | bool](raw any) (T, bool) {
	var zero T
	var out any
	switch any(zero).(type) {
	case string:
		s, ok := raw.(string)
		if !ok {
			return zero, false
		}
		out = s
	case int:
		n, ok := toInt(raw)
		if !ok || n != int64(int(n)) {
			return zero, false
		}
		out = int(n)
	case int64:
		n, ok := toInt(raw)
		if !ok {
			return zero, false
		}
		out = n
	case float64:
		switch v := raw.(type) {
		case float64:
			out = v
		case string:
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return zero, false
			}
			out = f
		default:
			return zero, false
		}
	case bool:
		switch v := raw.(type) {
		case bool:
			out = v
		case string:
			b, err := strconv.ParseBool(v)
			if err != nil {
				return zero, false
			}
			out = b
		default:
			return zero, false
		}
	default:
		return zero, false
	}
	return out.(T), true
}

func toInt(raw any) (int64, bool) {
	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) || v > math.MaxInt64 || v < math.MinInt64 {
			return 0, false
		}
		return int64(v), true
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		return n, err == nil
	}
	return 0, false
}
