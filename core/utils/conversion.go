package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ToInt64 converts various types to int64. Unparseable values yield 0.
func ToInt64(val any) int64 {
	i, _ := ParseInt64(val)
	return i
}

// ParseInt64 converts val to int64 and reports whether the conversion succeeded.
// Floats are accepted only when they carry no fractional part.
func ParseInt64(val any) (int64, bool) {
	switch v := val.(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case *int64:
		if v == nil {
			return 0, false
		}
		return *v, true
	case int32:
		return int64(v), true
	case int16:
		return int64(v), true
	case int8:
		return int64(v), true
	case uint:
		return int64(v), true
	case uint64:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint8:
		return int64(v), true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int64(v), true
	case float32:
		return ParseInt64(float64(v))
	case string:
		return parseIntString(v)
	case []byte:
		return parseIntString(string(v))
	case nil:
		return 0, false
	default:
		return parseIntString(fmt.Sprintf("%v", v))
	}
}

func parseIntString(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, true
	}
	// JSON decoders hand back "34.0" style values for integral ids.
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == math.Trunc(f) {
		return int64(f), true
	}
	return 0, false
}

// ToFloat converts various types to float64. Unparseable values yield 0.
func ToFloat(val any) float64 {
	switch v := val.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int, int64, int32, int16, int8, uint, uint64, uint32, uint16, uint8:
		return float64(ToInt64(v))
	case string:
		f, _ := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f
	case []byte:
		f, _ := strconv.ParseFloat(strings.TrimSpace(string(v)), 64)
		return f
	case nil:
		return 0
	default:
		f, _ := strconv.ParseFloat(fmt.Sprintf("%v", v), 64)
		return f
	}
}

// ToString converts various types to string. nil becomes the empty string.
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// IsBlank reports whether val is nil or a string that is empty after trimming.
func IsBlank(val any) bool {
	switch v := val.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []byte:
		return strings.TrimSpace(string(v)) == ""
	case *int64:
		return v == nil
	default:
		return false
	}
}
