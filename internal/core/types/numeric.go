// Package types provides safe numeric coercion for values read from the
// store or typed by a user. Stored quantities arrive with uneven types
// (ints, floats, text, NULL) depending on how the row was written, so
// every coercion defaults instead of failing.
package types

import (
	"regexp"
	"strconv"
	"strings"

	"medstock/internal/core/apperror"
)

// editIntPattern is the validation rule for integer field edits:
// an optional sign followed by digits.
var editIntPattern = regexp.MustCompile(`^[+-]?\d+$`)

// ParseEditInt validates and parses user-typed integer input.
// Returns an INVALID_INPUT error on anything but an optional sign
// followed by digits; the caller must keep the prior value.
func ParseEditInt(field, raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if !editIntPattern.MatchString(s) {
		return 0, apperror.NewInvalidInput(field, "enter a whole integer").WithDetail("raw", raw)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, apperror.NewInvalidInput(field, "enter a whole integer").WithCause(err)
	}
	return n, nil
}

// CoerceInt converts a raw store value to int, defaulting to 0 when the
// value is NULL or unparsable. Floats truncate toward zero.
func CoerceInt(v any) int {
	switch x := v.(type) {
	case nil:
		return 0
	case int:
		return x
	case int32:
		return int(x)
	case int64:
		return int(x)
	case float32:
		return int(x)
	case float64:
		return int(x)
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0
		}
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(f)
		}
		return 0
	default:
		return 0
	}
}

// CoerceFloat converts a raw store value to float64, defaulting to 0.
func CoerceFloat(v any) float64 {
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
		return 0
	default:
		return 0
	}
}

// CoerceString converts a raw store value to string, defaulting to "".
func CoerceString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		return ""
	}
}
