package validation

import (
	"fmt"
	"math"
)

// The coercion helpers below accept loosely typed values, as produced by a
// YAML or JSON decoder, and either return the typed value or a
// type-mismatch FieldError naming attr.

// String requires value to be a string.
func String(attr string, value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", TypeMismatch(attr, "'str'", value)
	}
	return s, nil
}

// Bool requires value to be a bool.
func Bool(attr string, value any) (bool, error) {
	b, ok := value.(bool)
	if !ok {
		return false, TypeMismatch(attr, "'bool'", value)
	}
	return b, nil
}

// Real requires value to be an integer or floating point number. Booleans
// and numeric strings are rejected.
func Real(attr string, value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int8:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint8:
		return float64(v), nil
	case uint16:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	default:
		return 0, TypeMismatch(attr, "a real number", value)
	}
}

// Int requires value to be an integral number.
func Int(attr string, value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case int32:
		return int(v), nil
	case uint64:
		return int(v), nil
	case float64:
		if v == math.Trunc(v) {
			return int(v), nil
		}
	}
	return 0, TypeMismatch(attr, "'int'", value)
}

// Strings requires value to be a list whose items are all strings.
func Strings(attr string, value any) ([]string, error) {
	switch v := value.(type) {
	case []string:
		return append([]string(nil), v...), nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, &FieldError{
					Attr:    attr,
					Kind:    ErrTypeMismatch,
					Message: fmt.Sprintf("%s must be a list of strings, the item '%v' is a '%T'", attr, item, item),
				}
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, &FieldError{
			Attr:    attr,
			Kind:    ErrTypeMismatch,
			Message: fmt.Sprintf("%s must be a list, got a '%T'.", attr, value),
		}
	}
}

// Map requires value to be a string-keyed mapping.
func Map(attr string, value any) (map[string]any, error) {
	m, ok := value.(map[string]any)
	if !ok {
		return nil, TypeMismatch(attr, "a mapping", value)
	}
	return m, nil
}

// List requires value to be a list.
func List(attr string, value any) ([]any, error) {
	l, ok := value.([]any)
	if !ok {
		return nil, &FieldError{
			Attr:    attr,
			Kind:    ErrTypeMismatch,
			Message: fmt.Sprintf("%s must be a list, got a '%T'.", attr, value),
		}
	}
	return l, nil
}
