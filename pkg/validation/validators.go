package validation

import (
	"fmt"
	"math"
	"strings"

	"github.com/goliatone/go-alfasim-sdk/pkg/units"
)

// Check is a single deferred predicate. Constructors assemble an ordered list
// of checks and Run them; the first failure is the reported diagnostic.
type Check func() error

// Run evaluates checks in order and returns the first error.
func Run(checks ...Check) error {
	for _, check := range checks {
		if check == nil {
			continue
		}
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

// NonEmptyString fails when value is blank after trimming.
func NonEmptyString(attr, value string) Check {
	return func() error {
		if strings.TrimSpace(value) == "" {
			return Empty(attr)
		}
		return nil
	}
}

// NonEmptyStrings fails on the first blank element of values.
func NonEmptyStrings(attr string, values []string) Check {
	return func() error {
		for _, value := range values {
			if strings.TrimSpace(value) == "" {
				return &FieldError{
					Attr:    attr,
					Kind:    ErrEmpty,
					Message: fmt.Sprintf("%s cannot contain an empty string", attr),
				}
			}
		}
		return nil
	}
}

// NonEmptyList fails when values has no elements.
func NonEmptyList[T any](attr string, values []T, element string) Check {
	return func() error {
		if len(values) == 0 {
			return &FieldError{
				Attr:    attr,
				Kind:    ErrEmpty,
				Message: fmt.Sprintf("%s must be a list with %s.", attr, element),
			}
		}
		return nil
	}
}

// Unique fails on the first repeated value.
func Unique(attr string, values []string) Check {
	return func() error {
		seen := make(map[string]struct{}, len(values))
		for _, value := range values {
			if _, ok := seen[value]; ok {
				return &FieldError{
					Attr:    attr,
					Kind:    ErrDuplicate,
					Message: fmt.Sprintf("%s must not repeat %q", attr, value),
				}
			}
			seen[value] = struct{}{}
		}
		return nil
	}
}

// OneOf fails when value is not in allowed.
func OneOf(attr, value string, allowed []string) Check {
	return func() error {
		for _, candidate := range allowed {
			if candidate == value {
				return nil
			}
		}
		return &FieldError{
			Attr:     attr,
			Kind:     ErrNotMember,
			Expected: fmt.Sprintf("one of [%s]", strings.Join(allowed, ", ")),
			Actual:   fmt.Sprintf("%q", value),
		}
	}
}

// KnownUnit fails when unit does not resolve to a category of db. A nil db
// selects units.Default().
func KnownUnit(db *units.Database, attr, unit string) Check {
	return func() error {
		if db == nil {
			db = units.Default()
		}
		if strings.TrimSpace(unit) == "" {
			return Empty(attr)
		}
		if _, ok := db.DefaultCategory(unit); !ok {
			return &FieldError{
				Attr:    attr,
				Kind:    ErrUnknownUnit,
				Message: fmt.Sprintf("%s is not a valid unit", unit),
			}
		}
		return nil
	}
}

// Finite fails on NaN and infinities.
func Finite(attr string, value float64) Check {
	return func() error {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return &FieldError{
				Attr:     attr,
				Kind:     ErrNotMember,
				Expected: "a finite number",
				Actual:   fmt.Sprint(value),
			}
		}
		return nil
	}
}

// NonNegative fails when value is below zero.
func NonNegative(attr string, value int) Check {
	return func() error {
		if value < 0 {
			return &FieldError{
				Attr:     attr,
				Kind:     ErrNotMember,
				Expected: "a non-negative integer",
				Actual:   fmt.Sprint(value),
			}
		}
		return nil
	}
}
