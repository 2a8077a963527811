package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-alfasim-sdk/pkg/units"
)

// Error kinds. Every FieldError unwraps to exactly one of them so callers can
// branch with errors.Is.
var (
	ErrTypeMismatch     = errors.New("type mismatch")
	ErrEmpty            = errors.New("empty value")
	ErrNotMember        = errors.New("value not allowed")
	ErrUnknownUnit      = units.ErrUnknownUnit
	ErrReservedName     = errors.New("reserved attribute name")
	ErrInvalidField     = errors.New("invalid field type")
	ErrInvalidReference = errors.New("invalid reference")
	ErrDuplicate        = errors.New("duplicate value")
)

// FieldError describes a violated check on a single attribute. Expected and
// Actual are rendered into the message when Message is empty.
type FieldError struct {
	Attr     string
	Kind     error
	Expected string
	Actual   string
	Message  string
}

func (e *FieldError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if msg := strings.TrimSpace(e.Message); msg != "" {
		return msg
	}
	var b strings.Builder
	if e.Attr != "" {
		fmt.Fprintf(&b, "'%s' ", e.Attr)
	}
	switch {
	case e.Expected != "" && e.Actual != "":
		fmt.Fprintf(&b, "must be %s (got %s)", e.Expected, e.Actual)
	case e.Expected != "":
		fmt.Fprintf(&b, "must be %s", e.Expected)
	case e.Kind != nil:
		b.WriteString(e.Kind.Error())
	default:
		b.WriteString("is invalid")
	}
	return b.String()
}

// Unwrap exposes the error kind.
func (e *FieldError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Kind
}

// TypeMismatch builds a FieldError for a wrong runtime type. got is the
// offending value; its Go type is included in the message.
func TypeMismatch(attr, expected string, got any) *FieldError {
	return &FieldError{
		Attr:     attr,
		Kind:     ErrTypeMismatch,
		Expected: expected,
		Actual:   Describe(got),
	}
}

// Empty builds the canonical empty-value error for attr.
func Empty(attr string) *FieldError {
	return &FieldError{
		Attr:    attr,
		Kind:    ErrEmpty,
		Message: fmt.Sprintf("The field %q cannot be empty", attr),
	}
}

// Describe renders a value and its type for diagnostics, e.g. `42 that is a 'int'`.
func Describe(value any) string {
	if value == nil {
		return "nil"
	}
	if s, ok := value.(string); ok {
		return fmt.Sprintf("%q that is a 'string'", s)
	}
	return fmt.Sprintf("%v that is a '%T'", value, value)
}

// AttrOf returns the attribute name carried by err, if any.
func AttrOf(err error) (string, bool) {
	var fieldErr *FieldError
	if errors.As(err, &fieldErr) && fieldErr.Attr != "" {
		return fieldErr.Attr, true
	}
	return "", false
}
