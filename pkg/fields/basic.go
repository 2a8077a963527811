package fields

import (
	"fmt"
	"slices"

	"github.com/goliatone/go-alfasim-sdk/pkg/validation"
)

// String is a one-line text input.
type String struct {
	common
	value string
}

// NewString builds a String field with a default value.
func NewString(caption, value string, opts ...Option) (*String, error) {
	cfg := newConfig(opts)
	f := &String{value: value}
	if err := build(KindString, cfg.commonChecks(caption, &f.common)); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *String) Kind() Kind    { return KindString }
func (f *String) Value() string { return f.value }

// WithValue returns a copy of f holding value.
func (f *String) WithValue(value string) *String {
	cp := *f
	cp.value = value
	return &cp
}

func (f *String) Equal(other Field) bool {
	o, ok := other.(*String)
	return ok && f.common.equal(o.base()) && f.value == o.value
}

// Boolean is a checkbox.
type Boolean struct {
	common
	value bool
}

// NewBoolean builds a Boolean field with a default value.
func NewBoolean(caption string, value bool, opts ...Option) (*Boolean, error) {
	cfg := newConfig(opts)
	f := &Boolean{value: value}
	if err := build(KindBoolean, cfg.commonChecks(caption, &f.common)); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Boolean) Kind() Kind  { return KindBoolean }
func (f *Boolean) Value() bool { return f.value }

// WithValue returns a copy of f holding value.
func (f *Boolean) WithValue(value bool) *Boolean {
	cp := *f
	cp.value = value
	return &cp
}

func (f *Boolean) Equal(other Field) bool {
	o, ok := other.(*Boolean)
	return ok && f.common.equal(o.base()) && f.value == o.value
}

// Enum is a drop-down of string options. Values keep their declaration
// order.
type Enum struct {
	common
	values     []string
	initial    string
	hasInitial bool
}

// NewEnum builds an Enum. Use WithInitial to preselect one of values.
func NewEnum(caption string, values []string, opts ...Option) (*Enum, error) {
	cfg := newConfig(opts)
	f := &Enum{
		values:     slices.Clone(values),
		initial:    cfg.initial,
		hasInitial: cfg.initialSet,
	}
	checks := append(cfg.commonChecks(caption, &f.common),
		validation.NonEmptyList("values", f.values, "strings"),
		func() error {
			for _, value := range f.values {
				if value == "" {
					return &validation.FieldError{
						Attr:    "values",
						Kind:    validation.ErrEmpty,
						Message: `Enum type cannot have an empty string on field "values"`,
					}
				}
			}
			return nil
		},
		validation.Unique("values", f.values),
		func() error {
			if f.hasInitial && !slices.Contains(f.values, f.initial) {
				return &validation.FieldError{
					Attr:     "initial",
					Kind:     validation.ErrNotMember,
					Expected: "one of values",
					Actual:   validation.Describe(f.initial),
					Message:  "The initial condition must be within the declared values",
				}
			}
			return nil
		},
	)
	if err := build(KindEnum, checks); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Enum) Kind() Kind       { return KindEnum }
func (f *Enum) Values() []string { return slices.Clone(f.values) }

// Initial returns the preselected value and whether one was declared.
func (f *Enum) Initial() (string, bool) { return f.initial, f.hasInitial }

// Selected is the value the host shows first: the initial value when
// declared, otherwise the first option.
func (f *Enum) Selected() string {
	if f.hasInitial {
		return f.initial
	}
	return f.values[0]
}

// WithSelected returns a copy of f with value preselected. value must be one
// of the declared values.
func (f *Enum) WithSelected(value string) (*Enum, error) {
	if !slices.Contains(f.values, value) {
		return nil, fmt.Errorf("fields: %s: %w", KindEnum, &validation.FieldError{
			Attr:     "initial",
			Kind:     validation.ErrNotMember,
			Expected: "one of values",
			Actual:   validation.Describe(value),
			Message:  "The initial condition must be within the declared values",
		})
	}
	cp := *f
	cp.values = slices.Clone(f.values)
	cp.initial, cp.hasInitial = value, true
	return &cp, nil
}

func (f *Enum) Equal(other Field) bool {
	o, ok := other.(*Enum)
	return ok && f.common.equal(o.base()) &&
		slices.Equal(f.values, o.values) &&
		f.hasInitial == o.hasInitial &&
		f.initial == o.initial
}
