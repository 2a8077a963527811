package fields

import (
	"fmt"
	"slices"

	"github.com/goliatone/go-alfasim-sdk/pkg/units"
	"github.com/goliatone/go-alfasim-sdk/pkg/validation"
)

// Quantity is a real number with a unit. The unit category is derived from
// the unit database.
type Quantity struct {
	common
	value float64
	unit  string
	db    *units.Database
}

// NewQuantity builds a Quantity. unit must be known to the unit database
// (units.Default unless WithUnits is given).
func NewQuantity(caption string, value float64, unit string, opts ...Option) (*Quantity, error) {
	cfg := newConfig(opts)
	f := &Quantity{value: value, unit: unit, db: cfg.units()}
	checks := append(cfg.commonChecks(caption, &f.common),
		validation.Finite("value", value),
		validation.KnownUnit(f.db, "unit", unit),
	)
	if err := build(KindQuantity, checks); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Quantity) Kind() Kind     { return KindQuantity }
func (f *Quantity) Value() float64 { return f.value }
func (f *Quantity) Unit() string   { return f.unit }

// Category returns the default category of the unit.
func (f *Quantity) Category() string {
	category, _ := f.db.DefaultCategory(f.unit)
	return category
}

// Scalar returns the default as a units.Scalar.
func (f *Quantity) Scalar() units.Scalar {
	s, err := f.db.Scalar(f.value, f.unit, "")
	if err != nil {
		return units.Scalar{}
	}
	return s
}

// WithValue returns a copy of f holding value in the same unit.
func (f *Quantity) WithValue(value float64) (*Quantity, error) {
	if err := validation.Run(validation.Finite("value", value)); err != nil {
		return nil, fmt.Errorf("fields: %s: %w", KindQuantity, err)
	}
	cp := *f
	cp.value = value
	return &cp, nil
}

// WithScalar returns a copy of f holding value in unit. unit must belong to
// the category of the declared unit.
func (f *Quantity) WithScalar(value float64, unit string) (*Quantity, error) {
	category := f.Category()
	err := validation.Run(
		validation.Finite("value", value),
		validation.KnownUnit(f.db, "unit", unit),
		func() error {
			if _, ok := f.db.Lookup(category, unit); !ok {
				return &validation.FieldError{
					Attr:     "unit",
					Kind:     validation.ErrNotMember,
					Expected: fmt.Sprintf("a unit of category %s", category),
					Actual:   validation.Describe(unit),
				}
			}
			return nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("fields: %s: %w", KindQuantity, err)
	}
	cp := *f
	cp.value, cp.unit = value, unit
	return &cp, nil
}

func (f *Quantity) Equal(other Field) bool {
	o, ok := other.(*Quantity)
	return ok && f.common.equal(o.base()) && f.value == o.value && f.unit == o.unit
}

// TableColumn is one column of a Table. Its caption is the caption of its
// Quantity.
type TableColumn struct {
	common
	id    string
	value *Quantity
}

// NewTableColumn builds a column identified by id holding value.
func NewTableColumn(id string, value *Quantity, opts ...Option) (*TableColumn, error) {
	cfg := newConfig(opts)
	f := &TableColumn{id: id, value: value}
	checks := []validation.Check{
		validation.NonEmptyString("id", id),
		func() error {
			if value == nil {
				return &validation.FieldError{
					Attr:     "value",
					Kind:     validation.ErrTypeMismatch,
					Expected: "a Quantity",
					Actual:   "nil",
					Message:  "value must be a Quantity, got a 'nil'.",
				}
			}
			return nil
		},
	}
	caption := ""
	if value != nil {
		caption = value.Caption()
	}
	checks = append(checks, cfg.commonChecks(caption, &f.common)...)
	if err := build(KindTableColumn, checks); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *TableColumn) Kind() Kind       { return KindTableColumn }
func (f *TableColumn) ID() string       { return f.id }
func (f *TableColumn) Value() *Quantity { return f.value }

// WithScalar returns a copy of f whose quantity holds value in unit.
func (f *TableColumn) WithScalar(value float64, unit string) (*TableColumn, error) {
	q, err := f.value.WithScalar(value, unit)
	if err != nil {
		return nil, err
	}
	cp := *f
	cp.value = q
	return &cp, nil
}

func (f *TableColumn) Equal(other Field) bool {
	o, ok := other.(*TableColumn)
	return ok && f.common.equal(o.base()) && f.id == o.id && f.value.Equal(o.value)
}

// Table is a grid whose columns are TableColumns.
type Table struct {
	common
	rows []*TableColumn
}

// NewTable builds a Table. rows must be non-empty and their ids unique.
func NewTable(caption string, rows []*TableColumn, opts ...Option) (*Table, error) {
	cfg := newConfig(opts)
	f := &Table{rows: slices.Clone(rows)}
	checks := append(cfg.commonChecks(caption, &f.common),
		validation.NonEmptyList("rows", f.rows, "TableColumn"),
		func() error {
			ids := make([]string, 0, len(f.rows))
			for _, row := range f.rows {
				if row == nil {
					return &validation.FieldError{
						Attr:    "rows",
						Kind:    validation.ErrTypeMismatch,
						Message: "rows must be a list of TableColumn.",
					}
				}
				ids = append(ids, row.id)
			}
			return validation.Unique("rows", ids)()
		},
	)
	if err := build(KindTable, checks); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Table) Kind() Kind { return KindTable }

// Rows returns the columns in declaration order.
func (f *Table) Rows() []*TableColumn { return slices.Clone(f.rows) }

// Column looks a column up by id.
func (f *Table) Column(id string) (*TableColumn, bool) {
	for _, row := range f.rows {
		if row.id == id {
			return row, true
		}
	}
	return nil, false
}

func (f *Table) Equal(other Field) bool {
	o, ok := other.(*Table)
	if !ok || !f.common.equal(o.base()) || len(f.rows) != len(o.rows) {
		return false
	}
	for i := range f.rows {
		if !f.rows[i].Equal(o.rows[i]) {
			return false
		}
	}
	return true
}
