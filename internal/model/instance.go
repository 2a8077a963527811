package model

import (
	"fmt"
	"math"
	"slices"

	"github.com/google/uuid"

	"github.com/goliatone/go-alfasim-sdk/pkg/fields"
	"github.com/goliatone/go-alfasim-sdk/pkg/validation"
)

// Instance is a populated record of a schema. Every attribute starts as a
// copy of the schema default; New accepts overrides of the same field kind.
type Instance struct {
	schema *Schema
	values []fields.Field
	items  []Item
	refs   map[string]Selection
	tables map[string]TableData
}

// Selection is the value of a reference attribute: item ids of the
// referenced container, or tracer ids for built-in tracer references.
type Selection struct {
	ContainerKey string
	ItemIDs      []uuid.UUID
	TracerIDs    []int
}

func (s Selection) clone() Selection {
	return Selection{
		ContainerKey: s.ContainerKey,
		ItemIDs:      slices.Clone(s.ItemIDs),
		TracerIDs:    slices.Clone(s.TracerIDs),
	}
}

// Empty reports whether nothing is selected.
func (s Selection) Empty() bool { return len(s.ItemIDs) == 0 && len(s.TracerIDs) == 0 }

// TableData holds the rows of a table attribute keyed by column id. Every
// column has the same number of rows.
type TableData map[string][]float64

func (d TableData) clone() TableData {
	out := make(TableData, len(d))
	for id, values := range d {
		out[id] = slices.Clone(values)
	}
	return out
}

// Rows returns the number of rows.
func (d TableData) Rows() int {
	for _, values := range d {
		return len(values)
	}
	return 0
}

// Item is one element of a container instance.
type Item struct {
	ID       uuid.UUID
	Instance *Instance
}

// New creates an instance of s. Overrides must name attributes of s and hold
// a field of the same kind as the default, with the same enum values, unit
// categories, table columns and reference targets.
func (s *Schema) New(overrides ...Attr) (*Instance, error) {
	inst := &Instance{
		schema: s,
		values: make([]fields.Field, len(s.flat)),
	}
	for i, nf := range s.flat {
		inst.values[i] = nf.Field
	}
	for _, override := range overrides {
		if err := inst.set(override); err != nil {
			return nil, fmt.Errorf("model %s: %w", s.name, err)
		}
	}
	return inst, nil
}

func (inst *Instance) set(attr Attr) error {
	idx, ok := inst.schema.index[attr.Name]
	if !ok {
		return &validation.FieldError{
			Attr:    attr.Name,
			Kind:    validation.ErrNotMember,
			Message: fmt.Sprintf("'%s' is not an attribute of %s", attr.Name, inst.schema.name),
		}
	}

	field, ok := asField(attr.Member)
	if !ok {
		return invalidMember(attr.Name, attr.Member)
	}
	want := inst.values[idx].Kind()
	if field.Kind() != want {
		return &validation.FieldError{
			Attr:     attr.Name,
			Kind:     validation.ErrTypeMismatch,
			Expected: fmt.Sprintf("a %s field", want),
			Actual:   fmt.Sprintf("a %s field", field.Kind()),
		}
	}
	if err := conforms(attr.Name, inst.schema.flat[idx].Field, field); err != nil {
		return err
	}
	inst.values[idx] = field
	return nil
}

// conforms checks that field can stand in for the schema default def: the
// same enum values, units of the same category, the same table columns and
// the same reference target.
func conforms(name string, def, field fields.Field) error {
	mismatch := func(expected, actual string) error {
		return &validation.FieldError{
			Attr:     name,
			Kind:     validation.ErrTypeMismatch,
			Expected: expected,
			Actual:   actual,
		}
	}
	switch d := def.(type) {
	case *fields.Enum:
		f := field.(*fields.Enum)
		if !slices.Equal(d.Values(), f.Values()) {
			return mismatch(fmt.Sprintf("values %v", d.Values()), fmt.Sprintf("values %v", f.Values()))
		}
	case *fields.Quantity:
		return sameCategory(mismatch, d, field.(*fields.Quantity))
	case *fields.TableColumn:
		f := field.(*fields.TableColumn)
		if d.ID() != f.ID() {
			return mismatch("column "+d.ID(), "column "+f.ID())
		}
		return sameCategory(mismatch, d.Value(), f.Value())
	case *fields.Table:
		want, got := d.Rows(), field.(*fields.Table).Rows()
		if len(want) != len(got) {
			return mismatch(fmt.Sprintf("%d column(s)", len(want)), fmt.Sprintf("%d column(s)", len(got)))
		}
		for i := range want {
			if want[i].ID() != got[i].ID() {
				return mismatch("column "+want[i].ID(), "column "+got[i].ID())
			}
			if err := sameCategory(mismatch, want[i].Value(), got[i].Value()); err != nil {
				return err
			}
		}
	case *fields.Reference:
		f := field.(*fields.Reference)
		return sameTarget(mismatch, d.RefType(), d.ContainerType(), f.RefType(), f.ContainerType())
	case *fields.MultipleReference:
		f := field.(*fields.MultipleReference)
		return sameTarget(mismatch, d.RefType(), d.ContainerType(), f.RefType(), f.ContainerType())
	case *fields.DataReference:
		f := field.(*fields.DataReference)
		if d.Value().RefName() != f.Value().RefName() {
			return mismatch(d.Value().RefName(), f.Value().RefName())
		}
	}
	return nil
}

func sameCategory(mismatch func(string, string) error, def, q *fields.Quantity) error {
	if def.Category() != q.Category() {
		return mismatch("a "+def.Category()+" unit", fmt.Sprintf("%q (%s)", q.Unit(), q.Category()))
	}
	return nil
}

func sameTarget(mismatch func(string, string) error, defType fields.RefType, defContainer string, refType fields.RefType, container string) error {
	if defType.RefName() != refType.RefName() || defType.RefKind() != refType.RefKind() {
		return mismatch("a reference to "+defType.RefName(), "a reference to "+refType.RefName())
	}
	if defContainer != container {
		return mismatch("container "+defContainer, "container "+container)
	}
	return nil
}

// Replace swaps the field of an attribute for another of the same kind.
func (inst *Instance) Replace(name string, field fields.Field) error {
	if err := inst.set(Attr{Name: name, Member: field}); err != nil {
		return fmt.Errorf("model %s: %w", inst.schema.name, err)
	}
	return nil
}

// Select stores the selection of a Reference or MultipleReference
// attribute. A Reference holds at most one entry. References to data models
// select item ids of their container_type; built-in references select
// tracer ids.
func (inst *Instance) Select(name string, sel Selection) error {
	field, ok := inst.Get(name)
	if !ok {
		return inst.notMember(name)
	}

	var refType fields.RefType
	var container string
	single := false
	switch f := field.(type) {
	case *fields.Reference:
		refType, container, single = f.RefType(), f.ContainerType(), true
	case *fields.MultipleReference:
		refType, container = f.RefType(), f.ContainerType()
	default:
		return fmt.Errorf("model %s: %w", inst.schema.name, &validation.FieldError{
			Attr:     name,
			Kind:     validation.ErrTypeMismatch,
			Expected: "a reference field",
			Actual:   fmt.Sprintf("a %s field", field.Kind()),
		})
	}

	fail := func(format string, args ...any) error {
		return fmt.Errorf("model %s: %w", inst.schema.name, &validation.FieldError{
			Attr:    name,
			Kind:    validation.ErrInvalidReference,
			Message: fmt.Sprintf(format, args...),
		})
	}

	sel = sel.clone()
	if refType.RefKind() == fields.RefBuiltin {
		if len(sel.ItemIDs) > 0 || sel.ContainerKey != "" {
			return fail("'%s' references %s and only accepts tracer ids", name, refType.RefName())
		}
	} else {
		if len(sel.TracerIDs) > 0 {
			return fail("'%s' references %s and only accepts item ids", name, refType.RefName())
		}
		if sel.ContainerKey == "" {
			sel.ContainerKey = container
		}
		if sel.ContainerKey != container {
			return fail("'%s' selects items of %s, got container %s", name, container, sel.ContainerKey)
		}
		for _, id := range sel.ItemIDs {
			if id == uuid.Nil {
				return fail("'%s' selects an empty item id", name)
			}
		}
	}
	if single && len(sel.ItemIDs)+len(sel.TracerIDs) > 1 {
		return fail("'%s' is a single reference", name)
	}

	if inst.refs == nil {
		inst.refs = make(map[string]Selection)
	}
	inst.refs[name] = sel
	return nil
}

// Selection returns the stored selection of a reference attribute.
func (inst *Instance) Selection(name string) (Selection, bool) {
	sel, ok := inst.refs[name]
	if !ok {
		return Selection{}, false
	}
	return sel.clone(), true
}

// SetTable stores the rows of a table attribute. data must hold every
// column of the table with the same number of finite values.
func (inst *Instance) SetTable(name string, data TableData) error {
	field, ok := inst.Get(name)
	if !ok {
		return inst.notMember(name)
	}
	table, ok := field.(*fields.Table)
	if !ok {
		return fmt.Errorf("model %s: %w", inst.schema.name, &validation.FieldError{
			Attr:     name,
			Kind:     validation.ErrTypeMismatch,
			Expected: "a table field",
			Actual:   fmt.Sprintf("a %s field", field.Kind()),
		})
	}

	fail := func(kind error, format string, args ...any) error {
		return fmt.Errorf("model %s: %w", inst.schema.name, &validation.FieldError{
			Attr:    name,
			Kind:    kind,
			Message: fmt.Sprintf(format, args...),
		})
	}
	for id := range data {
		if _, ok := table.Column(id); !ok {
			return fail(validation.ErrNotMember, "'%s' has no column %s", name, id)
		}
	}
	rows := -1
	for _, column := range table.Rows() {
		values, ok := data[column.ID()]
		if !ok {
			return fail(validation.ErrEmpty, "'%s' is missing column %s", name, column.ID())
		}
		if rows >= 0 && len(values) != rows {
			return fail(validation.ErrTypeMismatch, "columns of '%s' must have the same number of rows", name)
		}
		rows = len(values)
		for _, v := range values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fail(validation.ErrTypeMismatch, "column %s of '%s' holds a non-finite value", column.ID(), name)
			}
		}
	}

	if inst.tables == nil {
		inst.tables = make(map[string]TableData)
	}
	inst.tables[name] = data.clone()
	return nil
}

// TableData returns the stored rows of a table attribute.
func (inst *Instance) TableData(name string) (TableData, bool) {
	data, ok := inst.tables[name]
	if !ok {
		return nil, false
	}
	return data.clone(), true
}

func (inst *Instance) notMember(name string) error {
	return fmt.Errorf("model %s: %w", inst.schema.name, &validation.FieldError{
		Attr:    name,
		Kind:    validation.ErrNotMember,
		Message: fmt.Sprintf("'%s' is not an attribute of %s", name, inst.schema.name),
	})
}

// Schema returns the schema the instance was created from.
func (inst *Instance) Schema() *Schema { return inst.schema }

// ModelName returns the schema name.
func (inst *Instance) ModelName() string { return inst.schema.name }

// Get returns the current field of the named attribute.
func (inst *Instance) Get(name string) (fields.Field, bool) {
	idx, ok := inst.schema.index[name]
	if !ok {
		return nil, false
	}
	return inst.values[idx], true
}

// Fields returns the attributes in schema order.
func (inst *Instance) Fields() []NamedField {
	out := make([]NamedField, len(inst.values))
	for i, nf := range inst.schema.flat {
		out[i] = NamedField{Name: nf.Name, Field: inst.values[i]}
	}
	return out
}

// Value returns the plain value of an attribute: string for String and Enum,
// bool for Boolean, float64 for Quantity. Tables and references have no
// plain value.
func (inst *Instance) Value(name string) (any, bool) {
	field, ok := inst.Get(name)
	if !ok {
		return nil, false
	}
	return PlainValue(field)
}

// PlainValue extracts the scalar value carried by a field.
func PlainValue(field fields.Field) (any, bool) {
	switch f := field.(type) {
	case *fields.String:
		return f.Value(), true
	case *fields.Boolean:
		return f.Value(), true
	case *fields.Enum:
		return f.Selected(), true
	case *fields.Quantity:
		return f.Value(), true
	}
	return nil, false
}

// Append adds item to a container instance and returns its new id. item
// must be an instance of the container's model.
func (inst *Instance) Append(item *Instance) (uuid.UUID, error) {
	id := uuid.New()
	if err := inst.AppendWithID(id, item); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// AppendWithID adds item under a known id, as when reading a configuration
// document back.
func (inst *Instance) AppendWithID(id uuid.UUID, item *Instance) error {
	if !inst.schema.IsContainer() {
		return fmt.Errorf("model %s: only container instances hold items", inst.schema.name)
	}
	if item == nil || item.schema != inst.schema.model {
		return fmt.Errorf("model %s: items must be instances of %s", inst.schema.name, inst.schema.model.name)
	}
	if id == uuid.Nil {
		return fmt.Errorf("model %s: item id is required", inst.schema.name)
	}
	if _, exists := inst.Item(id); exists {
		return fmt.Errorf("model %s: item %s already exists", inst.schema.name, id)
	}
	inst.items = append(inst.items, Item{ID: id, Instance: item})
	return nil
}

// Items returns the items of a container instance in insertion order.
func (inst *Instance) Items() []Item { return append([]Item(nil), inst.items...) }

// Item looks an item up by id.
func (inst *Instance) Item(id uuid.UUID) (*Instance, bool) {
	for _, item := range inst.items {
		if item.ID == id {
			return item.Instance, true
		}
	}
	return nil, false
}
