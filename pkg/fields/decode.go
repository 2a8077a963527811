package fields

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-alfasim-sdk/pkg/validation"
)

// Resolver maps ref_type names found in declarations to RefTypes. The
// manifest loader resolves names against the schemas it has built.
type Resolver interface {
	ResolveRefType(name string) (RefType, bool)
}

// ResolverFunc adapts a function into a Resolver.
type ResolverFunc func(name string) (RefType, bool)

func (fn ResolverFunc) ResolveRefType(name string) (RefType, bool) { return fn(name) }

var allowedAttrs = map[Kind][]string{
	KindString:            {"value"},
	KindBoolean:           {"value"},
	KindEnum:              {"values", "initial"},
	KindQuantity:          {"value", "unit"},
	KindTableColumn:       {"id", "value"},
	KindTable:             {"rows"},
	KindReference:         {"ref_type", "container_type"},
	KindMultipleReference: {"ref_type", "container_type"},
	KindDataReference:     {"value"},
}

// ParseKind resolves a `type` discriminator.
func ParseKind(value string) (Kind, bool) {
	kind := Kind(strings.ToLower(strings.TrimSpace(value)))
	_, ok := allowedAttrs[kind]
	return kind, ok
}

// Decode builds a field of kind from a loosely typed attribute map such as
// one produced by a YAML decoder. Values are checked at runtime and a wrong
// type fails with a type mismatch naming the attribute. Textual enable rules
// are read from `enable_expr`. resolver may be nil when no data models are
// referenced.
func Decode(kind Kind, attrs map[string]any, resolver Resolver, opts ...Option) (Field, error) {
	allowed, ok := allowedAttrs[kind]
	if !ok {
		return nil, fmt.Errorf("fields: unknown field type %q", kind)
	}
	if err := checkKeys(kind, attrs, allowed); err != nil {
		return nil, err
	}

	d := decoder{kind: kind, attrs: attrs, resolver: resolver}
	rule, err := d.enableRule()
	if err != nil {
		return nil, err
	}
	opts = append(opts, rule...)

	switch kind {
	case KindString:
		return d.decodeString(opts)
	case KindBoolean:
		return d.decodeBoolean(opts)
	case KindEnum:
		return d.decodeEnum(opts)
	case KindQuantity:
		return d.decodeQuantity(opts)
	case KindTableColumn:
		return asField[*TableColumn](d.decodeTableColumn(attrs, opts))
	case KindTable:
		return d.decodeTable(opts)
	case KindReference, KindMultipleReference:
		return d.decodeReference(opts)
	default:
		return d.decodeDataReference(opts)
	}
}

func checkKeys(kind Kind, attrs map[string]any, allowed []string) error {
	var unknown []string
	for key := range attrs {
		if key == "enable_expr" || (key == "caption" && kind != KindTableColumn) {
			continue
		}
		known := false
		for _, candidate := range allowed {
			if candidate == key {
				known = true
				break
			}
		}
		if !known {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return fmt.Errorf("fields: %s: unknown attribute(s) %s", kind, strings.Join(unknown, ", "))
}

type decoder struct {
	kind     Kind
	attrs    map[string]any
	resolver Resolver
}

func (d decoder) wrap(err error) error {
	return fmt.Errorf("fields: %s: %w", d.kind, err)
}

func (d decoder) enableRule() ([]Option, error) {
	raw, present := d.attrs["enable_expr"]
	if !present {
		return nil, nil
	}
	text, err := validation.String("enable_expr", raw)
	if err != nil {
		return nil, d.wrap(err)
	}
	return []Option{WithEnableRule(text)}, nil
}

func (d decoder) required(attr string) (any, error) {
	value, ok := d.attrs[attr]
	if !ok {
		return nil, d.wrap(&validation.FieldError{
			Attr:    attr,
			Kind:    validation.ErrTypeMismatch,
			Message: fmt.Sprintf("missing required attribute '%s'", attr),
		})
	}
	return value, nil
}

func (d decoder) string(attr string) (string, error) {
	raw, err := d.required(attr)
	if err != nil {
		return "", err
	}
	s, err := validation.String(attr, raw)
	if err != nil {
		return "", d.wrap(err)
	}
	return s, nil
}

func (d decoder) caption() (string, error) {
	return d.string("caption")
}

func (d decoder) decodeString(opts []Option) (Field, error) {
	caption, err := d.caption()
	if err != nil {
		return nil, err
	}
	value, err := d.string("value")
	if err != nil {
		return nil, err
	}
	return asField[*String](NewString(caption, value, opts...))
}

func (d decoder) decodeBoolean(opts []Option) (Field, error) {
	caption, err := d.caption()
	if err != nil {
		return nil, err
	}
	raw, err := d.required("value")
	if err != nil {
		return nil, err
	}
	value, err := validation.Bool("value", raw)
	if err != nil {
		return nil, d.wrap(err)
	}
	return asField[*Boolean](NewBoolean(caption, value, opts...))
}

func (d decoder) decodeEnum(opts []Option) (Field, error) {
	caption, err := d.caption()
	if err != nil {
		return nil, err
	}
	raw, err := d.required("values")
	if err != nil {
		return nil, err
	}
	values, err := validation.Strings("values", raw)
	if err != nil {
		return nil, d.wrap(err)
	}
	if initial, ok := d.attrs["initial"]; ok && initial != nil {
		s, err := validation.String("initial", initial)
		if err != nil {
			return nil, d.wrap(err)
		}
		opts = append(opts, WithInitial(s))
	}
	return asField[*Enum](NewEnum(caption, values, opts...))
}

func (d decoder) decodeQuantity(opts []Option) (Field, error) {
	q, err := d.quantity(d.attrs, opts)
	if err != nil {
		return nil, err
	}
	return q, nil
}

func (d decoder) quantity(attrs map[string]any, opts []Option) (*Quantity, error) {
	sub := decoder{kind: KindQuantity, attrs: attrs}
	caption, err := sub.caption()
	if err != nil {
		return nil, err
	}
	raw, err := sub.required("value")
	if err != nil {
		return nil, err
	}
	value, err := validation.Real("value", raw)
	if err != nil {
		return nil, sub.wrap(err)
	}
	unit, err := sub.string("unit")
	if err != nil {
		return nil, err
	}
	return NewQuantity(caption, value, unit, opts...)
}

func (d decoder) decodeTableColumn(attrs map[string]any, opts []Option) (*TableColumn, error) {
	sub := decoder{kind: KindTableColumn, attrs: attrs}
	id, err := sub.string("id")
	if err != nil {
		return nil, err
	}
	raw, err := sub.required("value")
	if err != nil {
		return nil, err
	}
	nested, ok := raw.(map[string]any)
	if !ok {
		return nil, sub.wrap(&validation.FieldError{
			Attr:     "value",
			Kind:     validation.ErrTypeMismatch,
			Expected: "a Quantity",
			Actual:   validation.Describe(raw),
			Message:  fmt.Sprintf("value must be a Quantity, got a '%T'.", raw),
		})
	}
	if err := checkKeys(KindQuantity, nested, allowedAttrs[KindQuantity]); err != nil {
		return nil, err
	}
	nestedRule, err := decoder{kind: KindQuantity, attrs: nested}.enableRule()
	if err != nil {
		return nil, err
	}
	q, err := d.quantity(nested, append(unitsOnly(opts), nestedRule...))
	if err != nil {
		return nil, err
	}
	return NewTableColumn(id, q, opts...)
}

func (d decoder) decodeTable(opts []Option) (Field, error) {
	caption, err := d.caption()
	if err != nil {
		return nil, err
	}
	raw, err := d.required("rows")
	if err != nil {
		return nil, err
	}
	items, err := validation.List("rows", raw)
	if err != nil {
		return nil, d.wrap(err)
	}
	rows := make([]*TableColumn, 0, len(items))
	for i, item := range items {
		attrs, ok := item.(map[string]any)
		if !ok {
			return nil, d.wrap(&validation.FieldError{
				Attr:    "rows",
				Kind:    validation.ErrTypeMismatch,
				Message: "rows must be a list of TableColumn.",
			})
		}
		if err := checkKeys(KindTableColumn, attrs, allowedAttrs[KindTableColumn]); err != nil {
			return nil, fmt.Errorf("rows[%d]: %w", i, err)
		}
		rowRule, err := decoder{kind: KindTableColumn, attrs: attrs}.enableRule()
		if err != nil {
			return nil, fmt.Errorf("rows[%d]: %w", i, err)
		}
		column, err := d.decodeTableColumn(attrs, append(unitsOnly(opts), rowRule...))
		if err != nil {
			return nil, fmt.Errorf("rows[%d]: %w", i, err)
		}
		rows = append(rows, column)
	}
	return asField[*Table](NewTable(caption, rows, opts...))
}

func (d decoder) decodeReference(opts []Option) (Field, error) {
	caption, err := d.caption()
	if err != nil {
		return nil, err
	}

	var refType any
	if raw, ok := d.attrs["ref_type"]; ok {
		refType = raw
		if name, isString := raw.(string); isString && strings.TrimSpace(name) != "" {
			refType = d.resolve(name)
		}
	}
	if raw, ok := d.attrs["container_type"]; ok {
		container, err := validation.String("container_type", raw)
		if err != nil {
			return nil, d.wrap(err)
		}
		opts = append(opts, WithContainerType(container))
	}

	if d.kind == KindMultipleReference {
		return asField[*MultipleReference](NewMultipleReference(caption, refType, opts...))
	}
	return asField[*Reference](NewReference(caption, refType, opts...))
}

// resolve returns the RefType named name or an unknownType, which the
// reference checks reject as a type the SDK does not know.
func (d decoder) resolve(name string) any {
	name = strings.TrimSpace(name)
	if t, ok := BuiltinType(name); ok {
		return t
	}
	if d.resolver != nil {
		if t, ok := d.resolver.ResolveRefType(name); ok {
			return t
		}
	}
	return unknownType(name)
}

func (d decoder) decodeDataReference(opts []Option) (Field, error) {
	caption, err := d.caption()
	if err != nil {
		return nil, err
	}
	var value any
	if raw, ok := d.attrs["value"]; ok {
		value = raw
		if name, isString := raw.(string); isString {
			if t, found := BuiltinType(strings.TrimSpace(name)); found {
				value = t
			}
		}
	}
	return asField[*DataReference](NewDataReference(caption, value, opts...))
}

// unknownType is a named type that is neither built in nor a model.
type unknownType string

func (u unknownType) RefName() string  { return string(u) }
func (u unknownType) RefKind() RefKind { return 0 }

// asField drops typed nil pointers so a failed decode returns a nil Field.
func asField[T Field](f T, err error) (Field, error) {
	if err != nil {
		return nil, err
	}
	return f, nil
}

func unitsOnly(opts []Option) []Option {
	cfg := newConfig(opts)
	if cfg.db == nil {
		return nil
	}
	return []Option{WithUnits(cfg.db)}
}
