package model

import (
	"fmt"
	"reflect"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-alfasim-sdk/pkg/fields"
	"github.com/goliatone/go-alfasim-sdk/pkg/validation"
)

// Builder turns ordered attribute declarations into schemas.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := defaultOptions()
	if options.Labeler != nil {
		opts.Labeler = options.Labeler
	}
	if options.Logger != nil {
		opts.Logger = options.Logger
	}
	return &Builder{opts: opts}
}

// DataModel builds a top-level model.
func (b *Builder) DataModel(name string, meta Meta, attrs ...Attr) (*Schema, error) {
	return b.build(name, fields.RefDataModel, nil, meta, attrs)
}

// ContainerModel builds a container aggregating instances of model, which
// must be a data model.
func (b *Builder) ContainerModel(name string, model *Schema, meta Meta, attrs ...Attr) (*Schema, error) {
	if model == nil {
		return nil, fmt.Errorf("model builder: %s: container model requires a data model", name)
	}
	if model.kind != fields.RefDataModel {
		return nil, fmt.Errorf("model builder: %s: model must be a data model, got %s", name, model)
	}
	return b.build(name, fields.RefContainerModel, model, meta, attrs)
}

func (b *Builder) build(name string, kind fields.RefKind, model *Schema, meta Meta, attrs []Attr) (*Schema, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("model builder: %w", validation.Empty("name"))
	}

	icon, err := normalizeIcon(meta.Icon)
	if err != nil {
		return nil, fmt.Errorf("model builder: %s: %w", name, err)
	}
	caption := strings.TrimSpace(meta.Caption)
	if caption == "" {
		caption = b.opts.Labeler(name)
	}

	schema := &Schema{
		name:    name,
		kind:    kind,
		caption: caption,
		icon:    icon,
		model:   model,
		index:   make(map[string]int),
	}

	for _, base := range meta.Bases {
		if base == nil {
			return nil, fmt.Errorf("model builder: %s: nil base", name)
		}
		if base.kind != fields.RefDataModel {
			return nil, fmt.Errorf("model builder: %s: base %s must be a data model", name, base)
		}
		schema.bases = append(schema.bases, base)
	}

	own, err := collectEntries(attrs)
	if err != nil {
		return nil, fmt.Errorf("model builder: %s: %w", name, err)
	}

	// Own members shadow base members of the same name.
	shadowed := make(map[string]bool)
	for _, entry := range own {
		for _, nf := range flatten(entry) {
			shadowed[nf.Name] = true
		}
	}
	// A base shared by several bases contributes its entries once.
	inherited := make(map[string]origin)
	for _, base := range schema.bases {
		for _, entry := range base.entries {
			if shadowed[entry.Name] {
				continue
			}
			members := flatten(entry)
			shared := 0
			for _, nf := range members {
				prev, ok := inherited[nf.Name]
				if !ok {
					continue
				}
				if prev.field != nf.Field {
					return nil, fmt.Errorf("model builder: %s: %w", name, &validation.FieldError{
						Attr:    nf.Name,
						Kind:    validation.ErrDuplicate,
						Message: fmt.Sprintf("attribute '%s' is declared by bases %s and %s", nf.Name, prev.base, base.name),
					})
				}
				shared++
			}
			if shared == len(members) && shared > 0 {
				continue
			}
			if shared > 0 {
				return nil, fmt.Errorf("model builder: %s: %w", name, &validation.FieldError{
					Attr:    entry.Name,
					Kind:    validation.ErrDuplicate,
					Message: fmt.Sprintf("tab layout '%s' of base %s partially overlaps another base", entry.Name, base.name),
				})
			}
			for _, nf := range members {
				inherited[nf.Name] = origin{base: base.name, field: nf.Field}
			}
			schema.entries = append(schema.entries, entry)
		}
	}
	schema.entries = append(schema.entries, own...)

	for _, entry := range schema.entries {
		for _, nf := range flatten(entry) {
			if _, exists := schema.index[nf.Name]; exists {
				return nil, fmt.Errorf("model builder: %s: %w", name, &validation.FieldError{
					Attr:    nf.Name,
					Kind:    validation.ErrDuplicate,
					Message: fmt.Sprintf("attribute '%s' shadows a tab field of a base", nf.Name),
				})
			}
			schema.index[nf.Name] = len(schema.flat)
			schema.flat = append(schema.flat, nf)
		}
	}

	b.opts.Logger.Debug("schema built",
		zap.String("model", name),
		zap.Stringer("kind", kind),
		zap.Int("attributes", len(schema.flat)),
		zap.Int("bases", len(schema.bases)),
	)
	return schema, nil
}

// collectEntries validates declared members in order. Names starting with
// "__" are skipped.
func collectEntries(attrs []Attr) ([]Entry, error) {
	seen := make(map[string]bool)
	claim := func(name string) error {
		if seen[name] {
			return &validation.FieldError{
				Attr:    name,
				Kind:    validation.ErrDuplicate,
				Message: fmt.Sprintf("attribute '%s' is declared more than once", name),
			}
		}
		seen[name] = true
		return nil
	}

	var entries []Entry
	for _, attr := range attrs {
		name := attr.Name
		skip, err := checkName(name)
		if err != nil {
			return nil, err
		}
		if skip {
			continue
		}

		switch member := attr.Member.(type) {
		case Tabs:
			tabs, err := copyTabs(name, &member, claim)
			if err != nil {
				return nil, err
			}
			entries = append(entries, Entry{Name: name, Tabs: tabs})
		case *Tabs:
			if member == nil {
				return nil, invalidMember(name, attr.Member)
			}
			tabs, err := copyTabs(name, member, claim)
			if err != nil {
				return nil, err
			}
			entries = append(entries, Entry{Name: name, Tabs: tabs})
		default:
			field, ok := asField(attr.Member)
			if !ok {
				return nil, invalidMember(name, attr.Member)
			}
			if err := claim(name); err != nil {
				return nil, err
			}
			entries = append(entries, Entry{Name: name, Field: field})
		}
	}
	return entries, nil
}

func copyTabs(name string, tabs *Tabs, claim func(string) error) (*Tabs, error) {
	if len(tabs.Tabs) == 0 {
		return nil, &validation.FieldError{
			Attr:    name,
			Kind:    validation.ErrEmpty,
			Message: fmt.Sprintf("tab layout '%s' must declare at least one Tab", name),
		}
	}
	if err := claim(name); err != nil {
		return nil, err
	}
	out := &Tabs{Tabs: make([]Tab, 0, len(tabs.Tabs))}
	for _, tab := range tabs.Tabs {
		if strings.TrimSpace(tab.Caption) == "" {
			return nil, &validation.FieldError{
				Attr:    name,
				Kind:    validation.ErrEmpty,
				Message: fmt.Sprintf("tabs of '%s' need a caption", name),
			}
		}
		copied := Tab{Caption: tab.Caption}
		for _, attr := range tab.Attrs {
			skip, err := checkName(attr.Name)
			if err != nil {
				return nil, err
			}
			if skip {
				continue
			}
			field, ok := asField(attr.Member)
			if !ok {
				return nil, invalidMember(attr.Name, attr.Member)
			}
			if err := claim(attr.Name); err != nil {
				return nil, err
			}
			copied.Attrs = append(copied.Attrs, Attr{Name: attr.Name, Member: field})
		}
		out.Tabs = append(out.Tabs, copied)
	}
	return out, nil
}

// origin records which base first contributed an inherited field.
type origin struct {
	base  string
	field fields.Field
}

func flatten(entry Entry) []NamedField {
	if !entry.IsTabs() {
		return []NamedField{{Name: entry.Name, Field: entry.Field}}
	}
	var out []NamedField
	for _, tab := range entry.Tabs.Tabs {
		for _, attr := range tab.Attrs {
			out = append(out, NamedField{Name: attr.Name, Field: attr.Member.(fields.Field)})
		}
	}
	return out
}

// checkName reports whether name is skipped (dunder) or rejected.
func checkName(name string) (bool, error) {
	switch {
	case strings.HasPrefix(name, "__"):
		return true, nil
	case strings.HasPrefix(name, "_"):
		return false, &validation.FieldError{
			Attr:    name,
			Kind:    validation.ErrReservedName,
			Message: fmt.Sprintf("attribute '%s' must not start with '_': names with a leading underscore are reserved", name),
		}
	case strings.TrimSpace(name) == "":
		return false, validation.Empty("name")
	}
	return false, nil
}

func asField(member any) (fields.Field, bool) {
	field, ok := member.(fields.Field)
	if !ok || field == nil {
		return nil, false
	}
	if rv := reflect.ValueOf(field); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, false
	}
	return field, true
}

func invalidMember(name string, member any) error {
	return &validation.FieldError{
		Attr:     name,
		Kind:     validation.ErrInvalidField,
		Expected: "a valid field type",
		Actual:   fmt.Sprintf("%T", member),
		Message:  fmt.Sprintf("'%s' must be a valid field type, got a '%T'", name, member),
	}
}
