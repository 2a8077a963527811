package model

import (
	"fmt"

	"github.com/goliatone/go-alfasim-sdk/pkg/fields"
)

// Attr is one declared member of a model: a field or a tab layout. Members
// keep the order they are passed in.
type Attr struct {
	Name   string
	Member any
}

// Meta carries the descriptive metadata attached to a schema.
type Meta struct {
	// Caption labels the model in the host GUI. When empty the builder derives
	// one from the model name.
	Caption string
	// Icon is either an icon file name or inline SVG markup.
	Icon string
	// Bases contribute their attributes ahead of the model's own.
	Bases []*Schema
}

// Tab groups fields under a caption.
type Tab struct {
	Caption string
	Attrs   []Attr
}

// Tabs is a tab layout. It is declared as a model member; the fields of its
// tabs become attributes of the model.
type Tabs struct {
	Tabs []Tab
}

// Entry is one top-level schema member: either a field or a tab layout.
type Entry struct {
	Name  string
	Field fields.Field
	Tabs  *Tabs
}

// IsTabs reports whether the entry is a tab layout.
func (e Entry) IsTabs() bool { return e.Tabs != nil }

func (e Entry) equal(other Entry) bool {
	if e.Name != other.Name || e.IsTabs() != other.IsTabs() {
		return false
	}
	if !e.IsTabs() {
		return e.Field.Equal(other.Field)
	}
	if len(e.Tabs.Tabs) != len(other.Tabs.Tabs) {
		return false
	}
	for i, tab := range e.Tabs.Tabs {
		peer := other.Tabs.Tabs[i]
		if tab.Caption != peer.Caption || len(tab.Attrs) != len(peer.Attrs) {
			return false
		}
		for j, attr := range tab.Attrs {
			f, _ := attr.Member.(fields.Field)
			g, _ := peer.Attrs[j].Member.(fields.Field)
			if attr.Name != peer.Attrs[j].Name || f == nil || !f.Equal(g) {
				return false
			}
		}
	}
	return true
}

// NamedField pairs a flattened attribute name with its default field.
type NamedField struct {
	Name  string
	Field fields.Field
}

// Schema is a model type produced by the Builder. Schemas are immutable and
// act as templates: New produces populated instances.
type Schema struct {
	name    string
	kind    fields.RefKind
	caption string
	icon    string
	model   *Schema
	bases   []*Schema
	entries []Entry
	flat    []NamedField
	index   map[string]int
}

func (s *Schema) RefName() string         { return s.name }
func (s *Schema) RefKind() fields.RefKind { return s.kind }
func (s *Schema) Name() string            { return s.name }
func (s *Schema) Caption() string         { return s.caption }
func (s *Schema) Icon() string            { return s.icon }
func (s *Schema) IsContainer() bool       { return s.kind == fields.RefContainerModel }

// Model returns the data model aggregated by a container, or nil.
func (s *Schema) Model() *Schema { return s.model }

// Bases returns the schemas this one was composed from.
func (s *Schema) Bases() []*Schema { return append([]*Schema(nil), s.bases...) }

// Entries returns the top-level members in order, base members first.
func (s *Schema) Entries() []Entry { return append([]Entry(nil), s.entries...) }

// Fields returns every attribute in order with fields declared inside tabs
// flattened in place.
func (s *Schema) Fields() []NamedField { return append([]NamedField(nil), s.flat...) }

// Names returns the flattened attribute names in order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.flat))
	for i, f := range s.flat {
		names[i] = f.Name
	}
	return names
}

// Field returns the default of the named attribute.
func (s *Schema) Field(name string) (fields.Field, bool) {
	idx, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.flat[idx].Field, true
}

// Equal reports whether two schemas declare the same members, defaults and
// metadata. Identity is ignored.
func (s *Schema) Equal(other *Schema) bool {
	if s == nil || other == nil {
		return s == other
	}
	if s.name != other.name || s.kind != other.kind ||
		s.caption != other.caption || s.icon != other.icon {
		return false
	}
	if (s.model == nil) != (other.model == nil) {
		return false
	}
	if s.model != nil && s.model.name != other.model.name {
		return false
	}
	if len(s.bases) != len(other.bases) || len(s.entries) != len(other.entries) {
		return false
	}
	for i := range s.bases {
		if s.bases[i].name != other.bases[i].name {
			return false
		}
	}
	for i := range s.entries {
		if !s.entries[i].equal(other.entries[i]) {
			return false
		}
	}
	return true
}

func (s *Schema) String() string {
	return fmt.Sprintf("%s(%s)", s.name, s.kind)
}
