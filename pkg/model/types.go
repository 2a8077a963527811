package model

import (
	internalmodel "github.com/goliatone/go-alfasim-sdk/internal/model"
	"github.com/goliatone/go-alfasim-sdk/pkg/fields"
)

type Attr = internalmodel.Attr
type Meta = internalmodel.Meta
type Tab = internalmodel.Tab
type Tabs = internalmodel.Tabs
type Entry = internalmodel.Entry
type NamedField = internalmodel.NamedField
type Schema = internalmodel.Schema
type Instance = internalmodel.Instance
type Item = internalmodel.Item
type Selection = internalmodel.Selection
type TableData = internalmodel.TableData

const (
	HintLabel      = internalmodel.HintLabel
	HintWidget     = internalmodel.HintWidget
	HintUnit       = internalmodel.HintUnit
	HintCategory   = internalmodel.HintCategory
	HintOrder      = internalmodel.HintOrder
	HintSection    = internalmodel.HintSection
	HintEnableExpr = internalmodel.HintEnableExpr
	HintContainer  = internalmodel.HintContainer
)

// Attribute pairs a member name with a field or a tab layout.
func Attribute(name string, member any) Attr {
	return Attr{Name: name, Member: member}
}

// NewTab groups attributes under caption.
func NewTab(caption string, attrs ...Attr) Tab {
	return Tab{Caption: caption, Attrs: attrs}
}

// NewTabs declares a tab layout member.
func NewTabs(tabs ...Tab) *Tabs {
	return &Tabs{Tabs: tabs}
}

// PlainValue extracts the scalar value carried by a field: string for String
// and Enum, bool for Boolean, float64 for Quantity.
func PlainValue(field fields.Field) (any, bool) {
	return internalmodel.PlainValue(field)
}

// WidgetResolver picks the widget a renderer uses for a field.
// *widgets.Registry implements it.
type WidgetResolver = internalmodel.WidgetResolver

// UIHints returns the renderer hints of every attribute of s, keyed by
// attribute name, with widgets chosen by the built-in registry.
func UIHints(s *Schema) map[string]map[string]string {
	return internalmodel.UIHints(s, nil)
}

// UIHintsWith is UIHints with widgets chosen by resolver.
func UIHintsWith(s *Schema, resolver WidgetResolver) map[string]map[string]string {
	return internalmodel.UIHints(s, resolver)
}
