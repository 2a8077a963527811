package model

import (
	"strconv"

	"github.com/goliatone/go-alfasim-sdk/pkg/fields"
	"github.com/goliatone/go-alfasim-sdk/pkg/widgets"
)

// Hint keys understood by form renderers under the x-formgen namespace.
const (
	HintLabel      = "label"
	HintWidget     = "widget"
	HintUnit       = "unit"
	HintCategory   = "category"
	HintOrder      = "order"
	HintSection    = "section"
	HintEnableExpr = "enableExpr"
	HintContainer  = "container"
)

// WidgetResolver picks the widget a renderer uses for a field.
type WidgetResolver interface {
	Resolve(field fields.Field) (string, bool)
}

var defaultWidgets = widgets.NewRegistry()

// UIHints describes how a renderer should present every attribute of s,
// keyed by attribute name. Fields declared inside tabs carry the tab caption
// as their section. A nil resolver selects the built-in widget registry.
func UIHints(s *Schema, resolver WidgetResolver) map[string]map[string]string {
	if resolver == nil {
		resolver = defaultWidgets
	}
	sections := make(map[string]string)
	for _, entry := range s.entries {
		if !entry.IsTabs() {
			continue
		}
		for _, tab := range entry.Tabs.Tabs {
			for _, attr := range tab.Attrs {
				sections[attr.Name] = tab.Caption
			}
		}
	}

	out := make(map[string]map[string]string, len(s.flat))
	for i, nf := range s.flat {
		hints := fieldHints(nf.Field, resolver)
		hints[HintOrder] = strconv.Itoa(i)
		if section, ok := sections[nf.Name]; ok {
			hints[HintSection] = section
		}
		out[nf.Name] = hints
	}
	return out
}

func fieldHints(field fields.Field, resolver WidgetResolver) map[string]string {
	hints := map[string]string{HintLabel: field.Caption()}
	if widget, ok := resolver.Resolve(field); ok {
		hints[HintWidget] = widget
	}
	if rule := field.EnableRule(); rule != "" {
		hints[HintEnableExpr] = rule
	}
	switch f := field.(type) {
	case *fields.Quantity:
		hints[HintUnit] = f.Unit()
		hints[HintCategory] = f.Category()
	case *fields.Reference:
		hints[HintContainer] = f.ContainerType()
	case *fields.MultipleReference:
		hints[HintContainer] = f.ContainerType()
	}
	if hints[HintContainer] == "" {
		delete(hints, HintContainer)
	}
	return hints
}
