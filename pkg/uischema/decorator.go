package uischema

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-alfasim-sdk/pkg/model"
)

const (
	hintDescription = "description"
	hintPlaceholder = "placeholder"
)

// Decorator applies overlays to the renderer hints of a model.
type Decorator struct {
	store *Store
}

// NewDecorator builds a Decorator backed by the provided store. When store is
// nil or empty, the decorator becomes a no-op.
func NewDecorator(store *Store) *Decorator {
	return &Decorator{store: store}
}

// Title returns the overlay title of the named model, if any.
func (d *Decorator) Title(modelName string) (string, bool) {
	if d == nil {
		return "", false
	}
	m, ok := d.store.Model(modelName)
	if !ok || m.Title == "" {
		return "", false
	}
	return m.Title, true
}

// Decorate overrides hints, as returned by model.UIHints for the named
// model, with the overlay of that model. Overlays naming attributes the model
// does not declare are rejected. Models without an overlay are left
// untouched.
func (d *Decorator) Decorate(modelName string, hints map[string]map[string]string) error {
	if d == nil || d.store.Empty() {
		return nil
	}
	m, ok := d.store.Model(modelName)
	if !ok {
		return nil
	}

	var unknown []string
	for attr := range m.Fields {
		if _, declared := hints[attr]; !declared {
			unknown = append(unknown, attr)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("uischema: model %q (file %s) overlays unknown attribute(s) %s", modelName, m.Source, strings.Join(unknown, ", "))
	}

	for attr, cfg := range m.Fields {
		hints[attr] = applyField(hints[attr], cfg)
	}
	return nil
}

func applyField(hints map[string]string, cfg FieldConfig) map[string]string {
	if hints == nil {
		hints = make(map[string]string)
	}
	for key, value := range cfg.UIHints {
		hints[key] = value
	}
	set := func(key, value string) {
		if value = strings.TrimSpace(value); value != "" {
			hints[key] = value
		}
	}
	set(model.HintLabel, cfg.Label)
	set(model.HintWidget, cfg.Widget)
	set(model.HintSection, cfg.Section)
	set(hintDescription, cfg.Description)
	set(hintPlaceholder, cfg.Placeholder)
	if cfg.Order != nil {
		hints[model.HintOrder] = strconv.Itoa(*cfg.Order)
	}
	return hints
}
