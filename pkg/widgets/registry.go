package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-alfasim-sdk/pkg/fields"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetText          = "text"
	WidgetToggle        = "toggle"
	WidgetRadio         = "radio"
	WidgetSelect        = "select"
	WidgetQuantity      = "quantity"
	WidgetTable         = "table"
	WidgetReference     = "reference"
	WidgetChips         = "chips"
	WidgetDataReference = "data-reference"
)

// radioLimit is the largest enum presented as radio buttons.
const radioLimit = 3

// Matcher decides whether a widget should present the supplied field.
type Matcher func(field fields.Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widgets for fields from registered matchers. Higher
// priority wins; ties fall back to registration order. An empty registry
// never resolves a widget.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in widget matchers
// registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a widget matcher with the provided name and priority. Higher
// priority values take precedence.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for a field.
func (r *Registry) Resolve(field fields.Field) (string, bool) {
	if r == nil || field == nil {
		return "", false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name, true
		}
	}
	return "", false
}

func kindIs(kinds ...fields.Kind) Matcher {
	return func(field fields.Field) bool {
		for _, kind := range kinds {
			if field.Kind() == kind {
				return true
			}
		}
		return false
	}
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetToggle, 90, kindIs(fields.KindBoolean))

	r.Register(WidgetRadio, 80, func(field fields.Field) bool {
		enum, ok := field.(*fields.Enum)
		return ok && len(enum.Values()) <= radioLimit
	})

	r.Register(WidgetSelect, 70, kindIs(fields.KindEnum))
	r.Register(WidgetQuantity, 60, kindIs(fields.KindQuantity, fields.KindTableColumn))
	r.Register(WidgetTable, 60, kindIs(fields.KindTable))
	r.Register(WidgetReference, 50, kindIs(fields.KindReference))
	r.Register(WidgetChips, 50, kindIs(fields.KindMultipleReference))
	r.Register(WidgetDataReference, 50, kindIs(fields.KindDataReference))
	r.Register(WidgetText, 10, kindIs(fields.KindString))
}
