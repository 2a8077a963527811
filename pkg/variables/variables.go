// Package variables declares the secondary variables a plugin adds to the
// simulation through the alfasim_get_additional_variables hook.
package variables

import (
	"fmt"

	"github.com/goliatone/go-alfasim-sdk/pkg/units"
	"github.com/goliatone/go-alfasim-sdk/pkg/validation"
)

// Visibility decides whether the variable is shown as simulation output.
type Visibility string

const (
	Internal Visibility = "internal"
	Output   Visibility = "output"
)

// Location places the variable on the grid.
type Location string

const (
	Center Location = "center"
	Face   Location = "face"
)

// Scope is the multifield scope of the variable.
type Scope string

const (
	ScopeEnergy Scope = "energy"
	ScopeField  Scope = "field"
	ScopeGlobal Scope = "global"
	ScopeLayer  Scope = "layer"
	ScopePhase  Scope = "phase"
)

var (
	visibilities = []string{string(Internal), string(Output)}
	locations    = []string{string(Center), string(Face)}
	scopes       = []string{string(ScopeEnergy), string(ScopeField), string(ScopeGlobal), string(ScopeLayer), string(ScopePhase)}
)

// Variable is a secondary variable declaration.
type Variable struct {
	name                string
	caption             string
	unit                string
	visibility          Visibility
	location            Location
	scope               Scope
	checkedOnGUIDefault bool
	category            string
}

// Option configures optional attributes of a Variable.
type Option func(*Variable)

func WithVisibility(v Visibility) Option { return func(vr *Variable) { vr.visibility = v } }
func WithLocation(l Location) Option     { return func(vr *Variable) { vr.location = l } }
func WithScope(s Scope) Option           { return func(vr *Variable) { vr.scope = s } }

// WithCheckedOnGUIDefault controls whether the variable is selected for
// output by default.
func WithCheckedOnGUIDefault(checked bool) Option {
	return func(vr *Variable) { vr.checkedOnGUIDefault = checked }
}

// New declares a variable. Defaults: Output visibility, Center location,
// global scope, checked on the GUI. unit must be known to db; a nil db
// selects units.Default().
func New(db *units.Database, name, caption, unit string, opts ...Option) (Variable, error) {
	if db == nil {
		db = units.Default()
	}
	v := Variable{
		name:                name,
		caption:             caption,
		unit:                unit,
		visibility:          Output,
		location:            Center,
		scope:               ScopeGlobal,
		checkedOnGUIDefault: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&v)
		}
	}

	err := validation.Run(
		validation.NonEmptyString("name", name),
		validation.NonEmptyString("caption", caption),
		validation.KnownUnit(db, "unit", unit),
		validation.OneOf("visibility", string(v.visibility), visibilities),
		validation.OneOf("location", string(v.location), locations),
		validation.OneOf("multifield_scope", string(v.scope), scopes),
	)
	if err != nil {
		return Variable{}, fmt.Errorf("variables: %s: %w", name, err)
	}
	v.category, _ = db.DefaultCategory(unit)
	return v, nil
}

func (v Variable) Name() string           { return v.name }
func (v Variable) Caption() string        { return v.caption }
func (v Variable) Unit() string           { return v.unit }
func (v Variable) Category() string       { return v.category }
func (v Variable) Visibility() Visibility { return v.visibility }
func (v Variable) Location() Location     { return v.location }
func (v Variable) Scope() Scope           { return v.scope }
func (v Variable) CheckedOnGUIDefault() bool {
	return v.checkedOnGUIDefault
}
