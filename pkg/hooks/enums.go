package hooks

import (
	"fmt"

	"github.com/goliatone/go-alfasim-sdk/pkg/variables"
)

// GridScope locates a simulation array on the grid.
type GridScope int

const (
	GridCenter GridScope = 0
	GridFace   GridScope = 1
)

func (s GridScope) String() string {
	switch s {
	case GridCenter:
		return "CENTER"
	case GridFace:
		return "FACE"
	}
	return fmt.Sprintf("GridScope(%d)", int(s))
}

// MultiFieldDescriptionScope selects phases, fields or layers. Mixture and
// global share a value.
type MultiFieldDescriptionScope int

const (
	ScopeMixture MultiFieldDescriptionScope = 0
	ScopeGlobal  MultiFieldDescriptionScope = 0
	ScopeField   MultiFieldDescriptionScope = 1
	ScopeLayer   MultiFieldDescriptionScope = 2
	ScopePhase   MultiFieldDescriptionScope = 3
)

func (s MultiFieldDescriptionScope) String() string {
	switch s {
	case ScopeGlobal:
		return "GLOBAL"
	case ScopeField:
		return "FIELD"
	case ScopeLayer:
		return "LAYER"
	case ScopePhase:
		return "PHASE"
	}
	return fmt.Sprintf("MultiFieldDescriptionScope(%d)", int(s))
}

// TimestepScope selects the time level of an array.
type TimestepScope int

const (
	TimestepCurrent  TimestepScope = 0
	TimestepPrevious TimestepScope = 1
)

func (s TimestepScope) String() string {
	switch s {
	case TimestepCurrent:
		return "CURRENT"
	case TimestepPrevious:
		return "PREVIOUS"
	}
	return fmt.Sprintf("TimestepScope(%d)", int(s))
}

// VariableScope addresses a simulation array.
type VariableScope struct {
	Grid     GridScope
	MFD      MultiFieldDescriptionScope
	Timestep TimestepScope
}

// ScopeOf maps a secondary variable declaration onto the array scope the
// native API reads it with. Energy scoped variables have no array scope.
func ScopeOf(v variables.Variable, timestep TimestepScope) (VariableScope, error) {
	out := VariableScope{Grid: GridCenter, Timestep: timestep}
	if v.Location() == variables.Face {
		out.Grid = GridFace
	}
	switch v.Scope() {
	case variables.ScopeGlobal:
		out.MFD = ScopeGlobal
	case variables.ScopeField:
		out.MFD = ScopeField
	case variables.ScopeLayer:
		out.MFD = ScopeLayer
	case variables.ScopePhase:
		out.MFD = ScopePhase
	default:
		return VariableScope{}, fmt.Errorf("hooks: variable %s: scope %s has no array scope", v.Name(), v.Scope())
	}
	return out, nil
}

// StateVariable is a phase property computed by state variable hooks.
type StateVariable int

const (
	StateRho StateVariable = iota
	StateMu
	StateCp
	StateDrhoDp
	StateDrhoDt
	StateH
	StateK
	StateSigma
)

var stateVariableNames = []string{"RHO", "MU", "CP", "DRHO_DP", "DRHO_DT", "H", "K", "SIGMA"}

func (s StateVariable) String() string {
	if s >= 0 && int(s) < len(stateVariableNames) {
		return stateVariableNames[s]
	}
	return fmt.Sprintf("StateVariable(%d)", int(s))
}

// WallLayerProperty indexes wall layer data.
type WallLayerProperty int

const (
	WallThickness WallLayerProperty = iota
	WallDensity
	WallThermalConductivity
	WallHeatCapacity
	WallInnerEmissivity
	WallOuterEmissivity
	WallExpansion
	WallViscosity
)

var wallLayerPropertyNames = []string{
	"THICKNESS",
	"DENSITY",
	"THERMAL_CONDUCTIVITY",
	"HEAT_CAPACITY",
	"INNER_EMISSIVITY",
	"OUTER_EMISSIVITY",
	"EXPANSION",
	"VISCOSITY",
}

func (p WallLayerProperty) String() string {
	if p >= 0 && int(p) < len(wallLayerPropertyNames) {
		return wallLayerPropertyNames[p]
	}
	return fmt.Sprintf("WallLayerProperty(%d)", int(p))
}

// Names of the built-in fields, phases and layers.
const (
	FieldGas                  = "gas"
	FieldLiquid               = "liquid"
	FieldWater                = "water"
	FieldWaterDropletInLiquid = "water_in_liquid_droplet"
	FieldDroplet              = "droplet"
	FieldBubble               = "bubble"

	PhaseGas    = "gas"
	PhaseLiquid = "liquid"
	PhaseWater  = "water"

	LayerGas    = "gas"
	LayerLiquid = "liquid"
	LayerWater  = "water"
)
