package simcontext

import (
	"fmt"
	"strings"
)

// EmulsionModelType selects the emulsion properties correlation.
type EmulsionModelType string

const (
	EmulsionNoModel                EmulsionModelType = "EmulsionModelType.no_model"
	EmulsionBoxall2012             EmulsionModelType = "EmulsionModelType.boxall2012"
	EmulsionBrauner2001            EmulsionModelType = "EmulsionModelType.brauner2001"
	EmulsionBrinkman1952           EmulsionModelType = "EmulsionModelType.brinkman1952"
	EmulsionBrinkman1952AndYeh1964 EmulsionModelType = "EmulsionModelType.brinkman1952_and_yeh1964"
	EmulsionHinze1955              EmulsionModelType = "EmulsionModelType.hinze1955"
	EmulsionModelDefault           EmulsionModelType = "EmulsionModelType.model_default"
	EmulsionMooney1951a            EmulsionModelType = "EmulsionModelType.mooney1951a"
	EmulsionMooney1951b            EmulsionModelType = "EmulsionModelType.mooney1951b"
	EmulsionSleicher1962           EmulsionModelType = "EmulsionModelType.sleicher1962"
	EmulsionTaylor1932             EmulsionModelType = "EmulsionModelType.taylor1932"
)

var emulsionModels = []EmulsionModelType{
	EmulsionNoModel,
	EmulsionBoxall2012,
	EmulsionBrauner2001,
	EmulsionBrinkman1952,
	EmulsionBrinkman1952AndYeh1964,
	EmulsionHinze1955,
	EmulsionModelDefault,
	EmulsionMooney1951a,
	EmulsionMooney1951b,
	EmulsionSleicher1962,
	EmulsionTaylor1932,
}

// EmulsionModelTypes lists every emulsion model option.
func EmulsionModelTypes() []EmulsionModelType {
	return append([]EmulsionModelType(nil), emulsionModels...)
}

func (t EmulsionModelType) Valid() bool { return contains(emulsionModels, t) }

// SolidsModelType selects the slip velocity and slurry viscosity model.
type SolidsModelType string

const (
	SolidsNoModel                   SolidsModelType = "SolidsModelType.no_model"
	SolidsMills1985Equilibrium      SolidsModelType = "SolidsModelType.mills1985_equilibrium"
	SolidsSantamaria2010Equilibrium SolidsModelType = "SolidsModelType.santamaria2010_equilibrium"
	SolidsThomas1965Equilibrium     SolidsModelType = "SolidsModelType.thomas1965_equilibrium"
)

var solidsModels = []SolidsModelType{
	SolidsNoModel,
	SolidsMills1985Equilibrium,
	SolidsSantamaria2010Equilibrium,
	SolidsThomas1965Equilibrium,
}

// SolidsModelTypes lists every solids model option.
func SolidsModelTypes() []SolidsModelType {
	return append([]SolidsModelType(nil), solidsModels...)
}

func (t SolidsModelType) Valid() bool { return contains(solidsModels, t) }

// HydrodynamicModelType identifies the base hydrodynamic model (layers,
// fields and phases) selected in the host.
type HydrodynamicModelType string

const (
	HydrodynamicTwoFields                      HydrodynamicModelType = "hydrodynamic_model_2_fields"
	HydrodynamicFourFields                     HydrodynamicModelType = "hydrodynamic_model_4_fields"
	HydrodynamicThreeLayersGasOilWater         HydrodynamicModelType = "hydrodynamic_model_3_layers_gas_oil_water"
	HydrodynamicThreeLayersNoBubbleGasOilWater HydrodynamicModelType = "hydrodynamic_model_3_layers_no_bubble_gas_oil_water"
	HydrodynamicThreeLayersWaterWithGas        HydrodynamicModelType = "hydrodynamic_model_3_layers_water_with_gas"
	HydrodynamicThreeLayersSevenFields         HydrodynamicModelType = "hydrodynamic_model_3_layers_7_fields_gas_oil_water"
)

var hydrodynamicModels = []HydrodynamicModelType{
	HydrodynamicTwoFields,
	HydrodynamicFourFields,
	HydrodynamicThreeLayersGasOilWater,
	HydrodynamicThreeLayersNoBubbleGasOilWater,
	HydrodynamicThreeLayersWaterWithGas,
	HydrodynamicThreeLayersSevenFields,
}

// HydrodynamicModelTypes lists every base hydrodynamic model.
func HydrodynamicModelTypes() []HydrodynamicModelType {
	return append([]HydrodynamicModelType(nil), hydrodynamicModels...)
}

func (t HydrodynamicModelType) Valid() bool { return contains(hydrodynamicModels, t) }

func contains[T comparable](values []T, value T) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}

func enumExpectation[T ~string](values []T) string {
	names := make([]string, 0, len(values))
	for _, value := range values {
		names = append(names, string(value))
	}
	return fmt.Sprintf("one of [%s]", strings.Join(names, ", "))
}
