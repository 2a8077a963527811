package simcontext

import (
	"fmt"

	"github.com/goliatone/go-alfasim-sdk/pkg/units"
	"github.com/goliatone/go-alfasim-sdk/pkg/validation"
)

// The records in this file are snapshots of host state. Their fields are
// unexported and only readable through getters; slices are copied on the way
// in and on the way out, so a record cannot change after construction.

// PluginInfo describes a plugin loaded by the host: display caption, name,
// whether it is enabled and the names of the models it declares.
type PluginInfo struct {
	caption string
	name    string
	enabled bool
	models  []string
}

// NewPluginInfo validates and builds a PluginInfo.
func NewPluginInfo(caption, name string, enabled bool, models []string) (PluginInfo, error) {
	err := validation.Run(
		validation.NonEmptyString("caption", caption),
		validation.NonEmptyString("name", name),
		validation.NonEmptyStrings("models", models),
	)
	if err != nil {
		return PluginInfo{}, fmt.Errorf("plugin info: %w", err)
	}
	return PluginInfo{
		caption: caption,
		name:    name,
		enabled: enabled,
		models:  cloneStrings(models),
	}, nil
}

func (p PluginInfo) Caption() string  { return p.caption }
func (p PluginInfo) Name() string     { return p.name }
func (p PluginInfo) Enabled() bool    { return p.enabled }
func (p PluginInfo) Models() []string { return cloneStrings(p.models) }

// PipelineSegmentInfo describes a wall segment of a pipeline. Roughness is
// either the wall's original roughness or a segment override (IsCustom).
type PipelineSegmentInfo struct {
	innerDiameter units.Scalar
	startPosition units.Scalar
	isCustom      bool
	roughness     units.Scalar
}

// NewPipelineSegmentInfo validates and builds a segment. Every scalar must be
// a length.
func NewPipelineSegmentInfo(innerDiameter, startPosition units.Scalar, isCustom bool, roughness units.Scalar) (PipelineSegmentInfo, error) {
	err := validation.Run(
		lengthScalar("inner_diameter", innerDiameter),
		lengthScalar("start_position", startPosition),
		lengthScalar("roughness", roughness),
	)
	if err != nil {
		return PipelineSegmentInfo{}, fmt.Errorf("pipeline segment info: %w", err)
	}
	return PipelineSegmentInfo{
		innerDiameter: innerDiameter,
		startPosition: startPosition,
		isCustom:      isCustom,
		roughness:     roughness,
	}, nil
}

func (s PipelineSegmentInfo) InnerDiameter() units.Scalar { return s.innerDiameter }
func (s PipelineSegmentInfo) StartPosition() units.Scalar { return s.startPosition }
func (s PipelineSegmentInfo) IsCustom() bool              { return s.isCustom }
func (s PipelineSegmentInfo) Roughness() units.Scalar     { return s.roughness }

// PipelineInfo describes the geometry of a pipeline attached to an edge.
type PipelineInfo struct {
	name        string
	edgeName    string
	segments    []PipelineSegmentInfo
	totalLength units.Scalar
}

// NewPipelineInfo validates and builds a PipelineInfo.
func NewPipelineInfo(name, edgeName string, segments []PipelineSegmentInfo, totalLength units.Scalar) (PipelineInfo, error) {
	err := validation.Run(
		validation.NonEmptyString("name", name),
		validation.NonEmptyString("edge_name", edgeName),
		lengthScalar("total_length", totalLength),
		func() error {
			for i, seg := range segments {
				if seg.innerDiameter.IsZero() {
					return &validation.FieldError{
						Attr:     fmt.Sprintf("segments[%d]", i),
						Kind:     validation.ErrTypeMismatch,
						Expected: "a PipelineSegmentInfo built with NewPipelineSegmentInfo",
						Actual:   "an empty value",
					}
				}
			}
			return nil
		},
	)
	if err != nil {
		return PipelineInfo{}, fmt.Errorf("pipeline info: %w", err)
	}
	return PipelineInfo{
		name:        name,
		edgeName:    edgeName,
		segments:    append([]PipelineSegmentInfo(nil), segments...),
		totalLength: totalLength,
	}, nil
}

func (p PipelineInfo) Name() string              { return p.name }
func (p PipelineInfo) EdgeName() string          { return p.edgeName }
func (p PipelineInfo) TotalLength() units.Scalar { return p.totalLength }
func (p PipelineInfo) Segments() []PipelineSegmentInfo {
	return append([]PipelineSegmentInfo(nil), p.segments...)
}

// NodeInfo describes a network node. The phase count is only known when a
// PVT model is associated with the node.
type NodeInfo struct {
	name   string
	phases int
	known  bool
}

// NewNodeInfo builds a NodeInfo without an associated PVT model.
func NewNodeInfo(name string) (NodeInfo, error) {
	if err := validation.Run(validation.NonEmptyString("name", name)); err != nil {
		return NodeInfo{}, fmt.Errorf("node info: %w", err)
	}
	return NodeInfo{name: name}, nil
}

// NewNodeInfoWithPhases builds a NodeInfo whose PVT model has phases phases.
func NewNodeInfoWithPhases(name string, phases int) (NodeInfo, error) {
	err := validation.Run(
		validation.NonEmptyString("name", name),
		validation.NonNegative("number_of_phases_from_associated_pvt", phases),
	)
	if err != nil {
		return NodeInfo{}, fmt.Errorf("node info: %w", err)
	}
	return NodeInfo{name: name, phases: phases, known: true}, nil
}

func (n NodeInfo) Name() string { return n.name }

// NumberOfPhasesFromAssociatedPVT reports the phase count, if known.
func (n NodeInfo) NumberOfPhasesFromAssociatedPVT() (int, bool) { return n.phases, n.known }

// EdgeInfo describes a network edge.
type EdgeInfo struct {
	name   string
	phases int
	known  bool
}

// NewEdgeInfo builds an EdgeInfo without an associated PVT model.
func NewEdgeInfo(name string) (EdgeInfo, error) {
	if err := validation.Run(validation.NonEmptyString("name", name)); err != nil {
		return EdgeInfo{}, fmt.Errorf("edge info: %w", err)
	}
	return EdgeInfo{name: name}, nil
}

// NewEdgeInfoWithPhases builds an EdgeInfo whose PVT model has phases phases.
func NewEdgeInfoWithPhases(name string, phases int) (EdgeInfo, error) {
	err := validation.Run(
		validation.NonEmptyString("name", name),
		validation.NonNegative("number_of_phases_from_associated_pvt", phases),
	)
	if err != nil {
		return EdgeInfo{}, fmt.Errorf("edge info: %w", err)
	}
	return EdgeInfo{name: name, phases: phases, known: true}, nil
}

func (e EdgeInfo) Name() string { return e.name }

// NumberOfPhasesFromAssociatedPVT reports the phase count, if known.
func (e EdgeInfo) NumberOfPhasesFromAssociatedPVT() (int, bool) { return e.phases, e.known }

// HydrodynamicModelInfo describes the layers, fields and phases of the
// hydrodynamic model in use.
type HydrodynamicModelInfo struct {
	selectedBaseType HydrodynamicModelType
	phases           []string
	fields           []string
	layers           []string
	hasWaterPhase    bool
}

// NewHydrodynamicModelInfo validates and builds a HydrodynamicModelInfo.
func NewHydrodynamicModelInfo(base HydrodynamicModelType, phases, fields, layers []string, hasWaterPhase bool) (HydrodynamicModelInfo, error) {
	err := validation.Run(
		enumMember("selected_base_type", base, hydrodynamicModels),
		validation.NonEmptyStrings("phases", phases),
		validation.NonEmptyStrings("fields", fields),
		validation.NonEmptyStrings("layers", layers),
	)
	if err != nil {
		return HydrodynamicModelInfo{}, fmt.Errorf("hydrodynamic model info: %w", err)
	}
	return HydrodynamicModelInfo{
		selectedBaseType: base,
		phases:           cloneStrings(phases),
		fields:           cloneStrings(fields),
		layers:           cloneStrings(layers),
		hasWaterPhase:    hasWaterPhase,
	}, nil
}

func (h HydrodynamicModelInfo) SelectedBaseType() HydrodynamicModelType { return h.selectedBaseType }
func (h HydrodynamicModelInfo) Phases() []string                        { return cloneStrings(h.phases) }
func (h HydrodynamicModelInfo) Fields() []string                        { return cloneStrings(h.fields) }
func (h HydrodynamicModelInfo) Layers() []string                        { return cloneStrings(h.layers) }
func (h HydrodynamicModelInfo) HasWaterPhase() bool                     { return h.hasWaterPhase }

// PhysicsOptionsInfo groups the physics options of the current project.
type PhysicsOptionsInfo struct {
	emulsionModel     EmulsionModelType
	solidsModel       SolidsModelType
	hydrodynamicModel HydrodynamicModelInfo
}

// NewPhysicsOptionsInfo validates and builds a PhysicsOptionsInfo.
func NewPhysicsOptionsInfo(emulsion EmulsionModelType, solids SolidsModelType, hydrodynamic HydrodynamicModelInfo) (PhysicsOptionsInfo, error) {
	err := validation.Run(
		enumMember("emulsion_model", emulsion, emulsionModels),
		enumMember("solids_model", solids, solidsModels),
		func() error {
			if !hydrodynamic.selectedBaseType.Valid() {
				return &validation.FieldError{
					Attr:     "hydrodynamic_model",
					Kind:     validation.ErrTypeMismatch,
					Expected: "a HydrodynamicModelInfo built with NewHydrodynamicModelInfo",
					Actual:   "an empty value",
				}
			}
			return nil
		},
	)
	if err != nil {
		return PhysicsOptionsInfo{}, fmt.Errorf("physics options info: %w", err)
	}
	return PhysicsOptionsInfo{
		emulsionModel:     emulsion,
		solidsModel:       solids,
		hydrodynamicModel: hydrodynamic,
	}, nil
}

func (p PhysicsOptionsInfo) EmulsionModel() EmulsionModelType         { return p.emulsionModel }
func (p PhysicsOptionsInfo) SolidsModel() SolidsModelType             { return p.solidsModel }
func (p PhysicsOptionsInfo) HydrodynamicModel() HydrodynamicModelInfo { return p.hydrodynamicModel }

func lengthScalar(attr string, value units.Scalar) validation.Check {
	return func() error {
		if value.IsZero() {
			return &validation.FieldError{
				Attr:     attr,
				Kind:     validation.ErrTypeMismatch,
				Expected: "a Scalar",
				Actual:   "an empty value",
			}
		}
		switch value.Category() {
		case "length", "diameter":
			return nil
		}
		return &validation.FieldError{
			Attr:     attr,
			Kind:     validation.ErrNotMember,
			Expected: "a length",
			Actual:   fmt.Sprintf("%q in %q", value.Unit(), value.Category()),
		}
	}
}

func enumMember[T interface {
	~string
	comparable
}](attr string, value T, allowed []T) validation.Check {
	return func() error {
		if contains(allowed, value) {
			return nil
		}
		return &validation.FieldError{
			Attr:     attr,
			Kind:     validation.ErrNotMember,
			Expected: enumExpectation(allowed),
			Actual:   fmt.Sprintf("%q", string(value)),
		}
	}
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	return append([]string(nil), values...)
}
