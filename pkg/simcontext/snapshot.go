package simcontext

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-alfasim-sdk/pkg/units"
)

// snapshotFile is the YAML rendition of host state. Scalars are written as
// {value, unit}.
type snapshotFile struct {
	Plugins []struct {
		Caption string   `yaml:"caption"`
		Name    string   `yaml:"name"`
		Enabled bool     `yaml:"enabled"`
		Models  []string `yaml:"models"`
	} `yaml:"plugins"`
	Pipelines []struct {
		Name        string       `yaml:"name"`
		EdgeName    string       `yaml:"edge_name"`
		TotalLength units.Scalar `yaml:"total_length"`
		Segments    []struct {
			InnerDiameter units.Scalar `yaml:"inner_diameter"`
			StartPosition units.Scalar `yaml:"start_position"`
			IsCustom      bool         `yaml:"is_custom"`
			Roughness     units.Scalar `yaml:"roughness"`
		} `yaml:"segments"`
	} `yaml:"pipelines"`
	Nodes          []networkElement          `yaml:"nodes"`
	Edges          []networkElement          `yaml:"edges"`
	PhysicsOptions *physicsOptionsFile       `yaml:"physics_options"`
	Models         map[string]map[string]any `yaml:"models"`
}

type networkElement struct {
	Name   string `yaml:"name"`
	Phases *int   `yaml:"number_of_phases_from_associated_pvt"`
}

type physicsOptionsFile struct {
	EmulsionModel     EmulsionModelType `yaml:"emulsion_model"`
	SolidsModel       SolidsModelType   `yaml:"solids_model"`
	HydrodynamicModel struct {
		SelectedBaseType HydrodynamicModelType `yaml:"selected_base_type"`
		Phases           []string              `yaml:"phases"`
		Fields           []string              `yaml:"fields"`
		Layers           []string              `yaml:"layers"`
		HasWaterPhase    bool                  `yaml:"has_water_phase"`
	} `yaml:"hydrodynamic_model"`
}

// LoadSnapshotFile reads a YAML snapshot from path.
func LoadSnapshotFile(path string) (*Static, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("simcontext: open snapshot: %w", err)
	}
	defer f.Close()
	return LoadSnapshot(f)
}

// LoadSnapshot decodes a YAML snapshot into a Static context. Every record
// is validated; all record errors are reported together.
func LoadSnapshot(r io.Reader) (*Static, error) {
	var doc snapshotFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("simcontext: decode snapshot: %w", err)
	}

	var (
		errs    *multierror.Error
		options []StaticOption
	)

	for idx, raw := range doc.Plugins {
		info, err := NewPluginInfo(raw.Caption, raw.Name, raw.Enabled, raw.Models)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("plugins[%d]: %w", idx, err))
			continue
		}
		options = append(options, WithPlugins(info))
	}

	for idx, raw := range doc.Pipelines {
		segments := make([]PipelineSegmentInfo, 0, len(raw.Segments))
		for segIdx, seg := range raw.Segments {
			info, err := NewPipelineSegmentInfo(seg.InnerDiameter, seg.StartPosition, seg.IsCustom, seg.Roughness)
			if err != nil {
				errs = multierror.Append(errs, fmt.Errorf("pipelines[%d].segments[%d]: %w", idx, segIdx, err))
				continue
			}
			segments = append(segments, info)
		}
		info, err := NewPipelineInfo(raw.Name, raw.EdgeName, segments, raw.TotalLength)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("pipelines[%d]: %w", idx, err))
			continue
		}
		options = append(options, WithPipelines(info))
	}

	for idx, raw := range doc.Nodes {
		var (
			info NodeInfo
			err  error
		)
		if raw.Phases != nil {
			info, err = NewNodeInfoWithPhases(raw.Name, *raw.Phases)
		} else {
			info, err = NewNodeInfo(raw.Name)
		}
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("nodes[%d]: %w", idx, err))
			continue
		}
		options = append(options, WithNodes(info))
	}

	for idx, raw := range doc.Edges {
		var (
			info EdgeInfo
			err  error
		)
		if raw.Phases != nil {
			info, err = NewEdgeInfoWithPhases(raw.Name, *raw.Phases)
		} else {
			info, err = NewEdgeInfo(raw.Name)
		}
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("edges[%d]: %w", idx, err))
			continue
		}
		options = append(options, WithEdges(info))
	}

	if raw := doc.PhysicsOptions; raw != nil {
		hydro, err := NewHydrodynamicModelInfo(
			raw.HydrodynamicModel.SelectedBaseType,
			raw.HydrodynamicModel.Phases,
			raw.HydrodynamicModel.Fields,
			raw.HydrodynamicModel.Layers,
			raw.HydrodynamicModel.HasWaterPhase,
		)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("physics_options: %w", err))
		} else {
			physics, err := NewPhysicsOptionsInfo(raw.EmulsionModel, raw.SolidsModel, hydro)
			if err != nil {
				errs = multierror.Append(errs, fmt.Errorf("physics_options: %w", err))
			} else {
				options = append(options, WithPhysicsOptions(physics))
			}
		}
	}

	for name, values := range doc.Models {
		options = append(options, WithModels(NewMapModel(name, values)))
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("simcontext: invalid snapshot: %w", err)
	}
	return NewStatic(options...), nil
}
