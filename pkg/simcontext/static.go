package simcontext

import (
	"fmt"
	"sort"
)

// Static is an in-memory Context over fixed records. It lets plugin authors
// exercise enable expressions and status hooks without the host.
type Static struct {
	models    map[string]ModelValue
	pipelines []PipelineInfo
	plugins   []PluginInfo
	edges     []EdgeInfo
	nodes     []NodeInfo
	physics   *PhysicsOptionsInfo
}

var _ Context = (*Static)(nil)

// StaticOption configures a Static context.
type StaticOption func(*Static)

// WithModels registers model values, keyed by ModelName.
func WithModels(models ...ModelValue) StaticOption {
	return func(s *Static) {
		for _, model := range models {
			if model == nil {
				continue
			}
			s.models[model.ModelName()] = model
		}
	}
}

// WithPipelines sets the pipelines reported by GetPipelines.
func WithPipelines(pipelines ...PipelineInfo) StaticOption {
	return func(s *Static) {
		s.pipelines = append(s.pipelines, pipelines...)
	}
}

// WithPlugins sets the plugins reported by GetPluginsInfos.
func WithPlugins(plugins ...PluginInfo) StaticOption {
	return func(s *Static) {
		s.plugins = append(s.plugins, plugins...)
	}
}

// WithEdges sets the edges reported by GetEdges.
func WithEdges(edges ...EdgeInfo) StaticOption {
	return func(s *Static) {
		s.edges = append(s.edges, edges...)
	}
}

// WithNodes sets the nodes reported by GetNodes.
func WithNodes(nodes ...NodeInfo) StaticOption {
	return func(s *Static) {
		s.nodes = append(s.nodes, nodes...)
	}
}

// WithPhysicsOptions sets the physics options.
func WithPhysicsOptions(options PhysicsOptionsInfo) StaticOption {
	return func(s *Static) {
		s.physics = &options
	}
}

// NewStatic builds a Static context.
func NewStatic(options ...StaticOption) *Static {
	s := &Static{models: make(map[string]ModelValue)}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Static) GetModel(name string) (ModelValue, error) {
	model, ok := s.models[name]
	if !ok {
		return nil, fmt.Errorf("%w: model %q", ErrNotFound, name)
	}
	return model, nil
}

// ModelNames lists registered model names, sorted.
func (s *Static) ModelNames() []string {
	names := make([]string, 0, len(s.models))
	for name := range s.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Static) GetPipelines() []PipelineInfo {
	return append([]PipelineInfo(nil), s.pipelines...)
}

func (s *Static) GetPluginsInfos() []PluginInfo {
	return append([]PluginInfo(nil), s.plugins...)
}

func (s *Static) GetPluginInfoByID(id string) (PluginInfo, error) {
	for _, plugin := range s.plugins {
		if plugin.name == id {
			return plugin, nil
		}
	}
	return PluginInfo{}, fmt.Errorf("%w: plugin %q", ErrNotFound, id)
}

func (s *Static) GetEdges() []EdgeInfo {
	return append([]EdgeInfo(nil), s.edges...)
}

func (s *Static) GetNodes() []NodeInfo {
	return append([]NodeInfo(nil), s.nodes...)
}

func (s *Static) GetPhysicsOptions() (PhysicsOptionsInfo, error) {
	if s.physics == nil {
		return PhysicsOptionsInfo{}, fmt.Errorf("%w: physics options", ErrNotFound)
	}
	return *s.physics, nil
}

// MapModel is a ModelValue backed by a plain map, used by snapshots and
// tests.
type MapModel struct {
	name   string
	values map[string]any
}

// NewMapModel copies values into a MapModel.
func NewMapModel(name string, values map[string]any) MapModel {
	copied := make(map[string]any, len(values))
	for key, value := range values {
		copied[key] = value
	}
	return MapModel{name: name, values: copied}
}

func (m MapModel) ModelName() string { return m.name }

func (m MapModel) Value(attr string) (any, bool) {
	value, ok := m.values[attr]
	return value, ok
}
