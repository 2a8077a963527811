package simcontext

import "errors"

// ErrNotFound is returned by Context lookups when the requested model or
// plugin does not exist.
var ErrNotFound = errors.New("simcontext: not found")

// ModelValue is the read-only view of a populated plugin model handed out
// by Context.GetModel. Value returns the plain value of an attribute:
// string for String and Enum, bool for Boolean, float64 for Quantity.
type ModelValue interface {
	ModelName() string
	Value(attr string) (any, bool)
}

// Context is the host's read-only query façade. Plugin code receives it in
// enable expressions and status hooks; the host implements it. Every
// returned record is immutable.
type Context interface {
	GetModel(name string) (ModelValue, error)
	GetPipelines() []PipelineInfo
	GetPluginsInfos() []PluginInfo
	GetPluginInfoByID(id string) (PluginInfo, error)
	GetEdges() []EdgeInfo
	GetNodes() []NodeInfo
	GetPhysicsOptions() (PhysicsOptionsInfo, error)
}
