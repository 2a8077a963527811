package plugin

import (
	"fmt"
	"strings"

	multierror "github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"github.com/goliatone/go-alfasim-sdk/pkg/fields"
	"github.com/goliatone/go-alfasim-sdk/pkg/model"
	"github.com/goliatone/go-alfasim-sdk/pkg/simcontext"
	"github.com/goliatone/go-alfasim-sdk/pkg/status"
	"github.com/goliatone/go-alfasim-sdk/pkg/validation"
	"github.com/goliatone/go-alfasim-sdk/pkg/variables"
)

// Plugin is the registration of a plugin: the models it contributes to the
// host GUI, its additional secondary variables and its status function.
type Plugin struct {
	name      string
	caption   string
	models    []*model.Schema
	variables []variables.Variable
	status    status.Func
	logger    *zap.Logger
}

// Option configures a Plugin.
type Option func(*Plugin)

// WithCaption sets the display name. Defaults to the plugin name.
func WithCaption(caption string) Option {
	return func(p *Plugin) {
		p.caption = strings.TrimSpace(caption)
	}
}

// WithModels registers schemas in order.
func WithModels(schemas ...*model.Schema) Option {
	return func(p *Plugin) {
		p.models = append(p.models, schemas...)
	}
}

// WithVariables registers additional secondary variables.
func WithVariables(vars ...variables.Variable) Option {
	return func(p *Plugin) {
		p.variables = append(p.variables, vars...)
	}
}

// WithStatus sets the function answering alfasim_get_status.
func WithStatus(fn status.Func) Option {
	return func(p *Plugin) {
		p.status = fn
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Plugin) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates a plugin registration. Call Validate once every model is
// registered.
func New(name string, opts ...Option) (*Plugin, error) {
	if err := validation.Run(validation.NonEmptyString("name", name)); err != nil {
		return nil, fmt.Errorf("plugin: %w", err)
	}
	p := &Plugin{name: strings.TrimSpace(name), logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	if p.caption == "" {
		p.caption = p.name
	}
	return p, nil
}

func (p *Plugin) Name() string    { return p.name }
func (p *Plugin) Caption() string { return p.caption }

// Models returns the registered schemas in registration order. It answers
// the alfasim_get_data_model_type hook.
func (p *Plugin) Models() []*model.Schema { return append([]*model.Schema(nil), p.models...) }

// AdditionalVariables answers the alfasim_get_additional_variables hook.
func (p *Plugin) AdditionalVariables() []variables.Variable {
	return append([]variables.Variable(nil), p.variables...)
}

// Model looks a registered schema up by name.
func (p *Plugin) Model(name string) (*model.Schema, bool) {
	for _, schema := range p.models {
		if schema != nil && schema.Name() == name {
			return schema, true
		}
	}
	return nil, false
}

// ResolveRefType resolves ref_type names of declarations against the
// registered models and the built-in types.
func (p *Plugin) ResolveRefType(name string) (fields.RefType, bool) {
	if builtin, ok := fields.BuiltinType(name); ok {
		return builtin, true
	}
	if schema, ok := p.Model(name); ok {
		return schema, true
	}
	return nil, false
}

// Containers returns the registered containers aggregating the named data
// model.
func (p *Plugin) Containers(dataModel string) []*model.Schema {
	var out []*model.Schema
	for _, schema := range p.models {
		if schema != nil && schema.IsContainer() && schema.Model().Name() == dataModel {
			out = append(out, schema)
		}
	}
	return out
}

// Validate checks the registration as a whole and reports every problem:
// duplicate model or variable names, containers of unregistered models and
// references whose container_type is not a registered container of the
// referenced model.
func (p *Plugin) Validate() error {
	var result *multierror.Error

	seen := make(map[string]bool)
	for i, schema := range p.models {
		if schema == nil {
			result = multierror.Append(result, fmt.Errorf("models[%d] is nil", i))
			continue
		}
		if seen[schema.Name()] {
			result = multierror.Append(result, fmt.Errorf("model %s is registered more than once", schema.Name()))
		}
		seen[schema.Name()] = true
	}

	for _, schema := range p.models {
		if schema == nil {
			continue
		}
		if schema.IsContainer() {
			if registered, ok := p.Model(schema.Model().Name()); !ok || registered != schema.Model() {
				result = multierror.Append(result,
					fmt.Errorf("container %s aggregates %s, which is not registered", schema.Name(), schema.Model().Name()))
			}
		}
		for _, nf := range schema.Fields() {
			if err := p.checkReference(nf.Field); err != nil {
				result = multierror.Append(result, fmt.Errorf("model %s: attribute %s: %w", schema.Name(), nf.Name, err))
			}
		}
	}

	vars := make(map[string]bool)
	for _, v := range p.variables {
		if vars[v.Name()] {
			result = multierror.Append(result, fmt.Errorf("variable %s is declared more than once", v.Name()))
		}
		vars[v.Name()] = true
	}

	if err := result.ErrorOrNil(); err != nil {
		p.logger.Debug("plugin validation failed", zap.String("plugin", p.name), zap.Int("errors", len(result.Errors)))
		return fmt.Errorf("plugin %s: %w", p.name, err)
	}
	return nil
}

func (p *Plugin) checkReference(field fields.Field) error {
	var target fields.RefType
	var container string
	switch f := field.(type) {
	case *fields.Reference:
		target, container = f.RefType(), f.ContainerType()
	case *fields.MultipleReference:
		target, container = f.RefType(), f.ContainerType()
	default:
		return nil
	}
	if target.RefKind() != fields.RefDataModel {
		return nil
	}

	referenced, ok := p.Model(target.RefName())
	if !ok {
		return fmt.Errorf("%w: referenced model %s is not registered", validation.ErrInvalidReference, target.RefName())
	}
	for _, candidate := range p.Containers(referenced.Name()) {
		if candidate.Name() == container {
			return nil
		}
	}
	return fmt.Errorf("%w: container_type %s is not a registered container of %s",
		validation.ErrInvalidReference, container, referenced.Name())
}

// Info projects the registration into the record the host hands to enable
// expressions.
func (p *Plugin) Info(enabled bool) (simcontext.PluginInfo, error) {
	names := make([]string, 0, len(p.models))
	for _, schema := range p.models {
		if schema != nil {
			names = append(names, schema.Name())
		}
	}
	return simcontext.NewPluginInfo(p.caption, p.name, enabled, names)
}

// Status runs the status function. Plugins without one report nothing.
func (p *Plugin) Status(ctx simcontext.Context) []status.Message {
	if p.status == nil {
		return nil
	}
	return p.status(ctx)
}
