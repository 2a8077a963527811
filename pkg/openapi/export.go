package openapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"go.uber.org/zap"

	"github.com/goliatone/go-alfasim-sdk/pkg/fields"
	"github.com/goliatone/go-alfasim-sdk/pkg/model"
	"github.com/goliatone/go-alfasim-sdk/pkg/uischema"
	"github.com/goliatone/go-alfasim-sdk/pkg/units"
	"github.com/goliatone/go-alfasim-sdk/pkg/widgets"
)

const (
	extensionNamespace = "x-formgen"
	componentPrefix    = "#/components/schemas/"
	openAPIVersion     = "3.0.3"
)

// Option configures an Exporter.
type Option func(*Exporter)

// WithUnits selects the database unit choices are listed from. The default
// is units.Default().
func WithUnits(db *units.Database) Option {
	return func(e *Exporter) {
		if db != nil {
			e.units = db
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Exporter) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithWidgets selects the registry choosing the widget hint of every
// property. The default is widgets.NewRegistry().
func WithWidgets(reg *widgets.Registry) Option {
	return func(e *Exporter) {
		if reg != nil {
			e.widgets = reg
		}
	}
}

// WithOverlay applies the presentation overlays of store to the hints and
// titles of the exported components.
func WithOverlay(store *uischema.Store) Option {
	return func(e *Exporter) {
		e.overlay = uischema.NewDecorator(store)
	}
}

// Exporter converts schemas into OpenAPI documents.
type Exporter struct {
	units   *units.Database
	widgets *widgets.Registry
	overlay *uischema.Decorator
	logger  *zap.Logger
}

// New creates an Exporter.
func New(opts ...Option) *Exporter {
	e := &Exporter{units: units.Default(), widgets: widgets.NewRegistry(), logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Export builds and validates a document with the default exporter.
func Export(ctx context.Context, title, version string, schemas ...*model.Schema) (*openapi3.T, error) {
	return New().Export(ctx, title, version, schemas...)
}

// Export builds one component schema per model, adding the item model of
// every container, and validates the result.
func (e *Exporter) Export(ctx context.Context, title, version string, schemas ...*model.Schema) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(title) == "" {
		return nil, errors.New("openapi: title is required")
	}
	if strings.TrimSpace(version) == "" {
		return nil, errors.New("openapi: version is required")
	}

	ordered, err := collect(schemas)
	if err != nil {
		return nil, err
	}

	doc := &openapi3.T{
		OpenAPI: openAPIVersion,
		Info:    &openapi3.Info{Title: title, Version: version},
		Paths:   openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: make(openapi3.Schemas, len(ordered)),
		},
	}

	built := make(map[string]*openapi3.Schema, len(ordered))
	for _, schema := range ordered {
		component, err := e.component(schema, built)
		if err != nil {
			return nil, err
		}
		built[schema.Name()] = component
		doc.Components.Schemas[schema.Name()] = openapi3.NewSchemaRef("", component)
		doc.Paths.Set("/models/"+schema.Name(), &openapi3.PathItem{Put: operation(schema, component)})
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi: validate: %w", err)
	}
	e.logger.Debug("openapi document exported",
		zap.String("title", title),
		zap.Int("schemas", len(ordered)),
	)
	return doc, nil
}

// Marshal renders doc as indented JSON.
func Marshal(doc *openapi3.T) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("openapi: document is nil")
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("openapi: marshal: %w", err)
	}
	return data, nil
}

// Load parses and validates a document produced by Marshal.
func Load(ctx context.Context, data []byte) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi: validate: %w", err)
	}
	return doc, nil
}

func collect(schemas []*model.Schema) ([]*model.Schema, error) {
	var ordered []*model.Schema
	seen := make(map[string]*model.Schema)
	add := func(schema *model.Schema) error {
		if prev, ok := seen[schema.Name()]; ok {
			if prev != schema && !prev.Equal(schema) {
				return fmt.Errorf("openapi: two different models are named %s", schema.Name())
			}
			return nil
		}
		seen[schema.Name()] = schema
		ordered = append(ordered, schema)
		return nil
	}
	for i, schema := range schemas {
		if schema == nil {
			return nil, fmt.Errorf("openapi: schemas[%d] is nil", i)
		}
		if schema.IsContainer() {
			if err := add(schema.Model()); err != nil {
				return nil, err
			}
		}
		if err := add(schema); err != nil {
			return nil, err
		}
	}
	if len(ordered) == 0 {
		return nil, errors.New("openapi: at least one model is required")
	}
	return ordered, nil
}

func operation(schema *model.Schema, component *openapi3.Schema) *openapi3.Operation {
	body := openapi3.NewRequestBody().
		WithRequired(true).
		WithJSONSchemaRef(openapi3.NewSchemaRef(componentPrefix+schema.Name(), component))
	return &openapi3.Operation{
		OperationID: "configure" + schema.Name(),
		Summary:     schema.Caption(),
		RequestBody: &openapi3.RequestBodyRef{Value: body},
		Responses: openapi3.NewResponses(
			openapi3.WithStatus(204, &openapi3.ResponseRef{
				Value: openapi3.NewResponse().WithDescription("Configuration saved"),
			}),
		),
	}
}

// component converts schema. built holds the components converted so far;
// a container's item model is always among them.
func (e *Exporter) component(schema *model.Schema, built map[string]*openapi3.Schema) (*openapi3.Schema, error) {
	out := openapi3.NewObjectSchema()
	out.Title = schema.Caption()
	if title, ok := e.overlay.Title(schema.Name()); ok {
		out.Title = title
	}

	ext := map[string]any{
		"label": schema.Caption(),
		"kind":  schema.RefKind().String(),
	}
	if icon := schema.Icon(); icon != "" {
		ext["icon"] = icon
	}
	if schema.IsContainer() {
		ext["model"] = schema.Model().Name()
	}
	out.Extensions = map[string]any{extensionNamespace: ext}

	hints := model.UIHintsWith(schema, e.widgets)
	if err := e.overlay.Decorate(schema.Name(), hints); err != nil {
		return nil, fmt.Errorf("openapi: %w", err)
	}
	for _, nf := range schema.Fields() {
		prop, err := e.property(nf.Field)
		if err != nil {
			return nil, fmt.Errorf("openapi: %s.%s: %w", schema.Name(), nf.Name, err)
		}
		if prop.Extensions == nil {
			prop.Extensions = make(map[string]any, 1)
		}
		prop.Extensions[extensionNamespace] = stringMap(hints[nf.Name])
		out.WithProperty(nf.Name, prop)
	}

	if schema.IsContainer() {
		items := openapi3.NewArraySchema()
		items.Items = openapi3.NewSchemaRef(componentPrefix+schema.Model().Name(), built[schema.Model().Name()])
		items.Extensions = map[string]any{extensionNamespace: map[string]any{
			"label":  schema.Caption(),
			"widget": "collection",
		}}
		out.WithProperty("_children_list", items)
	}
	return out, nil
}

func (e *Exporter) property(field fields.Field) (*openapi3.Schema, error) {
	var prop *openapi3.Schema
	switch f := field.(type) {
	case *fields.String:
		prop = openapi3.NewStringSchema().WithDefault(f.Value())
	case *fields.Boolean:
		prop = openapi3.NewBoolSchema().WithDefault(f.Value())
	case *fields.Enum:
		values := make([]any, 0, len(f.Values()))
		for _, v := range f.Values() {
			values = append(values, v)
		}
		prop = openapi3.NewStringSchema().WithEnum(values...).WithDefault(f.Selected())
	case *fields.Quantity:
		prop = e.quantity(f)
	case *fields.TableColumn:
		prop = e.quantity(f.Value())
	case *fields.Table:
		prop = openapi3.NewObjectSchema()
		for _, row := range f.Rows() {
			column := e.quantity(row.Value())
			column.Title = row.Caption()
			prop.WithProperty(row.ID(), column)
		}
	case *fields.Reference:
		prop = reference(f.RefType(), f.ContainerType())
	case *fields.MultipleReference:
		prop = openapi3.NewArraySchema().WithItems(reference(f.RefType(), f.ContainerType()))
	case *fields.DataReference:
		prop = openapi3.NewStringSchema().WithEnum(f.Value().SimTypeName()).WithDefault(f.Value().SimTypeName())
	default:
		return nil, fmt.Errorf("unsupported field kind %s", field.Kind())
	}
	prop.Title = field.Caption()
	return prop, nil
}

func (e *Exporter) quantity(q *fields.Quantity) *openapi3.Schema {
	choices := []any{q.Unit()}
	if symbols, err := e.units.Units(q.Category()); err == nil && len(symbols) > 0 {
		choices = choices[:0]
		for _, symbol := range symbols {
			choices = append(choices, symbol)
		}
	}
	out := openapi3.NewObjectSchema()
	out.WithProperty("value", openapi3.NewFloat64Schema().WithDefault(q.Value()))
	out.WithProperty("unit", openapi3.NewStringSchema().WithEnum(choices...).WithDefault(q.Unit()))
	out.Required = []string{"value", "unit"}
	return out
}

func reference(target fields.RefType, container string) *openapi3.Schema {
	out := openapi3.NewObjectSchema()
	out.WithProperty("item_id", openapi3.NewUUIDSchema())
	if container != "" {
		out.WithProperty("container_key", openapi3.NewStringSchema().WithEnum(container).WithDefault(container))
	}
	out.Extensions = map[string]any{extensionNamespace + "-ref": target.RefName()}
	return out
}

func stringMap(in map[string]string) map[string]any {
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
