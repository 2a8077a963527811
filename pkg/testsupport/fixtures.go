package testsupport

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-alfasim-sdk/pkg/fields"
	"github.com/goliatone/go-alfasim-sdk/pkg/model"
	"github.com/goliatone/go-alfasim-sdk/pkg/plugin"
	"github.com/goliatone/go-alfasim-sdk/pkg/simcontext"
	"github.com/goliatone/go-alfasim-sdk/pkg/status"
	"github.com/goliatone/go-alfasim-sdk/pkg/variables"
)

// SamplePluginName is the name of the plugin built by SamplePlugin.
const SamplePluginName = "sample_plugin"

// Sample bundles the sample plugin with its schemas so tests can build
// instances without looking them up.
type Sample struct {
	Plugin  *plugin.Plugin
	Fluid   *model.Schema
	Fluids  *model.Schema
	Options *model.Schema
}

// SamplePlugin builds and validates a plugin exercising every field kind:
// Fluid is a data model with tabs and a table, Fluids aggregates it, and
// Options references it and the host's tracers.
func SamplePlugin(t *testing.T) Sample {
	t.Helper()

	b := model.NewBuilder()
	fluid, err := b.DataModel("Fluid", model.Meta{Caption: "Fluid", Icon: "water"},
		model.Attribute("name", fields.Must(fields.NewString("Name", "oil"))),
		model.Attribute("layout", model.NewTabs(
			model.NewTab("Properties",
				model.Attribute("density", fields.Must(fields.NewQuantity("Density", 850, "kg/m3"))),
				model.Attribute("phase", fields.Must(fields.NewEnum("Phase", []string{"gas", "oil", "water"}, fields.WithInitial("oil")))),
			),
			model.NewTab("Profile",
				model.Attribute("profile", fields.Must(fields.NewTable("Profile", []*fields.TableColumn{
					fields.Must(fields.NewTableColumn("length", fields.Must(fields.NewQuantity("Length", 0, "m")))),
					fields.Must(fields.NewTableColumn("temperature", fields.Must(fields.NewQuantity("Temperature", 300, "K")))),
				}))),
			),
		)),
	)
	if err != nil {
		t.Fatalf("fluid model: %v", err)
	}

	fluids, err := b.ContainerModel("Fluids", fluid, model.Meta{Caption: "Fluids"})
	if err != nil {
		t.Fatalf("fluids container: %v", err)
	}

	options, err := b.DataModel("Options", model.Meta{Caption: "Options"},
		model.Attribute("active", fields.Must(fields.NewBoolean("Active", true))),
		model.Attribute("fluid", fields.Must(fields.NewReference("Fluid", fluid, fields.WithContainerType("Fluids")))),
		model.Attribute("mixture", fields.Must(fields.NewMultipleReference("Mixture", fluid, fields.WithContainerType("Fluids")))),
		model.Attribute("tracer", fields.Must(fields.NewReference("Tracer", fields.Tracer))),
		model.Attribute("tracers", fields.Must(fields.NewDataReference("Tracers", fields.Tracer))),
		model.Attribute("factor", fields.Must(fields.NewQuantity("Factor", 1, "-",
			fields.WithEnableRule("Options.active == true"),
		))),
	)
	if err != nil {
		t.Fatalf("options model: %v", err)
	}

	mass, err := variables.New(nil, "sample_mass", "Sample Mass", "kg")
	if err != nil {
		t.Fatalf("variable: %v", err)
	}

	p, err := plugin.New(SamplePluginName,
		plugin.WithCaption("Sample Plugin"),
		plugin.WithModels(fluid, fluids, options),
		plugin.WithVariables(mass),
		plugin.WithStatus(SampleStatus),
	)
	if err != nil {
		t.Fatalf("plugin: %v", err)
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("validate plugin: %v", err)
	}
	return Sample{Plugin: p, Fluid: fluid, Fluids: fluids, Options: options}
}

// SampleStatus reports an error while Options is inactive and a warning
// while the host has no pipelines.
func SampleStatus(ctx simcontext.Context) []status.Message {
	var out []status.Message
	if options, err := ctx.GetModel("Options"); err == nil {
		if active, _ := options.Value("active"); active == false {
			if msg, err := status.NewErrorMessage("Options", "Options must be active"); err == nil {
				out = append(out, msg)
			}
		}
	}
	if len(ctx.GetPipelines()) == 0 {
		if msg, err := status.NewWarningMessage("Options", "no pipelines configured"); err == nil {
			out = append(out, msg)
		}
	}
	return out
}

// NewInstance creates an instance of schema, failing the test on error.
func NewInstance(t *testing.T, schema *model.Schema, overrides ...model.Attr) *model.Instance {
	t.Helper()

	inst, err := schema.New(overrides...)
	if err != nil {
		t.Fatalf("new %s instance: %v", schema.Name(), err)
	}
	return inst
}

// StaticContext wraps instances in a Static context with the sample plugin
// enabled.
func StaticContext(t *testing.T, instances ...*model.Instance) *simcontext.Static {
	t.Helper()

	names := make([]string, 0, len(instances))
	values := make([]simcontext.ModelValue, 0, len(instances))
	for _, inst := range instances {
		names = append(names, inst.ModelName())
		values = append(values, inst)
	}
	info, err := simcontext.NewPluginInfo("Sample Plugin", SamplePluginName, true, names)
	if err != nil {
		t.Fatalf("plugin info: %v", err)
	}
	return simcontext.NewStatic(
		simcontext.WithModels(values...),
		simcontext.WithPlugins(info),
	)
}

// AssertEqual fails the test with a diff when got and want differ.
func AssertEqual(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()

	if diff := cmp.Diff(want, got, opts...); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}
