package openapi

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-alfasim-sdk/pkg/fields"
	"github.com/goliatone/go-alfasim-sdk/pkg/model"
	"github.com/goliatone/go-alfasim-sdk/pkg/uischema"
	"github.com/goliatone/go-alfasim-sdk/pkg/widgets"
)

func sampleSchemas(t *testing.T) (*model.Schema, *model.Schema, *model.Schema) {
	t.Helper()
	b := model.NewBuilder()
	fluid, err := b.DataModel("Fluid", model.Meta{Caption: "Fluid", Icon: "fluid.png"},
		model.Attribute("label", fields.Must(fields.NewString("Label", "crude"))),
		model.Attribute("density", fields.Must(fields.NewQuantity("Density", 850, "kg/m3"))),
		model.Attribute("layout", model.NewTabs(
			model.NewTab("Advanced",
				model.Attribute("phase", fields.Must(fields.NewEnum("Phase", []string{"oil", "water"}, fields.WithInitial("water")))),
				model.Attribute("active", fields.Must(fields.NewBoolean("Active", true, fields.WithEnableRule("Fluid.label == 'crude'")))),
			),
		)),
	)
	if err != nil {
		t.Fatalf("DataModel: %v", err)
	}
	fluids, err := b.ContainerModel("Fluids", fluid, model.Meta{Caption: "Fluids"})
	if err != nil {
		t.Fatalf("ContainerModel: %v", err)
	}
	options, err := b.DataModel("Options", model.Meta{},
		model.Attribute("fluid", fields.Must(fields.NewReference("Fluid", fluid, fields.WithContainerType("Fluids")))),
		model.Attribute("tracers", fields.Must(fields.NewMultipleReference("Tracers", fields.Tracer))),
		model.Attribute("profile", fields.Must(fields.NewTable("Profile", []*fields.TableColumn{
			fields.Must(fields.NewTableColumn("length", fields.Must(fields.NewQuantity("Length", 1, "m")))),
		}))),
	)
	if err != nil {
		t.Fatalf("DataModel: %v", err)
	}
	return fluid, fluids, options
}

func TestExportBuildsComponents(t *testing.T) {
	_, fluids, options := sampleSchemas(t)

	doc, err := Export(context.Background(), "Acme", "1.0.0", fluids, options)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	var names []string
	for name := range doc.Components.Schemas {
		names = append(names, name)
	}
	if len(names) != 3 {
		t.Fatalf("expected Fluid, Fluids and Options components, got %v", names)
	}

	fluid := doc.Components.Schemas["Fluid"].Value
	ext := fluid.Extensions[extensionNamespace].(map[string]any)
	if ext["icon"] != "fluid.png" || ext["kind"] != fields.RefDataModel.String() {
		t.Fatalf("unexpected component extension %v", ext)
	}

	density := fluid.Properties["density"].Value
	hints := density.Extensions[extensionNamespace].(map[string]any)
	want := map[string]any{
		"label":    "Density",
		"widget":   "quantity",
		"unit":     "kg/m3",
		"category": "density",
		"order":    "1",
	}
	if diff := cmp.Diff(want, hints); diff != "" {
		t.Fatalf("density hints mismatch (-want +got):\n%s", diff)
	}
	unit := density.Properties["unit"].Value
	if unit.Default != "kg/m3" || len(unit.Enum) < 2 {
		t.Fatalf("expected unit choices of the density category, got %v", unit.Enum)
	}

	active := fluid.Properties["active"].Value.Extensions[extensionNamespace].(map[string]any)
	if active["section"] != "Advanced" || active["enableExpr"] != "Fluid.label == 'crude'" {
		t.Fatalf("unexpected active hints %v", active)
	}
	phase := fluid.Properties["phase"].Value
	if phase.Default != "water" || len(phase.Enum) != 2 {
		t.Fatalf("unexpected enum schema %+v", phase)
	}

	container := doc.Components.Schemas["Fluids"].Value
	children := container.Properties["_children_list"].Value
	if children.Items.Ref != componentPrefix+"Fluid" {
		t.Fatalf("expected container items to reference Fluid, got %q", children.Items.Ref)
	}

	ref := doc.Components.Schemas["Options"].Value.Properties["fluid"].Value
	if ref.Extensions[extensionNamespace+"-ref"] != "Fluid" {
		t.Fatalf("expected reference target extension, got %v", ref.Extensions)
	}
	if ref.Extensions[extensionNamespace].(map[string]any)["container"] != "Fluids" {
		t.Fatalf("expected container hint, got %v", ref.Extensions)
	}

	if doc.Paths.Find("/models/Options") == nil {
		t.Fatalf("expected an operation per model")
	}
}

func TestExportRoundTripsThroughLoader(t *testing.T) {
	_, fluids, options := sampleSchemas(t)
	doc, err := Export(context.Background(), "Acme", "1.0.0", fluids, options)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	data, err := Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(data), `"x-formgen"`) {
		t.Fatalf("expected x-formgen extensions in output")
	}
	loaded, err := Load(context.Background(), data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	op := loaded.Paths.Find("/models/Fluid").Put
	if op == nil || op.OperationID != "configureFluid" {
		t.Fatalf("unexpected operation %+v", op)
	}
}

func TestExportRejectsBadInput(t *testing.T) {
	fluid, _, _ := sampleSchemas(t)
	ctx := context.Background()

	if _, err := Export(ctx, "", "1", fluid); err == nil {
		t.Fatalf("expected title error")
	}
	if _, err := Export(ctx, "Acme", "", fluid); err == nil {
		t.Fatalf("expected version error")
	}
	if _, err := Export(ctx, "Acme", "1"); err == nil {
		t.Fatalf("expected error without models")
	}
	if _, err := Export(ctx, "Acme", "1", nil); err == nil {
		t.Fatalf("expected error for nil schema")
	}

	other, err := model.NewBuilder().DataModel("Fluid", model.Meta{},
		model.Attribute("other", fields.Must(fields.NewString("Other", "x"))),
	)
	if err != nil {
		t.Fatalf("DataModel: %v", err)
	}
	if _, err := Export(ctx, "Acme", "1", fluid, other); err == nil {
		t.Fatalf("expected name clash error")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := Export(cancelled, "Acme", "1", fluid); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestExportWithCustomWidgets(t *testing.T) {
	fluid, _, _ := sampleSchemas(t)
	reg := widgets.NewRegistry()
	reg.Register("slider", 100, func(field fields.Field) bool {
		return field.Kind() == fields.KindQuantity
	})

	doc, err := New(WithWidgets(reg)).Export(context.Background(), "Acme", "1.0.0", fluid)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	props := doc.Components.Schemas["Fluid"].Value.Properties
	if got := props["density"].Value.Extensions[extensionNamespace].(map[string]any)["widget"]; got != "slider" {
		t.Fatalf("expected the registered widget, got %v", got)
	}
	if got := props["phase"].Value.Extensions[extensionNamespace].(map[string]any)["widget"]; got != widgets.WidgetRadio {
		t.Fatalf("expected built-in widgets to remain, got %v", got)
	}
}

func TestExportAppliesOverlay(t *testing.T) {
	fluid, _, _ := sampleSchemas(t)
	store, err := uischema.LoadFS(fstest.MapFS{
		"fluid.yaml": {Data: []byte("models:\n  Fluid:\n    title: Crude oil\n    fields:\n      density: {label: Standard density, section: Properties}\n")},
	})
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}

	doc, err := New(WithOverlay(store)).Export(context.Background(), "Acme", "1.0.0", fluid)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	component := doc.Components.Schemas["Fluid"].Value
	if component.Title != "Crude oil" {
		t.Fatalf("expected overlay title, got %q", component.Title)
	}
	hints := component.Properties["density"].Value.Extensions[extensionNamespace].(map[string]any)
	if hints["label"] != "Standard density" || hints["section"] != "Properties" {
		t.Fatalf("overlay not applied: %v", hints)
	}

	bad, err := uischema.LoadFS(fstest.MapFS{
		"fluid.yaml": {Data: []byte("models:\n  Fluid:\n    fields:\n      viscosity: {label: Viscosity}\n")},
	})
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	if _, err := New(WithOverlay(bad)).Export(context.Background(), "Acme", "1.0.0", fluid); err == nil || !strings.Contains(err.Error(), "viscosity") {
		t.Fatalf("expected unknown attribute error, got %v", err)
	}
}
