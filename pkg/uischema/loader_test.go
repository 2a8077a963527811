package uischema_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-alfasim-sdk/pkg/fields"
	"github.com/goliatone/go-alfasim-sdk/pkg/model"
	"github.com/goliatone/go-alfasim-sdk/pkg/uischema"
)

const fluidOverlay = `models:
  Fluid:
    title: Fluid properties
    fields:
      density:
        label: Density at standard conditions
        widget: slider
        order: 0
        uiHints:
          step: "0.5"
`

const optionsOverlay = `{
  "models": {
    "Options": {
      "fields": {
        "name": {"section": "General", "placeholder": "optional"}
      }
    }
  }
}`

func TestLoadFS_YAMLAndJSON(t *testing.T) {
	store, err := uischema.LoadFS(fstest.MapFS{
		"ui/fluid.yaml":   {Data: []byte(fluidOverlay)},
		"ui/options.json": {Data: []byte(optionsOverlay)},
		"ui/README.md":    {Data: []byte("ignored")},
	})
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	if store.Empty() {
		t.Fatalf("expected store to contain models")
	}

	fluid, ok := store.Model("Fluid")
	if !ok {
		t.Fatalf("model Fluid not found")
	}
	if fluid.Title != "Fluid properties" || fluid.Source != "ui/fluid.yaml" {
		t.Fatalf("unexpected model %+v", fluid)
	}
	density := fluid.Fields["density"]
	if density.Widget != "slider" || density.Order == nil || *density.Order != 0 {
		t.Fatalf("density overlay not parsed: %+v", density)
	}

	options, ok := store.Model("Options")
	if !ok || options.Fields["name"].Section != "General" {
		t.Fatalf("json overlay not parsed: %+v", options)
	}
}

func TestLoadFS_Errors(t *testing.T) {
	cases := map[string]fstest.MapFS{
		"empty file": {"a.yaml": {Data: []byte("  ")}},
		"duplicate model": {
			"a.yaml": {Data: []byte(fluidOverlay)},
			"b.yaml": {Data: []byte(fluidOverlay)},
		},
		"negative order": {"a.yaml": {Data: []byte("models:\n  Fluid:\n    fields:\n      density: {order: -1}\n")}},
		"bad json":       {"a.json": {Data: []byte("{")}},
	}
	for name, fsys := range cases {
		if _, err := uischema.LoadFS(fsys); err == nil {
			t.Fatalf("%s: expected an error", name)
		}
	}

	store, err := uischema.LoadFS(nil)
	if err != nil || !store.Empty() {
		t.Fatalf("nil filesystem must give an empty store")
	}
}

func TestDecoratorOverridesHints(t *testing.T) {
	schema, err := model.NewBuilder().DataModel("Fluid", model.Meta{},
		model.Attribute("name", fields.Must(fields.NewString("Name", "oil"))),
		model.Attribute("density", fields.Must(fields.NewQuantity("Density", 850, "kg/m3"))),
	)
	if err != nil {
		t.Fatalf("DataModel: %v", err)
	}
	store, err := uischema.LoadFS(fstest.MapFS{"fluid.yaml": {Data: []byte(fluidOverlay)}})
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	dec := uischema.NewDecorator(store)

	hints := model.UIHints(schema)
	if err := dec.Decorate("Fluid", hints); err != nil {
		t.Fatalf("Decorate: %v", err)
	}
	want := map[string]string{
		model.HintLabel:    "Density at standard conditions",
		model.HintWidget:   "slider",
		model.HintOrder:    "0",
		model.HintUnit:     "kg/m3",
		model.HintCategory: "density",
		"step":             "0.5",
	}
	if diff := cmp.Diff(want, hints["density"]); diff != "" {
		t.Fatalf("density hints mismatch (-want +got):\n%s", diff)
	}
	if hints["name"][model.HintLabel] != "Name" {
		t.Fatalf("attributes without overlay must keep their hints, got %v", hints["name"])
	}
	if title, ok := dec.Title("Fluid"); !ok || title != "Fluid properties" {
		t.Fatalf("unexpected title %q", title)
	}

	other := model.UIHints(schema)
	delete(other, "density")
	err = dec.Decorate("Fluid", other)
	if err == nil || !strings.Contains(err.Error(), "unknown attribute(s) density") {
		t.Fatalf("expected unknown attribute error, got %v", err)
	}

	if err := uischema.NewDecorator(nil).Decorate("Fluid", hints); err != nil {
		t.Fatalf("nil store must be a no-op, got %v", err)
	}
}
