package expr

import (
	"errors"
	"testing"

	"github.com/goliatone/go-alfasim-sdk/pkg/simcontext"
	"github.com/goliatone/go-alfasim-sdk/pkg/units"
)

func testContext(t *testing.T) simcontext.Context {
	t.Helper()

	hydro, err := simcontext.NewHydrodynamicModelInfo(
		simcontext.HydrodynamicThreeLayersGasOilWater,
		[]string{"gas", "oil", "water"},
		[]string{"gas", "oil", "water"},
		[]string{"gas", "oil", "water"},
		true,
	)
	if err != nil {
		t.Fatalf("hydrodynamic model: %v", err)
	}
	physics, err := simcontext.NewPhysicsOptionsInfo(simcontext.EmulsionBrinkman1952, simcontext.SolidsNoModel, hydro)
	if err != nil {
		t.Fatalf("physics options: %v", err)
	}
	plugin, err := simcontext.NewPluginInfo("Acme", "acme", true, []string{"Model"})
	if err != nil {
		t.Fatalf("plugin info: %v", err)
	}
	disabled, err := simcontext.NewPluginInfo("Other", "other", false, nil)
	if err != nil {
		t.Fatalf("plugin info: %v", err)
	}

	return simcontext.NewStatic(
		simcontext.WithPhysicsOptions(physics),
		simcontext.WithPlugins(plugin, disabled),
		simcontext.WithModels(simcontext.NewMapModel("Model", map[string]any{
			"enabled":  true,
			"flag":     "true",
			"mode":     "advanced",
			"length":   units.MustScalar(12.5, "m"),
			"count":    3,
			"nothing":  nil,
			"disabled": false,
		})),
	)
}

func TestRuleBooleanComparison(t *testing.T) {
	t.Parallel()

	ctx := testContext(t)
	cases := map[string]bool{
		"Model.enabled == true":  true,
		"Model.flag == true":     true,
		"Model.disabled == true": false,
		"Model.disabled != true": true,
		"Model.enabled":          true,
		"!Model.disabled":        true,
		"!Model.enabled":         false,
		"Model.nothing == null":  true,
		"Model.nothing":          false,
	}
	for rule, want := range cases {
		got, err := MustCompile(rule).Eval(ctx)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", rule, err)
		}
		if got != want {
			t.Fatalf("%s: expected %v, got %v", rule, want, got)
		}
	}
}

func TestRuleNumericAndStringComparison(t *testing.T) {
	t.Parallel()

	ctx := testContext(t)
	cases := map[string]bool{
		"Model.length > 10":        true,
		"Model.length <= 12.5":     true,
		"Model.count >= 4":         false,
		"Model.count == 3":         true,
		`Model.mode == "advanced"`: true,
		`Model.mode == 'basic'`:    false,
		"Model.mode != basic":      true,
		"(Model.count < 1 || Model.enabled) && !Model.disabled": true,
	}
	for rule, want := range cases {
		got, err := MustCompile(rule).Eval(ctx)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", rule, err)
		}
		if got != want {
			t.Fatalf("%s: expected %v, got %v", rule, want, got)
		}
	}
}

func TestRuleNamespaces(t *testing.T) {
	t.Parallel()

	ctx := testContext(t)
	cases := map[string]bool{
		"physics.has_water_phase":                                    true,
		"physics.emulsion_model == 'EmulsionModelType.brinkman1952'": true,
		"physics.hydrodynamic_model == hydrodynamic_model_2_fields":  false,
		"plugins.acme.enabled":                                       true,
		"plugins.other.enabled":                                      false,
	}
	for rule, want := range cases {
		got, err := MustCompile(rule).Eval(ctx)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", rule, err)
		}
		if got != want {
			t.Fatalf("%s: expected %v, got %v", rule, want, got)
		}
	}
}

func TestRuleUnresolved(t *testing.T) {
	t.Parallel()

	ctx := testContext(t)
	for _, rule := range []string{"Missing.attr", "Model.unknown", "plugins.ghost.enabled"} {
		_, err := MustCompile(rule).Eval(ctx)
		if !errors.Is(err, ErrUnresolved) {
			t.Fatalf("%s: expected ErrUnresolved, got %v", rule, err)
		}
		if MustCompile(rule).Expr()(ctx) {
			t.Fatalf("%s: unresolved rule must disable the field", rule)
		}
	}

	_, err := MustCompile("physics.has_water_phase").Eval(simcontext.NewStatic())
	if !errors.Is(err, ErrUnresolved) {
		t.Fatalf("expected ErrUnresolved without physics options, got %v", err)
	}
}

func TestCompileErrors(t *testing.T) {
	t.Parallel()

	for _, rule := range []string{
		"",
		"   ",
		"Model.enabled = true",
		"Model.enabled & Model.flag",
		"(Model.enabled",
		"Model.enabled ==",
		"Model.mode > 'x'",
		"enabled",
		"physics.unknown",
		"plugins.acme",
		"Model..attr",
		`Model.mode == "open`,
		"== true",
	} {
		if _, err := Compile(rule); err == nil {
			t.Fatalf("expected compile error for %q", rule)
		}
	}
}

func TestEvaluatorCachesRules(t *testing.T) {
	t.Parallel()

	ctx := testContext(t)
	eval := New()
	for i := 0; i < 2; i++ {
		ok, err := eval.Eval("Model.enabled && plugins.acme.enabled", ctx)
		if err != nil {
			t.Fatalf("Eval returned error: %v", err)
		}
		if !ok {
			t.Fatalf("expected true")
		}
	}

	if _, err := eval.Eval("Model.enabled &&", ctx); err == nil {
		t.Fatalf("expected error for incomplete rule")
	}
	if _, err := MustCompile("Model.enabled").Eval(nil); err == nil {
		t.Fatalf("expected error for nil context")
	}
}
