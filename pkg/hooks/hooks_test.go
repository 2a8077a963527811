package hooks

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-alfasim-sdk/pkg/variables"
)

func TestCatalogShape(t *testing.T) {
	all := All()
	if len(all) != 25 {
		t.Fatalf("expected 25 native hooks, got %d", len(all))
	}

	seen := make(map[string]bool)
	total := 0
	for _, category := range Categories() {
		hooks := ByCategory(category)
		if len(hooks) == 0 {
			t.Fatalf("category %s has no hooks", category)
		}
		total += len(hooks)
	}
	if total != len(all) {
		t.Fatalf("categories cover %d hooks, catalog has %d", total, len(all))
	}
	for _, h := range all {
		if seen[h.Name()] {
			t.Fatalf("duplicate hook %s", h.Name())
		}
		seen[h.Name()] = true
		if h.Summary() == "" {
			t.Fatalf("hook %s has no summary", h.Name())
		}
	}
}

func TestLookupAndPrototype(t *testing.T) {
	h, ok := Lookup("HOOK_CALCULATE_MASS_SOURCE_TERM")
	if !ok {
		t.Fatalf("expected lookup by macro to succeed")
	}
	if h.Category() != CategorySourceTerms || h.Returns() != "int" {
		t.Fatalf("unexpected hook %+v", h)
	}
	want := "int alfasim_v1_calculate_mass_source_term(void* ctx, void* mass_source, int n_fields, int n_control_volumes)"
	if h.Prototype() != want {
		t.Fatalf("prototype mismatch:\n got %s\nwant %s", h.Prototype(), want)
	}

	entrained, ok := Lookup("calculate_entrained_liquid_fraction")
	if !ok {
		t.Fatalf("expected entrained liquid fraction hook")
	}
	if entrained.Returns() != "double" {
		t.Fatalf("expected double return, got %s", entrained.Returns())
	}
	if got := entrained.Params()[0].Declaration(); got != "const double U_S[2]" {
		t.Fatalf("unexpected array declaration %q", got)
	}

	if _, ok := Lookup("missing"); ok {
		t.Fatalf("expected unknown hook lookup to fail")
	}
}

func TestParamsAreCopied(t *testing.T) {
	h, _ := Lookup("initialize")
	params := h.Params()
	params[0].Name = "changed"
	if again, _ := Lookup("initialize"); again.Params()[0].Name != "ctx" {
		t.Fatalf("catalog was mutated through Params")
	}
}

func TestCheckStatus(t *testing.T) {
	if err := CheckStatus(0); err != nil {
		t.Fatalf("expected nil for OK, got %v", err)
	}

	err := CheckStatus(-8)
	if !errors.Is(err, ErrReferenceNotSet) {
		t.Fatalf("expected REFERENCE_NOT_SET, got %v", err)
	}
	if errors.Is(err, ErrNotImplemented) {
		t.Fatalf("codes must not match each other")
	}
	if !strings.Contains(err.Error(), "REFERENCE_NOT_SET (-8)") {
		t.Fatalf("unexpected message %q", err.Error())
	}

	if got := CheckStatus(-42).Error(); !strings.Contains(got, "UNKNOWN(-42)") {
		t.Fatalf("unexpected message for unknown code %q", got)
	}

	var names []string
	for _, code := range Statuses() {
		names = append(names, code.String())
	}
	want := []string{
		"REFERENCE_NOT_SET", "UNKNOWN_REFERENCE_TYPE", "OUT_OF_BOUNDS", "UNKNOWN_CONTEXT",
		"NOT_AVAILABLE_DATA", "BUFFER_SIZE_INSUFFICIENT", "UNDEFINED_DATA", "NOT_IMPLEMENTED", "OK",
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("status order mismatch (-want +got):\n%s", diff)
	}
}

func TestEnums(t *testing.T) {
	if ScopeMixture != ScopeGlobal || ScopeGlobal.String() != "GLOBAL" {
		t.Fatalf("mixture and global must share a value")
	}
	if StateSigma.String() != "SIGMA" || int(StateSigma) != 7 {
		t.Fatalf("unexpected state variable %s=%d", StateSigma, int(StateSigma))
	}
	if WallViscosity.String() != "VISCOSITY" || int(WallViscosity) != 7 {
		t.Fatalf("unexpected wall property %s=%d", WallViscosity, int(WallViscosity))
	}
	if SDKDLLPathTooLong.String() != "SDK_DLL_PATH_TOO_LONG" {
		t.Fatalf("unexpected load error name %s", SDKDLLPathTooLong)
	}
}

func TestScopeOf(t *testing.T) {
	layer, err := variables.New(nil, "wall_t", "Wall T", "K",
		variables.WithLocation(variables.Face),
		variables.WithScope(variables.ScopeLayer),
	)
	if err != nil {
		t.Fatalf("variables.New: %v", err)
	}
	scope, err := ScopeOf(layer, TimestepPrevious)
	if err != nil {
		t.Fatalf("ScopeOf: %v", err)
	}
	if diff := cmp.Diff(VariableScope{Grid: GridFace, MFD: ScopeLayer, Timestep: TimestepPrevious}, scope); diff != "" {
		t.Fatalf("scope mismatch (-want +got):\n%s", diff)
	}

	energy, err := variables.New(nil, "heat", "Heat", "W", variables.WithScope(variables.ScopeEnergy))
	if err != nil {
		t.Fatalf("variables.New: %v", err)
	}
	if _, err := ScopeOf(energy, TimestepCurrent); err == nil {
		t.Fatalf("expected energy scope to have no array scope")
	}
}

func TestRenderHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderHeader(&buf, "acme-plugin"); err != nil {
		t.Fatalf("RenderHeader: %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "#ifndef _H_ACME_PLUGIN_HOOKS\n") {
		t.Fatalf("unexpected include guard:\n%s", out[:80])
	}
	for _, h := range All() {
		line := "#define " + h.Macro() + "("
		if !strings.Contains(out, line) {
			t.Fatalf("header is missing %s", h.Macro())
		}
	}
	for _, want := range []string{
		"REFERENCE_NOT_SET=-8,",
		"OK=0 /*!<",
		"#define HOOK_INITIALIZE(ctx) ALFASIM_HOOK_EXPORT int alfasim_v1_initialize(void* ctx)",
		"float alfasim_v1_env_temperature(float v3, float v4)",
		`__attribute__((visibility("default")))`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in header:\n%s", want, out)
		}
	}

	if err := RenderHeader(&buf, " "); err == nil {
		t.Fatalf("expected error for empty plugin name")
	}
}

func TestGUIHooks(t *testing.T) {
	var names []string
	for _, h := range GUIHooks() {
		names = append(names, h.Name)
	}
	want := []string{"alfasim_get_data_model_type", "alfasim_get_additional_variables", "alfasim_get_status"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("gui hooks mismatch (-want +got):\n%s", diff)
	}
}
