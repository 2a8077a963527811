package variables

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-alfasim-sdk/pkg/units"
	"github.com/goliatone/go-alfasim-sdk/pkg/validation"
)

func TestNewDefaults(t *testing.T) {
	v, err := New(nil, "plugin_viscosity", "Viscosity", "Pa.s")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got := []string{string(v.Visibility()), string(v.Location()), string(v.Scope()), v.Category()}
	want := []string{"output", "center", "global", "dynamic viscosity"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
	if !v.CheckedOnGUIDefault() {
		t.Fatalf("expected checked by default")
	}
}

func TestNewOptions(t *testing.T) {
	v, err := New(nil, "phi", "Tracer", "kg/kg",
		WithVisibility(Internal),
		WithLocation(Face),
		WithScope(ScopePhase),
		WithCheckedOnGUIDefault(false),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if v.Visibility() != Internal || v.Location() != Face || v.Scope() != ScopePhase || v.CheckedOnGUIDefault() {
		t.Fatalf("options not applied: %+v", v)
	}
}

func TestNewValidation(t *testing.T) {
	_, err := New(nil, "", "Caption", "m")
	if !errors.Is(err, validation.ErrEmpty) {
		t.Fatalf("expected empty name error, got %v", err)
	}
	_, err = New(nil, "x", "Caption", "parsec")
	if !errors.Is(err, units.ErrUnknownUnit) {
		t.Fatalf("expected unknown unit error, got %v", err)
	}
	_, err = New(nil, "x", "Caption", "m", WithScope("continuous_field"))
	if attr, _ := validation.AttrOf(err); attr != "multifield_scope" {
		t.Fatalf("expected scope error, got %v", err)
	}
}
