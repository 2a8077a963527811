package fields

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-alfasim-sdk/pkg/simcontext"
	"github.com/goliatone/go-alfasim-sdk/pkg/units"
	"github.com/goliatone/go-alfasim-sdk/pkg/validation"
)

func expectFieldError(t *testing.T, err error, kind error, attr, message string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error containing %q, got nil", message)
	}
	if !errors.Is(err, kind) {
		t.Fatalf("expected %v, got %v", kind, err)
	}
	if got, ok := validation.AttrOf(err); !ok || got != attr {
		t.Fatalf("expected attribute %q, got %q (%v)", attr, got, err)
	}
	if !strings.Contains(err.Error(), message) {
		t.Fatalf("expected message containing %q, got %q", message, err.Error())
	}
}

func TestCaptionIsRequired(t *testing.T) {
	_, err := NewString("  ", "value")
	expectFieldError(t, err, validation.ErrEmpty, "caption", `The field "caption" cannot be empty`)

	_, err = NewBoolean("", true)
	expectFieldError(t, err, validation.ErrEmpty, "caption", `The field "caption" cannot be empty`)
}

func TestStringAndBoolean(t *testing.T) {
	s, err := NewString("Name", "ALFAsim")
	if err != nil {
		t.Fatalf("NewString: %v", err)
	}
	if s.Kind() != KindString || s.Value() != "ALFAsim" || s.Caption() != "Name" {
		t.Fatalf("unexpected string field %+v", s)
	}
	if s.EnableExpr() != nil || !s.Enabled(nil) {
		t.Fatalf("field without enable expression must be enabled")
	}

	b := Must(NewBoolean("Active", true))
	if !b.Value() || b.Kind() != KindBoolean {
		t.Fatalf("unexpected boolean field %+v", b)
	}
}

func TestEnum(t *testing.T) {
	enum, err := NewEnum("c", []string{"a", "b"})
	if err != nil {
		t.Fatalf("NewEnum: %v", err)
	}
	if _, ok := enum.Initial(); ok {
		t.Fatalf("expected no initial value")
	}
	if enum.Selected() != "a" {
		t.Fatalf("expected first value selected, got %q", enum.Selected())
	}

	enum, err = NewEnum("c", []string{"b", "a"}, WithInitial("a"))
	if err != nil {
		t.Fatalf("NewEnum: %v", err)
	}
	if initial, ok := enum.Initial(); !ok || initial != "a" {
		t.Fatalf("expected initial a, got %q", initial)
	}
	if diff := cmp.Diff([]string{"b", "a"}, enum.Values()); diff != "" {
		t.Fatalf("values order mismatch (-want +got):\n%s", diff)
	}

	_, err = NewEnum("c", []string{"a", "b"}, WithInitial("z"))
	expectFieldError(t, err, validation.ErrNotMember, "initial", "The initial condition must be within the declared values")

	_, err = NewEnum("c", []string{"value1, value2"}, WithInitial(""))
	expectFieldError(t, err, validation.ErrNotMember, "initial", "The initial condition must be within the declared values")

	_, err = NewEnum("c", []string{""})
	expectFieldError(t, err, validation.ErrEmpty, "values", `Enum type cannot have an empty string on field "values"`)

	_, err = NewEnum("c", nil)
	expectFieldError(t, err, validation.ErrEmpty, "values", "values must be a list with strings.")

	_, err = NewEnum("c", []string{"a", "a"})
	expectFieldError(t, err, validation.ErrDuplicate, "values", `values must not repeat "a"`)
}

func TestEnumValuesAreCopied(t *testing.T) {
	values := []string{"a", "b"}
	enum := Must(NewEnum("c", values))
	values[0] = "mutated"
	got := enum.Values()
	got[1] = "mutated"
	if diff := cmp.Diff([]string{"a", "b"}, enum.Values()); diff != "" {
		t.Fatalf("enum values changed (-want +got):\n%s", diff)
	}
}

func TestQuantity(t *testing.T) {
	q, err := NewQuantity("Length", 1, "m")
	if err != nil {
		t.Fatalf("NewQuantity: %v", err)
	}
	if q.Category() != "length" {
		t.Fatalf("expected category length, got %q", q.Category())
	}
	if s := q.Scalar(); s.Value() != 1 || s.Unit() != "m" {
		t.Fatalf("unexpected scalar %v", s)
	}

	_, err = NewQuantity("Length", 1, "parsec")
	expectFieldError(t, err, validation.ErrUnknownUnit, "unit", "parsec is not a valid unit")

	_, err = NewQuantity("Length", 1, "")
	expectFieldError(t, err, validation.ErrEmpty, "unit", `The field "unit" cannot be empty`)

	db := units.New()
	if err := db.Register("length", units.Unit{Symbol: "ly", Factor: 9.4607e15}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	custom, err := NewQuantity("Distance", 2, "ly", WithUnits(db))
	if err != nil {
		t.Fatalf("NewQuantity with custom units: %v", err)
	}
	if custom.Category() != "length" {
		t.Fatalf("expected custom unit in length, got %q", custom.Category())
	}

	moved, err := q.WithValue(3)
	if err != nil {
		t.Fatalf("WithValue: %v", err)
	}
	if q.Value() != 1 || moved.Value() != 3 || moved.Unit() != "m" {
		t.Fatalf("WithValue must copy the field")
	}
}

func TestTableColumnCaptionComesFromQuantity(t *testing.T) {
	column, err := NewTableColumn("id", Must(NewQuantity("Col", 1, "m")))
	if err != nil {
		t.Fatalf("NewTableColumn: %v", err)
	}
	if column.Caption() != "Col" {
		t.Fatalf("expected caption Col, got %q", column.Caption())
	}

	_, err = NewTableColumn("id", nil)
	expectFieldError(t, err, validation.ErrTypeMismatch, "value", "value must be a Quantity")
}

func TestTable(t *testing.T) {
	_, err := NewTable("Profile", nil)
	expectFieldError(t, err, validation.ErrEmpty, "rows", "rows must be a list with TableColumn.")

	_, err = NewTable("Profile", []*TableColumn{nil})
	expectFieldError(t, err, validation.ErrTypeMismatch, "rows", "rows must be a list of TableColumn.")

	length := Must(NewTableColumn("length", Must(NewQuantity("Length", 0, "m"))))
	temperature := Must(NewTableColumn("temperature", Must(NewQuantity("Temperature", 300, "K"))))

	_, err = NewTable("Profile", []*TableColumn{length, length})
	expectFieldError(t, err, validation.ErrDuplicate, "rows", "rows must not repeat")

	table, err := NewTable("Profile", []*TableColumn{length, temperature})
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	if got, ok := table.Column("temperature"); !ok || got.Value().Unit() != "K" {
		t.Fatalf("expected temperature column")
	}
	if len(table.Rows()) != 2 {
		t.Fatalf("expected 2 rows")
	}
}

func TestEnableRule(t *testing.T) {
	f, err := NewString("Name", "x", WithEnableRule("Options.advanced == true"))
	if err != nil {
		t.Fatalf("NewString: %v", err)
	}
	if f.EnableRule() != "Options.advanced == true" {
		t.Fatalf("unexpected rule %q", f.EnableRule())
	}

	ctx := simcontext.NewStatic(simcontext.WithModels(
		simcontext.NewMapModel("Options", map[string]any{"advanced": false}),
	))
	if f.Enabled(ctx) {
		t.Fatalf("expected field disabled")
	}

	_, err = NewString("Name", "x", WithEnableRule("Options.advanced ="))
	expectFieldError(t, err, validation.ErrTypeMismatch, "enable_expr", "enable_expr must be a valid rule")

	called := false
	g := Must(NewBoolean("Flag", true, WithEnableExpr(func(simcontext.Context) bool {
		called = true
		return false
	})))
	if called {
		t.Fatalf("enable expression must not run at construction")
	}
	if g.Enabled(ctx) || !called {
		t.Fatalf("expected the host-side evaluation to call the expression")
	}
}

func TestEqualIgnoresIdentity(t *testing.T) {
	build := func() Field {
		return Must(NewTable("Profile", []*TableColumn{
			Must(NewTableColumn("length", Must(NewQuantity("Length", 0, "m")))),
		}, WithEnableRule("Options.advanced")))
	}
	a, b := build(), build()
	if a == b {
		t.Fatalf("expected distinct instances")
	}
	if !a.Equal(b) {
		t.Fatalf("expected structurally equal tables")
	}
	if a.Equal(Must(NewString("Profile", ""))) {
		t.Fatalf("different kinds must not be equal")
	}
}

func TestMustPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	Must(NewString("", "x"))
}

func TestCopiesWithNewValues(t *testing.T) {
	s := Must(NewString("Name", "a", WithEnableRule("Model.enabled")))
	s2 := s.WithValue("b")
	if s.Value() != "a" || s2.Value() != "b" || s2.EnableRule() != "Model.enabled" {
		t.Fatalf("unexpected string copy %q/%q rule %q", s.Value(), s2.Value(), s2.EnableRule())
	}
	if b := Must(NewBoolean("Flag", false)).WithValue(true); !b.Value() {
		t.Fatalf("expected boolean copy to hold true")
	}

	e := Must(NewEnum("Phase", []string{"oil", "water"}))
	selected, err := e.WithSelected("water")
	if err != nil {
		t.Fatalf("WithSelected: %v", err)
	}
	if e.Selected() != "oil" || selected.Selected() != "water" {
		t.Fatalf("unexpected enum selection %q/%q", e.Selected(), selected.Selected())
	}
	_, err = e.WithSelected("gas")
	expectFieldError(t, err, validation.ErrNotMember, "initial", "The initial condition must be within the declared values")

	q := Must(NewQuantity("Length", 1, "m"))
	converted, err := q.WithScalar(2.5, "km")
	if err != nil {
		t.Fatalf("WithScalar: %v", err)
	}
	if converted.Unit() != "km" || converted.Value() != 2.5 || q.Unit() != "m" {
		t.Fatalf("unexpected quantity copy %v %s", converted.Value(), converted.Unit())
	}
	_, err = q.WithScalar(1, "kg")
	expectFieldError(t, err, validation.ErrNotMember, "unit", "a unit of category length")
	_, err = q.WithScalar(1, "furlong")
	if !errors.Is(err, validation.ErrUnknownUnit) {
		t.Fatalf("expected unknown unit, got %v", err)
	}
}
