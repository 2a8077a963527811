package widgets

import (
	"testing"

	"github.com/goliatone/go-alfasim-sdk/pkg/fields"
)

func TestResolve_Builtins(t *testing.T) {
	reg := NewRegistry()
	length := fields.Must(fields.NewQuantity("Length", 1, "m"))

	cases := []struct {
		name   string
		field  fields.Field
		expect string
	}{
		{
			name:   "string text",
			field:  fields.Must(fields.NewString("Name", "x")),
			expect: WidgetText,
		},
		{
			name:   "boolean toggle",
			field:  fields.Must(fields.NewBoolean("Active", true)),
			expect: WidgetToggle,
		},
		{
			name:   "short enum radio",
			field:  fields.Must(fields.NewEnum("Phase", []string{"gas", "oil"})),
			expect: WidgetRadio,
		},
		{
			name:   "long enum select",
			field:  fields.Must(fields.NewEnum("Model", []string{"a", "b", "c", "d"})),
			expect: WidgetSelect,
		},
		{
			name:   "quantity",
			field:  length,
			expect: WidgetQuantity,
		},
		{
			name:   "table column quantity",
			field:  fields.Must(fields.NewTableColumn("length", length)),
			expect: WidgetQuantity,
		},
		{
			name:   "multiple reference chips",
			field:  fields.Must(fields.NewMultipleReference("Tracers", fields.Tracer)),
			expect: WidgetChips,
		},
		{
			name:   "data reference",
			field:  fields.Must(fields.NewDataReference("Tracer", fields.Tracer)),
			expect: WidgetDataReference,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := reg.Resolve(tc.field)
			if !ok {
				t.Fatalf("expected resolution for %s", tc.name)
			}
			if got != tc.expect {
				t.Fatalf("resolve %s: want %q, got %q", tc.name, tc.expect, got)
			}
		})
	}
}

func TestResolve_PriorityOverride(t *testing.T) {
	reg := NewRegistry()
	reg.Register("custom", 999, func(field fields.Field) bool {
		return field.Kind() == fields.KindBoolean
	})

	got, ok := reg.Resolve(fields.Must(fields.NewBoolean("Active", false)))
	if !ok || got != "custom" {
		t.Fatalf("priority matcher should win, got %q (ok=%v)", got, ok)
	}
}

func TestResolve_EmptyRegistry(t *testing.T) {
	var reg Registry
	if got, ok := reg.Resolve(fields.Must(fields.NewString("Name", "x"))); ok {
		t.Fatalf("empty registry resolved %q", got)
	}
	if _, ok := (*Registry)(nil).Resolve(nil); ok {
		t.Fatal("nil registry must not resolve")
	}
}
