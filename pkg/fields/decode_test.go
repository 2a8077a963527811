package fields

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-alfasim-sdk/pkg/validation"
)

func TestDecodeQuantityRejectsNonNumericValue(t *testing.T) {
	_, err := Decode(KindQuantity, map[string]any{
		"caption": "c",
		"value":   "not-a-number",
		"unit":    "m",
	}, nil)
	expectFieldError(t, err, validation.ErrTypeMismatch, "value", "'value' must be a real number")
}

func TestDecodeWrongScalarTypes(t *testing.T) {
	cases := []struct {
		kind  Kind
		attrs map[string]any
		attr  string
	}{
		{KindString, map[string]any{"caption": "c", "value": 1}, "value"},
		{KindString, map[string]any{"caption": 1, "value": "x"}, "caption"},
		{KindBoolean, map[string]any{"caption": "c", "value": 1}, "value"},
		{KindEnum, map[string]any{"caption": "c", "values": "a"}, "values"},
		{KindEnum, map[string]any{"caption": "c", "values": []any{1}}, "values"},
		{KindEnum, map[string]any{"caption": "c", "values": []any{"a"}, "initial": 3}, "initial"},
		{KindQuantity, map[string]any{"caption": "c", "value": 1, "unit": 1}, "unit"},
		{KindQuantity, map[string]any{"caption": "c", "value": true, "unit": "m"}, "value"},
		{KindTableColumn, map[string]any{"id": "x", "value": ""}, "value"},
		{KindTable, map[string]any{"caption": "c", "rows": ""}, "rows"},
		{KindTable, map[string]any{"caption": "c", "rows": []any{""}}, "rows"},
		{KindReference, map[string]any{"caption": "c", "ref_type": "TracerType", "container_type": 2}, "container_type"},
		{KindString, map[string]any{"caption": "c", "value": "x", "enable_expr": true}, "enable_expr"},
		{KindString, map[string]any{"value": "x"}, "caption"},
	}
	for _, tc := range cases {
		_, err := Decode(tc.kind, tc.attrs, nil)
		expectFieldError(t, err, validation.ErrTypeMismatch, tc.attr, tc.attr)
	}
}

func TestDecodeEnumMessages(t *testing.T) {
	_, err := Decode(KindEnum, map[string]any{"caption": "c", "values": "a"}, nil)
	expectFieldError(t, err, validation.ErrTypeMismatch, "values", "values must be a list, got a 'string'.")

	_, err = Decode(KindEnum, map[string]any{"caption": "c", "values": []any{1}}, nil)
	expectFieldError(t, err, validation.ErrTypeMismatch, "values", "values must be a list of strings, the item '1' is a 'int'")

	f, err := Decode(KindEnum, map[string]any{
		"caption": "Mode",
		"values":  []any{"fast", "exact"},
		"initial": "exact",
	}, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	enum := f.(*Enum)
	if initial, ok := enum.Initial(); !ok || initial != "exact" {
		t.Fatalf("unexpected initial %q", initial)
	}

	f, err = Decode(KindEnum, map[string]any{"caption": "Mode", "values": []any{"a"}, "initial": nil}, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if _, ok := f.(*Enum).Initial(); ok {
		t.Fatalf("null initial must leave the enum without one")
	}
}

func TestDecodeTable(t *testing.T) {
	f, err := Decode(KindTable, map[string]any{
		"caption": "Profile",
		"rows": []any{
			map[string]any{"id": "length", "value": map[string]any{"caption": "Length", "value": 0, "unit": "m"}},
			map[string]any{"id": "temperature", "value": map[string]any{"caption": "Temperature", "value": 300.0, "unit": "K"}},
		},
		"enable_expr": "Options.advanced",
	}, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	table := f.(*Table)
	var captions []string
	for _, row := range table.Rows() {
		captions = append(captions, row.Caption())
	}
	if diff := cmp.Diff([]string{"Length", "Temperature"}, captions); diff != "" {
		t.Fatalf("row captions mismatch (-want +got):\n%s", diff)
	}
	if table.EnableRule() != "Options.advanced" {
		t.Fatalf("expected enable rule, got %q", table.EnableRule())
	}

	_, err = Decode(KindTable, map[string]any{
		"caption": "Profile",
		"rows": []any{
			map[string]any{"id": "x", "caption": "X", "value": map[string]any{"caption": "X", "value": 0, "unit": "m"}},
		},
	}, nil)
	if err == nil || !strings.Contains(err.Error(), "rows[0]") || !strings.Contains(err.Error(), "caption") {
		t.Fatalf("expected caption to be rejected on a column, got %v", err)
	}
}

func TestDecodeReferences(t *testing.T) {
	data := stubModel{name: "Data", kind: RefDataModel}
	resolver := ResolverFunc(func(name string) (RefType, bool) {
		if name == data.name {
			return data, true
		}
		return nil, false
	})

	f, err := Decode(KindMultipleReference, map[string]any{
		"caption":        "Targets",
		"ref_type":       "Data",
		"container_type": "DataContainer",
	}, resolver)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got := f.(*MultipleReference).ContainerType(); got != "DataContainer" {
		t.Fatalf("unexpected container type %q", got)
	}

	_, err = Decode(KindReference, map[string]any{"caption": "c", "ref_type": "Unknown"}, resolver)
	expectFieldError(t, err, validation.ErrInvalidReference, "ref_type",
		"ref_type must be an ALFAsim type or a class decorated with 'data_model'")

	_, err = Decode(KindReference, map[string]any{"caption": "c", "ref_type": ""}, resolver)
	expectFieldError(t, err, validation.ErrTypeMismatch, "ref_type", "ref_type must be a class")

	_, err = Decode(KindReference, map[string]any{"caption": "c", "ref_type": "Data"}, resolver)
	expectFieldError(t, err, validation.ErrInvalidReference, "container_type", "The container_type field must be given")

	f, err = Decode(KindReference, map[string]any{"caption": "Tracer", "ref_type": "TracerType"}, nil)
	if err != nil {
		t.Fatalf("Decode tracer reference: %v", err)
	}
	if f.(*Reference).RefType().RefKind() != RefBuiltin {
		t.Fatalf("expected builtin reference")
	}

	if _, err := Decode(KindDataReference, map[string]any{"caption": "Tracer", "value": "TracerType"}, nil); err != nil {
		t.Fatalf("Decode data reference: %v", err)
	}
}

func TestDecodeRejectsUnknownInput(t *testing.T) {
	if _, err := Decode(Kind("slider"), map[string]any{}, nil); err == nil {
		t.Fatalf("expected unknown kind error")
	}
	_, err := Decode(KindString, map[string]any{"caption": "c", "value": "x", "tooltip": "?"}, nil)
	if err == nil || !strings.Contains(err.Error(), "tooltip") {
		t.Fatalf("expected unknown attribute error, got %v", err)
	}
	if kind, ok := ParseKind(" Quantity "); !ok || kind != KindQuantity {
		t.Fatalf("expected ParseKind to normalise, got %q", kind)
	}
	f, err := Decode(KindString, map[string]any{"caption": "c", "value": 1}, nil)
	if f != nil || err == nil {
		t.Fatalf("failed decode must return a nil field")
	}
}
