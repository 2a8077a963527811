package fields

import (
	"reflect"
	"testing"

	"github.com/goliatone/go-alfasim-sdk/pkg/validation"
)

type stubModel struct {
	name string
	kind RefKind
}

func (m stubModel) RefName() string  { return m.name }
func (m stubModel) RefKind() RefKind { return m.kind }

type invalidClass struct{}

type referenceCtor func(caption string, refType any, opts ...Option) (Field, error)

func referenceCtors() map[string]referenceCtor {
	return map[string]referenceCtor{
		"Reference": func(caption string, refType any, opts ...Option) (Field, error) {
			return asField[*Reference](NewReference(caption, refType, opts...))
		},
		"MultipleReference": func(caption string, refType any, opts ...Option) (Field, error) {
			return asField[*MultipleReference](NewMultipleReference(caption, refType, opts...))
		},
	}
}

func TestReferencePrecedence(t *testing.T) {
	data := stubModel{name: "Data", kind: RefDataModel}
	container := stubModel{name: "DataContainer", kind: RefContainerModel}

	for name, ctor := range referenceCtors() {
		t.Run(name, func(t *testing.T) {
			_, err := ctor("caption", "")
			expectFieldError(t, err, validation.ErrTypeMismatch, "ref_type", "ref_type must be a class")

			_, err = ctor("caption", nil)
			expectFieldError(t, err, validation.ErrTypeMismatch, "ref_type", "ref_type must be a class")

			_, err = ctor("caption", reflect.TypeOf(invalidClass{}))
			expectFieldError(t, err, validation.ErrInvalidReference, "ref_type",
				"ref_type must be an ALFAsim type or a class decorated with 'data_model'")

			_, err = ctor("caption", container)
			expectFieldError(t, err, validation.ErrInvalidReference, "ref_type",
				"ref_type must be an ALFAsim type or a class decorated with 'data_model', got a class decorated with 'container_model'")

			_, err = ctor("caption", data)
			expectFieldError(t, err, validation.ErrInvalidReference, "container_type",
				"The container_type field must be given when ref_type is a class decorated with 'data_model'")

			_, err = ctor("caption", data, WithContainerType(""))
			expectFieldError(t, err, validation.ErrEmpty, "container_type", `The field "container_type" cannot be empty`)

			f, err := ctor("caption", data, WithContainerType("DataContainer"))
			if err != nil {
				t.Fatalf("expected valid reference, got %v", err)
			}
			ref := f.(interface {
				RefType() RefType
				ContainerType() string
			})
			if ref.RefType().RefName() != "Data" || ref.ContainerType() != "DataContainer" {
				t.Fatalf("unexpected reference target %s in %s", ref.RefType().RefName(), ref.ContainerType())
			}

			if _, err := ctor("caption", Tracer); err != nil {
				t.Fatalf("expected tracer reference, got %v", err)
			}
			if _, err := ctor("caption", reflect.TypeOf(TracerType{})); err != nil {
				t.Fatalf("expected tracer type reference, got %v", err)
			}

			_, err = ctor("", Tracer)
			expectFieldError(t, err, validation.ErrEmpty, "caption", `The field "caption" cannot be empty`)
		})
	}
}

func TestReferenceEqual(t *testing.T) {
	data := stubModel{name: "Data", kind: RefDataModel}
	a := Must(NewReference("c", data, WithContainerType("Box")))
	b := Must(NewReference("c", data, WithContainerType("Box")))
	c := Must(NewReference("c", data, WithContainerType("Other")))
	m := Must(NewMultipleReference("c", data, WithContainerType("Box")))

	if !a.Equal(b) {
		t.Fatalf("expected equal references")
	}
	if a.Equal(c) {
		t.Fatalf("container type must take part in equality")
	}
	if a.Equal(m) {
		t.Fatalf("single and multiple references differ")
	}
}

func TestDataReference(t *testing.T) {
	f, err := NewDataReference("Tracer", Tracer)
	if err != nil {
		t.Fatalf("NewDataReference: %v", err)
	}
	if f.Value().SimTypeName() != "tracer" {
		t.Fatalf("unexpected sim type %q", f.Value().SimTypeName())
	}

	if _, err := NewDataReference("Tracer", reflect.TypeOf(TracerType{})); err != nil {
		t.Fatalf("NewDataReference from type: %v", err)
	}

	_, err = NewDataReference("Tracer", reflect.TypeOf(invalidClass{}))
	expectFieldError(t, err, validation.ErrInvalidReference, "value", "value must be a valid ALFAsim type")

	_, err = NewDataReference("Tracer", stubModel{name: "Data", kind: RefDataModel})
	expectFieldError(t, err, validation.ErrInvalidReference, "value", "value must be a valid ALFAsim type")
}
