package fields

import (
	"reflect"

	"github.com/goliatone/go-alfasim-sdk/pkg/validation"
)

// RefKind classifies the target of a reference.
type RefKind int

const (
	// RefBuiltin marks types provided by the simulator, such as TracerType.
	RefBuiltin RefKind = iota + 1
	// RefDataModel marks schemas built as data models.
	RefDataModel
	// RefContainerModel marks schemas built as container models.
	RefContainerModel
)

func (k RefKind) String() string {
	switch k {
	case RefBuiltin:
		return "builtin"
	case RefDataModel:
		return "data_model"
	case RefContainerModel:
		return "container_model"
	}
	return "unknown"
}

// RefType is anything a Reference can point at. Model schemas and the
// built-in ALFAsim types implement it.
type RefType interface {
	RefName() string
	RefKind() RefKind
}

// SimType is a type provided by the simulator itself.
type SimType interface {
	RefType
	SimTypeName() string
}

// TracerType references the tracers declared in the host project.
type TracerType struct{}

// Tracer is the TracerType value used in declarations.
var Tracer = TracerType{}

func (TracerType) RefName() string     { return "TracerType" }
func (TracerType) RefKind() RefKind    { return RefBuiltin }
func (TracerType) SimTypeName() string { return "tracer" }

var (
	refTypeIface = reflect.TypeOf((*RefType)(nil)).Elem()
	simTypeIface = reflect.TypeOf((*SimType)(nil)).Elem()
)

var builtinTypes = map[string]SimType{
	Tracer.RefName(): Tracer,
}

// BuiltinType resolves a built-in type by name.
func BuiltinType(name string) (SimType, bool) {
	t, ok := builtinTypes[name]
	return t, ok
}

const (
	msgRefNotType     = "ref_type must be a class"
	msgRefNotModel    = "ref_type must be an ALFAsim type or a class decorated with 'data_model'"
	msgRefContainer   = msgRefNotModel + ", got a class decorated with 'container_model'"
	msgContainerGiven = "The container_type field must be given when ref_type is a class decorated with 'data_model'"
)

// resolveRefType accepts a RefType value or a reflect.Type whose values
// implement RefType. Any other reflect.Type is a type the SDK does not know.
func resolveRefType(value any) (RefType, error) {
	switch v := value.(type) {
	case nil:
	case RefType:
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
			break
		}
		return v, nil
	case reflect.Type:
		if v == nil {
			break
		}
		if v.Implements(refTypeIface) {
			if zero, ok := reflect.Zero(v).Interface().(RefType); ok && v.Kind() != reflect.Pointer {
				return zero, nil
			}
		}
		return nil, &validation.FieldError{
			Attr:     "ref_type",
			Kind:     validation.ErrInvalidReference,
			Expected: "an ALFAsim type or a data model",
			Actual:   v.String(),
			Message:  msgRefNotModel,
		}
	}
	return nil, &validation.FieldError{
		Attr:     "ref_type",
		Kind:     validation.ErrTypeMismatch,
		Expected: "a type",
		Actual:   validation.Describe(value),
		Message:  msgRefNotType,
	}
}

type reference struct {
	common
	refType       RefType
	containerType string
}

func (r *reference) checks(refType any, cfg *config) []validation.Check {
	return []validation.Check{
		func() error {
			resolved, err := resolveRefType(refType)
			if err != nil {
				return err
			}
			r.refType = resolved
			return nil
		},
		func() error {
			switch r.refType.RefKind() {
			case RefBuiltin:
				return nil
			case RefDataModel:
				if !cfg.containerSet {
					return &validation.FieldError{
						Attr:    "container_type",
						Kind:    validation.ErrInvalidReference,
						Message: msgContainerGiven,
					}
				}
				return nil
			case RefContainerModel:
				return &validation.FieldError{
					Attr:     "ref_type",
					Kind:     validation.ErrInvalidReference,
					Expected: "an ALFAsim type or a data model",
					Actual:   r.refType.RefName(),
					Message:  msgRefContainer,
				}
			}
			return &validation.FieldError{
				Attr:    "ref_type",
				Kind:    validation.ErrInvalidReference,
				Actual:  r.refType.RefName(),
				Message: msgRefNotModel,
			}
		},
		func() error {
			if cfg.containerSet {
				r.containerType = cfg.containerType
				return validation.NonEmptyString("container_type", cfg.containerType)()
			}
			return nil
		},
	}
}

// RefType returns the referenced type.
func (r *reference) RefType() RefType { return r.refType }

// ContainerType returns the name of the container aggregating the referenced
// data model, or "" for built-in types.
func (r *reference) ContainerType() string { return r.containerType }

func (r *reference) equal(o *reference) bool {
	return r.common.equal(&o.common) &&
		r.refType.RefName() == o.refType.RefName() &&
		r.refType.RefKind() == o.refType.RefKind() &&
		r.containerType == o.containerType
}

// Reference selects one item of a container or one built-in entity.
type Reference struct {
	reference
}

// NewReference builds a Reference to refType, which is a RefType value (a
// data model schema or a built-in type) or a reflect.Type of one. References
// to data models require WithContainerType.
func NewReference(caption string, refType any, opts ...Option) (*Reference, error) {
	cfg := newConfig(opts)
	f := &Reference{}
	checks := append(cfg.commonChecks(caption, &f.common), f.checks(refType, cfg)...)
	if err := build(KindReference, checks); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Reference) Kind() Kind { return KindReference }

func (f *Reference) Equal(other Field) bool {
	o, ok := other.(*Reference)
	return ok && f.equal(&o.reference)
}

// MultipleReference selects several items of a container.
type MultipleReference struct {
	reference
}

// NewMultipleReference follows the rules of NewReference.
func NewMultipleReference(caption string, refType any, opts ...Option) (*MultipleReference, error) {
	cfg := newConfig(opts)
	f := &MultipleReference{}
	checks := append(cfg.commonChecks(caption, &f.common), f.checks(refType, cfg)...)
	if err := build(KindMultipleReference, checks); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *MultipleReference) Kind() Kind { return KindMultipleReference }

func (f *MultipleReference) Equal(other Field) bool {
	o, ok := other.(*MultipleReference)
	return ok && f.equal(&o.reference)
}

// DataReference points at a simulator-provided data set.
type DataReference struct {
	common
	value SimType
}

// NewDataReference builds a DataReference. value must be a SimType or a
// reflect.Type of one.
func NewDataReference(caption string, value any, opts ...Option) (*DataReference, error) {
	cfg := newConfig(opts)
	f := &DataReference{}
	checks := append(cfg.commonChecks(caption, &f.common), func() error {
		switch v := value.(type) {
		case SimType:
			f.value = v
			return nil
		case reflect.Type:
			if v != nil && v.Kind() != reflect.Pointer && v.Implements(simTypeIface) {
				f.value = reflect.Zero(v).Interface().(SimType)
				return nil
			}
		}
		return &validation.FieldError{
			Attr:     "value",
			Kind:     validation.ErrInvalidReference,
			Expected: "an ALFAsim type",
			Actual:   validation.Describe(value),
			Message:  "value must be a valid ALFAsim type",
		}
	})
	if err := build(KindDataReference, checks); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *DataReference) Kind() Kind     { return KindDataReference }
func (f *DataReference) Value() SimType { return f.value }

func (f *DataReference) Equal(other Field) bool {
	o, ok := other.(*DataReference)
	return ok && f.common.equal(&o.common) && f.value.RefName() == o.value.RefName()
}
