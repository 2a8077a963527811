package units

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scalar is a physical quantity: a value bound to a unit of a known category.
// Scalars are values; there are no setters. A scalar converts through the
// database that built it.
type Scalar struct {
	value    float64
	unit     string
	category string
	db       *Database
}

// NewScalar builds a scalar in the default category of unit, resolved
// against the default database.
func NewScalar(value float64, unit string) (Scalar, error) {
	return Default().Scalar(value, unit, "")
}

// MustScalar is NewScalar that panics on error. Intended for fixtures and
// package-level declarations.
func MustScalar(value float64, unit string) Scalar {
	s, err := NewScalar(value, unit)
	if err != nil {
		panic(err)
	}
	return s
}

// Scalar builds a scalar against db. An empty category selects the default
// category of unit.
func (db *Database) Scalar(value float64, unit, category string) (Scalar, error) {
	symbol := strings.TrimSpace(unit)
	if symbol == "" {
		return Scalar{}, fmt.Errorf("%w: unit is empty", ErrUnknownUnit)
	}
	if math.IsNaN(value) {
		return Scalar{}, errors.New("units: scalar value is NaN")
	}
	if category == "" {
		resolved, ok := db.DefaultCategory(symbol)
		if !ok {
			return Scalar{}, fmt.Errorf("%w: %q", ErrUnknownUnit, symbol)
		}
		category = resolved
	}
	if _, ok := db.Lookup(category, symbol); !ok {
		return Scalar{}, fmt.Errorf("%w: %q is not a %s unit", ErrUnknownUnit, symbol, category)
	}
	return Scalar{value: value, unit: symbol, category: category, db: db}, nil
}

func (s Scalar) Value() float64   { return s.value }
func (s Scalar) Unit() string     { return s.unit }
func (s Scalar) Category() string { return s.category }

// IsZero reports whether s is the zero Scalar (no unit).
func (s Scalar) IsZero() bool { return s.unit == "" }

// In returns the value of s expressed in unit.
func (s Scalar) In(unit string) (float64, error) {
	if s.IsZero() {
		return 0, errors.New("units: scalar is empty")
	}
	return s.database().Convert(s.value, s.category, s.unit, unit)
}

// Convert returns a new scalar expressed in unit.
func (s Scalar) Convert(unit string) (Scalar, error) {
	value, err := s.In(unit)
	if err != nil {
		return Scalar{}, err
	}
	return Scalar{value: value, unit: strings.TrimSpace(unit), category: s.category, db: s.db}, nil
}

func (s Scalar) database() *Database {
	if s.db == nil {
		return Default()
	}
	return s.db
}

func (s Scalar) String() string {
	return fmt.Sprintf("Scalar(%s, %q, %q)", strconv.FormatFloat(s.value, 'g', -1, 64), s.unit, s.category)
}

type scalarDocument struct {
	Value    float64 `yaml:"value"`
	Unit     string  `yaml:"unit"`
	Category string  `yaml:"category,omitempty"`
}

// MarshalYAML encodes the scalar as {value, unit}.
func (s Scalar) MarshalYAML() (any, error) {
	doc := scalarDocument{Value: s.value, Unit: s.unit}
	if def, ok := s.database().DefaultCategory(s.unit); !ok || def != s.category {
		doc.Category = s.category
	}
	return doc, nil
}

// UnmarshalYAML decodes {value, unit[, category]} and validates the unit.
func (s *Scalar) UnmarshalYAML(node *yaml.Node) error {
	var doc scalarDocument
	if err := node.Decode(&doc); err != nil {
		return fmt.Errorf("units: decode scalar: %w", err)
	}
	parsed, err := Default().Scalar(doc.Value, doc.Unit, doc.Category)
	if err != nil {
		return fmt.Errorf("units: line %d: %w", node.Line, err)
	}
	*s = parsed
	return nil
}
