package units

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

var (
	// ErrUnknownUnit is returned when a unit symbol does not resolve to any
	// category of the database.
	ErrUnknownUnit = errors.New("units: unknown unit")
	// ErrUnknownCategory is returned when a category name is not registered.
	ErrUnknownCategory = errors.New("units: unknown category")
)

// Unit describes a symbol inside a category. Values convert to the category
// base with base = value*Factor + Offset.
type Unit struct {
	Symbol   string  `yaml:"symbol"`
	Factor   float64 `yaml:"factor"`
	Offset   float64 `yaml:"offset,omitempty"`
	Category string  `yaml:"-"`
}

// Database maps unit symbols onto categories. The zero value is not usable;
// construct it with New or Load.
type Database struct {
	mu         sync.RWMutex
	categories []string
	units      map[string][]Unit
	defaults   map[string]string
}

// New returns an empty database.
func New() *Database {
	return &Database{
		units:    make(map[string][]Unit),
		defaults: make(map[string]string),
	}
}

var (
	defaultOnce sync.Once
	defaultDB   *Database
)

// Default returns the process-wide database seeded from the embedded
// catalog. Registrations on it are visible to every caller.
func Default() *Database {
	defaultOnce.Do(func() {
		db, err := LoadCatalog(defaultCatalog)
		if err != nil {
			panic(fmt.Sprintf("units: embedded catalog is invalid: %v", err))
		}
		defaultDB = db
	})
	return defaultDB
}

type catalogFile struct {
	Categories []struct {
		Name  string `yaml:"name"`
		Units []Unit `yaml:"units"`
	} `yaml:"categories"`
}

// Load parses a YAML catalog from r.
func Load(r io.Reader) (*Database, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("units: read catalog: %w", err)
	}
	return LoadCatalog(data)
}

// LoadCatalog parses a YAML catalog document.
func LoadCatalog(data []byte) (*Database, error) {
	var doc catalogFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("units: parse catalog: %w", err)
	}
	db := New()
	for _, category := range doc.Categories {
		if err := db.Register(category.Name, category.Units...); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// Register adds units to a category, creating the category on first use.
// A symbol keeps the first category it was registered with as its default.
func (db *Database) Register(category string, units ...Unit) error {
	name := strings.TrimSpace(category)
	if name == "" {
		return errors.New("units: category name is required")
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	if _, exists := db.units[name]; !exists {
		db.categories = append(db.categories, name)
		db.units[name] = nil
	}
	for _, unit := range units {
		symbol := strings.TrimSpace(unit.Symbol)
		if symbol == "" {
			return fmt.Errorf("units: category %q declares an empty symbol", name)
		}
		if unit.Factor == 0 {
			return fmt.Errorf("units: unit %q in category %q has a zero factor", symbol, name)
		}
		if db.indexOf(name, symbol) >= 0 {
			return fmt.Errorf("units: unit %q already registered in category %q", symbol, name)
		}
		unit.Symbol = symbol
		unit.Category = name
		db.units[name] = append(db.units[name], unit)
		if _, ok := db.defaults[symbol]; !ok {
			db.defaults[symbol] = name
		}
	}
	return nil
}

func (db *Database) indexOf(category, symbol string) int {
	for idx, unit := range db.units[category] {
		if unit.Symbol == symbol {
			return idx
		}
	}
	return -1
}

// DefaultCategory reports the default category of a unit symbol.
func (db *Database) DefaultCategory(symbol string) (string, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	category, ok := db.defaults[strings.TrimSpace(symbol)]
	return category, ok
}

// Lookup returns the unit registered for symbol inside category.
func (db *Database) Lookup(category, symbol string) (Unit, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	idx := db.indexOf(category, strings.TrimSpace(symbol))
	if idx < 0 {
		return Unit{}, false
	}
	return db.units[category][idx], true
}

// Categories lists category names in registration order.
func (db *Database) Categories() []string {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return append([]string(nil), db.categories...)
}

// Units lists the symbols of a category in registration order.
func (db *Database) Units(category string) ([]string, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	units, ok := db.units[category]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	out := make([]string, 0, len(units))
	for _, unit := range units {
		out = append(out, unit.Symbol)
	}
	return out, nil
}

// Symbols returns every registered symbol, sorted.
func (db *Database) Symbols() []string {
	db.mu.RLock()
	defer db.mu.RUnlock()
	out := make([]string, 0, len(db.defaults))
	for symbol := range db.defaults {
		out = append(out, symbol)
	}
	sort.Strings(out)
	return out
}

// Convert converts value from one unit to another inside category. When
// category is empty the default category of from is used.
func (db *Database) Convert(value float64, category, from, to string) (float64, error) {
	if category == "" {
		resolved, ok := db.DefaultCategory(from)
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, from)
		}
		category = resolved
	}
	src, ok := db.Lookup(category, from)
	if !ok {
		return 0, fmt.Errorf("%w: %q is not a %s unit", ErrUnknownUnit, from, category)
	}
	dst, ok := db.Lookup(category, to)
	if !ok {
		return 0, fmt.Errorf("%w: %q is not a %s unit", ErrUnknownUnit, to, category)
	}
	if src.Symbol == dst.Symbol {
		return value, nil
	}
	base := value*src.Factor + src.Offset
	return (base - dst.Offset) / dst.Factor, nil
}
