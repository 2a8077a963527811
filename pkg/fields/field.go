package fields

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-alfasim-sdk/pkg/simcontext"
	"github.com/goliatone/go-alfasim-sdk/pkg/units"
	"github.com/goliatone/go-alfasim-sdk/pkg/validation"
	"github.com/goliatone/go-alfasim-sdk/pkg/visibility"
	"github.com/goliatone/go-alfasim-sdk/pkg/visibility/expr"
)

// Kind names a field variant. The values double as the `type` discriminator
// of manifest attributes.
type Kind string

const (
	KindString            Kind = "string"
	KindBoolean           Kind = "boolean"
	KindEnum              Kind = "enum"
	KindQuantity          Kind = "quantity"
	KindTableColumn       Kind = "table_column"
	KindTable             Kind = "table"
	KindReference         Kind = "reference"
	KindMultipleReference Kind = "multiple_reference"
	KindDataReference     Kind = "data_reference"
)

// Kinds lists every field kind in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindString,
		KindBoolean,
		KindEnum,
		KindQuantity,
		KindTableColumn,
		KindTable,
		KindReference,
		KindMultipleReference,
		KindDataReference,
	}
}

// Field is a captioned, validated configuration value declared by a plugin.
// Implementations are immutable once constructed.
type Field interface {
	Kind() Kind
	Caption() string
	// EnableExpr returns the enable predicate or nil when the field is always
	// enabled.
	EnableExpr() visibility.Expr
	// EnableRule returns the textual rule the predicate was compiled from, if
	// any.
	EnableRule() string
	Enabled(ctx simcontext.Context) bool
	Equal(other Field) bool

	base() *common
}

type common struct {
	caption string
	enable  visibility.Expr
	rule    string
}

func (c *common) Caption() string             { return c.caption }
func (c *common) EnableExpr() visibility.Expr { return c.enable }
func (c *common) EnableRule() string          { return c.rule }
func (c *common) base() *common               { return c }

// Enabled evaluates the enable predicate. Fields without one are enabled.
func (c *common) Enabled(ctx simcontext.Context) bool {
	if c.enable == nil {
		return true
	}
	return c.enable(ctx)
}

func (c *common) equal(other *common) bool {
	if other == nil {
		return false
	}
	return c.caption == other.caption &&
		c.rule == other.rule &&
		(c.enable == nil) == (other.enable == nil)
}

// Option configures optional field attributes.
type Option func(*config)

type config struct {
	enable        visibility.Expr
	rule          string
	ruleSet       bool
	initial       string
	initialSet    bool
	containerType string
	containerSet  bool
	db            *units.Database
}

// WithEnableExpr attaches an enable predicate. The host evaluates it; the SDK
// never calls it during construction.
func WithEnableExpr(fn visibility.Expr) Option {
	return func(cfg *config) {
		cfg.enable = fn
	}
}

// WithEnableRule attaches a textual enable rule, compiled when the field is
// constructed. See package expr for the grammar.
func WithEnableRule(rule string) Option {
	return func(cfg *config) {
		cfg.rule = strings.TrimSpace(rule)
		cfg.ruleSet = true
	}
}

// WithInitial sets the initial value of an Enum.
func WithInitial(value string) Option {
	return func(cfg *config) {
		cfg.initial = value
		cfg.initialSet = true
	}
}

// WithContainerType names the container model that aggregates the instances a
// Reference points at.
func WithContainerType(name string) Option {
	return func(cfg *config) {
		cfg.containerType = name
		cfg.containerSet = true
	}
}

// WithUnits selects the unit database used to validate Quantity units.
func WithUnits(db *units.Database) Option {
	return func(cfg *config) {
		cfg.db = db
	}
}

func newConfig(opts []Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

func (cfg *config) units() *units.Database {
	if cfg.db == nil {
		return units.Default()
	}
	return cfg.db
}

// commonChecks validates the attributes shared by every field and fills c on
// success.
func (cfg *config) commonChecks(caption string, c *common) []validation.Check {
	return []validation.Check{
		validation.NonEmptyString("caption", caption),
		func() error {
			c.caption = caption
			c.enable = cfg.enable
			if !cfg.ruleSet {
				return nil
			}
			rule, err := expr.Compile(cfg.rule)
			if err != nil {
				return &validation.FieldError{
					Attr:    "enable_expr",
					Kind:    validation.ErrTypeMismatch,
					Message: fmt.Sprintf("enable_expr must be a valid rule: %v", err),
				}
			}
			c.rule = rule.String()
			if cfg.enable == nil {
				c.enable = rule.Expr()
			} else {
				c.enable = visibility.All(cfg.enable, rule.Expr())
			}
			return nil
		},
	}
}

func build(kind Kind, checks []validation.Check) error {
	if err := validation.Run(checks...); err != nil {
		return fmt.Errorf("fields: %s: %w", kind, err)
	}
	return nil
}

// Must panics when err is non-nil and returns v otherwise. It is meant for
// package-level model declarations.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
