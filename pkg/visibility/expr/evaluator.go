package expr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/goliatone/go-alfasim-sdk/pkg/simcontext"
	"github.com/goliatone/go-alfasim-sdk/pkg/units"
	"github.com/goliatone/go-alfasim-sdk/pkg/visibility"
)

// ErrUnresolved is returned by Rule.Eval when an identifier cannot be
// resolved against the Context.
var ErrUnresolved = errors.New("expr: unresolved identifier")

const (
	physicsPrefix = "physics"
	pluginsPrefix = "plugins"
)

// Rule is a compiled enable rule.
type Rule struct {
	source string
	root   node
}

// Compile parses rule. Identifiers take one of the forms:
//
//	Model.attr                      attribute of a registered model
//	physics.emulsion_model          physics options (also solids_model,
//	                                hydrodynamic_model, has_water_phase)
//	plugins.<id>.enabled            whether a plugin is enabled
func Compile(rule string) (*Rule, error) {
	trimmed := strings.TrimSpace(rule)
	if trimmed == "" {
		return nil, errors.New("expr: empty expression")
	}
	tokens, err := scan(trimmed)
	if err != nil {
		return nil, err
	}
	root, err := parse(tokens)
	if err != nil {
		return nil, err
	}
	return &Rule{source: trimmed, root: root}, nil
}

// MustCompile is Compile that panics on error.
func MustCompile(rule string) *Rule {
	r, err := Compile(rule)
	if err != nil {
		panic(err)
	}
	return r
}

// String returns the rule source.
func (r *Rule) String() string { return r.source }

// Eval evaluates the rule against ctx.
func (r *Rule) Eval(ctx simcontext.Context) (bool, error) {
	if ctx == nil {
		return false, errors.New("expr: nil context")
	}
	return r.root.eval(ctx)
}

// Expr adapts the rule into a visibility.Expr. Evaluation errors disable the
// field.
func (r *Rule) Expr() visibility.Expr {
	return func(ctx simcontext.Context) bool {
		ok, err := r.Eval(ctx)
		return err == nil && ok
	}
}

// evaluator caches compiled rules by source.
type evaluator struct {
	mu    sync.RWMutex
	cache map[string]*Rule
}

// New returns a visibility.Evaluator backed by Compile.
func New() visibility.Evaluator {
	return &evaluator{cache: make(map[string]*Rule)}
}

func (e *evaluator) Eval(rule string, ctx simcontext.Context) (bool, error) {
	e.mu.RLock()
	compiled, ok := e.cache[rule]
	e.mu.RUnlock()
	if !ok {
		var err error
		compiled, err = Compile(rule)
		if err != nil {
			return false, err
		}
		e.mu.Lock()
		e.cache[rule] = compiled
		e.mu.Unlock()
	}
	return compiled.Eval(ctx)
}

type node interface {
	eval(ctx simcontext.Context) (bool, error)
}

type orNode struct{ left, right node }

func (n orNode) eval(ctx simcontext.Context) (bool, error) {
	left, err := n.left.eval(ctx)
	if err != nil || left {
		return left, err
	}
	return n.right.eval(ctx)
}

type andNode struct{ left, right node }

func (n andNode) eval(ctx simcontext.Context) (bool, error) {
	left, err := n.left.eval(ctx)
	if err != nil || !left {
		return false, err
	}
	return n.right.eval(ctx)
}

type notNode struct{ inner node }

func (n notNode) eval(ctx simcontext.Context) (bool, error) {
	v, err := n.inner.eval(ctx)
	return !v, err
}

type truthyNode struct{ ref ref }

func (n truthyNode) eval(ctx simcontext.Context) (bool, error) {
	v, err := n.ref.resolve(ctx)
	if err != nil {
		return false, err
	}
	return truthy(v), nil
}

type litKind int

const (
	litString litKind = iota
	litNumber
	litBool
	litNull
)

type literal struct {
	kind litKind
	text string
	num  float64
	b    bool
}

type compareNode struct {
	ref ref
	op  tokenKind
	lit literal
}

func (n compareNode) eval(ctx simcontext.Context) (bool, error) {
	v, err := n.ref.resolve(ctx)
	if err != nil {
		return false, err
	}
	switch n.op {
	case tokEq:
		return equals(v, n.lit), nil
	case tokNeq:
		return !equals(v, n.lit), nil
	}

	num, ok := number(v)
	if !ok {
		return false, fmt.Errorf("expr: %s is not numeric", n.ref)
	}
	switch n.op {
	case tokLt:
		return num < n.lit.num, nil
	case tokLte:
		return num <= n.lit.num, nil
	case tokGt:
		return num > n.lit.num, nil
	case tokGte:
		return num >= n.lit.num, nil
	}
	return false, fmt.Errorf("expr: unsupported operator %d", n.op)
}

type refKind int

const (
	refModel refKind = iota
	refPhysics
	refPlugin
)

type ref struct {
	kind refKind
	path []string
}

func (r ref) String() string {
	switch r.kind {
	case refPhysics:
		return physicsPrefix + "." + strings.Join(r.path, ".")
	case refPlugin:
		return pluginsPrefix + "." + strings.Join(r.path, ".")
	}
	return strings.Join(r.path, ".")
}

func parseRef(ident string) (ref, error) {
	parts := strings.Split(ident, ".")
	for _, part := range parts {
		if part == "" {
			return ref{}, fmt.Errorf("expr: malformed identifier %q", ident)
		}
	}
	switch parts[0] {
	case physicsPrefix:
		if len(parts) != 2 {
			return ref{}, fmt.Errorf("expr: %q must look like physics.<option>", ident)
		}
		switch parts[1] {
		case "emulsion_model", "solids_model", "hydrodynamic_model", "has_water_phase":
		default:
			return ref{}, fmt.Errorf("expr: unknown physics option %q", parts[1])
		}
		return ref{kind: refPhysics, path: parts[1:]}, nil
	case pluginsPrefix:
		if len(parts) != 3 || parts[2] != "enabled" {
			return ref{}, fmt.Errorf("expr: %q must look like plugins.<id>.enabled", ident)
		}
		return ref{kind: refPlugin, path: parts[1:]}, nil
	}
	if len(parts) != 2 {
		return ref{}, fmt.Errorf("expr: %q must look like Model.attribute", ident)
	}
	return ref{kind: refModel, path: parts}, nil
}

func (r ref) resolve(ctx simcontext.Context) (any, error) {
	switch r.kind {
	case refPhysics:
		opts, err := ctx.GetPhysicsOptions()
		if err != nil {
			return nil, fmt.Errorf("%w %s: %v", ErrUnresolved, r, err)
		}
		switch r.path[0] {
		case "emulsion_model":
			return string(opts.EmulsionModel()), nil
		case "solids_model":
			return string(opts.SolidsModel()), nil
		case "hydrodynamic_model":
			return string(opts.HydrodynamicModel().SelectedBaseType()), nil
		default:
			return opts.HydrodynamicModel().HasWaterPhase(), nil
		}
	case refPlugin:
		info, err := ctx.GetPluginInfoByID(r.path[0])
		if err != nil {
			return nil, fmt.Errorf("%w %s: %v", ErrUnresolved, r, err)
		}
		return info.Enabled(), nil
	}

	model, err := ctx.GetModel(r.path[0])
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrUnresolved, r, err)
	}
	v, ok := model.Value(r.path[1])
	if !ok {
		return nil, fmt.Errorf("%w %s", ErrUnresolved, r)
	}
	return v, nil
}

func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case units.Scalar:
		return val.Value() != 0
	}
	if num, ok := number(v); ok {
		return num != 0
	}
	return true
}

func number(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case int32:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint64:
		return float64(val), true
	case units.Scalar:
		return val.Value(), true
	case string:
		f, err := strconv.ParseFloat(val, 64)
		return f, err == nil
	}
	return 0, false
}

func equals(v any, lit literal) bool {
	switch lit.kind {
	case litNull:
		return v == nil
	case litBool:
		switch val := v.(type) {
		case bool:
			return val == lit.b
		case string:
			return strings.EqualFold(val, lit.text)
		}
		return false
	case litNumber:
		num, ok := number(v)
		return ok && num == lit.num
	}
	switch val := v.(type) {
	case string:
		return val == lit.text
	case fmt.Stringer:
		return val.String() == lit.text
	}
	return fmt.Sprint(v) == lit.text
}
