package visibility

import "github.com/goliatone/go-alfasim-sdk/pkg/simcontext"

// Expr decides whether a field is enabled. The host evaluates it with its
// current Context; the SDK only stores it.
type Expr func(ctx simcontext.Context) bool

// Evaluator evaluates a textual rule against a Context.
type Evaluator interface {
	Eval(rule string, ctx simcontext.Context) (bool, error)
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(rule string, ctx simcontext.Context) (bool, error)

// Eval delegates to the underlying function.
func (fn EvaluatorFunc) Eval(rule string, ctx simcontext.Context) (bool, error) {
	return fn(rule, ctx)
}

// Always is an Expr that enables the field unconditionally.
func Always(simcontext.Context) bool { return true }

// Not negates expr. A nil expr is treated as Always.
func Not(expr Expr) Expr {
	return func(ctx simcontext.Context) bool {
		if expr == nil {
			return false
		}
		return !expr(ctx)
	}
}

// All enables the field when every expr does.
func All(exprs ...Expr) Expr {
	return func(ctx simcontext.Context) bool {
		for _, expr := range exprs {
			if expr != nil && !expr(ctx) {
				return false
			}
		}
		return true
	}
}
