// Package visibility defines enable expressions: predicates over the host
// Context that decide whether a field is editable. Go code can supply an Expr
// directly; declarations loaded from YAML use textual rules compiled by the
// expr subpackage.
package visibility
