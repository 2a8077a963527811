// Package validation provides the predicate checks shared by field
// descriptors, context records and declarations, along with the FieldError
// type every check reports. Checks are composed with Run, which stops at the
// first violation so diagnostics always point at a single attribute.
package validation
