// Package plugin registers the models, secondary variables and status
// function of an ALFAsim plugin and checks them as a whole.
//
// Field and model constructors validate in isolation; Validate adds the
// checks that need the full registration, such as whether the container
// named by a Reference actually aggregates the referenced model. All
// problems are reported together.
package plugin
