// Package fields defines the field descriptors plugin models are declared
// with: String, Boolean, Enum, Quantity, TableColumn, Table, Reference,
// MultipleReference and DataReference.
//
// Every constructor validates its arguments with an ordered list of checks
// and returns the first violation as a *validation.FieldError naming the
// attribute. A constructed field never changes.
//
//	length := fields.Must(fields.NewQuantity("Length", 1, "m"))
//	mode := fields.Must(fields.NewEnum("Mode", []string{"fast", "exact"},
//		fields.WithInitial("fast"),
//		fields.WithEnableRule("Options.advanced == true"),
//	))
//
// Decode builds the same fields from loosely typed maps, such as YAML
// manifest attributes, checking value types at runtime.
package fields
