// Package units holds the unit-category database shared by every quantity in
// the SDK. The default database is seeded from an embedded YAML catalog and
// can be extended with Register; Scalar values are validated against it.
package units
