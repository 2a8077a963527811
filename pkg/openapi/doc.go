// Package openapi exports plugin models as an OpenAPI 3 document so form
// renderers reading x-formgen extensions can present a plugin configuration
// outside the host application. Each model becomes a component schema and a
// PUT operation whose request body references it.
package openapi
