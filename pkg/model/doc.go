// Package model builds plugin model schemas from explicit, ordered attribute
// declarations.
//
//	b := model.NewBuilder()
//	fluid, err := b.DataModel("Fluid", model.Meta{Caption: "Fluid"},
//		model.Attribute("name", fields.Must(fields.NewString("Name", "water"))),
//		model.Attribute("density", fields.Must(fields.NewQuantity("Density", 1000, "kg/m3"))),
//	)
//	fluids, err := b.ContainerModel("FluidContainer", fluid, model.Meta{Caption: "Fluids"})
//
// Attribute names starting with "_" are reserved and fail the build; names
// starting with "__" are ignored. A data model may be composed from bases,
// whose attributes come first. The declared fields are defaults: Schema.New
// creates instances that copy them unless overridden. Schemas satisfy
// fields.RefType, so a data model can be the target of a Reference.
//
// The implementation lives in internal/model; the types here are aliases.
package model
