// Package manifest declares plugins in YAML instead of Go.
//
// A manifest names the plugin and lists its models and additional variables:
//
//	name: acme
//	caption: Acme
//	models:
//	  - name: Fluid
//	    attributes:
//	      - {name: density, type: quantity, caption: Density, value: 1000, unit: kg/m3}
//	      - {name: phase, type: enum, caption: Phase, values: [oil, water], initial: oil}
//	  - name: Fluids
//	    kind: container
//	    model: Fluid
//	variables:
//	  - {name: acme_rate, caption: Rate, unit: kg/s}
//
// Attribute order is kept. A model may only refer to models declared before
// it, in the same file or in a file that sorts earlier.
package manifest
