// Package uischema loads presentation overlays for plugin models and applies
// them to the renderer hints derived from field declarations. Overlays let a
// team relabel, regroup or re-widget attributes without touching the plugin
// manifest.
//
//	models:
//	  Fluid:
//	    title: Fluid properties
//	    fields:
//	      density:
//	        label: Density at standard conditions
//	        widget: slider
//	        order: 0
package uischema
