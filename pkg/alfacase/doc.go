// Package alfacase reads and writes the plugin section of a case file: the
// configured instances of every model a plugin registers.
//
//	name: sample_plugin
//	gui_models:
//	  Fluids:
//	    _children_list:
//	      - _plugin_item_id: 6f1c0f0e-3a52-4b8e-9a0c-8d7b64a2f1d3
//	        name: oil
//	        density:
//	          value: 850
//	          unit: kg/m3
//	  Options:
//	    fluid:
//	      plugin_item_id: 6f1c0f0e-3a52-4b8e-9a0c-8d7b64a2f1d3
//	    tracer:
//	      tracer_id: 1
//
// Attributes are written in declaration order. Decode accepts documents that
// omit attributes; missing ones keep their defaults.
package alfacase
