// Package hooks catalogs the callback contract between the simulator and
// plugin code: the native hooks with their C signatures, the status codes
// they return, the enums of the native API and the application-side hooks
// answered from a plugin registration.
//
// RenderHeader writes a C header with one HOOK_* macro per native hook so a
// plugin implements, for example:
//
//	HOOK_INITIALIZE(ctx) {
//	    return OK;
//	}
package hooks
