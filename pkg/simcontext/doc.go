// Package simcontext defines the read-only view of host simulator state that
// plugin code receives: the Context façade and the immutable records it
// returns (plugins, pipelines, network nodes and edges, physics options).
//
// The host owns the real Context implementation. Static, together with
// LoadSnapshot, provides a fixed in-memory Context for tests and offline
// tooling.
package simcontext
