// Package registry provides the central glue between figure scripts and Go
// code.
//
// A `figure` block in a script names its generator with a string; the
// Registry maps that string to the compiled Go function that renders the
// artifact. Registration happens explicitly at startup (each generator
// package implements Module), which is this engine's substitute for the
// decorator-style tagging a dynamic language would use. The calling contract
// of a registered function is verified by reflection immediately before
// invocation, so a mis-registered generator costs one figure, not the run.
package registry
