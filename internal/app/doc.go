// Package app wires the engine together and owns the run lifecycle:
// validate inputs, load the fingerprint store, discover figure scripts,
// execute stale figures through the runner, clean up the output directory,
// and persist the store back to disk.
package app
