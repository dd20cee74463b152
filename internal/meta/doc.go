// Package meta implements the fingerprint store: the persisted,
// content-hash-based cache that decides whether a figure script is stale.
//
// The on-disk format is a human-readable YAML document keyed by absolute
// script path:
//
//	/abs/path/to/waves.hcl:
//	    checksum: 3f79bb7b435b05321651daefd374cd...
//	    dependents:
//	        - /abs/path/to/figures/wave.svg
//
// The whole document is rewritten on every run. Validation is structural:
// an entry missing either key is reported as corrupt and left untouched on
// disk rather than repaired, because a store that cannot be trusted needs
// the operator, not a guess.
package meta
