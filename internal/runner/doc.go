// Package runner executes the figures of a loaded unit, one at a time.
//
// Execution is strictly sequential: a figure's staleness is evaluated, the
// store record is mutated, and the generator is invoked before the next
// figure is even looked at. That ordering is what makes the fingerprint
// bookkeeping correct without any locking.
package runner
