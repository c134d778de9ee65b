// Package geometry is the geometry kernel: pure functions that derive
// geometric facts (wall outlines, door swings, bounds, containment, area)
// from shape parameters, plus the factory that builds shape records.
//
// Nothing in this package holds state; every function returns new values
// and never mutates its inputs.
package geometry
