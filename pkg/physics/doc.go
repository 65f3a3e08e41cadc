// Package physics simulates a single circle under gravity and air drag inside
// a rotating hexagonal boundary.
//
// Everything here is a total function over float64 values: degenerate
// geometry falls back to defined results (zero vector, segment start) and no
// operation returns an error. Inputs such as a non-positive radius are the
// caller's responsibility. A Body must not be stepped from two goroutines at
// once; distinct bodies share no state.
package physics
