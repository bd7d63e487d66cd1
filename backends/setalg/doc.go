// Package setalg provides a Backend for in-memory row-id (or any
// comparable element) sets: union, intersection, and difference are
// computed directly over Go slices with map-based membership tests.
// It is the backend to reach for when results are small enough to
// materialize in full, as opposed to backends/bitmapalg's compressed
// bitmap representation.
package setalg
