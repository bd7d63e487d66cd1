// Package boolalg provides a Backend for "is this true" evaluation:
// the result type is bool, a term is true when its key has been marked
// active, union is boolean OR, intersection is boolean AND, and
// difference is AND-NOT. It is the simplest possible Backend and a good
// fit for access-check style expressions ("does this user have
// permission?").
package boolalg
