// Package core defines the hash-consed DAG at the heart of setexpr: the
// packed Id, the Node variants it addresses, and the Expression that owns
// the node store, the intern index, and the root list.
//
// An Expression starts with exactly one node — Empty at index 0 — and
// grows only through its smart constructors: Set, Union, Intersection,
// and Complement. Every compound node admitted through Union or
// Intersection already satisfies the structural invariants (sorted,
// deduplicated, no Empty/Universal member, length >= 2); there is no way
// to construct a malformed node through the public API.
//
// Id packs negation into its low bit:
//
//	raw = (index << 1) | negated
//
// so Complement is a pure bit flip — no node is allocated for it, and
// Empty/Universal share node index 0, differing only in that bit.
//
// Two orthogonal packages build on top of core without reaching into its
// private fields: optimizer rewrites an Expression's node store in place
// through its public accessors and smart constructors, and eval walks it
// read-only to materialize results against a caller-supplied backend.
// This mirrors how lvlath's graph/algorithms package only ever touches
// graph/core.Graph through its exported surface.
//
// # Identity and mutation
//
// Every Expression carries a random 128-bit token, regenerated whenever
// Prune or Compress rebuilds the node store. The token has no effect on
// evaluation; it exists so that external caches keyed by Expression
// identity (see package eval) can detect a structural rebuild and
// invalidate themselves instead of reading stale per-node results.
//
// Expression is not safe for concurrent mutation: a single Expression
// must not be written from more than one goroutine at a time. Concurrent
// read-only use of a fully-built Expression (e.g. evaluating it from
// multiple goroutines while it is never mutated) is safe.
package core
