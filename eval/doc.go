// Package eval materializes a core.Expression against a caller-supplied
// Backend: a capability set that knows how to represent the universal
// set, the empty set, a single term, and how to union, intersect, and
// subtract results of its own result type R.
//
// Evaluate and EvaluateWith walk the node store in index order, which
// is always a valid topological order (a compound node's children are
// interned, and therefore allocated, before the compound itself). Each
// node's result is cached at two slots — positive and negated — keyed
// by raw Id, so a negated reference to an already-evaluated node costs
// one Backend.Difference call rather than a full re-walk.
//
// A Cache is reusable across many EvaluateWith calls against the same
// Expression: it is keyed by the Expression's identity token and clears
// itself automatically the first time it sees a mismatched token, which
// happens when it is handed the new Expression that Prune or Compress
// returns. Optimize keeps the token: it only appends nodes and remaps
// roots, so results cached for existing nodes stay valid.
//
// EvaluateWithPruning trades cache reuse for bounded peak memory: it
// computes per-node parent reference counts up front and frees a node's
// cache slots the moment its last parent has consumed them.
package eval
