// Package builder provides a mutable staging area for assembling a
// Boolean set expression before it is compiled into an immutable, hash-
// consed core.Expression.
//
// Unlike core.Expression, a Builder never interns, sorts, or simplifies:
// every call to Set, Union, Intersection or Not allocates a fresh Handle
// pointing at a fresh node, in whatever order and however many times the
// caller likes — including ones that are never reachable from a root, or
// ones that reference a Handle that does not (yet, or ever) resolve to
// anything. This makes it convenient for programmatic generation, where
// the shape of the logic is not known until runtime.
//
// Not is a staged node here, not an eager bit flip: Builder has no
// notion of Id negation at all, so negation has to be represented as its
// own node kind until Compile folds the whole graph down into core's
// packed representation.
//
// Compile (and CompileInto, for appending into an existing expression)
// perform the one-time translation from the builder's loose handle graph
// into core's smart-constructed DAG: an iterative post-order walk that
// also breaks any accidental cycle a caller wired up, resolving a
// back-reference to core.Empty rather than recursing forever.
package builder
