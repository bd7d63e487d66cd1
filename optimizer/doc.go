// Package optimizer rewrites a core.Expression in place, applying
// structural Boolean simplification (De Morgan normalization,
// flattening, absorption, pairwise relation reduction, union-only
// factoring) and, where the caller supplies one, domain-specific
// knowledge through a Merger.
//
// Optimize runs a fixed-point loop over every node the expression holds
// (live or not — dead nodes cost nothing extra to skip, and optimizing
// them is harmless), maintaining a remap vector from old node index to
// rewritten Id so that later nodes referencing earlier ones always see
// the already-optimized form. The loop reprocesses nodes newly appended
// during the same pass, so a single Optimize call already converges to
// a local fixed point in the common case; MaxIterations exists only to
// cap pathological inputs.
//
// The relation oracle (SetRelation, Merger) lets absorption and pairwise
// reduction see past plain structural equality: a caller that knows
// "California implies USA" can have that fact eliminate the California
// term from `California | USA` without either term changing shape.
// Without a Merger, the optimizer still performs every purely structural
// simplification; it just never discovers domain relationships.
//
// Optimize never removes dead nodes from the node store — it only
// rewrites roots and the live subgraph's internal references. Call
// core.Expression.Prune or Compress afterwards to reclaim that memory.
package optimizer
