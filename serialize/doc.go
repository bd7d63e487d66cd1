// Package serialize projects a core.Expression to and from a portable
// Snapshot: a flat (nodes, roots, token, generation) tuple that can be
// round-tripped through JSON (textual, via encoding/json) or MessagePack
// (binary, via gopkg.in/vmihailenco/msgpack.v2).
//
// A Snapshot's node list mirrors the Expression's node store by index,
// with child references stored as plain raw Id integers rather than
// core.Id values, so the encoding carries no dependency on the core
// package's internal representation beyond the documented
// (index<<1)|negation packing.
//
// Rebuilding an Expression from a Snapshot replays its nodes through the
// ordinary smart constructors (Set, Union, Intersection) in index order,
// which re-establishes the intern index exactly as construction from
// scratch would. The rebuilt Expression always receives a fresh,
// randomly generated identity token — Snapshot.Token is carried for
// informational and cache-versioning purposes only and is never
// reinstated as the live token of a decoded Expression.
package serialize
