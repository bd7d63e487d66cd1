// Package setexpr is your in-memory playground for building, simplifying
// and evaluating Boolean set expressions over arbitrary user-defined
// terms.
//
// 🚀 What is setexpr?
//
//	A hash-consed, structurally-shared expression DAG that brings together:
//
//	  • Core primitives: Empty, Universal, Set, Union, Intersection and
//	    negation-by-reference over a content-addressed node store
//	  • A staging builder: assemble expressions with an explicit Not node
//	    before compiling them into the immutable DAG
//	  • An optimizer: fixed-point De Morgan flips, flattening, absorption,
//	    pairwise relation reduction and union-of-intersections factoring,
//	    driven by a pluggable domain relation oracle
//	  • Evaluator backends: walk the DAG once, bottom-up, into whatever
//	    result type a backend produces — booleans, row-id sets, bitmaps
//
// ✨ Why choose setexpr?
//
//   - Compact       — equal and complementary subexpressions collapse to
//     the same node; no two structurally identical expressions are ever
//     stored twice
//   - Extensible    — Evaluator backends and the relation oracle's Merger
//     are both plain interfaces; bring your own domain
//   - Pure Go       — no cgo, no hidden dependencies beyond the ones you
//     opt into (hashing, serialization, example backends)
//
// Under the hood, everything is organized under four subpackages:
//
//	core/       — Expression DAG, smart constructors, node store, iterators
//	builder/    — mutable staging graph compiled into an Expression
//	optimizer/  — fixed-point rewrite loop and the pluggable relation oracle
//	eval/       — evaluator driver, per-node cache, Backend interface
//
// plus serialize/ for snapshotting an Expression to JSON or msgpack, and
// backends/ for three ready-made Backend implementations (boolalg,
// setalg, bitmapalg).
//
// Quick ASCII example:
//
//	    A   B
//	     ╲ ╱
//	  (A∪B)∩¬C
//
// represents "in A or B, but not C" as a five-node DAG (A, B, C, A∪B and
// the intersection; ¬C is a bit on C's Id, not a node) sharing A and B
// with any other expression that mentions them.
//
//	go get github.com/katalvlaran/setexpr/core
package setexpr
