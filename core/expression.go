package core

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/cespare/xxhash/v2"
	uuid "github.com/satori/go.uuid"
)

// Expression is a self-contained, hash-consed Boolean-set-expression DAG.
// Every unique node — a term, a union, or an intersection — is stored
// exactly once; the smart constructors (Set, Union, Intersection,
// Complement) are the only way to grow it, and they return the existing
// Id whenever the requested node already exists.
//
// The zero value is not usable; construct with New.
type Expression[T comparable] struct {
	nodes []Node[T]
	index map[uint64][]Id
	roots []Id

	token      uuid.UUID
	generation uint64
}

// New returns an empty Expression: a single Empty node at index 0, no
// roots, and a fresh random identity token.
func New[T comparable]() *Expression[T] {
	e := &Expression[T]{
		nodes: []Node[T]{{Kind: KindEmpty}},
		index: make(map[uint64][]Id),
	}
	e.regenerateToken()
	return e
}

func (e *Expression[T]) regenerateToken() {
	token, err := uuid.NewV4()
	if err != nil {
		panic(fmt.Sprintf("core: failed to generate identity token: %v", err))
	}
	e.token = token
	e.generation++
}

// Token returns the Expression's current 128-bit random identity,
// regenerated every time Prune or Compress rebuilds the node store.
// External caches keyed by Expression identity should compare this
// value to detect a structural rebuild.
func (e *Expression[T]) Token() uuid.UUID { return e.token }

// Generation returns a monotonically increasing counter bumped every
// time Prune or Compress rebuilds the node store. Unlike Token, it is
// not random and carries no cache-binding meaning of its own — it
// exists as a cheap, human-readable hint for debugging and logging.
func (e *Expression[T]) Generation() uint64 { return e.generation }

// alloc interns node, returning its existing Id if an equal node is
// already present or allocating a fresh one otherwise. Callers must never
// pass a KindEmpty node; Empty is a constant, not an allocated node.
func (e *Expression[T]) alloc(n Node[T]) Id {
	h := nodeHash(n)
	for _, candidate := range e.index[h] {
		if nodeEqual(e.nodes[candidate.Index()], n) {
			return candidate
		}
	}
	id := newId(uint32(len(e.nodes)), false)
	e.nodes = append(e.nodes, n)
	e.index[h] = append(e.index[h], id)
	return id
}

// Set creates (or returns the existing id for) a leaf node wrapping
// value. Two Set calls with equal values always return the same Id.
func (e *Expression[T]) Set(value T) Id {
	return e.alloc(Node[T]{Kind: KindSet, Value: value})
}

// Complement returns the complement of id. This never allocates: it is a
// pure bit flip on the Id itself.
func (e *Expression[T]) Complement(id Id) Id { return id.Not() }

// Union is a smart constructor for a logical disjunction. It sorts and
// deduplicates children, applies the identity (Empty) and annihilator
// (Universal) laws, collapses adjacent complementary pairs to Universal,
// and collapses degenerate arities (0 -> Empty, 1 -> the sole child)
// before interning whatever compound node remains.
func (e *Expression[T]) Union(children ...Id) Id {
	cs := sortDedup(children)

	if len(cs) > 0 {
		switch cs[0] {
		case Universal:
			return Universal
		case Empty:
			if len(cs) > 1 && cs[1] == Universal {
				return Universal
			}
			cs = cs[1:]
		}
	}

	if adjacentComplement(cs) {
		return Universal
	}

	switch len(cs) {
	case 0:
		return Empty
	case 1:
		return cs[0]
	default:
		return e.alloc(Node[T]{Kind: KindUnion, Children: cs})
	}
}

// Intersection is a smart constructor for a logical conjunction. It
// mirrors Union with Empty and Universal's roles swapped: Empty
// annihilates, Universal is the identity, and an adjacent complementary
// pair collapses to Empty rather than Universal.
func (e *Expression[T]) Intersection(children ...Id) Id {
	cs := sortDedup(children)

	if len(cs) > 0 {
		switch cs[0] {
		case Empty:
			return Empty
		case Universal:
			cs = cs[1:]
		}
	}

	if adjacentComplement(cs) {
		return Empty
	}

	switch len(cs) {
	case 0:
		return Universal
	case 1:
		return cs[0]
	default:
		return e.alloc(Node[T]{Kind: KindIntersection, Children: cs})
	}
}

func sortDedup(children []Id) []Id {
	cs := append([]Id(nil), children...)
	sort.Slice(cs, func(i, j int) bool { return cs[i] < cs[j] })
	out := cs[:0]
	for i, c := range cs {
		if i == 0 || c != cs[i-1] {
			out = append(out, c)
		}
	}
	return out
}

// adjacentComplement reports whether cs, sorted by raw Id, contains two
// consecutive entries addressing the same node index. Because a node's
// positive and negated Ids differ by exactly one in raw-id ordering,
// nothing can sort between them — so a complementary pair is always
// adjacent once present.
func adjacentComplement(cs []Id) bool {
	for i := 1; i < len(cs); i++ {
		if cs[i-1].Index() == cs[i].Index() {
			return true
		}
	}
	return false
}

// AddRoot registers id as a root of the expression: an entry point for
// evaluation and the dependency iterator. It panics if id does not
// belong to this expression.
func (e *Expression[T]) AddRoot(id Id) {
	if int(id.Index()) >= len(e.nodes) {
		panic(fmt.Sprintf("core: id %d (index %d) does not belong to this expression (%d nodes)", id, id.Index(), len(e.nodes)))
	}
	e.roots = append(e.roots, id)
}

// Roots returns the registered root ids, in registration order. The
// returned slice must not be mutated by the caller.
func (e *Expression[T]) Roots() []Id { return e.roots }

// RootCount returns the number of registered roots.
func (e *Expression[T]) RootCount() int { return len(e.roots) }

// RemapRoots replaces every registered root with fn(root), in place.
// Used by the optimizer to point roots at their rewritten forms.
func (e *Expression[T]) RemapRoots(fn func(Id) Id) {
	for i, root := range e.roots {
		e.roots[i] = fn(root)
	}
}

// NodeCount returns the total number of nodes in the store, live and
// dead alike.
func (e *Expression[T]) NodeCount() int { return len(e.nodes) }

// Kind returns the node shape id addresses, ignoring negation. It panics
// if id does not belong to this expression.
func (e *Expression[T]) Kind(id Id) Kind {
	return e.node(id).Kind
}

// Children returns the children of the Union or Intersection node id
// addresses, or nil for any other kind. The returned slice must not be
// mutated.
func (e *Expression[T]) Children(id Id) []Id {
	return e.node(id).Children
}

// Term returns the value of the Set node id addresses, and true. It
// returns the zero value and false for any other kind.
func (e *Expression[T]) Term(id Id) (T, bool) {
	n := e.node(id)
	if n.Kind != KindSet {
		var zero T
		return zero, false
	}
	return n.Value, true
}

func (e *Expression[T]) node(id Id) Node[T] {
	idx := id.Index()
	if int(idx) >= len(e.nodes) {
		panic(fmt.Sprintf("core: id %d (index %d) does not belong to this expression (%d nodes)", id, idx, len(e.nodes)))
	}
	return e.nodes[idx]
}

// nodeHash computes a content hash for n suitable for hash-consing
// bucket lookup. Collisions are resolved by nodeEqual, so this only
// needs to be consistent (equal nodes hash equal), not collision-free.
func nodeHash[T comparable](n Node[T]) uint64 {
	switch n.Kind {
	case KindSet:
		return valueHash(n.Value) ^ 0xd1b54a32d192ed03
	default:
		h := xxhash.New()
		var buf [8]byte
		buf[0] = byte(n.Kind)
		h.Write(buf[:1])
		for _, c := range n.Children {
			binary.LittleEndian.PutUint32(buf[:4], uint32(c))
			h.Write(buf[:4])
		}
		return h.Sum64()
	}
}

// valueHash hashes an arbitrary comparable value via its Go-syntax
// representation. Two values equal under == always produce the same
// %#v text for every comparable type (booleans, numbers, strings,
// pointers, arrays and structs built from comparable fields), so this is
// safe as a hash-consing key even though T carries no Hash method.
func valueHash[T comparable](v T) uint64 {
	return xxhash.Sum64String(fmt.Sprintf("%#v", v))
}
