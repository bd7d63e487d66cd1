package serialize

import "github.com/katalvlaran/setexpr/core"

// SnapshotNode is the portable projection of a single core.Node. For a
// Set node, Value holds the term and Children is empty; for Union and
// Intersection, Children holds the sorted child Ids (as raw uint32s,
// negation bit included) and Value is the zero value; Empty carries
// neither.
type SnapshotNode[T any] struct {
	Kind     core.Kind `json:"kind"`
	Value    T         `json:"value,omitempty"`
	Children []uint32  `json:"children,omitempty"`
}

// Snapshot is the portable projection of an entire Expression: every
// node in index order, every registered root (as a raw Id), and the
// token/generation pair the Expression carried at the moment of
// projection.
type Snapshot[T any] struct {
	Nodes      []SnapshotNode[T] `json:"nodes"`
	Roots      []uint32          `json:"roots"`
	Token      [16]byte          `json:"token"`
	Generation uint64            `json:"generation"`
}

// ToSnapshot projects expr into a Snapshot. The result shares no memory
// with expr: subsequent mutation of expr does not affect a
// previously-taken Snapshot.
func ToSnapshot[T comparable](expr *core.Expression[T]) Snapshot[T] {
	n := expr.NodeCount()
	nodes := make([]SnapshotNode[T], n)
	for i := 0; i < n; i++ {
		id := core.IndexId(uint32(i))
		kind := expr.Kind(id)
		sn := SnapshotNode[T]{Kind: kind}
		switch kind {
		case core.KindSet:
			sn.Value, _ = expr.Term(id)
		case core.KindUnion, core.KindIntersection:
			children := expr.Children(id)
			sn.Children = make([]uint32, len(children))
			for j, c := range children {
				sn.Children[j] = uint32(c)
			}
		}
		nodes[i] = sn
	}

	roots := expr.Roots()
	rootIds := make([]uint32, len(roots))
	for i, r := range roots {
		rootIds[i] = uint32(r)
	}

	token := expr.Token()
	return Snapshot[T]{
		Nodes:      nodes,
		Roots:      rootIds,
		Token:      [16]byte(token),
		Generation: expr.Generation(),
	}
}

// FromSnapshot rebuilds an Expression from snap by replaying every node
// through the ordinary smart constructors, in index order, translating
// child references through a remap table from snapshot index to the
// freshly (re-)interned Id. Structurally equal nodes fold together
// exactly as they would from a from-scratch build, so a Snapshot taken
// before a duplicate-introducing edit and one taken after may round-trip
// to Expressions with differing node counts even though both evaluate
// identically.
func FromSnapshot[T comparable](snap Snapshot[T]) *core.Expression[T] {
	expr := core.New[T]()
	remap := make([]core.Id, len(snap.Nodes))

	for i, n := range snap.Nodes {
		switch n.Kind {
		case core.KindEmpty:
			remap[i] = core.Empty
		case core.KindSet:
			remap[i] = expr.Set(n.Value)
		case core.KindUnion:
			remap[i] = expr.Union(remapChildren(n.Children, remap)...)
		case core.KindIntersection:
			remap[i] = expr.Intersection(remapChildren(n.Children, remap)...)
		}
	}

	for _, raw := range snap.Roots {
		expr.AddRoot(remapId(core.Id(raw), remap))
	}
	return expr
}

func remapChildren(children []uint32, remap []core.Id) []core.Id {
	out := make([]core.Id, len(children))
	for i, c := range children {
		out[i] = remapId(core.Id(c), remap)
	}
	return out
}

func remapId(id core.Id, remap []core.Id) core.Id {
	target := remap[id.Index()]
	if id.Negated() {
		return target.Not()
	}
	return target
}
