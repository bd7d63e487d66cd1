package optimizer

import "github.com/katalvlaran/setexpr/core"

// unresolved marks a remap slot that has not been computed yet. Its
// index is far beyond anything a real node store reaches, so it can
// never collide with a genuine Id.
const unresolved core.Id = core.Id(^uint32(0))

// Config controls an Optimize run.
type Config[T comparable] struct {
	// Merger supplies domain knowledge about term relationships. Nil is
	// valid and disables domain-aware simplification.
	Merger Merger[T]

	// MergerDepth bounds how many levels of compound-node recursion the
	// relation oracle descends before giving up and reporting Trivial.
	// Zero defaults to 2.
	MergerDepth int

	// MaxIterations caps the total number of passes the fixed-point loop
	// may take, counting the first pass over the original nodes: 1 stops
	// before revisiting any node appended during optimization itself.
	// Zero means run to a full fixed point with no cap.
	MaxIterations int
}

// DefaultConfig returns a Config with MergerDepth 2 and no Merger or
// iteration cap.
func DefaultConfig[T comparable]() Config[T] {
	return Config[T]{MergerDepth: 2}
}

// Optimize rewrites expr in place: every Union and Intersection node is
// passed through applyLogicReduction, with child references resolved
// through a remap vector so that a node always sees its children's
// already-optimized forms, however many nodes those simplifications
// appended along the way. Roots are remapped last.
//
// Optimize never deletes a node from the store; call expr.Prune or
// expr.Compress afterward to reclaim memory made dead by the rewrite.
func Optimize[T comparable](expr *core.Expression[T], config Config[T]) {
	mergerDepth := config.MergerDepth
	if mergerDepth == 0 {
		mergerDepth = 2
	}

	o := newOracle(config.Merger)

	remap := make([]core.Id, expr.NodeCount())
	for i := range remap {
		remap[i] = unresolved
	}

	i := 0
	iterEnd := len(remap)
	iterCount := 0
	for i < expr.NodeCount() {
		id := core.IndexId(uint32(i))

		var newID core.Id
		switch expr.Kind(id) {
		case core.KindEmpty:
			newID = core.Empty
		case core.KindSet:
			newID = id
		case core.KindUnion:
			kids := resolveAll(expr.Children(id), remap)
			newID = applyLogicReduction(expr, o, kids, true, mergerDepth)
		case core.KindIntersection:
			kids := resolveAll(expr.Children(id), remap)
			newID = applyLogicReduction(expr, o, kids, false, mergerDepth)
		}

		if int(newID.Index()) < i {
			remap[i] = resolve(newID, remap)
		} else {
			remap[i] = newID
		}

		i++
		if i >= iterEnd {
			if i >= expr.NodeCount() {
				break
			}
			if config.MaxIterations != 0 {
				iterCount++
				if iterCount >= config.MaxIterations {
					break
				}
			}
			iterEnd = expr.NodeCount()
			grown := make([]core.Id, iterEnd)
			copy(grown, remap)
			for j := len(remap); j < iterEnd; j++ {
				grown[j] = unresolved
			}
			remap = grown
		}
	}

	expr.RemapRoots(func(root core.Id) core.Id { return resolve(root, remap) })
}

func resolveAll(ids []core.Id, remap []core.Id) []core.Id {
	out := make([]core.Id, len(ids))
	for i, id := range ids {
		out[i] = resolve(id, remap)
	}
	return out
}

// resolve follows id through remap to a fixed point, preserving
// negation at every hop: resolving !X chases X's remap entry and
// complements the result, rather than looking up a separate entry for
// !X.
func resolve(id core.Id, remap []core.Id) core.Id {
	for {
		idx := id.Index()
		if int(idx) >= len(remap) {
			return id
		}
		target := remap[idx]
		if target == unresolved || target.Index() == idx {
			return id
		}
		if id.Negated() {
			id = target.Not()
		} else {
			id = target
		}
	}
}
