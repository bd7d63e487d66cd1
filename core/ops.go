package core

import "sort"

// Prune removes every node unreachable from e's roots, returning a fresh
// Expression with a new identity token. All Ids from e are invalid
// against the result; evaluator caches keyed by e's Token should be
// discarded rather than reused.
func (e *Expression[T]) Prune() *Expression[T] {
	out := New[T]()
	out.generation = e.generation + 1
	remap := make([]Id, len(e.nodes))
	for i := range remap {
		remap[i] = maxId
	}
	remap[0] = Empty

	it := e.Dependencies()
	for id, n, ok := it.Next(); ok; id, n, ok = it.Next() {
		if id.Index() != 0 {
			remap[id.Index()] = out.mapNode(n, remap)
		}
	}

	for _, root := range e.roots {
		id := remap[root.Index()]
		if root.Negated() {
			id = id.Not()
		}
		out.AddRoot(id)
	}
	return out
}

// activeNodes flood-fills reachability from the roots downward: a node
// is active if it is a root or a descendant of one. Because children are
// always lower-indexed than their parents (append-only construction),
// a single reverse pass over node indices suffices — no explicit
// worklist is needed.
func (e *Expression[T]) activeNodes() (active []bool, maxIdx int) {
	active = make([]bool, len(e.nodes))
	for _, root := range e.roots {
		idx := int(root.Index())
		active[idx] = true
		if idx > maxIdx {
			maxIdx = idx
		}
	}
	for idx := maxIdx; idx >= 1; idx-- {
		if !active[idx] {
			continue
		}
		if n := e.nodes[idx]; n.Kind == KindUnion || n.Kind == KindIntersection {
			for _, c := range n.Children {
				active[c.Index()] = true
			}
		}
	}
	return active, maxIdx
}

// mapNode re-creates n inside e (a fresh expression under construction),
// translating its children through remap (old index -> new Id,
// preserving each child's own negation bit). It must only be called with
// nodes already visited in dependency order, so every child's remap
// entry is populated.
func (e *Expression[T]) mapNode(n Node[T], remap []Id) Id {
	switch n.Kind {
	case KindSet:
		return e.Set(n.Value)
	case KindUnion:
		return e.Union(remapChildren(n.Children, remap)...)
	case KindIntersection:
		return e.Intersection(remapChildren(n.Children, remap)...)
	default:
		panic("core: unreachable empty node in mapNode")
	}
}

func remapChildren(children []Id, remap []Id) []Id {
	mapped := make([]Id, len(children))
	for i, c := range children {
		id := remap[c.Index()]
		if c.Negated() {
			id = id.Not()
		}
		mapped[i] = id
	}
	return mapped
}

type pairKey struct {
	a, b    Id
	isUnion bool
}

func newPairKey(x, y Id, isUnion bool) pairKey {
	if x < y {
		return pairKey{x, y, isUnion}
	}
	return pairKey{y, x, isUnion}
}

// Compress performs common-subexpression elimination: it repeatedly finds
// the most frequently co-occurring child pair across all Union or
// Intersection nodes and factors it out into a new shared node, until no
// pair repeats anywhere in the graph. It finishes with an implicit Prune,
// so the result also has a fresh identity token and no dead nodes.
//
// Run this after Optimize — optimization often exposes structural
// similarity that compression can then exploit.
func (e *Expression[T]) Compress() *Expression[T] {
	// Rewrite a copy of the node store and intern index, leaving e intact.
	work := &Expression[T]{nodes: append([]Node[T](nil), e.nodes...), index: make(map[uint64][]Id, len(e.index)), roots: e.roots, token: e.token, generation: e.generation}
	for h, ids := range e.index {
		work.index[h] = append([]Id(nil), ids...)
	}
	e = work

	startLen := len(e.nodes)
	pairFreq := make(map[pairKey]int)
	active := make([]bool, startLen)
	visited := make([]bool, startLen)

	stack := append([]Id(nil), e.roots...)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		idx := id.Index()
		if visited[idx] {
			continue
		}
		visited[idx] = true

		n := e.nodes[idx]
		if n.Kind != KindUnion && n.Kind != KindIntersection {
			continue
		}
		stack = append(stack, n.Children...)

		if len(n.Children) >= 2 {
			active[idx] = true
			isUnion := n.Kind == KindUnion
			for i := 0; i < len(n.Children); i++ {
				for j := i + 1; j < len(n.Children); j++ {
					pairFreq[newPairKey(n.Children[i], n.Children[j], isUnion)]++
				}
			}
		}
	}

	for {
		var best pairKey
		bestCount := 1
		found := false
		for key, count := range pairFreq {
			if count > bestCount {
				best, bestCount, found = key, count, true
			}
		}
		if !found {
			break
		}
		delete(pairFreq, best)

		var newID Id
		if best.isUnion {
			newID = e.Union(best.a, best.b)
		} else {
			newID = e.Intersection(best.a, best.b)
		}

		for i := 0; i < startLen; i++ {
			if !active[i] {
				continue
			}
			n := &e.nodes[i]
			isUnion := n.Kind == KindUnion
			if n.Kind != KindUnion && n.Kind != KindIntersection {
				continue
			}
			if isUnion != best.isUnion {
				continue
			}

			idxA, okA := idSearch(n.Children, best.a)
			idxB, okB := idSearch(n.Children, best.b)
			if !okA || !okB {
				continue
			}

			for _, neighbor := range n.Children {
				if neighbor == best.a || neighbor == best.b {
					continue
				}
				decrPair(pairFreq, best.a, neighbor, best.isUnion)
				decrPair(pairFreq, best.b, neighbor, best.isUnion)
			}

			children := removeIdAt(removeIdAt(n.Children, idxB), idxA)
			if pos, exists := idSearch(children, newID); !exists {
				children = insertIdAt(children, pos, newID)
				for _, neighbor := range children {
					if neighbor == newID {
						continue
					}
					pairFreq[newPairKey(newID, neighbor, best.isUnion)]++
				}
			}
			n.Children = children
		}
	}

	return e.Prune()
}

func idSearch(ids []Id, target Id) (int, bool) {
	i := sort.Search(len(ids), func(i int) bool { return ids[i] >= target })
	return i, i < len(ids) && ids[i] == target
}

func removeIdAt(ids []Id, i int) []Id {
	out := make([]Id, 0, len(ids)-1)
	out = append(out, ids[:i]...)
	out = append(out, ids[i+1:]...)
	return out
}

func insertIdAt(ids []Id, pos int, id Id) []Id {
	out := make([]Id, 0, len(ids)+1)
	out = append(out, ids[:pos]...)
	out = append(out, id)
	out = append(out, ids[pos:]...)
	return out
}

func decrPair(freq map[pairKey]int, a, b Id, isUnion bool) {
	key := newPairKey(a, b, isUnion)
	if v, ok := freq[key]; ok {
		freq[key] = v - 1
	}
}
