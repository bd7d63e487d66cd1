package eval

import "github.com/katalvlaran/setexpr/core"

// Evaluate runs Expression against backend using a transient, one-shot
// cache. Prefer EvaluateWith in a loop: allocating a fresh Cache on
// every call defeats the point of caching.
func Evaluate[T comparable, R any](expr *core.Expression[T], backend Backend[T, R]) ([]R, error) {
	return EvaluateWith(expr, backend, NewCache[R]())
}

// EvaluateWith materializes every root of expr against backend,
// reusing cache across calls. On a token mismatch (cache was last used
// with another Expression, such as the one Prune or Compress rebuilt
// expr from, or cache is fresh) it is cleared before evaluation
// proceeds.
func EvaluateWith[T comparable, R any](expr *core.Expression[T], backend Backend[T, R], cache *Cache[R]) ([]R, error) {
	if cache.token != expr.Token() {
		cache.Clear()
		cache.token = expr.Token()
	}

	need := expr.NodeCount() * 2
	if len(cache.slots) < need {
		grown := make([]slot[R], need)
		copy(grown, cache.slots)
		cache.slots = grown
	}

	active, maxRoot := activeFromRoots(expr, cache.slots)

	for idx := 0; idx <= maxRoot; idx++ {
		if !active[idx] || cache.slots[idx<<1].ok {
			continue
		}
		id := core.IndexId(uint32(idx))
		result, err := evaluateNode(expr, id, backend, cache.slots)
		if err != nil {
			return nil, err
		}
		cache.slots[idx<<1] = slot[R]{value: result, ok: true}
	}

	return collectRoots(expr, backend, cache.slots)
}

// EvaluateWithPruning evaluates expr against backend while aggressively
// freeing memory: a per-node parent reference count is maintained over
// the active subgraph, and a node's two cache slots are dropped the
// moment its last parent has consumed them. This trades cache reuse
// (there is nothing left to reuse across calls) for bounded peak
// memory, useful when R is large (bitmaps, images, big row sets).
func EvaluateWithPruning[T comparable, R any](expr *core.Expression[T], backend Backend[T, R]) ([]R, error) {
	n := expr.NodeCount()
	slots := make([]slot[R], n*2)

	counts := make([]int, n)
	for _, root := range expr.Roots() {
		counts[root.Index()]++
	}
	for idx := n - 1; idx >= 0; idx-- {
		if counts[idx] == 0 {
			continue
		}
		addChildCounts(expr, core.IndexId(uint32(idx)), counts, 1)
	}

	for idx := 0; idx < n; idx++ {
		if counts[idx] == 0 || slots[idx<<1].ok {
			continue
		}
		id := core.IndexId(uint32(idx))
		result, err := evaluateNode(expr, id, backend, slots)
		if err != nil {
			return nil, err
		}
		slots[idx<<1] = slot[R]{value: result, ok: true}

		kind := expr.Kind(id)
		if kind == core.KindUnion || kind == core.KindIntersection {
			for _, k := range expr.Children(id) {
				ci := k.Index()
				counts[ci]--
				if counts[ci] == 0 {
					slots[ci<<1] = slot[R]{}
					slots[(ci<<1)+1] = slot[R]{}
				}
			}
		}
	}

	return collectRoots(expr, backend, slots)
}

func addChildCounts[T comparable](expr *core.Expression[T], id core.Id, counts []int, delta int) {
	kind := expr.Kind(id)
	if kind != core.KindUnion && kind != core.KindIntersection {
		return
	}
	for _, k := range expr.Children(id) {
		counts[k.Index()] += delta
	}
}

// activeFromRoots marks every node reachable from an uncached root, and
// returns the highest such node index (0 if every root is already
// cached, since index 0 — Empty — never has children and is therefore
// a safe sentinel for "nothing to scan").
func activeFromRoots[T comparable, R any](expr *core.Expression[T], slots []slot[R]) ([]bool, int) {
	active := make([]bool, expr.NodeCount())
	maxRoot := 0
	for _, root := range expr.Roots() {
		idx := int(root.Index())
		if !slots[idx<<1].ok {
			active[idx] = true
			if idx > maxRoot {
				maxRoot = idx
			}
		}
	}

	if maxRoot == 0 {
		return active, maxRoot
	}
	for idx := len(active) - 1; idx >= 0; idx-- {
		if !active[idx] {
			continue
		}
		id := core.IndexId(uint32(idx))
		kind := expr.Kind(id)
		if kind == core.KindUnion || kind == core.KindIntersection {
			for _, k := range expr.Children(id) {
				active[k.Index()] = true
			}
		}
	}
	return active, maxRoot
}

func collectRoots[T comparable, R any](expr *core.Expression[T], backend Backend[T, R], slots []slot[R]) ([]R, error) {
	results := make([]R, 0, expr.RootCount())
	for _, root := range expr.Roots() {
		raw := int(root)
		if slots[raw].ok {
			results = append(results, slots[raw].value)
			continue
		}

		uni, err := ensureUniversal(backend, slots)
		if err != nil {
			return nil, err
		}
		if raw == 1 {
			results = append(results, uni)
			continue
		}

		pos := slots[int(root.Index())<<1].value
		neg, err := backend.Difference(uni, pos)
		if err != nil {
			return nil, err
		}
		slots[raw] = slot[R]{value: neg, ok: true}
		results = append(results, neg)
	}
	return results, nil
}

func evaluateNode[T comparable, R any](expr *core.Expression[T], id core.Id, backend Backend[T, R], slots []slot[R]) (R, error) {
	var zero R
	switch expr.Kind(id) {
	case core.KindEmpty:
		return backend.Empty()

	case core.KindSet:
		v, _ := expr.Term(id)
		return backend.Set(v)

	case core.KindUnion:
		children := expr.Children(id)
		for _, k := range children {
			raw := int(k)
			if slots[raw].ok {
				continue
			}
			uni, err := ensureUniversal(backend, slots)
			if err != nil {
				return zero, err
			}
			pos := slots[int(k.Index())<<1].value
			neg, err := backend.Difference(uni, pos)
			if err != nil {
				return zero, err
			}
			slots[raw] = slot[R]{value: neg, ok: true}
		}
		values := make([]R, len(children))
		for i, k := range children {
			values[i] = slots[int(k)].value
		}
		return backend.Union(values)

	case core.KindIntersection:
		return evaluateIntersection(expr, id, backend, slots)

	default:
		return zero, nil
	}
}

// evaluateIntersection implements A & B & !C & !D as (A & B) -
// (C | D): negated members whose negated slot is not already cached
// are excluded via the positive slot and folded into a single
// subtraction at the end, rather than each paying for its own
// Universal-backed Difference.
func evaluateIntersection[T comparable, R any](expr *core.Expression[T], id core.Id, backend Backend[T, R], slots []slot[R]) (R, error) {
	var zero R
	children := expr.Children(id)

	var includeIdx, excludeIdx []int
	for _, k := range children {
		switch {
		case !k.Negated():
			includeIdx = append(includeIdx, int(k))
		case slots[int(k)].ok:
			includeIdx = append(includeIdx, int(k))
		default:
			excludeIdx = append(excludeIdx, int(k.Index())<<1)
		}
	}

	if len(excludeIdx) == 0 {
		return backend.Intersection(gather(slots, includeIdx))
	}

	var include R
	var err error
	switch {
	case len(includeIdx) == 0:
		include, err = ensureUniversal(backend, slots)
	case len(includeIdx) == 1:
		include = slots[includeIdx[0]].value
	default:
		include, err = backend.Intersection(gather(slots, includeIdx))
	}
	if err != nil {
		return zero, err
	}

	var exclude R
	if len(excludeIdx) == 1 {
		exclude = slots[excludeIdx[0]].value
	} else {
		exclude, err = backend.Union(gather(slots, excludeIdx))
		if err != nil {
			return zero, err
		}
	}

	return backend.Difference(include, exclude)
}

func ensureUniversal[T comparable, R any](backend Backend[T, R], slots []slot[R]) (R, error) {
	if !slots[1].ok {
		uni, err := backend.Universal()
		if err != nil {
			var zero R
			return zero, err
		}
		slots[1] = slot[R]{value: uni, ok: true}
	}
	return slots[1].value, nil
}

func gather[R any](slots []slot[R], idxs []int) []R {
	out := make([]R, len(idxs))
	for i, idx := range idxs {
		out[i] = slots[idx].value
	}
	return out
}
