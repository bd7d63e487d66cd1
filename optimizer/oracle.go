package optimizer

import (
	"math"

	"github.com/katalvlaran/setexpr/core"
)

// maxDepth marks a cache entry as valid regardless of the depth later
// requested: Equal and Complementary can never be refined by looking
// deeper, so once computed they are cached permanently.
const maxDepth = math.MaxInt

type cacheKey struct{ min, max uint32 }

type cacheEntry struct {
	rel   SetRelation
	depth int
}

// oracle memoizes structural and domain relationships between node
// pairs within a single Optimize call. It is keyed purely on node
// indices — negation is stripped out before the cache lookup and
// re-applied afterward via applyNegation, so A-vs-B and A-vs-!B share
// the same cache entry.
type oracle[T comparable] struct {
	merger Merger[T]
	cache  map[cacheKey]cacheEntry
}

func newOracle[T comparable](merger Merger[T]) *oracle[T] {
	return &oracle[T]{merger: merger, cache: make(map[cacheKey]cacheEntry)}
}

// relation reports the relationship between two terms, consulting the
// Merger if one is set and defaulting to Trivial otherwise.
func (o *oracle[T]) relation(a, b T) SetRelation {
	if o.merger == nil {
		return Trivial
	}
	return o.merger.Relation(a, b)
}

func (o *oracle[T]) mergeUnion(a T, aNeg bool, b T, bNeg bool) (MergeResult[T], bool) {
	if o.merger == nil {
		return MergeResult[T]{}, false
	}
	return o.merger.MergeUnion(a, aNeg, b, bNeg)
}

func (o *oracle[T]) mergeIntersection(a T, aNeg bool, b T, bNeg bool) (MergeResult[T], bool) {
	if o.merger == nil {
		return MergeResult[T]{}, false
	}
	return o.merger.MergeIntersection(a, aNeg, b, bNeg)
}

// getRelation returns the relationship between a and b, descending at
// most depth levels into compound nodes.
func (o *oracle[T]) getRelation(expr *core.Expression[T], a, b core.Id, depth int) SetRelation {
	if a == b {
		return Equal
	}
	if a == b.Not() {
		return Complementary
	}
	return o.getRelationRecursive(expr, a, b, depth)
}

func (o *oracle[T]) getRelationRecursive(expr *core.Expression[T], a, b core.Id, depth int) SetRelation {
	if a == b {
		return Equal
	}
	if a == b.Not() {
		return Complementary
	}

	var min, max core.Id
	if a.Index() <= b.Index() {
		min, max = a, b
	} else {
		min, max = b, a
	}
	key := cacheKey{min.Index(), max.Index()}

	if entry, ok := o.cache[key]; ok && entry.depth >= depth {
		final := entry.rel
		if a != min {
			final = final.flip()
		}
		return applyNegation(final, a.Negated(), b.Negated())
	}

	if depth == 0 {
		return Trivial
	}

	rel := o.structuralRelation(expr, min, max, depth)

	storeDepth := depth
	if rel == Equal || rel == Complementary {
		storeDepth = maxDepth
	}
	o.cache[key] = cacheEntry{rel: rel, depth: storeDepth}

	final := rel
	if a != min {
		final = final.flip()
	}
	return applyNegation(final, a.Negated(), b.Negated())
}

func (o *oracle[T]) structuralRelation(expr *core.Expression[T], min, max core.Id, depth int) SetRelation {
	kindMin, kindMax := expr.Kind(min), expr.Kind(max)
	isGroup := func(k core.Kind) bool { return k == core.KindUnion || k == core.KindIntersection }

	switch {
	case kindMin == core.KindEmpty && kindMax == core.KindEmpty:
		return Equal
	case kindMin == core.KindEmpty || kindMax == core.KindEmpty:
		return Disjoint
	case kindMin == core.KindSet && kindMax == core.KindSet:
		valMin, _ := expr.Term(min)
		valMax, _ := expr.Term(max)
		return o.relation(valMin, valMax)
	case kindMin == core.KindSet && isGroup(kindMax):
		isUnion := kindMax == core.KindUnion
		return o.groupsRelation(expr, []core.Id{min}, isUnion, expr.Children(max), isUnion, depth-1)
	case isGroup(kindMin) && kindMax == core.KindSet:
		isUnion := kindMin == core.KindUnion
		return o.groupsRelation(expr, expr.Children(min), isUnion, []core.Id{max}, isUnion, depth-1)
	default:
		return o.groupsRelation(expr, expr.Children(min), kindMin == core.KindUnion, expr.Children(max), kindMax == core.KindUnion, depth-1)
	}
}

// applyNegation transforms a relationship computed for the positive
// forms of a and b into the relationship that holds for their actual
// (possibly negated) forms.
func applyNegation(rel SetRelation, negA, negB bool) SetRelation {
	if !negA && !negB {
		return rel
	}

	var result SetRelation

	if rel == Equal {
		if negA == negB {
			return Equal // A' == B'
		}
		return Complementary // A' comp B, A comp B'
	}

	if rel == Complementary {
		if negA == negB {
			return Complementary // A' comp B'
		}
		return Equal // A' == B, B' == A
	}

	if rel.IsSubset() {
		switch {
		case negA && negB:
			result |= Superset // A' sup B'
		case !negA && negB:
			result |= Disjoint // A disj B'
		}
	}

	if rel.IsSuperset() {
		switch {
		case negA && negB:
			result |= Subset // A' sub B'
		case negA && !negB:
			result |= Disjoint // A' disj B
		}
	}

	if rel.IsDisjoint() {
		switch {
		case !negA && negB:
			result |= Subset // A sub B'
		case negA && !negB:
			result |= Superset // A' sup B
		}
	}

	if rel.IsCover() {
		switch {
		case !negA && negB:
			result |= Superset // A sup B'
		case negA && !negB:
			result |= Subset // A' sub B
		}
	}

	return result
}

// groupsRelation derives Disjoint/Subset/Superset between two compound
// nodes (or singleton wrappers around a Set) from their children,
// choosing among four quantifier shapes depending on whether each side
// is a Union or an Intersection. Each shape is commented with the tight
// worst-case cost it achieves by picking the cheaper of "exists" and
// "forall" nesting for that combination.
func (o *oracle[T]) groupsRelation(expr *core.Expression[T], kidsA []core.Id, isUnionA bool, kidsB []core.Id, isUnionB bool, depth int) SetRelation {
	var result SetRelation

	rel := func(a, b core.Id) SetRelation { return o.getRelationRecursive(expr, a, b, depth) }

	var disjoint bool
	switch {
	case !isUnionA && !isUnionB: // II, O(1) best case: any a disjoint any b
		disjoint = existsExists(kidsA, kidsB, func(a, b core.Id) bool { return rel(a, b).IsDisjoint() })
	case isUnionA && !isUnionB: // UI, O(A): all a disjoint from any b
		disjoint = forallExists(kidsA, kidsB, func(a, b core.Id) bool { return rel(a, b).IsDisjoint() })
	case !isUnionA && isUnionB: // IU, O(B): all b disjoint from any a
		disjoint = forallExists(kidsB, kidsA, func(b, a core.Id) bool { return rel(a, b).IsDisjoint() })
	default: // UU, O(A*B): all a disjoint from all b
		disjoint = forallForall(kidsA, kidsB, func(a, b core.Id) bool { return rel(a, b).IsDisjoint() })
	}
	if disjoint {
		result |= Disjoint
	}

	var subset bool
	switch {
	case isUnionA && isUnionB: // UU, O(A): all a subset any b
		subset = forallExists(kidsA, kidsB, func(a, b core.Id) bool { return rel(a, b).IsSubset() })
	case isUnionA && !isUnionB: // UI, O(A*B): all a subset all b
		subset = forallForall(kidsA, kidsB, func(a, b core.Id) bool { return rel(a, b).IsSubset() })
	case !isUnionA && isUnionB: // IU, O(1): any a subset any b
		subset = existsExists(kidsA, kidsB, func(a, b core.Id) bool { return rel(a, b).IsSubset() })
	default: // II, O(B): all b superset any a
		subset = forallExists(kidsB, kidsA, func(b, a core.Id) bool { return rel(a, b).IsSuperset() })
	}
	if subset {
		result |= Subset
	}

	var superset bool
	switch {
	case isUnionA && isUnionB: // UU, O(B): all b subset any a
		superset = forallExists(kidsB, kidsA, func(b, a core.Id) bool { return rel(a, b).IsSubset() })
	case isUnionA && !isUnionB: // UI, O(1): any a superset any b
		superset = existsExists(kidsA, kidsB, func(a, b core.Id) bool { return rel(a, b).IsSuperset() })
	case !isUnionA && isUnionB: // IU, O(A*B): all a superset all b
		superset = forallForall(kidsA, kidsB, func(a, b core.Id) bool { return rel(a, b).IsSuperset() })
	default: // II, O(A): all a superset any b
		superset = forallExists(kidsA, kidsB, func(a, b core.Id) bool { return rel(a, b).IsSuperset() })
	}
	if superset {
		result |= Superset
	}

	return result
}

func existsExists(as, bs []core.Id, pred func(a, b core.Id) bool) bool {
	for _, a := range as {
		for _, b := range bs {
			if pred(a, b) {
				return true
			}
		}
	}
	return false
}

func forallExists(as, bs []core.Id, pred func(a, b core.Id) bool) bool {
	for _, a := range as {
		ok := false
		for _, b := range bs {
			if pred(a, b) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

func forallForall(as, bs []core.Id, pred func(a, b core.Id) bool) bool {
	for _, a := range as {
		for _, b := range bs {
			if !pred(a, b) {
				return false
			}
		}
	}
	return true
}
