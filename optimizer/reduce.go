package optimizer

import "github.com/katalvlaran/setexpr/core"

// applyLogicReduction is the per-node reduction kernel the optimizer
// runs over every Union/Intersection node it visits, after its children
// have already been resolved to their optimized forms. It performs, in
// order: De Morgan normalization, flattening, absorption (via the
// relation oracle), O(n^2) pairwise relation reduction, and (for unions
// only) factoring.
func applyLogicReduction[T comparable](expr *core.Expression[T], o *oracle[T], kids []core.Id, isUnion bool, mergerDepth int) core.Id {
	if shouldFlip(kids, isUnion) {
		flipped := make([]core.Id, len(kids))
		for i, k := range kids {
			flipped[i] = k.Not()
		}
		return applyLogicReduction(expr, o, flipped, !isUnion, mergerDepth).Not()
	}

	kids = flatten(expr, kids, isUnion)

	if len(kids) >= 2 {
		kids = absorb(expr, o, kids, isUnion, mergerDepth)

		var empty bool
		kids, empty = reducePairwise(expr, o, kids, isUnion, mergerDepth)
		if empty {
			if isUnion {
				return core.Universal
			}
			return core.Empty
		}

		if isUnion {
			if factored, ok := tryFactoring(expr, kids); ok {
				return factored
			}
		}
	}

	if isUnion {
		return expr.Union(kids...)
	}
	return expr.Intersection(kids...)
}

// shouldFlip reports whether De Morgan's laws should be applied before
// anything else: a union where any child is negated, or an intersection
// where every child is negated. Flipping standardizes the sign pattern
// so later steps only ever see the more convenient shape.
func shouldFlip(kids []core.Id, isUnion bool) bool {
	if isUnion {
		for _, k := range kids {
			if k.Negated() {
				return true
			}
		}
		return false
	}
	if len(kids) == 0 {
		return false
	}
	for _, k := range kids {
		if !k.Negated() {
			return false
		}
	}
	return true
}

// flatten merges grandchildren of the same kind into kids directly:
// A | (B | C) becomes A | B | C.
func flatten[T comparable](expr *core.Expression[T], kids []core.Id, isUnion bool) []core.Id {
	wantKind := core.KindIntersection
	if isUnion {
		wantKind = core.KindUnion
	}

	flat := make([]core.Id, 0, len(kids)+1)
	for _, k := range kids {
		if !k.Negated() && expr.Kind(k) == wantKind {
			flat = append(flat, expr.Children(k)...)
		} else {
			flat = append(flat, k)
		}
	}
	return flat
}

// absorb simplifies A & (A & B)' (and the union dual) by checking, for
// every Set child A, whether any compound sibling of the opposite kind
// has a member related to A by Cover (for unions) or Disjoint (for
// intersections) — in which case that member is redundant and is
// dropped from the sibling.
func absorb[T comparable](expr *core.Expression[T], o *oracle[T], kids []core.Id, isUnion bool, mergerDepth int) []core.Id {
	for i := 0; i < len(kids); i++ {
		idA := kids[i]
		if expr.Kind(idA) != core.KindSet {
			continue
		}

		for j := 0; j < len(kids); j++ {
			if i == j {
				continue
			}
			idB := kids[j]

			bIsUnion, bKids, ok := siblingShape(expr, idB)
			if !ok || bIsUnion == isUnion {
				continue
			}

			changeB := false
			for _, bk := range bKids {
				effective := bk
				if idB.Negated() {
					effective = bk.Not()
				}
				if redundant(o, expr, idA, effective, isUnion, mergerDepth) {
					changeB = true
					break
				}
			}
			if !changeB {
				continue
			}

			newBKids := make([]core.Id, 0, len(bKids))
			for _, bk := range bKids {
				effective := bk
				if idB.Negated() {
					effective = bk.Not()
				}
				if !redundant(o, expr, idA, effective, isUnion, mergerDepth) {
					newBKids = append(newBKids, effective)
				}
			}
			if bIsUnion {
				kids[j] = expr.Union(newBKids...)
			} else {
				kids[j] = expr.Intersection(newBKids...)
			}
		}
	}
	return kids
}

func siblingShape[T comparable](expr *core.Expression[T], id core.Id) (isUnion bool, children []core.Id, ok bool) {
	switch expr.Kind(id) {
	case core.KindUnion:
		return !id.Negated(), expr.Children(id), true
	case core.KindIntersection:
		return id.Negated(), expr.Children(id), true
	default:
		return false, nil, false
	}
}

func redundant[T comparable](o *oracle[T], expr *core.Expression[T], a, b core.Id, isUnion bool, depth int) bool {
	rel := o.getRelation(expr, a, b, depth)
	if !isUnion {
		return rel.IsDisjoint()
	}
	return rel.IsCover()
}

// reducePairwise compares every pair of kids via the relation oracle,
// eliminating redundant members (equal, subset/superset, or mergeable
// via the caller's Merger) until no pair changes anything. It returns
// (nil, true) when a pair forces the whole node to its degenerate
// result: Universal for a covering union, Empty for a disjoint
// intersection.
func reducePairwise[T comparable](expr *core.Expression[T], o *oracle[T], kids []core.Id, isUnion bool, mergerDepth int) ([]core.Id, bool) {
	i := 0
	for i < len(kids) {
		j := i + 1
		for j < len(kids) {
			idA, idB := kids[i], kids[j]
			rel := o.getRelation(expr, idA, idB, mergerDepth)

			iChanged, jChanged, forceResult := false, false, false
			switch {
			case rel == Equal:
				kids = swapRemove(kids, j)
				jChanged = true
			case !isUnion && rel.IsDisjoint():
				forceResult = true
			case isUnion && rel.IsCover():
				forceResult = true
			case isUnion && rel.IsSubset():
				kids = swapRemove(kids, i)
				iChanged = true
			case !isUnion && rel.IsSubset():
				kids = swapRemove(kids, j)
				jChanged = true
			case isUnion && rel.IsSuperset():
				kids = swapRemove(kids, j)
				jChanged = true
			case !isUnion && rel.IsSuperset():
				kids = swapRemove(kids, i)
				iChanged = true
			default:
				if merged, ok := tryMerge(expr, o, idA, idB, isUnion); ok {
					kids[i] = merged
					kids = swapRemove(kids, j)
					iChanged = true
				}
			}

			if forceResult {
				return nil, true
			}
			switch {
			case iChanged:
				j = i + 1 // recheck every j against the new i
			case jChanged:
				// don't advance: the element swapped into j needs rechecking
			default:
				j++
			}
		}
		i++
	}
	return kids, false
}

func tryMerge[T comparable](expr *core.Expression[T], o *oracle[T], idA, idB core.Id, isUnion bool) (core.Id, bool) {
	if expr.Kind(idA) != core.KindSet || expr.Kind(idB) != core.KindSet {
		return core.Empty, false
	}
	valA, _ := expr.Term(idA)
	valB, _ := expr.Term(idB)
	negA, negB := idA.Negated(), idB.Negated()

	var merged MergeResult[T]
	var ok bool
	if isUnion {
		merged, ok = o.mergeUnion(valA, negA, valB, negB)
	} else {
		merged, ok = o.mergeIntersection(valA, negA, valB, negB)
	}
	if !ok {
		return core.Empty, false
	}

	switch merged.Kind {
	case MergeEmpty:
		return core.Empty, true
	case MergeUniversal:
		return core.Universal, true
	default:
		id := expr.Set(merged.Value)
		if merged.Negated {
			id = id.Not()
		}
		return id, true
	}
}

func swapRemove(s []core.Id, idx int) []core.Id {
	n := len(s)
	s[idx] = s[n-1]
	return s[:n-1]
}

// tryFactoring looks for two union members shaped as intersections (or
// negated unions, via De Morgan) that share common factors:
// (A & B) | (A & C) becomes A & (B | C). Only union factoring is
// attempted — factoring intersections would remove early-return
// opportunities during evaluation.
func tryFactoring[T comparable](expr *core.Expression[T], kids []core.Id) (core.Id, bool) {
	for i := 0; i < len(kids); i++ {
		kidsI, ok := intersectionChildren(expr, kids[i])
		if !ok {
			continue
		}

		for j := i + 1; j < len(kids); j++ {
			kidsJ, ok := intersectionChildren(expr, kids[j])
			if !ok {
				continue
			}

			common := sortedIntersect(kidsI, kidsJ)
			if len(common) == 0 {
				continue
			}

			resI := subtractSorted(kidsI, common)
			resJ := subtractSorted(kidsJ, common)

			resIDI := core.Universal
			if len(resI) > 0 {
				resIDI = expr.Intersection(resI...)
			}
			resIDJ := core.Universal
			if len(resJ) > 0 {
				resIDJ = expr.Intersection(resJ...)
			}

			commonID := expr.Intersection(common...)
			residualsID := expr.Union(resIDI, resIDJ)
			newNode := expr.Intersection(commonID, residualsID)

			newKids := make([]core.Id, 0, len(kids)-1)
			newKids = append(newKids, newNode)
			for idx, id := range kids {
				if idx != i && idx != j {
					newKids = append(newKids, id)
				}
			}
			return expr.Union(newKids...), true
		}
	}
	return core.Empty, false
}

func intersectionChildren[T comparable](expr *core.Expression[T], id core.Id) ([]core.Id, bool) {
	switch {
	case expr.Kind(id) == core.KindIntersection && !id.Negated():
		return expr.Children(id), true
	case expr.Kind(id) == core.KindUnion && id.Negated():
		children := expr.Children(id)
		out := make([]core.Id, len(children))
		for i, c := range children {
			out[i] = c.Not()
		}
		return out, true
	default:
		return nil, false
	}
}

func sortedIntersect(a, b []core.Id) []core.Id {
	var common []core.Id
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			common = append(common, a[i])
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return common
}

func subtractSorted(a, common []core.Id) []core.Id {
	inCommon := make(map[core.Id]bool, len(common))
	for _, c := range common {
		inCommon[c] = true
	}
	out := make([]core.Id, 0, len(a))
	for _, x := range a {
		if !inCommon[x] {
			out = append(out, x)
		}
	}
	return out
}
