package optimizer

// SetRelation describes how two sets relate to one another, as reported
// by a Merger or derived structurally by the relation oracle. More than
// one bit may be set at once: Equal is Subset|Superset, and
// Complementary is Disjoint|Cover.
type SetRelation uint8

const (
	// Trivial means no relationship is known.
	Trivial SetRelation = 0
	// Subset means A is contained entirely within B.
	Subset SetRelation = 1 << 0
	// Superset means A entirely contains B.
	Superset SetRelation = 1 << 1
	// Disjoint means A and B share no elements.
	Disjoint SetRelation = 1 << 2
	// Cover means A and B together fill the universe.
	Cover SetRelation = 1 << 3
)

// Equal combines Subset and Superset: A and B contain exactly the same
// elements.
const Equal = Subset | Superset

// Complementary combines Disjoint and Cover: A is the exact inverse of
// B.
const Complementary = Disjoint | Cover

// IsSubset reports whether r asserts A ⊆ B.
func (r SetRelation) IsSubset() bool { return r&Subset != 0 }

// IsSuperset reports whether r asserts A ⊇ B.
func (r SetRelation) IsSuperset() bool { return r&Superset != 0 }

// IsDisjoint reports whether r asserts A ∩ B = ∅.
func (r SetRelation) IsDisjoint() bool { return r&Disjoint != 0 }

// IsCover reports whether r asserts A ∪ B = Universal.
func (r SetRelation) IsCover() bool { return r&Cover != 0 }

// flip swaps Subset and Superset, leaving every other relation
// unchanged; used when a cached relation was computed for (B, A) and is
// being reported for (A, B).
func (r SetRelation) flip() SetRelation {
	out := r &^ (Subset | Superset)
	if r&Subset != 0 {
		out |= Superset
	}
	if r&Superset != 0 {
		out |= Subset
	}
	return out
}

// MergeResultKind identifies the shape of a MergeResult.
type MergeResultKind uint8

const (
	// MergeEmpty collapses the merge to the empty set.
	MergeEmpty MergeResultKind = iota
	// MergeUniversal collapses the merge to the universal set.
	MergeUniversal
	// MergeSet merges to a new term, Negated indicating NOT Set.
	MergeSet
)

// MergeResult is the outcome of a Merger.MergeUnion or
// Merger.MergeIntersection call that successfully combined two terms
// into one.
type MergeResult[T comparable] struct {
	Kind    MergeResultKind
	Value   T
	Negated bool
}

// Merger injects domain-specific knowledge into the optimizer: facts
// about the caller's term type T that cannot be derived from Boolean
// structure alone.
//
// A nil Merger is valid everywhere a Merger is accepted — it behaves as
// if every method always reported no relationship and no merge. Go has no
// blanket-impl mechanism for a type parameter, so the no-op behavior is
// implemented as a nil check at the oracle's call sites instead of a
// zero-value implementation.
type Merger[T comparable] interface {
	// Relation reports the known relationship between terms a and b. It
	// is always safe to return Trivial; that simply forgoes an
	// optimization opportunity.
	Relation(a, b T) SetRelation

	// MergeUnion attempts to combine a and b (with their respective
	// negation flags) into a single term under OR. The second return
	// value is false when no merge is possible.
	MergeUnion(a T, aNeg bool, b T, bNeg bool) (MergeResult[T], bool)

	// MergeIntersection attempts to combine a and b into a single term
	// under AND. The second return value is false when no merge is
	// possible.
	MergeIntersection(a T, aNeg bool, b T, bNeg bool) (MergeResult[T], bool)
}
