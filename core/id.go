package core

// Id identifies a node within an Expression's node store. It packs the
// node's index together with a negation bit:
//
//	raw(id) = (index << 1) | negated
//
// so the complement of any Id is a pure bit flip, never a new node.
type Id uint32

const (
	// Empty is the id of the empty set. It is always node index 0.
	Empty Id = 0
	// Universal is the id of the universal set: the complement of Empty,
	// sharing node index 0 but with the negation bit set.
	Universal Id = 1
)

// maxId marks an as-yet-unresolved slot in a remap table; it can never
// collide with a real Id because the top bit of index is never used (a
// node store large enough to reach it would have overflowed long before).
const maxId Id = Id(^uint32(0))

func newId(index uint32, negated bool) Id {
	id := Id(index << 1)
	if negated {
		id |= 1
	}
	return id
}

// IndexId returns the positive (non-negated) Id for the given node
// index. Packages that walk node indices directly — such as
// optimizer's per-node rewrite loop — use this to construct an Id from
// a raw index without reaching into core's internals.
func IndexId(index uint32) Id { return newId(index, false) }

// Index returns the node index this Id addresses, discarding negation.
func (id Id) Index() uint32 { return uint32(id) >> 1 }

// Negated reports whether id refers to the complement of its node.
func (id Id) Negated() bool { return uint32(id)&1 == 1 }

// Not returns the complement of id. Complementing twice returns the
// original id.
func (id Id) Not() Id { return id ^ 1 }
