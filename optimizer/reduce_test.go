package optimizer

import (
	"reflect"
	"testing"

	"github.com/katalvlaran/setexpr/core"
)

func TestSortedIntersect(t *testing.T) {
	a := []core.Id{2, 4, 6, 8}
	b := []core.Id{4, 6, 10}
	got := sortedIntersect(a, b)
	want := []core.Id{4, 6}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("sortedIntersect() = %v, want %v", got, want)
	}
}

func TestSortedIntersectNoOverlap(t *testing.T) {
	a := []core.Id{2, 4}
	b := []core.Id{6, 8}
	if got := sortedIntersect(a, b); len(got) != 0 {
		t.Errorf("sortedIntersect() = %v, want empty", got)
	}
}

func TestSubtractSorted(t *testing.T) {
	a := []core.Id{2, 4, 6, 8}
	common := []core.Id{4, 8}
	got := subtractSorted(a, common)
	want := []core.Id{2, 6}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("subtractSorted() = %v, want %v", got, want)
	}
}

func TestSwapRemove(t *testing.T) {
	s := []core.Id{10, 20, 30, 40}
	s = swapRemove(s, 1)
	want := []core.Id{10, 40, 30}
	if !reflect.DeepEqual(s, want) {
		t.Errorf("swapRemove() = %v, want %v", s, want)
	}
}

func TestShouldFlipUnion(t *testing.T) {
	a := core.Id(2)
	b := core.Id(4)
	if shouldFlip([]core.Id{a, b}, true) {
		t.Error("union of non-negated children should not flip")
	}
	if !shouldFlip([]core.Id{a, b.Not()}, true) {
		t.Error("union containing a negated child should flip")
	}
}

func TestShouldFlipIntersection(t *testing.T) {
	a := core.Id(2)
	b := core.Id(4)
	if shouldFlip([]core.Id{a, b}, false) {
		t.Error("intersection of non-negated children should not flip")
	}
	if shouldFlip([]core.Id{a, b.Not()}, false) {
		t.Error("intersection with a mixed sign should not flip")
	}
	if !shouldFlip([]core.Id{a.Not(), b.Not()}, false) {
		t.Error("intersection of all-negated children should flip")
	}
	if shouldFlip(nil, false) {
		t.Error("empty intersection should not flip")
	}
}
