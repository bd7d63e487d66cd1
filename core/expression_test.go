package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/setexpr/core"
)

func TestSetInterning(t *testing.T) {
	expr := core.New[string]()
	a1 := expr.Set("A")
	a2 := expr.Set("A")
	b := expr.Set("B")

	assert.Equal(t, a1, a2, "Set(A) called twice must return the same id")
	assert.NotEqual(t, a1, b)
}

func TestUnionIdempotent(t *testing.T) {
	expr := core.New[string]()
	a := expr.Set("A")

	assert.Equal(t, a, expr.Union(a, a), "A | A == A")
}

func TestIntersectionIdempotent(t *testing.T) {
	expr := core.New[string]()
	a := expr.Set("A")

	assert.Equal(t, a, expr.Intersection(a, a), "A & A == A")
}

func TestUnionIdentityAndAnnihilator(t *testing.T) {
	expr := core.New[string]()
	a := expr.Set("A")

	assert.Equal(t, a, expr.Union(a, core.Empty), "A | Empty == A")
	assert.Equal(t, core.Universal, expr.Union(a, core.Universal), "A | Universal == Universal")
}

func TestIntersectionIdentityAndAnnihilator(t *testing.T) {
	expr := core.New[string]()
	a := expr.Set("A")

	assert.Equal(t, a, expr.Intersection(a, core.Universal), "A & Universal == A")
	assert.Equal(t, core.Empty, expr.Intersection(a, core.Empty), "A & Empty == Empty")
}

func TestComplementaryPairs(t *testing.T) {
	expr := core.New[string]()
	a := expr.Set("A")
	notA := expr.Complement(a)

	assert.Equal(t, core.Universal, expr.Union(a, notA), "A | !A == Universal")
	assert.Equal(t, core.Empty, expr.Intersection(a, notA), "A & !A == Empty")
}

func TestDoubleComplementIsIdentity(t *testing.T) {
	expr := core.New[string]()
	a := expr.Set("A")

	assert.Equal(t, a, expr.Complement(expr.Complement(a)))
}

func TestUnionCommutative(t *testing.T) {
	expr := core.New[string]()
	a := expr.Set("A")
	b := expr.Set("B")

	assert.Equal(t, expr.Union(a, b), expr.Union(b, a))
}

func TestSingletonCollapses(t *testing.T) {
	expr := core.New[string]()
	a := expr.Set("A")

	assert.Equal(t, a, expr.Union(a))
	assert.Equal(t, a, expr.Intersection(a))
}

func TestCompoundNodeInterning(t *testing.T) {
	expr := core.New[string]()
	a := expr.Set("A")
	b := expr.Set("B")

	u1 := expr.Union(a, b)
	u2 := expr.Union(b, a)
	assert.Equal(t, u1, u2, "Union interns regardless of argument order")

	assert.Equal(t, core.KindUnion, expr.Kind(u1))
	assert.Equal(t, []core.Id{a, b}, expr.Children(u1))
}

func TestAddRootPanicsOnForeignId(t *testing.T) {
	expr := core.New[string]()
	assert.Panics(t, func() {
		expr.AddRoot(core.Id(9999))
	})
}

func TestTermAccessor(t *testing.T) {
	expr := core.New[string]()
	a := expr.Set("A")
	b := expr.Set("B")
	u := expr.Union(a, b)

	val, ok := expr.Term(a)
	require.True(t, ok)
	assert.Equal(t, "A", val)

	_, ok = expr.Term(u)
	assert.False(t, ok, "a union node has no term value")
}

func TestRemapRoots(t *testing.T) {
	expr := core.New[string]()
	a := expr.Set("A")
	b := expr.Set("B")
	expr.AddRoot(a)

	expr.RemapRoots(func(core.Id) core.Id { return b })
	require.Equal(t, 1, expr.RootCount())
	assert.Equal(t, b, expr.Roots()[0])
}
