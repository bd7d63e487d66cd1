package eval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/setexpr/core"
	"github.com/katalvlaran/setexpr/eval"
)

// boolBackend evaluates an expression against a fixed "active" set of
// term names: a term is true if and only if it appears in active.
type boolBackend struct {
	active map[string]bool
}

func (b *boolBackend) Universal() (bool, error) { return true, nil }
func (b *boolBackend) Empty() (bool, error)     { return false, nil }
func (b *boolBackend) Set(value string) (bool, error) {
	return b.active[value], nil
}
func (b *boolBackend) Union(values []bool) (bool, error) {
	for _, v := range values {
		if v {
			return true, nil
		}
	}
	return false, nil
}
func (b *boolBackend) Intersection(values []bool) (bool, error) {
	for _, v := range values {
		if !v {
			return false, nil
		}
	}
	return true, nil
}
func (b *boolBackend) Difference(include, exclude bool) (bool, error) {
	return include && !exclude, nil
}

func buildUnionIntersectNot(expr *core.Expression[string]) core.Id {
	a := expr.Set("A")
	b := expr.Set("B")
	c := expr.Set("C")
	root := expr.Intersection(expr.Union(a, b), c.Not())
	expr.AddRoot(root)
	return root
}

func TestEvaluateUnionIntersectNot(t *testing.T) {
	expr := core.New[string]()
	buildUnionIntersectNot(expr)

	backend := &boolBackend{active: map[string]bool{"A": true}}
	results, err := eval.Evaluate[string, bool](expr, backend)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0])

	backend2 := &boolBackend{active: map[string]bool{"A": true, "C": true}}
	results2, err := eval.Evaluate[string, bool](expr, backend2)
	require.NoError(t, err)
	assert.False(t, results2[0])
}

func TestEvaluateIntersectionWithComplementIsEmpty(t *testing.T) {
	expr := core.New[string]()
	a := expr.Set("A")
	root := expr.Intersection(a, a.Not())
	expr.AddRoot(root)

	assert.Equal(t, core.Empty, root)
}

func TestEvaluateWithCacheReusesAcrossCalls(t *testing.T) {
	expr := core.New[string]()
	buildUnionIntersectNot(expr)

	backend := &boolBackend{active: map[string]bool{"A": true}}
	cache := eval.NewCache[bool]()

	first, err := eval.EvaluateWith[string, bool](expr, backend, cache)
	require.NoError(t, err)
	assert.True(t, first[0])

	second, err := eval.EvaluateWith[string, bool](expr, backend, cache)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEvaluateWithCacheClearsOnExpressionChange(t *testing.T) {
	expr := core.New[string]()
	buildUnionIntersectNot(expr)

	backend := &boolBackend{active: map[string]bool{"A": true}}
	cache := eval.NewCache[bool]()
	_, err := eval.EvaluateWith[string, bool](expr, backend, cache)
	require.NoError(t, err)

	pruned := expr.Prune()
	results, err := eval.EvaluateWith[string, bool](pruned, backend, cache)
	require.NoError(t, err)
	assert.True(t, results[0])
}

func TestEvaluateWithPruningMatchesEvaluate(t *testing.T) {
	expr := core.New[string]()
	buildUnionIntersectNot(expr)

	backend := &boolBackend{active: map[string]bool{"A": true, "C": true}}
	plain, err := eval.Evaluate[string, bool](expr, backend)
	require.NoError(t, err)

	pruning, err := eval.EvaluateWithPruning[string, bool](expr, backend)
	require.NoError(t, err)

	assert.Equal(t, plain, pruning)
}

// setBackend evaluates an expression over an explicit universe of
// integer row ids, represented as a sorted slice.
type setBackend struct {
	universe []int
	members  map[string][]int
}

func (s *setBackend) Universal() ([]int, error) { return s.universe, nil }
func (s *setBackend) Empty() ([]int, error)     { return nil, nil }
func (s *setBackend) Set(value string) ([]int, error) {
	return s.members[value], nil
}
func (s *setBackend) Union(values [][]int) ([]int, error) {
	seen := map[int]bool{}
	for _, v := range values {
		for _, x := range v {
			seen[x] = true
		}
	}
	return toSortedSlice(seen), nil
}
func (s *setBackend) Intersection(values [][]int) ([]int, error) {
	counts := map[int]int{}
	for _, v := range values {
		for _, x := range v {
			counts[x]++
		}
	}
	seen := map[int]bool{}
	for x, c := range counts {
		if c == len(values) {
			seen[x] = true
		}
	}
	return toSortedSlice(seen), nil
}
func (s *setBackend) Difference(include, exclude []int) ([]int, error) {
	excluded := map[int]bool{}
	for _, x := range exclude {
		excluded[x] = true
	}
	var out []int
	for _, x := range include {
		if !excluded[x] {
			out = append(out, x)
		}
	}
	return toSortedSlice(setOf(out)), nil
}

func setOf(xs []int) map[int]bool {
	m := map[int]bool{}
	for _, x := range xs {
		m[x] = true
	}
	return m
}

func toSortedSlice(m map[int]bool) []int {
	out := make([]int, 0, len(m))
	for x := range m {
		out = append(out, x)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

func TestEvaluateRowIdSetBackend(t *testing.T) {
	expr := core.New[string]()
	r := expr.Set("R")
	b := expr.Set("B")
	e := expr.Set("E")
	root := expr.Intersection(expr.Union(r, b), e.Not())
	expr.AddRoot(root)

	backend := &setBackend{
		universe: []int{1, 2, 3, 4, 5},
		members: map[string][]int{
			"R": {1, 2},
			"B": {3, 4},
			"E": {1, 4},
		},
	}

	results, err := eval.Evaluate[string, []int](expr, backend)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, []int{2, 3}, results[0])
}
