package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/setexpr/core"
)

func TestDependencyIterPostOrder(t *testing.T) {
	expr := core.New[string]()
	a := expr.Set("A")
	b := expr.Set("B")
	c := expr.Set("C")
	u := expr.Union(a, b)
	root := expr.Intersection(u, c)
	expr.AddRoot(root)

	it := expr.Dependencies()
	var order []core.Id
	for {
		id, _, ok := it.Next()
		if !ok {
			break
		}
		order = append(order, id)
	}

	require.Len(t, order, 5, "a, b, c, u, root — each reachable node exactly once")
	assert.Equal(t, root, order[len(order)-1], "the root is yielded last")

	pos := make(map[core.Id]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	assert.Less(t, pos[a], pos[u], "A must be visited before A|B")
	assert.Less(t, pos[b], pos[u], "B must be visited before A|B")
	assert.Less(t, pos[u], pos[root])
	assert.Less(t, pos[c], pos[root])
}

func TestDependencyIterPrunesUnreachable(t *testing.T) {
	expr := core.New[string]()
	a := expr.Set("A")
	_ = expr.Set("B") // never rooted
	expr.AddRoot(a)

	count := 0
	it := expr.Dependencies()
	for {
		_, _, ok := it.Next()
		if !ok {
			break
		}
		count++
	}
	assert.Equal(t, 1, count)
}

func TestDependencyIterSharedNodeVisitedOnce(t *testing.T) {
	expr := core.New[string]()
	a := expr.Set("A")
	b := expr.Set("B")
	c := expr.Set("C")
	shared := expr.Union(a, b)
	left := expr.Intersection(shared, c)
	right := expr.Union(shared, c)
	expr.AddRoot(left)
	expr.AddRoot(right)

	seen := make(map[core.Id]int)
	it := expr.Dependencies()
	for {
		id, _, ok := it.Next()
		if !ok {
			break
		}
		seen[id]++
	}
	assert.Equal(t, 1, seen[shared], "a diamond-shaped dependency is visited exactly once")
}
