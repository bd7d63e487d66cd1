package boolalg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/setexpr/backends/boolalg"
	"github.com/katalvlaran/setexpr/core"
	"github.com/katalvlaran/setexpr/eval"
)

func TestBoolalgUnionIntersectNot(t *testing.T) {
	expr := core.New[string]()
	a := expr.Set("A")
	b := expr.Set("B")
	c := expr.Set("C")
	root := expr.Intersection(expr.Union(a, b), c.Not())
	expr.AddRoot(root)

	backend := boolalg.New[string]()
	backend.Add("A")

	results, err := eval.Evaluate[string, bool](expr, backend)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0])
}

func TestBoolalgNoActiveKeysIsFalse(t *testing.T) {
	expr := core.New[string]()
	a := expr.Set("A")
	expr.AddRoot(a)

	backend := boolalg.New[string]()
	results, err := eval.Evaluate[string, bool](expr, backend)
	require.NoError(t, err)
	assert.False(t, results[0])
}
