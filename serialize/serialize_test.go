package serialize_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/setexpr/core"
	"github.com/katalvlaran/setexpr/serialize"
)

func buildSample() *core.Expression[string] {
	expr := core.New[string]()
	a := expr.Set("A")
	b := expr.Set("B")
	c := expr.Set("C")
	root := expr.Intersection(expr.Union(a, b), c.Not())
	expr.AddRoot(root)
	return expr
}

func TestJSONRoundTripPreservesShape(t *testing.T) {
	expr := buildSample()
	before := serialize.ToSnapshot(expr)

	data, err := serialize.EncodeJSON(expr)
	require.NoError(t, err)

	decoded, err := serialize.DecodeJSON[string](data)
	require.NoError(t, err)

	after := serialize.ToSnapshot(decoded)
	assert.Empty(t, cmp.Diff(before.Nodes, after.Nodes))
	assert.Equal(t, before.Roots, after.Roots)
}

func TestMsgpackRoundTripPreservesShape(t *testing.T) {
	expr := buildSample()
	before := serialize.ToSnapshot(expr)

	data, err := serialize.EncodeMsgpack(expr)
	require.NoError(t, err)

	decoded, err := serialize.DecodeMsgpack[string](data)
	require.NoError(t, err)

	after := serialize.ToSnapshot(decoded)
	assert.Empty(t, cmp.Diff(before.Nodes, after.Nodes))
	assert.Equal(t, before.Roots, after.Roots)
}

func TestDecodeProducesFreshToken(t *testing.T) {
	expr := buildSample()
	data, err := serialize.EncodeJSON(expr)
	require.NoError(t, err)

	decoded, err := serialize.DecodeJSON[string](data)
	require.NoError(t, err)

	assert.NotEqual(t, expr.Token(), decoded.Token())
}

func TestRoundTripPreservesRootNegation(t *testing.T) {
	expr := core.New[string]()
	a := expr.Set("A")
	expr.AddRoot(a.Not())

	data, err := serialize.EncodeJSON(expr)
	require.NoError(t, err)

	decoded, err := serialize.DecodeJSON[string](data)
	require.NoError(t, err)

	require.Equal(t, 1, decoded.RootCount())
	root := decoded.Roots()[0]
	assert.True(t, root.Negated())
	v, ok := decoded.Term(root)
	require.True(t, ok)
	assert.Equal(t, "A", v)
}
