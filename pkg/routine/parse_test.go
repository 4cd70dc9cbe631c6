package routine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SingleNode(t *testing.T) {
	r, err := Parse("[(multiply-k (dyn 0) (static 3))]")
	require.NoError(t, err)
	require.Equal(t, 1, r.Len())

	n := r.Nodes[0]
	assert.Equal(t, "multiply-k", n.Name)
	require.Len(t, n.Wires, 2)
	assert.Equal(t, Dyn(0), n.Input())
	assert.Equal(t, []Wire{Static(3)}, n.Params())
}

func TestParse_Chain(t *testing.T) {
	r, err := Parse("[(index-k (dyn 0) (static 3)), (add-k (dyn 0) (dyn 1))]")
	require.NoError(t, err)
	require.Equal(t, 2, r.Len())
	assert.Equal(t, Dyn(1), r.Nodes[1].Params()[0])
}

func TestParse_CommasOptional(t *testing.T) {
	withComma, err := Parse("[(head (dyn 0)), (double (dyn 1))]")
	require.NoError(t, err)
	withoutComma, err := Parse("[(head (dyn 0)) (double (dyn 1))]")
	require.NoError(t, err)
	assert.Equal(t, withComma.String(), withoutComma.String())
}

func TestParse_NegativeStatic(t *testing.T) {
	r, err := Parse("[(add-k (dyn 0) (static -5))]")
	require.NoError(t, err)
	assert.Equal(t, Static(-5), r.Nodes[0].Params()[0])
}

func TestParse_Errors(t *testing.T) {
	cases := []string{
		"",
		"[",
		"[()]",
		"[(head)]",                    // missing input wire
		"[(head (dyn 1))]",            // forward reference
		"[(head (dyn -1))]",           // negative reference
		"[(head (wibble 0))]",         // unknown wire tag
		"(head (dyn 0))",              // missing brackets
		"[(add-k (dyn 0) (dyn 5))]",   // reference beyond earlier nodes
	}
	for _, src := range cases {
		_, err := Parse(src)
		assert.Error(t, err, "Parse(%q)", src)
	}
}

func TestString_RoundTrip(t *testing.T) {
	srcs := []string{
		"[(multiply-k (dyn 0) (static 3))]",
		"[(index-k (dyn 0) (static 3)), (add-k (dyn 0) (dyn 1))]",
		"[(sort (dyn 0)), (reverse (dyn 1)), (head (dyn 2))]",
	}
	for _, src := range srcs {
		r, err := Parse(src)
		require.NoError(t, err)
		assert.Equal(t, src, r.String())

		again, err := Parse(r.String())
		require.NoError(t, err)
		assert.Equal(t, r.String(), again.String())
	}
}

func TestValidate_TopologicalOrder(t *testing.T) {
	r := &Routine{Nodes: []Node{
		{Name: "head", Wires: []Wire{Dyn(0)}},
		{Name: "double", Wires: []Wire{Dyn(2)}},
	}}
	assert.Error(t, r.Validate())

	r.Nodes[1].Wires[0] = Dyn(1)
	assert.NoError(t, r.Validate())
}

func TestClone_Independent(t *testing.T) {
	r, err := Parse("[(add-k (dyn 0) (static 1))]")
	require.NoError(t, err)

	c := r.Clone()
	c.Nodes[0].Wires[1] = Static(9)
	assert.Equal(t, Static(1), r.Nodes[0].Wires[1])
}
