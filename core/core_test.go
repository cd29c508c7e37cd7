package core

import (
	"errors"
	"testing"

	"github.com/NREL-Distribution-Suites/shift/geo"
	"github.com/NREL-Distribution-Suites/shift/shiferr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDist(m float64) *geo.Distance {
	d := geo.Meters(m)

	return &d
}

func TestAddNodeUniqueness(t *testing.T) {
	g := NewGraph()
	require.NoError(t, g.AddNode(Node{Name: "n1"}))
	err := g.AddNode(Node{Name: "n1"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, shiferr.ErrNodeAlreadyExists))
}

func TestSingleVoltageSource(t *testing.T) {
	g := NewGraph()
	require.NoError(t, g.AddNode(Node{Name: "src", Assets: map[geo.AssetKind]struct{}{geo.VoltageSource: {}}}))
	assert.Equal(t, "src", g.VsourceNode())

	err := g.AddNode(Node{Name: "src2", Assets: map[geo.AssetKind]struct{}{geo.VoltageSource: {}}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, shiferr.ErrVsourceAlreadyExists))
}

func TestEdgeLengthInvariant(t *testing.T) {
	g := NewGraph()
	require.NoError(t, g.AddNode(Node{Name: "a"}))
	require.NoError(t, g.AddNode(Node{Name: "b"}))

	err := g.AddEdge("a", "b", Edge{Name: "e1", Kind: Transformer, Length: mustDist(10)})
	require.Error(t, err)

	err = g.AddEdge("a", "b", Edge{Name: "e2", Kind: Branch, Length: nil})
	require.Error(t, err)

	require.NoError(t, g.AddEdge("a", "b", Edge{Name: "e3", Kind: Transformer, Length: nil}))
}

func TestEdgeAlreadyExists(t *testing.T) {
	g := NewGraph()
	require.NoError(t, g.AddNode(Node{Name: "a"}))
	require.NoError(t, g.AddNode(Node{Name: "b"}))
	require.NoError(t, g.AddEdge("a", "b", Edge{Name: "e1", Kind: Branch, Length: mustDist(10)}))

	err := g.AddEdge("a", "b", Edge{Name: "e2", Kind: Branch, Length: mustDist(5)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, shiferr.ErrEdgeAlreadyExists))

	err = g.AddEdge("b", "c", Edge{Name: "e1", Kind: Branch, Length: mustDist(5)})
	require.Error(t, err)
}

func TestRemoveNodeClearsVsource(t *testing.T) {
	g := NewGraph()
	require.NoError(t, g.AddNode(Node{Name: "src", Assets: map[geo.AssetKind]struct{}{geo.VoltageSource: {}}}))
	require.NoError(t, g.RemoveNode("src"))
	assert.Equal(t, "", g.VsourceNode())
}

// buildLineFeeder builds src - a - b - c as a chain of Branch edges, src
// carrying VoltageSource.
func buildLineFeeder(t *testing.T) *Graph {
	t.Helper()
	g := NewGraph()
	require.NoError(t, g.AddNode(Node{Name: "src", Assets: map[geo.AssetKind]struct{}{geo.VoltageSource: {}}}))
	require.NoError(t, g.AddNode(Node{Name: "a"}))
	require.NoError(t, g.AddNode(Node{Name: "b"}))
	require.NoError(t, g.AddNode(Node{Name: "c"}))
	require.NoError(t, g.AddEdge("src", "a", Edge{Name: "e1", Kind: Branch, Length: mustDist(10)}))
	require.NoError(t, g.AddEdge("a", "b", Edge{Name: "e2", Kind: Branch, Length: mustDist(10)}))
	require.NoError(t, g.AddEdge("b", "c", Edge{Name: "e3", Kind: Branch, Length: mustDist(10)}))

	return g
}

func TestDFSTreeRootAndComponent(t *testing.T) {
	g := buildLineFeeder(t)
	tree, err := g.GetDFSTree()
	require.NoError(t, err)
	assert.Equal(t, "src", tree.Root)
	assert.ElementsMatch(t, []string{"src", "a", "b", "c"}, tree.Order)
	assert.Equal(t, []string{"a"}, tree.Successors("src"))
	assert.Equal(t, []string{"src", "a", "b"}, tree.Ancestors("c"))
	assert.Equal(t, []string{"a", "b", "c"}, tree.Descendants("src"))
}

func TestDFSTreeMissingVsource(t *testing.T) {
	g := NewGraph()
	require.NoError(t, g.AddNode(Node{Name: "a"}))
	_, err := g.GetDFSTree()
	require.Error(t, err)
	assert.True(t, errors.Is(err, shiferr.ErrVsourceDoesNotExist))
}

func TestGetNodesFilterIsStableOrdered(t *testing.T) {
	g := buildLineFeeder(t)
	nodes := g.GetNodes(nil)
	names := make([]string, len(nodes))
	for i, n := range nodes {
		names[i] = n.Name
	}
	assert.Equal(t, []string{"a", "b", "c", "src"}, names)
}
