package phase

import (
	"testing"

	"github.com/NREL-Distribution-Suites/shift/core"
	"github.com/NREL-Distribution-Suites/shift/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildThreePhaseFeeder builds src -[xfmr]- sec -[line]- load, src
// carrying VoltageSource, xfmr a Transformer edge.
func buildThreePhaseFeeder(t *testing.T) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	require.NoError(t, g.AddNode(core.Node{Name: "src", Assets: map[geo.AssetKind]struct{}{geo.VoltageSource: {}}}))
	require.NoError(t, g.AddNode(core.Node{Name: "sec"}))
	require.NoError(t, g.AddNode(core.Node{Name: "load", Assets: map[geo.AssetKind]struct{}{geo.Load: {}}}))
	require.NoError(t, g.AddEdge("src", "sec", core.Edge{Name: "xfmr_1", Kind: core.Transformer}))
	l := geo.Meters(50)
	require.NoError(t, g.AddEdge("sec", "load", core.Edge{Name: "line_1", Kind: core.Branch, Length: &l}))

	return g
}

func TestComputeThreePhase(t *testing.T) {
	g := buildThreePhaseFeeder(t)
	configs := []TransformerPhaseConfig{{Name: "xfmr_1", Type: ThreePhase, Capacity: geo.KVA(25)}}

	m, err := Compute(g, configs, Greedy)
	require.NoError(t, err)
	assert.True(t, m.NodePhases["src"].Equal(geo.ABC()))
	assert.True(t, m.NodePhases["sec"].Equal(geo.ABC()))
	assert.True(t, m.NodePhases["load"].Equal(geo.ABC()))
	assert.Equal(t, geo.ABC(), m.TransformerPhases["xfmr_1"])
}

func TestComputeMissingConfigFails(t *testing.T) {
	g := buildThreePhaseFeeder(t)
	_, err := Compute(g, nil, Greedy)
	require.Error(t, err)
}

func TestComputeSplitPhaseDownwardInheritance(t *testing.T) {
	g := core.NewGraph()
	require.NoError(t, g.AddNode(core.Node{Name: "src", Assets: map[geo.AssetKind]struct{}{geo.VoltageSource: {}}}))
	require.NoError(t, g.AddNode(core.Node{Name: "sec"}))
	require.NoError(t, g.AddNode(core.Node{Name: "l1", Assets: map[geo.AssetKind]struct{}{geo.Load: {}}}))
	require.NoError(t, g.AddEdge("src", "sec", core.Edge{Name: "xfmr_1", Kind: core.Transformer}))
	l := geo.Meters(50)
	require.NoError(t, g.AddEdge("sec", "l1", core.Edge{Name: "line_1", Kind: core.Branch, Length: &l}))

	configs := []TransformerPhaseConfig{{Name: "xfmr_1", Type: SplitPhase, Capacity: geo.KVA(25), Location: geo.MustPoint(0, 0)}}
	m, err := Compute(g, configs, Greedy)
	require.NoError(t, err)

	assert.True(t, m.NodePhases["sec"].Equal(geo.NewPhaseSet(geo.PhaseS1, geo.PhaseN, geo.PhaseS2)))
	assert.True(t, m.NodePhases["l1"].Equal(geo.NewPhaseSet(geo.PhaseS1, geo.PhaseS2)))
}

func TestAllocateGreedyBalancesCapacity(t *testing.T) {
	configs := make([]TransformerPhaseConfig, 0, 9)
	caps := []float64{10, 10, 10, 20, 20, 20, 30, 30, 30}
	for i, c := range caps {
		configs = append(configs, TransformerPhaseConfig{Name: "t" + string(rune('a'+i)), Capacity: geo.KVA(c)})
	}
	assignment := allocateGreedy(configs, 3)

	sums := make([]float64, 3)
	for _, c := range configs {
		sums[assignment[c.Name]] += c.Capacity.KVA()
	}
	for _, s := range sums {
		assert.InDelta(t, 60.0, s, 10.0)
	}
}

func TestUpwardPropagationPromotesToThreePhase(t *testing.T) {
	g := core.NewGraph()
	require.NoError(t, g.AddNode(core.Node{Name: "src", Assets: map[geo.AssetKind]struct{}{geo.VoltageSource: {}}}))
	require.NoError(t, g.AddNode(core.Node{Name: "mid"}))
	require.NoError(t, g.AddNode(core.Node{Name: "sec"}))
	l := geo.Meters(10)
	require.NoError(t, g.AddEdge("src", "mid", core.Edge{Name: "e1", Kind: core.Branch, Length: &l}))
	require.NoError(t, g.AddEdge("mid", "sec", core.Edge{Name: "xfmr_1", Kind: core.Transformer}))

	tree, err := g.GetDFSTree()
	require.NoError(t, err)
	nodePhases := map[string]geo.PhaseSet{
		"mid": geo.NewPhaseSet(geo.PhaseA, geo.PhaseB),
	}
	propagateUpward(tree, nodePhases, "mid")
	assert.True(t, nodePhases["src"].Equal(geo.ABC()))
}
