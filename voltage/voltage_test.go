package voltage

import (
	"testing"

	"github.com/NREL-Distribution-Suites/shift/core"
	"github.com/NREL-Distribution-Suites/shift/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildSplitPhaseFeeder mirrors the tiny split-phase feeder scenario:
// src -[xfmr_1]- sec -[line_1]- L1, -[line_2]- L2.
func buildSplitPhaseFeeder(t *testing.T) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	require.NoError(t, g.AddNode(core.Node{Name: "src", Assets: map[geo.AssetKind]struct{}{geo.VoltageSource: {}}}))
	require.NoError(t, g.AddNode(core.Node{Name: "sec"}))
	require.NoError(t, g.AddNode(core.Node{Name: "L1", Assets: map[geo.AssetKind]struct{}{geo.Load: {}}}))
	require.NoError(t, g.AddNode(core.Node{Name: "L2", Assets: map[geo.AssetKind]struct{}{geo.Load: {}}}))
	require.NoError(t, g.AddEdge("src", "sec", core.Edge{Name: "xfmr_1", Kind: core.Transformer}))
	l1 := geo.Meters(50)
	l2 := geo.Meters(75)
	require.NoError(t, g.AddEdge("sec", "L1", core.Edge{Name: "line_1", Kind: core.Branch, Length: &l1}))
	require.NoError(t, g.AddEdge("sec", "L2", core.Edge{Name: "line_2", Kind: core.Branch, Length: &l2}))

	return g
}

func TestComputeSplitPhaseVoltages(t *testing.T) {
	g := buildSplitPhaseFeeder(t)
	configs := []TransformerVoltageConfig{{Name: "xfmr_1", Voltages: []geo.Voltage{geo.KiloVolts(7.2), geo.Volts(120)}}}

	m, err := Compute(g, configs)
	require.NoError(t, err)

	assert.Equal(t, geo.KiloVolts(7.2), m.NodeVoltages["src"])
	assert.Equal(t, geo.Volts(120), m.NodeVoltages["sec"])
	assert.Equal(t, geo.Volts(120), m.NodeVoltages["L1"])
	assert.Equal(t, geo.Volts(120), m.NodeVoltages["L2"])
}

func TestComputeMissingVoltageConfigFails(t *testing.T) {
	g := buildSplitPhaseFeeder(t)
	_, err := Compute(g, nil)
	require.Error(t, err)
}

// TestComputeOverlappingSweepsKeepMoreExtreme builds a two-transformer
// chain src -[xfmr_1]- mid -[xfmr_2]- sec, where mid is both xfmr_1's
// LT endpoint and xfmr_2's HT endpoint, and checks the voltage each node
// ends up with once both transformers' sweeps have run.
func TestComputeOverlappingSweepsKeepMoreExtreme(t *testing.T) {
	g := core.NewGraph()
	require.NoError(t, g.AddNode(core.Node{Name: "src", Assets: map[geo.AssetKind]struct{}{geo.VoltageSource: {}}}))
	require.NoError(t, g.AddNode(core.Node{Name: "mid"}))
	require.NoError(t, g.AddNode(core.Node{Name: "sec"}))
	require.NoError(t, g.AddEdge("src", "mid", core.Edge{Name: "xfmr_1", Kind: core.Transformer}))
	require.NoError(t, g.AddEdge("mid", "sec", core.Edge{Name: "xfmr_2", Kind: core.Transformer}))

	configs := []TransformerVoltageConfig{
		{Name: "xfmr_1", Voltages: []geo.Voltage{geo.KiloVolts(12.47), geo.KiloVolts(7.2)}},
		{Name: "xfmr_2", Voltages: []geo.Voltage{geo.KiloVolts(7.2), geo.Volts(240)}},
	}

	m, err := Compute(g, configs)
	require.NoError(t, err)

	// mid is xfmr_1's LT (min 7.2kV) but an ancestor of xfmr_2's LT
	// (sec), so it is reassigned upward to xfmr_2's HT (max 7.2kV) —
	// equal here, but mid must never drop below either transformer's
	// HT-side contribution.
	assert.Equal(t, geo.KiloVolts(12.47), m.NodeVoltages["src"])
	assert.Equal(t, geo.KiloVolts(7.2), m.NodeVoltages["mid"])
	assert.Equal(t, geo.Volts(240), m.NodeVoltages["sec"])
}
