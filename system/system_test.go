package system

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NREL-Distribution-Suites/shift/core"
	"github.com/NREL-Distribution-Suites/shift/equipment"
	"github.com/NREL-Distribution-Suites/shift/geo"
	"github.com/NREL-Distribution-Suites/shift/phase"
	"github.com/NREL-Distribution-Suites/shift/voltage"
)

// buildSplitPhaseFeeder mirrors the E1 tiny split-phase feeder: src
// -[xfmr_1]- sec -[line_1, 50m]- L1, -[line_2, 75m]- L2.
func buildSplitPhaseFeeder(t *testing.T) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	require.NoError(t, g.AddNode(core.Node{Name: "src", Location: geo.MustPoint(-97.33, 32.75), Assets: map[geo.AssetKind]struct{}{geo.VoltageSource: {}}}))
	require.NoError(t, g.AddNode(core.Node{Name: "sec", Location: geo.MustPoint(-97.329, 32.749)}))
	require.NoError(t, g.AddNode(core.Node{Name: "L1", Location: geo.MustPoint(-97.328, 32.748), Assets: map[geo.AssetKind]struct{}{geo.Load: {}}}))
	require.NoError(t, g.AddNode(core.Node{Name: "L2", Location: geo.MustPoint(-97.327, 32.747), Assets: map[geo.AssetKind]struct{}{geo.Load: {}}}))
	require.NoError(t, g.AddEdge("src", "sec", core.Edge{Name: "xfmr_1", Kind: core.Transformer}))
	l1 := geo.Meters(50)
	l2 := geo.Meters(75)
	require.NoError(t, g.AddEdge("sec", "L1", core.Edge{Name: "line_1", Kind: core.Branch, BranchKind: core.MatrixImpedanceBranch, Length: &l1}))
	require.NoError(t, g.AddEdge("sec", "L2", core.Edge{Name: "line_2", Kind: core.Branch, BranchKind: core.MatrixImpedanceBranch, Length: &l2}))

	return g
}

func buildCatalogue() *equipment.MemCatalogue {
	return &equipment.MemCatalogue{
		Transformers: []equipment.TransformerEquipment{
			{Name: "xfmr-small", Windings: []equipment.Winding{
				{RatedPower: geo.KVA(25), RatedVoltage: geo.KiloVolts(7.2), NumPhases: 1, Connection: equipment.LineToGround},
				{RatedPower: geo.KVA(25), RatedVoltage: geo.Volts(120), NumPhases: 1, Connection: equipment.CenterTappedSecondary},
			}},
		},
		MatrixBranches: []equipment.MatrixImpedanceBranchEquipment{
			{Name: "2ph-small", Ampacity: geo.Amps(100), RMatrix: [][]float64{{0.1, 0}, {0, 0.1}}, XMatrix: [][]float64{{0.1, 0}, {0, 0.1}}},
		},
	}
}

func buildSystem(t *testing.T) *System {
	t.Helper()
	g := buildSplitPhaseFeeder(t)

	phaseCfg := []phase.TransformerPhaseConfig{{Name: "xfmr_1", Type: phase.SplitPhase, Capacity: geo.KVA(25), Location: geo.MustPoint(-97.329, 32.749)}}
	phases, err := phase.Compute(g, phaseCfg, phase.Greedy)
	require.NoError(t, err)

	voltageCfg := []voltage.TransformerVoltageConfig{{Name: "xfmr_1", Voltages: []geo.Voltage{geo.KiloVolts(7.2), geo.Volts(120)}}}
	voltages, err := voltage.Compute(g, voltageCfg)
	require.NoError(t, err)

	loads := map[string]equipment.LoadEquipment{
		"L1": {Name: "res-1", PhaseLoads: []equipment.PhaseLoad{
			{PReal: 1, RealPower: geo.Watts(5000), ReactivePower: geo.VAR(1000)},
		}},
		"L2": {Name: "res-2", PhaseLoads: []equipment.PhaseLoad{
			{PReal: 1, RealPower: geo.Watts(5000), ReactivePower: geo.VAR(1000)},
		}},
	}

	cat := buildCatalogue()
	equip, err := equipment.Compute(g, phases, voltages, loads, cat)
	require.NoError(t, err)

	assetEquipment := map[string]map[geo.AssetKind]any{
		"L1": {geo.Load: loads["L1"]},
		"L2": {geo.Load: loads["L2"]},
	}

	sys, err := Build("e1-demo", g, phases, voltages, equip, assetEquipment)
	require.NoError(t, err)

	return sys
}

func TestBuildSplitPhaseFeeder(t *testing.T) {
	sys := buildSystem(t)

	assert.Len(t, sys.Buses, 4)
	assert.Len(t, sys.Branches, 2)
	assert.Len(t, sys.Transformers, 1)
	assert.Len(t, sys.Assets, 3) // src vsource + L1 load + L2 load

	tr, ok := sys.Transformers["xfmr_1"]
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"src", "sec"}, tr.Buses)
	require.Len(t, tr.WindingPhases, 2)

	l1, ok := sys.Assets["L1-Load"]
	require.True(t, ok)
	assert.Equal(t, "L1", l1.Bus)
	assert.Equal(t, geo.Load, l1.Kind)
}

func TestBuildWindingBusInjectivity(t *testing.T) {
	sys := buildSystem(t)
	tr := sys.Transformers["xfmr_1"]

	distinctBuses := make(map[string]struct{}, len(tr.Buses))
	for _, b := range tr.Buses {
		distinctBuses[b] = struct{}{}
	}
	assert.Len(t, distinctBuses, 2)
}

func TestEquipmentKindConsistency(t *testing.T) {
	sys := buildSystem(t)
	require.NoError(t, Validate(sys))

	for _, b := range sys.Branches {
		check, ok := EquipmentKindTable[b.Kind]
		require.True(t, ok)
		assert.True(t, check(b.Equipment))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	sys := buildSystem(t)

	var buf bytes.Buffer
	require.NoError(t, Save(sys, &buf))

	restored, err := Load(&buf)
	require.NoError(t, err)

	if diff := cmp.Diff(sys.Counts(), restored.Counts()); diff != "" {
		t.Fatalf("component counts differ after round-trip (-want +got):\n%s", diff)
	}
}

func TestValidateCatchesDanglingBranch(t *testing.T) {
	sys := buildSystem(t)
	sys.Branches["line_1"] = Branch{Name: "line_1", Kind: core.MatrixImpedanceBranch, Buses: [2]string{"sec", "ghost"}}

	err := Validate(sys)
	require.Error(t, err)
}
