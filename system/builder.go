package system

import (
	"math"

	"github.com/NREL-Distribution-Suites/shift/core"
	"github.com/NREL-Distribution-Suites/shift/equipment"
	"github.com/NREL-Distribution-Suites/shift/geo"
	"github.com/NREL-Distribution-Suites/shift/phase"
	"github.com/NREL-Distribution-Suites/shift/shiferr"
	"github.com/NREL-Distribution-Suites/shift/voltage"
)

// Build assembles a System from g and its phase/voltage/equipment
// labels in a single pass: one Bus per node, one Asset per (node, asset
// kind) using assetEquipment[node][kind] for the Equipment field, and a
// Branch or Transformer per edge. Ordering guarantee (spec §5):
// transformer-node explosion, then phase mapping, then voltage mapping,
// then equipment mapping must already have run — Build only assembles.
func Build(name string, g *core.Graph, phases *phase.Mapper, voltages *voltage.Mapper, equip *equipment.Mapper, assetEquipment map[string]map[geo.AssetKind]any) (*System, error) {
	sys := &System{
		Name:         name,
		Buses:        make(map[string]Bus),
		Branches:     make(map[string]Branch),
		Transformers: make(map[string]Transformer),
		Assets:       make(map[string]Asset),
	}

	for _, n := range g.GetNodes(nil) {
		sys.Buses[n.Name] = Bus{
			Name:         n.Name,
			Phases:       phases.NodePhases[n.Name],
			Coordinate:   n.Location,
			RatedVoltage: voltages.NodeVoltages[n.Name],
			VoltageType:  LineToGround,
		}

		for _, kind := range n.AssetKinds() {
			assetName := n.Name + "-" + kind.String()
			var eq any
			if m, ok := assetEquipment[n.Name]; ok {
				eq = m[kind]
			}
			sys.Assets[assetName] = Asset{
				Name:      assetName,
				Bus:       n.Name,
				Kind:      kind,
				Phases:    phases.AssetPhases[n.Name][kind],
				Equipment: eq,
			}
		}
	}

	for _, e := range g.GetEdges(nil) {
		eq, ok := equip.EdgeEquipment[e.Name]
		if !ok {
			return nil, shiferr.WithEntity(shiferr.ErrUnsupportedEdgeType, e.Name)
		}

		switch e.Kind {
		case core.Branch:
			if !EquipmentKindTable[e.BranchKind](eq) {
				return nil, shiferr.WithEntity(shiferr.ErrWrongEquipmentAssigned, e.Name)
			}
			sys.Branches[e.Name] = Branch{
				Name:      e.Name,
				Kind:      e.BranchKind,
				Buses:     [2]string{e.From, e.To},
				Phases:    phases.NodePhases[e.From].Intersect(phases.NodePhases[e.To]),
				Length:    *e.Length,
				Equipment: eq,
			}

		case core.Transformer:
			te, ok := eq.(equipment.TransformerEquipment)
			if !ok {
				return nil, shiferr.WithEntity(shiferr.ErrWrongEquipmentAssigned, e.Name)
			}
			tr, err := buildTransformer(e, phases, voltages, te)
			if err != nil {
				return nil, err
			}
			sys.Transformers[e.Name] = tr

		default:
			return nil, shiferr.WithEntity(shiferr.ErrUnsupportedEdgeType, e.Name)
		}
	}

	return sys, nil
}

// effectiveWindingVoltage derives the winding's bus-comparable voltage
// from its rated voltage and connection layout per spec §4.7.
func effectiveWindingVoltage(w equipment.Winding) geo.Voltage {
	switch w.Connection {
	case equipment.LineToGround:
		return geo.Volts(w.RatedVoltage.Volts() / math.Sqrt(3))
	case equipment.CenterTappedSecondary:
		return geo.Volts(w.RatedVoltage.Volts() * 2)
	default: // LineToLine
		return w.RatedVoltage
	}
}

// buildTransformer maps each winding to whichever of e's two endpoints
// is closest in voltage and validates winding-bus injectivity (testable
// property 9). A winding that lands alone on its bus keeps that bus's
// own phase set — this covers the ordinary two-winding transformer,
// split-phase included, per original_source/src/shift/system_builder.py's
// per-winding rule. The {S1,N}/{N,S2} center-tap convention is only
// injected for genuine three-winding center-tapped equipment, where two
// windings share one secondary bus and the shared bus's own phase set
// would otherwise be assigned to both.
func buildTransformer(e core.Edge, phases *phase.Mapper, voltages *voltage.Mapper, eq equipment.TransformerEquipment) (Transformer, error) {
	u, v := e.From, e.To
	busVoltage := map[string]geo.Voltage{u: voltages.NodeVoltages[u], v: voltages.NodeVoltages[v]}

	wdgVoltages := make([]geo.Voltage, len(eq.Windings))
	for i, w := range eq.Windings {
		wdgVoltages[i] = effectiveWindingVoltage(w)
	}

	mappedBuses := make([]string, len(wdgVoltages))
	for i, wv := range wdgVoltages {
		du := math.Abs(busVoltage[u].Volts() - wv.Volts())
		dv := math.Abs(busVoltage[v].Volts() - wv.Volts())
		if du <= dv {
			mappedBuses[i] = u
		} else {
			mappedBuses[i] = v
		}
	}

	distinctVoltages := make(map[geo.Voltage]struct{}, len(wdgVoltages))
	for _, wv := range wdgVoltages {
		distinctVoltages[wv] = struct{}{}
	}
	busCounts := make(map[string]int, 2)
	for _, b := range mappedBuses {
		busCounts[b]++
	}
	if len(busCounts) != len(distinctVoltages) {
		return Transformer{}, shiferr.WithEntity(shiferr.ErrWindingMismatch, e.Name)
	}

	windingPhases := make([]geo.PhaseSet, len(mappedBuses))

	if len(mappedBuses) == len(busCounts) {
		// One winding per bus: the ordinary case, split-phase secondaries
		// included, since the phase mapper already assigned {S1,S2,N} (or
		// whatever the transformer's type calls for) to that bus directly.
		for i, b := range mappedBuses {
			windingPhases[i] = phases.NodePhases[b]
		}

		return Transformer{Name: e.Name, Buses: mappedBuses, WindingPhases: windingPhases, Equipment: eq}, nil
	}

	unionPhases := geo.PhaseSet{}
	for _, b := range mappedBuses {
		unionPhases = unionPhases.Union(phases.NodePhases[b])
	}
	if !unionPhases.Has(geo.PhaseS1) && !unionPhases.Has(geo.PhaseS2) {
		return Transformer{}, shiferr.WithEntity(shiferr.ErrInvalidSplitPhaseWinding, e.Name)
	}

	if len(mappedBuses) != 3 || len(busCounts) != 2 {
		return Transformer{}, shiferr.WithEntity(shiferr.ErrInvalidSplitPhaseWinding, e.Name)
	}

	var primaryBus, tapBus string
	for b, c := range busCounts {
		if c == 1 {
			primaryBus = b
		} else {
			tapBus = b
		}
	}
	if primaryBus == "" || tapBus == "" {
		return Transformer{}, shiferr.WithEntity(shiferr.ErrInvalidSplitPhaseWinding, e.Name)
	}

	tapsSeen := 0
	for i, b := range mappedBuses {
		if b == primaryBus {
			windingPhases[i] = phases.NodePhases[b]

			continue
		}
		if tapsSeen == 0 {
			windingPhases[i] = geo.NewPhaseSet(geo.PhaseS1, geo.PhaseN)
		} else {
			windingPhases[i] = geo.NewPhaseSet(geo.PhaseN, geo.PhaseS2)
		}
		tapsSeen++
	}

	return Transformer{Name: e.Name, Buses: mappedBuses, WindingPhases: windingPhases, Equipment: eq}, nil
}
