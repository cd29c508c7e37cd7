package equipment

import (
	"github.com/NREL-Distribution-Suites/shift/core"
	"github.com/NREL-Distribution-Suites/shift/geo"
	"github.com/NREL-Distribution-Suites/shift/phase"
	"github.com/NREL-Distribution-Suites/shift/voltage"
)

// Mapper is the immutable result of equipment selection: one equipment
// value per edge, plus a typed view restricted to transformer edges.
type Mapper struct {
	EdgeEquipment        map[string]any
	TransformerEquipment map[string]TransformerEquipment
}

// Compute aggregates served load per branch edge from downstream
// Load-bearing nodes, then selects catalogue equipment for every edge:
// transformers via selectTransformer, branches via selectBranchEquipment
// keyed on e.BranchKind. phases and voltages must already cover every
// node the graph's edges touch (ordering guarantee: phase and voltage
// mapping both precede equipment mapping).
func Compute(g *core.Graph, phases *phase.Mapper, voltages *voltage.Mapper, loads map[string]LoadEquipment, cat Catalogue) (*Mapper, error) {
	tree, err := g.GetDFSTree()
	if err != nil {
		return nil, err
	}

	edges := g.GetEdges(nil)
	edgeEquipment := make(map[string]any, len(edges))
	transformerEquipment := make(map[string]TransformerEquipment)

	for _, e := range edges {
		served := servedLoad(g, tree, e, loads)
		fromPhases := phases.NodePhases[e.From]
		toPhases := phases.NodePhases[e.To]
		numPhase := min(phaseCountExcludingNeutral(fromPhases), phaseCountExcludingNeutral(toPhases))

		if e.Kind == core.Transformer {
			eq, err := selectTransformer(cat, e.Name, served, numPhase, []geo.Voltage{voltages.NodeVoltages[e.From], voltages.NodeVoltages[e.To]})
			if err != nil {
				return nil, err
			}
			transformerEquipment[e.Name] = eq
			edgeEquipment[e.Name] = eq

			continue
		}

		parent := parentOf(tree, e)
		kv := voltages.NodeVoltages[parent]
		isSplitPhase := fromPhases.Has(geo.PhaseS1) || fromPhases.Has(geo.PhaseS2)
		current := branchCurrent(kv, served, numPhase, isSplitPhase)
		eq, err := selectBranchEquipment(cat, e.Name, e.BranchKind, current, numPhase)
		if err != nil {
			return nil, err
		}
		edgeEquipment[e.Name] = eq
	}

	return &Mapper{EdgeEquipment: edgeEquipment, TransformerEquipment: transformerEquipment}, nil
}

// parentOf returns whichever of e.From/e.To the DFS tree identifies as
// the head of e (the endpoint whose successor set contains the other).
func parentOf(tree *core.DFSTree, e core.Edge) string {
	for _, c := range tree.Successors(e.From) {
		if c == e.To {
			return e.From
		}
	}

	return e.To
}

func phaseCountExcludingNeutral(s geo.PhaseSet) int {
	n := s.Len()
	if s.Has(geo.PhaseN) {
		n--
	}

	return n
}
