package voltage

import (
	"github.com/NREL-Distribution-Suites/shift/core"
	"github.com/NREL-Distribution-Suites/shift/geo"
	"github.com/NREL-Distribution-Suites/shift/shiferr"
)

// Mapper is the immutable result of transformer voltage propagation: a
// line-to-ground Voltage per node touched by some transformer's
// up-/down-sweep.
type Mapper struct {
	NodeVoltages map[string]geo.Voltage
}

// Compute builds a Mapper: validates configs cover every transformer
// edge, then for each transformer pushes max(config.Voltages) onto the
// ancestors of its LT endpoint (which include the HT endpoint itself)
// and min(config.Voltages) onto the descendants of its HT endpoint
// (which include the LT endpoint itself), keeping the more extreme
// value whenever two transformers' sweeps overlap a node.
func Compute(g *core.Graph, configs []TransformerVoltageConfig) (*Mapper, error) {
	tree, err := g.GetDFSTree()
	if err != nil {
		return nil, err
	}

	byName := make(map[string]TransformerVoltageConfig, len(configs))
	for _, c := range configs {
		byName[c.Name] = c
	}

	xfmrEdges := g.GetEdges(func(e core.Edge) bool { return e.Kind == core.Transformer })
	nodeVoltages := make(map[string]geo.Voltage)

	for _, e := range xfmrEdges {
		c, ok := byName[e.Name]
		if !ok || len(c.Voltages) == 0 {
			return nil, shiferr.WithEntity(shiferr.ErrMissingVoltageMapping, e.Name)
		}

		ht, lt, err := identifyHeadTail(tree, e)
		if err != nil {
			return nil, err
		}

		htVoltage := maxVoltage(c.Voltages)
		ltVoltage := minVoltage(c.Voltages)

		for _, n := range tree.Ancestors(lt) {
			if existing, ok := nodeVoltages[n]; ok {
				if htVoltage > existing {
					nodeVoltages[n] = htVoltage
				}
			} else {
				nodeVoltages[n] = htVoltage
			}
		}

		for _, n := range tree.Descendants(ht) {
			if existing, ok := nodeVoltages[n]; ok {
				if ltVoltage < existing {
					nodeVoltages[n] = ltVoltage
				}
			} else {
				nodeVoltages[n] = ltVoltage
			}
		}
	}

	return &Mapper{NodeVoltages: nodeVoltages}, nil
}

// identifyHeadTail returns (ht, lt) for transformer edge e: the HT
// endpoint is the one whose DFS-tree successor set contains the other,
// matching the phase mapper's head/tail rule.
func identifyHeadTail(tree *core.DFSTree, e core.Edge) (ht, lt string, err error) {
	for _, child := range tree.Successors(e.From) {
		if child == e.To {
			return e.From, e.To, nil
		}
	}
	for _, child := range tree.Successors(e.To) {
		if child == e.From {
			return e.To, e.From, nil
		}
	}

	return "", "", shiferr.WithEntity(shiferr.ErrMissingVoltageMapping, e.Name)
}
