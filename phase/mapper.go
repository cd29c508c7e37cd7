package phase

import (
	"github.com/NREL-Distribution-Suites/shift/core"
	"github.com/NREL-Distribution-Suites/shift/geo"
	"github.com/NREL-Distribution-Suites/shift/shiferr"
)

// Mapper is the immutable result of phase allocation and propagation
// over a feeder graph: a phase set per node, per-transformer HT phases,
// and per-(node, asset kind) phase sets.
type Mapper struct {
	NodePhases        map[string]geo.PhaseSet
	TransformerPhases map[string]geo.PhaseSet
	AssetPhases       map[string]map[geo.AssetKind]geo.PhaseSet
}

// Compute builds a Mapper in one pass: validates configs cover every
// transformer edge, identifies head/tail per transformer, allocates
// single-/split-phase transformers across HT tuples via method,
// propagates phases upward toward the voltage source and downward over
// DFS descendants, then derives and validates asset phases.
func Compute(g *core.Graph, configs []TransformerPhaseConfig, method AllocationMethod) (*Mapper, error) {
	tree, err := g.GetDFSTree()
	if err != nil {
		return nil, err
	}

	byName := make(map[string]TransformerPhaseConfig, len(configs))
	for _, c := range configs {
		byName[c.Name] = c
	}

	xfmrEdges := g.GetEdges(func(e core.Edge) bool { return e.Kind == core.Transformer })
	heads := make(map[string]string, len(xfmrEdges)) // config name -> head node
	tails := make(map[string]string, len(xfmrEdges)) // config name -> tail node
	for _, e := range xfmrEdges {
		if _, ok := byName[e.Name]; !ok {
			return nil, shiferr.WithEntity(shiferr.ErrMissingTransformerMapping, e.Name)
		}
		head, tail, err := identifyHeadTail(tree, e)
		if err != nil {
			return nil, err
		}
		heads[e.Name] = head
		tails[e.Name] = tail
	}

	nodePhases := make(map[string]geo.PhaseSet)
	transformerPhases := make(map[string]geo.PhaseSet, len(xfmrEdges))

	byType := make(map[TransformerType][]TransformerPhaseConfig)
	for _, e := range xfmrEdges {
		c := byName[e.Name]
		byType[c.Type] = append(byType[c.Type], c)
	}

	for t, group := range byType {
		switch t {
		case ThreePhase:
			for _, c := range group {
				phases := geo.ABC()
				nodePhases[heads[c.Name]] = nodePhases[heads[c.Name]].Union(phases)
				nodePhases[tails[c.Name]] = nodePhases[tails[c.Name]].Union(phases)
				transformerPhases[c.Name] = phases
			}
		case SinglePhase, SplitPhase, SinglePhasePrimaryDelta, SplitPhasePrimaryDelta:
			tuples := htTuples(t)
			assignment, err := allocate(method, group, tuples, g, heads)
			if err != nil {
				return nil, err
			}
			if len(assignment) != len(group) {
				return nil, shiferr.WithEntity(shiferr.ErrAllocationMapping, t.String())
			}
			for _, c := range group {
				idx, ok := assignment[c.Name]
				if !ok || idx < 0 || idx >= len(tuples) {
					return nil, shiferr.WithEntity(shiferr.ErrAllocationMapping, c.Name)
				}
				tuple := tuples[idx]
				nodePhases[heads[c.Name]] = nodePhases[heads[c.Name]].Union(tuple)
				transformerPhases[c.Name] = tuple

				tailPhases := tuple
				if t.isSplitPhase() {
					tailPhases = geo.NewPhaseSet(geo.PhaseS1, geo.PhaseN, geo.PhaseS2)
				}
				nodePhases[tails[c.Name]] = nodePhases[tails[c.Name]].Union(tailPhases)
			}
		default:
			return nil, shiferr.WithEntity(shiferr.ErrUnsupportedTransformerType, t.String())
		}
	}

	for _, e := range xfmrEdges {
		c := byName[e.Name]
		propagateUpward(tree, nodePhases, heads[e.Name])
		propagateDownward(tree, nodePhases, heads[e.Name], tails[e.Name], c.Type.isSplitPhase())
	}

	// Every asset kind on a node inherits that node's full phase set; a
	// node left with no phases (unreachable from any transformer) cannot
	// host an asset.
	assetPhases := make(map[string]map[geo.AssetKind]geo.PhaseSet)
	for _, n := range g.GetNodes(nil) {
		kinds := n.AssetKinds()
		if len(kinds) == 0 {
			continue
		}
		phases := nodePhases[n.Name]
		if phases.Len() == 0 {
			return nil, shiferr.WithEntity(shiferr.ErrInvalidAssetPhase, n.Name)
		}
		m := make(map[geo.AssetKind]geo.PhaseSet, len(kinds))
		for _, k := range kinds {
			m[k] = phases
		}
		assetPhases[n.Name] = m
	}

	return &Mapper{NodePhases: nodePhases, TransformerPhases: transformerPhases, AssetPhases: assetPhases}, nil
}

// htTuples returns the HT phase tuples single-/split-phase transformers
// of type t are allocated across.
func htTuples(t TransformerType) []geo.PhaseSet {
	if t.isPrimaryDelta() {
		return []geo.PhaseSet{
			geo.NewPhaseSet(geo.PhaseA, geo.PhaseB),
			geo.NewPhaseSet(geo.PhaseB, geo.PhaseC),
			geo.NewPhaseSet(geo.PhaseC, geo.PhaseA),
		}
	}

	return []geo.PhaseSet{
		geo.NewPhaseSet(geo.PhaseA),
		geo.NewPhaseSet(geo.PhaseB),
		geo.NewPhaseSet(geo.PhaseC),
	}
}

// identifyHeadTail returns (head, tail) for transformer edge e: the head
// is the endpoint whose DFS-tree successor set (depth+1) contains the
// other endpoint.
func identifyHeadTail(tree *core.DFSTree, e core.Edge) (head, tail string, err error) {
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

	return "", "", shiferr.WithEntity(shiferr.ErrMissingTransformerMapping, e.Name)
}

// propagateUpward walks the path from head to the voltage source,
// unioning head's phases into every node on the path, promoting any
// two-element {A,B,C} subset to the full set.
func propagateUpward(tree *core.DFSTree, nodePhases map[string]geo.PhaseSet, head string) {
	headPhases := nodePhases[head]
	for _, n := range tree.Ancestors(head) {
		merged := nodePhases[n].Union(headPhases)
		if isTwoOfABC(merged) {
			merged = geo.ABC()
		}
		nodePhases[n] = merged
	}
}

// propagateDownward assigns tail's phases (or {S1,S2} for split-phase
// transformers) to every descendant of head that has no phase set yet.
func propagateDownward(tree *core.DFSTree, nodePhases map[string]geo.PhaseSet, head, tail string, split bool) {
	inherited := nodePhases[tail]
	if split {
		inherited = geo.NewPhaseSet(geo.PhaseS1, geo.PhaseS2)
	}
	for _, n := range tree.Descendants(head) {
		if nodePhases[n].Len() == 0 {
			nodePhases[n] = inherited
		}
	}
}

func isTwoOfABC(s geo.PhaseSet) bool {
	if s.Len() != 2 {
		return false
	}

	return s.Subset(geo.ABC())
}
