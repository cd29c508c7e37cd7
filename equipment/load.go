package equipment

import (
	"math"

	"github.com/NREL-Distribution-Suites/shift/core"
	"github.com/NREL-Distribution-Suites/shift/geo"
)

// PhaseLoad is one phase's ZIP (constant-impedance/current/power) load
// model: the z/i/p fractions must each sum to 1 across the three terms
// for a physically meaningful load, but that is the caller's concern,
// not this package's.
type PhaseLoad struct {
	ZReal, IReal, PReal float64
	ZImag, IImag, PImag float64
	RealPower           geo.ActivePower
	ReactivePower       geo.ReactivePower
}

// LoadEquipment is the per-node ZIP load model for every phase a Load
// asset is served on.
type LoadEquipment struct {
	Name       string
	PhaseLoads []PhaseLoad
}

// apparentPower sums the ZIP formula over every phase load, per spec
// §4.6: S_phase = sqrt((z_real+i_real+p_real)*P^2 + (z_imag+i_imag+p_imag)*Q^2).
func (e LoadEquipment) apparentPower() geo.ApparentPower {
	var total float64
	for _, pl := range e.PhaseLoads {
		p := pl.RealPower.Watts()
		q := pl.ReactivePower.VAR()
		total += math.Sqrt((pl.ZReal+pl.IReal+pl.PReal)*p*p + (pl.ZImag+pl.IImag+pl.PImag)*q*q)
	}

	return geo.VA(total)
}

// servedLoad sums the apparent power of every Load-bearing node in
// descendants(parent), where parent is whichever of e.From/e.To the DFS
// tree identifies as the head of e.
func servedLoad(g *core.Graph, tree *core.DFSTree, e core.Edge, loads map[string]LoadEquipment) geo.ApparentPower {
	parent := e.From
	isChild := false
	for _, c := range tree.Successors(e.From) {
		if c == e.To {
			isChild = true
			break
		}
	}
	if !isChild {
		parent = e.To
	}

	var total geo.ApparentPower
	for _, n := range tree.Descendants(parent) {
		node, err := g.GetNode(n)
		if err != nil || !node.HasAsset(geo.Load) {
			continue
		}
		if eq, ok := loads[n]; ok {
			total += eq.apparentPower()
		}
	}

	return total
}
