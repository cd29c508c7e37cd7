package phase

import (
	"github.com/NREL-Distribution-Suites/shift/geo"
)

// TransformerType is the closed set of transformer primary/secondary
// winding arrangements the phase mapper understands.
type TransformerType int

const (
	ThreePhase TransformerType = iota
	SinglePhase
	SinglePhasePrimaryDelta
	SplitPhase
	SplitPhasePrimaryDelta
)

func (t TransformerType) String() string {
	switch t {
	case ThreePhase:
		return "ThreePhase"
	case SinglePhase:
		return "SinglePhase"
	case SinglePhasePrimaryDelta:
		return "SinglePhasePrimaryDelta"
	case SplitPhase:
		return "SplitPhase"
	case SplitPhasePrimaryDelta:
		return "SplitPhasePrimaryDelta"
	default:
		return "Unknown"
	}
}

// isSplitPhase reports whether t's tail/descendants use the S1/N/S2
// split-phase convention instead of a three-phase subset.
func (t TransformerType) isSplitPhase() bool {
	return t == SplitPhase || t == SplitPhasePrimaryDelta
}

// isPrimaryDelta reports whether t's HT tuples are two-phase
// ({A,B},{B,C},{C,A}) instead of single-phase ({A},{B},{C}).
func (t TransformerType) isPrimaryDelta() bool {
	return t == SinglePhasePrimaryDelta || t == SplitPhasePrimaryDelta
}

// TransformerPhaseConfig names one transformer edge's type and rated
// capacity, inputs to phase allocation.
type TransformerPhaseConfig struct {
	Name     string
	Type     TransformerType
	Capacity geo.ApparentPower
	Location geo.Point
}

// AllocationMethod selects how single-/split-phase transformers are
// distributed across HT phase tuples.
type AllocationMethod int

const (
	Greedy AllocationMethod = iota
	KMeans
	Agglomerative
)
