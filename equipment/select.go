package equipment

import (
	"math"
	"sort"

	"github.com/NREL-Distribution-Suites/shift/core"
	"github.com/NREL-Distribution-Suites/shift/geo"
	"github.com/NREL-Distribution-Suites/shift/shiferr"
)

// selectTransformer implements spec §4.6's transformer selection rule:
// among catalogue entries whose minimum winding rated power exceeds
// capacity, whose primary winding phase count matches numPhase (3 for
// three-phase, 1 otherwise), and whose winding voltages rank-pair within
// 15% of the supplied endpoint voltages (sorted descending), choose the
// one with the smallest primary rated power.
func selectTransformer(cat Catalogue, name string, capacity geo.ApparentPower, numPhase int, voltages []geo.Voltage) (TransformerEquipment, error) {
	wantPrimaryPhases := 1
	if numPhase == 3 {
		wantPrimaryPhases = 3
	}

	sortedVoltages := append([]geo.Voltage(nil), voltages...)
	sort.Slice(sortedVoltages, func(i, j int) bool { return sortedVoltages[i] > sortedVoltages[j] })

	predicate := func(t TransformerEquipment) bool {
		if len(t.Windings) == 0 {
			return false
		}
		minRated := t.Windings[0].RatedPower
		for _, w := range t.Windings[1:] {
			if w.RatedPower < minRated {
				minRated = w.RatedPower
			}
		}
		if minRated <= capacity {
			return false
		}
		if t.Windings[0].NumPhases != wantPrimaryPhases {
			return false
		}

		wdgVoltages := make([]geo.Voltage, len(t.Windings))
		for i, w := range t.Windings {
			wdgVoltages[i] = w.RatedVoltage
		}
		sort.Slice(wdgVoltages, func(i, j int) bool { return wdgVoltages[i] > wdgVoltages[j] })
		if len(wdgVoltages) > len(sortedVoltages) {
			wdgVoltages = wdgVoltages[:len(sortedVoltages)]
		}
		if len(wdgVoltages) < len(sortedVoltages) {
			return false
		}
		for i, v1 := range sortedVoltages {
			v2 := wdgVoltages[i]
			if v2 < geo.Voltage(0.85*v1.Volts()) || v2 >= geo.Voltage(1.15*v1.Volts()) {
				return false
			}
		}

		return true
	}

	var best TransformerEquipment
	found := false
	for t := range cat.IterTransformers(predicate) {
		if !found || t.Windings[0].RatedPower < best.Windings[0].RatedPower {
			best = t
			found = true
		}
	}
	if !found {
		return TransformerEquipment{}, shiferr.WithEntity(shiferr.ErrEquipmentNotFound, name)
	}

	return best, nil
}

// selectBranchEquipment implements spec §4.6's per-kind branch equipment
// filters, choosing the smallest-ampacity survivor.
func selectBranchEquipment(cat Catalogue, name string, kind core.BranchEquipmentKind, current geo.Current, numPhase int) (any, error) {
	switch kind {
	case core.MatrixImpedanceBranch:
		predicate := func(b MatrixImpedanceBranchEquipment) bool {
			return b.Ampacity > current && len(b.RMatrix) == numPhase && len(b.XMatrix) == numPhase
		}
		var best MatrixImpedanceBranchEquipment
		found := false
		for b := range cat.IterMatrixImpedanceBranches(predicate) {
			if !found || b.Ampacity < best.Ampacity {
				best = b
				found = true
			}
		}
		if !found {
			return nil, shiferr.WithEntity(shiferr.ErrEquipmentNotFound, name)
		}

		return best, nil

	case core.SequenceImpedanceBranch:
		predicate := func(b SequenceImpedanceBranchEquipment) bool {
			return b.Ampacity > current && numPhase >= 3
		}
		var best SequenceImpedanceBranchEquipment
		found := false
		for b := range cat.IterSequenceImpedanceBranches(predicate) {
			if !found || b.Ampacity < best.Ampacity {
				best = b
				found = true
			}
		}
		if !found {
			return nil, shiferr.WithEntity(shiferr.ErrEquipmentNotFound, name)
		}

		return best, nil

	case core.GeometryBranch:
		predicate := func(b GeometryBranchEquipment) bool {
			maxAmp := geo.Current(0)
			for _, c := range b.Conductors {
				if c.Ampacity > maxAmp {
					maxAmp = c.Ampacity
				}
			}

			return maxAmp > current && len(b.Conductors) >= numPhase
		}
		var best GeometryBranchEquipment
		found := false
		bestMaxAmp := geo.Current(0)
		for b := range cat.IterGeometryBranches(predicate) {
			maxAmp := geo.Current(0)
			for _, c := range b.Conductors {
				if c.Ampacity > maxAmp {
					maxAmp = c.Ampacity
				}
			}
			if !found || maxAmp < bestMaxAmp {
				best = b
				bestMaxAmp = maxAmp
				found = true
			}
		}
		if !found {
			return nil, shiferr.WithEntity(shiferr.ErrEquipmentNotFound, name)
		}

		return best, nil

	case core.MatrixImpedanceFuse, core.MatrixImpedanceRecloser, core.MatrixImpedanceSwitch:
		device := deviceKindFor(kind)
		predicate := func(d ProtectionDeviceEquipment) bool {
			return d.Device == device && d.Ampacity > current && len(d.RMatrix) == numPhase && len(d.XMatrix) == numPhase
		}
		var best ProtectionDeviceEquipment
		found := false
		for d := range cat.IterProtectionDevices(predicate) {
			if !found || d.Ampacity < best.Ampacity {
				best = d
				found = true
			}
		}
		if !found {
			return nil, shiferr.WithEntity(shiferr.ErrEquipmentNotFound, name)
		}

		return best, nil

	default:
		return nil, shiferr.WithEntity(shiferr.ErrUnsupportedBranchEquipmentType, kind.String())
	}
}

func deviceKindFor(kind core.BranchEquipmentKind) DeviceKind {
	switch kind {
	case core.MatrixImpedanceRecloser:
		return Recloser
	case core.MatrixImpedanceSwitch:
		return Switch
	default:
		return Fuse
	}
}

// branchCurrent computes current from kv, served load, and the
// three-way 1-phase/split-phase/3-phase formula of spec §4.6.
func branchCurrent(kv geo.Voltage, served geo.ApparentPower, numPhase int, isSplitPhase bool) geo.Current {
	kva := served.VA()
	v := kv.Volts()
	switch {
	case numPhase == 1:
		return geo.Amps(kva / v)
	case isSplitPhase:
		return geo.Amps(kva / (2 * v))
	default:
		return geo.Amps(kva / (math.Sqrt(3) * v))
	}
}
