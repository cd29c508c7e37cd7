package system

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/NREL-Distribution-Suites/shift/geo"
	"github.com/NREL-Distribution-Suites/shift/shiferr"
)

// Validate runs every consistency check spec §8 properties 9 and 10
// name, aggregating every violation found rather than stopping at the
// first, unlike Build's fail-fast error return.
func Validate(sys *System) error {
	var result *multierror.Error

	for _, b := range sys.Branches {
		if _, ok := sys.Buses[b.Buses[0]]; !ok {
			result = multierror.Append(result, fmt.Errorf("branch %s: %w", b.Name, shiferr.WithEntity(shiferr.ErrNodeDoesNotExist, b.Buses[0])))
		}
		if _, ok := sys.Buses[b.Buses[1]]; !ok {
			result = multierror.Append(result, fmt.Errorf("branch %s: %w", b.Name, shiferr.WithEntity(shiferr.ErrNodeDoesNotExist, b.Buses[1])))
		}
		if check, ok := EquipmentKindTable[b.Kind]; ok && !check(b.Equipment) {
			result = multierror.Append(result, fmt.Errorf("branch %s: %w", b.Name, shiferr.WithEntity(shiferr.ErrWrongEquipmentAssigned, b.Name)))
		}
	}

	for _, tr := range sys.Transformers {
		seen := make(map[string]int, len(tr.Buses))
		for _, b := range tr.Buses {
			if _, ok := sys.Buses[b]; !ok {
				result = multierror.Append(result, fmt.Errorf("transformer %s: %w", tr.Name, shiferr.WithEntity(shiferr.ErrNodeDoesNotExist, b)))
			}
			seen[b]++
		}
		if len(tr.WindingPhases) != len(tr.Buses) {
			result = multierror.Append(result, fmt.Errorf("transformer %s: %w", tr.Name, shiferr.WithEntity(shiferr.ErrWindingMismatch, tr.Name)))
		}
		distinctVoltages := make(map[geo.Voltage]struct{}, len(tr.Equipment.Windings))
		for _, w := range tr.Equipment.Windings {
			distinctVoltages[effectiveWindingVoltage(w)] = struct{}{}
		}
		if len(seen) != len(distinctVoltages) {
			result = multierror.Append(result, fmt.Errorf("transformer %s: %w", tr.Name, shiferr.WithEntity(shiferr.ErrWindingMismatch, tr.Name)))
		}
	}

	for _, a := range sys.Assets {
		if _, ok := sys.Buses[a.Bus]; !ok {
			result = multierror.Append(result, fmt.Errorf("asset %s: %w", a.Name, shiferr.WithEntity(shiferr.ErrNodeDoesNotExist, a.Bus)))
		}
	}

	return result.ErrorOrNil()
}
