package system

import (
	"github.com/NREL-Distribution-Suites/shift/core"
	"github.com/NREL-Distribution-Suites/shift/equipment"
	"github.com/NREL-Distribution-Suites/shift/geo"
)

// VoltageType is the reference frame a Bus's RatedVoltage is expressed
// in. The pipeline only ever produces line-to-ground bus voltages
// today; the enum exists so a future winding-referenced bus type has
// somewhere to go without widening Bus's fields.
type VoltageType int

const LineToGround VoltageType = iota

func (t VoltageType) String() string {
	switch t {
	case LineToGround:
		return "LineToGround"
	default:
		return "Unknown"
	}
}

// Bus is one assembled node: its phase set, location, and rated
// line-to-ground voltage.
type Bus struct {
	Name         string       `json:"name"`
	Phases       geo.PhaseSet `json:"phases"`
	Coordinate   geo.Point    `json:"coordinate"`
	RatedVoltage geo.Voltage  `json:"rated_voltage"`
	VoltageType  VoltageType  `json:"voltage_type"`
}

// Asset is one assembled (bus, asset kind) pair.
type Asset struct {
	Name      string        `json:"name"`
	Bus       string        `json:"bus"`
	Kind      geo.AssetKind `json:"kind"`
	Phases    geo.PhaseSet  `json:"phases"`
	Equipment any           `json:"equipment,omitempty"`
}

// Branch is one assembled Branch-kind edge.
type Branch struct {
	Name      string                   `json:"name"`
	Kind      core.BranchEquipmentKind `json:"kind"`
	Buses     [2]string                `json:"buses"`
	Phases    geo.PhaseSet             `json:"phases"`
	Length    geo.Distance             `json:"length"`
	Equipment any                      `json:"equipment"`
}

// Transformer is one assembled Transformer-kind edge: as many windings
// as equipment.Windings, each mapped to a bus and a winding phase set.
type Transformer struct {
	Name          string                         `json:"name"`
	Buses         []string                       `json:"buses"`
	WindingPhases []geo.PhaseSet                 `json:"winding_phases"`
	Equipment     equipment.TransformerEquipment `json:"equipment"`
}

// System is the complete assembled distribution system: every bus,
// branch, transformer, and asset produced from one graph.
type System struct {
	Name         string                 `json:"name"`
	Buses        map[string]Bus         `json:"buses"`
	Branches     map[string]Branch      `json:"branches"`
	Transformers map[string]Transformer `json:"transformers"`
	Assets       map[string]Asset       `json:"assets"`
}

// ComponentCounts summarizes a System for the JSON round-trip property:
// buses, branches, transformers, and assets broken out by kind.
type ComponentCounts struct {
	Buses          int
	Branches       int
	Transformers   int
	Loads          int
	Solar          int
	Capacitors     int
	VoltageSources int
}

// Counts tabulates s's component counts by kind.
func (s *System) Counts() ComponentCounts {
	c := ComponentCounts{Buses: len(s.Buses), Branches: len(s.Branches), Transformers: len(s.Transformers)}
	for _, a := range s.Assets {
		switch a.Kind {
		case geo.Load:
			c.Loads++
		case geo.Solar:
			c.Solar++
		case geo.Capacitor:
			c.Capacitors++
		case geo.VoltageSource:
			c.VoltageSources++
		}
	}

	return c
}

// EquipmentKindTable is the fixed equipment↔component consistency table
// of spec §4.7/§4.8: every BranchEquipmentKind maps to exactly one
// concrete equipment Go type.
var EquipmentKindTable = map[core.BranchEquipmentKind]func(any) bool{
	core.MatrixImpedanceBranch: func(e any) bool { _, ok := e.(equipment.MatrixImpedanceBranchEquipment); return ok },
	core.SequenceImpedanceBranch: func(e any) bool {
		_, ok := e.(equipment.SequenceImpedanceBranchEquipment)
		return ok
	},
	core.GeometryBranch: func(e any) bool { _, ok := e.(equipment.GeometryBranchEquipment); return ok },
	core.MatrixImpedanceFuse: func(e any) bool {
		d, ok := e.(equipment.ProtectionDeviceEquipment)
		return ok && d.Device == equipment.Fuse
	},
	core.MatrixImpedanceRecloser: func(e any) bool {
		d, ok := e.(equipment.ProtectionDeviceEquipment)
		return ok && d.Device == equipment.Recloser
	},
	core.MatrixImpedanceSwitch: func(e any) bool {
		d, ok := e.(equipment.ProtectionDeviceEquipment)
		return ok && d.Device == equipment.Switch
	},
}
