package equipment

import (
	"iter"

	"github.com/NREL-Distribution-Suites/shift/geo"
)

// WindingConnection is the electrical layout of one transformer winding,
// which determines how its rated voltage translates into the bus
// voltage a system builder maps it to.
type WindingConnection int

const (
	LineToGround WindingConnection = iota
	LineToLine
	CenterTappedSecondary
)

// Winding is one rated winding of a TransformerEquipment.
type Winding struct {
	RatedPower   geo.ApparentPower
	RatedVoltage geo.Voltage
	NumPhases    int
	Connection   WindingConnection
}

// TransformerEquipment is a catalogue transformer, windings ordered
// primary-first.
type TransformerEquipment struct {
	Name     string
	Windings []Winding
}

// Conductor is one conductor of a GeometryBranchEquipment.
type Conductor struct {
	Ampacity geo.Current
}

// MatrixImpedanceBranchEquipment carries a full per-phase R/X impedance
// matrix; its dimension (len(RMatrix)) is the equipment's phase count.
type MatrixImpedanceBranchEquipment struct {
	Name     string
	Ampacity geo.Current
	RMatrix  [][]float64
	XMatrix  [][]float64
}

// SequenceImpedanceBranchEquipment models a line by positive/zero
// sequence impedance; it is only a candidate for three-phase-or-wider
// branches, per spec.
type SequenceImpedanceBranchEquipment struct {
	Name     string
	Ampacity geo.Current
	R1, X1   float64
	R0, X0   float64
}

// GeometryBranchEquipment models a line by explicit conductor geometry.
type GeometryBranchEquipment struct {
	Name       string
	Conductors []Conductor
}

// DeviceKind distinguishes the three supplemented protection-device
// subtypes that share the matrix-impedance electrical model.
type DeviceKind int

const (
	Fuse DeviceKind = iota
	Recloser
	Switch
)

// ProtectionDeviceEquipment is a matrix-impedance branch specialized as
// a protection device (fuse, recloser, or switch).
type ProtectionDeviceEquipment struct {
	Name     string
	Ampacity geo.Current
	RMatrix  [][]float64
	XMatrix  [][]float64
	Device   DeviceKind
}

// Catalogue is the external collaborator exposing lazy, predicate-
// filtered iteration over each equipment family. Implementations may
// back this with an in-memory slice, a database query, or a file on
// disk; the mapper only ever asks for matches, never enumerates.
type Catalogue interface {
	IterTransformers(predicate func(TransformerEquipment) bool) iter.Seq[TransformerEquipment]
	IterMatrixImpedanceBranches(predicate func(MatrixImpedanceBranchEquipment) bool) iter.Seq[MatrixImpedanceBranchEquipment]
	IterSequenceImpedanceBranches(predicate func(SequenceImpedanceBranchEquipment) bool) iter.Seq[SequenceImpedanceBranchEquipment]
	IterGeometryBranches(predicate func(GeometryBranchEquipment) bool) iter.Seq[GeometryBranchEquipment]
	IterProtectionDevices(predicate func(ProtectionDeviceEquipment) bool) iter.Seq[ProtectionDeviceEquipment]
}
