package equipment

import "iter"

// MemCatalogue is a slice-backed Catalogue, the in-process stand-in for
// whatever persistent catalogue store a caller plugs in (database,
// flat file, remote service). Predicate filtering happens lazily as
// the returned iter.Seq is ranged over.
type MemCatalogue struct {
	Transformers      []TransformerEquipment
	MatrixBranches    []MatrixImpedanceBranchEquipment
	SequenceBranches  []SequenceImpedanceBranchEquipment
	GeometryBranches  []GeometryBranchEquipment
	ProtectionDevices []ProtectionDeviceEquipment
}

func (c *MemCatalogue) IterTransformers(predicate func(TransformerEquipment) bool) iter.Seq[TransformerEquipment] {
	return func(yield func(TransformerEquipment) bool) {
		for _, t := range c.Transformers {
			if predicate != nil && !predicate(t) {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

func (c *MemCatalogue) IterMatrixImpedanceBranches(predicate func(MatrixImpedanceBranchEquipment) bool) iter.Seq[MatrixImpedanceBranchEquipment] {
	return func(yield func(MatrixImpedanceBranchEquipment) bool) {
		for _, b := range c.MatrixBranches {
			if predicate != nil && !predicate(b) {
				continue
			}
			if !yield(b) {
				return
			}
		}
	}
}

func (c *MemCatalogue) IterSequenceImpedanceBranches(predicate func(SequenceImpedanceBranchEquipment) bool) iter.Seq[SequenceImpedanceBranchEquipment] {
	return func(yield func(SequenceImpedanceBranchEquipment) bool) {
		for _, b := range c.SequenceBranches {
			if predicate != nil && !predicate(b) {
				continue
			}
			if !yield(b) {
				return
			}
		}
	}
}

func (c *MemCatalogue) IterGeometryBranches(predicate func(GeometryBranchEquipment) bool) iter.Seq[GeometryBranchEquipment] {
	return func(yield func(GeometryBranchEquipment) bool) {
		for _, b := range c.GeometryBranches {
			if predicate != nil && !predicate(b) {
				continue
			}
			if !yield(b) {
				return
			}
		}
	}
}

func (c *MemCatalogue) IterProtectionDevices(predicate func(ProtectionDeviceEquipment) bool) iter.Seq[ProtectionDeviceEquipment] {
	return func(yield func(ProtectionDeviceEquipment) bool) {
		for _, d := range c.ProtectionDevices {
			if predicate != nil && !predicate(d) {
				continue
			}
			if !yield(d) {
				return
			}
		}
	}
}
