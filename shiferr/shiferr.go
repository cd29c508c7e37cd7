// Package shiferr defines the single error taxonomy used across the feeder
// synthesis pipeline (core, topology, phase, voltage, equipment, system).
// Errors raised by those packages are the sentinel errors declared here,
// optionally wrapped with the offending entity via WithEntity or a nested
// cause via Wrap. Package spatial declares its own sentinels
// (spatial/errors.go), which topology returns unchanged.
//
// Callers should use errors.Is against the sentinels below to branch on
// error class, and errors.As with a *shiferr.Error target (or As below)
// to recover the Kind, Code and Entity fields for logging or display.
package shiferr

import (
	"errors"
	"fmt"
)

// Kind groups sentinels into the five families named by the spec.
type Kind int

const (
	KindGraph Kind = iota
	KindInput
	KindMapper
	KindEquipment
	KindSystemBuild
)

func (k Kind) String() string {
	switch k {
	case KindGraph:
		return "Graph"
	case KindInput:
		return "Input"
	case KindMapper:
		return "Mapper"
	case KindEquipment:
		return "Equipment"
	case KindSystemBuild:
		return "SystemBuild"
	default:
		return "Unknown"
	}
}

// Error is the concrete type behind every sentinel declared in this
// package. Kind/Code are immutable once a sentinel is constructed; Entity
// and Err are filled in per call site via WithEntity/Wrap, which return a
// copy so the package-level sentinel itself is never mutated.
type Error struct {
	Kind   Kind
	Code   string
	Entity string
	Err    error
}

func (e *Error) Error() string {
	if e.Entity == "" && e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Code)
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Code, e.Entity)
	}
	if e.Entity == "" {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Code, e.Err)
	}

	return fmt.Sprintf("%s: %s: %s: %v", e.Kind, e.Code, e.Entity, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is match two *Error values by Kind+Code alone, ignoring
// Entity and the wrapped cause, so call sites can do
// errors.Is(err, shiferr.ErrNodeAlreadyExists) after WithEntity/Wrap.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e.Kind == t.Kind && e.Code == t.Code
}

func newErr(k Kind, code string) *Error {
	return &Error{Kind: k, Code: code}
}

// WithEntity returns a copy of sentinel naming the offending node, edge,
// transformer, or voltage. The package-level sentinel is never mutated.
func WithEntity(sentinel *Error, entity string) *Error {
	cp := *sentinel
	cp.Entity = entity

	return &cp
}

// Wrap returns a copy of sentinel carrying cause as its wrapped error,
// naming entity as the offending entity. Either may be empty/nil.
func Wrap(sentinel *Error, entity string, cause error) *Error {
	cp := *sentinel
	cp.Entity = entity
	cp.Err = cause

	return &cp
}

// Graph family.
var (
	ErrNodeAlreadyExists    = newErr(KindGraph, "NodeAlreadyExists")
	ErrNodeDoesNotExist     = newErr(KindGraph, "NodeDoesNotExist")
	ErrEdgeAlreadyExists    = newErr(KindGraph, "EdgeAlreadyExists")
	ErrEdgeDoesNotExist     = newErr(KindGraph, "EdgeDoesNotExist")
	ErrVsourceAlreadyExists = newErr(KindGraph, "VsourceAlreadyExists")
	ErrVsourceDoesNotExist  = newErr(KindGraph, "VsourceDoesNotExist")
	ErrEmptyGraph           = newErr(KindGraph, "EmptyGraph")
	ErrInvalidNodeData      = newErr(KindGraph, "InvalidNodeData")
	ErrInvalidEdgeData      = newErr(KindGraph, "InvalidEdgeData")
)

// Input family.
var (
	ErrInvalidInput      = newErr(KindInput, "InvalidInput")
	ErrInvalidAssetPhase = newErr(KindInput, "InvalidAssetPhase")
)

// Mapper family.
var (
	ErrAllocationMapping              = newErr(KindMapper, "AllocationMapping")
	ErrInvalidPhaseAllocationMethod   = newErr(KindMapper, "InvalidPhaseAllocationMethod")
	ErrMissingTransformerMapping      = newErr(KindMapper, "MissingTransformerMapping")
	ErrUnsupportedTransformerType     = newErr(KindMapper, "UnsupportedTransformerType")
	ErrMissingVoltageMapping          = newErr(KindMapper, "MissingVoltageMapping")
	ErrUnsupportedBranchEquipmentType = newErr(KindMapper, "UnsupportedBranchEquipmentType")
)

// Equipment family.
var (
	ErrEquipmentNotFound      = newErr(KindEquipment, "EquipmentNotFound")
	ErrWrongEquipmentAssigned = newErr(KindEquipment, "WrongEquipmentAssigned")
)

// SystemBuild family.
var (
	ErrUnsupportedEdgeType      = newErr(KindSystemBuild, "UnsupportedEdgeType")
	ErrWindingMismatch          = newErr(KindSystemBuild, "WindingMismatch")
	ErrInvalidSplitPhaseWinding = newErr(KindSystemBuild, "InvalidSplitPhaseWinding")
)

// As is a thin convenience wrapper around errors.As for this package's
// Error type, returning ok=false when err is not (or does not wrap) one.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)

	return e, ok
}
