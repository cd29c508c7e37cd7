package spatial

import "errors"

// Sentinel errors for the spatial package. Callers that need the richer
// shiferr.Kind taxonomy wrap these at their own package boundary
// (e.g. phase wraps Steiner and WardCluster failures into
// shiferr.ErrAllocationMapping); topology returns them unchanged.
var (
	// ErrEmptyPoints indicates an operation received zero input points.
	ErrEmptyPoints = errors.New("spatial: input point set must be non-empty")
	// ErrTooFewClusters indicates k <= 0 or k greater than the point count.
	ErrTooFewClusters = errors.New("spatial: cluster count must be in [1, len(points)]")
	// ErrNoTerminals indicates a Steiner tree was requested with no terminal nodes.
	ErrNoTerminals = errors.New("spatial: steiner tree requires at least one terminal")
	// ErrUnreachableTerminal indicates a requested terminal is not connected
	// to the rest of the terminal set in the source graph.
	ErrUnreachableTerminal = errors.New("spatial: terminal is unreachable from the other terminals")
	// ErrInvalidGridDimensions indicates a non-positive row/column count for Mesh.
	ErrInvalidGridDimensions = errors.New("spatial: grid rows and columns must be positive")
)
