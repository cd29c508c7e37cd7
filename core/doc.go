// Package core defines the attributed, undirected distribution graph at
// the heart of the synthesis pipeline: Node, Edge, and Graph, plus the
// directed DFS tree rooted at the graph's voltage-source node.
//
// Node and Edge are realized as two typed payload tables keyed by name
// (not a generic attribute bag): Graph never exposes its internal maps
// directly, only ordered, read-only accessors. This mirrors the teacher
// package this one is adapted from (katalvlaran/lvlath/core), generalized
// from a generic Vertex/Edge pair to the spec's domain-specific Node/Edge
// shapes, and simplified to single-threaded use per the pipeline's
// synchronous execution model: there is exactly one writer and it never
// overlaps with a reader, so the mutexes the teacher carries for
// concurrent callers are dropped here.
//
// A Graph holds at most one node carrying the VoltageSource asset; that
// node's name is tracked as Graph.VsourceNode and is the required root of
// GetDFSTree.
package core
