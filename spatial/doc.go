// Package spatial provides the geometric and graph-theoretic primitives
// topology synthesis is built from: clustering (K-means, Ward linkage),
// nearest-neighbor search (a 2-D KD-tree), approximate Steiner trees,
// regular mesh construction, geodesic distance, and edge splitting.
//
// Every algorithm here except SplitEdges is deterministic given its
// inputs (and, where randomness is unavoidable, given an explicit seed):
// none reads the global math/rand source or wall-clock time. SplitEdges
// names each node it inserts with a random UUID, so those node names
// differ from run to run.
package spatial
