// Package phase assigns A/B/C/N/S1/S2 phase labels to every node of a
// feeder graph: transformer head/tail phases are allocated by one of
// three policies (greedy, capacity-weighted k-means, Ward-linkage
// agglomerative), then propagated upward toward the voltage source and
// downward over each transformer's DFS descendants.
//
// A Mapper is built once via Compute and treated as an immutable
// snapshot from then on, per the spec's "lazily computed, cached
// thereafter" data-model note re-expressed as an explicit one-shot build
// step.
package phase
