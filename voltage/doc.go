// Package voltage assigns a line-to-ground Voltage to every node touched
// by a transformer's up-/down-sweep: for each transformer edge, the
// maximum configured winding voltage is pushed onto the HT side and
// everything upstream of it, and the minimum is pushed onto every DFS-tree
// descendant of the HT side (the LT side and everything below it, plus
// any other subtree hanging off the HT side), each sweep keeping the more
// extreme value whenever two transformers' sweeps overlap.
//
// A Mapper is built once via Compute and treated as an immutable
// snapshot from then on, mirroring the phase package's one-shot build
// step.
package voltage
