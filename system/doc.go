// Package system assembles a graph plus its phase, voltage, and
// equipment labels into a typed distribution system: one Bus per node,
// one Asset per (node, asset kind), and a Branch or Transformer per
// edge, in a single pass over the graph.
//
// Transformer assembly additionally derives per-winding effective
// voltage from equipment, maps each winding to whichever endpoint bus
// is closest in voltage, and validates the resulting winding→bus
// assignment (injectivity, split-phase center-tap shape) before the
// transformer is added.
//
// A System is built once via Build and is JSON-serializable end to end
// via Save/Load.
package system
