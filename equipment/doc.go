// Package equipment sizes transformers, branches, and protection devices
// from a catalogue of typed component families, driven by aggregate
// served load, per-node phase counts, and per-node voltages computed by
// the phase and voltage mappers.
//
// A Mapper is built once via Compute: served load is aggregated per
// branch edge from every downstream Load-bearing node's ZIP-model power,
// then each edge's equipment family is filtered by the selection rule
// matching its kind and the smallest surviving candidate is chosen.
package equipment
