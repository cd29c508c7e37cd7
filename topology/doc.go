// Package topology builds the raw feeder graph from coarse geospatial
// inputs: a primary network traced over a road graph, a secondary mesh
// network per load cluster, the weld joining them, and the conversion of
// each weld point into an explicit transformer edge.
//
// OSM fetching itself is out of scope (per the package's RoadNetworkProvider
// and BuildingProvider interfaces); PRSG is the one concrete builder this
// package ships.
package topology
