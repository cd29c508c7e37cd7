package topology

import (
	"context"

	"github.com/NREL-Distribution-Suites/shift/core"
	"github.com/NREL-Distribution-Suites/shift/geo"
	"github.com/NREL-Distribution-Suites/shift/spatial"
)

// RoadQuery describes the window a RoadNetworkProvider should fetch
// roads within.
type RoadQuery struct {
	Hull spatial.Hull
}

// RoadNetworkProvider is the external collaborator standing in for OSM
// road-network fetching (§6 of the distilled spec: fetch_roads). PRSG
// calls it once per synthesis run to obtain the road graph within the
// buffered hull of every group's points. The returned graph carries
// plain (assetless) nodes whose Location holds the road-node coordinate;
// PRSG treats every edge as a Branch with a populated Length.
type RoadNetworkProvider interface {
	FetchRoads(ctx context.Context, query RoadQuery) (*core.Graph, error)
}

// BuildingQuery describes the window a BuildingProvider should fetch
// parcels within.
type BuildingQuery struct {
	Hull spatial.Hull
}

// Parcel is a fetched building footprint, reduced to a representative
// point (multi-polygon geometries are reduced to their convex hull's
// centroid upstream, by the provider, per §6's geometry-normalization
// rule — PRSG only ever sees a point).
type Parcel struct {
	Name         string
	Location     geo.Point
	BuildingType string
	City         string
	State        string
	PostalAddr   string
}

// BuildingProvider is the external collaborator standing in for OSM
// building-footprint fetching (§6: fetch_buildings). Nothing in this
// package's PRSG builder calls it directly today — group membership is
// supplied by the caller as already-clustered points — but it is kept as
// the documented seam a higher-level orchestrator uses to turn raw
// building queries into the []geo.Point groups PRSG consumes.
type BuildingProvider interface {
	FetchBuildings(ctx context.Context, query BuildingQuery) ([]Parcel, error)
}
