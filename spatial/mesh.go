package spatial

import (
	"fmt"

	"github.com/NREL-Distribution-Suites/shift/core"
	"github.com/NREL-Distribution-Suites/shift/geo"
)

// MeshOptions configures Mesh. Rows and Cols must be positive;
// OriginLon/OriginLat place cell (0,0); StepLon/StepLat are the
// per-cell spacing in degrees.
type MeshOptions struct {
	Rows, Cols           int
	OriginLon, OriginLat float64
	StepLon, StepLat     float64
}

// Mesh builds a regular 4-connected grid of plain (assetless) nodes over
// the rectangle described by opts, as the secondary-network backbone the
// load-cluster Steiner tree is welded onto. Adapted directly from the
// teacher's GridGraph.ToCoreGraph: integer cell values become lon/lat
// coordinates, and the uniform edge weight becomes a Branch edge whose
// Length is the geodesic distance between adjacent cells.
func Mesh(opts MeshOptions) (*core.Graph, error) {
	if opts.Rows <= 0 || opts.Cols <= 0 {
		return nil, ErrInvalidGridDimensions
	}

	g := core.NewGraph()
	cellName := func(x, y int) string { return fmt.Sprintf("mesh-%d-%d", x, y) }
	cellPoint := func(x, y int) geo.Point {
		return geo.Point{
			Lon: opts.OriginLon + float64(x)*opts.StepLon,
			Lat: opts.OriginLat + float64(y)*opts.StepLat,
		}
	}

	for y := 0; y < opts.Rows; y++ {
		for x := 0; x < opts.Cols; x++ {
			if err := g.AddNode(core.Node{Name: cellName(x, y), Location: cellPoint(x, y)}); err != nil {
				return nil, err
			}
		}
	}

	offsets := [][2]int{{1, 0}, {0, 1}}
	edgeSeq := 0
	for y := 0; y < opts.Rows; y++ {
		for x := 0; x < opts.Cols; x++ {
			for _, d := range offsets {
				nx, ny := x+d[0], y+d[1]
				if nx >= opts.Cols || ny >= opts.Rows {
					continue
				}
				u, v := cellName(x, y), cellName(nx, ny)
				un, _ := g.GetNode(u)
				vn, _ := g.GetNode(v)
				length := GeodesicDistance(un.Location, vn.Location)
				edgeSeq++
				edgeName := fmt.Sprintf("mesh-edge-%d", edgeSeq)
				if err := g.AddEdge(u, v, core.Edge{Name: edgeName, Kind: core.Branch, Length: &length}); err != nil {
					return nil, err
				}
			}
		}
	}

	return g, nil
}
