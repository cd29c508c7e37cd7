package topology

import (
	"context"
	"math"
	"strconv"

	"github.com/NREL-Distribution-Suites/shift/core"
	"github.com/NREL-Distribution-Suites/shift/geo"
	"github.com/NREL-Distribution-Suites/shift/shiferr"
	"github.com/NREL-Distribution-Suites/shift/spatial"
	"github.com/google/uuid"
)

// weldEpsilon is the coordinate perturbation applied to a weld point so
// it never shares exact coordinates with the transformer terminal it
// sits beside; per the spec's explicit note, tests must not depend on
// the exact coordinates of welded nodes.
const weldEpsilon = 1e-6

// nearestRoadDistanceThresholdMeters is the distance beyond which a
// group center is not considered already served by the road network and
// gets a direct extension edge.
const nearestRoadDistanceThresholdMeters = 20.0

const primarySplitMaxMeters = 150.0

const secondaryMeshSpacingMeters = 50.0

const unitEdgeLength = 1.0

// BuildResult is the output of PRSG.Build: the assembled raw feeder
// graph (nodes/edges already typed per core.Graph, asset-marked), plus
// the group-point → node-name mapping the caller needs to attach loads
// or inspect synthesis results.
type BuildResult struct {
	Graph        *core.Graph
	PointToNode  map[geo.Point]string
	WeldedPoints []string // the t* (now t_ht/t* transformer pair) node names, one per group
}

// PRSG is the Primary-Road/Secondary-Grid concrete topology builder
// named in the spec: primary network from a road graph via Steiner
// tree, secondary network from a regular mesh via Steiner tree per load
// cluster, welded together and then exploded so every transformer
// becomes an edge rather than a node.
type PRSG struct {
	Roads RoadNetworkProvider
}

// NewPRSG constructs a PRSG backed by roads.
func NewPRSG(roads RoadNetworkProvider) *PRSG {
	return &PRSG{Roads: roads}
}

// Build runs the full topology synthesis: primary network, secondary
// networks, weld, transformer-node explosion, asset marking. buffer is
// the hull inflation distance used to window the road-network fetch.
func (b *PRSG) Build(ctx context.Context, groups []geo.Group, sourceLocation geo.Point, buffer geo.Distance) (*BuildResult, error) {
	if len(groups) == 0 {
		return nil, shiferr.WithEntity(shiferr.ErrInvalidInput, "groups")
	}

	primary, err := b.buildPrimary(ctx, groups, sourceLocation, buffer)
	if err != nil {
		return nil, err
	}

	secondaries := make([]*core.Graph, len(groups))
	for i, grp := range groups {
		sec, err := buildSecondary(grp)
		if err != nil {
			return nil, err
		}
		secondaries[i] = prefixGraph(sec, "sec"+strconv.Itoa(i))
	}

	combined, weldNames, err := weld(primary, secondaries, groups, sourceLocation)
	if err != nil {
		return nil, err
	}

	substation, err := nearestNode(combined, sourceLocation)
	if err != nil {
		return nil, err
	}

	pointToNode, err := markAssets(combined, groups, secondaries, substation)
	if err != nil {
		return nil, err
	}

	if err := explodeTransformerNodes(combined, weldNames); err != nil {
		return nil, err
	}

	return &BuildResult{Graph: combined, PointToNode: pointToNode, WeldedPoints: weldNames}, nil
}

func (b *PRSG) buildPrimary(ctx context.Context, groups []geo.Group, sourceLocation geo.Point, buffer geo.Distance) (*core.Graph, error) {
	var allPoints []geo.Point
	for _, g := range groups {
		allPoints = append(allPoints, g.Points...)
	}
	allPoints = append(allPoints, sourceLocation)

	hull, err := spatial.BufferedHull(allPoints, buffer.Meters())
	if err != nil {
		return nil, err
	}

	roads, err := b.Roads.FetchRoads(ctx, RoadQuery{Hull: hull})
	if err != nil {
		return nil, err
	}
	if roads.NodeCount() == 0 {
		return nil, wrapEmpty("primary-road-graph")
	}

	for i, grp := range groups {
		nearestName, err := nearestNode(roads, grp.Center)
		if err != nil {
			return nil, err
		}
		nearestNodeVal, err := roads.GetNode(nearestName)
		if err != nil {
			return nil, err
		}
		if spatial.GeodesicDistance(nearestNodeVal.Location, grp.Center).Meters() > nearestRoadDistanceThresholdMeters {
			centerName := "group-center-" + strconv.Itoa(i)
			if err := roads.AddNode(core.Node{Name: centerName, Location: grp.Center}); err != nil {
				return nil, err
			}
			length := spatial.GeodesicDistance(nearestNodeVal.Location, grp.Center)
			if err := roads.AddEdge(centerName, nearestName, core.Edge{
				Name: "group-link-" + strconv.Itoa(i), Kind: core.Branch, Length: &length,
			}); err != nil {
				return nil, err
			}
		}
	}

	split, err := spatial.SplitEdges(roads, geo.Meters(primarySplitMaxMeters))
	if err != nil {
		return nil, err
	}

	terminals := make([]string, 0, len(groups)+1)
	srcTerminal, err := nearestNode(split, sourceLocation)
	if err != nil {
		return nil, err
	}
	terminals = append(terminals, srcTerminal)
	for _, grp := range groups {
		t, err := nearestNode(split, grp.Center)
		if err != nil {
			return nil, err
		}
		terminals = append(terminals, t)
	}

	tree, err := spatial.Steiner(split, terminals)
	if err != nil {
		return nil, err
	}
	if tree.NodeCount() == 0 {
		return nil, wrapEmpty("primary-steiner-tree")
	}

	return tree, nil
}

func buildSecondary(grp geo.Group) (*core.Graph, error) {
	g := core.NewGraph()
	if len(grp.Points) == 1 {
		if err := g.AddNode(core.Node{Name: "center", Location: grp.Points[0]}); err != nil {
			return nil, err
		}

		return g, nil
	}

	hull, err := spatial.BufferedHull(grp.Points, 0)
	if err != nil {
		return nil, err
	}

	mesh, err := buildMeshForHull(hull, secondaryMeshSpacingMeters)
	if err != nil {
		return nil, err
	}

	terminals := make([]string, 0, len(grp.Points))
	seen := make(map[string]bool)
	for _, p := range grp.Points {
		t, err := nearestNode(mesh, p)
		if err != nil {
			return nil, err
		}
		if !seen[t] {
			seen[t] = true
			terminals = append(terminals, t)
		}
	}

	if len(terminals) == 1 {
		single := core.NewGraph()
		n, err := mesh.GetNode(terminals[0])
		if err != nil {
			return nil, err
		}
		if err := single.AddNode(n); err != nil {
			return nil, err
		}

		return single, nil
	}

	tree, err := spatial.Steiner(mesh, terminals)
	if err != nil {
		return nil, err
	}

	return tree, nil
}

// buildMeshForHull sizes a spatial.Mesh so its rows/cols cover hull at
// roughly spacingMeters resolution.
func buildMeshForHull(hull spatial.Hull, spacingMeters float64) (*core.Graph, error) {
	corner := geo.Point{Lon: hull.MinLon, Lat: hull.MinLat}
	widthMeters := spatial.GeodesicDistance(corner, geo.Point{Lon: hull.MaxLon, Lat: hull.MinLat}).Meters()
	heightMeters := spatial.GeodesicDistance(corner, geo.Point{Lon: hull.MinLon, Lat: hull.MaxLat}).Meters()

	cols := int(math.Ceil(widthMeters/spacingMeters)) + 1
	rows := int(math.Ceil(heightMeters/spacingMeters)) + 1
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	stepLon := 0.0
	if cols > 1 {
		stepLon = (hull.MaxLon - hull.MinLon) / float64(cols-1)
	}
	stepLat := 0.0
	if rows > 1 {
		stepLat = (hull.MaxLat - hull.MinLat) / float64(rows-1)
	}

	return spatial.Mesh(spatial.MeshOptions{
		Rows: rows, Cols: cols,
		OriginLon: hull.MinLon, OriginLat: hull.MinLat,
		StepLon: stepLon, StepLat: stepLat,
	})
}

// weld unions the primary tree and every secondary tree, then inserts
// one weld point per group connecting the primary transformer terminal
// to the nearest secondary node, per spec §4.3. Returns the combined
// graph and the weld-point node names in group order.
func weld(primary *core.Graph, secondaries []*core.Graph, groups []geo.Group, sourceLocation geo.Point) (*core.Graph, []string, error) {
	combined := core.NewGraph()
	if err := copyGraphInto(combined, primary); err != nil {
		return nil, nil, err
	}
	for _, sec := range secondaries {
		if err := copyGraphInto(combined, sec); err != nil {
			return nil, nil, err
		}
	}

	weldNames := make([]string, 0, len(groups))
	for i, grp := range groups {
		trNode, err := nearestNode(primary, grp.Center)
		if err != nil {
			return nil, nil, err
		}
		secNode, err := nearestNode(secondaries[i], grp.Center)
		if err != nil {
			return nil, nil, err
		}

		weldName := "weld-" + strconv.Itoa(i) + "-" + uuid.NewString()
		weldPoint := geo.Point{Lon: grp.Center.Lon + weldEpsilon, Lat: grp.Center.Lat + weldEpsilon}
		if err := combined.AddNode(core.Node{Name: weldName, Location: weldPoint}); err != nil {
			return nil, nil, err
		}

		l1 := geo.Meters(unitEdgeLength)
		if err := combined.AddEdge(trNode, weldName, core.Edge{Name: "weld-edge-a-" + strconv.Itoa(i), Kind: core.Branch, Length: &l1}); err != nil {
			return nil, nil, err
		}
		l2 := geo.Meters(unitEdgeLength)
		if err := combined.AddEdge(weldName, secNode, core.Edge{Name: "weld-edge-b-" + strconv.Itoa(i), Kind: core.Branch, Length: &l2}); err != nil {
			return nil, nil, err
		}
		weldNames = append(weldNames, weldName)
	}

	return combined, weldNames, nil
}

// markAssets attaches VoltageSource to the node nearest sourceLocation
// and Load to every secondary node nearest a group point, returning the
// point→node mapping.
func markAssets(combined *core.Graph, groups []geo.Group, secondaries []*core.Graph, substation string) (map[geo.Point]string, error) {
	if err := combined.AddAsset(substation, geo.VoltageSource); err != nil {
		return nil, err
	}

	pointToNode := make(map[geo.Point]string)
	for i, grp := range groups {
		for _, p := range grp.Points {
			nodeName, err := nearestNode(secondaries[i], p)
			if err != nil {
				return nil, err
			}
			pointToNode[p] = nodeName

			if err := combined.AddAsset(nodeName, geo.Load); err != nil {
				return nil, err
			}
		}
	}

	return pointToNode, nil
}

// explodeTransformerNodes replaces every weld node t* with the
// predecessor-preserving t_ht/t* transformer-edge pair described in
// spec §4.3. The DFS tree is computed once, before any explosion, since
// explosion only touches the single edge between a weld node and its
// parent and never disturbs any other node's ancestry.
func explodeTransformerNodes(g *core.Graph, weldNames []string) error {
	tree, err := g.GetDFSTree()
	if err != nil {
		return err
	}

	for i, t := range weldNames {
		parent, ok := tree.Parent[t]
		if !ok {
			return wrapEmpty(t)
		}

		eP, err := g.GetEdge(parent, t)
		if err != nil {
			return err
		}
		if err := g.RemoveEdge(parent, t); err != nil {
			return err
		}

		tHT := "t-ht-" + strconv.Itoa(i) + "-" + uuid.NewString()
		tNode, err := g.GetNode(t)
		if err != nil {
			return err
		}
		if err := g.AddNode(core.Node{Name: tHT, Location: tNode.Location}); err != nil {
			return err
		}

		eP.From, eP.To = "", ""
		if err := g.AddEdge(parent, tHT, eP); err != nil {
			return err
		}

		if err := g.AddEdge(tHT, t, core.Edge{Name: "xfmr-" + strconv.Itoa(i) + "-" + uuid.NewString(), Kind: core.Transformer}); err != nil {
			return err
		}
	}

	return nil
}

func nearestNode(g *core.Graph, target geo.Point) (string, error) {
	nodes := g.GetNodes(nil)
	if len(nodes) == 0 {
		return "", wrapEmpty("empty-graph")
	}
	best := nodes[0].Name
	bestDist := spatial.GeodesicDistance(nodes[0].Location, target)
	for _, n := range nodes[1:] {
		d := spatial.GeodesicDistance(n.Location, target)
		if d.Meters() < bestDist.Meters() {
			bestDist = d
			best = n.Name
		}
	}

	return best, nil
}

func copyGraphInto(dst, src *core.Graph) error {
	for _, n := range src.GetNodes(nil) {
		if err := dst.AddNode(n); err != nil {
			return err
		}
	}
	for _, e := range src.GetEdges(nil) {
		if err := dst.AddEdge(e.From, e.To, e); err != nil {
			return err
		}
	}

	return nil
}

// prefixGraph returns a copy of g with every node and edge name
// prefixed, so that welding multiple independently-built secondary
// trees into one combined graph never collides their node namespaces.
func prefixGraph(g *core.Graph, prefix string) *core.Graph {
	out := core.NewGraph()
	for _, n := range g.GetNodes(nil) {
		n.Name = prefix + "-" + n.Name
		_ = out.AddNode(n)
	}
	for _, e := range g.GetEdges(nil) {
		e.Name = prefix + "-" + e.Name
		_ = out.AddEdge(prefix+"-"+e.From, prefix+"-"+e.To, e)
	}

	return out
}

