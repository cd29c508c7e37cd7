package topology

import (
	"context"
	"testing"

	"github.com/NREL-Distribution-Suites/shift/core"
	"github.com/NREL-Distribution-Suites/shift/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRoadProvider struct {
	graph *core.Graph
}

func (s stubRoadProvider) FetchRoads(_ context.Context, _ RoadQuery) (*core.Graph, error) {
	return s.graph, nil
}

func buildStubRoadGraph(t *testing.T) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	names := []string{"road0", "road1", "road2"}
	lons := []float64{0, 0.005, 0.01}
	for i, n := range names {
		require.NoError(t, g.AddNode(core.Node{Name: n, Location: geo.MustPoint(lons[i], 0)}))
	}
	for i := 0; i+1 < len(names); i++ {
		l := geo.Meters(550)
		require.NoError(t, g.AddEdge(names[i], names[i+1], core.Edge{Name: "road-e" + names[i], Kind: core.Branch, Length: &l}))
	}

	return g
}

func TestPRSGBuildSingleGroup(t *testing.T) {
	roadGraph := buildStubRoadGraph(t)
	prsg := NewPRSG(stubRoadProvider{graph: roadGraph})

	source := geo.MustPoint(0, 0)
	group := geo.Group{
		Center: geo.MustPoint(0.01, 0),
		Points: []geo.Point{geo.MustPoint(0.0099, 0), geo.MustPoint(0.0101, 0)},
	}

	result, err := prsg.Build(context.Background(), []geo.Group{group}, source, geo.Meters(2000))
	require.NoError(t, err)
	require.NotNil(t, result.Graph)

	var vsources, loads, transformers int
	for _, n := range result.Graph.GetNodes(nil) {
		if n.HasAsset(geo.VoltageSource) {
			vsources++
		}
		if n.HasAsset(geo.Load) {
			loads++
		}
	}
	for _, e := range result.Graph.GetEdges(nil) {
		if e.Kind == core.Transformer {
			transformers++
		}
	}

	assert.Equal(t, 1, vsources)
	assert.Equal(t, 2, loads)
	assert.Equal(t, 1, transformers)
	assert.NotEmpty(t, result.Graph.VsourceNode())
	assert.Len(t, result.PointToNode, 2)
}

func TestPRSGBuildRejectsEmptyGroups(t *testing.T) {
	prsg := NewPRSG(stubRoadProvider{graph: core.NewGraph()})
	_, err := prsg.Build(context.Background(), nil, geo.MustPoint(0, 0), geo.Meters(100))
	require.Error(t, err)
}
