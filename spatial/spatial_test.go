package spatial

import (
	"math"
	"testing"

	"github.com/NREL-Distribution-Suites/shift/core"
	"github.com/NREL-Distribution-Suites/shift/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeodesicDistanceKnownPoints(t *testing.T) {
	// Roughly 1 degree of longitude at the equator is ~111.3km.
	a := geo.MustPoint(0, 0)
	b := geo.MustPoint(1, 0)
	d := GeodesicDistance(a, b)
	assert.InDelta(t, 111195.0, d.Meters(), 2000)
}

func TestBufferedHull(t *testing.T) {
	points := []geo.Point{geo.MustPoint(0, 0), geo.MustPoint(1, 1)}
	h, err := BufferedHull(points, 1000)
	require.NoError(t, err)
	assert.True(t, h.Contains(geo.MustPoint(0.5, 0.5)))
	assert.False(t, h.Contains(geo.MustPoint(10, 10)))

	_, err = BufferedHull(nil, 1000)
	require.Error(t, err)
}

func TestKMeansDeterministicGivenSeed(t *testing.T) {
	points := []geo.Point{
		geo.MustPoint(0, 0), geo.MustPoint(0, 0.001),
		geo.MustPoint(10, 10), geo.MustPoint(10, 10.001),
	}
	g1, err := KMeans(points, 2, DefaultKMeansOptions())
	require.NoError(t, err)
	g2, err := KMeans(points, 2, DefaultKMeansOptions())
	require.NoError(t, err)
	assert.Equal(t, g1, g2)
	assert.Len(t, g1, 2)

	_, err = KMeans(nil, 1, DefaultKMeansOptions())
	require.Error(t, err)
	_, err = KMeans(points, 0, DefaultKMeansOptions())
	require.Error(t, err)
	_, err = KMeans(points, 5, DefaultKMeansOptions())
	require.Error(t, err)
}

func TestKDTreeNearest(t *testing.T) {
	points := []geo.Point{geo.MustPoint(0, 0), geo.MustPoint(5, 5), geo.MustPoint(10, 10)}
	tree, err := NewKDTree(points)
	require.NoError(t, err)
	assert.Equal(t, 3, tree.Len())

	idx, pt := tree.NearestTo(geo.MustPoint(4.9, 4.9))
	assert.Equal(t, 1, idx)
	assert.Equal(t, points[1], pt)
}

func TestMeshBuildsGrid(t *testing.T) {
	g, err := Mesh(MeshOptions{Rows: 2, Cols: 2, OriginLon: 0, OriginLat: 0, StepLon: 0.01, StepLat: 0.01})
	require.NoError(t, err)
	assert.Equal(t, 4, g.NodeCount())
	assert.Equal(t, 4, g.EdgeCount())

	_, err = Mesh(MeshOptions{Rows: 0, Cols: 2})
	require.Error(t, err)
}

func buildLineGraph(t *testing.T, names []string, step geo.Distance) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	for i, n := range names {
		require.NoError(t, g.AddNode(core.Node{Name: n, Location: geo.MustPoint(float64(i)*0.001, 0)}))
	}
	for i := 0; i+1 < len(names); i++ {
		l := step
		require.NoError(t, g.AddEdge(names[i], names[i+1], core.Edge{Name: "e" + names[i] + names[i+1], Kind: core.Branch, Length: &l}))
	}

	return g
}

func TestAllPairsShortestPaths(t *testing.T) {
	g := buildLineGraph(t, []string{"a", "b", "c"}, geo.Meters(10))
	m, err := AllPairsShortestPaths(g)
	require.NoError(t, err)

	idx := func(name string) int {
		for i, id := range m.IDs {
			if id == name {
				return i
			}
		}
		return -1
	}
	assert.Equal(t, 20.0, m.At(idx("a"), idx("c")))
	assert.Equal(t, 0.0, m.At(idx("a"), idx("a")))
}

func TestSteinerConnectsTerminals(t *testing.T) {
	g := buildLineGraph(t, []string{"a", "b", "c", "d"}, geo.Meters(10))
	tree, err := Steiner(g, []string{"a", "d"})
	require.NoError(t, err)
	assert.True(t, tree.HasNode("a"))
	assert.True(t, tree.HasNode("d"))
	assert.Equal(t, 4, tree.NodeCount())
	assert.Equal(t, 3, tree.EdgeCount())

	_, err = Steiner(g, nil)
	require.Error(t, err)
}

func TestSplitEdgesRespectsMaxLength(t *testing.T) {
	g := core.NewGraph()
	require.NoError(t, g.AddNode(core.Node{Name: "a", Location: geo.MustPoint(0, 0)}))
	require.NoError(t, g.AddNode(core.Node{Name: "b", Location: geo.MustPoint(0.01, 0)}))
	l := geo.Meters(1000)
	require.NoError(t, g.AddEdge("a", "b", core.Edge{Name: "e1", Kind: core.Branch, Length: &l}))

	out, err := SplitEdges(g, geo.Meters(300))
	require.NoError(t, err)
	for _, e := range out.GetEdges(nil) {
		assert.LessOrEqual(t, e.Length.Meters(), 300.0+1e-6)
	}
	assert.Greater(t, out.EdgeCount(), 1)
}

func TestWardClusterSplitsFarApart(t *testing.T) {
	g := core.NewGraph()
	ids := []string{"a", "b", "c", "d"}
	coords := []float64{0, 10, 1000, 1010}
	for i, id := range ids {
		require.NoError(t, g.AddNode(core.Node{Name: id, Location: geo.MustPoint(coords[i]*0.00001, 0)}))
	}
	for i := 0; i+1 < len(ids); i++ {
		l := geo.Meters(math.Abs(coords[i+1] - coords[i]))
		require.NoError(t, g.AddEdge(ids[i], ids[i+1], core.Edge{Name: "e" + ids[i], Kind: core.Branch, Length: &l}))
	}

	m, err := AllPairsShortestPaths(g)
	require.NoError(t, err)
	groups, err := WardCluster(m, ids, 2)
	require.NoError(t, err)
	assert.Len(t, groups, 2)

	_, err = WardCluster(m, ids, 0)
	require.Error(t, err)
}
