package spatial

import (
	"math"
	"sort"

	"github.com/NREL-Distribution-Suites/shift/core"
)

// DistanceMatrix is a dense all-pairs distance table indexed by the same
// IDs slice used to build it. Off-diagonal entries unreachable in the
// source graph are math.Inf(1).
type DistanceMatrix struct {
	IDs  []string
	dist [][]float64
}

// At returns the distance between IDs[i] and IDs[j].
func (m DistanceMatrix) At(i, j int) float64 { return m.dist[i][j] }

// AllPairsShortestPaths computes the all-pairs shortest-path distance
// matrix over g's Branch/Transformer edges (Transformer edges, having no
// Length, contribute zero-weight hops) using the classic Floyd-Warshall
// triple loop, loop order k->i->j, fixed for determinism — the same
// accumulation order the teacher's matrix.floydWarshallInPlace uses.
func AllPairsShortestPaths(g *core.Graph) (DistanceMatrix, error) {
	nodes := g.GetNodes(nil)
	ids := make([]string, len(nodes))
	index := make(map[string]int, len(nodes))
	for i, n := range nodes {
		ids[i] = n.Name
		index[n.Name] = i
	}

	n := len(ids)
	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
		for j := range dist[i] {
			if i == j {
				dist[i][j] = 0
			} else {
				dist[i][j] = math.Inf(1)
			}
		}
	}

	for _, e := range g.GetEdges(nil) {
		i, j := index[e.From], index[e.To]
		w := 0.0
		if e.Length != nil {
			w = e.Length.Meters()
		}
		if w < dist[i][j] {
			dist[i][j] = w
			dist[j][i] = w
		}
	}

	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			ik := dist[i][k]
			if math.IsInf(ik, 1) {
				continue
			}
			for j := 0; j < n; j++ {
				kj := dist[k][j]
				if math.IsInf(kj, 1) {
					continue
				}
				if cand := ik + kj; cand < dist[i][j] {
					dist[i][j] = cand
				}
			}
		}
	}

	return DistanceMatrix{IDs: ids, dist: dist}, nil
}

// WardCluster partitions the IDs named by ids (a subset of m.IDs) into k
// groups using Ward-linkage agglomerative clustering over m, via the
// Lance-Williams update formula (generalizes Ward's method to an
// arbitrary dissimilarity matrix, not just Euclidean coordinates):
//
//	d(i∪j,k) = ((n_i+n_k)d(i,k) + (n_j+n_k)d(j,k) - n_k*d(i,j)) / (n_i+n_j+n_k)
//
// Returns ErrTooFewClusters if k is outside [1, len(ids)].
func WardCluster(m DistanceMatrix, ids []string, k int) ([][]string, error) {
	if len(ids) == 0 {
		return nil, ErrEmptyPoints
	}
	if k <= 0 || k > len(ids) {
		return nil, ErrTooFewClusters
	}

	byID := make(map[string]int, len(m.IDs))
	for i, id := range m.IDs {
		byID[id] = i
	}

	type cluster struct {
		members []string
		size    int
	}
	clusters := make([]*cluster, len(ids))
	for i, id := range ids {
		clusters[i] = &cluster{members: []string{id}, size: 1}
	}

	// d[a][b] holds the current inter-cluster distance for live clusters
	// a,b (indices into clusters); rebuilt fully once up front from m,
	// then updated incrementally via Lance-Williams on each merge.
	d := make([][]float64, len(clusters))
	for a := range d {
		d[a] = make([]float64, len(clusters))
		for b := range d[a] {
			if a == b {
				continue
			}
			d[a][b] = m.dist[byID[ids[a]]][byID[ids[b]]]
		}
	}

	alive := make([]bool, len(clusters))
	for i := range alive {
		alive[i] = true
	}
	live := len(clusters)

	for live > k {
		bestA, bestB := -1, -1
		bestDist := math.Inf(1)
		for a := 0; a < len(clusters); a++ {
			if !alive[a] {
				continue
			}
			for b := a + 1; b < len(clusters); b++ {
				if !alive[b] {
					continue
				}
				if d[a][b] < bestDist {
					bestDist = d[a][b]
					bestA, bestB = a, b
				}
			}
		}
		if bestA < 0 {
			break
		}

		ni, nj := float64(clusters[bestA].size), float64(clusters[bestB].size)
		for c := 0; c < len(clusters); c++ {
			if !alive[c] || c == bestA || c == bestB {
				continue
			}
			nk := float64(clusters[c].size)
			merged := ((ni+nk)*d[bestA][c] + (nj+nk)*d[bestB][c] - nk*d[bestA][bestB]) / (ni + nj + nk)
			d[bestA][c] = merged
			d[c][bestA] = merged
		}

		clusters[bestA].members = append(clusters[bestA].members, clusters[bestB].members...)
		clusters[bestA].size += clusters[bestB].size
		alive[bestB] = false
		live--
	}

	out := make([][]string, 0, k)
	for a := range clusters {
		if !alive[a] {
			continue
		}
		members := append([]string(nil), clusters[a].members...)
		sort.Strings(members)
		out = append(out, members)
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })

	return out, nil
}
