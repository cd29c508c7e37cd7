package phase

import (
	"math"
	"math/rand"
	"sort"

	"github.com/NREL-Distribution-Suites/shift/core"
	"github.com/NREL-Distribution-Suites/shift/geo"
	"github.com/NREL-Distribution-Suites/shift/shiferr"
	"github.com/NREL-Distribution-Suites/shift/spatial"
)

// allocate distributes configs across len(tuples) phase tuples using
// method, returning config name → tuple index.
func allocate(method AllocationMethod, configs []TransformerPhaseConfig, tuples []geo.PhaseSet, g *core.Graph, heads map[string]string) (map[string]int, error) {
	switch method {
	case Greedy:
		return allocateGreedy(configs, len(tuples)), nil
	case KMeans:
		return allocateKMeans(configs, len(tuples))
	case Agglomerative:
		return allocateAgglomerative(configs, len(tuples), g, heads)
	default:
		return nil, shiferr.WithEntity(shiferr.ErrInvalidPhaseAllocationMethod, "")
	}
}

// allocateGreedy sorts configs by capacity descending and repeatedly
// assigns the next config to whichever tuple currently holds the
// smallest running capacity sum.
func allocateGreedy(configs []TransformerPhaseConfig, k int) map[string]int {
	sorted := append([]TransformerPhaseConfig(nil), configs...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Capacity.KVA() != sorted[j].Capacity.KVA() {
			return sorted[i].Capacity.KVA() > sorted[j].Capacity.KVA()
		}

		return sorted[i].Name < sorted[j].Name
	})

	sums := make([]float64, k)
	assignment := make(map[string]int, len(configs))
	for _, c := range sorted {
		best := 0
		for i := 1; i < k; i++ {
			if sums[i] < sums[best] {
				best = i
			}
		}
		assignment[c.Name] = best
		sums[best] += c.Capacity.KVA()
	}

	return assignment
}

// allocateKMeans clusters transformer locations, weighted by capacity,
// into k = len(tuples) groups via a capacity-weighted Lloyd's algorithm
// (a generalization of spatial.KMeans's unweighted centroid update).
func allocateKMeans(configs []TransformerPhaseConfig, k int) (map[string]int, error) {
	if k <= 0 || k > len(configs) {
		return nil, shiferr.WithEntity(shiferr.ErrAllocationMapping, "kmeans: invalid cluster count")
	}

	rng := rand.New(rand.NewSource(0))
	perm := rng.Perm(len(configs))
	centroids := make([]geo.Point, k)
	for i := 0; i < k; i++ {
		centroids[i] = configs[perm[i]].Location
	}

	assignment := make([]int, len(configs))
	for iter := 0; iter < 100; iter++ {
		for i, c := range configs {
			best, bestDist := 0, math.Inf(1)
			for ci, centroid := range centroids {
				dLon := c.Location.Lon - centroid.Lon
				dLat := c.Location.Lat - centroid.Lat
				d := dLon*dLon + dLat*dLat
				if d < bestDist {
					bestDist = d
					best = ci
				}
			}
			assignment[i] = best
		}

		newCentroids := make([]geo.Point, k)
		weights := make([]float64, k)
		for i, c := range configs {
			cl := assignment[i]
			w := c.Capacity.KVA()
			newCentroids[cl].Lon += c.Location.Lon * w
			newCentroids[cl].Lat += c.Location.Lat * w
			weights[cl] += w
		}
		moved := false
		for cl := 0; cl < k; cl++ {
			if weights[cl] == 0 {
				newCentroids[cl] = centroids[cl]
				continue
			}
			newCentroids[cl].Lon /= weights[cl]
			newCentroids[cl].Lat /= weights[cl]
			if newCentroids[cl] != centroids[cl] {
				moved = true
			}
		}
		centroids = newCentroids
		if !moved {
			break
		}
	}

	out := make(map[string]int, len(configs))
	for i, c := range configs {
		out[c.Name] = assignment[i]
	}

	return out, nil
}

// allocateAgglomerative performs Ward-linkage clustering over the
// all-pairs shortest-path distance matrix computed on the Steiner tree
// connecting every config's transformer head node, per spec §4.4.
func allocateAgglomerative(configs []TransformerPhaseConfig, k int, g *core.Graph, heads map[string]string) (map[string]int, error) {
	headNames := make([]string, 0, len(configs))
	headToConfig := make(map[string][]string) // a head node may serve >1 config only in degenerate inputs
	for _, c := range configs {
		h := heads[c.Name]
		headNames = append(headNames, h)
		headToConfig[h] = append(headToConfig[h], c.Name)
	}

	uniqueHeads := dedupe(headNames)
	if len(uniqueHeads) == 1 {
		out := make(map[string]int, len(configs))
		for _, c := range configs {
			out[c.Name] = 0
		}

		return out, nil
	}

	tree, err := spatial.Steiner(g, uniqueHeads)
	if err != nil {
		return nil, shiferr.Wrap(shiferr.ErrAllocationMapping, "agglomerative", err)
	}
	matrix, err := spatial.AllPairsShortestPaths(tree)
	if err != nil {
		return nil, shiferr.Wrap(shiferr.ErrAllocationMapping, "agglomerative", err)
	}

	groups, err := spatial.WardCluster(matrix, uniqueHeads, k)
	if err != nil {
		return nil, shiferr.Wrap(shiferr.ErrAllocationMapping, "agglomerative", err)
	}

	headToGroup := make(map[string]int, len(uniqueHeads))
	for gi, group := range groups {
		for _, h := range group {
			headToGroup[h] = gi
		}
	}

	out := make(map[string]int, len(configs))
	for _, c := range configs {
		out[c.Name] = headToGroup[heads[c.Name]]
	}

	return out, nil
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)

	return out
}
