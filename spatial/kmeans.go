package spatial

import (
	"math"
	"math/rand"

	"github.com/NREL-Distribution-Suites/shift/geo"
)

// KMeansOptions configures KMeans. Seed selects a dedicated
// rand.New(rand.NewSource(seed)) so runs are reproducible and never
// perturb the global math/rand source — the same isolation discipline
// the teacher applies to its own deterministic-by-construction
// algorithms (sorted iteration, explicit tie-breaking).
type KMeansOptions struct {
	Seed      int64
	MaxIters  int
	Tolerance float64 // convergence threshold on total centroid movement, meters
}

// DefaultKMeansOptions returns MaxIters=100, Tolerance=0.01m, Seed=0.
func DefaultKMeansOptions() KMeansOptions {
	return KMeansOptions{Seed: 0, MaxIters: 100, Tolerance: 0.01}
}

// KMeans partitions points into k clusters using Lloyd's algorithm over
// planar (lon/lat treated as Euclidean) coordinates, per the spec's
// explicit small-area approximation. Returns ErrEmptyPoints if points is
// empty, ErrTooFewClusters if k is outside [1, len(points)].
func KMeans(points []geo.Point, k int, opts KMeansOptions) ([]geo.Group, error) {
	if len(points) == 0 {
		return nil, ErrEmptyPoints
	}
	if k <= 0 || k > len(points) {
		return nil, ErrTooFewClusters
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	maxIters := opts.MaxIters
	if maxIters <= 0 {
		maxIters = 100
	}
	tol := opts.Tolerance
	if tol <= 0 {
		tol = 0.01
	}

	// Seed centroids via a deterministic-given-seed random permutation of
	// the input (k-means++ is overkill for feeder-scale clusters; a random
	// restart is what the spec's reference implementation does).
	perm := rng.Perm(len(points))
	centroids := make([]geo.Point, k)
	for i := 0; i < k; i++ {
		centroids[i] = points[perm[i]]
	}

	assignment := make([]int, len(points))
	for iter := 0; iter < maxIters; iter++ {
		for i, p := range points {
			assignment[i] = nearestCentroid(p, centroids)
		}

		newCentroids := make([]geo.Point, k)
		counts := make([]int, k)
		for i, p := range points {
			c := assignment[i]
			newCentroids[c].Lon += p.Lon
			newCentroids[c].Lat += p.Lat
			counts[c]++
		}
		var movement float64
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				// Empty cluster: keep its previous centroid in place
				// rather than producing a NaN.
				newCentroids[c] = centroids[c]
				continue
			}
			newCentroids[c].Lon /= float64(counts[c])
			newCentroids[c].Lat /= float64(counts[c])
			movement += GeodesicDistance(centroids[c], newCentroids[c]).Meters()
		}
		centroids = newCentroids
		if movement < tol {
			break
		}
	}

	groups := make([]geo.Group, k)
	for c := range groups {
		groups[c].Center = centroids[c]
	}
	for i, p := range points {
		c := assignment[i]
		groups[c].Points = append(groups[c].Points, p)
	}

	return groups, nil
}

func nearestCentroid(p geo.Point, centroids []geo.Point) int {
	best := 0
	bestDist := math.Inf(1)
	for i, c := range centroids {
		d := planarDistSq(p, c)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}

	return best
}

func planarDistSq(a, b geo.Point) float64 {
	dLon := a.Lon - b.Lon
	dLat := a.Lat - b.Lat

	return dLon*dLon + dLat*dLat
}
