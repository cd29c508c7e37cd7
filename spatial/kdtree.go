package spatial

import (
	"sort"

	"github.com/NREL-Distribution-Suites/shift/geo"
)

// KDTree is a static 2-D KD-tree over geo.Point (lon/lat treated as
// Euclidean, matching the spec's small-area approximation). Build is
// O(n log n); NearestTo is O(log n) amortized for well-distributed
// points, O(n) worst case.
type KDTree struct {
	root *kdNode
	size int
}

type kdNode struct {
	point       geo.Point
	index       int // position in the original input slice
	axis        int // 0 = split on Lon, 1 = split on Lat
	left, right *kdNode
}

// NewKDTree builds a tree over points. Returns ErrEmptyPoints if points
// is empty.
func NewKDTree(points []geo.Point) (*KDTree, error) {
	if len(points) == 0 {
		return nil, ErrEmptyPoints
	}

	items := make([]kdItem, len(points))
	for i, p := range points {
		items[i] = kdItem{point: p, index: i}
	}

	return &KDTree{root: buildKD(items, 0), size: len(points)}, nil
}

type kdItem struct {
	point geo.Point
	index int
}

func buildKD(items []kdItem, depth int) *kdNode {
	if len(items) == 0 {
		return nil
	}
	axis := depth % 2
	sort.Slice(items, func(i, j int) bool {
		if axis == 0 {
			return items[i].point.Lon < items[j].point.Lon
		}

		return items[i].point.Lat < items[j].point.Lat
	})
	mid := len(items) / 2

	return &kdNode{
		point: items[mid].point,
		index: items[mid].index,
		axis:  axis,
		left:  buildKD(items[:mid], depth+1),
		right: buildKD(items[mid+1:], depth+1),
	}
}

// Len reports how many points the tree holds.
func (t *KDTree) Len() int { return t.size }

// NearestTo returns the index (into the slice passed to NewKDTree) and
// value of the point nearest to target, using planar Euclidean distance.
func (t *KDTree) NearestTo(target geo.Point) (index int, point geo.Point) {
	best := t.root
	bestDist := planarDistSq(target, t.root.point)
	searchKD(t.root, target, 0, &best, &bestDist)

	return best.index, best.point
}

func searchKD(n *kdNode, target geo.Point, depth int, best **kdNode, bestDist *float64) {
	if n == nil {
		return
	}
	d := planarDistSq(target, n.point)
	if d < *bestDist {
		*bestDist = d
		*best = n
	}

	var diff float64
	var near, far *kdNode
	if n.axis == 0 {
		diff = target.Lon - n.point.Lon
	} else {
		diff = target.Lat - n.point.Lat
	}
	if diff < 0 {
		near, far = n.left, n.right
	} else {
		near, far = n.right, n.left
	}

	searchKD(near, target, depth+1, best, bestDist)
	if diff*diff < *bestDist {
		searchKD(far, target, depth+1, best, bestDist)
	}
}
