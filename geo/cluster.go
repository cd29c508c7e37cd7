package geo

// Group (the spec's "Cluster") is a set of points produced by K-means
// clustering, together with the centroid of its members.
type Group struct {
	Center Point
	Points []Point
}

// Centroid computes the arithmetic mean of points. Callers with an empty
// slice get the zero Point.
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}
	var sumLon, sumLat float64
	for _, p := range points {
		sumLon += p.Lon
		sumLat += p.Lat
	}
	n := float64(len(points))

	return Point{Lon: sumLon / n, Lat: sumLat / n}
}
