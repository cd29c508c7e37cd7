package spatial

import (
	"math"

	"github.com/NREL-Distribution-Suites/shift/geo"
)

// earthMeanRadiusMeters is the WGS-84 mean radius used for the haversine
// approximation; the spec treats the feeder service area as small enough
// that a spherical-Earth model introduces negligible error.
const earthMeanRadiusMeters = 6371008.8

// metersPerDegree is the standard approximation used to inflate a
// bounding box by a metric distance (1 degree of latitude ~= 111139 m).
const metersPerDegree = 111139.0

// GeodesicDistance returns the great-circle distance between a and b
// using the haversine formula and the WGS-84 mean radius.
func GeodesicDistance(a, b geo.Point) geo.Distance {
	lat1, lat2 := degToRad(a.Lat), degToRad(b.Lat)
	dLat := degToRad(b.Lat - a.Lat)
	dLon := degToRad(b.Lon - a.Lon)

	sinDLat := math.Sin(dLat / 2)
	sinDLon := math.Sin(dLon / 2)
	h := sinDLat*sinDLat + math.Cos(lat1)*math.Cos(lat2)*sinDLon*sinDLon
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return geo.Meters(earthMeanRadiusMeters * c)
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// BufferedHull returns the axis-aligned bounding rectangle of points,
// inflated by bufferMeters on every side (converted to degrees via the
// standard 111139 m/degree approximation). Returns ErrEmptyPoints for an
// empty input.
type Hull struct {
	MinLon, MinLat, MaxLon, MaxLat float64
}

// Contains reports whether p lies within the hull (inclusive).
func (h Hull) Contains(p geo.Point) bool {
	return p.Lon >= h.MinLon && p.Lon <= h.MaxLon && p.Lat >= h.MinLat && p.Lat <= h.MaxLat
}

func BufferedHull(points []geo.Point, bufferMeters float64) (Hull, error) {
	if len(points) == 0 {
		return Hull{}, ErrEmptyPoints
	}

	h := Hull{
		MinLon: points[0].Lon, MaxLon: points[0].Lon,
		MinLat: points[0].Lat, MaxLat: points[0].Lat,
	}
	for _, p := range points[1:] {
		h.MinLon = math.Min(h.MinLon, p.Lon)
		h.MaxLon = math.Max(h.MaxLon, p.Lon)
		h.MinLat = math.Min(h.MinLat, p.Lat)
		h.MaxLat = math.Max(h.MaxLat, p.Lat)
	}

	buf := bufferMeters / metersPerDegree
	h.MinLon -= buf
	h.MaxLon += buf
	h.MinLat -= buf
	h.MaxLat += buf

	return h, nil
}
