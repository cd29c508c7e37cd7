// Package geo defines the geometric and electrical-quantity primitives
// shared by every stage of the synthesis pipeline: a geographic point type
// and one small newtype per physical unit (distance, voltage, current,
// apparent/active/reactive power, angle). Each quantity type stores its
// canonical SI magnitude as a float64 and exposes unit-specific
// constructors and accessors, so a caller can never add a Voltage to a
// Distance without an explicit, named conversion.
package geo

import "fmt"

// Point is a WGS-84 geographic coordinate. Lon must lie in [-180, 180] and
// Lat in [-90, 90]; NewPoint validates both. Equality is value equality
// (Point is a plain comparable struct).
type Point struct {
	Lon float64
	Lat float64
}

// NewPoint validates lon/lat ranges and returns a Point.
func NewPoint(lon, lat float64) (Point, error) {
	if lon < -180 || lon > 180 {
		return Point{}, fmt.Errorf("geo: longitude %.6f out of range [-180,180]", lon)
	}
	if lat < -90 || lat > 90 {
		return Point{}, fmt.Errorf("geo: latitude %.6f out of range [-90,90]", lat)
	}

	return Point{Lon: lon, Lat: lat}, nil
}

// MustPoint is NewPoint but panics on an invalid coordinate; intended for
// literal test fixtures and example wiring, never for parsing untrusted
// input.
func MustPoint(lon, lat float64) Point {
	p, err := NewPoint(lon, lat)
	if err != nil {
		panic(err)
	}

	return p
}

// String implements fmt.Stringer for debug output and error messages.
func (p Point) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", p.Lon, p.Lat)
}
