package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPointValidation(t *testing.T) {
	_, err := NewPoint(200, 10)
	require.Error(t, err)

	_, err = NewPoint(10, 100)
	require.Error(t, err)

	p, err := NewPoint(-97.33, 32.75)
	require.NoError(t, err)
	assert.Equal(t, -97.33, p.Lon)
	assert.Equal(t, 32.75, p.Lat)
}

func TestQuantityConversions(t *testing.T) {
	assert.Equal(t, 1000.0, Kilometers(1).Meters())
	assert.Equal(t, 7200.0, KiloVolts(7.2).Volts())
	assert.Equal(t, 25000.0, KVA(25).VA())
	assert.InDelta(t, 25.0, VA(25000).KVA(), 1e-9)
}

func TestPhaseSetOperations(t *testing.T) {
	ab := NewPhaseSet(PhaseA, PhaseB)
	bc := NewPhaseSet(PhaseB, PhaseC)
	union := ab.Union(bc)
	assert.True(t, union.Equal(ABC()))
	assert.True(t, ab.Subset(union))
	assert.False(t, union.Subset(ab))
	assert.Equal(t, []Phase{PhaseA, PhaseB, PhaseC}, union.Sorted())

	intersection := ab.Intersect(bc)
	assert.True(t, intersection.Equal(NewPhaseSet(PhaseB)))
}

func TestCentroid(t *testing.T) {
	pts := []Point{{Lon: 0, Lat: 0}, {Lon: 2, Lat: 2}}
	c := Centroid(pts)
	assert.Equal(t, Point{Lon: 1, Lat: 1}, c)
}
