package spatial

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
)

func TestProjectionAtZoneChoice(t *testing.T) {
	tests := []struct {
		name  string
		lon   float64
		lat   float64
		zone  int
		south bool
	}{
		{name: "paris", lon: 2.35, lat: 48.85, zone: 31, south: false},
		{name: "greenwich", lon: 0, lat: 51.5, zone: 31, south: false},
		{name: "new york", lon: -74, lat: 40.7, zone: 18, south: false},
		{name: "sydney", lon: 151.2, lat: -33.9, zone: 56, south: true},
		{name: "antimeridian west", lon: -180, lat: 0, zone: 1, south: false},
		{name: "antimeridian east", lon: 179.99, lat: 0, zone: 60, south: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := projectionAt(tt.lon, tt.lat)
			assert.Equal(t, tt.zone, p.Zone)
			assert.Equal(t, tt.south, p.South)
		})
	}
}

func TestProjectionForUsesCentroid(t *testing.T) {
	gc := geom.NewGeometryCollection()
	require.NoError(t, gc.Push(geom.NewPointFlat(geom.XY, []float64{2, 46})))
	require.NoError(t, gc.Push(geom.NewPointFlat(geom.XY, []float64{4, 48})))

	p := ProjectionFor(gc)
	// Centroid (3, 47) falls in zone 31.
	assert.Equal(t, 31, p.Zone)
	assert.False(t, p.South)
}

func TestForwardCentralMeridian(t *testing.T) {
	p := projectionAt(3, 48)
	require.Equal(t, 31, p.Zone)

	x, y := p.Forward(3, 48)
	// On the central meridian the easting is exactly the false easting.
	assert.InDelta(t, 500000, x, 0.01)
	assert.Greater(t, y, 5000000.0)
}

func TestForwardSouthernFalseNorthing(t *testing.T) {
	north := projectionAt(151, 34)
	south := projectionAt(151, -34)

	_, yn := north.Forward(151, 34)
	_, ys := south.Forward(151, -34)

	assert.Greater(t, ys, 0.0)
	assert.Greater(t, yn, 0.0)
	// Southern northings carry the 10,000 km offset.
	assert.Greater(t, ys, 5000000.0)
}

func TestForwardDistanceAccuracy(t *testing.T) {
	// One tenth of a degree of latitude is about 11.1 km on the ground.
	p := projectionAt(2.2, 46.1)

	x1, y1 := p.Forward(2.2, 46.0)
	x2, y2 := p.Forward(2.2, 46.1)

	d := math.Hypot(x2-x1, y2-y1)
	assert.InDelta(t, 11100, d, 120)
}
