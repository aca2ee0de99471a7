package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
)

func TestNormalizeCoordinate(t *testing.T) {
	gc, err := Normalize(Coordinate{Lon: 2.35, Lat: 48.85})
	require.NoError(t, err)

	assert.Equal(t, SRID, gc.SRID())
	require.Len(t, gc.Geoms(), 1)

	pt, ok := gc.Geoms()[0].(*geom.Point)
	require.True(t, ok)
	assert.Equal(t, 2.35, pt.X())
	assert.Equal(t, 48.85, pt.Y())
	assert.Equal(t, SRID, pt.SRID())
}

func TestNormalizeShape(t *testing.T) {
	poly := geom.NewPolygonFlat(geom.XY, []float64{0, 0, 1, 0, 1, 1, 0, 1, 0, 0}, []int{10})

	gc, err := Normalize(Shape{Geom: poly})
	require.NoError(t, err)

	require.Len(t, gc.Geoms(), 1)
	assert.Equal(t, SRID, gc.Geoms()[0].SRID())
}

func TestNormalizeCollection(t *testing.T) {
	members := []geom.T{
		geom.NewPointFlat(geom.XY, []float64{1, 2}),
		geom.NewPolygonFlat(geom.XY, []float64{0, 0, 1, 0, 1, 1, 0, 1, 0, 0}, []int{10}),
	}

	gc, err := Normalize(Collection{Geoms: members})
	require.NoError(t, err)

	require.Len(t, gc.Geoms(), 2)
	for _, g := range gc.Geoms() {
		assert.Equal(t, SRID, g.SRID())
	}
}

func TestNormalizeRejectsForeignSRID(t *testing.T) {
	pt := geom.NewPointFlat(geom.XY, []float64{1, 2}).SetSRID(3857)

	_, err := Normalize(Shape{Geom: pt})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "refusing to re-tag")
}

func TestNormalizeRejectsUnsupportedShape(t *testing.T) {
	ls := geom.NewLineStringFlat(geom.XY, []float64{0, 0, 1, 1})

	_, err := Normalize(Shape{Geom: ls})
	assert.ErrorIs(t, err, ErrUnsupportedLocation)
}

func TestNormalizeRejectsNilShape(t *testing.T) {
	_, err := Normalize(Shape{})
	assert.ErrorIs(t, err, ErrUnsupportedLocation)
}
