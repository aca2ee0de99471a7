// Package geometry normalizes caller-supplied locations into a uniform
// geographic collection in the reference coordinate system.
package geometry

import (
	"github.com/twpayne/go-geom"
)

// SRID is the reference coordinate system (WGS84 longitude/latitude) every
// normalized geometry is tagged with. Raw caller coordinates are by contract
// already expressed in it.
const SRID = 4326

// Location is a closed union over the accepted location inputs. Exactly three
// variants exist: a bare longitude/latitude pair, a single shape, and a
// collection of shapes.
type Location interface {
	isLocation()
}

// Coordinate is a longitude/latitude pair in the reference system.
type Coordinate struct {
	Lon float64
	Lat float64
}

func (Coordinate) isLocation() {}

// Shape wraps a single point, polygon, or multipolygon.
type Shape struct {
	Geom geom.T
}

func (Shape) isLocation() {}

// Collection wraps a set of point/polygon/multipolygon shapes.
type Collection struct {
	Geoms []geom.T
}

func (Collection) isLocation() {}
