package geometry

import (
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
)

// ErrUnsupportedLocation reports a location input outside the closed union.
var ErrUnsupportedLocation = eris.New("geometry: unsupported location input")

// Normalize converts a Location into a geometry collection with every member
// tagged with the reference SRID. Untagged members are assigned the SRID;
// members carrying a different SRID are rejected rather than silently
// re-tagged, which would mis-project them.
func Normalize(loc Location) (*geom.GeometryCollection, error) {
	gc := geom.NewGeometryCollection()

	switch l := loc.(type) {
	case Coordinate:
		pt := geom.NewPointFlat(geom.XY, []float64{l.Lon, l.Lat}).SetSRID(SRID)
		if err := gc.Push(pt); err != nil {
			return nil, eris.Wrap(err, "geometry: push point")
		}

	case Shape:
		g, err := tagged(l.Geom)
		if err != nil {
			return nil, err
		}
		if err := gc.Push(g); err != nil {
			return nil, eris.Wrap(err, "geometry: push shape")
		}

	case Collection:
		for _, member := range l.Geoms {
			g, err := tagged(member)
			if err != nil {
				return nil, err
			}
			if err := gc.Push(g); err != nil {
				return nil, eris.Wrap(err, "geometry: push collection member")
			}
		}

	default:
		return nil, eris.Wrapf(ErrUnsupportedLocation, "geometry: %T", loc)
	}

	gc.SetSRID(SRID)
	return gc, nil
}

// tagged validates the shape type and ensures the reference SRID tag.
func tagged(g geom.T) (geom.T, error) {
	if g == nil {
		return nil, eris.Wrap(ErrUnsupportedLocation, "geometry: nil shape")
	}
	if srid := g.SRID(); srid != 0 && srid != SRID {
		return nil, eris.Errorf("geometry: shape tagged with SRID %d, refusing to re-tag as %d", srid, SRID)
	}

	switch s := g.(type) {
	case *geom.Point:
		return s.SetSRID(SRID), nil
	case *geom.Polygon:
		return s.SetSRID(SRID), nil
	case *geom.MultiPolygon:
		return s.SetSRID(SRID), nil
	default:
		return nil, eris.Wrapf(ErrUnsupportedLocation, "geometry: shape type %T", g)
	}
}
