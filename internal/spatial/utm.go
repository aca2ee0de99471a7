// Package spatial selects catalog nodes within a buffered distance of a
// query geometry using a locally accurate planar projection.
package spatial

import (
	"math"

	"github.com/twpayne/go-geom"
)

// WGS84 ellipsoid and transverse Mercator constants.
const (
	wgs84A     = 6378137.0         // semi-major axis (m)
	wgs84F     = 1 / 298.257223563 // flattening
	utmK0      = 0.9996            // central meridian scale factor
	utmFE      = 500000.0          // false easting (m)
	utmFNSouth = 10000000.0        // false northing, southern hemisphere (m)
)

// Projection is a UTM transverse Mercator projection for one zone, chosen
// locally so buffered distances stay metrically accurate near the query.
type Projection struct {
	Zone  int
	South bool

	lambda0 float64 // central meridian (radians)
}

// ProjectionFor picks the UTM zone containing the centroid of the query
// collection. The choice mirrors an automatic local-CRS estimate rather than
// a single global projection.
func ProjectionFor(gc *geom.GeometryCollection) Projection {
	lon, lat := centroid(gc)
	return projectionAt(lon, lat)
}

func projectionAt(lon, lat float64) Projection {
	zone := int(math.Floor((lon+180)/6)) + 1
	if zone < 1 {
		zone = 1
	}
	if zone > 60 {
		zone = 60
	}
	return Projection{
		Zone:    zone,
		South:   lat < 0,
		lambda0: deg2rad(float64((zone-1)*6 - 180 + 3)),
	}
}

// Forward projects a lon/lat pair (degrees) to planar easting/northing in
// meters using the standard transverse Mercator series.
func (p Projection) Forward(lon, lat float64) (x, y float64) {
	phi := deg2rad(lat)
	lambda := deg2rad(lon)

	e2 := wgs84F * (2 - wgs84F)
	ep2 := e2 / (1 - e2)

	sinPhi := math.Sin(phi)
	cosPhi := math.Cos(phi)
	tanPhi := math.Tan(phi)

	n := wgs84A / math.Sqrt(1-e2*sinPhi*sinPhi)
	t := tanPhi * tanPhi
	c := ep2 * cosPhi * cosPhi
	a := (lambda - p.lambda0) * cosPhi

	m := meridianArc(phi, e2)

	x = utmFE + utmK0*n*(a+
		(1-t+c)*a*a*a/6+
		(5-18*t+t*t+72*c-58*ep2)*math.Pow(a, 5)/120)

	y = utmK0 * (m + n*tanPhi*(a*a/2+
		(5-t+9*c+4*c*c)*math.Pow(a, 4)/24+
		(61-58*t+t*t+600*c-330*ep2)*math.Pow(a, 6)/720))

	if p.South {
		y += utmFNSouth
	}
	return x, y
}

// meridianArc returns the ellipsoidal meridian arc length from the equator.
func meridianArc(phi, e2 float64) float64 {
	e4 := e2 * e2
	e6 := e4 * e2
	return wgs84A * ((1-e2/4-3*e4/64-5*e6/256)*phi -
		(3*e2/8+3*e4/32+45*e6/1024)*math.Sin(2*phi) +
		(15*e4/256+45*e6/1024)*math.Sin(4*phi) -
		(35*e6/3072)*math.Sin(6*phi))
}

// centroid averages all vertex coordinates of the collection. Good enough
// for zone selection; it is never used as a geometric result.
func centroid(gc *geom.GeometryCollection) (lon, lat float64) {
	var sumX, sumY float64
	var count int
	for _, g := range gc.Geoms() {
		flat := g.FlatCoords()
		stride := g.Stride()
		for i := 0; i+1 < len(flat); i += stride {
			sumX += flat[i]
			sumY += flat[i+1]
			count++
		}
	}
	if count == 0 {
		return 0, 0
	}
	return sumX / float64(count), sumY / float64(count)
}

func deg2rad(d float64) float64 { return d * math.Pi / 180 }
