package spatial

import (
	"math"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"

	"github.com/sells-group/languoid-cli/internal/languoid"
)

// Filter selects catalog nodes whose point lies strictly within bufferKM
// kilometers of the query collection. Query members and node points are
// projected into a locally chosen UTM zone and the dilated containment test
// runs in planar meters, so the buffer is metrically accurate near the
// query. Nodes without a point are never selected. The result is a
// deduplicated id set; it may be empty.
func Filter(query *geom.GeometryCollection, bufferKM float64, table *languoid.Table) (map[string]struct{}, error) {
	ids := make(map[string]struct{})
	if query == nil || len(query.Geoms()) == 0 {
		return ids, nil
	}
	if bufferKM < 0 {
		return nil, eris.Errorf("spatial: negative buffer %f km", bufferKM)
	}

	proj := ProjectionFor(query)
	members, err := projectMembers(proj, query)
	if err != nil {
		return nil, err
	}

	bufferM := bufferKM * 1000
	for _, n := range table.Nodes() {
		if !n.HasPoint() {
			continue
		}
		px, py := proj.Forward(n.Point.X(), n.Point.Y())
		p := geom.Coord{px, py}

		for _, m := range members {
			if m.distance(p) < bufferM {
				ids[n.ID] = struct{}{}
				break
			}
		}
	}

	return ids, nil
}

// planarMember is one projected query geometry: either a bare point or a
// set of polygons, each polygon a list of rings (exterior first).
type planarMember struct {
	point    geom.Coord
	isPoint  bool
	polygons [][][]float64
}

// distance returns the planar distance from p to the member; zero when p is
// inside a polygon.
func (m planarMember) distance(p geom.Coord) float64 {
	if m.isPoint {
		return math.Hypot(p[0]-m.point[0], p[1]-m.point[1])
	}

	min := math.Inf(1)
	for _, rings := range m.polygons {
		if len(rings) == 0 {
			continue
		}
		if pointInPolygon(p, rings) {
			return 0
		}
		for _, ring := range rings {
			if d := xy.DistanceFromPointToLineString(geom.XY, p, ring); d < min {
				min = d
			}
		}
	}
	return min
}

// pointInPolygon tests the exterior ring and subtracts holes.
func pointInPolygon(p geom.Coord, rings [][]float64) bool {
	if !xy.IsPointInRing(geom.XY, p, rings[0]) {
		return false
	}
	for _, hole := range rings[1:] {
		if xy.IsPointInRing(geom.XY, p, hole) {
			return false
		}
	}
	return true
}

func projectMembers(proj Projection, gc *geom.GeometryCollection) ([]planarMember, error) {
	members := make([]planarMember, 0, len(gc.Geoms()))
	for _, g := range gc.Geoms() {
		switch s := g.(type) {
		case *geom.Point:
			x, y := proj.Forward(s.X(), s.Y())
			members = append(members, planarMember{point: geom.Coord{x, y}, isPoint: true})

		case *geom.Polygon:
			members = append(members, planarMember{polygons: [][][]float64{projectPolygon(proj, s)}})

		case *geom.MultiPolygon:
			polys := make([][][]float64, 0, s.NumPolygons())
			for i := 0; i < s.NumPolygons(); i++ {
				polys = append(polys, projectPolygon(proj, s.Polygon(i)))
			}
			members = append(members, planarMember{polygons: polys})

		default:
			return nil, eris.Errorf("spatial: unsupported query geometry %T", g)
		}
	}
	return members, nil
}

// projectPolygon projects each ring into planar coordinates, closing open
// rings so boundary distance covers the final segment.
func projectPolygon(proj Projection, poly *geom.Polygon) [][]float64 {
	rings := make([][]float64, 0, poly.NumLinearRings())
	for i := 0; i < poly.NumLinearRings(); i++ {
		flat := poly.LinearRing(i).FlatCoords()
		stride := poly.Stride()

		ring := make([]float64, 0, len(flat))
		for j := 0; j+1 < len(flat); j += stride {
			x, y := proj.Forward(flat[j], flat[j+1])
			ring = append(ring, x, y)
		}
		if len(ring) >= 4 && (ring[0] != ring[len(ring)-2] || ring[1] != ring[len(ring)-1]) {
			ring = append(ring, ring[0], ring[1])
		}
		rings = append(rings, ring)
	}
	return rings
}
