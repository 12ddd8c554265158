package shape

import (
	"math"
	"sort"

	"github.com/printpath/pathcore/geom"
)

// Crossing is one intersection of a straight segment with a Shape's
// boundary, as produced by LinePolygonsCrossings.
type Crossing struct {
	Point       geom.Point
	PolyIndex   int
	VertexIndex int
	T           float64 // parametric position along the query segment, 0..1.
}

// LinePolygonsCrossings returns every point at which the segment from a to
// b crosses the boundary of s, ordered from a to b.
func LinePolygonsCrossings(a, b geom.Point, s Shape) []Crossing {
	var out []Crossing
	abx, aby := float64(b.X-a.X), float64(b.Y-a.Y)
	denomAB := abx*abx + aby*aby
	if denomAB == 0 {
		return out
	}
	for pi, poly := range s.Polygons {
		n := len(poly)
		if n < 2 {
			continue
		}
		for vi := 0; vi < n; vi++ {
			c := poly[vi]
			d := poly[(vi+1)%n]
			if t, u, ok := segmentIntersection(a, b, c, d); ok && u >= 0 && u <= 1 {
				pt := geom.Point{
					X: a.X + int64(t*abx),
					Y: a.Y + int64(t*aby),
				}
				out = append(out, Crossing{Point: pt, PolyIndex: pi, VertexIndex: vi, T: t})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].T < out[j].T })
	return out
}

// segmentIntersection solves for the intersection of segment a-b and
// segment c-d, returning the parametric position t along a-b and u along
// c-d. ok is false when the segments are parallel or don't cross within
// [0,1] on either parameter.
func segmentIntersection(a, b, c, d geom.Point) (t, u float64, ok bool) {
	x1, y1 := float64(a.X), float64(a.Y)
	x2, y2 := float64(b.X), float64(b.Y)
	x3, y3 := float64(c.X), float64(c.Y)
	x4, y4 := float64(d.X), float64(d.Y)

	denom := (x2-x1)*(y4-y3) - (y2-y1)*(x4-x3)
	if denom == 0 {
		return 0, 0, false
	}
	t = ((x3-x1)*(y4-y3) - (y3-y1)*(x4-x3)) / denom
	u = ((x3-x1)*(y2-y1) - (y3-y1)*(x2-x1)) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return 0, 0, false
	}
	return t, u, true
}

// HugBoundary returns a polyline that follows the boundary of polygon
// polyIndex of s, starting at entry (assumed to sit on segment
// entryVertex->entryVertex+1) and ending at exit (on exitVertex->exitVertex+1),
// taking whichever direction around the polygon is shorter.
func HugBoundary(s Shape, polyIndex, entryVertex int, entry geom.Point, exitVertex int, exit geom.Point) Polygon {
	poly := s.Polygons[polyIndex]
	n := len(poly)
	if n == 0 || entryVertex == exitVertex {
		// Same edge: the stretch of that edge between entry and exit is the
		// shortest way along the boundary.
		return Polygon{entry, exit}
	}

	forward := Polygon{entry}
	for i := (entryVertex + 1) % n; ; i = (i + 1) % n {
		forward = append(forward, poly[i])
		if i == exitVertex {
			break
		}
	}
	forward = append(forward, exit)

	backward := Polygon{entry}
	for i := entryVertex; ; i = (i - 1 + n) % n {
		backward = append(backward, poly[i])
		if i == (exitVertex+1)%n {
			break
		}
	}
	backward = append(backward, exit)

	if polylineLength(forward) <= polylineLength(backward) {
		return forward
	}
	return backward
}

func polylineLength(p Polygon) float64 {
	var total float64
	for i := 1; i < len(p); i++ {
		total += math.Sqrt(float64(geom.DistSize2(p[i-1], p[i])))
	}
	return total
}
