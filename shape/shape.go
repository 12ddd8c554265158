// Package shape implements the boundary abstraction shared by the
// monotonic path orderer and the combing planner: closed polygons grouped
// into a possibly multiply-connected Shape, with offsetting, boolean union,
// point-containment and nearest-boundary queries.
//
// spec.md treats these operations as the responsibility of a "geometry
// collaborator" (§6) rather than core algorithm logic. Here that
// collaborator is github.com/ctessum/go.clipper, a fixed-point Go port of
// the Clipper polygon-clipping library, the same family of algorithm
// CuraEngine itself uses for offsetting and boolean operations.
package shape

import (
	clipper "github.com/ctessum/go.clipper"

	"github.com/printpath/pathcore/geom"
)

// Polygon is a closed loop of vertices; the first and last vertex are
// logically connected, and the start vertex is free to choose (spec.md §3).
type Polygon []geom.Point

// Shape is a set of Polygons representing a possibly multiply-connected
// region: an outer boundary plus zero or more holes.
type Shape struct {
	Polygons []Polygon
}

// NewShape builds a Shape from the given polygons.
func NewShape(polygons ...Polygon) Shape {
	return Shape{Polygons: append([]Polygon(nil), polygons...)}
}

// Empty reports whether the shape has no polygons, or only degenerate
// (fewer than 3 vertices) ones.
func (s Shape) Empty() bool {
	for _, p := range s.Polygons {
		if len(p) >= 3 {
			return false
		}
	}
	return true
}

func toClipperPath(p Polygon) clipper.Path {
	path := make(clipper.Path, 0, len(p))
	for _, v := range p {
		path = append(path, &clipper.IntPoint{X: clipper.CInt(v.X), Y: clipper.CInt(v.Y)})
	}
	return path
}

func fromClipperPath(path clipper.Path) Polygon {
	poly := make(Polygon, 0, len(path))
	for _, v := range path {
		poly = append(poly, geom.Point{X: int64(v.X), Y: int64(v.Y)})
	}
	return poly
}

func (s Shape) toClipperPaths() clipper.Paths {
	paths := make(clipper.Paths, 0, len(s.Polygons))
	for _, p := range s.Polygons {
		if len(p) >= 3 {
			paths = append(paths, toClipperPath(p))
		}
	}
	return paths
}

func fromClipperPaths(paths clipper.Paths) Shape {
	s := Shape{Polygons: make([]Polygon, 0, len(paths))}
	for _, p := range paths {
		s.Polygons = append(s.Polygons, fromClipperPath(p))
	}
	return s
}

// Offset insets (delta < 0) or outsets (delta > 0) every polygon of the
// shape by delta micrometers, mitering corners. Offsetting a Shape to
// emptiness (BoundaryOffsetEmpty in spec.md §7) simply yields a Shape with
// no polygons; callers check Empty() to detect it.
func (s Shape) Offset(delta int64) Shape {
	if s.Empty() || delta == 0 {
		return s
	}
	co := clipper.NewClipperOffset()
	co.AddPaths(s.toClipperPaths(), clipper.JtMiter, clipper.EtClosedPolygon)
	solution := co.Execute(float64(delta))
	return fromClipperPaths(solution)
}

// Union computes the union of s and other.
func (s Shape) Union(other Shape) Shape {
	c := clipper.NewClipper(clipper.IoNone)
	c.AddPaths(s.toClipperPaths(), clipper.PtSubject, true)
	c.AddPaths(other.toClipperPaths(), clipper.PtSubject, true)
	solution, _ := c.Execute1(clipper.CtUnion, clipper.PftNonZero, clipper.PftNonZero)
	return fromClipperPaths(solution)
}

// UnionAll unions every shape in shapes into a single Shape.
func UnionAll(shapes []Shape) Shape {
	if len(shapes) == 0 {
		return Shape{}
	}
	result := shapes[0]
	for _, s := range shapes[1:] {
		result = result.Union(s)
	}
	return result
}

// Contains reports whether point lies within the material of the shape,
// counting a point on the boundary itself as contained. This treats
// Shape.Polygons as an outer/hole nesting: a point contained by an odd
// number of polygons is inside the material, matching the standard
// even-odd rule for a polygon-with-holes representation.
func (s Shape) Contains(point geom.Point) bool {
	pt := &clipper.IntPoint{X: clipper.CInt(point.X), Y: clipper.CInt(point.Y)}
	inside := false
	for _, p := range s.Polygons {
		if len(p) < 3 {
			continue
		}
		switch clipper.PointInPolygon(pt, toClipperPath(p)) {
		case -1:
			return true
		case 1:
			inside = !inside
		}
	}
	return inside
}

// Area returns the signed combined area of the shape's polygons, in square
// micrometers. Outer polygons contribute positive area, holes negative,
// following Clipper's orientation convention.
func (s Shape) Area() int64 {
	return int64(clipper.AreaCombined(s.toClipperPaths()))
}
