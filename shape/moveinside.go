package shape

import (
	"math"

	"github.com/printpath/pathcore/geom"
)

// OffsetDistToOutside is the small constant offset CuraEngine's Comb uses
// to nudge a boundary-snapped point just inside the polygon, so later
// comparisons don't get confused between "exactly on the boundary" and
// "just crossed it" (spec.md §4.4.1).
const OffsetDistToOutside int64 = 40

// inwardNormalUnit returns the unit inward normal of the directed edge a->b.
// Under the standard outer-counter-clockwise / hole-clockwise winding
// convention (the one Shape.Polygons and go.clipper both assume), the
// material of a polygon-with-holes always sits to the left of every
// boundary edge traversed in its stored direction, holes included. So the
// inward normal is simply the 90-degree counter-clockwise rotation of the
// edge direction, with no per-polygon orientation check needed.
func inwardNormalUnit(a, b geom.Point) (float64, float64) {
	dx, dy := float64(b.X-a.X), float64(b.Y-a.Y)
	length := dx*dx + dy*dy
	if length == 0 {
		return 0, 0
	}
	inv := 1.0 / math.Sqrt(length)
	return -dy * inv, dx * inv // Turn90CCW(direction), normalized.
}

// MoveInside projects point onto the closest boundary segment of s (using
// lg for the approximate nearest-segment lookup), then nudges the result
// insetDistance further into the shape's material along that segment's
// inward normal. It reports failure if the boundary is farther than
// maxDist2 (squared) away, or if s has no usable boundary at all.
func MoveInside(lg *LocToLineGrid, s Shape, point geom.Point, maxDist2 int64, insetDistance int64) (geom.Point, int, bool) {
	bp, ok := lg.FindClosest(point)
	if !ok || bp.DistSq > maxDist2 {
		return geom.Point{}, -1, false
	}
	poly := s.Polygons[bp.PolyIndex]
	n := len(poly)
	a := poly[bp.VertexIndex]
	b := poly[(bp.VertexIndex+1)%n]
	nx, ny := inwardNormalUnit(a, b)
	moved := geom.Point{
		X: bp.Point.X + int64(nx*float64(insetDistance)),
		Y: bp.Point.Y + int64(ny*float64(insetDistance)),
	}
	return moved, bp.PolyIndex, true
}
