// Package pathorder implements the monotonic path orderer (spec.md §4.3):
// given a bag of polygons and polylines, it produces an ordered traversal
// where adjacent open strokes are printed in a consistent direction
// projected onto a chosen axis, so that the resulting surface looks uniform.
//
// Closed polygons are always emitted first, in the order they were added;
// only open polylines are reordered and have their start vertex chosen.
package pathorder

import "github.com/printpath/pathcore/geom"

// unassigned is the sentinel stored in Path.StartVertex before a start
// vertex has been chosen, matching the original's "start_vertex_ == size()"
// convention (spec.md §9 discusses this trade-off explicitly).
const unassigned = -1

// Path is one polygon or polyline, annotated with how the orderer decided
// to traverse it.
type Path[T any] struct {
	// Ref is the caller-supplied reference to the underlying polygon or
	// polyline (e.g. an index into the caller's own slice, or a pointer).
	// The orderer never looks inside it; Vertices is what it reasons about.
	Ref T

	// Vertices is a borrowed view of the path's vertex data. It must
	// outlive any use of the returned Path (spec.md §5: "the orderer holds
	// non-owning references to external vertex data").
	Vertices []geom.Point

	IsClosed bool

	// StartVertex is an index into Vertices, or unassigned if no start has
	// been chosen yet. For open paths it is always 0 or len(Vertices)-1
	// once assigned.
	StartVertex int
	Backwards   bool
}

func (p *Path[T]) front() geom.Point { return p.Vertices[0] }
func (p *Path[T]) back() geom.Point  { return p.Vertices[len(p.Vertices)-1] }

// farthestEndpointFrom returns the vertex index of whichever endpoint of p
// is farthest from point: 0 or len(Vertices)-1.
func (p *Path[T]) farthestEndpointFrom(point geom.Point) int {
	frontDist := geom.DistSize2(p.front(), point)
	backDist := geom.DistSize2(p.back(), point)
	if frontDist < backDist {
		return len(p.Vertices) - 1
	}
	return 0
}
