package shape

import (
	"github.com/printpath/pathcore/geom"
	"github.com/printpath/pathcore/grid"
)

// segment is one edge of one polygon of a Shape, kept alongside its
// endpoints so LocToLineGrid entries don't need to dereference back into
// the Shape to do distance math.
type segment struct {
	PolyIndex, VertexIndex int
	A, B                   geom.Point
}

// LocToLineGrid is a uniform grid index mapping query points to the nearby
// boundary segments of a Shape, used to answer "what's the closest boundary
// point to here" without scanning every edge of every polygon.
type LocToLineGrid struct {
	shape    Shape
	g        *grid.Grid[segment]
	segments []segment
}

// NewLocToLineGrid builds a LocToLineGrid over every edge of s, bucketed
// with the given cell size.
func NewLocToLineGrid(s Shape, cellSize int64) *LocToLineGrid {
	g := grid.New[segment](cellSize)
	lg := &LocToLineGrid{shape: s, g: g}
	for pi, poly := range s.Polygons {
		n := len(poly)
		if n < 2 {
			continue
		}
		for vi := 0; vi < n; vi++ {
			a := poly[vi]
			b := poly[(vi+1)%n]
			seg := segment{PolyIndex: pi, VertexIndex: vi, A: a, B: b}
			lg.segments = append(lg.segments, seg)
			g.Insert(a, seg)
			g.Insert(b, seg)
		}
	}
	return lg
}

// BoundaryPoint is one result of a closest-boundary query: the projected
// point itself, which polygon and which edge (by the index of its first
// vertex) it landed on.
type BoundaryPoint struct {
	Point     geom.Point
	PolyIndex int
	VertexIndex int
	DistSq    int64
}

// FindClosest returns the closest point on the shape's boundary to p. It
// first checks the 9-cell neighborhood around p; if that neighborhood holds
// no segments at all (p is far from everything), it falls back to scanning
// every segment, trading speed for the correctness guarantee that a closest
// point is always found whenever the shape has any edges.
func (lg *LocToLineGrid) FindClosest(p geom.Point) (BoundaryPoint, bool) {
	candidates := lg.g.GetNearby(p)
	segs := make([]segment, len(candidates))
	seen := make(map[[2]int]bool, len(candidates))
	segs = segs[:0]
	for _, c := range candidates {
		key := [2]int{c.Value.PolyIndex, c.Value.VertexIndex}
		if seen[key] {
			continue
		}
		seen[key] = true
		segs = append(segs, c.Value)
	}
	if len(segs) == 0 {
		segs = lg.segments
	}
	if len(segs) == 0 {
		return BoundaryPoint{}, false
	}

	best := BoundaryPoint{DistSq: -1}
	for _, s := range segs {
		pt, d2 := geom.ClosestPointOnSegment(p, s.A, s.B)
		if best.DistSq == -1 || d2 < best.DistSq {
			best = BoundaryPoint{Point: pt, PolyIndex: s.PolyIndex, VertexIndex: s.VertexIndex, DistSq: d2}
		}
	}
	return best, true
}
