// Package grid implements a sparse, hash-indexed uniform grid over 2-D
// space, used to answer approximate nearest-point queries cheaply: "what is
// stored near this point" without scanning every stored entry.
//
// It stores arbitrary values keyed by a geom.Point. Two entries at
// Euclidean distance no more than the grid's cell size are always mutually
// discoverable through GetNearby, because GetNearby always looks at the
// full 3x3 neighborhood of cells around the query point.
package grid

import "github.com/printpath/pathcore/geom"

// DefaultCellSize is the bucket size used by the monotonic path orderer, in
// micrometers: 2,000,000 µ (2 m).
const DefaultCellSize int64 = 2_000_000

// cell identifies one bucket of the grid.
type cell struct {
	cx, cy int64
}

// Entry is one stored (point, value) pair, as returned by GetNearby.
type Entry[T any] struct {
	Point geom.Point
	Value T
}

// Grid is a sparse bucket grid with a fixed cell size. The zero value is not
// usable; construct one with New.
type Grid[T any] struct {
	cellSize int64
	buckets  map[cell][]Entry[T]
}

// New creates a Grid with the given cell size, in the same units as the
// points that will be inserted (micrometers for this module).
func New[T any](cellSize int64) *Grid[T] {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &Grid[T]{
		cellSize: cellSize,
		buckets:  make(map[cell][]Entry[T]),
	}
}

func (g *Grid[T]) cellOf(p geom.Point) cell {
	return cell{floorDiv(p.X, g.cellSize), floorDiv(p.Y, g.cellSize)}
}

// floorDiv computes floor(a/b) for positive b, including for negative a,
// so that cells tile the plane symmetrically around the origin.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Insert adds value at point to the grid.
func (g *Grid[T]) Insert(point geom.Point, value T) {
	c := g.cellOf(point)
	g.buckets[c] = append(g.buckets[c], Entry[T]{Point: point, Value: value})
}

// GetNearby returns every entry stored in the 9-cell neighborhood (the cell
// containing point, plus its 8 neighbors) of point's cell. It performs no
// distance filtering itself: any entry within the grid's cell size of point
// is guaranteed to be among the results, but so are entries further away
// that merely share the neighborhood. Callers that need a hard radius must
// filter the results by geom.DistSize2.
func (g *Grid[T]) GetNearby(point geom.Point) []Entry[T] {
	c := g.cellOf(point)
	var result []Entry[T]
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			if bucket, ok := g.buckets[cell{c.cx + dx, c.cy + dy}]; ok {
				result = append(result, bucket...)
			}
		}
	}
	return result
}
