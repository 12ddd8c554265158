package pathorder

import (
	"math"
	"sort"

	"github.com/printpath/pathcore/geom"
	"github.com/printpath/pathcore/grid"
)

// monotonicVectorResolution is the integer scaling constant applied to the
// direction vector before it's rounded to integer coordinates (spec.md §4.3
// calls it K). It needs to be large enough that rounding doesn't blur the
// direction, but small enough that dot(point, vector) can't overflow int64
// for the coordinate range this module promises to support.
const monotonicVectorResolution = 1000

// DefaultCoincidentPointDistance is the tolerance, in micrometers, within
// which two polyline endpoints are considered coincident for chaining
// (spec.md's E2 scenario uses this exact value).
const DefaultCoincidentPointDistance int64 = 10

// Optimizer orders polygons and polylines so that a chosen monotonic
// direction is respected along chains of adjacent strokes. Construct one
// with New, add paths with AddPolygon/AddPolyline, and call Optimize.
type Optimizer[T any] struct {
	monotonicVector         geom.Vector
	maxAdjacentDistance     int64
	startPoint              geom.Point
	coincidentPointDistance int64

	paths []*Path[T]
}

// New creates an Optimizer. monotonicDirection is in radians; the resulting
// vector rotates clockwise to match the infill generator's convention
// (spec.md §4.3). maxAdjacentDistance is typically one extrusion line
// width.
func New[T any](monotonicDirection float64, maxAdjacentDistance int64, startPoint geom.Point) *Optimizer[T] {
	return &Optimizer[T]{
		monotonicVector: geom.Vector{
			X: int64(-math.Cos(monotonicDirection) * monotonicVectorResolution),
			Y: int64(math.Sin(monotonicDirection) * monotonicVectorResolution),
		},
		maxAdjacentDistance:     maxAdjacentDistance,
		startPoint:              startPoint,
		coincidentPointDistance: DefaultCoincidentPointDistance,
	}
}

// WithCoincidentPointDistance overrides the default chaining tolerance.
func (o *Optimizer[T]) WithCoincidentPointDistance(d int64) *Optimizer[T] {
	o.coincidentPointDistance = d
	return o
}

// AddPolygon adds a closed path. Its vertices are emitted as-is; polygons
// are never reordered relative to each other or assigned a direction by
// this orderer (spec.md §4.3: "Closed polygons are emitted first in their
// original relative order").
func (o *Optimizer[T]) AddPolygon(ref T, vertices []geom.Point) {
	o.paths = append(o.paths, &Path[T]{Ref: ref, Vertices: vertices, IsClosed: true, StartVertex: unassigned})
}

// AddPolyline adds an open path.
func (o *Optimizer[T]) AddPolyline(ref T, vertices []geom.Point) {
	o.paths = append(o.paths, &Path[T]{Ref: ref, Vertices: vertices, IsClosed: false, StartVertex: unassigned})
}

// Optimize computes the emission order and returns it. Closed paths (and
// degenerate or self-coincident ones, see classify) come first, in their
// original relative order; open polylines follow, ordered and assigned a
// start vertex per spec.md §4.3.1.
func (o *Optimizer[T]) Optimize() []Path[T] {
	if len(o.paths) == 0 {
		return nil
	}

	closed, polylines := o.classify()

	reordered := make([]*Path[T], 0, len(o.paths))
	reordered = append(reordered, closed...)

	if len(polylines) > 0 {
		reordered = append(reordered, o.orderPolylines(polylines)...)
	}

	out := make([]Path[T], len(reordered))
	for i, p := range reordered {
		out[i] = *p
	}
	return out
}

// classify partitions paths into closed-or-degenerate (emitted verbatim)
// and genuine open polylines, also folding in two behaviors from the
// original that spec.md documents as edge cases rather than a pipeline
// stage (spec.md §4.3.4, and SPEC_FULL.md §3's detectLoops note): a
// single-vertex "polyline" is treated as closed, and so is any polyline
// whose two endpoints are already coincident.
func (o *Optimizer[T]) classify() (closed, polylines []*Path[T]) {
	for _, p := range o.paths {
		if p.IsClosed || len(p.Vertices) <= 1 || o.isSelfCoincident(p) {
			p.IsClosed = true
			closed = append(closed, p)
			continue
		}
		p.StartVertex = unassigned
		polylines = append(polylines, p)
	}
	return closed, polylines
}

func (o *Optimizer[T]) isSelfCoincident(p *Path[T]) bool {
	if p.IsClosed || len(p.Vertices) < 2 {
		return false
	}
	return geom.DistSize2(p.front(), p.back()) < o.coincidentPointDistance*o.coincidentPointDistance
}

func (o *Optimizer[T]) projection(p geom.Point) int64 {
	return geom.Dot(p, o.monotonicVector)
}

func (o *Optimizer[T]) orderPolylines(polylines []*Path[T]) []*Path[T] {
	sort.SliceStable(polylines, func(i, j int) bool {
		a, b := polylines[i], polylines[j]
		aProj := min64(o.projection(a.front()), o.projection(a.back()))
		bProj := min64(o.projection(b.front()), o.projection(b.back()))
		return aProj < bProj
	})

	lineGrid := grid.New[*Path[T]](2_000_000)
	for _, p := range polylines {
		lineGrid.Insert(p.front(), p)
		lineGrid.Insert(p.back(), p)
	}

	connectedLines := map[*Path[T]]bool{}
	startingLines := map[*Path[T]]bool{}
	connections := map[*Path[T]]*Path[T]{}

	perpendicular := geom.Turn90CCW(o.monotonicVector)

	indexOf := make(map[*Path[T]]int, len(polylines))
	for i, p := range polylines {
		indexOf[p] = i
	}

	// alreadyInString tracks lines whose start vertex has already been fixed
	// by a chain, mirroring the original's "start_vertex_ == size()" check
	// used to skip lines already claimed by a string of polylines.
	alreadyInString := map[*Path[T]]bool{}
	for _, p := range polylines {
		if alreadyInString[p] {
			continue
		}
		chain := o.findPolylineString(p, lineGrid)
		for _, member := range chain {
			alreadyInString[member] = true
		}

		if len(chain) > 1 {
			startingLines[chain[0]] = true
			for i := 0; i < len(chain)-1; i++ {
				connections[chain[i]] = chain[i+1]
				connectedLines[chain[i+1]] = true

				overlapping := o.getOverlappingLines(polylines, indexOf[chain[i]], perpendicular)
				for _, ov := range overlapping {
					if !containsPath(chain, ov) {
						startingLines[ov] = true
						startingLines[chain[i+1]] = true
					}
				}
			}
		} else {
			if !connectedLines[p] {
				startingLines[p] = true
			}
			overlapping := o.getOverlappingLines(polylines, indexOf[p], perpendicular)
			switch len(overlapping) {
			case 0:
				// Handled above: p is a starting line unless already reachable.
			case 1:
				connections[p] = overlapping[0]
				if connectedLines[overlapping[0]] {
					startingLines[overlapping[0]] = true
				} else {
					connectedLines[overlapping[0]] = true
				}
			default:
				for _, ov := range overlapping {
					startingLines[ov] = true
				}
			}
		}
	}

	startList := make([]*Path[T], 0, len(startingLines))
	for p := range startingLines {
		startList = append(startList, p)
	}
	sort.Slice(startList, func(i, j int) bool {
		a, b := startList[i], startList[j]
		aMin, aMax := minMax64(o.projection(a.front()), o.projection(a.back()))
		bMin, bMax := minMax64(o.projection(b.front()), o.projection(b.back()))
		if aMin != bMin {
			return aMin < bMin
		}
		return aMax < bMax
	})

	currentPos := o.startPoint
	var out []*Path[T]
	for _, line := range startList {
		o.optimizeClosestStartPoint(line, &currentPos)
		out = append(out, line)

		checked := map[*Path[T]]*Path[T]{}
		next, ok := connections[line]
		for ok && !startingLines[next] && checked[line] != next {
			checked[line] = next
			line = next
			o.optimizeClosestStartPoint(line, &currentPos)
			out = append(out, line)
			next, ok = connections[line]
		}
	}
	return out
}

func containsPath[T any](haystack []*Path[T], needle *Path[T]) bool {
	for _, p := range haystack {
		if p == needle {
			return true
		}
	}
	return false
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func minMax64(a, b int64) (int64, int64) {
	if a < b {
		return a, b
	}
	return b, a
}

// optimizeClosestStartPoint assigns path's start vertex by proximity to
// currentPos if it wasn't already assigned (by the chain builder), then
// advances currentPos to the path's other endpoint (spec.md §4.3.3).
func (o *Optimizer[T]) optimizeClosestStartPoint(path *Path[T], currentPos *geom.Point) {
	if path.StartVertex == unassigned {
		distStart := geom.DistSize2(*currentPos, path.front())
		distEnd := geom.DistSize2(*currentPos, path.back())
		if distStart < distEnd {
			path.StartVertex = 0
			path.Backwards = false
		} else {
			path.StartVertex = len(path.Vertices) - 1
			path.Backwards = true
		}
	}
	*currentPos = path.Vertices[len(path.Vertices)-1-path.StartVertex]
}
