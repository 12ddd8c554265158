package pathorder

import (
	"github.com/printpath/pathcore/geom"
	"github.com/printpath/pathcore/grid"
)

// findPolylineString discovers whether polyline is part of a string of
// polylines chained end-to-end by coincident endpoints, and if so returns
// every member of that string in print order, with each member's
// StartVertex/Backwards already fixed. A string of length 1 (no neighbors
// found in either direction) is returned with StartVertex reset back to
// unassigned, since in that case the caller still needs to decide a start
// point the normal way.
func (o *Optimizer[T]) findPolylineString(polyline *Path[T], lineGrid *grid.Grid[*Path[T]]) []*Path[T] {
	if len(polyline.Vertices) == 0 {
		return nil
	}

	result := []*Path[T]{polyline}
	polyline.StartVertex = 0

	firstEndpoint := polyline.front()
	lastEndpoint := polyline.back()

	closeBefore := o.findConnectable(lineGrid, firstEndpoint)
	for closeBefore != nil {
		first := closeBefore.path
		result = append([]*Path[T]{first}, result...)
		farthest := first.farthestEndpointFrom(closeBefore.point)
		first.StartVertex = farthest
		first.Backwards = farthest != 0
		firstEndpoint = first.Vertices[farthest]
		closeBefore = o.findConnectable(lineGrid, firstEndpoint)
	}

	closeAfter := o.findConnectable(lineGrid, lastEndpoint)
	for closeAfter != nil {
		last := closeAfter.path
		result = append(result, last)
		farthest := last.farthestEndpointFrom(closeAfter.point)
		if farthest == 0 {
			last.StartVertex = len(last.Vertices) - 1
		} else {
			last.StartVertex = 0
		}
		last.Backwards = farthest == 0
		lastEndpoint = last.Vertices[farthest]
		closeAfter = o.findConnectable(lineGrid, lastEndpoint)
	}

	firstProjection := o.projection(firstEndpoint)
	lastProjection := o.projection(lastEndpoint)
	if lastProjection < firstProjection {
		reverse(result)
		for _, p := range result {
			if p.StartVertex == 0 {
				p.StartVertex = len(p.Vertices) - 1
			} else {
				p.StartVertex = 0
			}
			p.Backwards = !p.Backwards
		}
	}

	if len(result) == 1 {
		result[0].StartVertex = unassigned
	}
	return result
}

type nearbyCandidate[T any] struct {
	path  *Path[T]
	point geom.Point
}

// findConnectable looks up candidates near endpoint and returns the first
// one that is still unclaimed (StartVertex == unassigned) and genuinely
// close enough to connect to, or nil if none qualifies.
func (o *Optimizer[T]) findConnectable(lineGrid *grid.Grid[*Path[T]], endpoint geom.Point) *nearbyCandidate[T] {
	tolerance2 := o.coincidentPointDistance * o.coincidentPointDistance
	for _, entry := range lineGrid.GetNearby(endpoint) {
		if entry.Value.StartVertex != unassigned {
			continue
		}
		if geom.DistSize2(entry.Point, endpoint) < tolerance2 {
			return &nearbyCandidate[T]{path: entry.Value, point: entry.Point}
		}
	}
	return nil
}

func reverse[T any](s []*Path[T]) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// getOverlappingLines finds every polyline after polylines[fromIdx] in the
// monotonic sort order whose perpendicular projection range overlaps
// polylines[fromIdx]'s, within max_adjacent_distance padding. Because the
// slice is sorted by monotonic projection, once a candidate falls outside
// that padded window every subsequent one does too, so the scan can stop
// early.
func (o *Optimizer[T]) getOverlappingLines(polylines []*Path[T], fromIdx int, perpendicular geom.Vector) []*Path[T] {
	padding := o.maxAdjacentDistance * monotonicVectorResolution
	me := polylines[fromIdx]

	myStartMonotonic := o.projection(me.front())
	myEndMonotonic := o.projection(me.back())
	myFarthestMonotonic := max64(myStartMonotonic, myEndMonotonic) + padding
	myClosestMonotonic := min64(myStartMonotonic, myEndMonotonic) - padding

	myStart := geom.Dot(me.front(), perpendicular)
	myEnd := geom.Dot(me.back(), perpendicular)
	myFarthest := max64(myStart, myEnd) + padding
	myClosest := min64(myStart, myEnd) - padding

	var overlapping []*Path[T]
	for i := fromIdx + 1; i < len(polylines); i++ {
		other := polylines[i]
		theirStartProjection := o.projection(other.front())
		theirEndProjection := o.projection(other.back())
		theirFarthestProjection := max64(theirStartProjection, theirEndProjection)
		theirClosestProjection := min64(theirStartProjection, theirEndProjection)

		if theirClosestProjection > myFarthestMonotonic || myClosestMonotonic > theirFarthestProjection {
			break
		}

		theirStart := geom.Dot(other.front(), perpendicular)
		theirEnd := geom.Dot(other.back(), perpendicular)
		theirFarthest := max64(theirStart, theirEnd)
		theirClosest := min64(theirStart, theirEnd)

		if (myClosest >= theirClosest && myClosest <= theirFarthest) ||
			(myFarthest >= theirClosest && myFarthest <= theirFarthest) ||
			(theirClosest >= myClosest && theirFarthest <= myFarthest) {
			overlapping = append(overlapping, other)
		}
	}
	return overlapping
}
