package comb

import (
	"github.com/printpath/pathcore/geom"
	"github.com/printpath/pathcore/shape"
)

// endpointLocation is the result of classifying one of calc's two input
// points against the inner boundaries (spec.md §4.4.3 step 1).
type endpointLocation struct {
	point        geom.Point // the (possibly snapped) point to route from/to.
	insideAtAll  bool       // true if the point lies inside, or snapped inside, either boundary.
	usedMinimum  bool       // true if it was only placed inside via the enlarged/minimum pass.
	part         int        // index into the relevant PartsView's Parts, or -1.
	crossingPoly int        // index into the boundary's Polygons: the polygon snapped to, or the containing part's outer polygon.
}

// classifyEndpoint implements spec.md §4.4.3 step 1. A point already inside
// boundary_inside_optimal is used as-is; one that's outside but close is
// snapped inward by moveInside; failing that, the same two checks are
// retried against boundary_inside_minimum with an enlarged tolerance.
func (c *Comb) classifyEndpoint(point geom.Point) endpointLocation {
	if loc, ok := c.classifyAgainst(c.boundaryInsideOptimal, c.partsOptimal, c.locToLineOptimal, point, c.maxMoveInsideDistance2, false); ok {
		return loc
	}
	if loc, ok := c.classifyAgainst(c.boundaryInsideMinimum, c.partsMinimum, c.locToLineMinimum, point, c.maxMoveInsideDistanceEnlarged2, true); ok {
		return loc
	}
	return endpointLocation{point: point, insideAtAll: false, part: -1, crossingPoly: -1}
}

func (c *Comb) classifyAgainst(s shape.Shape, pv shape.PartsView, lg *shape.LocToLineGrid, point geom.Point, maxDist2 int64, usedMinimum bool) (endpointLocation, bool) {
	if part, poly, ok := pv.PartContaining(s, point); ok {
		return endpointLocation{point: point, insideAtAll: true, usedMinimum: usedMinimum, part: part, crossingPoly: poly}, true
	}
	if moved, polyIdx, ok := shape.MoveInside(lg, s, point, maxDist2, OffsetDistToOutside); ok {
		return endpointLocation{point: moved, insideAtAll: true, usedMinimum: usedMinimum, part: pv.PolygonToPart[polyIdx], crossingPoly: polyIdx}, true
	}
	return endpointLocation{}, false
}

// findCrossingInOrMid picks the point on the endpoint's own part boundary
// that is closest to closeTo (typically the other endpoint), per
// spec.md §4.4.3 step 3's findCrossingInOrMid. It searches only the part
// the endpoint was classified into, not the whole layer's boundary, since
// the closest segment overall might belong to an unrelated part.
func (c *Comb) findCrossingInOrMid(loc endpointLocation, closeTo geom.Point) geom.Point {
	if !loc.insideAtAll {
		// Not inside anything: in_or_mid sits midway between dest and the
		// outside boundary; approximate with the destination point itself,
		// findOutside will carry it the rest of the way.
		return loc.point
	}
	pv := c.partsOptimal
	s := c.boundaryInsideOptimal
	if loc.usedMinimum {
		pv = c.partsMinimum
		s = c.boundaryInsideMinimum
	}
	partShape := pv.PartShape(s, loc.part)
	lg := shape.NewLocToLineGrid(partShape, gridCellSize)
	if bp, ok := lg.FindClosest(closeTo); ok {
		return bp.Point
	}
	return loc.point
}

// findOutside selects the point on the outside boundary nearest to inOrMid
// as the point to cross to (spec.md §4.4.3 step 3's findOutside). closeTo
// plays no part in the choice: the detour it implies is not weighed. It
// reports false if
// failOnUnavoidableObstacles is set and the only reachable outside point
// would require crossing another printed part's model boundary.
func (c *Comb) findOutside(train Extruder, inOrMid, closeTo geom.Point, failOnUnavoidableObstacles bool) (geom.Point, bool) {
	outsideLg := c.getOutsideLocToLine(train)

	bp, ok := outsideLg.FindClosest(inOrMid)
	if !ok {
		return geom.Point{}, false
	}
	// closeTo breaks ties between near-equidistant candidates in the
	// original; a single nearest candidate suffices for this port.
	out := bp.Point
	if failOnUnavoidableObstacles {
		modelLg := c.getModelBoundaryLocToLine(train)
		model := c.getModelBoundary(train)
		if crossesOtherPart(inOrMid, out, model, modelLg) {
			return geom.Point{}, false
		}
	}
	return out, true
}

// crossesOtherPart reports whether the straight hop a->b passes through the
// interior of model (not merely touching its boundary near the endpoints).
func crossesOtherPart(a, b geom.Point, model shape.Shape, _ *shape.LocToLineGrid) bool {
	crossings := shape.LinePolygonsCrossings(a, b, model)
	return len(crossings) >= 2
}
