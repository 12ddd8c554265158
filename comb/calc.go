package comb

import (
	"github.com/printpath/pathcore/geom"
	"github.com/printpath/pathcore/shape"
)

// Result carries everything Calc reports back about one combing attempt.
type Result struct {
	Paths                         CombPaths
	// UnretractBeforeLastTravelMove is set when combing moved the actual
	// travel endpoint (an outer-wall segment is involved), so the G-code
	// writer should unretract before that last move to avoid a blob.
	UnretractBeforeLastTravelMove bool
	// PerformZHops/PerformZHopsOnlyWhenCollide are passed through from
	// Options verbatim, for the G-code writer to act on; this package does
	// not interpret them itself.
	PerformZHops                  bool
	PerformZHopsOnlyWhenCollide   bool
}

// Options bundles Calc's tunables (spec.md §4.4, "Inputs"). PerformZHops and
// PerformZHopsOnlyWhenCollide are carried through to Result for the G-code
// writer's own z-hop decision; this package only plans path geometry, it
// never emits a z-hop itself.
type Options struct {
	Train                       Extruder
	PerformZHops                bool
	PerformZHopsOnlyWhenCollide bool
	// StartInside/EndInside are hints from the caller about whether it
	// expects the corresponding point to already be inside the comb
	// boundary. When false, that endpoint is never probed with moveInside
	// and is treated as outside from the start.
	StartInside                 bool
	EndInside                   bool
	MaxCrossingDist             int64
	FailOnUnavoidableObstacles  bool
}

// Calc plans a combing move from start to end. It returns success=false
// when combing is infeasible; the caller should then fall back to a
// retraction-based straight travel (spec.md §4.4.3, §4.4.5).
func (c *Comb) Calc(start, end geom.Point, opts Options) (Result, bool) {
	startLoc := endpointLocation{point: start, part: -1, crossingPoly: -1}
	if opts.StartInside {
		startLoc = c.classifyEndpoint(start)
	}
	endLoc := endpointLocation{point: end, part: -1, crossingPoly: -1}
	if opts.EndInside {
		endLoc = c.classifyEndpoint(end)
	}

	switch {
	case startLoc.insideAtAll && endLoc.insideAtAll && startLoc.part == endLoc.part:
		return c.sameparthandle(opts, start, end, startLoc)
	default:
		return c.differentPartsOrOutside(opts, start, end, startLoc, endLoc)
	}
}

// sameparthandle implements the SAME_PART_INSIDE state: a single comb path
// from start to end within the part, built by combAroundHoles.
func (c *Comb) sameparthandle(opts Options, start, end geom.Point, startLoc endpointLocation) (Result, bool) {
	pv := c.partsOptimal
	s := c.boundaryInsideOptimal
	if startLoc.usedMinimum {
		pv = c.partsMinimum
		s = c.boundaryInsideMinimum
	}
	partShape := pv.PartShape(s, startLoc.part)
	path := combAroundHoles(partShape, start, end)
	return Result{
		Paths:                       CombPaths{path},
		PerformZHops:                opts.PerformZHops,
		PerformZHopsOnlyWhenCollide: opts.PerformZHopsOnlyWhenCollide,
	}, true
}

// combAroundHoles returns a direct path from start to end. When the straight
// segment crosses the boundary at least twice and its first and last
// crossings lie on the same polygon, the path detours along that polygon's
// boundary between them. When they lie on different polygons, the straight
// segment is returned unchanged and no polygon is routed around.
func combAroundHoles(partShape shape.Shape, start, end geom.Point) CombPath {
	crossings := shape.LinePolygonsCrossings(start, end, partShape)
	if len(crossings) < 2 {
		return CombPath{start, end}
	}
	first, last := crossings[0], crossings[len(crossings)-1]
	if first.PolyIndex != last.PolyIndex {
		// Crosses more than one obstacle polygon; best-effort straight path.
		return CombPath{start, end}
	}
	hug := shape.HugBoundary(partShape, first.PolyIndex, first.VertexIndex, first.Point, last.VertexIndex, last.Point)
	path := CombPath{start}
	path = append(path, hug...)
	path = append(path, end)
	return path
}

// differentPartsOrOutside implements the DIFFERENT_PARTS and NEED_OUTSIDE
// states: build a Crossing on each side, cross through the outside band,
// and assemble the five-segment path (spec.md §4.4.3 steps 3-5).
func (c *Comb) differentPartsOrOutside(opts Options, start, end geom.Point, startLoc, endLoc endpointLocation) (Result, bool) {
	startInOrMid := c.findCrossingInOrMid(startLoc, end)
	endInOrMid := c.findCrossingInOrMid(endLoc, start)

	startOut, ok := c.findOutside(opts.Train, startInOrMid, end, opts.FailOnUnavoidableObstacles)
	if !ok {
		return Result{}, false
	}
	endOut, ok := c.findOutside(opts.Train, endInOrMid, start, opts.FailOnUnavoidableObstacles)
	if !ok {
		return Result{}, false
	}

	maxCrossingDist2 := opts.MaxCrossingDist * opts.MaxCrossingDist
	if geom.DistSize2(startInOrMid, startOut) > maxCrossingDist2 || geom.DistSize2(endInOrMid, endOut) > maxCrossingDist2 {
		return Result{}, false
	}

	var paths CombPaths
	if startLoc.insideAtAll {
		paths = append(paths, c.combInsideLeg(startLoc, start, startInOrMid))
	}
	paths = append(paths, CombPath{startInOrMid, startOut})

	outside := c.getBoundaryOutside(opts.Train)
	paths = append(paths, combAroundHoles(outside, startOut, endOut))

	paths = append(paths, CombPath{endOut, endInOrMid})
	if endLoc.insideAtAll {
		paths = append(paths, c.combInsideLeg(endLoc, endInOrMid, end))
	}

	unretract := !startLoc.insideAtAll || !endLoc.insideAtAll
	return Result{
		Paths:                         paths,
		UnretractBeforeLastTravelMove: unretract,
		PerformZHops:                  opts.PerformZHops,
		PerformZHopsOnlyWhenCollide:   opts.PerformZHopsOnlyWhenCollide,
	}, true
}

func (c *Comb) combInsideLeg(loc endpointLocation, from, to geom.Point) CombPath {
	pv := c.partsOptimal
	s := c.boundaryInsideOptimal
	if loc.usedMinimum {
		pv = c.partsMinimum
		s = c.boundaryInsideMinimum
	}
	partShape := pv.PartShape(s, loc.part)
	path := combAroundHoles(partShape, from, to)
	if loc.usedMinimum {
		path = c.moveCombPathInside(path)
	}
	return path
}
