// Package comb implements the combing travel planner: given a start and end
// point on a layer, it produces a sequence of sub-paths that prefer staying
// inside part boundaries, detouring through a safety band around the
// outside of printed parts only when it has no other choice
// (pathPlanning/Comb.h).
package comb

import (
	"github.com/printpath/pathcore/geom"
	"github.com/printpath/pathcore/shape"
)

// OffsetDistToOutside mirrors shape.OffsetDistToOutside: the small nudge
// applied when snapping a point onto a boundary, to disambiguate "on the
// line" from "just crossed it".
const OffsetDistToOutside = shape.OffsetDistToOutside

// maxMoveInsideEnlargeDistance is the extra tolerance (µ) tried against the
// minimum boundary when a point fails to snap inside the optimal one.
const maxMoveInsideEnlargeDistance int64 = 250

// CombPath is one uninterrupted leg of a combing move: either a run of
// boundary-hugging points, or a single straight jump (len 2).
type CombPath []geom.Point

// CombPaths is the full sequence of legs that make up one combing move,
// in travel order.
type CombPaths []CombPath

// Extruder identifies which extruder train's layer-part set a given Comb
// call concerns, used to key the lazy outside/model boundary caches.
type Extruder int

// PartLayer supplies the per-extruder printed-part geometry a Comb instance
// needs to build boundary_outside and model_boundary on demand. Callers
// implement this over whatever per-layer storage they keep; Comb never
// assumes a particular slicer data model (spec.md §4.4.4).
type PartLayer interface {
	// PartsOutline returns the union of every printed part's outline on
	// this layer for the given extruder, in the same units as the
	// boundaries passed to New.
	PartsOutline(train Extruder) shape.Shape
}

// Comb plans collision-avoiding travel moves for a single layer. Construct
// one with New and reuse it across every travel move on that layer: the
// outside/model boundary caches it builds are worth amortizing.
type Comb struct {
	layer PartLayer

	boundaryInsideMinimum shape.Shape
	boundaryInsideOptimal shape.Shape
	locToLineMinimum      *shape.LocToLineGrid
	locToLineOptimal      *shape.LocToLineGrid
	partsMinimum          shape.PartsView
	partsOptimal          shape.PartsView

	offsetFromOutlines  int64
	travelAvoidDistance int64
	moveInsideDistance  int64

	maxMoveInsideDistance2         int64
	maxMoveInsideDistanceEnlarged2 int64

	boundaryOutside  map[Extruder]shape.Shape
	modelBoundary    map[Extruder]shape.Shape
	outsideLocToLine map[Extruder]*shape.LocToLineGrid
	modelLocToLine   map[Extruder]*shape.LocToLineGrid
}

const gridCellSize int64 = 2_000_000

// New builds a Comb for one layer. innerMinimum and innerOptimal are the two
// nested comb boundaries (spec.md §4.4): combing prefers to stay inside
// innerOptimal, falling back to the band between innerMinimum and
// innerOptimal when a point can't quite snap inside the optimal one.
func New(layer PartLayer, innerMinimum, innerOptimal shape.Shape, offsetFromOutlines, travelAvoidDistance, moveInsideDistance int64) *Comb {
	maxMoveInsideDistance2 := offsetFromOutlines * offsetFromOutlines
	enlarged := offsetFromOutlines + maxMoveInsideEnlargeDistance

	return &Comb{
		layer:                 layer,
		boundaryInsideMinimum: innerMinimum,
		boundaryInsideOptimal: innerOptimal,
		locToLineMinimum:      shape.NewLocToLineGrid(innerMinimum, gridCellSize),
		locToLineOptimal:      shape.NewLocToLineGrid(innerOptimal, gridCellSize),
		partsMinimum:          shape.NewPartsView(innerMinimum),
		partsOptimal:          shape.NewPartsView(innerOptimal),

		offsetFromOutlines:             offsetFromOutlines,
		travelAvoidDistance:            travelAvoidDistance,
		moveInsideDistance:             moveInsideDistance,
		maxMoveInsideDistance2:         maxMoveInsideDistance2,
		maxMoveInsideDistanceEnlarged2: enlarged * enlarged,

		boundaryOutside:  map[Extruder]shape.Shape{},
		modelBoundary:    map[Extruder]shape.Shape{},
		outsideLocToLine: map[Extruder]*shape.LocToLineGrid{},
		modelLocToLine:   map[Extruder]*shape.LocToLineGrid{},
	}
}

// getBoundaryOutside returns the cached outward-offset union of all printed
// parts for train, computing and caching it on first use (spec.md §4.4.4).
func (c *Comb) getBoundaryOutside(train Extruder) shape.Shape {
	if s, ok := c.boundaryOutside[train]; ok {
		return s
	}
	model := c.getModelBoundary(train)
	outside := model.Offset(c.travelAvoidDistance)
	c.boundaryOutside[train] = outside
	return outside
}

func (c *Comb) getOutsideLocToLine(train Extruder) *shape.LocToLineGrid {
	if g, ok := c.outsideLocToLine[train]; ok {
		return g
	}
	g := shape.NewLocToLineGrid(c.getBoundaryOutside(train), gridCellSize)
	c.outsideLocToLine[train] = g
	return g
}

// getModelBoundary returns the cached raw (unoffset) outline of every
// printed part for train.
func (c *Comb) getModelBoundary(train Extruder) shape.Shape {
	if s, ok := c.modelBoundary[train]; ok {
		return s
	}
	s := c.layer.PartsOutline(train)
	c.modelBoundary[train] = s
	return s
}

func (c *Comb) getModelBoundaryLocToLine(train Extruder) *shape.LocToLineGrid {
	if g, ok := c.modelLocToLine[train]; ok {
		return g
	}
	g := shape.NewLocToLineGrid(c.getModelBoundary(train), gridCellSize)
	c.modelLocToLine[train] = g
	return g
}

// moveCombPathInside nudges every point of path that lies close to
// boundaryInsideOptimal further into its material by moveInsideDistance,
// matching Comb.h's moveCombPathInside: used when a leg was routed against
// boundary_inside_minimum, to pull it away from the border a bit. Points
// too far from the optimal boundary to be affected (the caller's own
// start/end point, typically) are left untouched.
func (c *Comb) moveCombPathInside(path CombPath) CombPath {
	out := make(CombPath, len(path))
	for i, p := range path {
		if moved, _, ok := shape.MoveInside(c.locToLineOptimal, c.boundaryInsideOptimal, p, c.maxMoveInsideDistance2, c.moveInsideDistance); ok {
			out[i] = moved
		} else {
			out[i] = p
		}
	}
	return out
}
