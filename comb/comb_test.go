package comb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printpath/pathcore/geom"
	"github.com/printpath/pathcore/shape"
)

func square(x0, y0, side int64) shape.Polygon {
	return shape.Polygon{
		{X: x0, Y: y0},
		{X: x0 + side, Y: y0},
		{X: x0 + side, Y: y0 + side},
		{X: x0, Y: y0 + side},
	}
}

type fakeLayer struct {
	outline shape.Shape
}

func (f fakeLayer) PartsOutline(Extruder) shape.Shape { return f.outline }

func TestCalcCombingInsideSinglePart(t *testing.T) {
	part := shape.NewShape(square(0, 0, 10000))
	layer := fakeLayer{outline: part}
	c := New(layer, part, part, 400, 1000, 40)

	result, ok := c.Calc(geom.Point{X: 2000, Y: 2000}, geom.Point{X: 8000, Y: 8000}, Options{
		Train:           0,
		StartInside:     true,
		EndInside:       true,
		MaxCrossingDist: 50000,
	})

	require.True(t, ok)
	require.Len(t, result.Paths, 1)
	path := result.Paths[0]
	require.Len(t, path, 2)
	assert.Equal(t, geom.Point{X: 2000, Y: 2000}, path[0])
	assert.Equal(t, geom.Point{X: 8000, Y: 8000}, path[len(path)-1])
}

func TestCalcCombingAcrossTwoParts(t *testing.T) {
	partA := square(-2500, -2500, 5000)
	partB := square(17500, -2500, 5000)
	innerShape := shape.NewShape(partA, partB)
	layer := fakeLayer{outline: innerShape}
	c := New(layer, innerShape, innerShape, 400, 1000, 40)

	result, ok := c.Calc(geom.Point{X: 0, Y: 0}, geom.Point{X: 20000, Y: 0}, Options{
		Train:           0,
		StartInside:     true,
		EndInside:       true,
		MaxCrossingDist: 50000,
	})

	require.True(t, ok)
	// Both endpoints are well inside their own part, so the assembled path
	// is: inside leg, inside->outside hop, outside leg, outside->inside hop,
	// inside leg (spec.md §4.4.3 step 4).
	require.Len(t, result.Paths, 5)

	maxCrossingDist2 := int64(50000 * 50000)
	startHop := result.Paths[1]
	endHop := result.Paths[3]
	require.Len(t, startHop, 2)
	require.Len(t, endHop, 2)
	assert.LessOrEqual(t, geom.DistSize2(startHop[0], startHop[1]), maxCrossingDist2)
	assert.LessOrEqual(t, geom.DistSize2(endHop[0], endHop[1]), maxCrossingDist2)
}

func TestCalcFailsWhenCrossingDistanceTooSmall(t *testing.T) {
	partA := square(-2500, -2500, 5000)
	partB := square(17500, -2500, 5000)
	innerShape := shape.NewShape(partA, partB)
	layer := fakeLayer{outline: innerShape}
	c := New(layer, innerShape, innerShape, 400, 1000, 40)

	_, ok := c.Calc(geom.Point{X: 0, Y: 0}, geom.Point{X: 20000, Y: 0}, Options{
		Train:           0,
		StartInside:     true,
		EndInside:       true,
		MaxCrossingDist: 1, // impossibly tight.
	})

	assert.False(t, ok)
}

func TestCalcIsIdempotentForTheSameInputs(t *testing.T) {
	part := shape.NewShape(square(0, 0, 10000))
	layer := fakeLayer{outline: part}
	c := New(layer, part, part, 400, 1000, 40)

	opts := Options{Train: 0, StartInside: true, EndInside: true, MaxCrossingDist: 50000}
	first, ok1 := c.Calc(geom.Point{X: 1000, Y: 1000}, geom.Point{X: 9000, Y: 9000}, opts)
	second, ok2 := c.Calc(geom.Point{X: 1000, Y: 1000}, geom.Point{X: 9000, Y: 9000}, opts)

	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, first, second)
}

func TestCalcOutsideBoundaryIsCachedPerExtruder(t *testing.T) {
	part := shape.NewShape(square(0, 0, 10000))
	layer := fakeLayer{outline: part}
	c := New(layer, part, part, 400, 1000, 40)

	first := c.getBoundaryOutside(0)
	second := c.getBoundaryOutside(0)
	assert.Equal(t, first, second)
	assert.Contains(t, c.boundaryOutside, Extruder(0), "first call should store the boundary in the per-extruder cache")
}

func TestCrossesOtherPartDetectsBlockingModel(t *testing.T) {
	model := shape.NewShape(square(0, 0, 2000))
	crosses := crossesOtherPart(geom.Point{X: -1000, Y: 1000}, geom.Point{X: 3000, Y: 1000}, model, nil)
	assert.True(t, crosses)
}

func TestCrossesOtherPartIgnoresClearPath(t *testing.T) {
	model := shape.NewShape(square(0, 0, 2000))
	crosses := crossesOtherPart(geom.Point{X: -1000, Y: 10000}, geom.Point{X: 3000, Y: 10000}, model, nil)
	assert.False(t, crosses)
}

// TestCalcFailsWhenObstaclePartBlocksOnlyRoute builds a small printed part
// sitting in the courtyard of a picture-frame-shaped third part, with a
// courtyard margin narrower than the travel-avoid distance: there is no
// point near the small part that keeps clear of both it and the frame, so
// reaching the outside band is only possible by crossing the frame's own
// model boundary. FailOnUnavoidableObstacles must reject that route.
func TestCalcFailsWhenObstaclePartBlocksOnlyRoute(t *testing.T) {
	part := square(0, 0, 2000)
	frameHole := shape.Polygon{ // clockwise, so it reads as a hole once wound opposite the outer.
		{X: -300, Y: -300},
		{X: -300, Y: 2300},
		{X: 2300, Y: 2300},
		{X: 2300, Y: -300},
	}
	frameOuter := square(-3300, -3300, 8600)

	outline := shape.NewShape(part, frameOuter, frameHole)
	innerShape := shape.NewShape(part)
	layer := fakeLayer{outline: outline}
	c := New(layer, innerShape, innerShape, 400, 500, 40)

	_, ok := c.Calc(geom.Point{X: 1000, Y: 1000}, geom.Point{X: 100000, Y: 1000}, Options{
		Train:                      0,
		StartInside:                true,
		EndInside:                  false,
		MaxCrossingDist:            50000,
		FailOnUnavoidableObstacles: true,
	})

	assert.False(t, ok, "the only way out of the courtyard is through the blocking frame")
}

// TestCalcUsesMinimumBoundaryAndNudgesPathInside forces the start point to
// classify only against boundary_inside_minimum (it sits too far from
// boundary_inside_optimal to snap there), so the inside leg is routed
// against the looser minimum boundary and then nudged back toward optimal
// by moveCombPathInside.
func TestCalcUsesMinimumBoundaryAndNudgesPathInside(t *testing.T) {
	partAOuter := square(-2500, -2500, 5000)
	partBOuter := square(17500, -2500, 5000)
	outline := shape.NewShape(partAOuter, partBOuter)
	layer := fakeLayer{outline: outline}

	innerOptimalA := square(-2050, -2050, 4100)
	innerMinimumA := square(-2400, -2400, 4800)
	innerOptimalB := square(17950, -2050, 4100)
	innerMinimumB := square(17600, -2400, 4800)
	innerMinimum := shape.NewShape(innerMinimumA, innerMinimumB)
	innerOptimal := shape.NewShape(innerOptimalA, innerOptimalB)

	c := New(layer, innerMinimum, innerOptimal, 400, 1000, 100)

	start := geom.Point{X: -2390, Y: -2390}
	end := geom.Point{X: 20000, Y: 0}
	result, ok := c.Calc(start, end, Options{
		Train:           0,
		StartInside:     true,
		EndInside:       true,
		MaxCrossingDist: 50000,
	})

	require.True(t, ok)
	require.Len(t, result.Paths, 5)

	startLeg := result.Paths[0]
	require.Len(t, startLeg, 2)
	// start is too far from boundary_inside_optimal to move, so it passes
	// through moveCombPathInside untouched.
	assert.Equal(t, start, startLeg[0])
	// the far end of the leg sits on boundary_inside_minimum, close enough
	// to boundary_inside_optimal's matching edge to get nudged inward by
	// moveInsideDistance.
	assert.Equal(t, geom.Point{X: 1950, Y: 0}, startLeg[1])
}
