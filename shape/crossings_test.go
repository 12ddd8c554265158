package shape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printpath/pathcore/geom"
)

func TestLinePolygonsCrossingsThroughSquare(t *testing.T) {
	s := NewShape(square(0, 0, 10000))
	crossings := LinePolygonsCrossings(geom.Point{X: -5000, Y: 5000}, geom.Point{X: 15000, Y: 5000}, s)

	require.Len(t, crossings, 2)
	assert.Equal(t, int64(0), crossings[0].Point.X)
	assert.Equal(t, int64(10000), crossings[1].Point.X)
}

func TestLinePolygonsCrossingsMissingShape(t *testing.T) {
	s := NewShape(square(0, 0, 10000))
	crossings := LinePolygonsCrossings(geom.Point{X: -5000, Y: 50000}, geom.Point{X: 15000, Y: 50000}, s)
	assert.Empty(t, crossings)
}

func TestHugBoundaryTakesShorterWay(t *testing.T) {
	s := NewShape(square(0, 0, 10000))
	// Entry near the bottom-left corner, exit near the bottom-right corner:
	// going along the bottom edge (vertex 0) is much shorter than the long
	// way around via the top.
	path := HugBoundary(s, 0, 0, geom.Point{X: 1000, Y: 0}, 0, geom.Point{X: 9000, Y: 0})
	assert.Less(t, polylineLength(path), 20000.0)
}
