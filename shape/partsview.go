package shape

import (
	clipper "github.com/ctessum/go.clipper"

	"github.com/printpath/pathcore/geom"
)

// PartsView maps a polygon index to the connected part it belongs to, and
// each part back to the polygon indices it is made of (an outer polygon
// followed by its holes), mirroring CuraEngine's PartsView.
type PartsView struct {
	// Parts[i] lists the polygon indices belonging to part i. Parts[i][0] is
	// the outer polygon of that part, except for a hole with no enclosing
	// outer polygon, which forms a part of its own.
	Parts [][]int
	// PolygonToPart maps a polygon index to the index of the part it
	// belongs to.
	PolygonToPart []int
}

// NewPartsView partitions s into connected parts by nesting: every
// clockwise (hole) polygon is attached to the smallest-area counter
// clockwise (outer) polygon that contains its first vertex. Polygons with
// fewer than 3 vertices are ignored.
func NewPartsView(s Shape) PartsView {
	n := len(s.Polygons)
	areas := make([]float64, n)
	outers := make([]int, 0, n)
	holes := make([]int, 0, n)
	for i, p := range s.Polygons {
		if len(p) < 3 {
			areas[i] = 0
			continue
		}
		a := clipper.Area(toClipperPath(p))
		areas[i] = a
		if a >= 0 {
			outers = append(outers, i)
		} else {
			holes = append(holes, i)
		}
	}

	pv := PartsView{PolygonToPart: make([]int, n)}
	for i := range pv.PolygonToPart {
		pv.PolygonToPart[i] = -1
	}
	for _, oi := range outers {
		partIdx := len(pv.Parts)
		pv.Parts = append(pv.Parts, []int{oi})
		pv.PolygonToPart[oi] = partIdx
	}

	for _, hi := range holes {
		if len(s.Polygons[hi]) == 0 {
			continue
		}
		probe := s.Polygons[hi][0]
		best := -1
		var bestArea float64
		for _, oi := range outers {
			outerOnly := Shape{Polygons: []Polygon{s.Polygons[oi]}}
			if !outerOnly.Contains(probe) {
				continue
			}
			if best == -1 || areas[oi] < bestArea {
				best = oi
				bestArea = areas[oi]
			}
		}
		if best == -1 {
			// No enclosing outer polygon found; keep the hole as its own
			// degenerate part rather than discarding the data.
			partIdx := len(pv.Parts)
			pv.Parts = append(pv.Parts, []int{hi})
			pv.PolygonToPart[hi] = partIdx
			continue
		}
		partIdx := pv.PolygonToPart[best]
		pv.Parts[partIdx] = append(pv.Parts[partIdx], hi)
		pv.PolygonToPart[hi] = partIdx
	}
	return pv
}

// PartShape returns the Shape made up of just the polygons of part i
// (its outer boundary plus its holes).
func (pv PartsView) PartShape(s Shape, part int) Shape {
	out := Shape{}
	for _, idx := range pv.Parts[part] {
		out.Polygons = append(out.Polygons, s.Polygons[idx])
	}
	return out
}

// PartContaining reports which part of s contains point, if any, along with
// the index of that part's outer polygon (Parts[part][0]).
func (pv PartsView) PartContaining(s Shape, point geom.Point) (part int, outerPolygon int, ok bool) {
	for i, polys := range pv.Parts {
		if len(polys) == 0 {
			continue
		}
		if pv.PartShape(s, i).Contains(point) {
			return i, polys[0], true
		}
	}
	return 0, 0, false
}
