package pathorder

import (
	"math"
	"testing"

	"github.com/printpath/pathcore/geom"
)

func pt(x, y int64) geom.Point { return geom.Point{X: x, Y: y} }

func TestOptimizeEmitsClosedPathsFirstInOriginalOrder(t *testing.T) {
	o := New[int](0, 400_000, pt(0, 0))
	o.AddPolyline(0, []geom.Point{pt(0, 0), pt(1_000_000, 0)})
	o.AddPolygon(1, []geom.Point{pt(0, 0), pt(0, 1000), pt(1000, 1000), pt(1000, 0)})
	o.AddPolygon(2, []geom.Point{pt(5000, 5000), pt(5000, 6000), pt(6000, 6000)})
	o.AddPolyline(3, []geom.Point{pt(2_000_000, 0), pt(3_000_000, 0)})

	result := o.Optimize()
	if len(result) != 4 {
		t.Fatalf("expected 4 paths, got %d", len(result))
	}
	if !result[0].IsClosed || result[0].Ref != 1 {
		t.Fatalf("expected first path to be polygon 1, got ref=%v closed=%v", result[0].Ref, result[0].IsClosed)
	}
	if !result[1].IsClosed || result[1].Ref != 2 {
		t.Fatalf("expected second path to be polygon 2, got ref=%v closed=%v", result[1].Ref, result[1].IsClosed)
	}
	for _, p := range result[2:] {
		if p.IsClosed {
			t.Fatalf("open paths should not precede any closed path in the tail, got closed ref=%v", p.Ref)
		}
	}
}

func TestOptimizeIsPermutationOfInput(t *testing.T) {
	o := New[string](0.3, 400_000, pt(0, 0))
	o.AddPolyline("a", []geom.Point{pt(0, 0), pt(1_000_000, 500_000)})
	o.AddPolyline("b", []geom.Point{pt(2_000_000, 0), pt(3_000_000, 500_000)})
	o.AddPolygon("c", []geom.Point{pt(0, 0), pt(0, 100), pt(100, 100)})

	result := o.Optimize()
	seen := map[string]bool{}
	for _, p := range result {
		seen[p.Ref] = true
	}
	for _, want := range []string{"a", "b", "c"} {
		if !seen[want] {
			t.Fatalf("expected output to contain ref %q, got %v", want, result)
		}
	}
	if len(result) != 3 {
		t.Fatalf("expected exactly 3 paths, got %d", len(result))
	}
}

func TestOptimizeAssignsValidStartVertexToEveryOpenPath(t *testing.T) {
	o := New[int](0, 400_000, pt(0, 0))
	o.AddPolyline(0, []geom.Point{pt(0, 0), pt(1_000_000, 0), pt(1_000_000, 500_000)})
	o.AddPolyline(1, []geom.Point{pt(5_000_000, 0), pt(6_000_000, 0)})

	for _, p := range o.Optimize() {
		if p.IsClosed {
			continue
		}
		if p.StartVertex != 0 && p.StartVertex != len(p.Vertices)-1 {
			t.Fatalf("ref %v has invalid start vertex %d for %d vertices", p.Ref, p.StartVertex, len(p.Vertices))
		}
	}
}

func TestOptimizeChainsCoincidentPolylinesIntoOneSequence(t *testing.T) {
	o := New[int](0, 400_000, pt(0, 0))
	// Two polylines sharing an endpoint (within the default coincident
	// tolerance) should be printed as one continuous string: second one
	// should start right where the first one ends.
	o.AddPolyline(0, []geom.Point{pt(0, 0), pt(1_000_000, 0)})
	o.AddPolyline(1, []geom.Point{pt(1_000_002, 0), pt(2_000_000, 0)})

	result := o.Optimize()
	if len(result) != 2 {
		t.Fatalf("expected 2 paths, got %d", len(result))
	}
	first, second := result[0], result[1]
	firstEnd := first.Vertices[len(first.Vertices)-1-first.StartVertex]
	secondStart := second.Vertices[second.StartVertex]
	if geom.DistSize2(firstEnd, secondStart) > 100 {
		t.Fatalf("chained polylines should meet at coincident endpoints, got %v and %v", firstEnd, secondStart)
	}
}

func TestOptimizeOrdersIndependentLinesByMonotonicProjection(t *testing.T) {
	// monotonic_vector_ = (-cos(direction), sin(direction)); pick direction =
	// pi so the vector points in +X, matching this test's lines laid out
	// along increasing X.
	o := New[int](math.Pi, 10, pt(0, 0)) // tiny max_adjacent_distance: nothing is "adjacent".
	o.AddPolyline(2, []geom.Point{pt(2_000_000, 0), pt(2_000_000, 100_000)})
	o.AddPolyline(0, []geom.Point{pt(0, 0), pt(0, 100_000)})
	o.AddPolyline(1, []geom.Point{pt(1_000_000, 0), pt(1_000_000, 100_000)})

	result := o.Optimize()
	if len(result) != 3 {
		t.Fatalf("expected 3 paths, got %d", len(result))
	}
	for i, want := range []int{0, 1, 2} {
		if result[i].Ref != want {
			t.Fatalf("expected monotonic order [0,1,2], got refs %v", []int{result[0].Ref, result[1].Ref, result[2].Ref})
		}
	}
}

func TestOptimizeTreatsSingleVertexPolylineAsClosed(t *testing.T) {
	o := New[int](0, 400_000, pt(0, 0))
	o.AddPolyline(0, []geom.Point{pt(500, 500)})
	o.AddPolyline(1, []geom.Point{pt(0, 0), pt(1_000_000, 0)})

	result := o.Optimize()
	if !result[0].IsClosed {
		t.Fatalf("single-vertex path should be classified as closed, got %+v", result[0])
	}
	if result[0].Ref != 0 {
		t.Fatalf("expected the single-vertex path first, got ref %v", result[0].Ref)
	}
}

func TestOptimizeTreatsCoincidentEndpointPolylineAsClosed(t *testing.T) {
	o := New[int](0, 400_000, pt(0, 0))
	loop := []geom.Point{pt(0, 0), pt(1000, 0), pt(1000, 1000), pt(0, 1000), pt(2, 1)}
	o.AddPolyline(0, loop)

	result := o.Optimize()
	if len(result) != 1 || !result[0].IsClosed {
		t.Fatalf("polyline with coincident endpoints should be treated as closed, got %+v", result)
	}
}

func TestOptimizeOnEmptyInputReturnsNil(t *testing.T) {
	o := New[int](0, 400_000, pt(0, 0))
	if result := o.Optimize(); result != nil {
		t.Fatalf("expected nil for empty optimizer, got %v", result)
	}
}
