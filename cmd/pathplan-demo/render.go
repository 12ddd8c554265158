package main

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/printpath/pathcore/comb"
	"github.com/printpath/pathcore/geom"
	"github.com/printpath/pathcore/pathorder"
)

// renderOpts bounds the drawing to a fixed canvas; µ coordinates are scaled
// down to pixels so a typical part-sized scene fits on screen.
type renderOpts struct {
	width, height int
	scale         float64
}

func defaultRenderOpts() renderOpts {
	return renderOpts{width: 800, height: 800, scale: 0.02}
}

func (o renderOpts) px(p geom.Point) (int, int) {
	// µ's y-axis points up; SVG's points down, so flip it.
	return int(float64(p.X) * o.scale), o.height - int(float64(p.Y)*o.scale)
}

// renderScene draws the input polygons/polylines, the monotonic order as
// a numbered point at each path's chosen start (vertex 0 for paths with no
// assigned start, such as closed ones), and (if present) the
// assembled comb path as a dashed polyline.
func renderScene(w io.Writer, s *scene, order []pathorder.Path[string], result *comb.Result, opts renderOpts) {
	canvas := svg.New(w)
	canvas.Start(opts.width, opts.height)
	canvas.Rect(0, 0, opts.width, opts.height, "fill:white")

	for i, path := range order {
		xs := make([]int, len(path.Vertices))
		ys := make([]int, len(path.Vertices))
		for j, v := range path.Vertices {
			xs[j], ys[j] = opts.px(v)
		}
		style := "fill:none;stroke:black;stroke-width:1"
		if path.IsClosed {
			canvas.Polygon(xs, ys, style)
		} else {
			canvas.Polyline(xs, ys, style)
		}

		startVertex := path.StartVertex
		if startVertex < 0 || startVertex >= len(path.Vertices) {
			startVertex = 0 // closed paths carry no assigned start vertex.
		}
		start := path.Vertices[startVertex]
		sx, sy := opts.px(start)
		canvas.Circle(sx, sy, 4, "fill:red")
		canvas.Text(sx+6, sy-6, fmt.Sprintf("%d", i), "font-size:10px;fill:red")
	}

	if result != nil {
		for _, leg := range result.Paths {
			xs := make([]int, len(leg))
			ys := make([]int, len(leg))
			for j, v := range leg {
				xs[j], ys[j] = opts.px(v)
			}
			canvas.Polyline(xs, ys, "fill:none;stroke:blue;stroke-width:2;stroke-dasharray:6,4")
		}
	}

	canvas.End()
}
