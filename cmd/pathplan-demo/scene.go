package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/printpath/pathcore/geom"
)

// scene is the on-disk JSON shape cmd/pathplan-demo reads. The core packages
// never see this type; main.go converts it into pathorder/comb calls.
type scene struct {
	Polygons  []namedPath `json:"polygons"`
	Polylines []namedPath `json:"polylines"`

	MonotonicDirection  float64 `json:"monotonic_direction"`
	MaxAdjacentDistance int64   `json:"max_adjacent_distance"`
	StartPoint          [2]int64 `json:"start_point"`

	Travel *travelRequest `json:"travel,omitempty"`
}

type namedPath struct {
	ID     string     `json:"id"`
	Points [][2]int64 `json:"points"`
}

// travelRequest describes one combing move plus the part geometry it must be
// planned against. InnerBoundary stands in for the two nested boundaries
// Comb.New wants (boundary_inside_minimum/optimal); this demo uses it as the
// minimum one and offsets it inward by OffsetFromOutlines to get the optimal
// one, rather than asking the scene file to supply both.
type travelRequest struct {
	InnerBoundary []namedPath `json:"inner_boundary"`
	Start         [2]int64    `json:"start"`
	End           [2]int64    `json:"end"`

	OffsetFromOutlines  int64 `json:"offset_from_outlines"`
	TravelAvoidDistance int64 `json:"travel_avoid_distance"`
	MoveInsideDistance  int64 `json:"move_inside_distance"`
	MaxCrossingDist     int64 `json:"max_crossing_dist"`
}

func (p namedPath) vertices() []geom.Point {
	out := make([]geom.Point, len(p.Points))
	for i, xy := range p.Points {
		out[i] = geom.Point{X: xy[0], Y: xy[1]}
	}
	return out
}

func loadScene(path string) (*scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene %q: %w", path, err)
	}
	var s scene
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scene %q: %w", path, err)
	}
	return &s, nil
}
