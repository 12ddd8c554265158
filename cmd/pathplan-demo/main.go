// Command pathplan-demo exercises the path planning core end to end: it
// reads a scene describing polygons/polylines and an optional travel
// request, runs the monotonic orderer and the combing planner, and writes
// an SVG visualization plus a structured log of the decisions made. None of
// this lives in the core packages (geom, grid, shape, pathorder, comb);
// they take no configuration beyond their constructor arguments and never
// log, exactly as spec.md requires of them.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/printpath/pathcore/comb"
	"github.com/printpath/pathcore/geom"
	"github.com/printpath/pathcore/pathorder"
	"github.com/printpath/pathcore/shape"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		scenePath string
		outPath   string
		logLevel  string
	)

	cmd := &cobra.Command{
		Use:   "pathplan-demo",
		Short: "Run the monotonic path orderer and combing planner against a scene file",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(logLevel)
			return run(logger, scenePath, outPath)
		},
	}

	cmd.Flags().StringVarP(&scenePath, "scene", "s", "", "path to the scene JSON file (required)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "pathplan.svg", "path to write the SVG visualization")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	cmd.MarkFlagRequired("scene")

	return cmd
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	return slog.New(handler)
}

func run(logger *slog.Logger, scenePath, outPath string) error {
	s, err := loadScene(scenePath)
	if err != nil {
		return err
	}
	logger.Info("scene loaded", "polygons", len(s.Polygons), "polylines", len(s.Polylines))

	order := orderScene(logger, s)

	var result *comb.Result
	if s.Travel != nil {
		result = planTravel(logger, s)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %q: %w", outPath, err)
	}
	defer f.Close()
	renderScene(f, s, order, result, defaultRenderOpts())
	logger.Info("wrote visualization", "path", outPath)
	return nil
}

func orderScene(logger *slog.Logger, s *scene) []pathorder.Path[string] {
	start := geom.Point{X: s.StartPoint[0], Y: s.StartPoint[1]}
	o := pathorder.New[string](s.MonotonicDirection, s.MaxAdjacentDistance, start)
	for _, p := range s.Polygons {
		o.AddPolygon(p.ID, p.vertices())
	}
	for _, p := range s.Polylines {
		o.AddPolyline(p.ID, p.vertices())
	}

	order := o.Optimize()
	for i, p := range order {
		logger.Debug("ordered path", "index", i, "ref", p.Ref, "closed", p.IsClosed, "startVertex", p.StartVertex, "backwards", p.Backwards)
	}
	logger.Info("monotonic ordering complete", "paths", len(order))
	return order
}

func planTravel(logger *slog.Logger, s *scene) *comb.Result {
	t := s.Travel
	polys := make([]shape.Polygon, len(t.InnerBoundary))
	for i, p := range t.InnerBoundary {
		polys[i] = shape.Polygon(p.vertices())
	}
	minimum := shape.NewShape(polys...)
	optimal := minimum.Offset(-t.OffsetFromOutlines)
	layer := singleExtruderLayer{outline: minimum}

	c := comb.New(layer, minimum, optimal, t.OffsetFromOutlines, t.TravelAvoidDistance, t.MoveInsideDistance)

	start := geom.Point{X: t.Start[0], Y: t.Start[1]}
	end := geom.Point{X: t.End[0], Y: t.End[1]}
	result, ok := c.Calc(start, end, comb.Options{
		StartInside:     true,
		EndInside:       true,
		MaxCrossingDist: t.MaxCrossingDist,
	})
	if !ok {
		logger.Warn("combing infeasible, caller should fall back to a retracted straight travel", "start", start, "end", end)
		return nil
	}
	logger.Info("combing planned", "legs", len(result.Paths), "unretractBeforeLastTravelMove", result.UnretractBeforeLastTravelMove)
	return &result
}
