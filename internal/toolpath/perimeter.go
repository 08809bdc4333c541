package toolpath

import "github.com/piwi3910/pathcut/internal/model"

// PerimeterStrategy machines only the outer boundary, in one or more
// concentric passes stepping inward. The outer boundary is taken to be the
// contour with the largest bounding rectangle. With ClimbCut set, each pass
// runs the offset loop in reverse so the cutter rotation opposes the feed.
type PerimeterStrategy struct{}

// Generate produces max(1, PerimeterPasses) toolpaths, ordered outermost
// first: pass 0 is displaced a full tool radius off the boundary and each
// later pass steps inward by one step-over.
func (PerimeterStrategy) Generate(contours []model.Polyline, params model.CutParams) []model.Toolpath {
	outer, ok := largestContour(contours)
	if !ok {
		return nil
	}

	passes := params.PerimeterPasses
	if passes < 1 {
		passes = 1
	}
	radius := params.ToolDiameter / 2.0

	var toolpaths []model.Toolpath
	for k := 0; k < passes; k++ {
		pts := OffsetPolyline(outer, float64(k)*params.StepOver-radius)
		if len(pts) == 0 {
			continue
		}
		if params.ClimbCut {
			reversePoints(pts)
		}

		var tp model.Toolpath
		tp.Rapid(pts[0].X, pts[0].Y, params.SafeZ)
		tp.Cut(pts[0].X, pts[0].Y, params.CutZ)
		for _, pt := range pts[1:] {
			tp.Cut(pt.X, pt.Y, params.CutZ)
		}
		if outer.Closed {
			tp.Cut(pts[0].X, pts[0].Y, params.CutZ)
		}
		last := pts[len(pts)-1]
		tp.Rapid(last.X, last.Y, params.SafeZ)
		toolpaths = append(toolpaths, tp)
	}
	return toolpaths
}

// largestContour picks the contour whose bounding rectangle has the greatest
// area, a heuristic for the outer boundary.
func largestContour(contours []model.Polyline) (model.Polyline, bool) {
	var best model.Polyline
	bestArea := -1.0
	for _, c := range contours {
		b := c.Bounds()
		if b == nil {
			continue
		}
		if area := b.Area(); area > bestArea {
			bestArea = area
			best = c
		}
	}
	return best, bestArea >= 0
}

func reversePoints(pts []model.Vec2) {
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
}
