package toolpath

import "github.com/piwi3910/pathcut/internal/model"

// ContourStrategy follows each contour once, offset by +tool radius (inside a
// counter-clockwise loop, outside a clockwise one; see OffsetPolyline): rapid
// to the first offset vertex at safe height, plunge, follow the
// loop, close it if the contour is closed, retract.
type ContourStrategy struct{}

// Generate produces one toolpath per contour. Contours whose offset comes
// back empty are skipped.
func (ContourStrategy) Generate(contours []model.Polyline, params model.CutParams) []model.Toolpath {
	var toolpaths []model.Toolpath
	radius := params.ToolDiameter / 2.0

	for _, contour := range contours {
		pts := OffsetPolyline(contour, radius)
		if len(pts) == 0 {
			continue
		}

		var tp model.Toolpath
		tp.Rapid(pts[0].X, pts[0].Y, params.SafeZ)
		tp.Cut(pts[0].X, pts[0].Y, params.CutZ)
		for _, pt := range pts[1:] {
			tp.Cut(pt.X, pt.Y, params.CutZ)
		}
		if contour.Closed {
			tp.Cut(pts[0].X, pts[0].Y, params.CutZ)
		}
		last := pts[len(pts)-1]
		tp.Rapid(last.X, last.Y, params.SafeZ)
		toolpaths = append(toolpaths, tp)
	}
	return toolpaths
}
