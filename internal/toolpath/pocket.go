package toolpath

import (
	"sort"

	"github.com/piwi3910/pathcut/internal/model"
)

// PocketStrategy clears the inside of each closed contour with horizontal
// scan lines, inset by the tool radius and traversed in a serpentine order.
type PocketStrategy struct{}

// Generate emits one toolpath per contour that produced any moves. Open
// contours and contours with fewer than three points are skipped.
func (PocketStrategy) Generate(contours []model.Polyline, params model.CutParams) []model.Toolpath {
	var toolpaths []model.Toolpath
	radius := params.ToolDiameter / 2.0
	step := params.StepOver
	if step < 0.1 {
		step = 0.1
	}

	for _, contour := range contours {
		if len(contour.Points) < 3 || !contour.Closed {
			continue
		}
		bounds := contour.Bounds()
		if bounds == nil {
			continue
		}

		var tp model.Toolpath
		forward := true
		for y := bounds.Min.Y + radius; y <= bounds.Max.Y-radius; y += step {
			xs := scanlineIntersect(contour, y)
			sort.Float64s(xs)

			// Pair up crossings; material lies between even/odd pairs
			for i := 0; i+1 < len(xs); i += 2 {
				x0 := xs[i] + radius
				x1 := xs[i+1] - radius
				if x0 >= x1 {
					continue
				}
				startX, endX := x0, x1
				if !forward {
					startX, endX = x1, x0
				}

				tp.Rapid(startX, y, params.SafeZ)
				tp.Cut(startX, y, params.CutZ)
				tp.Cut(endX, y, params.CutZ)
				tp.Rapid(endX, y, params.SafeZ)
			}
			forward = !forward
		}

		if len(tp.Moves) > 0 {
			toolpaths = append(toolpaths, tp)
		}
	}
	return toolpaths
}

// scanlineIntersect finds all X coordinates where the horizontal line at y
// crosses the polyline's edges, including the implicit closing edge. An edge
// counts iff exactly one endpoint lies strictly above the line (half-open
// rule), which keeps vertex-on-scanline cases from being counted twice.
func scanlineIntersect(poly model.Polyline, y float64) []float64 {
	pts := poly.Points
	n := len(pts)
	if n < 2 {
		return nil
	}
	var xs []float64
	for i := 0; i < n; i++ {
		a := pts[i]
		b := pts[(i+1)%n]
		if (a.Y <= y && b.Y > y) || (b.Y <= y && a.Y > y) {
			t := (y - a.Y) / (b.Y - a.Y)
			xs = append(xs, a.X+t*(b.X-a.X))
		}
	}
	return xs
}
