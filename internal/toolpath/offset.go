package toolpath

import (
	"math"

	"github.com/piwi3910/pathcut/internal/model"
)

// OffsetPolyline displaces every vertex of a polyline by dist along the
// averaged normal of its two adjacent edges. Positive dist moves inward for
// a counter-clockwise loop and outward for a clockwise one. For an open
// polyline the neighbours at the ends
// degenerate to the endpoint itself, which reduces to a one-sided normal.
//
// Self-intersection of the offset at sharp concave corners, or at offsets
// exceeding the local feature size, is not repaired.
func OffsetPolyline(poly model.Polyline, dist float64) []model.Vec2 {
	pts := poly.Points
	n := len(pts)
	if n < 2 {
		out := make([]model.Vec2, n)
		copy(out, pts)
		return out
	}

	result := make([]model.Vec2, 0, n)
	for i := 0; i < n; i++ {
		var prev, next model.Vec2
		if i == 0 {
			if poly.Closed {
				prev = pts[n-1]
			} else {
				prev = pts[0]
			}
		} else {
			prev = pts[i-1]
		}
		if i == n-1 {
			if poly.Closed {
				next = pts[0]
			} else {
				next = pts[n-1]
			}
		} else {
			next = pts[i+1]
		}

		// Average normal of the adjacent edges
		dx1 := pts[i].X - prev.X
		dy1 := pts[i].Y - prev.Y
		dx2 := next.X - pts[i].X
		dy2 := next.Y - pts[i].Y

		nx := -(dy1 + dy2)
		ny := dx1 + dx2
		length := math.Sqrt(nx*nx + ny*ny)
		if length < 1e-10 {
			// Spike vertex: no usable normal, keep the point
			result = append(result, pts[i])
		} else {
			result = append(result, model.Vec2{
				X: pts[i].X + dist*nx/length,
				Y: pts[i].Y + dist*ny/length,
			})
		}
	}
	return result
}
