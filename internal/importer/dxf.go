package importer

import (
	"fmt"
	"math"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/pathcut/internal/model"
)

// dxfChainTol is the endpoint distance below which loose LINE/ARC segments
// are considered connected. DXF drawings are sloppier than sliced meshes, so
// this is far coarser than the slicer's chaining tolerance.
const dxfChainTol = 0.01

// segment is a line segment between two 2D points, used for chaining
// disconnected LINE and ARC entities into polylines.
type segment struct {
	start model.Vec2
	end   model.Vec2
}

// DXFResult holds the polylines recovered from a drawing along with any
// per-entity problems. Errors leave Polylines empty; warnings do not.
type DXFResult struct {
	Polylines []model.Polyline
	Errors    []string
	Warnings  []string
}

// ImportDXF reads a 2D vector drawing. Each LWPOLYLINE becomes a polyline that
// keeps the entity's closed flag (bulge vertices produce interpolated arc
// segments) and each CIRCLE becomes a closed polyline; loose
// LINE and ARC entities are chained by endpoint proximity, yielding closed
// polylines where the chain loops and open ones where it does not.
func ImportDXF(path string) DXFResult {
	result := DXFResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var segments []segment
	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			pts := lwPolylinePoints(e)
			if len(pts) >= 2 {
				result.Polylines = append(result.Polylines, model.NewPolyline(pts, e.Closed))
			} else {
				result.Warnings = append(result.Warnings,
					"Skipped LWPOLYLINE with fewer than 2 vertices")
			}

		case *entity.Circle:
			pts := circlePointsAt(e.Center[0], e.Center[1], e.Radius, 64)
			result.Polylines = append(result.Polylines, model.NewPolyline(pts, true))

		case *entity.Arc:
			pts := arcPointsAt(e.Circle.Center[0], e.Circle.Center[1], e.Circle.Radius,
				e.Angle[0], e.Angle[1], 32)
			if len(pts) >= 2 {
				segments = append(segments, pointsToSegments(pts)...)
			}

		case *entity.Line:
			segments = append(segments, segment{
				start: model.Vec2{X: e.Start[0], Y: e.Start[1]},
				end:   model.Vec2{X: e.End[0], Y: e.End[1]},
			})

		default:
			// Unsupported entity types are silently skipped
		}
	}

	result.Polylines = append(result.Polylines, chainDXFSegments(segments, dxfChainTol)...)

	if len(result.Polylines) == 0 {
		result.Errors = append(result.Errors, "No usable shapes found in DXF file")
	}
	return result
}

// lwPolylinePoints converts an LWPOLYLINE entity to a point sequence.
// Bulge values on vertices produce interpolated arc segments.
func lwPolylinePoints(lw *entity.LwPolyline) []model.Vec2 {
	var pts []model.Vec2

	for i := 0; i < len(lw.Vertices); i++ {
		v := lw.Vertices[i]
		current := model.Vec2{X: v[0], Y: v[1]}

		bulge := 0.0
		if i < len(lw.Bulges) {
			bulge = lw.Bulges[i]
		}

		if math.Abs(bulge) > 1e-9 {
			// This vertex has a bulge: interpolate an arc to the next vertex
			next := lw.Vertices[(i+1)%len(lw.Vertices)]
			arc := bulgeArcPoints(current, model.Vec2{X: next[0], Y: next[1]}, bulge, 32)
			// Add all but the last point (the next vertex is added naturally)
			pts = append(pts, arc[:len(arc)-1]...)
		} else {
			pts = append(pts, current)
		}
	}
	return pts
}

// bulgeArcPoints generates points along an arc defined by two endpoints and a
// DXF bulge factor. The bulge is the tangent of 1/4 the included angle.
func bulgeArcPoints(p1, p2 model.Vec2, bulge float64, numSegments int) []model.Vec2 {
	// Chord midpoint and length
	mx := (p1.X + p2.X) / 2
	my := (p1.Y + p2.Y) / 2
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	chordLen := math.Sqrt(dx*dx + dy*dy)
	if chordLen < 1e-9 {
		return []model.Vec2{p1, p2}
	}

	// Sagitta and radius
	sagitta := math.Abs(bulge) * chordLen / 2
	radius := (chordLen*chordLen/(4*sagitta) + sagitta) / 2

	// Arc center: perpendicular from the chord midpoint
	perpX := -dy / chordLen
	perpY := dx / chordLen
	dist := radius - sagitta
	if bulge < 0 {
		perpX, perpY = -perpX, -perpY
	}
	cx := mx + perpX*dist
	cy := my + perpY*dist

	startAngle := math.Atan2(p1.Y-cy, p1.X-cx)
	endAngle := math.Atan2(p2.Y-cy, p2.X-cx)
	if bulge < 0 {
		// Clockwise arc
		if endAngle > startAngle {
			endAngle -= 2 * math.Pi
		}
	} else {
		// Counter-clockwise arc
		if endAngle < startAngle {
			endAngle += 2 * math.Pi
		}
	}

	pts := make([]model.Vec2, 0, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		t := float64(i) / float64(numSegments)
		angle := startAngle + t*(endAngle-startAngle)
		pts = append(pts, model.Vec2{
			X: cx + radius*math.Cos(angle),
			Y: cy + radius*math.Sin(angle),
		})
	}
	return pts
}

// circlePointsAt approximates a circle as a regular polygon.
func circlePointsAt(cx, cy, r float64, numSegments int) []model.Vec2 {
	pts := make([]model.Vec2, numSegments)
	for i := 0; i < numSegments; i++ {
		angle := 2 * math.Pi * float64(i) / float64(numSegments)
		pts[i] = model.Vec2{
			X: cx + r*math.Cos(angle),
			Y: cy + r*math.Sin(angle),
		}
	}
	return pts
}

// arcPointsAt converts a DXF ARC (center, radius, degree angles) to a series
// of line points.
func arcPointsAt(cx, cy, r, startDeg, endDeg float64, numSegments int) []model.Vec2 {
	startRad := startDeg * math.Pi / 180
	endRad := endDeg * math.Pi / 180
	if endRad <= startRad {
		endRad += 2 * math.Pi
	}

	pts := make([]model.Vec2, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		t := float64(i) / float64(numSegments)
		angle := startRad + t*(endRad-startRad)
		pts[i] = model.Vec2{
			X: cx + r*math.Cos(angle),
			Y: cy + r*math.Sin(angle),
		}
	}
	return pts
}

// pointsToSegments converts a point sequence to a slice of connected segments.
func pointsToSegments(pts []model.Vec2) []segment {
	segs := make([]segment, 0, len(pts)-1)
	for i := 0; i < len(pts)-1; i++ {
		segs = append(segs, segment{start: pts[i], end: pts[i+1]})
	}
	return segs
}

// chainDXFSegments connects individual segments into polylines. tolerance is
// the maximum distance between endpoints to consider them connected.
func chainDXFSegments(segs []segment, tolerance float64) []model.Polyline {
	if len(segs) == 0 {
		return nil
	}

	used := make([]bool, len(segs))
	var polylines []model.Polyline

	for startIdx := range segs {
		if used[startIdx] {
			continue
		}
		chain := []model.Vec2{segs[startIdx].start, segs[startIdx].end}
		used[startIdx] = true

		// Extend the chain until no segment's endpoint meets the tail
		changed := true
		for changed {
			changed = false
			tail := chain[len(chain)-1]

			for i, seg := range segs {
				if used[i] {
					continue
				}
				if model.Dist(tail, seg.start) <= tolerance {
					chain = append(chain, seg.end)
					used[i] = true
					changed = true
					break
				}
				if model.Dist(tail, seg.end) <= tolerance {
					chain = append(chain, seg.start)
					used[i] = true
					changed = true
					break
				}
			}
		}

		closed := len(chain) > 3 && model.Dist(chain[0], chain[len(chain)-1]) <= tolerance
		if closed {
			chain = chain[:len(chain)-1] // drop duplicate closing point
		}
		polylines = append(polylines, model.NewPolyline(chain, closed))
	}
	return polylines
}
