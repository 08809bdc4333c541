package model

import "math"

// Vec3 represents a 3D coordinate in mm.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Lerp linearly interpolates between a and b by t.
func Lerp(a, b Vec3, t float64) Vec3 {
	return Vec3{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
		Z: a.Z + (b.Z-a.Z)*t,
	}
}

// Vec2 represents a 2D coordinate in mm.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dist returns the Euclidean distance between two 2D points.
func Dist(a, b Vec2) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Triangle is a mesh facet with its stored surface normal. The normal is
// carried through from the input file and used for surface-orientation
// queries; slicing does not require it to match the vertex winding.
type Triangle struct {
	Normal Vec3 `json:"normal"`
	V0     Vec3 `json:"v0"`
	V1     Vec3 `json:"v1"`
	V2     Vec3 `json:"v2"`
}

// MinZ returns the lowest Z of the triangle's vertices.
func (t Triangle) MinZ() float64 {
	return math.Min(t.V0.Z, math.Min(t.V1.Z, t.V2.Z))
}

// MaxZ returns the highest Z of the triangle's vertices.
func (t Triangle) MaxZ() float64 {
	return math.Max(t.V0.Z, math.Max(t.V1.Z, t.V2.Z))
}

// BoundingBox is an axis-aligned box with inclusive min and max corners.
type BoundingBox struct {
	Min Vec3 `json:"min"`
	Max Vec3 `json:"max"`
}

// BoundsFromTriangles computes the bounding box of a triangle set.
// Returns nil for an empty set.
func BoundsFromTriangles(tris []Triangle) *BoundingBox {
	if len(tris) == 0 {
		return nil
	}
	b := BoundingBox{
		Min: Vec3{X: math.MaxFloat64, Y: math.MaxFloat64, Z: math.MaxFloat64},
		Max: Vec3{X: -math.MaxFloat64, Y: -math.MaxFloat64, Z: -math.MaxFloat64},
	}
	for _, t := range tris {
		for _, v := range [3]Vec3{t.V0, t.V1, t.V2} {
			b.Min.X = math.Min(b.Min.X, v.X)
			b.Min.Y = math.Min(b.Min.Y, v.Y)
			b.Min.Z = math.Min(b.Min.Z, v.Z)
			b.Max.X = math.Max(b.Max.X, v.X)
			b.Max.Y = math.Max(b.Max.Y, v.Y)
			b.Max.Z = math.Max(b.Max.Z, v.Z)
		}
	}
	return &b
}

// Mesh is an immutable triangle soup with a bounding box cached at
// construction. Bounds is nil for an empty mesh.
type Mesh struct {
	Triangles []Triangle   `json:"triangles"`
	Bounds    *BoundingBox `json:"bounds,omitempty"`
}

// NewMesh builds a mesh and caches its bounds.
func NewMesh(triangles []Triangle) Mesh {
	return Mesh{
		Triangles: triangles,
		Bounds:    BoundsFromTriangles(triangles),
	}
}

// BoundingBox2 is an axis-aligned rectangle with inclusive min and max corners.
type BoundingBox2 struct {
	Min Vec2 `json:"min"`
	Max Vec2 `json:"max"`
}

// BoundsFromPoints computes the bounding rectangle of a point set.
// Returns nil for an empty set.
func BoundsFromPoints(pts []Vec2) *BoundingBox2 {
	if len(pts) == 0 {
		return nil
	}
	b := BoundingBox2{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		if p.X < b.Min.X {
			b.Min.X = p.X
		}
		if p.Y < b.Min.Y {
			b.Min.Y = p.Y
		}
		if p.X > b.Max.X {
			b.Max.X = p.X
		}
		if p.Y > b.Max.Y {
			b.Max.Y = p.Y
		}
	}
	return &b
}

// Area returns the rectangle area.
func (b BoundingBox2) Area() float64 {
	return (b.Max.X - b.Min.X) * (b.Max.Y - b.Min.Y)
}

// Polyline is an ordered point sequence. When Closed, the edge from the last
// point back to the first is implicit and is part of the boundary for every
// consumer (offsetting, scan-line fill, point-in-polygon).
type Polyline struct {
	Points []Vec2 `json:"points"`
	Closed bool   `json:"closed"`
}

// NewPolyline builds a polyline from points.
func NewPolyline(points []Vec2, closed bool) Polyline {
	return Polyline{Points: points, Closed: closed}
}

// Bounds returns the bounding rectangle of the polyline's points, or nil if
// the polyline is empty.
func (p Polyline) Bounds() *BoundingBox2 {
	return BoundsFromPoints(p.Points)
}

// Segment2 is an unordered endpoint pair, used only as a transient between
// triangle/plane intersection and contour chaining.
type Segment2 struct {
	A Vec2
	B Vec2
}

// ToolpathMove is one machine motion. Rapid moves position at machine-max
// feed without cutting; non-rapid moves cut at feed rate (or plunge rate, at
// the emitter's discretion, when descending from safe height).
type ToolpathMove struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	Rapid bool    `json:"rapid"`
}

// Toolpath is an ordered move sequence. The first move of a toolpath is a
// rapid to safe height, except for surface-strategy rows after the first,
// which begin with a cut from the previous row's end; cuts and rapids may
// interleave after that. The order
// of toolpaths in a generated list is the machining order.
type Toolpath struct {
	Moves []ToolpathMove `json:"moves"`
}

// Rapid appends a positioning move.
func (tp *Toolpath) Rapid(x, y, z float64) {
	tp.Moves = append(tp.Moves, ToolpathMove{X: x, Y: y, Z: z, Rapid: true})
}

// Cut appends a cutting move.
func (tp *Toolpath) Cut(x, y, z float64) {
	tp.Moves = append(tp.Moves, ToolpathMove{X: x, Y: y, Z: z, Rapid: false})
}
