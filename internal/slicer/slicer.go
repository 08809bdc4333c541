// Package slicer intersects a triangle mesh with horizontal planes to
// produce closed 2D contours, and answers height-field queries for the
// surface-finishing strategy.
package slicer

import (
	"math"

	"github.com/piwi3910/pathcut/internal/model"
)

const (
	// Tolerance for on-plane vertices and duplicate intersection points.
	pointTol = 1e-10
	// Tolerance for matching segment endpoints while chaining.
	chainTol = 1e-6
)

// Layer is one slice plane: its height and the contours found there.
type Layer struct {
	Z        float64
	Contours []model.Polyline
}

// SliceMesh slices a mesh at uniform Z intervals. The first plane sits half a
// layer above the mesh bottom; planes continue every layerHeight up to the
// mesh top. Layers that intersect no triangles are omitted.
func SliceMesh(mesh *model.Mesh, layerHeight float64) []Layer {
	if mesh.Bounds == nil {
		return nil
	}

	zMax := mesh.Bounds.Max.Z
	var layers []Layer
	for z := mesh.Bounds.Min.Z + layerHeight*0.5; z <= zMax; z += layerHeight {
		contours := SliceAtZ(mesh, z)
		if len(contours) > 0 {
			layers = append(layers, Layer{Z: z, Contours: contours})
		}
	}
	return layers
}

// SliceAtZ slices the mesh at a single Z height, returning the chained
// contours: closed loops, plus open polylines where the mesh is not manifold.
func SliceAtZ(mesh *model.Mesh, z float64) []model.Polyline {
	return chainSegments(collectSegments(mesh, z))
}

// collectSegments computes the intersection segment of every triangle that
// straddles the Z plane.
func collectSegments(mesh *model.Mesh, z float64) []model.Segment2 {
	var segs []model.Segment2
	for _, tri := range mesh.Triangles {
		if tri.MinZ() > z || tri.MaxZ() < z {
			continue
		}
		if seg, ok := intersectTriangleZ(tri.V0, tri.V1, tri.V2, z); ok {
			segs = append(segs, seg)
		}
	}
	return segs
}

// intersectTriangleZ intersects one triangle with the plane at z. Each edge
// that strictly crosses the plane contributes an interpolated point; a vertex
// lying on the plane contributes its own (x, y). Tangent-only contacts leave
// fewer than two distinct points and are dropped.
func intersectTriangleZ(a, b, c model.Vec3, z float64) (model.Segment2, bool) {
	verts := [3]model.Vec3{a, b, c}
	edges := [3][2]int{{0, 1}, {1, 2}, {2, 0}}

	var pts []model.Vec2
	for _, e := range edges {
		p := verts[e[0]]
		q := verts[e[1]]
		if (p.Z-z)*(q.Z-z) < 0 {
			t := (z - p.Z) / (q.Z - p.Z)
			ip := model.Lerp(p, q, t)
			pts = append(pts, model.Vec2{X: ip.X, Y: ip.Y})
		} else if math.Abs(p.Z-z) < pointTol {
			pts = append(pts, model.Vec2{X: p.X, Y: p.Y})
		}
	}

	pts = dedupConsecutive(pts)
	if len(pts) < 2 {
		return model.Segment2{}, false
	}
	return model.Segment2{A: pts[0], B: pts[1]}, true
}

// dedupConsecutive removes consecutive near-identical points.
func dedupConsecutive(pts []model.Vec2) []model.Vec2 {
	if len(pts) < 2 {
		return pts
	}
	out := pts[:1]
	for _, p := range pts[1:] {
		if model.Dist(out[len(out)-1], p) >= pointTol {
			out = append(out, p)
		}
	}
	return out
}

// FlatContours returns the outline of every triangle lying entirely in the
// plane at z, as closed polylines. Plane slicing cannot see coplanar facets
// (no edge straddles the plane above them), so flat-bottomed bodies fall back
// to tracing the bottom facets directly.
func FlatContours(mesh *model.Mesh, z float64) []model.Polyline {
	var contours []model.Polyline
	for _, tri := range mesh.Triangles {
		if math.Abs(tri.V0.Z-z) < chainTol &&
			math.Abs(tri.V1.Z-z) < chainTol &&
			math.Abs(tri.V2.Z-z) < chainTol {
			contours = append(contours, model.NewPolyline([]model.Vec2{
				{X: tri.V0.X, Y: tri.V0.Y},
				{X: tri.V1.X, Y: tri.V1.Y},
				{X: tri.V2.X, Y: tri.V2.Y},
			}, true))
		}
	}
	return contours
}

// chainSegments connects loose segments into polylines by endpoint matching.
// Starting from the first unused segment, the chain greedily consumes any
// segment whose endpoint meets the chain tail, flipping its orientation when
// needed. A chain whose head and tail coincide is marked closed and loses the
// duplicate closing point. Non-manifold input degrades to extra open
// polylines rather than an error.
func chainSegments(segments []model.Segment2) []model.Polyline {
	if len(segments) == 0 {
		return nil
	}

	used := make([]bool, len(segments))
	var polylines []model.Polyline

	for start := range segments {
		if used[start] {
			continue
		}
		used[start] = true
		chain := []model.Vec2{segments[start].A, segments[start].B}

		for {
			tail := chain[len(chain)-1]
			found := false
			for j := range segments {
				if used[j] {
					continue
				}
				if model.Dist(segments[j].A, tail) < chainTol {
					used[j] = true
					chain = append(chain, segments[j].B)
					found = true
					break
				} else if model.Dist(segments[j].B, tail) < chainTol {
					used[j] = true
					chain = append(chain, segments[j].A)
					found = true
					break
				}
			}
			if !found {
				break
			}
		}

		closed := len(chain) > 2 && model.Dist(chain[0], chain[len(chain)-1]) < chainTol
		if closed {
			chain = chain[:len(chain)-1] // drop duplicate closing point
		}
		polylines = append(polylines, model.NewPolyline(chain, closed))
	}
	return polylines
}
