package slicer

import "github.com/piwi3910/pathcut/internal/model"

// HeightAt returns the Z of the topmost triangle covering (x, y), or false
// when no triangle covers the query point. Z at the hit is interpolated from
// the triangle vertices with barycentric weights.
func HeightAt(mesh *model.Mesh, x, y float64) (float64, bool) {
	best := 0.0
	hit := false
	for _, tri := range mesh.Triangles {
		z, ok := triangleHeight(tri, x, y)
		if !ok {
			continue
		}
		if !hit || z > best {
			best = z
			hit = true
		}
	}
	return best, hit
}

// NormalAt returns the stored normal of the topmost triangle covering (x, y),
// or false when no triangle covers the query point.
func NormalAt(mesh *model.Mesh, x, y float64) (model.Vec3, bool) {
	bestZ := 0.0
	var normal model.Vec3
	hit := false
	for _, tri := range mesh.Triangles {
		z, ok := triangleHeight(tri, x, y)
		if !ok {
			continue
		}
		if !hit || z > bestZ {
			bestZ = z
			normal = tri.Normal
			hit = true
		}
	}
	return normal, hit
}

// triangleHeight tests (x, y) against the triangle's XY projection and, if
// inside, interpolates Z from the vertices.
func triangleHeight(tri model.Triangle, x, y float64) (float64, bool) {
	x0, y0 := tri.V0.X, tri.V0.Y
	x1, y1 := tri.V1.X, tri.V1.Y
	x2, y2 := tri.V2.X, tri.V2.Y

	denom := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if denom == 0 {
		// Degenerate in XY projection (vertical facet)
		return 0, false
	}

	w0 := ((y1-y2)*(x-x2) + (x2-x1)*(y-y2)) / denom
	w1 := ((y2-y0)*(x-x2) + (x0-x2)*(y-y2)) / denom
	w2 := 1 - w0 - w1

	if w0 < 0 || w1 < 0 || w2 < 0 {
		return 0, false
	}
	return w0*tri.V0.Z + w1*tri.V1.Z + w2*tri.V2.Z, true
}
