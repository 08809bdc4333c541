package toolpath

import (
	"math"

	"github.com/piwi3910/pathcut/internal/model"
	"github.com/piwi3910/pathcut/internal/slicer"
)

// SurfaceStrategy rasters the mesh top surface with serpentine rows for 3D
// finishing. It samples a height field over the mesh XY bounds and, for
// ball-end tools, corrects the tool-center position for the contact point on
// sloped faces. Between rows the tool stays down and drags along the surface;
// on concave work this can gouge, which is accepted for finishing passes on
// convex stock.
type SurfaceStrategy struct{}

// Generate emits one toolpath per non-empty sample row.
func (SurfaceStrategy) Generate(params model.SurfaceParams) []model.Toolpath {
	mesh := params.Mesh
	if mesh == nil || mesh.Bounds == nil {
		return nil
	}
	cut := params.Cut

	step := cut.StepOver
	if step < 0.1 {
		step = 0.1
	}

	// Row axis is orthogonal to the scan direction.
	var rowMin, rowMax, scanMin, scanMax float64
	if params.Scan == model.ScanX {
		rowMin, rowMax = mesh.Bounds.Min.Y, mesh.Bounds.Max.Y
		scanMin, scanMax = mesh.Bounds.Min.X, mesh.Bounds.Max.X
	} else {
		rowMin, rowMax = mesh.Bounds.Min.X, mesh.Bounds.Max.X
		scanMin, scanMax = mesh.Bounds.Min.Y, mesh.Bounds.Max.Y
	}

	ballEnd := cut.Tool.Type == model.ToolBallEnd
	radius := cut.Tool.Diameter / 2.0

	var rows [][]model.Vec3
	rowIdx := 0
	for row := rowMin; row <= rowMax; row += step {
		var samples []float64
		for s := scanMin; s <= scanMax; s += step {
			samples = append(samples, s)
		}
		if rowIdx%2 == 1 {
			for i, j := 0, len(samples)-1; i < j; i, j = i+1, j-1 {
				samples[i], samples[j] = samples[j], samples[i]
			}
		}
		rowIdx++

		var pts []model.Vec3
		for _, s := range samples {
			x, y := s, row
			if params.Scan == model.ScanY {
				x, y = row, s
			}
			z, ok := slicer.HeightAt(mesh, x, y)
			if !ok {
				continue
			}
			p := model.Vec3{X: x, Y: y, Z: z}
			if ballEnd {
				if n, ok := slicer.NormalAt(mesh, x, y); ok {
					p = ballEndOffset(p, n, radius)
				}
			}
			pts = append(pts, p)
		}
		if len(pts) > 0 {
			rows = append(rows, pts)
		}
	}

	var toolpaths []model.Toolpath
	var prevLast model.Vec3
	for i, pts := range rows {
		var tp model.Toolpath
		if i == 0 {
			tp.Rapid(pts[0].X, pts[0].Y, cut.SafeZ)
		} else {
			// Stay down: drag along the surface from the previous row's end
			tp.Cut(prevLast.X, prevLast.Y, prevLast.Z)
		}
		for _, p := range pts {
			tp.Cut(p.X, p.Y, p.Z)
		}
		prevLast = pts[len(pts)-1]
		if i == len(rows)-1 {
			tp.Rapid(prevLast.X, prevLast.Y, cut.SafeZ)
		}
		toolpaths = append(toolpaths, tp)
	}
	return toolpaths
}

// ballEndOffset corrects a sampled surface point to the tool-center position
// for a ball-end mill of the given radius. The tool center sits one radius
// from the contact point along the outward surface normal; on a flat upward
// face the correction vanishes, on a slope it shifts the center sideways and
// lifts it so the sphere rides the surface.
func ballEndOffset(p, normal model.Vec3, radius float64) model.Vec3 {
	length := math.Sqrt(normal.X*normal.X + normal.Y*normal.Y + normal.Z*normal.Z)
	if length < 1e-10 {
		return p
	}
	nx := normal.X / length
	ny := normal.Y / length
	nz := normal.Z / length
	return model.Vec3{
		X: p.X + radius*nx,
		Y: p.Y + radius*ny,
		Z: p.Z + radius*(1-nz),
	}
}
