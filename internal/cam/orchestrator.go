// Package cam wires the pipeline together: it chooses a strategy from the
// configuration record, iterates depth layers, and assembles the final
// ordered toolpath list for meshes and 2D drawings.
package cam

import (
	"math"

	"github.com/piwi3910/pathcut/internal/model"
	"github.com/piwi3910/pathcut/internal/slicer"
	"github.com/piwi3910/pathcut/internal/toolpath"
)

// GenerateMeshToolpaths produces the toolpath list for a 3D input. The 2D
// strategies run on slices taken every step-down; the zigzag surface
// strategy samples the mesh directly. When slicing a contour job yields
// nothing (flat-bottomed bodies intersect no plane), a single slice just
// above the mesh bottom is contoured at the configured cut depth instead.
func GenerateMeshToolpaths(mesh *model.Mesh, cfg model.CamConfig) []model.Toolpath {
	params := cfg.CutParams()

	if cfg.Strategy == model.StrategyZigZag {
		return toolpath.SurfaceStrategy{}.Generate(model.SurfaceParams{
			Mesh: mesh,
			Cut:  params,
			Scan: model.ScanX,
		})
	}

	strat, ok := toolpath.ForName(cfg.Strategy)
	contourJob := !ok || isContourName(cfg.Strategy) // unknown names run as contour
	if !ok {
		strat = toolpath.ContourStrategy{}
	}

	var all []model.Toolpath
	for _, layer := range slicer.SliceMesh(mesh, cfg.StepDown) {
		all = append(all, strat.Generate(layer.Contours, params.WithCutZ(layer.Z))...)
	}

	if len(all) == 0 && contourJob && mesh.Bounds != nil {
		contours := slicer.SliceAtZ(mesh, mesh.Bounds.Min.Z+0.01)
		if len(contours) == 0 {
			// Degenerate flat bodies never intersect a plane above their
			// base; trace the bottom facets instead.
			contours = slicer.FlatContours(mesh, mesh.Bounds.Min.Z)
		}
		all = append(all, strat.Generate(contours, params)...)
	}
	return all
}

// GeneratePolylineToolpaths produces the toolpath list for a 2D input. The
// slicer plays no part; instead the cut steps down from Z=0 by step-down
// until the target cut depth, running the chosen strategy once per layer and
// stopping exactly after the layer at the target depth.
func GeneratePolylineToolpaths(polylines []model.Polyline, cfg model.CamConfig) []model.Toolpath {
	params := cfg.CutParams()

	strat, ok := toolpath.ForName(cfg.Strategy)
	if !ok {
		strat = toolpath.ContourStrategy{}
	}

	var all []model.Toolpath
	z := 0.0
	for z > cfg.CutDepth-0.001 {
		z -= cfg.StepDown
		if z < cfg.CutDepth {
			z = cfg.CutDepth
		}
		all = append(all, strat.Generate(polylines, params.WithCutZ(z))...)
		if math.Abs(z-cfg.CutDepth) < 0.001 {
			break
		}
	}
	return all
}

func isContourName(name string) bool {
	return name == model.StrategyContour || name == model.StrategySlice
}
