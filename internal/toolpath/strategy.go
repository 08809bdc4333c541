// Package toolpath turns 2D contours or a raw mesh into ordered cut and
// rapid moves. The 2D strategies (contour, perimeter, pocket) consume sliced
// or imported polylines; the surface strategy samples the mesh directly and
// has its own entry point.
package toolpath

import "github.com/piwi3910/pathcut/internal/model"

// Strategy generates toolpaths from 2D contours.
type Strategy interface {
	Generate(contours []model.Polyline, params model.CutParams) []model.Toolpath
}

// ForName returns the 2D strategy registered under the given configuration
// name. "slice" and "contour" both map to the contour strategy. The zigzag
// surface strategy is not dispatched here; it consumes a mesh, not contours.
func ForName(name string) (Strategy, bool) {
	switch name {
	case model.StrategyContour, model.StrategySlice:
		return ContourStrategy{}, true
	case model.StrategyPocket:
		return PocketStrategy{}, true
	case model.StrategyPerimeter:
		return PerimeterStrategy{}, true
	default:
		return nil, false
	}
}
