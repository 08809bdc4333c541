package gcode

import (
	"math"

	"github.com/piwi3910/pathcut/internal/model"
)

// rapidRate approximates the machine-max traverse rate for time estimates,
// in mm/min.
const rapidRate = 3000.0

// Summarize walks an ordered toolpath list and accumulates the distances and
// an estimated run time. The estimate assumes rapids at a fixed traverse
// rate and cuts at the given feed rate, with plunges (cuts descending from
// safe height right after a rapid) at the plunge rate.
func Summarize(toolpaths []model.Toolpath, params EmitParams) model.JobStats {
	stats := model.JobStats{ToolpathCount: len(toolpaths)}

	curX, curY, curZ := 0.0, 0.0, 0.0
	first := true
	for _, tp := range toolpaths {
		lastRapid := true
		for _, mv := range tp.Moves {
			stats.MoveCount++
			if first {
				// No travel estimate for the very first positioning move
				curX, curY, curZ = mv.X, mv.Y, mv.Z
				first = false
				continue
			}
			d := dist3(curX, curY, curZ, mv.X, mv.Y, mv.Z)
			if mv.Rapid {
				stats.RapidDistance += d
				stats.EstimatedTime += d / rapidRate
				lastRapid = true
			} else {
				stats.CutDistance += d
				rate := params.FeedRate
				if lastRapid && mv.Z < params.SafeZ-0.01 {
					rate = params.PlungeRate
				}
				if rate > 0 {
					stats.EstimatedTime += d / rate
				}
				lastRapid = false
			}
			curX, curY, curZ = mv.X, mv.Y, mv.Z
		}
	}
	return stats
}

func dist3(x0, y0, z0, x1, y1, z1 float64) float64 {
	dx := x1 - x0
	dy := y1 - y0
	dz := z1 - z0
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
