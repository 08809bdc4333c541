package toolpath

import (
	"math"
	"testing"

	"github.com/piwi3910/pathcut/internal/model"
)

func perimeterParams(passes int, climb bool) model.CutParams {
	p := testParams()
	p.StepOver = 1.0
	p.PerimeterPasses = passes
	p.ClimbCut = climb
	return p
}

func cutMoves(tp model.Toolpath) []model.ToolpathMove {
	var cuts []model.ToolpathMove
	for _, m := range tp.Moves {
		if !m.Rapid {
			cuts = append(cuts, m)
		}
	}
	return cuts
}

func minCutX(tp model.Toolpath) float64 {
	min := math.MaxFloat64
	for _, m := range cutMoves(tp) {
		if m.X < min {
			min = m.X
		}
	}
	return min
}

func TestPerimeter_PassCountAndOrdering(t *testing.T) {
	toolpaths := PerimeterStrategy{}.Generate([]model.Polyline{square()}, perimeterParams(3, false))
	if len(toolpaths) != 3 {
		t.Fatalf("expected exactly 3 toolpaths, got %d", len(toolpaths))
	}

	// Pass 0 runs one tool radius off the boundary, each later pass one
	// step-over further in. At the corners of a square the averaged normal
	// is diagonal, so the X reach is offset/sqrt(2).
	diag := math.Sqrt2 / 2
	wantMinX := []float64{-diag, 0, diag}
	for k, tp := range toolpaths {
		if got := minCutX(tp); math.Abs(got-wantMinX[k]) > 1e-9 {
			t.Errorf("pass %d min X = %v, want %v", k, got, wantMinX[k])
		}
	}

	// Outermost first
	for k := 1; k < len(toolpaths); k++ {
		if minCutX(toolpaths[k]) <= minCutX(toolpaths[k-1]) {
			t.Errorf("pass %d not inside pass %d", k, k-1)
		}
	}
}

func TestPerimeter_ZeroPassesTreatedAsOne(t *testing.T) {
	toolpaths := PerimeterStrategy{}.Generate([]model.Polyline{square()}, perimeterParams(0, false))
	if len(toolpaths) != 1 {
		t.Errorf("expected 1 toolpath for perimeter_passes=0, got %d", len(toolpaths))
	}
}

func TestPerimeter_ClimbReversesPointSequence(t *testing.T) {
	conventional := PerimeterStrategy{}.Generate([]model.Polyline{square()}, perimeterParams(1, false))
	climb := PerimeterStrategy{}.Generate([]model.Polyline{square()}, perimeterParams(1, true))

	cCuts := cutMoves(conventional[0])
	kCuts := cutMoves(climb[0])
	if len(cCuts) != len(kCuts) {
		t.Fatalf("move counts differ: %d vs %d", len(cCuts), len(kCuts))
	}

	// Drop the closing cut; the remaining follow sequence must be reversed.
	cSeq := cCuts[:len(cCuts)-1]
	kSeq := kCuts[:len(kCuts)-1]
	n := len(cSeq)
	for i := 0; i < n; i++ {
		c, k := cSeq[i], kSeq[n-1-i]
		if math.Abs(c.X-k.X) > 1e-9 || math.Abs(c.Y-k.Y) > 1e-9 {
			t.Errorf("climb sequence index %d: (%v,%v) vs reversed (%v,%v)", i, k.X, k.Y, c.X, c.Y)
		}
	}
}

func TestPerimeter_PicksLargestContour(t *testing.T) {
	small := model.NewPolyline([]model.Vec2{
		{X: 2, Y: 2}, {X: 4, Y: 2}, {X: 4, Y: 4}, {X: 2, Y: 4},
	}, true)
	toolpaths := PerimeterStrategy{}.Generate([]model.Polyline{small, square()}, perimeterParams(1, false))
	if len(toolpaths) != 1 {
		t.Fatalf("expected 1 toolpath, got %d", len(toolpaths))
	}
	// The outer square's pass reaches past the small contour's extent
	if minCutX(toolpaths[0]) > 0 {
		t.Errorf("perimeter followed the smaller contour (min X %v)", minCutX(toolpaths[0]))
	}
}

func TestPerimeter_NoContours(t *testing.T) {
	if got := (PerimeterStrategy{}).Generate(nil, perimeterParams(2, false)); got != nil {
		t.Errorf("expected no toolpaths, got %d", len(got))
	}
}
