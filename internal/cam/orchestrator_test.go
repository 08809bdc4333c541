package cam

import (
	"math"
	"testing"

	"github.com/piwi3910/pathcut/internal/model"
)

func squareDrawing() []model.Polyline {
	return []model.Polyline{model.NewPolyline([]model.Vec2{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
	}, true)}
}

// wallBox builds four vertical walls around [0,10]x[0,10] from z=0 to z=h.
func wallBox(h float64) model.Mesh {
	var tris []model.Triangle
	corners := [][2]float64{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	for i := 0; i < 4; i++ {
		a := corners[i]
		b := corners[(i+1)%4]
		lo0 := model.Vec3{X: a[0], Y: a[1], Z: 0}
		lo1 := model.Vec3{X: b[0], Y: b[1], Z: 0}
		hi0 := model.Vec3{X: a[0], Y: a[1], Z: h}
		hi1 := model.Vec3{X: b[0], Y: b[1], Z: h}
		tris = append(tris,
			model.Triangle{V0: lo0, V1: lo1, V2: hi1},
			model.Triangle{V0: lo0, V1: hi1, V2: hi0},
		)
	}
	return model.NewMesh(tris)
}

func flatTriangleMesh() model.Mesh {
	return model.NewMesh([]model.Triangle{{
		Normal: model.Vec3{Z: 1},
		V0:     model.Vec3{X: 0, Y: 0, Z: 0},
		V1:     model.Vec3{X: 10, Y: 0, Z: 0},
		V2:     model.Vec3{X: 0, Y: 10, Z: 0},
	}})
}

func TestPolyline_ContourSingleLayer(t *testing.T) {
	cfg := model.DefaultCamConfig()
	cfg.ToolDiameter = 2.0
	cfg.CutDepth = -1.0
	cfg.StepDown = 1.0

	toolpaths := GeneratePolylineToolpaths(squareDrawing(), cfg)
	if len(toolpaths) != 1 {
		t.Fatalf("expected 1 toolpath, got %d", len(toolpaths))
	}

	moves := toolpaths[0].Moves
	if len(moves) != 7 {
		t.Fatalf("expected 7 moves, got %d", len(moves))
	}
	if !moves[0].Rapid || moves[0].Z != 5.0 {
		t.Errorf("entry should rapid to safe height, got %+v", moves[0])
	}
	cutCount := 0
	for _, m := range moves[1:6] {
		if !m.Rapid && m.Z == -1.0 {
			cutCount++
		}
	}
	if cutCount != 5 {
		t.Errorf("expected 5 cuts at z=-1, got %d", cutCount)
	}
	if last := moves[6]; !last.Rapid || last.Z != 5.0 {
		t.Errorf("should retract to safe height, got %+v", last)
	}
}

func TestPolyline_DepthStepping(t *testing.T) {
	cfg := model.DefaultCamConfig()
	cfg.CutDepth = -2.5
	cfg.StepDown = 1.0

	toolpaths := GeneratePolylineToolpaths(squareDrawing(), cfg)
	// Layers at z = -1, -2, -2.5: one contour toolpath each
	if len(toolpaths) != 3 {
		t.Fatalf("expected 3 toolpaths, got %d", len(toolpaths))
	}

	wantZ := []float64{-1, -2, -2.5}
	for i, tp := range toolpaths {
		var cutZ float64
		for _, m := range tp.Moves {
			if !m.Rapid {
				cutZ = m.Z
			}
		}
		if math.Abs(cutZ-wantZ[i]) > 1e-9 {
			t.Errorf("layer %d cut at z=%v, want %v", i, cutZ, wantZ[i])
		}
	}
}

func TestPolyline_TerminatesExactlyAtCutDepth(t *testing.T) {
	cfg := model.DefaultCamConfig()
	cfg.CutDepth = -3.0
	cfg.StepDown = 1.0

	toolpaths := GeneratePolylineToolpaths(squareDrawing(), cfg)
	if len(toolpaths) != 3 {
		t.Errorf("expected 3 layers for depth 3 at step 1, got %d", len(toolpaths))
	}
}

func TestPolyline_UnknownStrategyFallsBackToContour(t *testing.T) {
	cfg := model.DefaultCamConfig()
	cfg.Strategy = "zigzag" // needs a mesh; 2D input falls back to contour

	toolpaths := GeneratePolylineToolpaths(squareDrawing(), cfg)
	if len(toolpaths) == 0 {
		t.Fatal("expected contour fallback toolpaths")
	}
}

func TestMesh_SliceStrategyLayers(t *testing.T) {
	mesh := wallBox(3)
	cfg := model.DefaultCamConfig()
	cfg.StepDown = 1.0
	cfg.Strategy = model.StrategySlice

	toolpaths := GenerateMeshToolpaths(&mesh, cfg)
	// Planes at z = 0.5, 1.5, 2.5, each slicing the four walls into one
	// closed square contour
	if len(toolpaths) != 3 {
		t.Fatalf("expected 3 toolpaths, got %d", len(toolpaths))
	}
	wantZ := []float64{0.5, 1.5, 2.5}
	for i, tp := range toolpaths {
		var z float64
		for _, m := range tp.Moves {
			if !m.Rapid {
				z = m.Z
			}
		}
		if math.Abs(z-wantZ[i]) > 1e-9 {
			t.Errorf("layer %d cuts at z=%v, want %v", i, z, wantZ[i])
		}
	}
}

func TestMesh_ContourFallbackForFlatBody(t *testing.T) {
	mesh := flatTriangleMesh()
	cfg := model.DefaultCamConfig()
	cfg.CutDepth = -1.0

	toolpaths := GenerateMeshToolpaths(&mesh, cfg)
	if len(toolpaths) != 1 {
		t.Fatalf("expected fallback toolpath, got %d", len(toolpaths))
	}
	// Fallback slices just above the bottom and cuts at the configured depth
	for _, m := range toolpaths[0].Moves {
		if !m.Rapid && math.Abs(m.Z-(-1.0)) > 1e-9 {
			t.Errorf("fallback cut at z=%v, want cut depth -1", m.Z)
		}
	}
}

func TestMesh_NoFallbackForPocket(t *testing.T) {
	mesh := flatTriangleMesh()
	cfg := model.DefaultCamConfig()
	cfg.Strategy = model.StrategyPocket

	if toolpaths := GenerateMeshToolpaths(&mesh, cfg); len(toolpaths) != 0 {
		t.Errorf("pocket on an unsliceable mesh should yield nothing, got %d", len(toolpaths))
	}
}

func TestMesh_ZigZagUsesSurfaceStrategy(t *testing.T) {
	mesh := flatTriangleMesh()
	cfg := model.DefaultCamConfig()
	cfg.Strategy = model.StrategyZigZag

	toolpaths := GenerateMeshToolpaths(&mesh, cfg)
	if len(toolpaths) == 0 {
		t.Fatal("expected surface toolpaths")
	}
	for _, tp := range toolpaths {
		for _, m := range tp.Moves {
			if !m.Rapid && math.Abs(m.Z) > 1e-9 {
				t.Errorf("surface cut at z=%v, want the flat face height 0", m.Z)
			}
		}
	}
}

func TestDeterminism(t *testing.T) {
	mesh := wallBox(3)
	cfg := model.DefaultCamConfig()

	a := GenerateMeshToolpaths(&mesh, cfg)
	b := GenerateMeshToolpaths(&mesh, cfg)
	if len(a) != len(b) {
		t.Fatalf("run lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if len(a[i].Moves) != len(b[i].Moves) {
			t.Fatalf("toolpath %d move counts differ", i)
		}
		for j := range a[i].Moves {
			if a[i].Moves[j] != b[i].Moves[j] {
				t.Errorf("toolpath %d move %d differs: %+v vs %+v", i, j, a[i].Moves[j], b[i].Moves[j])
			}
		}
	}
}
