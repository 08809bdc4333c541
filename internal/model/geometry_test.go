package model

import (
	"math"
	"testing"
)

func TestNewMesh_CachesBounds(t *testing.T) {
	mesh := NewMesh([]Triangle{{
		V0: Vec3{X: -1, Y: 0, Z: 2},
		V1: Vec3{X: 4, Y: 5, Z: -3},
		V2: Vec3{X: 0, Y: 9, Z: 1},
	}})
	if mesh.Bounds == nil {
		t.Fatal("bounds missing")
	}
	if mesh.Bounds.Min != (Vec3{X: -1, Y: 0, Z: -3}) {
		t.Errorf("min %+v", mesh.Bounds.Min)
	}
	if mesh.Bounds.Max != (Vec3{X: 4, Y: 9, Z: 2}) {
		t.Errorf("max %+v", mesh.Bounds.Max)
	}
}

func TestNewMesh_EmptyHasNoBounds(t *testing.T) {
	if mesh := NewMesh(nil); mesh.Bounds != nil {
		t.Error("empty mesh must have absent bounds")
	}
}

func TestTriangle_ZExtent(t *testing.T) {
	tri := Triangle{
		V0: Vec3{Z: 3},
		V1: Vec3{Z: -2},
		V2: Vec3{Z: 7},
	}
	if tri.MinZ() != -2 || tri.MaxZ() != 7 {
		t.Errorf("z extent [%v, %v], want [-2, 7]", tri.MinZ(), tri.MaxZ())
	}
}

func TestPolyline_Bounds(t *testing.T) {
	pl := NewPolyline([]Vec2{{X: 1, Y: 2}, {X: -3, Y: 8}, {X: 5, Y: 0}}, false)
	b := pl.Bounds()
	if b == nil {
		t.Fatal("bounds missing")
	}
	if b.Min != (Vec2{X: -3, Y: 0}) || b.Max != (Vec2{X: 5, Y: 8}) {
		t.Errorf("bounds %+v", b)
	}
	if b.Area() != 64 {
		t.Errorf("area %v, want 64", b.Area())
	}
	if empty := (Polyline{}).Bounds(); empty != nil {
		t.Error("empty polyline must have absent bounds")
	}
}

func TestLerp(t *testing.T) {
	a := Vec3{X: 0, Y: 0, Z: 0}
	b := Vec3{X: 10, Y: -4, Z: 2}
	mid := Lerp(a, b, 0.5)
	if mid != (Vec3{X: 5, Y: -2, Z: 1}) {
		t.Errorf("lerp %+v", mid)
	}
}

func TestDist(t *testing.T) {
	if d := Dist(Vec2{X: 0, Y: 0}, Vec2{X: 3, Y: 4}); math.Abs(d-5) > 1e-12 {
		t.Errorf("dist %v, want 5", d)
	}
}

func TestToolpath_MoveHelpers(t *testing.T) {
	var tp Toolpath
	tp.Rapid(1, 2, 5)
	tp.Cut(1, 2, -1)
	if len(tp.Moves) != 2 {
		t.Fatalf("expected 2 moves, got %d", len(tp.Moves))
	}
	if !tp.Moves[0].Rapid || tp.Moves[1].Rapid {
		t.Errorf("move kinds wrong: %+v", tp.Moves)
	}
}
