package importer

import (
	"encoding/binary"
	"math"
	"testing"
)

func buildBinarySTL(count int) []byte {
	buf := make([]byte, 84+50*count)
	binary.LittleEndian.PutUint32(buf[80:], uint32(count))
	put := func(off int, v float32) {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
	}
	for i := 0; i < count; i++ {
		base := 84 + i*50
		put(base+8, 1)    // normal (0,0,1)
		put(base+24, 1)   // v1 = (1,0,0)
		put(base+36+4, 1) // v2 = (0,1,0)
	}
	return buf
}

func TestParseSTL_Binary(t *testing.T) {
	mesh, err := ParseSTL(buildBinarySTL(1))
	if err != nil {
		t.Fatal(err)
	}
	if len(mesh.Triangles) != 1 {
		t.Fatalf("expected 1 triangle, got %d", len(mesh.Triangles))
	}
	tri := mesh.Triangles[0]
	if tri.Normal.Z != 1 || tri.V1.X != 1 || tri.V2.Y != 1 {
		t.Errorf("triangle decoded wrong: %+v", tri)
	}
	if mesh.Bounds == nil {
		t.Fatal("bounds not cached")
	}
	if mesh.Bounds.Max.X != 1 || mesh.Bounds.Max.Y != 1 {
		t.Errorf("bounds %+v", mesh.Bounds)
	}
}

func TestParseSTL_BinaryTruncated(t *testing.T) {
	data := buildBinarySTL(2)
	if _, err := ParseSTL(data[:100]); err == nil {
		t.Fatal("expected truncation error")
	}
}

func TestParseSTL_ASCII(t *testing.T) {
	stl := `solid test
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 0 1 0
    endloop
  endfacet
endsolid test`
	mesh, err := ParseSTL([]byte(stl))
	if err != nil {
		t.Fatal(err)
	}
	if len(mesh.Triangles) != 1 {
		t.Fatalf("expected 1 triangle, got %d", len(mesh.Triangles))
	}
	if mesh.Triangles[0].V1.X != 1.0 {
		t.Errorf("vertex decoded wrong: %+v", mesh.Triangles[0])
	}
}

func TestParseSTL_ASCIIMultipleFacets(t *testing.T) {
	stl := `solid two
facet normal 0 0 1
outer loop
vertex 0 0 0
vertex 1 0 0
vertex 0 1 0
endloop
endfacet
facet normal 0 0 1
outer loop
vertex 1 0 0
vertex 1 1 0
vertex 0 1 0
endloop
endfacet
endsolid two`
	mesh, err := ParseSTL([]byte(stl))
	if err != nil {
		t.Fatal(err)
	}
	if len(mesh.Triangles) != 2 {
		t.Fatalf("expected 2 triangles, got %d", len(mesh.Triangles))
	}
}

func TestParseSTL_SolidPrefixedBinary(t *testing.T) {
	// Some binary exporters write "solid" into the comment header. The
	// declared count matching the file size identifies it as binary anyway.
	data := buildBinarySTL(1)
	copy(data[:5], "solid")
	mesh, err := ParseSTL(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(mesh.Triangles) != 1 {
		t.Fatalf("expected binary parse, got %d triangles", len(mesh.Triangles))
	}
}

func TestParseSTL_EmptyASCII(t *testing.T) {
	if _, err := ParseSTL([]byte("solid empty\nendsolid empty")); err == nil {
		t.Fatal("expected error for STL with no facets")
	}
}

func TestParseSTL_MalformedVertex(t *testing.T) {
	stl := `solid bad
facet normal 0 0 1
outer loop
vertex 0 0
vertex 1 0 0
vertex 0 1 0
endloop
endfacet
endsolid bad`
	if _, err := ParseSTL([]byte(stl)); err == nil {
		t.Fatal("expected error for two-component vertex")
	}
}
