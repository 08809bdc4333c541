package importer

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/piwi3910/pathcut/internal/model"
)

const binarySTLHeader = 84 // 80-byte comment block + uint32 triangle count
const binarySTLRecord = 50 // normal + 3 vertices as float32 + attribute word

// ParseSTL detects the format of an STL file and parses it into a mesh.
// ASCII files start with "solid ", but so do some binary files; when the
// declared triangle count does not match the file size the data is treated
// as ASCII.
func ParseSTL(data []byte) (model.Mesh, error) {
	if len(data) < binarySTLHeader {
		return parseASCIISTL(data)
	}
	if bytes.HasPrefix(data, []byte("solid")) {
		count := int(binary.LittleEndian.Uint32(data[80:84]))
		if binarySTLHeader+count*binarySTLRecord != len(data) {
			return parseASCIISTL(data)
		}
	}
	return parseBinarySTL(data)
}

func readVec3(data []byte, offset int) model.Vec3 {
	x := math.Float32frombits(binary.LittleEndian.Uint32(data[offset:]))
	y := math.Float32frombits(binary.LittleEndian.Uint32(data[offset+4:]))
	z := math.Float32frombits(binary.LittleEndian.Uint32(data[offset+8:]))
	return model.Vec3{X: float64(x), Y: float64(y), Z: float64(z)}
}

func parseBinarySTL(data []byte) (model.Mesh, error) {
	if len(data) < binarySTLHeader {
		return model.Mesh{}, fmt.Errorf("binary STL too short: %d bytes", len(data))
	}
	count := int(binary.LittleEndian.Uint32(data[80:84]))
	expected := binarySTLHeader + count*binarySTLRecord
	if len(data) < expected {
		return model.Mesh{}, fmt.Errorf("binary STL truncated: expected %d bytes, got %d", expected, len(data))
	}

	triangles := make([]model.Triangle, 0, count)
	for i := 0; i < count; i++ {
		base := binarySTLHeader + i*binarySTLRecord
		triangles = append(triangles, model.Triangle{
			Normal: readVec3(data, base),
			V0:     readVec3(data, base+12),
			V1:     readVec3(data, base+24),
			V2:     readVec3(data, base+36),
		})
	}
	return model.NewMesh(triangles), nil
}

func parseASCIISTL(data []byte) (model.Mesh, error) {
	if !utf8.Valid(data) {
		return model.Mesh{}, fmt.Errorf("STL is neither valid binary nor UTF-8 text")
	}

	lines := strings.Split(string(data), "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}

	var triangles []model.Triangle
	i := 0
	if i < len(lines) && strings.HasPrefix(lines[i], "solid") {
		i++
	}
	for i < len(lines) {
		line := lines[i]
		i++
		if !strings.HasPrefix(line, "facet normal") {
			continue
		}
		normal, err := parseVec3Line(line, "facet normal")
		if err != nil {
			return model.Mesh{}, err
		}
		i++ // "outer loop"
		var verts [3]model.Vec3
		for v := 0; v < 3; v++ {
			if i >= len(lines) {
				return model.Mesh{}, fmt.Errorf("unexpected end of STL data")
			}
			verts[v], err = parseVec3Line(lines[i], "vertex")
			if err != nil {
				return model.Mesh{}, err
			}
			i++
		}
		i += 2 // "endloop", "endfacet"
		triangles = append(triangles, model.Triangle{
			Normal: normal,
			V0:     verts[0],
			V1:     verts[1],
			V2:     verts[2],
		})
	}

	if len(triangles) == 0 {
		return model.Mesh{}, fmt.Errorf("no triangles found in ASCII STL")
	}
	return model.NewMesh(triangles), nil
}

func parseVec3Line(line, prefix string) (model.Vec3, error) {
	rest, ok := strings.CutPrefix(line, prefix)
	if !ok {
		return model.Vec3{}, fmt.Errorf("expected %q, got %q", prefix, line)
	}
	fields := strings.Fields(rest)
	if len(fields) != 3 {
		return model.Vec3{}, fmt.Errorf("expected 3 floats after %q, got %d", prefix, len(fields))
	}
	var nums [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return model.Vec3{}, fmt.Errorf("bad coordinate %q: %w", f, err)
		}
		nums[i] = v
	}
	return model.Vec3{X: nums[0], Y: nums[1], Z: nums[2]}, nil
}
