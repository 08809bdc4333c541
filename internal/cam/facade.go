package cam

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/piwi3910/pathcut/internal/gcode"
	"github.com/piwi3910/pathcut/internal/importer"
	"github.com/piwi3910/pathcut/internal/model"
	"github.com/piwi3910/pathcut/internal/slicer"
)

// ProcessSTL runs the full pipeline on an STL file: parse the mesh, generate
// toolpaths per the configuration document, and emit the NC program.
func ProcessSTL(data []byte, configJSON []byte) (string, error) {
	cfg, err := model.ParseCamConfig(configJSON)
	if err != nil {
		return "", err
	}

	mesh, err := importer.ParseSTL(data)
	if err != nil {
		return "", err
	}

	toolpaths := GenerateMeshToolpaths(&mesh, cfg)
	return gcode.New(gcode.EmitParamsFromConfig(cfg)).Emit(toolpaths), nil
}

// ProcessDXFFile runs the full pipeline on a 2D DXF drawing.
func ProcessDXFFile(path string, configJSON []byte) (string, error) {
	cfg, err := model.ParseCamConfig(configJSON)
	if err != nil {
		return "", err
	}

	polylines, err := importDXF(path)
	if err != nil {
		return "", err
	}

	toolpaths := GeneratePolylineToolpaths(polylines, cfg)
	return gcode.New(gcode.EmitParamsFromConfig(cfg)).Emit(toolpaths), nil
}

// PreviewSTL returns the slice contours of an STL file as a JSON array of
// [x, y] point lists, for host-side preview canvases.
func PreviewSTL(data []byte, configJSON []byte) (string, error) {
	cfg, err := model.ParseCamConfig(configJSON)
	if err != nil {
		return "", err
	}

	mesh, err := importer.ParseSTL(data)
	if err != nil {
		return "", err
	}

	var paths [][][2]float64
	for _, layer := range slicer.SliceMesh(&mesh, cfg.StepDown) {
		for _, c := range layer.Contours {
			paths = append(paths, contourPath(c))
		}
	}
	return marshalPaths(paths)
}

// PreviewDXFFile returns the polylines of a DXF drawing as a JSON array of
// [x, y] point lists.
func PreviewDXFFile(path string) (string, error) {
	polylines, err := importDXF(path)
	if err != nil {
		return "", err
	}

	paths := make([][][2]float64, 0, len(polylines))
	for _, pl := range polylines {
		paths = append(paths, contourPath(pl))
	}
	return marshalPaths(paths)
}

// importDXF flattens the importer's error list into a single boundary error.
func importDXF(path string) ([]model.Polyline, error) {
	result := importer.ImportDXF(path)
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("%s", strings.Join(result.Errors, "; "))
	}
	return result.Polylines, nil
}

func contourPath(pl model.Polyline) [][2]float64 {
	path := make([][2]float64, 0, len(pl.Points))
	for _, p := range pl.Points {
		path = append(path, [2]float64{p.X, p.Y})
	}
	return path
}

func marshalPaths(paths [][][2]float64) (string, error) {
	data, err := json.Marshal(paths)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
