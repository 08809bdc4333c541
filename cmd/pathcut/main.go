// PathCut — STL/DXF to G-code CAM pipeline for hobby CNC machines.
//
// Reads a triangle mesh (binary or ASCII STL) or a 2D vector drawing (DXF),
// generates toolpaths with the configured machining strategy, and writes a
// G-code program.
//
// Build:
//
//	go build -o pathcut ./cmd/pathcut
//
// Usage:
//
//	pathcut -in part.stl -out part.nc
//	pathcut -in plate.dxf -config pocket.json -out plate.nc -pdf plate.pdf
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/pathcut/internal/cam"
	"github.com/piwi3910/pathcut/internal/export"
	"github.com/piwi3910/pathcut/internal/gcode"
	"github.com/piwi3910/pathcut/internal/importer"
	"github.com/piwi3910/pathcut/internal/model"
	"github.com/piwi3910/pathcut/internal/project"
)

func main() {
	var (
		inPath     = flag.String("in", "", "input file (.stl or .dxf)")
		outPath    = flag.String("out", "", "output G-code file (default: input name with .nc)")
		configPath = flag.String("config", "", "machining configuration JSON file")
		presetName = flag.String("preset", "", "named preset from ~/.pathcut/presets.json")
		pdfPath    = flag.String("pdf", "", "also write a toolpath preview PDF")
		labelsPath = flag.String("labels", "", "also write a QR traveler label sheet PDF")
		saveJob    = flag.Bool("save-job", false, "record this run under ~/.pathcut/jobs/")
	)
	flag.Parse()

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "pathcut: -in is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := loadConfig(*configPath, *presetName)
	if err != nil {
		fatal(err)
	}

	toolpaths, err := generate(*inPath, cfg)
	if err != nil {
		fatal(err)
	}

	emitParams := gcode.EmitParamsFromConfig(cfg)
	program := gcode.New(emitParams).Emit(toolpaths)
	stats := gcode.Summarize(toolpaths, emitParams)

	out := *outPath
	if out == "" {
		out = strings.TrimSuffix(*inPath, filepath.Ext(*inPath)) + ".nc"
	}
	if err := os.WriteFile(out, []byte(program), 0644); err != nil {
		fatal(err)
	}

	fmt.Printf("%s: %d toolpaths, %d moves\n", out, stats.ToolpathCount, stats.MoveCount)
	fmt.Printf("cut %.0f mm, rapid %.0f mm, est. %.1f min\n",
		stats.CutDistance, stats.RapidDistance, stats.EstimatedTime)

	job := model.NewJob(strings.TrimSuffix(filepath.Base(*inPath), filepath.Ext(*inPath)),
		filepath.Base(*inPath), cfg, stats)

	if *pdfPath != "" {
		if err := export.ExportPDF(*pdfPath, toolpaths, stats); err != nil {
			fatal(fmt.Errorf("pdf export: %w", err))
		}
		fmt.Printf("wrote %s\n", *pdfPath)
	}

	if *labelsPath != "" {
		if err := export.ExportLabels(*labelsPath, []model.Job{job}); err != nil {
			fatal(fmt.Errorf("label export: %w", err))
		}
		fmt.Printf("wrote %s\n", *labelsPath)
	}

	if *saveJob {
		path, err := project.SaveJob(project.DefaultJobsDir(), job)
		if err != nil {
			fatal(fmt.Errorf("saving job: %w", err))
		}
		fmt.Printf("job recorded at %s\n", path)
	}
}

// loadConfig resolves the machining configuration: a preset by name, a JSON
// file, or the application defaults.
func loadConfig(configPath, presetName string) (model.CamConfig, error) {
	if presetName != "" {
		store, err := project.LoadPresets(project.DefaultPresetPath())
		if err != nil {
			return model.CamConfig{}, fmt.Errorf("loading presets: %w", err)
		}
		preset, ok := store.FindByName(presetName)
		if !ok {
			return model.CamConfig{}, fmt.Errorf("no preset named %q", presetName)
		}
		return preset.Config, nil
	}

	var data []byte
	if configPath != "" {
		var err error
		data, err = os.ReadFile(configPath)
		if err != nil {
			return model.CamConfig{}, err
		}
	}
	return model.ParseCamConfig(data)
}

// generate dispatches on the input file extension.
func generate(inPath string, cfg model.CamConfig) ([]model.Toolpath, error) {
	switch strings.ToLower(filepath.Ext(inPath)) {
	case ".stl":
		data, err := os.ReadFile(inPath)
		if err != nil {
			return nil, err
		}
		mesh, err := importer.ParseSTL(data)
		if err != nil {
			return nil, err
		}
		return cam.GenerateMeshToolpaths(&mesh, cfg), nil
	case ".dxf":
		result := importer.ImportDXF(inPath)
		if len(result.Errors) > 0 {
			return nil, fmt.Errorf("%s", strings.Join(result.Errors, "; "))
		}
		for _, w := range result.Warnings {
			fmt.Fprintln(os.Stderr, "warning:", w)
		}
		return cam.GeneratePolylineToolpaths(result.Polylines, cfg), nil
	default:
		return nil, fmt.Errorf("unsupported input format %q (want .stl or .dxf)", filepath.Ext(inPath))
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "pathcut:", err)
	os.Exit(1)
}
