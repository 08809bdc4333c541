package model

import (
	"encoding/json"
	"fmt"
)

// Strategy names accepted in the configuration record. "slice" and "contour"
// are synonyms: both contour-follow sliced layers.
const (
	StrategyContour   = "contour"
	StrategySlice     = "slice"
	StrategyPocket    = "pocket"
	StrategyPerimeter = "perimeter"
	StrategyZigZag    = "zigzag"
)

// ScanDirection is the axis a surface strategy traverses along; the
// orthogonal axis advances by step-over between rows.
type ScanDirection int

const (
	ScanX ScanDirection = iota // Rows run along X, step over in Y
	ScanY                      // Rows run along Y, step over in X
)

// CutParams is the driving configuration for a single machining operation.
// The orchestrator clones it per depth layer with CutZ set to the layer
// height; everything else is immutable within one operation.
type CutParams struct {
	Tool Tool `json:"tool"`
	// Cached copy of Tool.Diameter, kept in sync by the config loader.
	ToolDiameter    float64 `json:"tool_diameter"`
	StepOver        float64 `json:"step_over"`  // mm between adjacent rows
	StepDown        float64 `json:"step_down"`  // mm between depth layers
	FeedRate        float64 `json:"feed_rate"`  // mm/min
	PlungeRate      float64 `json:"plunge_rate"`
	SafeZ           float64 `json:"safe_z"`
	CutZ            float64 `json:"cut_z"` // Current layer depth
	ClimbCut        bool    `json:"climb_cut"`
	PerimeterPasses int     `json:"perimeter_passes"`
}

// WithCutZ returns a copy of the params with CutZ replaced.
func (p CutParams) WithCutZ(z float64) CutParams {
	p.CutZ = z
	return p
}

// DefaultCutParams returns parameters for a 1/8" end mill at hobby-machine
// feeds.
func DefaultCutParams() CutParams {
	return CutParams{
		Tool:            DefaultTool(),
		ToolDiameter:    3.175,
		StepOver:        1.5,
		StepDown:        1.0,
		FeedRate:        800.0,
		PlungeRate:      300.0,
		SafeZ:           5.0,
		CutZ:            0.0,
		PerimeterPasses: 1,
	}
}

// SurfaceParams feeds the zig-zag surface strategy, which samples the mesh
// directly instead of consuming sliced contours.
type SurfaceParams struct {
	Mesh *Mesh
	Cut  CutParams
	Scan ScanDirection
}

// CamConfig is the host-facing configuration record, ingested as JSON. Every
// field is optional; absent keys keep the defaults from DefaultCamConfig.
type CamConfig struct {
	ToolDiameter      float64 `json:"tool_diameter"`
	ToolType          string  `json:"tool_type"` // end_mill, ball_end, face_mill
	CornerRadius      float64 `json:"corner_radius"`
	EffectiveDiameter float64 `json:"effective_diameter"`
	StepOver          float64 `json:"step_over"`
	StepDown          float64 `json:"step_down"`
	FeedRate          float64 `json:"feed_rate"`
	PlungeRate        float64 `json:"plunge_rate"`
	SpindleSpeed      float64 `json:"spindle_speed"`
	SafeZ             float64 `json:"safe_z"`
	CutDepth          float64 `json:"cut_depth"` // Negative cuts below stock top
	Strategy          string  `json:"strategy"`
	ClimbCut          bool    `json:"climb_cut"`
	PerimeterPasses   int     `json:"perimeter_passes"`
	GCodeProfile      string  `json:"gcode_profile"`
}

// DefaultCamConfig returns the documented defaults for every config key.
func DefaultCamConfig() CamConfig {
	return CamConfig{
		ToolDiameter:    3.175,
		ToolType:        string(ToolEndMill),
		StepOver:        1.5,
		StepDown:        1.0,
		FeedRate:        800.0,
		PlungeRate:      300.0,
		SpindleSpeed:    12000.0,
		SafeZ:           5.0,
		CutDepth:        -1.0,
		Strategy:        StrategyContour,
		PerimeterPasses: 1,
		GCodeProfile:    "Generic",
	}
}

// ParseCamConfig decodes a JSON configuration document. Missing keys keep
// their defaults; a malformed document is a configuration parse error.
func ParseCamConfig(data []byte) (CamConfig, error) {
	cfg := DefaultCamConfig()
	if len(data) == 0 {
		return cfg, nil
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return CamConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.PerimeterPasses < 1 {
		cfg.PerimeterPasses = 1
	}
	return cfg, nil
}

// BuildTool constructs the Tool described by the config record.
func (c CamConfig) BuildTool() Tool {
	switch ToolType(c.ToolType) {
	case ToolBallEnd:
		return NewBallEnd(c.ToolDiameter, 10.0)
	case ToolFaceMill:
		eff := c.EffectiveDiameter
		if eff <= 0 {
			eff = c.ToolDiameter
		}
		return NewFaceMill(c.ToolDiameter, eff, 10.0)
	default:
		return NewEndMill(c.ToolDiameter, 10.0, c.CornerRadius)
	}
}

// CutParams converts the config record into the parameters the strategies
// consume. CutZ starts at the configured cut depth; the orchestrator rewrites
// it per layer.
func (c CamConfig) CutParams() CutParams {
	tool := c.BuildTool()
	return CutParams{
		Tool:            tool,
		ToolDiameter:    tool.Diameter,
		StepOver:        c.StepOver,
		StepDown:        c.StepDown,
		FeedRate:        c.FeedRate,
		PlungeRate:      c.PlungeRate,
		SafeZ:           c.SafeZ,
		CutZ:            c.CutDepth,
		ClimbCut:        c.ClimbCut,
		PerimeterPasses: c.PerimeterPasses,
	}
}
