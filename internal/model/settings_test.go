package model

import "testing"

func TestParseCamConfig_Defaults(t *testing.T) {
	cfg, err := ParseCamConfig(nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ToolDiameter != 3.175 {
		t.Errorf("tool diameter %v, want 3.175", cfg.ToolDiameter)
	}
	if cfg.Strategy != StrategyContour {
		t.Errorf("strategy %q, want contour", cfg.Strategy)
	}
	if cfg.CutDepth != -1.0 || cfg.SafeZ != 5.0 || cfg.FeedRate != 800.0 {
		t.Errorf("defaults wrong: %+v", cfg)
	}
	if cfg.GCodeProfile != "Generic" {
		t.Errorf("profile %q, want Generic", cfg.GCodeProfile)
	}
}

func TestParseCamConfig_PartialDocumentKeepsDefaults(t *testing.T) {
	cfg, err := ParseCamConfig([]byte(`{"tool_diameter": 6.0, "strategy": "pocket"}`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ToolDiameter != 6.0 || cfg.Strategy != StrategyPocket {
		t.Errorf("overrides lost: %+v", cfg)
	}
	if cfg.StepOver != 1.5 || cfg.SpindleSpeed != 12000.0 {
		t.Errorf("unrelated defaults clobbered: %+v", cfg)
	}
}

func TestParseCamConfig_Malformed(t *testing.T) {
	if _, err := ParseCamConfig([]byte(`{"tool_diameter": `)); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestParseCamConfig_ZeroPerimeterPasses(t *testing.T) {
	cfg, err := ParseCamConfig([]byte(`{"perimeter_passes": 0}`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.PerimeterPasses != 1 {
		t.Errorf("perimeter_passes %d, want clamp to 1", cfg.PerimeterPasses)
	}
}

func TestCamConfig_BuildTool(t *testing.T) {
	cfg := DefaultCamConfig()
	cfg.ToolType = string(ToolBallEnd)
	cfg.ToolDiameter = 6.0

	tool := cfg.BuildTool()
	if tool.Type != ToolBallEnd {
		t.Errorf("type %v, want ball_end", tool.Type)
	}
	if tool.CornerRadius != 3.0 {
		t.Errorf("ball-end corner radius %v, want diameter/2", tool.CornerRadius)
	}
}

func TestCamConfig_BuildToolFaceMillDefaultsEffective(t *testing.T) {
	cfg := DefaultCamConfig()
	cfg.ToolType = string(ToolFaceMill)
	cfg.ToolDiameter = 50.0

	tool := cfg.BuildTool()
	if tool.CuttingDiameter() != 50.0 {
		t.Errorf("effective diameter should default to body diameter, got %v", tool.CuttingDiameter())
	}
}

func TestCamConfig_CutParamsKeepsDiameterInSync(t *testing.T) {
	cfg := DefaultCamConfig()
	cfg.ToolDiameter = 6.35

	params := cfg.CutParams()
	if params.ToolDiameter != params.Tool.Diameter {
		t.Errorf("cached diameter %v out of sync with tool %v", params.ToolDiameter, params.Tool.Diameter)
	}
	if params.CutZ != cfg.CutDepth {
		t.Errorf("cut z %v should start at cut depth %v", params.CutZ, cfg.CutDepth)
	}
}

func TestCutParams_WithCutZ(t *testing.T) {
	p := DefaultCutParams()
	q := p.WithCutZ(-3.5)
	if q.CutZ != -3.5 {
		t.Errorf("cut z %v, want -3.5", q.CutZ)
	}
	if p.CutZ != 0 {
		t.Error("WithCutZ must not mutate the receiver")
	}
}
