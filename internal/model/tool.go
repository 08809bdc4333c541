package model

import "github.com/google/uuid"

// ToolType identifies the cutter geometry.
type ToolType string

const (
	ToolEndMill  ToolType = "end_mill"  // Flat or corner-radiused bottom
	ToolBallEnd  ToolType = "ball_end"  // Hemispherical tip for 3D finishing
	ToolFaceMill ToolType = "face_mill" // Wide facing cutter
)

// Tool describes a cutting tool.
type Tool struct {
	Type        ToolType `json:"type"`
	Diameter    float64  `json:"diameter"`     // mm
	FluteLength float64  `json:"flute_length"` // mm
	// Corner radius in mm: 0 for sharp end mills, half the diameter for
	// ball-end mills.
	CornerRadius float64 `json:"corner_radius"`
	// Effective cutting width for face mills; may differ from body diameter.
	// Ignored for other tool types.
	EffectiveDiameter float64 `json:"effective_diameter,omitempty"`
}

// DefaultTool returns a 1/8" end mill.
func DefaultTool() Tool {
	return Tool{
		Type:        ToolEndMill,
		Diameter:    3.175,
		FluteLength: 10.0,
	}
}

// NewEndMill creates an end mill with the given corner radius.
func NewEndMill(diameter, fluteLength, cornerRadius float64) Tool {
	return Tool{
		Type:         ToolEndMill,
		Diameter:     diameter,
		FluteLength:  fluteLength,
		CornerRadius: cornerRadius,
	}
}

// NewBallEnd creates a ball-end mill. The corner radius equals half the
// diameter by construction.
func NewBallEnd(diameter, fluteLength float64) Tool {
	return Tool{
		Type:         ToolBallEnd,
		Diameter:     diameter,
		FluteLength:  fluteLength,
		CornerRadius: diameter / 2.0,
	}
}

// NewFaceMill creates a face mill with an effective cutting diameter.
func NewFaceMill(diameter, effectiveDiameter, fluteLength float64) Tool {
	return Tool{
		Type:              ToolFaceMill,
		Diameter:          diameter,
		FluteLength:       fluteLength,
		EffectiveDiameter: effectiveDiameter,
	}
}

// CuttingDiameter returns the effective cutting diameter. For face mills this
// is the configured effective diameter; for everything else the body diameter.
func (t Tool) CuttingDiameter() float64 {
	if t.Type == ToolFaceMill && t.EffectiveDiameter > 0 {
		return t.EffectiveDiameter
	}
	return t.Diameter
}

// LibraryTool is a named entry in the user's tool library.
type LibraryTool struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Tool Tool   `json:"tool"`
}

// NewLibraryTool creates a library entry with a fresh short ID.
func NewLibraryTool(name string, tool Tool) LibraryTool {
	return LibraryTool{
		ID:   uuid.New().String()[:8],
		Name: name,
		Tool: tool,
	}
}
