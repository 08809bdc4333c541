// Package gcode turns ordered toolpaths into numerical-control programs and
// parses them back into classified moves for preview and analysis.
package gcode

import (
	"fmt"
	"strings"

	"github.com/piwi3910/pathcut/internal/model"
)

// EmitParams configures the emitter: feeds, spindle speed, safe height and
// the post-processor profile to format for.
type EmitParams struct {
	FeedRate     float64 `json:"feed_rate"`
	PlungeRate   float64 `json:"plunge_rate"`
	SpindleSpeed float64 `json:"spindle_speed"`
	SafeZ        float64 `json:"safe_z"`
	Profile      string  `json:"profile"`
}

// DefaultEmitParams returns emitter parameters matching the configuration
// record defaults.
func DefaultEmitParams() EmitParams {
	return EmitParams{
		FeedRate:     800.0,
		PlungeRate:   300.0,
		SpindleSpeed: 12000.0,
		SafeZ:        5.0,
		Profile:      "Generic",
	}
}

// EmitParamsFromConfig derives emitter parameters from a configuration record.
func EmitParamsFromConfig(cfg model.CamConfig) EmitParams {
	return EmitParams{
		FeedRate:     cfg.FeedRate,
		PlungeRate:   cfg.PlungeRate,
		SpindleSpeed: cfg.SpindleSpeed,
		SafeZ:        cfg.SafeZ,
		Profile:      cfg.GCodeProfile,
	}
}

// Emitter writes toolpaths as G-code in a controller dialect.
type Emitter struct {
	Params  EmitParams
	profile model.GCodeProfile
}

// New creates an emitter for the profile named in the params.
func New(params EmitParams) *Emitter {
	return &Emitter{
		Params:  params,
		profile: model.GetProfile(params.Profile),
	}
}

// Emit produces the complete NC program for an ordered toolpath list. An
// empty list still yields a well-formed program of preamble and footer only.
func (e *Emitter) Emit(toolpaths []model.Toolpath) string {
	var b strings.Builder

	e.writeHeader(&b)

	for i, tp := range toolpaths {
		b.WriteString(e.comment(fmt.Sprintf("Toolpath %d", i+1)))
		// Track the preceding move kind: a cut descending from safe height
		// right after a rapid is a plunge and runs at plunge rate. The
		// heuristic misfires on descending cuts that follow another cut;
		// those stay at feed rate on purpose.
		lastRapid := true
		for _, mv := range tp.Moves {
			if mv.Rapid {
				b.WriteString(fmt.Sprintf("%s X%s Y%s Z%s\n", e.profile.RapidMove,
					e.format(mv.X), e.format(mv.Y), e.format(mv.Z)))
				lastRapid = true
			} else {
				feed := e.Params.FeedRate
				if lastRapid && mv.Z < e.Params.SafeZ-0.01 {
					feed = e.Params.PlungeRate
				}
				b.WriteString(fmt.Sprintf("%s X%s Y%s Z%s F%.0f\n", e.profile.FeedMove,
					e.format(mv.X), e.format(mv.Y), e.format(mv.Z), feed))
				lastRapid = false
			}
		}
		b.WriteString("\n")
	}

	e.writeFooter(&b)
	return b.String()
}

func (e *Emitter) writeHeader(b *strings.Builder) {
	p := e.profile

	b.WriteString(e.comment("PathCut generated G-code"))
	b.WriteString(e.comment(fmt.Sprintf("Profile: %s", p.Name)))
	b.WriteString(e.comment(fmt.Sprintf("Feed: %.0f mm/min, Plunge: %.0f mm/min",
		e.Params.FeedRate, e.Params.PlungeRate)))

	for _, code := range p.StartCode {
		if p.Units == "inches" {
			code = strings.ReplaceAll(code, "G21", "G20")
		}
		b.WriteString(code + "\n")
	}

	b.WriteString(fmt.Sprintf("%s Z%s\n", p.RapidMove, e.format(e.Params.SafeZ)))

	if p.SpindleStart != "" {
		b.WriteString(fmt.Sprintf(p.SpindleStart+"\n", e.Params.SpindleSpeed))
	}
	b.WriteString("\n")
}

func (e *Emitter) writeFooter(b *strings.Builder) {
	p := e.profile

	b.WriteString(fmt.Sprintf("%s Z%s\n", p.RapidMove, e.format(e.Params.SafeZ)))
	if p.SpindleStop != "" {
		b.WriteString(p.SpindleStop + "\n")
	}
	for _, code := range p.EndCode {
		code = strings.ReplaceAll(code, "[SafeZ]", e.format(e.Params.SafeZ))
		b.WriteString(code + "\n")
	}
}

// comment wraps text in the profile's comment syntax.
func (e *Emitter) comment(text string) string {
	if e.profile.CommentSuffix != "" {
		return e.profile.CommentPrefix + " " + text + " " + e.profile.CommentSuffix + "\n"
	}
	return e.profile.CommentPrefix + " " + text + "\n"
}

// format formats a coordinate according to the profile's decimal places.
func (e *Emitter) format(v float64) string {
	return fmt.Sprintf(fmt.Sprintf("%%.%df", e.profile.DecimalPlaces), v)
}
