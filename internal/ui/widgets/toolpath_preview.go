// Package widgets holds the custom Fyne canvas widgets of the viewer.
package widgets

import (
	"fmt"
	"image/color"
	"math"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/pathcut/internal/gcode"
)

// Toolpath colors for different move types.
var (
	colorRapid   = color.NRGBA{R: 255, G: 60, B: 60, A: 200}  // Red for rapid moves
	colorFeed    = color.NRGBA{R: 30, G: 120, B: 255, A: 230} // Blue for cutting moves
	colorPlunge  = color.NRGBA{R: 50, G: 200, B: 50, A: 220}  // Green for plunge
	colorRetract = color.NRGBA{R: 180, G: 180, B: 0, A: 180}  // Yellow for retract
	colorDimFeed = color.NRGBA{R: 30, G: 120, B: 255, A: 60}  // Dim blue for remaining feed moves
	colorDimRap  = color.NRGBA{R: 255, G: 60, B: 60, A: 50}   // Dim red for remaining rapid moves
	colorToolPos = color.NRGBA{R: 255, G: 0, B: 0, A: 255}    // Bright red for tool position
	colorDoneFd  = color.NRGBA{R: 0, G: 200, B: 80, A: 230}   // Green for completed feed
	colorDoneRap = color.NRGBA{R: 200, G: 100, B: 100, A: 130}
)

// ToolpathPreview is a custom Fyne widget that renders a plan (XY) view of
// parsed G-code movements. It supports simulation mode where only a subset of
// moves are shown as "completed", with a marker at the current tool position.
type ToolpathPreview struct {
	widget.BaseWidget
	moves     []gcode.Move
	minX      float64
	minY      float64
	spanX     float64
	spanY     float64
	maxWidth  float32
	maxHeight float32

	// Simulation state: how many moves to show as completed.
	// -1 means show all moves (no simulation mode).
	mu           sync.Mutex
	visibleMoves int
}

// NewToolpathPreview creates a preview widget sized to fit within maxW x maxH.
func NewToolpathPreview(moves []gcode.Move, maxW, maxH float32) *ToolpathPreview {
	tp := &ToolpathPreview{
		moves:        moves,
		maxWidth:     maxW,
		maxHeight:    maxH,
		visibleMoves: -1, // show all by default
	}
	tp.computeExtent()
	tp.ExtendBaseWidget(tp)
	return tp
}

// computeExtent finds the XY range of all moves for scaling.
func (tp *ToolpathPreview) computeExtent() {
	minX, minY := math.MaxFloat64, math.MaxFloat64
	maxX, maxY := -math.MaxFloat64, -math.MaxFloat64
	for _, m := range tp.moves {
		for _, p := range [2][2]float64{{m.FromX, m.FromY}, {m.ToX, m.ToY}} {
			minX = math.Min(minX, p[0])
			minY = math.Min(minY, p[1])
			maxX = math.Max(maxX, p[0])
			maxY = math.Max(maxY, p[1])
		}
	}
	if len(tp.moves) == 0 {
		minX, minY, maxX, maxY = 0, 0, 1, 1
	}
	tp.minX = minX
	tp.minY = minY
	tp.spanX = math.Max(maxX-minX, 1)
	tp.spanY = math.Max(maxY-minY, 1)
}

// SetVisibleMoves sets how many moves to show as "completed" in simulation
// mode. Pass -1 to show all moves (no simulation). Pass 0 to show none.
func (tp *ToolpathPreview) SetVisibleMoves(n int) {
	tp.mu.Lock()
	if n >= len(tp.moves) {
		tp.visibleMoves = -1
	} else {
		tp.visibleMoves = n
	}
	tp.mu.Unlock()
	tp.Refresh()
}

// MoveCount returns the total number of parsed moves.
func (tp *ToolpathPreview) MoveCount() int {
	return len(tp.moves)
}

// MoveInfo holds display information about a single move.
type MoveInfo struct {
	Index    int
	Type     string
	ToX      float64
	ToY      float64
	ToZ      float64
	FeedRate float64
}

// GetMoveInfo returns information about the move at the given index.
// Returns nil if the index is out of range.
func (tp *ToolpathPreview) GetMoveInfo(idx int) *MoveInfo {
	if idx < 0 || idx >= len(tp.moves) {
		return nil
	}
	m := tp.moves[idx]
	var typeName string
	switch m.Type {
	case gcode.MoveRapid:
		typeName = "Rapid"
	case gcode.MoveFeed:
		typeName = "Feed"
	case gcode.MovePlunge:
		typeName = "Plunge"
	case gcode.MoveRetract:
		typeName = "Retract"
	default:
		typeName = "Unknown"
	}
	return &MoveInfo{
		Index:    idx,
		Type:     typeName,
		ToX:      m.ToX,
		ToY:      m.ToY,
		ToZ:      m.ToZ,
		FeedRate: m.FeedRate,
	}
}

// CreateRenderer implements fyne.Widget.
func (tp *ToolpathPreview) CreateRenderer() fyne.WidgetRenderer {
	return newToolpathPreviewRenderer(tp)
}

type toolpathPreviewRenderer struct {
	tp               *ToolpathPreview
	objects          []fyne.CanvasObject
	lastVisibleMoves int
	built            bool
}

func newToolpathPreviewRenderer(tp *ToolpathPreview) *toolpathPreviewRenderer {
	r := &toolpathPreviewRenderer{tp: tp}
	r.rebuild()
	return r
}

func (r *toolpathPreviewRenderer) scaleAndMargin() (float32, float32) {
	tp := r.tp
	margin := float32(10)
	scaleX := (tp.maxWidth - margin*2) / float32(tp.spanX)
	scaleY := (tp.maxHeight - margin*2) / float32(tp.spanY)
	scale := scaleX
	if scaleY < scale {
		scale = scaleY
	}
	if scale <= 0 {
		scale = 1
	}
	return scale, margin
}

func (r *toolpathPreviewRenderer) rebuild() {
	r.objects = nil

	tp := r.tp
	tp.mu.Lock()
	visibleMoves := tp.visibleMoves
	tp.mu.Unlock()
	r.lastVisibleMoves = visibleMoves
	r.built = true

	scale, margin := r.scaleAndMargin()
	canvasW := float32(tp.spanX) * scale
	canvasH := float32(tp.spanY) * scale

	// Machine Y points up; screen Y points down
	toScreen := func(x, y float64) (float32, float32) {
		sx := float32(x-tp.minX)*scale + margin
		sy := canvasH - float32(y-tp.minY)*scale + margin
		return sx, sy
	}

	// Work envelope outline
	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.NRGBA{R: 128, G: 128, B: 128, A: 180}
	border.StrokeWidth = 1.5
	border.Resize(fyne.NewSize(canvasW, canvasH))
	border.Move(fyne.NewPos(margin, margin))
	r.objects = append(r.objects, border)

	simulating := visibleMoves >= 0

	// Track tool position for simulation marker
	var toolX, toolY float32
	toolVisible := false

	for i, m := range tp.moves {
		fromX, fromY := toScreen(m.FromX, m.FromY)
		toX, toY := toScreen(m.ToX, m.ToY)

		dx := m.ToX - m.FromX
		dy := m.ToY - m.FromY
		xyDist := math.Sqrt(dx*dx + dy*dy)

		isCompleted := !simulating || i < visibleMoves
		isCurrent := simulating && i == visibleMoves

		if isCurrent {
			toolX = toX
			toolY = toY
			toolVisible = true
		}

		switch m.Type {
		case gcode.MoveRapid:
			if xyDist < 0.01 {
				continue
			}
			lineColor := colorRapid
			if simulating {
				if isCompleted {
					lineColor = colorDoneRap
				} else {
					lineColor = colorDimRap
				}
			}
			line := canvas.NewLine(lineColor)
			line.StrokeWidth = 1
			line.Position1 = fyne.NewPos(fromX, fromY)
			line.Position2 = fyne.NewPos(toX, toY)
			r.objects = append(r.objects, line)

		case gcode.MoveFeed:
			if xyDist < 0.01 {
				continue
			}
			lineColor := colorFeed
			if simulating {
				if isCompleted {
					lineColor = colorDoneFd
				} else {
					lineColor = colorDimFeed
				}
			}
			line := canvas.NewLine(lineColor)
			line.StrokeWidth = 2
			line.Position1 = fyne.NewPos(fromX, fromY)
			line.Position2 = fyne.NewPos(toX, toY)
			r.objects = append(r.objects, line)

		case gcode.MovePlunge:
			markerColor := colorPlunge
			if simulating && !isCompleted {
				markerColor = color.NRGBA{R: 50, G: 200, B: 50, A: 60}
			}
			marker := canvas.NewCircle(markerColor)
			markerSize := float32(4)
			marker.Resize(fyne.NewSize(markerSize, markerSize))
			marker.Move(fyne.NewPos(fromX-markerSize/2, fromY-markerSize/2))
			r.objects = append(r.objects, marker)

		case gcode.MoveRetract:
			if xyDist < 0.01 {
				markerColor := colorRetract
				if simulating && !isCompleted {
					markerColor = color.NRGBA{R: 180, G: 180, B: 0, A: 50}
				}
				marker := canvas.NewCircle(markerColor)
				markerSize := float32(3)
				marker.Resize(fyne.NewSize(markerSize, markerSize))
				marker.Move(fyne.NewPos(fromX-markerSize/2, fromY-markerSize/2))
				r.objects = append(r.objects, marker)
			} else {
				lineColor := colorRetract
				if simulating && !isCompleted {
					lineColor = color.NRGBA{R: 180, G: 180, B: 0, A: 50}
				}
				line := canvas.NewLine(lineColor)
				line.StrokeWidth = 1
				line.Position1 = fyne.NewPos(fromX, fromY)
				line.Position2 = fyne.NewPos(toX, toY)
				r.objects = append(r.objects, line)
			}
		}
	}

	// Draw tool position marker on top of everything
	if toolVisible {
		outerSize := float32(12)
		outer := canvas.NewCircle(color.Transparent)
		outer.StrokeColor = colorToolPos
		outer.StrokeWidth = 2
		outer.Resize(fyne.NewSize(outerSize, outerSize))
		outer.Move(fyne.NewPos(toolX-outerSize/2, toolY-outerSize/2))
		r.objects = append(r.objects, outer)

		innerSize := float32(4)
		inner := canvas.NewCircle(colorToolPos)
		inner.Resize(fyne.NewSize(innerSize, innerSize))
		inner.Move(fyne.NewPos(toolX-innerSize/2, toolY-innerSize/2))
		r.objects = append(r.objects, inner)
	}
}

func (r *toolpathPreviewRenderer) Layout(size fyne.Size) {}

func (r *toolpathPreviewRenderer) Refresh() {
	r.tp.mu.Lock()
	vm := r.tp.visibleMoves
	r.tp.mu.Unlock()
	if r.built && vm == r.lastVisibleMoves {
		return
	}
	r.rebuild()
}

func (r *toolpathPreviewRenderer) Destroy()                     {}
func (r *toolpathPreviewRenderer) Objects() []fyne.CanvasObject { return r.objects }

func (r *toolpathPreviewRenderer) MinSize() fyne.Size {
	scale, margin := r.scaleAndMargin()
	return fyne.NewSize(
		float32(r.tp.spanX)*scale+margin*2,
		float32(r.tp.spanY)*scale+margin*2,
	)
}

// RenderSimulation creates a preview panel with simulation controls: a
// progress slider, a move counter, and a coordinate display. Completed feed
// moves are shown in green, remaining moves in dim colors, with a red ring
// and dot marking the current tool position.
func RenderSimulation(gcodeStr string) fyne.CanvasObject {
	moves := gcode.Parse(gcodeStr)
	if len(moves) == 0 {
		return widget.NewLabel("No toolpath moves found in G-code.")
	}

	preview := NewToolpathPreview(moves, 700, 450)
	totalMoves := preview.MoveCount()

	// Start in "show all" mode (non-simulation)
	preview.SetVisibleMoves(-1)

	moveLabel := widget.NewLabel(fmt.Sprintf("Move: %d / %d", totalMoves, totalMoves))
	moveLabel.TextStyle = fyne.TextStyle{Monospace: true}

	coordLabel := widget.NewLabel("X: --  Y: --  Z: --  F: --  Type: --")
	coordLabel.TextStyle = fyne.TextStyle{Monospace: true}

	slider := widget.NewSlider(0, float64(totalMoves))
	slider.Value = float64(totalMoves)
	slider.Step = 1
	slider.OnChanged = func(v float64) {
		pos := int(v)
		if pos >= totalMoves {
			preview.SetVisibleMoves(-1)
			moveLabel.SetText(fmt.Sprintf("Move: %d / %d", totalMoves, totalMoves))
		} else {
			preview.SetVisibleMoves(pos)
			moveLabel.SetText(fmt.Sprintf("Move: %d / %d", pos, totalMoves))
		}
		if info := preview.GetMoveInfo(pos - 1); info != nil {
			coordLabel.SetText(fmt.Sprintf("X: %.2f  Y: %.2f  Z: %.2f  F: %.0f  Type: %s",
				info.ToX, info.ToY, info.ToZ, info.FeedRate, info.Type))
		} else {
			coordLabel.SetText("X: --  Y: --  Z: --  F: --  Type: --")
		}
	}

	controls := container.NewVBox(slider, container.NewHBox(moveLabel, coordLabel))
	return container.NewBorder(nil, controls, nil, nil, preview)
}
