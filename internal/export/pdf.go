// Package export writes machining results to shareable file formats: a
// toolpath preview PDF and QR-coded job traveler labels.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/pathcut/internal/model"
)

// moveColor represents an RGB color for a class of toolpath moves.
type moveColor struct {
	R, G, B int
}

// Move colors mirror the scheme used in the viewer widget.
var (
	colorCutMove   = moveColor{R: 30, G: 120, B: 255} // blue: cutting
	colorRapidMove = moveColor{R: 255, G: 60, B: 60}  // red: rapid
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 12.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF renders a toolpath list as a PDF: one page with all toolpaths
// overlaid in plan (XY) view, followed by one page per toolpath. Rapids draw
// red, cuts blue; the header carries the job statistics.
func ExportPDF(path string, toolpaths []model.Toolpath, stats model.JobStats) error {
	if len(toolpaths) == 0 {
		return fmt.Errorf("no toolpaths to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderOverviewPage(pdf, toolpaths, stats)

	for i, tp := range toolpaths {
		pdf.AddPage()
		renderToolpathPage(pdf, tp, i+1, len(toolpaths))
	}

	return pdf.OutputFileAndClose(path)
}

// renderOverviewPage draws every toolpath on one page.
func renderOverviewPage(pdf *fpdf.Fpdf, toolpaths []model.Toolpath, stats model.JobStats) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Toolpath overview — %d toolpaths", len(toolpaths))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	line := fmt.Sprintf("Moves: %d | Cut: %.0f mm | Rapid: %.0f mm | Est. time: %.1f min",
		stats.MoveCount, stats.CutDistance, stats.RapidDistance, stats.EstimatedTime)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, line, "", 0, "L", false, 0, "")

	drawToolpaths(pdf, toolpaths)
}

// renderToolpathPage draws a single toolpath on the current page.
func renderToolpathPage(pdf *fpdf.Fpdf, tp model.Toolpath, num, total int) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Toolpath %d of %d — %d moves", num, total, len(tp.Moves))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	drawToolpaths(pdf, []model.Toolpath{tp})
}

// drawToolpaths scales the XY extent of the given toolpaths into the drawing
// area and traces their moves.
func drawToolpaths(pdf *fpdf.Fpdf, toolpaths []model.Toolpath) {
	minX, minY, maxX, maxY, ok := moveExtent(toolpaths)
	if !ok {
		return
	}
	spanX := maxX - minX
	spanY := maxY - minY
	if spanX < 1 {
		spanX = 1
	}
	if spanY < 1 {
		spanY = 1
	}

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight
	scale := math.Min(drawWidth/spanX, drawHeight/spanY)

	canvasW := spanX * scale
	canvasH := spanY * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Work envelope outline
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.3)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "D")

	// PDF Y grows downward; flip so +Y in machine space points up the page
	toPage := func(x, y float64) (float64, float64) {
		return offsetX + (x-minX)*scale, offsetY + canvasH - (y-minY)*scale
	}

	for _, tp := range toolpaths {
		haveCur := false
		var curX, curY float64
		for _, mv := range tp.Moves {
			px, py := toPage(mv.X, mv.Y)
			if haveCur {
				if mv.Rapid {
					pdf.SetDrawColor(colorRapidMove.R, colorRapidMove.G, colorRapidMove.B)
					pdf.SetLineWidth(0.1)
				} else {
					pdf.SetDrawColor(colorCutMove.R, colorCutMove.G, colorCutMove.B)
					pdf.SetLineWidth(0.25)
				}
				pdf.Line(curX, curY, px, py)
			}
			curX, curY = px, py
			haveCur = true
		}
	}

	// Legend
	pdf.SetFont("Helvetica", "", 8)
	legendY := offsetY + canvasH + 5
	pdf.SetDrawColor(colorCutMove.R, colorCutMove.G, colorCutMove.B)
	pdf.SetLineWidth(0.4)
	pdf.Line(marginLeft, legendY, marginLeft+8, legendY)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft+10, legendY-2)
	pdf.CellFormat(20, 4, "cut", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(colorRapidMove.R, colorRapidMove.G, colorRapidMove.B)
	pdf.Line(marginLeft+35, legendY, marginLeft+43, legendY)
	pdf.SetXY(marginLeft+45, legendY-2)
	pdf.CellFormat(20, 4, "rapid", "", 0, "L", false, 0, "")
}

// moveExtent returns the XY bounding rectangle of all moves.
func moveExtent(toolpaths []model.Toolpath) (minX, minY, maxX, maxY float64, ok bool) {
	minX, minY = math.MaxFloat64, math.MaxFloat64
	maxX, maxY = -math.MaxFloat64, -math.MaxFloat64
	for _, tp := range toolpaths {
		for _, mv := range tp.Moves {
			minX = math.Min(minX, mv.X)
			minY = math.Min(minY, mv.Y)
			maxX = math.Max(maxX, mv.X)
			maxY = math.Max(maxY, mv.Y)
			ok = true
		}
	}
	return minX, minY, maxX, maxY, ok
}
