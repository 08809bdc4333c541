package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/pathcut/internal/model"
)

// LabelInfo holds the data encoded into each job label's QR code.
type LabelInfo struct {
	JobID        string  `json:"job_id"`
	JobName      string  `json:"name"`
	InputFile    string  `json:"input_file"`
	Strategy     string  `json:"strategy"`
	ToolDiameter float64 `json:"tool_diameter_mm"`
	CutDepth     float64 `json:"cut_depth_mm"`
	Time         float64 `json:"est_time_min"`
	CreatedAt    string  `json:"created_at"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded traveler labels for the given
// jobs. Each label carries the job name, tool and depth summary, and a QR
// code encoding the job metadata as JSON. Labels are laid out on a standard
// label sheet format (Avery 5160 / 3 columns x 10 rows on US Letter).
func ExportLabels(path string, jobs []model.Job) error {
	if len(jobs) == 0 {
		return fmt.Errorf("no jobs to generate labels for")
	}

	labels := CollectLabelInfos(jobs)

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		// Add new page when needed
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.JobName, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	// Draw light border for cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	// Generate QR code PNG bytes
	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	// Register QR image with a unique name
	imgName := fmt.Sprintf("qr_%s", info.JobID)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	// Place QR code on the right side of the label
	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	// Text area (left side of label)
	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	// Job name (bold, larger)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	// Truncate name if too long
	name := info.JobName
	if pdf.GetStringWidth(name) > textW {
		for len(name) > 0 && pdf.GetStringWidth(name+"...") > textW {
			name = name[:len(name)-1]
		}
		name += "..."
	}
	pdf.CellFormat(textW, 4.5, name, "", 1, "L", false, 0, "")

	// Tool and depth summary
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	summary := fmt.Sprintf("%s, %.2f mm tool, Z %.1f", info.Strategy, info.ToolDiameter, info.CutDepth)
	pdf.CellFormat(textW, 3.5, summary, "", 1, "L", false, 0, "")

	// Run time and source file
	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	detail := fmt.Sprintf("%.0f min | %s", info.Time, info.InputFile)
	pdf.CellFormat(textW, 3, detail, "", 1, "L", false, 0, "")

	// Reset text color
	pdf.SetTextColor(0, 0, 0)

	return nil
}

// CollectLabelInfos extracts label information from job records for use in
// testing or alternative export formats.
func CollectLabelInfos(jobs []model.Job) []LabelInfo {
	var labels []LabelInfo
	for _, job := range jobs {
		labels = append(labels, LabelInfo{
			JobID:        job.ID,
			JobName:      job.Name,
			InputFile:    job.InputFile,
			Strategy:     job.Config.Strategy,
			ToolDiameter: job.Config.ToolDiameter,
			CutDepth:     job.Config.CutDepth,
			Time:         job.Stats.EstimatedTime,
			CreatedAt:    job.CreatedAt,
		})
	}
	return labels
}
