// Package importer reads the external inputs of the pipeline: STL meshes,
// DXF vector drawings, and tool libraries from CSV or Excel files. The
// tabular importers support automatic delimiter detection, flexible column
// mapping, and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/pathcut/internal/model"
)

// ToolLibResult holds the results of a tool-library import.
type ToolLibResult struct {
	Tools    []model.LibraryTool
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Name         int
	Type         int
	Diameter     int
	FluteLength  int
	CornerRadius int
	EffectiveDia int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"name":          {"name", "tool", "tool name", "label", "description", "desc"},
	"type":          {"type", "tool type", "kind", "style"},
	"diameter":      {"diameter", "dia", "d", "tool diameter", "size"},
	"flute_length":  {"flute length", "flute", "fl", "loc", "length of cut"},
	"corner_radius": {"corner radius", "corner", "cr", "radius"},
	"effective_dia": {"effective diameter", "effective dia", "eff dia", "cutting diameter"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV
// delimiter. It tries comma, semicolon, tab, and pipe. The delimiter that
// produces the most consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1 // Allow variable field counts

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		// Score: count how many rows share the first row's column count.
		// Only consider delimiters that produce more than 1 column.
		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping. It
// performs case-insensitive matching against known aliases for each column
// role. Returns the mapping and true if a header was detected, or a default
// positional mapping and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Name:         -1,
		Type:         -1,
		Diameter:     -1,
		FluteLength:  -1,
		CornerRadius: -1,
		EffectiveDia: -1,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "name":
					if mapping.Name == -1 {
						mapping.Name = i
					}
				case "type":
					if mapping.Type == -1 {
						mapping.Type = i
					}
				case "diameter":
					if mapping.Diameter == -1 {
						mapping.Diameter = i
					}
				case "flute_length":
					if mapping.FluteLength == -1 {
						mapping.FluteLength = i
					}
				case "corner_radius":
					if mapping.CornerRadius == -1 {
						mapping.CornerRadius = i
					}
				case "effective_dia":
					if mapping.EffectiveDia == -1 {
						mapping.EffectiveDia = i
					}
				}
			}
		}
	}

	if !isHeader {
		// Fall back to positional mapping: Name, Type, Diameter, FluteLength,
		// CornerRadius, EffectiveDiameter
		return ColumnMapping{
			Name:         0,
			Type:         1,
			Diameter:     2,
			FluteLength:  3,
			CornerRadius: 4,
			EffectiveDia: 5,
		}, false
	}

	return mapping, true
}

// parseToolType converts a tool type string to a model.ToolType. It returns
// the type and whether the string was recognized.
func parseToolType(s string) (model.ToolType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "end_mill", "end mill", "endmill", "flat", "square":
		return model.ToolEndMill, true
	case "ball_end", "ball end", "ballend", "ball", "ballnose", "ball nose":
		return model.ToolBallEnd, true
	case "face_mill", "face mill", "facemill", "face":
		return model.ToolFaceMill, true
	default:
		return model.ToolEndMill, false
	}
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseToolRow extracts a library tool from a row using the given column
// mapping. Returns the tool, any error message, and any warning message.
func parseToolRow(row []string, mapping ColumnMapping, rowLabel string, toolCount int) (model.LibraryTool, string, string) {
	name := getCell(row, mapping.Name)
	if name == "" {
		name = fmt.Sprintf("Tool %d", toolCount+1)
	}

	diaStr := getCell(row, mapping.Diameter)
	if diaStr == "" {
		return model.LibraryTool{}, fmt.Sprintf("%s: Missing diameter value", rowLabel), ""
	}
	diameter, err := strconv.ParseFloat(diaStr, 64)
	if err != nil {
		return model.LibraryTool{}, fmt.Sprintf("%s: Invalid diameter '%s'", rowLabel, diaStr), ""
	}
	if diameter <= 0 {
		return model.LibraryTool{}, fmt.Sprintf("%s: Diameter must be positive", rowLabel), ""
	}

	fluteLength := 10.0
	if s := getCell(row, mapping.FluteLength); s != "" {
		fluteLength, err = strconv.ParseFloat(s, 64)
		if err != nil {
			return model.LibraryTool{}, fmt.Sprintf("%s: Invalid flute length '%s'", rowLabel, s), ""
		}
	}

	var warning string
	toolType := model.ToolEndMill
	if s := getCell(row, mapping.Type); s != "" {
		var ok bool
		toolType, ok = parseToolType(s)
		if !ok {
			warning = fmt.Sprintf("%s: Unknown tool type '%s', defaulting to end mill", rowLabel, s)
		}
	}

	var tool model.Tool
	switch toolType {
	case model.ToolBallEnd:
		tool = model.NewBallEnd(diameter, fluteLength)
	case model.ToolFaceMill:
		effective := diameter
		if s := getCell(row, mapping.EffectiveDia); s != "" {
			effective, err = strconv.ParseFloat(s, 64)
			if err != nil {
				return model.LibraryTool{}, fmt.Sprintf("%s: Invalid effective diameter '%s'", rowLabel, s), ""
			}
		}
		tool = model.NewFaceMill(diameter, effective, fluteLength)
	default:
		cornerRadius := 0.0
		if s := getCell(row, mapping.CornerRadius); s != "" {
			cornerRadius, err = strconv.ParseFloat(s, 64)
			if err != nil {
				return model.LibraryTool{}, fmt.Sprintf("%s: Invalid corner radius '%s'", rowLabel, s), ""
			}
		}
		tool = model.NewEndMill(diameter, fluteLength, cornerRadius)
	}

	return model.NewLibraryTool(name, tool), "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportToolsCSV imports a tool library from a CSV file. It automatically
// detects the delimiter and maps columns by header names. Supports comma,
// semicolon, tab, and pipe delimiters.
func ImportToolsCSV(path string) ToolLibResult {
	result := ToolLibResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importToolRows(records, "Line", result.Warnings)
}

// ImportToolsCSVFromReader imports a tool library from a CSV reader with a
// specific delimiter. Useful for testing or when the delimiter is known.
func ImportToolsCSVFromReader(reader io.Reader, delimiter rune) ToolLibResult {
	result := ToolLibResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importToolRows(records, "Line", nil)
}

// ImportToolsExcel imports a tool library from an Excel (.xlsx) file. Reads
// the first sheet and auto-detects column mapping from headers.
func ImportToolsExcel(path string) ToolLibResult {
	result := ToolLibResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importToolRows(rows, "Row", nil)
}

// importToolRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into library tools.
func importToolRows(rows [][]string, rowPrefix string, initialWarnings []string) ToolLibResult {
	result := ToolLibResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		if mapping.Diameter == -1 {
			result.Errors = append(result.Errors, "Required column not found in header: Diameter")
			return result
		}
	} else {
		// No header: if the diameter column of the first row is not numeric
		// the row is an unrecognized header; skip it but keep positional mapping.
		if len(rows[0]) >= 3 {
			if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][2]), 64); err != nil {
				startRow = 1
				result.Warnings = append(result.Warnings, "Detected header row, skipping")
			}
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		tool, errMsg, warning := parseToolRow(row, mapping, rowLabel, len(result.Tools))

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Tools = append(result.Tools, tool)
	}

	return result
}
