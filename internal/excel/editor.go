package excel

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Editor wraps an excelize workbook bound to a path on disk.
type Editor struct {
	file     *excelize.File
	filepath string
}

// OpenFile opens an existing Excel file
func OpenFile(filepath string) (*Editor, error) {
	file, err := excelize.OpenFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return &Editor{
		file:     file,
		filepath: filepath,
	}, nil
}

// CreateNewFile creates a new Excel file in memory. The workbook holds one
// sheet, named by DefaultSheet.
func CreateNewFile() *Editor {
	file := excelize.NewFile()
	return &Editor{
		file:     file,
		filepath: "",
	}
}

// DefaultSheet is the sheet name of a workbook made by CreateNewFile.
const DefaultSheet = "Sheet1"

// FirstSheet returns the name of the first sheet in the workbook.
func (e *Editor) FirstSheet() (string, error) {
	sheets := e.file.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("workbook has no sheets")
	}
	return sheets[0], nil
}

// GetRawRows returns all rows of a sheet with unformatted cell values, so a
// percentage cell reads as 0.5 instead of 50%.
func (e *Editor) GetRawRows(sheet string) ([][]string, error) {
	rows, err := e.file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	return rows, nil
}

// GetCellDataType returns the stored type of a cell.
func (e *Editor) GetCellDataType(sheet, cell string) (excelize.CellType, error) {
	return e.file.GetCellType(sheet, cell)
}

// GetCellNumberFormat returns the number format of the style applied to a
// cell. Cells without a style report the General format.
func (e *Editor) GetCellNumberFormat(sheet, cell string) (NumberFormat, error) {
	styleID, err := e.file.GetCellStyle(sheet, cell)
	if err != nil {
		return NumberFormat{}, fmt.Errorf("failed to get style of %s: %w", cell, err)
	}
	style, err := e.file.GetStyle(styleID)
	if err != nil {
		return NumberFormat{}, fmt.Errorf("failed to read style %d: %w", styleID, err)
	}

	nf := NumberFormat{ID: style.NumFmt}
	if style.CustomNumFmt != nil {
		nf.Code = *style.CustomNumFmt
	}
	return nf, nil
}

// SetCellValue sets a value in a specific cell
func (e *Editor) SetCellValue(sheet, cell string, value interface{}) error {
	return e.file.SetCellValue(sheet, cell, value)
}

// SetRangeNumberFormat applies a number format to every cell in the range
// topLeft:bottomRight.
func (e *Editor) SetRangeNumberFormat(sheet, topLeft, bottomRight string, styleID int) error {
	if err := e.file.SetCellStyle(sheet, topLeft, bottomRight, styleID); err != nil {
		return fmt.Errorf("failed to apply style to %s:%s: %w", topLeft, bottomRight, err)
	}
	return nil
}

// NewNumberFormatStyle registers a style carrying only the given number
// format and returns its id.
func (e *Editor) NewNumberFormatStyle(nf NumberFormat) (int, error) {
	style := &excelize.Style{NumFmt: nf.ID}
	if nf.Code != "" {
		code := nf.Code
		style.CustomNumFmt = &code
	}
	id, err := e.file.NewStyle(style)
	if err != nil {
		return 0, fmt.Errorf("failed to create number format style %q: %w", nf, err)
	}
	return id, nil
}

// Save saves the Excel file to the original filepath
func (e *Editor) Save() error {
	if e.filepath == "" {
		return fmt.Errorf("no filepath specified, use SaveAs instead")
	}
	return e.file.SaveAs(e.filepath)
}

// SaveAs saves the Excel file with a new name
func (e *Editor) SaveAs(filepath string) error {
	e.filepath = filepath
	return e.file.SaveAs(filepath)
}

// Close closes the Excel file
func (e *Editor) Close() error {
	return e.file.Close()
}

// parseNumericValue attempts to parse a string as a number and returns the appropriate type.
// Returns the original string if it's not a valid number.
func parseNumericValue(value string) interface{} {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return value
	}

	// Try to parse as integer first
	if intVal, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return intVal
	}

	if floatVal, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return floatVal
	}

	return value
}

// cellValue converts a raw cell string into a typed value according to the
// cell's stored type.
func cellValue(raw string, cellType excelize.CellType) any {
	if raw == "" {
		return nil
	}

	switch cellType {
	case excelize.CellTypeBool:
		switch strings.ToUpper(raw) {
		case "1", "TRUE":
			return true
		case "0", "FALSE":
			return false
		}
		return raw
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula, excelize.CellTypeError:
		return raw
	default:
		return parseNumericValue(raw)
	}
}
