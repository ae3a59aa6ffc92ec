package excel

import (
	"fmt"

	"sheetCols/internal/logger"
	"sheetCols/internal/table"

	"github.com/xuri/excelize/v2"
)

// WriteTable writes t to a new workbook at path: a header row with the
// column names followed by one row per data row. An existing file at path
// is overwritten.
func WriteTable(t *table.Table, path string) error {
	editor := CreateNewFile()
	defer editor.Close()

	for c, name := range t.Columns {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return &WriteError{Path: path, Err: err}
		}
		if err := editor.SetCellValue(DefaultSheet, cell, name); err != nil {
			return &WriteError{Path: path, Err: fmt.Errorf("failed to write header %q: %w", name, err)}
		}
	}

	for r := range t.Rows {
		for c, value := range t.Values(r) {
			if value == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return &WriteError{Path: path, Err: err}
			}
			if err := editor.SetCellValue(DefaultSheet, cell, value); err != nil {
				return &WriteError{Path: path, Err: fmt.Errorf("failed to write cell %s: %w", cell, err)}
			}
		}
	}

	if err := editor.SaveAs(path); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	logger.Info("Wrote table", "file", path, "rows", t.RowCount(), "columns", t.ColumnCount())
	return nil
}
