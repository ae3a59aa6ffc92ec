package excel

import (
	"fmt"

	"sheetCols/internal/logger"
	"sheetCols/internal/table"

	"github.com/xuri/excelize/v2"
)

// ReadTable loads the first sheet of the workbook at path. The first row
// supplies the column names; every following row is a data row.
func ReadTable(path string) (*table.Table, error) {
	editor, err := OpenFile(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	defer editor.Close()

	sheet, err := editor.FirstSheet()
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}

	rows, err := editor.GetRawRows(sheet)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	if len(rows) == 0 {
		return nil, &ReadError{Path: path, Err: fmt.Errorf("sheet %q has no header row", sheet)}
	}

	data := make([][]any, 0, len(rows)-1)
	for r := 1; r < len(rows); r++ {
		values := make([]any, len(rows[r]))
		for c, raw := range rows[r] {
			if raw == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, &ReadError{Path: path, Err: err}
			}
			cellType, err := editor.GetCellDataType(sheet, cell)
			if err != nil {
				return nil, &ReadError{Path: path, Err: fmt.Errorf("failed to get type of %s: %w", cell, err)}
			}
			values[c] = cellValue(raw, cellType)
		}
		data = append(data, values)
	}

	t := table.FromRows(rows[0], data)
	logger.Info("Read table", "file", path, "sheet", sheet, "rows", t.RowCount(), "columns", t.ColumnCount())
	return t, nil
}
