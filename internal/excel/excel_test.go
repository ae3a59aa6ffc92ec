package excel

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"sheetCols/internal/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const currencyFmt = "$#,##0.00"

// writeSales creates a sales workbook: Name (text), Revenue (currency),
// Margin (0.00%), Units (integers) and Active (booleans).
func writeSales(t *testing.T, dir string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	rows := [][]any{
		{"Name", "Revenue", "Margin", "Units", "Active"},
		{"Widget", 1200.5, 0.25, 10, true},
		{"Gadget", 800.0, 0.5, 4, false},
		{"Gizmo", nil, 0.125, 7, true},
	}
	for r, row := range rows {
		for c, v := range row {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}

	currency := currencyFmt
	revenueStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &currency})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle(sheet, "B2", "B4", revenueStyle))

	pctStyle, err := f.NewStyle(&excelize.Style{NumFmt: 10})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle(sheet, "C2", "C4", pctStyle))

	path := filepath.Join(dir, "sales.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func cellFormat(t *testing.T, path, cell string) NumberFormat {
	t.Helper()
	editor, err := OpenFile(path)
	require.NoError(t, err)
	defer editor.Close()

	nf, err := editor.GetCellNumberFormat(DefaultSheet, cell)
	require.NoError(t, err)
	return nf
}

func TestValidateInputFile(t *testing.T) {
	dir := t.TempDir()
	xlsx := writeSales(t, dir)
	csv := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(csv, []byte("a,b\n1,2\n"), 0644))

	assert.NoError(t, ValidateInputFile(xlsx))

	var notFound *NotFoundError
	err := ValidateInputFile(filepath.Join(dir, "missing.xlsx"))
	require.ErrorAs(t, err, &notFound)
	assert.Contains(t, err.Error(), "missing.xlsx")

	var unsupported *UnsupportedFormatError
	err = ValidateInputFile(csv)
	require.ErrorAs(t, err, &unsupported)
	assert.Contains(t, err.Error(), "unsupported file format")

	var readErr *ReadError
	assert.ErrorAs(t, ValidateInputFile(dir), &readErr)
}

func TestValidateInputFile_RejectsLegacyXLS(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.xls")
	require.NoError(t, os.WriteFile(path, []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, 0644))

	var unsupported *UnsupportedFormatError
	err := ValidateInputFile(path)
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, ".xls", unsupported.Ext)
	assert.Contains(t, err.Error(), ".xlsx, .xlsm")
}

func TestIsSpreadsheet(t *testing.T) {
	assert.True(t, IsSpreadsheet("a.xlsx"))
	assert.True(t, IsSpreadsheet("A.XLSX"))
	assert.True(t, IsSpreadsheet("a.xlsm"))
	assert.False(t, IsSpreadsheet("a.xls"))
	assert.False(t, IsSpreadsheet("a.csv"))
	assert.False(t, IsSpreadsheet("xlsx"))
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"data.xlsx", "data_filtered.xlsx"},
		{filepath.Join("reports", "q1.sales.xlsx"), filepath.Join("reports", "q1.sales_filtered.xlsx")},
		{filepath.Join("in", "Book.XLSM"), filepath.Join("in", "Book_filtered.XLSM")},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, OutputPath(tt.input))
		})
	}
}

func TestReadTable(t *testing.T) {
	path := writeSales(t, t.TempDir())

	tbl, err := ReadTable(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Revenue", "Margin", "Units", "Active"}, tbl.Columns)
	require.Equal(t, 3, tbl.RowCount())
	assert.Equal(t, []any{"Widget", 1200.5, 0.25, int64(10), true}, tbl.Values(0))
	assert.Equal(t, []any{"Gadget", int64(800), 0.5, int64(4), false}, tbl.Values(1))
	assert.Nil(t, tbl.Rows[2]["Revenue"])
}

func TestReadTable_KeepsNumericText(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "Zip"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "00123"))
	path := filepath.Join(t.TempDir(), "zip.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	tbl, err := ReadTable(path)
	require.NoError(t, err)
	assert.Equal(t, "00123", tbl.Rows[0]["Zip"])
}

func TestReadTable_UsesFirstSheet(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Data"))
	_, err := f.NewSheet("Other")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Data", "A1", "Kept"))
	require.NoError(t, f.SetCellValue("Other", "A1", "Ignored"))
	f.SetActiveSheet(1)
	path := filepath.Join(t.TempDir(), "multi.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	tbl, err := ReadTable(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Kept"}, tbl.Columns)
	assert.Zero(t, tbl.RowCount())
}

func TestReadTable_Errors(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SaveAs(empty))
	require.NoError(t, f.Close())

	corrupt := filepath.Join(dir, "corrupt.xlsx")
	require.NoError(t, os.WriteFile(corrupt, []byte("not a zip archive"), 0644))

	for _, path := range []string{empty, corrupt} {
		t.Run(filepath.Base(path), func(t *testing.T) {
			_, err := ReadTable(path)
			var readErr *ReadError
			require.ErrorAs(t, err, &readErr)
			assert.Equal(t, path, readErr.Path)
		})
	}
}

func TestExtractFormats(t *testing.T) {
	path := writeSales(t, t.TempDir())
	columns := []string{"Name", "Revenue", "Margin", "Units", "Active"}

	formats, err := ExtractFormats(path, columns)
	require.NoError(t, err)

	require.Len(t, formats, 2)
	assert.Equal(t, currencyFmt, formats["Revenue"].String())
	assert.Equal(t, "0.00%", formats["Margin"].String())
	assert.NotContains(t, formats, "Name")
}

func TestExtractFormats_HeaderOnly(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "Name"))
	path := filepath.Join(t.TempDir(), "header.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	formats, err := ExtractFormats(path, []string{"Name"})
	require.NoError(t, err)
	assert.Empty(t, formats)
}

func TestExtractFormats_AccountingBuiltIn(t *testing.T) {
	dir := t.TempDir()
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Item", "Cost"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"Desk", 349.9}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]any{"Lamp", -12.5}))
	accounting, err := f.NewStyle(&excelize.Style{NumFmt: 44})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Sheet1", "B2", "B3", accounting))
	input := filepath.Join(dir, "costs.xlsx")
	require.NoError(t, f.SaveAs(input))
	require.NoError(t, f.Close())

	formats, err := ExtractFormats(input, []string{"Item", "Cost"})
	require.NoError(t, err)
	require.Contains(t, formats, "Cost")
	assert.Equal(t, 44, formats["Cost"].ID)
	assert.Equal(t, `_("$"* #,##0.00_);_("$"* \(#,##0.00\);_("$"* "-"??_);_(@_)`, formats["Cost"].String())

	tbl, err := ReadTable(input)
	require.NoError(t, err)
	output := OutputPath(input)
	require.NoError(t, WriteTable(tbl, output))
	require.NoError(t, ApplyFormats(output, tbl.Columns, formats, tbl.RowCount()))
	assert.Equal(t, 44, cellFormat(t, output, "B3").ID)
}

func TestNumberFormat(t *testing.T) {
	assert.True(t, NumberFormat{}.IsGeneral())
	assert.True(t, NumberFormat{Code: "General"}.IsGeneral())
	assert.False(t, NumberFormat{ID: 9}.IsGeneral())
	assert.False(t, NumberFormat{ID: 164, Code: "0.0%"}.IsGeneral())

	assert.Equal(t, "0%", NumberFormat{ID: 9}.String())
	assert.Equal(t, "0.0%", NumberFormat{ID: 164, Code: "0.0%"}.String())
	assert.Equal(t, "numFmt#58", NumberFormat{ID: 58}.String())

	for _, id := range []int{5, 8, 27, 36, 41, 44} {
		assert.NotEqual(t, fmt.Sprintf("numFmt#%d", id), NumberFormat{ID: id}.String(), "id %d", id)
	}
}

func TestPipeline_SalesScenario(t *testing.T) {
	dir := t.TempDir()
	input := writeSales(t, dir)

	src, err := ReadTable(input)
	require.NoError(t, err)
	formats, err := ExtractFormats(input, src.Columns)
	require.NoError(t, err)

	projected, err := table.Project(src, []string{"Margin", "Name"})
	require.NoError(t, err)

	output := OutputPath(input)
	assert.Equal(t, filepath.Join(dir, "sales_filtered.xlsx"), output)

	require.NoError(t, WriteTable(projected, output))
	require.NoError(t, ApplyFormats(output, projected.Columns, formats, projected.RowCount()))

	out, err := ReadTable(output)
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Margin"}, out.Columns)
	assert.Equal(t, src.RowCount(), out.RowCount())
	assert.Equal(t, []any{"Gadget", 0.5}, out.Values(1))

	for _, cell := range []string{"B2", "B3", "B4"} {
		assert.Equal(t, "0.00%", cellFormat(t, output, cell).String(), cell)
	}
	assert.True(t, cellFormat(t, output, "A2").IsGeneral())

	f, err := excelize.OpenFile(output)
	require.NoError(t, err)
	defer f.Close()
	shown, err := f.GetCellValue(DefaultSheet, "B3")
	require.NoError(t, err)
	assert.Equal(t, "50.00%", shown)

	rows, err := f.GetRows(DefaultSheet)
	require.NoError(t, err)
	for _, row := range rows {
		for _, v := range row {
			assert.NotEqual(t, "Revenue", v)
			assert.NotEqual(t, "Units", v)
		}
	}
}

func TestPipeline_Idempotent(t *testing.T) {
	dir := t.TempDir()
	input := writeSales(t, dir)
	output := OutputPath(input)

	run := func() *table.Table {
		src, err := ReadTable(input)
		require.NoError(t, err)
		formats, err := ExtractFormats(input, src.Columns)
		require.NoError(t, err)
		projected, err := table.Project(src, []string{"Name", "Revenue"})
		require.NoError(t, err)
		require.NoError(t, WriteTable(projected, output))
		require.NoError(t, ApplyFormats(output, projected.Columns, formats, projected.RowCount()))

		out, err := ReadTable(output)
		require.NoError(t, err)
		return out
	}

	first := run()
	second := run()
	assert.Equal(t, first, second)
	assert.Equal(t, currencyFmt, cellFormat(t, output, "B2").String())
}

func TestApplyFormats_FirstRowFormatCoversColumn(t *testing.T) {
	dir := t.TempDir()
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "Mixed"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", 0.1))
	require.NoError(t, f.SetCellValue("Sheet1", "A3", 20.0))
	pct, err := f.NewStyle(&excelize.Style{NumFmt: 9})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Sheet1", "A2", "A2", pct))
	twoDp, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Sheet1", "A3", "A3", twoDp))
	input := filepath.Join(dir, "mixed.xlsx")
	require.NoError(t, f.SaveAs(input))
	require.NoError(t, f.Close())

	src, err := ReadTable(input)
	require.NoError(t, err)
	formats, err := ExtractFormats(input, src.Columns)
	require.NoError(t, err)

	output := OutputPath(input)
	require.NoError(t, WriteTable(src, output))
	require.NoError(t, ApplyFormats(output, src.Columns, formats, src.RowCount()))

	assert.Equal(t, "0%", cellFormat(t, output, "A2").String())
	assert.Equal(t, "0%", cellFormat(t, output, "A3").String())
}

func TestWriteTable_OverwritesAndSkipsEmptyCells(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0644))

	tbl := table.FromRows([]string{"A", "B"}, [][]any{{"x", nil}, {nil, int64(3)}})
	require.NoError(t, WriteTable(tbl, path))

	got, err := ReadTable(path)
	require.NoError(t, err)
	assert.Equal(t, tbl.Columns, got.Columns)
	assert.Equal(t, []any{"x", nil}, got.Values(0))
	assert.Equal(t, []any{nil, int64(3)}, got.Values(1))
}

func TestWriteErrors(t *testing.T) {
	missingDir := filepath.Join(t.TempDir(), "no", "such", "dir", "out.xlsx")
	tbl := table.FromRows([]string{"A"}, [][]any{{"x"}})

	var writeErr *WriteError
	require.ErrorAs(t, WriteTable(tbl, missingDir), &writeErr)
	assert.Equal(t, missingDir, writeErr.Path)

	err := ApplyFormats(missingDir, []string{"A"}, FormatMap{"A": {ID: 9}}, 1)
	assert.ErrorAs(t, err, &writeErr)
}

func TestApplyFormats_NothingToDo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.xlsx")
	assert.NoError(t, ApplyFormats(path, []string{"A"}, FormatMap{}, 3))
	assert.NoError(t, ApplyFormats(path, []string{"A"}, FormatMap{"A": {ID: 9}}, 0))
}
