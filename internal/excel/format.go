package excel

import (
	"fmt"

	"sheetCols/internal/logger"

	"github.com/xuri/excelize/v2"
)

// NumberFormat is a cell display format: either a built-in format id or a
// custom format code.
type NumberFormat struct {
	ID   int
	Code string
}

// builtInNumFmt holds the codes of the built-in formats. Ids 5-8 and 27-36
// are locale dependent: 5-8 carry the en-US currency codes, 27-36 the zh-TW
// date codes.
var builtInNumFmt = map[int]string{
	0:  "General",
	1:  "0",
	2:  "0.00",
	3:  "#,##0",
	4:  "#,##0.00",
	5:  `"$"#,##0_);("$"#,##0)`,
	6:  `"$"#,##0_);[Red]("$"#,##0)`,
	7:  `"$"#,##0.00_);("$"#,##0.00)`,
	8:  `"$"#,##0.00_);[Red]("$"#,##0.00)`,
	9:  "0%",
	10: "0.00%",
	11: "0.00E+00",
	12: "# ?/?",
	13: "# ??/??",
	14: "mm-dd-yy",
	15: "d-mmm-yy",
	16: "d-mmm",
	17: "mmm-yy",
	18: "h:mm AM/PM",
	19: "h:mm:ss AM/PM",
	20: "hh:mm",
	21: "hh:mm:ss",
	22: "m/d/yy hh:mm",
	27: "[$-404]e/m/d",
	28: `[$-404]e"年"m"月"d"日"`,
	29: `[$-404]e"年"m"月"d"日"`,
	30: "m/d/yy",
	31: `yyyy"年"m"月"d"日"`,
	32: `hh"時"mm"分"`,
	33: `hh"時"mm"分"ss"秒"`,
	34: `上午/下午hh"時"mm"分"`,
	35: `上午/下午hh"時"mm"分"ss"秒"`,
	36: "[$-404]e/m/d",
	37: "#,##0 ;(#,##0)",
	38: "#,##0 ;[red](#,##0)",
	39: "#,##0.00 ;(#,##0.00)",
	40: "#,##0.00 ;[red](#,##0.00)",
	41: `_(* #,##0_);_(* \(#,##0\);_(* "-"_);_(@_)`,
	42: `_("$"* #,##0_);_("$"* \(#,##0\);_("$"* "-"_);_(@_)`,
	43: `_(* #,##0.00_);_(* \(#,##0.00\);_(* "-"??_);_(@_)`,
	44: `_("$"* #,##0.00_);_("$"* \(#,##0.00\);_("$"* "-"??_);_(@_)`,
	45: "mm:ss",
	46: "[h]:mm:ss",
	47: "mm:ss.0",
	48: "##0.0E+0",
	49: "@",
}

// String returns the format code, e.g. "0.00%".
func (nf NumberFormat) String() string {
	if nf.Code != "" {
		return nf.Code
	}
	if code, ok := builtInNumFmt[nf.ID]; ok {
		return code
	}
	return fmt.Sprintf("numFmt#%d", nf.ID)
}

// IsGeneral reports whether nf is the default General format.
func (nf NumberFormat) IsGeneral() bool {
	if nf.Code != "" {
		return nf.Code == "General"
	}
	return nf.ID == 0
}

// FormatMap maps a column name to its display format. Columns with the
// General format have no entry.
type FormatMap map[string]NumberFormat

// ExtractFormats captures the number format of each column from its first
// data row (row 2). The sampled format is taken to hold for the whole
// column, so a column with mixed formats ends up with the first row's
// format on output.
func ExtractFormats(path string, columns []string) (FormatMap, error) {
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
	formats := make(FormatMap)
	if len(rows) < 2 {
		return formats, nil
	}

	for i, name := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			return nil, &ReadError{Path: path, Err: err}
		}
		nf, err := editor.GetCellNumberFormat(sheet, cell)
		if err != nil {
			return nil, &ReadError{Path: path, Err: err}
		}
		if nf.IsGeneral() {
			continue
		}
		formats[name] = nf
		logger.Debug("Captured column format", "column", name, "cell", cell, "format", nf.String())
	}

	logger.Info("Extracted column formats", "file", path, "formatted_columns", len(formats))
	return formats, nil
}

// ApplyFormats reopens the written file at path and applies each captured
// format to rows 2..rowCount+1 of the matching output column, then saves
// the file in place. columns lists the output columns in file order.
func ApplyFormats(path string, columns []string, formats FormatMap, rowCount int) error {
	if rowCount == 0 || len(formats) == 0 {
		return nil
	}

	editor, err := OpenFile(path)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	defer editor.Close()

	sheet, err := editor.FirstSheet()
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}

	styles := make(map[NumberFormat]int)
	applied := 0
	for i, name := range columns {
		nf, ok := formats[name]
		if !ok {
			continue
		}

		styleID, ok := styles[nf]
		if !ok {
			styleID, err = editor.NewNumberFormatStyle(nf)
			if err != nil {
				return &WriteError{Path: path, Err: err}
			}
			styles[nf] = styleID
		}

		topLeft, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			return &WriteError{Path: path, Err: err}
		}
		bottomRight, err := excelize.CoordinatesToCellName(i+1, rowCount+1)
		if err != nil {
			return &WriteError{Path: path, Err: err}
		}
		if err := editor.SetRangeNumberFormat(sheet, topLeft, bottomRight, styleID); err != nil {
			return &WriteError{Path: path, Err: err}
		}
		applied++
		logger.Debug("Applied column format", "column", name, "range", topLeft+":"+bottomRight, "format", nf.String())
	}

	if applied == 0 {
		return nil
	}
	if err := editor.Save(); err != nil {
		return &WriteError{Path: path, Err: fmt.Errorf("failed to save: %w", err)}
	}

	logger.Info("Applied column formats", "file", path, "formatted_columns", applied)
	return nil
}
