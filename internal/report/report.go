// Package report renders console summaries of a loaded sheet.
package report

import (
	"fmt"
	"io"
	"strconv"

	"sheetCols/internal/excel"
	"sheetCols/internal/table"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
)

const maxSampleWidth = 24

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
)

// Columns writes one line per column: its position, name, captured number
// format and the first non-empty value.
func Columns(w io.Writer, t *table.Table, formats excel.FormatMap) error {
	tbl := lgtable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("241"))).
		Headers("#", "Column", "Format", "Sample").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == lgtable.HeaderRow:
				return headerStyle
			case col == 2 || col == 3:
				return mutedStyle
			}
			return cellStyle
		})

	for i, name := range t.Columns {
		format := "General"
		if nf, ok := formats[name]; ok {
			format = nf.String()
		}
		tbl.Row(strconv.Itoa(i+1), name, format, sample(t, name))
	}

	_, err := fmt.Fprintln(w, tbl.Render())
	return err
}

func sample(t *table.Table, column string) string {
	for _, row := range t.Rows {
		v := row[column]
		if v == nil {
			continue
		}
		return ansi.Truncate(fmt.Sprint(v), maxSampleWidth, "...")
	}
	return ""
}
