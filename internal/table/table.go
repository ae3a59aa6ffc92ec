package table

import (
	"fmt"
	"strconv"
	"strings"
)

// Row maps a column name to its cell value. Values are nil (empty cell),
// float64, int64, bool or string.
type Row map[string]any

// Table is an in-memory sheet: ordered unique column names plus rows in
// file order. Every row holds an entry for every column.
type Table struct {
	Columns []string
	Rows    []Row
}

// FromRows builds a Table from a header row and data rows as read from a
// sheet. Header text is kept as written, surrounding spaces included. Blank
// header cells become "Unnamed: <index>" and repeated names get
// ".1", ".2", ... suffixes, so column names are always unique. Rows wider
// than the header extend the column list.
func FromRows(header []string, rows [][]any) *Table {
	width := len(header)
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	columns := normalizeHeader(header, width)

	t := &Table{
		Columns: columns,
		Rows:    make([]Row, 0, len(rows)),
	}
	for _, values := range rows {
		row := make(Row, width)
		for i, name := range columns {
			if i < len(values) {
				row[name] = values[i]
			} else {
				row[name] = nil
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func normalizeHeader(header []string, width int) []string {
	columns := make([]string, width)
	seen := make(map[string]int, width)

	for i := 0; i < width; i++ {
		name := ""
		if i < len(header) {
			name = header[i]
		}
		if strings.TrimSpace(name) == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}

		if _, dup := seen[name]; dup {
			base, n := name, seen[name]
			for {
				n++
				name = fmt.Sprintf("%s.%d", base, n)
				if _, taken := seen[name]; !taken {
					break
				}
			}
			seen[base] = n
		}
		seen[name] = 0
		columns[i] = name
	}
	return columns
}

// RowCount returns the number of data rows (header excluded).
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int {
	return len(t.Columns)
}

// HasColumn reports whether name is one of the table's columns.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// ColumnIndex returns the 0-based position of name, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Values returns row i as a slice ordered like Columns.
func (t *Table) Values(i int) []any {
	values := make([]any, len(t.Columns))
	for j, c := range t.Columns {
		values[j] = t.Rows[i][c]
	}
	return values
}
