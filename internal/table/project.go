package table

import "fmt"

// Project returns a new table restricted to the given columns. Columns keep
// the source table's relative order regardless of the order of names, and
// every row is carried over, so the row count never changes.
func Project(t *Table, names []string) (*Table, error) {
	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		if !t.HasColumn(name) {
			return nil, fmt.Errorf("column %q is not in the table", name)
		}
		wanted[name] = true
	}

	columns := make([]string, 0, len(wanted))
	for _, c := range t.Columns {
		if wanted[c] {
			columns = append(columns, c)
		}
	}

	out := &Table{
		Columns: columns,
		Rows:    make([]Row, len(t.Rows)),
	}
	for i, row := range t.Rows {
		projected := make(Row, len(columns))
		for _, c := range columns {
			projected[c] = row[c]
		}
		out.Rows[i] = projected
	}
	return out, nil
}
