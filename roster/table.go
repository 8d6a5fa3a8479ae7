package roster

import "sort"

// Table is a materialized record collection in columnar form: one header
// over every field name seen, one row per record aligned to the header.
type Table struct {
	Columns []string
	Rows    [][]any
}

// NewTable builds a Table over the given records. Columns are sorted so
// repeated runs over the same data produce identical layouts.
func NewTable(records []Record) *Table {
	seen := make(map[string]struct{})
	for _, rec := range records {
		for key := range rec {
			seen[key] = struct{}{}
		}
	}
	columns := make([]string, 0, len(seen))
	for key := range seen {
		columns = append(columns, key)
	}
	sort.Strings(columns)

	rows := make([][]any, 0, len(records))
	for _, rec := range records {
		row := make([]any, len(columns))
		for i, key := range columns {
			row[i] = rec[key]
		}
		rows = append(rows, row)
	}
	return &Table{Columns: columns, Rows: rows}
}

// Len reports the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}
