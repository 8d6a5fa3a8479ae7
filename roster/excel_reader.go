package roster

import (
	"fmt"
	"iter"

	"github.com/xuri/excelize/v2"
)

// WorkbookReader reads the first worksheet of an xlsx workbook. Row 1 names
// the fields; later rows stream through the worksheet cursor one at a time.
// Cell values arrive as their formatted strings.
type WorkbookReader struct{}

func (r *WorkbookReader) Records(path string) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		book, err := excelize.OpenFile(path)
		if err != nil {
			yield(nil, fmt.Errorf("open workbook %s: %w", path, err))
			return
		}
		defer book.Close()

		sheet := book.GetSheetName(0)
		if sheet == "" {
			yield(nil, fmt.Errorf("workbook %s has no worksheet", path))
			return
		}

		rows, err := book.Rows(sheet)
		if err != nil {
			yield(nil, fmt.Errorf("open worksheet %s of %s: %w", sheet, path, err))
			return
		}
		defer rows.Close()

		var header []string
		headerRead := false
		for rows.Next() {
			cells, err := rows.Columns()
			if err != nil {
				yield(nil, fmt.Errorf("read row of %s: %w", path, err))
				return
			}
			if !headerRead {
				header = cells
				headerRead = true
				continue
			}
			if !yield(rowRecord(header, cells), nil) {
				return
			}
		}
		if err := rows.Error(); err != nil {
			yield(nil, fmt.Errorf("scan workbook %s: %w", path, err))
		}
	}
}
