package output

import (
	"encoding/csv"
	"fmt"
	"os"

	"gofill/roster"
)

type CSVWriter struct{}

func (w *CSVWriter) WriteTable(tab *roster.Table, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(tab.Columns); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}

	for _, cells := range tab.Rows {
		row := make([]string, len(cells))
		for i, cell := range cells {
			row[i] = roster.Text(cell)
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}

	return nil
}
