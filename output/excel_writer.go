package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"gofill/roster"
)

type ExcelWriter struct{}

func (w *ExcelWriter) WriteTable(tab *roster.Table, path string) error {
	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)

	for col, header := range tab.Columns {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("set excel header %s: %w", cell, err)
		}
	}

	for i, cells := range tab.Rows {
		row := i + 2
		for col, value := range cells {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := file.SetCellValue(sheet, cell, roster.Text(value)); err != nil {
				return fmt.Errorf("set excel value %s: %w", cell, err)
			}
		}
	}

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("save excel output %s: %w", path, err)
	}

	return nil
}
