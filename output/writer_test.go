package output

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"gofill/roster"
)

func sampleTable() *roster.Table {
	return &roster.Table{
		Columns: []string{"adi", "city", "soyadi"},
		Rows: [][]any{
			{"Ayşe", "İstanbul", "Yılmaz"},
			{"Mehmet", nil, "Demir"},
			{float64(42), true, "Kaya"},
		},
	}
}

func TestForPath_SelectsWriterByExtension(t *testing.T) {
	t.Parallel()

	writer, err := ForPath("records.csv")
	if err != nil {
		t.Fatalf("select csv writer: %v", err)
	}
	if _, ok := writer.(*CSVWriter); !ok {
		t.Fatalf("expected CSVWriter, got %T", writer)
	}

	writer, err = ForPath("Records.XLSX")
	if err != nil {
		t.Fatalf("select xlsx writer: %v", err)
	}
	if _, ok := writer.(*ExcelWriter); !ok {
		t.Fatalf("expected ExcelWriter, got %T", writer)
	}

	if _, err := ForPath("records.parquet"); err == nil {
		t.Fatalf("expected error for unsupported extension")
	}
}

func TestCSVWriter_WriteTable(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "export.csv")
	if err := (&CSVWriter{}).WriteTable(sampleTable(), path); err != nil {
		t.Fatalf("write table: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "adi" || rows[0][2] != "soyadi" {
		t.Fatalf("unexpected header row: %v", rows[0])
	}
	if rows[1][0] != "Ayşe" || rows[1][1] != "İstanbul" {
		t.Fatalf("unexpected first row: %v", rows[1])
	}
	if rows[2][1] != "" {
		t.Fatalf("expected empty cell for absent value, got %q", rows[2][1])
	}
	if rows[3][0] != "42" || rows[3][1] != "true" {
		t.Fatalf("expected scalar values as text, got %v", rows[3])
	}
}

func TestExcelWriter_WriteTable(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "export.xlsx")
	if err := (&ExcelWriter{}).WriteTable(sampleTable(), path); err != nil {
		t.Fatalf("write table: %v", err)
	}

	book, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer book.Close()

	sheet := book.GetSheetName(0)
	checks := []struct {
		cell string
		want string
	}{
		{"A1", "adi"},
		{"C1", "soyadi"},
		{"A2", "Ayşe"},
		{"B2", "İstanbul"},
		{"B3", ""},
		{"A4", "42"},
		{"B4", "true"},
	}
	for _, check := range checks {
		got, err := book.GetCellValue(sheet, check.cell)
		if err != nil {
			t.Fatalf("read cell %s: %v", check.cell, err)
		}
		if got != check.want {
			t.Errorf("cell %s: expected %q, got %q", check.cell, check.want, got)
		}
	}
}

func TestCSVWriter_EmptyTableWritesHeaderOnly(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty.csv")
	tab := &roster.Table{Columns: []string{"adi", "soyadi"}}
	if err := (&CSVWriter{}).WriteTable(tab, path); err != nil {
		t.Fatalf("write table: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if string(raw) != "adi,soyadi\n" {
		t.Fatalf("expected header-only export, got %q", raw)
	}
}
