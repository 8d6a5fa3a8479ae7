package output

import (
	"fmt"
	"path/filepath"
	"strings"

	"gofill/roster"
)

type Writer interface {
	WriteTable(tab *roster.Table, path string) error
}

// ForPath picks a writer by the destination file extension.
func ForPath(path string) (Writer, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return &CSVWriter{}, nil
	case ".xlsx":
		return &ExcelWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported export format %s: use .csv or .xlsx", path)
	}
}
