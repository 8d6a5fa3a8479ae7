package verify

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gofill/contract"
	"gofill/roster"
)

// Report pairs a roster against the documents already present in an
// output directory.
type Report struct {
	Matched int
	Missing []string
	Orphans []string
}

// Run checks outDir for the documents a fill over records would produce.
// ext selects which rendition to look for, such as ".docx" or ".pdf".
func Run(records []roster.Record, outDir, ext string) (*Report, error) {
	ext = normalizeExt(ext)

	listing, err := os.ReadDir(outDir)
	if err != nil {
		return nil, fmt.Errorf("read output dir %s: %w", outDir, err)
	}

	present := make(map[string]bool, len(listing))
	for _, entry := range listing {
		if entry.IsDir() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(entry.Name()), ext) {
			continue
		}
		present[entry.Name()] = true
	}

	expected := make(map[string]bool, len(records))
	for _, rec := range records {
		expected[contract.Filename(rec, "", ext)] = true
	}

	report := &Report{}
	for name := range expected {
		if present[name] {
			report.Matched++
			continue
		}
		report.Missing = append(report.Missing, name)
	}
	for name := range present {
		if !expected[name] {
			report.Orphans = append(report.Orphans, name)
		}
	}
	sort.Strings(report.Missing)
	sort.Strings(report.Orphans)

	return report, nil
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ".docx"
	}
	if !strings.HasPrefix(ext, ".") {
		return "." + ext
	}
	return ext
}
