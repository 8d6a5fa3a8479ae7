package render

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Soffice renders editable documents to PDF through a headless LibreOffice
// process.
type Soffice struct {
	// Binary overrides the executable name. Empty means soffice on PATH.
	Binary string
}

func (s *Soffice) RenderPDF(ctx context.Context, docPath, pdfPath string) error {
	binary := s.Binary
	if binary == "" {
		binary = "soffice"
	}
	if _, err := exec.LookPath(binary); err != nil {
		return fmt.Errorf("pdf rendering needs LibreOffice (%s) on PATH: %w", binary, err)
	}

	outDir := filepath.Dir(pdfPath)
	cmd := exec.CommandContext(ctx, binary,
		"--headless", "--convert-to", "pdf", "--outdir", outDir, docPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("convert %s to pdf: %w: %s", docPath, err, strings.TrimSpace(string(out)))
	}

	// soffice names the result after the input file; move it when the
	// caller asked for a different name.
	base := strings.TrimSuffix(filepath.Base(docPath), filepath.Ext(docPath))
	produced := filepath.Join(outDir, base+".pdf")
	if produced == pdfPath {
		return nil
	}
	if err := os.Rename(produced, pdfPath); err != nil {
		return fmt.Errorf("move rendered pdf to %s: %w", pdfPath, err)
	}
	return nil
}
