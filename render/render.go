package render

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Renderer converts a filled document into a paginated PDF.
type Renderer interface {
	RenderPDF(ctx context.Context, docPath, pdfPath string) error
}

// ForTemplate picks the renderer matching the template format: a headless
// LibreOffice process for docx, a headless Chrome session for html.
func ForTemplate(path string) (Renderer, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".docx":
		return &Soffice{}, nil
	case ".html":
		return &Chrome{}, nil
	default:
		return nil, fmt.Errorf("no pdf renderer for template %s", path)
	}
}
