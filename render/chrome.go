package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Chrome renders HTML documents to PDF through a headless Chrome session.
type Chrome struct {
	// Binary overrides the browser executable chromedp discovers.
	Binary string
	// Timeout bounds one render. Zero means one minute.
	Timeout time.Duration
}

func (c *Chrome) RenderPDF(ctx context.Context, docPath, pdfPath string) error {
	abs, err := filepath.Abs(docPath)
	if err != nil {
		return fmt.Errorf("resolve document path %s: %w", docPath, err)
	}

	timeout := c.Timeout
	if timeout == 0 {
		timeout = time.Minute
	}

	allocOptions := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if c.Binary != "" {
		allocOptions = append(allocOptions, chromedp.ExecPath(c.Binary))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOptions...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	runCtx, runCancel := context.WithTimeout(browserCtx, timeout)
	defer runCancel()

	var buf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("file://"+abs),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var printErr error
			buf, _, printErr = page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			return printErr
		}),
	)
	if err != nil {
		return fmt.Errorf("print %s to pdf: %w", docPath, err)
	}

	if err := os.WriteFile(pdfPath, buf, 0o644); err != nil {
		return fmt.Errorf("write pdf %s: %w", pdfPath, err)
	}
	return nil
}
