package render

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// logoDesc places the image in the upper left of the page, scaled down
// relative to the page while keeping its aspect ratio.
const logoDesc = "pos:tl, off:36 -36, sc:.2 rel, rot:0"

// StampLogo overlays the image at logoPath onto the first page of the PDF
// at pdfPath and writes the result to outPath. Pages after the first stay
// untouched.
func StampLogo(pdfPath, logoPath, outPath string) error {
	wm, err := api.ImageWatermark(logoPath, logoDesc, true, false, types.POINTS)
	if err != nil {
		return fmt.Errorf("prepare logo watermark %s: %w", logoPath, err)
	}
	if err := api.AddWatermarksFile(pdfPath, outPath, []string{"1"}, wm, nil); err != nil {
		return fmt.Errorf("stamp logo onto %s: %w", pdfPath, err)
	}
	return nil
}
