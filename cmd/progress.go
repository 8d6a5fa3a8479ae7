package cmd

import (
	"os"

	"github.com/schollz/progressbar/v3"
)

// progressSpinner adapts an indeterminate progress bar to the roster
// pipeline's per-record hook. Row counts are unknown up front, so the
// spinner only shows throughput.
type progressSpinner struct {
	bar *progressbar.ProgressBar
}

func newProgressSpinner(label string) *progressSpinner {
	return &progressSpinner{
		bar: progressbar.NewOptions(-1,
			progressbar.OptionSetDescription(label),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		),
	}
}

func (p *progressSpinner) Tick() {
	_ = p.bar.Add(1)
}

func (p *progressSpinner) Done() {
	_ = p.bar.Finish()
}
