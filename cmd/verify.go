package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"gofill/config"
	"gofill/roster"
	"gofill/verify"
)

var (
	verifyData  string
	verifyOut   string
	verifyExt   string
	verifyFlags *pipelineFlags
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check the output directory against the roster",
	Long: `Compare the contracts in the output directory with the records in the
roster. Every accepted record is expected to have one document named after
it; documents nobody in the roster accounts for are reported as orphans.

By default verification looks for the editable documents, which a fill
always writes. Pass --ext pdf to check rendered PDFs instead. Use the same
pipeline flags as the fill so both runs accept the same records.`,
	Example: `
  # Verify the default output directory
  gofill verify

  # Verify a specific fill
  gofill verify -d client.xlsx -o contract --required name --required surname

  # Check rendered PDFs rather than the editable documents
  gofill verify --ext pdf
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		dataPath := stringOr(verifyData, cfg.Fill.Data)
		outDir := stringOr(verifyOut, cfg.Fill.Out)
		ext := stringOr(verifyExt, filepath.Ext(cfg.Fill.Template))

		if _, err := os.Stat(dataPath); err != nil {
			return fmt.Errorf("data file not found: %s", dataPath)
		}

		opts, err := verifyFlags.options(cmd, cfg, logger)
		if err != nil {
			return err
		}

		records, err := roster.Collect(dataPath, opts)
		if err != nil {
			return err
		}

		report, err := verify.Run(records, outDir, ext)
		if err != nil {
			return err
		}

		for _, name := range report.Missing {
			fmt.Printf("missing: %s\n", name)
		}
		for _, name := range report.Orphans {
			fmt.Printf("orphan: %s\n", name)
		}
		fmt.Printf("Verify completed. Matched: %d, Missing: %d, Orphans: %d\n",
			report.Matched, len(report.Missing), len(report.Orphans))

		if len(report.Missing) > 0 {
			return fmt.Errorf("%d contracts missing from %s", len(report.Missing), outDir)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVarP(&verifyData, "data", "d", "", "Roster file path (default from config)")
	verifyCmd.Flags().StringVarP(&verifyOut, "out", "o", "", "Output directory to check (default from config)")
	verifyCmd.Flags().StringVar(&verifyExt, "ext", "", "Document extension to check (default: the template's)")
	verifyFlags = addPipelineFlags(verifyCmd)
}
