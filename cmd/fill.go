package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gofill/config"
	"gofill/contract"
	"gofill/render"
	"gofill/roster"
	"gofill/storage"
)

var (
	fillTemplate string
	fillData     string
	fillOut      string
	fillLogo     string
	fillPDF      bool
	fillFlags    *pipelineFlags
)

var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Fill a contract template once per roster record",
	Long: `Read the client roster, normalize each record, and write one filled
contract document per accepted record into the output directory.

With PDF rendering on (the default), each document is also converted to PDF.
DOCX templates render through LibreOffice (soffice on PATH), HTML templates
through headless Chrome. A logo image, when given, is stamped onto the first
PDF page and the unstamped PDF is removed.

Records missing required fields are quarantined into the invalid-record
report and never produce a contract.`,
	Example: `
  # Fill with config defaults
  gofill fill

  # Explicit template, roster, and output directory
  gofill fill -t contract_template.docx -d client.xlsx -o contract

  # Require fields and reformat a date column
  gofill fill --required name --required surname --date-field birth_date

  # Stamp a logo onto every contract PDF
  gofill fill -l logo.png

  # Write editable documents only, no PDF
  gofill fill --pdf=false

  # Fill from a semicolon-separated Turkish CSV export
  gofill fill -d client.csv --delimiter ";" --encoding iso-8859-9
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		templatePath := stringOr(fillTemplate, cfg.Fill.Template)
		dataPath := stringOr(fillData, cfg.Fill.Data)
		outDir := stringOr(fillOut, cfg.Fill.Out)
		logoPath := stringOr(fillLogo, cfg.Fill.Logo)
		renderPDF := cfg.Fill.PDF
		if cmd.Flags().Changed("pdf") {
			renderPDF = fillPDF
		}

		if _, err := os.Stat(templatePath); err != nil {
			return fmt.Errorf("template file not found: %s", templatePath)
		}
		if _, err := os.Stat(dataPath); err != nil {
			return fmt.Errorf("data file not found: %s", dataPath)
		}

		tpl, err := contract.Open(templatePath)
		if err != nil {
			return err
		}

		var renderer render.Renderer
		if renderPDF {
			renderer, err = render.ForTemplate(templatePath)
			if err != nil {
				return err
			}
		}

		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("create output dir %s: %w", outDir, err)
		}

		sink := roster.NewInvalidSink(logger)
		opts, err := fillFlags.options(cmd, cfg, logger)
		if err != nil {
			return err
		}
		opts.Sink = sink

		records, err := roster.Stream(dataPath, opts)
		if err != nil {
			return err
		}

		started := time.Now()
		filled := 0
		failed := 0
		for rec := range records {
			finalPath, err := fillOne(cmd.Context(), tpl, renderer, rec, outDir, logoPath)
			if err != nil {
				failed++
				logger.Error("fill contract", zap.Error(err))
				continue
			}
			filled++
			fmt.Printf("OK: %s\n", finalPath)
		}

		fmt.Printf("Fill completed. Contracts: %d, Invalid records: %d, Failures: %d, Output: %s\n",
			filled,
			sink.Len(),
			failed,
			outDir,
		)

		recordFillRun(cfg.History.Database, storage.FillRun{
			StartedAt: started,
			Template:  templatePath,
			Source:    dataPath,
			OutputDir: outDir,
			Filled:    filled,
			Invalid:   sink.Len(),
			Note:      runNote(failed),
		})

		return nil
	},
}

func init() {
	rootCmd.AddCommand(fillCmd)

	fillCmd.Flags().StringVarP(&fillTemplate, "template", "t", "", "Contract template path, .docx or .html (default from config)")
	fillCmd.Flags().StringVarP(&fillData, "data", "d", "", "Roster file path: .csv, .xlsx, .json, or .jsonl (default from config)")
	fillCmd.Flags().StringVarP(&fillOut, "out", "o", "", "Output directory for filled contracts (default from config)")
	fillCmd.Flags().StringVarP(&fillLogo, "logo", "l", "", "Logo image stamped onto the first PDF page")
	fillCmd.Flags().BoolVar(&fillPDF, "pdf", true, "Render each filled contract to PDF")
	fillFlags = addPipelineFlags(fillCmd)
}

// fillOne produces every rendition of one record's contract and returns
// the path of the last artifact written. A nil renderer skips the PDF
// step.
func fillOne(ctx context.Context, tpl *contract.Template, renderer render.Renderer, rec roster.Record, outDir, logoPath string) (string, error) {
	docPath := contract.Filename(rec, outDir, tpl.Ext())
	if err := tpl.Fill(rec, docPath); err != nil {
		return "", err
	}
	if renderer == nil {
		return docPath, nil
	}

	pdfPath := strings.TrimSuffix(docPath, tpl.Ext()) + ".pdf"
	if err := renderer.RenderPDF(ctx, docPath, pdfPath); err != nil {
		return "", err
	}
	if logoPath == "" {
		return pdfPath, nil
	}

	stampedPath := strings.TrimSuffix(pdfPath, ".pdf") + "_with_logo.pdf"
	if err := render.StampLogo(pdfPath, logoPath, stampedPath); err != nil {
		return "", err
	}
	if err := os.Remove(pdfPath); err != nil {
		return "", fmt.Errorf("remove unstamped pdf %s: %w", pdfPath, err)
	}
	return stampedPath, nil
}

// recordFillRun persists the run summary. History is best effort; a
// failure here never fails the fill itself.
func recordFillRun(dbPath string, run storage.FillRun) {
	store, err := storage.OpenSQLite(dbPath)
	if err != nil {
		logger.Warn("open run history", zap.String("db", dbPath), zap.Error(err))
		return
	}
	defer store.Close()

	if _, err := store.InsertRun(run); err != nil {
		logger.Warn("record fill run", zap.Error(err))
	}
}

func runNote(failed int) string {
	if failed == 0 {
		return ""
	}
	return fmt.Sprintf("%d records failed to fill", failed)
}

func stringOr(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}
