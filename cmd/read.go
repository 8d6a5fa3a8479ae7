package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"gofill/config"
	"gofill/output"
	"gofill/roster"
)

var (
	readData   string
	readOutput string
	readFlags  *pipelineFlags
)

var readCmd = &cobra.Command{
	Use:   "read",
	Short: "Run the roster pipeline without filling contracts",
	Long: `Read the roster, normalize and validate every record, and print the
result. Use this to check headers, column mapping, and required-field
settings before a fill.

With --output the normalized table is exported to CSV or XLSX instead of
printed. Columns are sorted so repeated runs produce identical layouts.`,
	Example: `
  # Preview the normalized roster
  gofill read -d client.xlsx

  # Check required-field coverage without filling anything
  gofill read -d client.csv --required name --required surname

  # Export the normalized table for inspection
  gofill read -d client.xlsx --output normalized.csv
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		dataPath := stringOr(readData, cfg.Fill.Data)
		if _, err := os.Stat(dataPath); err != nil {
			return fmt.Errorf("data file not found: %s", dataPath)
		}

		sink := roster.NewInvalidSink(logger)
		opts, err := readFlags.options(cmd, cfg, logger)
		if err != nil {
			return err
		}
		opts.Sink = sink

		tab, err := roster.CollectTable(dataPath, opts)
		if err != nil {
			return err
		}

		if readOutput != "" {
			writer, err := output.ForPath(readOutput)
			if err != nil {
				return err
			}
			if err := writer.WriteTable(tab, readOutput); err != nil {
				return err
			}
			fmt.Printf("Export completed. Records: %d, Invalid records: %d, Output: %s\n",
				len(tab.Rows), sink.Len(), readOutput)
			return nil
		}

		printTable(tab)
		fmt.Printf("Read completed. Records: %d, Invalid records: %d\n",
			len(tab.Rows), sink.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(readCmd)

	readCmd.Flags().StringVarP(&readData, "data", "d", "", "Roster file path: .csv, .xlsx, .json, or .jsonl (default from config)")
	readCmd.Flags().StringVarP(&readOutput, "output", "o", "", "Export the normalized table to this .csv or .xlsx file instead of printing")
	readFlags = addPipelineFlags(readCmd)
}

func printTable(tab *roster.Table) {
	if len(tab.Rows) == 0 {
		fmt.Println("No records.")
		return
	}
	fmt.Println(strings.Join(tab.Columns, "\t"))
	cells := make([]string, len(tab.Columns))
	for _, row := range tab.Rows {
		for i, cell := range row {
			cells[i] = roster.Text(cell)
		}
		fmt.Println(strings.Join(cells, "\t"))
	}
}
