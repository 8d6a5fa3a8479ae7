package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"gofill/config"
	"gofill/storage"
)

var (
	historyLimit int
	historyDB    string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent fill runs",
	Long: `List recent fill runs from the local history database, newest first.
Each fill records when it started, which template and roster it used, and
how many contracts it produced.`,
	Example: `
  # Show the last 20 runs
  gofill history

  # Show more
  gofill history --limit 100
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		store, err := storage.OpenSQLite(stringOr(historyDB, cfg.History.Database))
		if err != nil {
			return err
		}
		defer store.Close()

		runs, err := store.ListRuns(historyLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("No fill runs recorded yet.")
			return nil
		}

		for _, run := range runs {
			fmt.Printf("%s  filled %d, invalid %d  %s -> %s\n",
				run.StartedAt.Local().Format("2006-01-02 15:04"),
				run.Filled,
				run.Invalid,
				run.Source,
				run.OutputDir,
			)
			if run.Note != "" {
				fmt.Printf("  note: %s\n", run.Note)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of runs to list")
	historyCmd.Flags().StringVar(&historyDB, "db", "", "Path to the history database (default from config)")
}
