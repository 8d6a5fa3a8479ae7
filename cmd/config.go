package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the gofill configuration file",
	Long: `Create and display the gofill configuration file.

The configuration stores fill defaults and roster pipeline settings:
- fill.template / fill.data / fill.out / fill.logo / fill.pdf
- roster.csv_delimiter / roster.csv_encoding / roster.required_fields
- roster.date_fields / roster.column_map / roster.invalid_sink / roster.progress
- history.database`,
	Example: `
  # Create default config in $HOME/.gofill.yaml
  gofill config create

  # Show active config and source file
  gofill config show
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
