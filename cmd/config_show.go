package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gofill/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values. Without a
config file the built-in defaults are shown.`,
	Example: `
  # Show active configuration
  gofill config show
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			fmt.Println("Invalid config:", err)
			return
		}

		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Println("Config file loaded from:", configPath)
		} else {
			fmt.Println("No config file in use, showing defaults.")
		}
		fmt.Println("Configuration:")
		fmt.Printf("fill.template: %s\n", cfg.Fill.Template)
		fmt.Printf("fill.data: %s\n", cfg.Fill.Data)
		fmt.Printf("fill.out: %s\n", cfg.Fill.Out)
		fmt.Printf("fill.logo: %s\n", cfg.Fill.Logo)
		fmt.Printf("fill.pdf: %t\n", cfg.Fill.PDF)
		fmt.Printf("roster.csv_delimiter: %s\n", cfg.Roster.CSVDelimiter)
		fmt.Printf("roster.csv_encoding: %s\n", cfg.Roster.CSVEncoding)
		fmt.Printf("roster.required_fields: %s\n", strings.Join(cfg.Roster.RequiredFields, ", "))
		fmt.Printf("roster.date_fields: %s\n", strings.Join(cfg.Roster.DateFields, ", "))
		fmt.Printf("roster.column_map: %d\n", len(cfg.Roster.ColumnMap))
		sources := make([]string, 0, len(cfg.Roster.ColumnMap))
		for source := range cfg.Roster.ColumnMap {
			sources = append(sources, source)
		}
		sort.Strings(sources)
		for _, source := range sources {
			fmt.Printf("roster.column_map.%s: %s\n", source, cfg.Roster.ColumnMap[source])
		}
		fmt.Printf("roster.invalid_sink: %s\n", cfg.Roster.InvalidSink)
		fmt.Printf("roster.progress: %t\n", cfg.Roster.Progress)
		fmt.Printf("history.database: %s\n", cfg.History.Database)
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
