/*
Copyright © 2025 riad@rsworld.eu

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"gofill/config"
)

var (
	cfgFile string
	verbose bool
	logger  *zap.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gofill",
	Short: "Fill contract templates from tabular client rosters.",
	Long: `
**********************************************
*               GO FILL GO                   *
**********************************************

This CLI reads a client roster (Excel, CSV, JSON, JSON Lines), normalizes
each record, fills a contract template per client, and renders the result
to PDF with an optional first-page logo. Invalid records are quarantined
into a JSON report instead of silently dropped.

Supported roster formats:
- Excel: .xlsx
- CSV: .csv
- JSON: .json (array or single object)
- JSON Lines: .jsonl
`,
	Example: `
  # Create configuration file
  gofill config create

  # Fill contracts with defaults (contract_template.docx + client.xlsx)
  gofill fill

  # Fill with explicit paths, logo stamp, and required fields
  gofill fill -t contract_template.docx -d client.xlsx -o contract -l logo.png --required name --required surname

  # Inspect a roster without filling anything
  gofill read -d client.csv --delimiter ";" --encoding iso-8859-9

  # Export the normalized roster
  gofill read -d client.xlsx --output normalized.csv

  # Compare the output directory against the roster
  gofill verify

  # List recent fill runs
  gofill history

  # Browse run history in the browser
  gofill serve
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	// Here you will define your flags and configuration settings.
	// Cobra supports persistent flags, which, if defined here,
	// will be global for your application.

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.gofill.yaml, then ./.gofill.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		zapCfg := zap.NewProductionConfig()
		zapCfg.Encoding = "console"
		zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		if !requiresConfig(cmd) {
			return nil
		}
		_, err = config.LoadAndValidate()
		return err
	}
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	}
}

func requiresConfig(cmd *cobra.Command) bool {
	return cmd != nil && cmd.Name() == "fill"
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".gofill" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".gofill")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "No config file found. Create one first with: gofill config create")
	}
}
