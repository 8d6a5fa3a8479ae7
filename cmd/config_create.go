package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gofill/config"
)

var configCreateForce bool

var configCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a configuration file from the example template",
	Long: `Create a new configuration file from the commented example template.

If a configuration file is already in use, no new file is written unless
--force is given.`,
	Example: `
  # Create default config at $HOME/.gofill.yaml
  gofill config create

  # Reset an existing config to the example template
  gofill config create --force
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return saveDefaultConfig(configCreateForce)
	},
}

func saveDefaultConfig(force bool) error {
	configPath, err := resolveConfigPath(cfgFile, viper.ConfigFileUsed())
	if err != nil {
		return err
	}

	created, err := ensureConfigFileWithTemplate(configPath)
	if err != nil {
		return err
	}
	if created {
		fmt.Printf("New config file created at: %s\n", configPath)
		return nil
	}

	if !force {
		fmt.Printf("Config file already exists at: %s (use --force to overwrite)\n", configPath)
		return nil
	}

	if err := writeConfigTemplate(configPath); err != nil {
		return err
	}
	fmt.Printf("Config file overwritten at: %s\n", configPath)
	return nil
}

func resolveConfigPath(configFileFlag, configFileUsed string) (string, error) {
	if strings.TrimSpace(configFileFlag) != "" {
		return configFileFlag, nil
	}
	if strings.TrimSpace(configFileUsed) != "" {
		return configFileUsed, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".gofill.yaml"), nil
}

func ensureConfigFileWithTemplate(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, fmt.Errorf("checking config file failed: %w", err)
	}

	if err := writeConfigTemplate(path); err != nil {
		return false, err
	}
	return true, nil
}

func writeConfigTemplate(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory failed: %w", err)
	}
	if err := os.WriteFile(path, []byte(config.ExampleYAML()), 0o600); err != nil {
		return fmt.Errorf("creating example config failed: %w", err)
	}
	return nil
}

func init() {
	configCmd.AddCommand(configCreateCmd)

	configCreateCmd.Flags().BoolVar(&configCreateForce, "force", false, "Overwrite an existing config file with the example template")
}
