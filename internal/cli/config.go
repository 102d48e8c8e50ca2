package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arguslabs/argus/internal/model"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage Argus configuration",
	Long:  `View or initialize the Argus configuration file.`,
}

// configShowCmd prints the default configuration
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the default configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := model.DefaultConfig()
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		fmt.Print(string(data))
		return nil
	},
}

// configInitCmd writes a starter config file
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file to ~/.argus/config.yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("find home directory: %w", err)
		}

		configDir := filepath.Join(home, ".argus")
		configPath := filepath.Join(configDir, "config.yaml")

		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("config file already exists: %s", configPath)
		}

		if err := os.MkdirAll(configDir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}

		cfg := model.DefaultConfig()
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}

		header := []byte("# Argus configuration\n# API keys are read from environment variables (OPENAI_API_KEY),\n# never from this file.\n\n")
		if err := os.WriteFile(configPath, append(header, data...), 0o644); err != nil {
			return fmt.Errorf("write config file: %w", err)
		}

		fmt.Printf("Config file created: %s\n", configPath)
		fmt.Println("Edit it to customize engine, cache, and LLM settings.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
