package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/f3rmion/hanzinum/internal/config"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize hanzinum configuration",
	Long: `Write a default config.yaml to your config directory:

  script: traditional   # or simplified
  currency: false       # capital currency form by default
  format: text          # batch output: text, json, csv, yaml`,
	Annotations: map[string]string{skipConfig: "true"},
	RunE:        runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	path := filepath.Join(configDir, config.FileName)

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists: %s\nUse --force to overwrite", path)
	}

	if err := config.EnsureDir(configDir); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := config.Save(path, config.Default()); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
	return nil
}
