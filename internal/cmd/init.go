// Package cmd implements the init command for bx CLI.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/anthropics/bx/internal/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize .bx directory and default configuration",
	Long: `Initialize the .bx directory and write a default config.yaml in the
current directory.

The config file holds pipeline defaults (sort, duplicate removal, chain
resolution), resolver extensions, and scan settings. The .bx directory
also hosts the scan result cache.

Examples:
  bx init          # Initialize in current directory`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	configFile, err := config.SaveDefault(cwd)
	if err != nil {
		return err
	}

	relPath, relErr := filepath.Rel(cwd, configFile)
	if relErr != nil {
		relPath = configFile
	}
	fmt.Printf("Initialized bx config at %s\n", relPath)
	return nil
}
