// Package cmd implements the parse command for bx CLI.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/anthropics/bx/internal/output"
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a file into structured export entries",
	Long: `Parse a file's export statements and print the structured entries.

Unlike process, parse works on any file, not just recognized barrel
basenames, and outputs entry data instead of regenerated source. Useful
for inspecting what bx sees before transforming.

Examples:
  bx parse src/index.ts                      # YAML entry list
  bx parse src/index.ts --format json        # JSON entry list
  bx parse src/index.ts --resolve-barrel     # Entries after chain resolution`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	addPipelineFlags(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]

	format, err := output.ParseFormat(outputFormat)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	entries := newLoader(cfg, cmd).Entries(string(source), path)

	rendered, err := output.Entries(path, entries, format)
	if err != nil {
		return err
	}
	fmt.Print(rendered)
	return nil
}
