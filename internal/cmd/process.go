// Package cmd implements the process command for bx CLI.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// processCmd represents the process command
var processCmd = &cobra.Command{
	Use:   "process <file>",
	Short: "Transform a barrel file into minimal export statements",
	Long: `Transform a barrel file into a minimal, deterministic set of export
statements and print the result to stdout.

Non-barrel files and files without re-exports pass through unchanged.
Leading comments and directives before the first export are preserved.

Examples:
  bx process src/index.ts                        # Print transformed source
  bx process src/index.ts --sort                 # Sort by source, then name
  bx process src/index.ts --resolve-barrel       # Inline nested barrel chains
  bx process src/index.ts --convert-namespace    # Expand export * entries
  bx process src/index.ts --write                # Rewrite the file in place`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

var processWrite bool

func init() {
	rootCmd.AddCommand(processCmd)
	addPipelineFlags(processCmd)
	processCmd.Flags().BoolVar(&processWrite, "write", false, "Rewrite the file in place instead of printing")
}

func runProcess(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	result := newLoader(cfg, cmd).Process(string(source), path)

	if processWrite {
		if result == string(source) {
			fmt.Fprintf(os.Stderr, "%s unchanged\n", path)
			return nil
		}
		if err := os.WriteFile(path, []byte(result), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", path)
		return nil
	}

	fmt.Print(result)
	return nil
}
