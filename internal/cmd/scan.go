// Package cmd implements the scan command for bx CLI.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/anthropics/bx/internal/cache"
	"github.com/anthropics/bx/internal/config"
	"github.com/anthropics/bx/internal/exclude"
	"github.com/anthropics/bx/internal/scan"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan [dir]",
	Short: "Process every barrel file under a directory",
	Long: `Walk a directory tree, find every barrel file, and run each through
the transformation pipeline.

Excluded directories (node_modules, .git, build output) are pruned from
the walk. Files are processed concurrently with a bounded worker pool.
When a .bx directory exists, results are cached by content hash so
unchanged files are skipped on subsequent runs.

Without --write, scan reports which files would change. With --write,
changed files are rewritten in place.

Examples:
  bx scan                        # Report changes under the current directory
  bx scan src/ --write           # Rewrite changed barrels under src/
  bx scan --sort --write         # Sort while rewriting
  bx scan --workers 4            # Bound concurrency
  bx scan --no-cache             # Ignore cached results`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

var (
	scanWrite   bool
	scanWorkers int
	scanNoCache bool
)

func init() {
	rootCmd.AddCommand(scanCmd)
	addPipelineFlags(scanCmd)
	scanCmd.Flags().BoolVar(&scanWrite, "write", false, "Rewrite changed files in place")
	scanCmd.Flags().IntVar(&scanWorkers, "workers", 0, "Number of concurrent workers (0 = number of CPUs)")
	scanCmd.Flags().BoolVar(&scanNoCache, "no-cache", false, "Skip the result cache")
}

func runScan(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	workers := cfg.Scan.Workers
	if cmd.Flags().Changed("workers") {
		workers = scanWorkers
	}

	opts := pipelineOptions(cfg, cmd)

	var resultCache *cache.Cache
	if !scanNoCache {
		if bxDir, err := config.FindConfigDir("."); err == nil {
			c, err := cache.Open(bxDir)
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: could not open cache: %v\n", err)
			} else {
				resultCache = c
				defer c.Close()
			}
		}
	}

	loader := newLoader(cfg, cmd)
	summary, err := scan.Run(root, scan.Options{
		Loader:      loader,
		BarrelNames: cfg.Scan.BarrelNames,
		Exclude:     exclude.NewMatcher(cfg.Scan.Exclude),
		Workers:     workers,
		Cache:       resultCache,
		OptionsHash: scan.OptionsFingerprint(opts),
		Write:       scanWrite,
	})
	if err != nil {
		return err
	}

	for _, r := range summary.Results {
		switch {
		case r.Err != nil:
			fmt.Fprintf(os.Stderr, "error: %v\n", r.Err)
		case r.Changed && scanWrite:
			fmt.Printf("wrote %s\n", r.Path)
		case r.Changed:
			fmt.Printf("would change %s\n", r.Path)
		case verbose:
			fmt.Printf("unchanged %s\n", r.Path)
		}
	}

	fmt.Printf("%d barrel files: %d changed, %d cached, %d failed\n",
		summary.Processed, summary.Changed, summary.Cached, summary.Failed)

	if summary.Failed > 0 {
		return fmt.Errorf("%d files failed", summary.Failed)
	}
	return nil
}
