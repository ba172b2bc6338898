// Package cmd implements the cache command for bx CLI.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anthropics/bx/internal/cache"
	"github.com/anthropics/bx/internal/config"
)

// cacheCmd represents the cache command
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the scan result cache",
	Long: `Manage the scan result cache stored in .bx/cache.db.

Scan caches transformation results keyed by file path, content hash, and
the option set in effect. The cache only speeds up repeat scans; clearing
it is always safe.

Examples:
  bx cache stats   # Show cache statistics
  bx cache clear   # Remove all cached results`,
}

// cacheStatsCmd represents the cache stats subcommand
var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache statistics",
	RunE:  runCacheStats,
}

// cacheClearCmd represents the cache clear subcommand
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached results",
	RunE:  runCacheClear,
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}

// openCache opens the cache under the nearest .bx directory.
func openCache() (*cache.Cache, error) {
	bxDir, err := config.FindConfigDir(".")
	if err != nil {
		return nil, fmt.Errorf("no .bx directory found (run 'bx init' first)")
	}
	return cache.Open(bxDir)
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	c, err := openCache()
	if err != nil {
		return err
	}
	defer c.Close()

	stats, err := c.GetStats()
	if err != nil {
		return fmt.Errorf("reading cache stats: %w", err)
	}

	fmt.Printf("Cache: %s\n", c.Path())
	fmt.Printf("Cached results: %d\n", stats.ResultCount)
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	c, err := openCache()
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.Clear(); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}

	fmt.Println("Cache cleared")
	return nil
}
