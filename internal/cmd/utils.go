package cmd

import (
	"github.com/spf13/cobra"

	"github.com/anthropics/bx/internal/barrel"
	"github.com/anthropics/bx/internal/config"
)

// loadConfig loads configuration honoring the global --config flag.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromPath(configPath)
	}
	return config.Load(".")
}

// pipelineOptions builds pipeline options from config defaults, overridden
// by any flag the user set explicitly on cmd.
func pipelineOptions(cfg *config.Config, cmd *cobra.Command) barrel.Options {
	opts := barrel.Options{
		RemoveDuplicates:        cfg.Options.RemoveDuplicatesEnabled(),
		Sort:                    cfg.Options.Sort,
		ResolveBarrelExports:    cfg.Options.ResolveBarrelExports,
		ConvertNamespaceToNamed: cfg.Options.ConvertNamespaceToNamed,
		Verbose:                 verbose,
	}

	flags := cmd.Flags()
	if flags.Changed("sort") {
		opts.Sort, _ = flags.GetBool("sort")
	}
	if flags.Changed("keep-duplicates") {
		keep, _ := flags.GetBool("keep-duplicates")
		opts.RemoveDuplicates = !keep
	}
	if flags.Changed("resolve-barrel") {
		opts.ResolveBarrelExports, _ = flags.GetBool("resolve-barrel")
	}
	if flags.Changed("convert-namespace") {
		opts.ConvertNamespaceToNamed, _ = flags.GetBool("convert-namespace")
	}
	return opts
}

// newLoader builds a configured Loader for a command invocation.
func newLoader(cfg *config.Config, cmd *cobra.Command) *barrel.Loader {
	l := barrel.New(pipelineOptions(cfg, cmd), nil)
	l.SetExtensions(cfg.Resolve.Extensions)
	l.SetBarrelNames(cfg.Scan.BarrelNames)
	return l
}

// addPipelineFlags registers the pipeline stage flags shared by process
// and parse.
func addPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("sort", false, "Sort exports by source, then name")
	cmd.Flags().Bool("keep-duplicates", false, "Keep duplicate exports instead of removing them")
	cmd.Flags().Bool("resolve-barrel", false, "Resolve re-export chains through nested barrels")
	cmd.Flags().Bool("convert-namespace", false, "Convert namespace exports to named exports")
}
