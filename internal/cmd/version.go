// Package cmd implements the version command for bx CLI.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the bx version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("bx version %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
