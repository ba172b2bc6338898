// Package main is the entry point for the bx CLI tool.
package main

import (
	"github.com/anthropics/bx/internal/cmd"
)

func main() {
	cmd.Execute()
}
