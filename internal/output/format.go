// Package output renders export entries for CLI consumption.
package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/anthropics/bx/internal/parser"
)

// Format represents the output format type.
type Format string

const (
	// FormatYAML is the default self-documenting YAML output
	FormatYAML Format = "yaml"

	// FormatJSON is the JSON output format
	FormatJSON Format = "json"
)

// DefaultFormat is the default output format when none is specified.
const DefaultFormat = FormatYAML

// ParseFormat parses a format string into a Format value.
// Accepts: "yaml", "json" (case-insensitive)
// Returns an error for invalid format values.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("invalid format: %q (expected yaml or json)", s)
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// entryDocument is the rendered shape for an entry list.
type entryDocument struct {
	File    string               `yaml:"file,omitempty" json:"file,omitempty"`
	Count   int                  `yaml:"count" json:"count"`
	Exports []parser.ExportEntry `yaml:"exports" json:"exports"`
}

// Entries renders an export entry list in the requested format.
func Entries(file string, entries []parser.ExportEntry, f Format) (string, error) {
	doc := entryDocument{File: file, Count: len(entries), Exports: entries}
	if doc.Exports == nil {
		doc.Exports = []parser.ExportEntry{}
	}

	switch f {
	case FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshaling entries: %w", err)
		}
		return string(data) + "\n", nil
	case FormatYAML:
		data, err := yaml.Marshal(doc)
		if err != nil {
			return "", fmt.Errorf("marshaling entries: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("invalid format: %q", f)
	}
}
