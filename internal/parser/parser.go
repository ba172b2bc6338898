// Package parser extracts re-export statements from barrel file source.
//
// Parsing is line-based: each statement is assumed to fit on a single line,
// and only the re-export subset of the export grammar is recognized. Lines
// that do not match any recognized form are skipped, never reported as
// errors. Direct declarations (`export const`, `export function`, ...) are
// not re-exports and are excluded; ScanDeclarations extracts those
// separately for namespace flattening.
package parser

import "strings"

// ParseExports parses source text into its re-export entries, in source
// line order. It never fails: unrecognized or malformed export lines are
// skipped and the worst case is an empty result.
func ParseExports(source string) []ExportEntry {
	var entries []ExportEntry
	for i, line := range strings.Split(source, "\n") {
		entries = append(entries, parseLine(line, i+1)...)
	}
	return entries
}

// parseLine parses a single line into zero or more export entries.
func parseLine(line string, lineNumber int) []ExportEntry {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "export") {
		return nil
	}

	typeOnly := strings.Contains(trimmed, "export type")

	if items, source, ok := parseNamedExport(trimmed); ok {
		entries := make([]ExportEntry, 0, len(items))
		for _, item := range items {
			kind := Named
			if item.specifier == "default" {
				kind = Default
			}
			entries = append(entries, ExportEntry{
				Specifier: item.specifier,
				Alias:     item.alias,
				Source:    source,
				Kind:      kind,
				TypeOnly:  typeOnly,
				Line:      lineNumber,
			})
		}
		return entries
	}

	if alias, source, ok := parseNamespaceExport(trimmed); ok {
		return []ExportEntry{{
			Specifier: "*",
			Alias:     alias,
			Source:    source,
			Kind:      Namespace,
			TypeOnly:  typeOnly,
			Line:      lineNumber,
		}}
	}

	return nil
}
