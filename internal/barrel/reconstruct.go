package barrel

import (
	"fmt"
	"strings"

	"github.com/anthropics/bx/internal/parser"
)

// Reconstruct regenerates barrel file source from an entry list. Leading
// non-export content (file-level doc comments, type-only imports) is
// preserved up to the first export line; entries are grouped by source and
// emitted as minimal statements, value exports before type-only exports.
// An empty entry list returns the original content unchanged.
func Reconstruct(originalContent string, entries []parser.ExportEntry) string {
	if len(entries) == 0 {
		return originalContent
	}

	var lines []string
	for _, line := range strings.Split(originalContent, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "export") {
			break
		}
		if trimmed == "" || strings.HasPrefix(trimmed, "//") {
			continue
		}
		lines = append(lines, line)
	}

	for _, group := range groupBySource(entries) {
		values, types := splitByTypeOnly(group.entries)
		lines = append(lines, exportStatements(values, group.source, false)...)
		lines = append(lines, exportStatements(types, group.source, true)...)
	}

	return strings.Join(lines, "\n") + "\n"
}

// sourceGroup holds the entries sharing one source, in entry order.
type sourceGroup struct {
	source  string
	entries []parser.ExportEntry
}

// groupBySource groups entries by source in first-appearance order, which
// keeps reconstruction deterministic whether or not sorting ran.
func groupBySource(entries []parser.ExportEntry) []sourceGroup {
	index := make(map[string]int, len(entries))
	var groups []sourceGroup
	for _, e := range entries {
		i, ok := index[e.Source]
		if !ok {
			i = len(groups)
			index[e.Source] = i
			groups = append(groups, sourceGroup{source: e.Source})
		}
		groups[i].entries = append(groups[i].entries, e)
	}
	return groups
}

// splitByTypeOnly partitions a group into value and type-only entries.
func splitByTypeOnly(entries []parser.ExportEntry) (values, types []parser.ExportEntry) {
	for _, e := range entries {
		if e.TypeOnly {
			types = append(types, e)
		} else {
			values = append(values, e)
		}
	}
	return values, types
}

// exportStatements emits the statements for one (source, type-only) bucket
// in fixed order: namespace exports, default exports, then one combined
// named statement. Empty buckets produce no lines.
func exportStatements(entries []parser.ExportEntry, source string, typeOnly bool) []string {
	keyword := "export"
	if typeOnly {
		keyword = "export type"
	}

	var lines []string
	for _, e := range entries {
		if e.Kind != parser.Namespace {
			continue
		}
		if e.Alias == "" {
			lines = append(lines, fmt.Sprintf("%s * from %q;", keyword, source))
		} else {
			lines = append(lines, fmt.Sprintf("%s * as %s from %q;", keyword, e.Alias, source))
		}
	}

	for _, e := range entries {
		if e.Kind != parser.Default {
			continue
		}
		if e.Alias == "" {
			lines = append(lines, fmt.Sprintf("%s { default } from %q;", keyword, source))
		} else {
			lines = append(lines, fmt.Sprintf("%s { default as %s } from %q;", keyword, e.Alias, source))
		}
	}

	var named []string
	for _, e := range entries {
		if e.Kind != parser.Named {
			continue
		}
		item := e.Specifier
		if e.Alias != "" && e.Alias != e.Specifier {
			item += " as " + e.Alias
		}
		named = append(named, item)
	}
	if len(named) > 0 {
		lines = append(lines, fmt.Sprintf("%s { %s } from %q;", keyword, strings.Join(named, ", "), source))
	}

	return lines
}
