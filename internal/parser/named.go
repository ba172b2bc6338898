package parser

import (
	"regexp"
	"strings"
)

// namedExportRe matches `export { a, b as c } from "src"` and its
// `export type` variant. The brace list is parsed item by item afterwards.
var namedExportRe = regexp.MustCompile(`export\s+(?:type\s+)?\{([^}]+)\}\s+from\s+['"]([^'"]+)['"]`)

// namedItem is one entry of a brace list.
type namedItem struct {
	specifier string
	alias     string
}

// parseNamedExport parses a named (or default-in-braces) re-export line.
// Returns the list items and the source path, or ok=false when the line
// is not a named re-export.
func parseNamedExport(line string) ([]namedItem, string, bool) {
	caps := namedExportRe.FindStringSubmatch(line)
	if caps == nil {
		return nil, "", false
	}

	var items []namedItem
	for _, raw := range strings.Split(caps[1], ",") {
		item, ok := parseNamedItem(raw)
		if !ok {
			continue
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil, "", false
	}
	return items, caps[2], true
}

// parseNamedItem parses a single brace-list item, either `name` or
// `name as alias`. Anything else is skipped.
func parseNamedItem(raw string) (namedItem, bool) {
	fields := strings.Fields(strings.TrimSpace(raw))
	switch len(fields) {
	case 1:
		return namedItem{specifier: fields[0]}, true
	case 3:
		if fields[1] != "as" {
			return namedItem{}, false
		}
		return namedItem{specifier: fields[0], alias: fields[2]}, true
	default:
		return namedItem{}, false
	}
}
