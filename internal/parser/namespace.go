package parser

import "regexp"

// namespaceExportRe matches `export * from "src"` and
// `export * as ns from "src"`, plus their `export type` variants.
var namespaceExportRe = regexp.MustCompile(`export\s+(?:type\s+)?\*\s*(?:as\s+(\w+)\s+)?from\s+['"]([^'"]+)['"]`)

// parseNamespaceExport parses a namespace re-export line. The returned
// alias is empty for the bare `export *` form.
func parseNamespaceExport(line string) (alias, source string, ok bool) {
	caps := namespaceExportRe.FindStringSubmatch(line)
	if caps == nil {
		return "", "", false
	}
	return caps[1], caps[2], true
}
