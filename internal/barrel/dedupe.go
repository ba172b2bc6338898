package barrel

import (
	"fmt"

	"github.com/anthropics/bx/internal/parser"
)

// Dedupe removes entries with duplicate identity, keeping the first
// occurrence of each. Identity is (effective exported name, source, kind,
// type-only flag): a value export and a type export of the same name from
// the same source are distinct and both survive.
func Dedupe(entries []parser.ExportEntry) []parser.ExportEntry {
	seen := make(map[string]struct{}, len(entries))
	deduped := make([]parser.ExportEntry, 0, len(entries))
	for _, e := range entries {
		key := identityKey(e)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, e)
	}
	return deduped
}

// identityKey builds the deduplication identity for an entry.
func identityKey(e parser.ExportEntry) string {
	return fmt.Sprintf("%s:%s:%s:%t", e.Kind, e.EffectiveName(), e.Source, e.TypeOnly)
}
