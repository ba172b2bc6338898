package barrel

import (
	"sort"

	"github.com/anthropics/bx/internal/parser"
)

// Sort orders entries by source, then by effective exported name, so that
// exports from the same module group together and regenerated output is
// reproducible. The input slice is not modified.
func Sort(entries []parser.ExportEntry) []parser.ExportEntry {
	sorted := make([]parser.ExportEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Source != sorted[j].Source {
			return sorted[i].Source < sorted[j].Source
		}
		return sorted[i].EffectiveName() < sorted[j].EffectiveName()
	})
	return sorted
}
