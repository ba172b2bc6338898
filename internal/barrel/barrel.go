// Package barrel orchestrates the barrel file transformation pipeline:
// parse, optionally resolve re-export chains, deduplicate, sort, and
// reconstruct minimal export statements with equivalent semantics.
package barrel

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/anthropics/bx/internal/fsys"
	"github.com/anthropics/bx/internal/parser"
	"github.com/anthropics/bx/internal/resolve"
)

// DefaultBarrelNames are the file basenames treated as barrel files.
var DefaultBarrelNames = []string{"index.ts", "index.js", "index.tsx", "index.jsx"}

// Options toggles the pipeline stages. Each flag independently gates one
// stage; a disabled stage is the identity function.
type Options struct {
	// RemoveDuplicates collapses entries with identical identity
	// (effective name, source, kind, type-only flag). Default true.
	RemoveDuplicates bool
	// Sort orders entries by source, then by effective exported name.
	Sort bool
	// ResolveBarrelExports follows re-export chains through nested
	// barrels and inlines their resolved entries.
	ResolveBarrelExports bool
	// ConvertNamespaceToNamed expands `export *` entries into explicit
	// named lists when the target's export names can be determined.
	ConvertNamespaceToNamed bool
	// Verbose logs processing diagnostics to stderr.
	Verbose bool
}

// DefaultOptions returns the default pipeline configuration.
func DefaultOptions() Options {
	return Options{RemoveDuplicates: true}
}

// Loader processes barrel files according to its options.
type Loader struct {
	opts        Options
	fs          fsys.FS
	extensions  []string
	barrelNames []string
}

// New creates a Loader. A nil fs falls back to the operating system.
func New(opts Options, fs fsys.FS) *Loader {
	if fs == nil {
		fs = fsys.OS{}
	}
	return &Loader{
		opts:        opts,
		fs:          fs,
		extensions:  resolve.DefaultExtensions,
		barrelNames: DefaultBarrelNames,
	}
}

// SetExtensions overrides the source-file candidate extension order.
func (l *Loader) SetExtensions(extensions []string) {
	if len(extensions) > 0 {
		l.extensions = extensions
	}
}

// SetBarrelNames overrides the basenames recognized as barrel files.
func (l *Loader) SetBarrelNames(names []string) {
	if len(names) > 0 {
		l.barrelNames = names
	}
}

// IsBarrelFile reports whether path names a barrel file candidate.
func (l *Loader) IsBarrelFile(path string) bool {
	base := filepath.Base(path)
	for _, name := range l.barrelNames {
		if base == name {
			return true
		}
	}
	return false
}

// Process transforms barrel file source into a minimal, equivalent set of
// export statements. Non-barrel paths and files without re-exports pass
// through unchanged. Process never fails; every input produces some
// well-formed result.
func (l *Loader) Process(source, path string) string {
	if !l.IsBarrelFile(path) {
		return source
	}
	l.logf("processing barrel file: %s", path)

	entries := parser.ParseExports(source)
	if len(entries) == 0 {
		l.logf("no exports found in: %s", path)
		return source
	}

	entries = l.transform(entries, path)
	transformed := Reconstruct(source, entries)
	if transformed != source {
		l.logf("transformed barrel file: %s", path)
	}
	return transformed
}

// Entries parses source and runs the entry-level pipeline stages,
// returning the structured entry list instead of regenerated source.
func (l *Loader) Entries(source, path string) []parser.ExportEntry {
	return l.transform(parser.ParseExports(source), path)
}

// transform applies the option-gated entry stages in pipeline order.
func (l *Loader) transform(entries []parser.ExportEntry, path string) []parser.ExportEntry {
	if len(entries) == 0 {
		return entries
	}

	if l.opts.ResolveBarrelExports {
		r := &resolve.Resolver{
			FS:               l.fs,
			Extensions:       l.extensions,
			ConvertNamespace: l.opts.ConvertNamespaceToNamed,
		}
		rc := resolve.NewContext()
		rc.Visit(path)
		entries = r.Entries(path, entries, rc)
	} else if l.opts.ConvertNamespaceToNamed {
		r := &resolve.Resolver{FS: l.fs, Extensions: l.extensions}
		entries = r.ExpandNamespaces(path, entries)
	}

	if l.opts.RemoveDuplicates {
		before := len(entries)
		entries = Dedupe(entries)
		if removed := before - len(entries); removed > 0 {
			l.logf("removed %d duplicate exports", removed)
		}
	}
	if l.opts.Sort {
		entries = Sort(entries)
	}
	return entries
}

// logf writes a verbose diagnostic to stderr.
func (l *Loader) logf(format string, args ...any) {
	if !l.opts.Verbose {
		return
	}
	fmt.Fprintf(os.Stderr, "[bx] "+format+"\n", args...)
}
