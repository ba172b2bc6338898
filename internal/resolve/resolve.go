package resolve

import (
	"fmt"
	"path/filepath"

	"github.com/anthropics/bx/internal/fsys"
	"github.com/anthropics/bx/internal/parser"
)

// Context carries the per-resolution visited set. A fresh Context is
// created for each top-level resolve call and threaded by reference through
// every recursive call; it is what bounds traversal on cyclic graphs.
type Context struct {
	visited map[string]struct{}
}

// NewContext creates an empty resolution context.
func NewContext() *Context {
	return &Context{visited: make(map[string]struct{})}
}

// Visited reports whether path has already been entered in this call tree.
func (c *Context) Visited(path string) bool {
	_, ok := c.visited[path]
	return ok
}

// Visit marks path as entered.
func (c *Context) Visit(path string) {
	c.visited[path] = struct{}{}
}

// Resolver follows re-export chains across the file graph.
type Resolver struct {
	// FS provides file content and existence checks.
	FS fsys.FS
	// Extensions is the source-file candidate priority order.
	// Empty means DefaultExtensions.
	Extensions []string
	// ConvertNamespace expands `export *` entries whose target is a leaf
	// implementation file into one named entry per export the leaf
	// defines, instead of keeping the namespace entry.
	ConvertNamespace bool
}

// New creates a Resolver over the given file system with default extensions.
func New(fs fsys.FS) *Resolver {
	return &Resolver{FS: fs, Extensions: DefaultExtensions}
}

// File resolves every re-export entry of the file at path. The cycle guard
// runs before any descent: a path already in the context contributes
// nothing, which terminates cyclic graphs after each distinct file has been
// read once.
func (r *Resolver) File(path string, rc *Context) []parser.ExportEntry {
	if rc.Visited(path) {
		return nil
	}
	rc.Visit(path)

	content, err := r.FS.ReadFile(path)
	if err != nil {
		return nil
	}
	return r.Entries(path, parser.ParseExports(string(content)), rc)
}

// Entries resolves a parsed entry list belonging to the file at path.
// Entries whose source cannot be located stay terminal; entries whose
// target is itself a barrel are replaced by the target's resolved entries
// with their source rewritten one hop back to the original entry's source,
// keeping regenerated import paths valid relative to path's directory.
func (r *Resolver) Entries(path string, entries []parser.ExportEntry, rc *Context) []parser.ExportEntry {
	acc := newAccumulator()
	dir := filepath.Dir(path)

	for _, e := range entries {
		if !e.IsRelative() {
			acc.add(e)
			continue
		}
		target, ok := SourceFile(r.FS, e.Source, dir, r.Extensions)
		if !ok {
			acc.add(e)
			continue
		}
		content, err := r.FS.ReadFile(target)
		if err != nil {
			acc.add(e)
			continue
		}

		targetEntries := parser.ParseExports(string(content))
		if !isBarrel(targetEntries) {
			acc.addAll(r.resolveLeaf(e, target, string(content)))
			continue
		}

		// Only a bare `export *` can be inlined without changing what the
		// statement binds: aliased namespaces keep their namespace object,
		// and named/default entries already forward exactly one binding,
		// so splicing would degenerate to the entry itself after the
		// one-hop source rewrite.
		if e.Kind == parser.Namespace && e.Alias == "" {
			spliced := r.File(target, rc)
			if len(spliced) == 0 {
				acc.add(e)
				continue
			}
			for _, s := range spliced {
				s.Source = e.Source
				acc.add(s)
			}
			continue
		}
		acc.add(e)
	}
	return acc.entries()
}

// resolveLeaf decides what a re-export entry pointing at a leaf
// implementation file contributes. Without namespace conversion the entry
// is kept unchanged; with it, a bare `export *` is expanded into one named
// entry per export the leaf defines.
func (r *Resolver) resolveLeaf(e parser.ExportEntry, target, content string) []parser.ExportEntry {
	if e.Kind != parser.Namespace || e.Alias != "" || !r.ConvertNamespace {
		return []parser.ExportEntry{e}
	}
	if expanded, ok := expandNamespace(e, target, content); ok {
		return expanded
	}
	return []parser.ExportEntry{e}
}

// expandNamespace converts `export * from src` into named entries when the
// leaf's export names can be statically determined. The expansion covers
// the leaf's direct declarations plus its own named re-exports (rewritten
// one hop back); default exports are excluded because `export *` does not
// forward them. Returns ok=false when the name set cannot be determined,
// in which case the namespace entry is kept as-is.
func expandNamespace(e parser.ExportEntry, target, content string) ([]parser.ExportEntry, bool) {
	leafEntries := parser.ParseExports(content)

	// A type declarations file with no re-exports at all still exports
	// its type names; recover them with a structural scan so the barrel
	// is not flattened into nothing.
	if len(leafEntries) == 0 && IsTypeDeclarationFile(target) {
		decls := parser.ScanTypeDeclarations(content)
		if len(decls) == 0 {
			return nil, false
		}
		expanded := make([]parser.ExportEntry, 0, len(decls))
		for _, d := range decls {
			expanded = append(expanded, parser.ExportEntry{
				Specifier: d.Name,
				Source:    e.Source,
				Kind:      parser.Named,
				TypeOnly:  true,
				Line:      e.Line,
			})
		}
		return expanded, true
	}

	var expanded []parser.ExportEntry
	for _, le := range leafEntries {
		if le.Kind == parser.Namespace {
			// The leaf forwards an unknown name set from elsewhere;
			// the full expansion cannot be determined statically.
			return nil, false
		}
		if le.Kind == parser.Default {
			continue
		}
		expanded = append(expanded, parser.ExportEntry{
			Specifier: le.EffectiveName(),
			Source:    e.Source,
			Kind:      parser.Named,
			TypeOnly:  e.TypeOnly || le.TypeOnly,
			Line:      e.Line,
		})
	}
	for _, d := range parser.ScanDeclarations(content) {
		expanded = append(expanded, parser.ExportEntry{
			Specifier: d.Name,
			Source:    e.Source,
			Kind:      parser.Named,
			TypeOnly:  e.TypeOnly || d.TypeOnly(),
			Line:      e.Line,
		})
	}
	if len(expanded) == 0 {
		return nil, false
	}
	return expanded, true
}

// ExpandNamespaces performs one-hop namespace conversion over an entry
// list without recursive resolution: bare `export *` entries whose target
// is a leaf file get expanded; namespace entries over nested barrels or
// unresolvable sources are kept as written.
func (r *Resolver) ExpandNamespaces(path string, entries []parser.ExportEntry) []parser.ExportEntry {
	dir := filepath.Dir(path)
	var out []parser.ExportEntry
	for _, e := range entries {
		if e.Kind != parser.Namespace || e.Alias != "" || !e.IsRelative() {
			out = append(out, e)
			continue
		}
		target, ok := SourceFile(r.FS, e.Source, dir, r.Extensions)
		if !ok {
			out = append(out, e)
			continue
		}
		content, err := r.FS.ReadFile(target)
		if err != nil {
			out = append(out, e)
			continue
		}
		if isBarrel(parser.ParseExports(string(content))) {
			out = append(out, e)
			continue
		}
		if expanded, ok := expandNamespace(e, target, string(content)); ok {
			out = append(out, expanded...)
			continue
		}
		out = append(out, e)
	}
	return out
}

// isBarrel reports whether a parsed entry list marks its file as a barrel:
// at least one entry re-exports from a relative path.
func isBarrel(entries []parser.ExportEntry) bool {
	for _, e := range entries {
		if e.IsRelative() {
			return true
		}
	}
	return false
}

// accumulator merges resolved entries keyed by effective binding,
// preserving first-insertion order. When the same binding is produced
// twice through different chains, the later resolution silently wins.
// Bare `export *` entries bind no single name, so they are keyed by
// source as well; type-only and value bindings never collide.
type accumulator struct {
	order []string
	byKey map[string]parser.ExportEntry
}

func newAccumulator() *accumulator {
	return &accumulator{byKey: make(map[string]parser.ExportEntry)}
}

func (a *accumulator) add(e parser.ExportEntry) {
	key := fmt.Sprintf("%s\x00%s\x00%t", e.Kind, e.EffectiveName(), e.TypeOnly)
	if e.Kind == parser.Namespace && e.Alias == "" {
		key += "\x00" + e.Source
	}
	if _, seen := a.byKey[key]; !seen {
		a.order = append(a.order, key)
	}
	a.byKey[key] = e
}

func (a *accumulator) addAll(entries []parser.ExportEntry) {
	for _, e := range entries {
		a.add(e)
	}
}

func (a *accumulator) entries() []parser.ExportEntry {
	out := make([]parser.ExportEntry, 0, len(a.order))
	for _, key := range a.order {
		out = append(out, a.byKey[key])
	}
	return out
}
