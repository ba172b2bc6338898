package parser

// Kind is the syntactic form of an export statement.
type Kind string

const (
	// Named is an `export { a, b as c } from "src"` entry (one per list item).
	Named Kind = "named"
	// Default is an `export { default } from "src"` or
	// `export { default as X } from "src"` entry.
	Default Kind = "default"
	// Namespace is an `export * from "src"` or `export * as ns from "src"` entry.
	Namespace Kind = "namespace"
)

// ExportEntry is one exported binding found in a barrel file.
type ExportEntry struct {
	// Specifier is the exported name, "*" for a namespace re-export,
	// or "default" for a default re-export.
	Specifier string `yaml:"specifier" json:"specifier"`
	// Alias is the local binding name for `as` forms. Empty when the
	// effective exported name equals Specifier.
	Alias string `yaml:"alias,omitempty" json:"alias,omitempty"`
	// Source is the import path exactly as written.
	Source string `yaml:"source" json:"source"`
	// Kind is the syntactic export form.
	Kind Kind `yaml:"kind" json:"kind"`
	// TypeOnly marks `export type ...` forms.
	TypeOnly bool `yaml:"typeOnly" json:"typeOnly"`
	// Line is the 1-based line number in the originating file.
	// Diagnostic only; not part of entry identity.
	Line int `yaml:"line" json:"line"`
}

// EffectiveName is the name the entry exports under: the alias when one
// is present, otherwise the specifier.
func (e ExportEntry) EffectiveName() string {
	if e.Alias != "" {
		return e.Alias
	}
	return e.Specifier
}

// IsRelative reports whether the entry's source is a relative specifier.
// Bare (package) specifiers are opaque leaves to the resolver.
func (e ExportEntry) IsRelative() bool {
	return len(e.Source) > 0 && e.Source[0] == '.'
}
