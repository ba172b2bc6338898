// Package resolve locates re-export targets on disk and follows re-export
// chains through nested barrel files.
//
// Resolution is deliberately forgiving: unreadable files, unresolvable
// specifiers, and cyclic re-export graphs all degrade to keeping whatever
// entries could be recovered. Nothing in this package returns an error to
// its caller.
package resolve

import (
	"path/filepath"
	"strings"

	"github.com/anthropics/bx/internal/fsys"
)

// DefaultExtensions is the fixed priority order used to locate a source
// file for an extensionless specifier. The first existing candidate wins.
var DefaultExtensions = []string{".ts", ".tsx", ".js", ".jsx", ".mts", ".cts", ".mjs", ".cjs"}

// SourceFile locates the file a relative specifier refers to, trying the
// specifier as written (when it already carries a recognized extension),
// then each extension appended to the specifier, then each extension under
// specifier/index. Returns ok=false for bare (package) specifiers and for
// specifiers with no existing candidate.
func SourceFile(fs fsys.FS, specifier, fromDir string, extensions []string) (string, bool) {
	if !strings.HasPrefix(specifier, ".") {
		return "", false
	}
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	target := filepath.Join(fromDir, specifier)

	if hasRecognizedExtension(target, extensions) {
		if fs.Exists(target) {
			return target, true
		}
		return "", false
	}

	for _, ext := range extensions {
		if candidate := target + ext; fs.Exists(candidate) {
			return candidate, true
		}
	}
	for _, ext := range extensions {
		if candidate := filepath.Join(target, "index"+ext); fs.Exists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// hasRecognizedExtension reports whether path already ends in one of the
// recognized source extensions.
func hasRecognizedExtension(path string, extensions []string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// IsTypeDeclarationFile reports whether a path looks like a pure type
// declarations module (a ".types" path segment or a .d.ts extension).
// Such files often carry only `export type` / `export interface` / `export
// enum` declarations and no re-exports at all, so a plain re-export scan
// would see them as empty.
func IsTypeDeclarationFile(path string) bool {
	return strings.Contains(path, ".types") || strings.HasSuffix(path, ".d.ts")
}
