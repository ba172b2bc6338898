// Package exclude decides which directories a scan should not descend into.
package exclude

// DefaultDirs are directory names that never contain project barrel files
// worth transforming: dependency trees, build output, and VCS metadata.
var DefaultDirs = []string{
	"node_modules",
	".git",
	"dist",
	"build",
	"out",
	"coverage",
	".next",
}

// Matcher answers whether a directory should be skipped during a walk.
type Matcher struct {
	dirs map[string]struct{}
}

// NewMatcher creates a matcher for the given directory names. Nil or empty
// falls back to DefaultDirs.
func NewMatcher(dirs []string) *Matcher {
	if len(dirs) == 0 {
		dirs = DefaultDirs
	}
	m := &Matcher{dirs: make(map[string]struct{}, len(dirs))}
	for _, d := range dirs {
		m.dirs[d] = struct{}{}
	}
	return m
}

// SkipDir reports whether a directory with the given base name should be
// skipped entirely.
func (m *Matcher) SkipDir(name string) bool {
	_, skip := m.dirs[name]
	return skip
}
