package source

import (
	"os"
	"path"
	"path/filepath"

	gitignore "github.com/denormal/go-gitignore"
)

// IgnoreMatcher applies a gitignore-syntax file to relative paths.
// The zero value ignores nothing.
type IgnoreMatcher struct {
	gi gitignore.GitIgnore
}

// loadIgnore reads root/name. A missing or empty name yields a matcher that
// ignores nothing.
func loadIgnore(root, name string) *IgnoreMatcher {
	if name == "" {
		return &IgnoreMatcher{}
	}

	f, err := os.Open(filepath.Join(root, name))
	if err != nil {
		return &IgnoreMatcher{}
	}
	defer f.Close()

	return &IgnoreMatcher{gi: gitignore.New(f, root, nil)}
}

// Ignored reports whether the file at rel, or any directory above it, is
// matched by an ignore rule.
func (m *IgnoreMatcher) Ignored(rel string) bool {
	if m == nil || m.gi == nil {
		return false
	}

	if match := m.gi.Relative(rel, false); match != nil && match.Ignore() {
		return true
	}

	for dir := path.Dir(rel); dir != "." && dir != "/"; dir = path.Dir(dir) {
		if match := m.gi.Relative(dir, true); match != nil && match.Ignore() {
			return true
		}
	}
	return false
}
