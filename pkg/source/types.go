// Package source finds the files encfix works on and reads and writes them.
package source

import "errors"

// ErrNotDirectory is returned when the root is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// File is one source file under the root.
type File struct {
	// Path is the absolute path used for I/O.
	Path string

	// Rel is the slash-separated path relative to the root, used as the
	// report key.
	Rel string
}

// Options controls which files are selected.
type Options struct {
	// Patterns are doublestar globs matched against paths relative to root.
	Patterns []string

	// Exclude lists relative path prefixes to drop. Matching is a plain
	// string prefix test, so "books/quicklisp/" excludes that subtree.
	Exclude []string

	// IncludeExcluded disables Exclude.
	IncludeExcluded bool

	// IgnoreFile names a gitignore-syntax file under root. Empty disables it.
	IgnoreFile string
}

// Listing is the outcome of file selection.
type Listing struct {
	// Root is the absolute root directory.
	Root string

	// Files are the selected files, sorted by Rel.
	Files []File

	// Excluded counts files dropped by an exclusion prefix.
	Excluded int

	// Ignored counts files dropped by the ignore file.
	Ignored int
}

// Rels returns the relative paths of the selected files.
func (l *Listing) Rels() []string {
	rels := make([]string, len(l.Files))
	for i, f := range l.Files {
		rels[i] = f.Rel
	}
	return rels
}
