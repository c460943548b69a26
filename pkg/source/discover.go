package source

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Discover expands opts.Patterns under root into a deduplicated, sorted list
// of regular files, then applies the ignore file and exclusion prefixes.
func Discover(ctx context.Context, root string, opts Options) (*Listing, error) {
	root, err := checkRoot(root)
	if err != nil {
		return nil, err
	}

	fsys := os.DirFS(root)
	seen := make(map[string]bool)
	var rels []string

	for _, pattern := range opts.Patterns {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid glob pattern %q", pattern)
		}

		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expanding %q: %w", pattern, err)
		}

		for _, match := range matches {
			if !seen[match] {
				seen[match] = true
				rels = append(rels, match)
			}
		}
	}

	return newListing(root, rels, opts), nil
}

// FromPaths builds a listing from relative paths, typically the keys of a
// prior scan report. Paths need not exist; reading them later reports the
// failure per file. A path that is absolute or climbs out of root is an error.
func FromPaths(ctx context.Context, root string, paths []string, opts Options) (*Listing, error) {
	root, err := checkRoot(root)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var rels []string
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rel, err := cleanRel(p)
		if err != nil {
			return nil, err
		}
		if !seen[rel] {
			seen[rel] = true
			rels = append(rels, rel)
		}
	}

	return newListing(root, rels, opts), nil
}

func checkRoot(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving root %s: %w", root, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("reading root: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s: %w", abs, ErrNotDirectory)
	}
	return abs, nil
}

func cleanRel(p string) (string, error) {
	rel := strings.ReplaceAll(p, `\`, "/")
	if rel == "" || path.IsAbs(rel) || filepath.IsAbs(p) {
		return "", fmt.Errorf("path %q must be relative to root", p)
	}
	rel = path.Clean(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("path %q leaves root", p)
	}
	return rel, nil
}

func newListing(root string, rels []string, opts Options) *Listing {
	// Sort for deterministic ordering
	sort.Strings(rels)

	ignore := loadIgnore(root, opts.IgnoreFile)
	listing := &Listing{Root: root, Files: make([]File, 0, len(rels))}

	for _, rel := range rels {
		if ignore.Ignored(rel) {
			listing.Ignored++
			continue
		}
		if !opts.IncludeExcluded && IsExcluded(rel, opts.Exclude) {
			listing.Excluded++
			continue
		}
		listing.Files = append(listing.Files, File{
			Path: filepath.Join(root, filepath.FromSlash(rel)),
			Rel:  rel,
		})
	}

	return listing
}

// IsExcluded reports whether rel starts with any of the prefixes.
func IsExcluded(rel string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(rel, prefix) {
			return true
		}
	}
	return false
}
