// Package config provides configuration loading and validation for encfix.
package config

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// Root is the source tree used when no directory is given on the
	// command line.
	Root string `yaml:"root"`

	// Extensions selects source files by suffix, dot included (".lisp").
	Extensions []string `yaml:"extensions"`

	// Exclude lists path prefixes, relative to Root and slash separated,
	// that the fix command leaves alone unless told otherwise.
	Exclude []string `yaml:"exclude"`

	// IgnoreFile names a gitignore-syntax file under Root. Files it matches
	// are skipped by every command. A missing file is not an error.
	IgnoreFile string `yaml:"ignore_file,omitempty"`

	// ContextWidth bounds the line snippet stored with each report record,
	// in characters. Zero keeps whole lines.
	ContextWidth int `yaml:"context_width"`
}

// Patterns returns one recursive glob per configured extension.
func (c *Config) Patterns() []string {
	patterns := make([]string, 0, len(c.Extensions))
	for _, ext := range c.Extensions {
		patterns = append(patterns, "**/*"+ext)
	}
	return patterns
}
