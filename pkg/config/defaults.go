package config

import (
	"fmt"
	"os"
	"strconv"
)

// Default values for configuration.
const (
	DefaultRoot         = "/workspaces/pup/external/acl2"
	DefaultIgnoreFile   = ".encfixignore"
	DefaultContextWidth = 80
)

// DefaultExtensions are the Lisp-family suffixes found in an ACL2 tree.
var DefaultExtensions = []string{".lisp", ".lsp", ".acl2", ".cl"}

// DefaultExclude holds vendored code and test data that must keep its bytes.
var DefaultExclude = []string{
	"books/quicklisp/",
	"books/projects/python/",
}

// Environment variable names.
const (
	EnvRoot         = "ENCFIX_ROOT"
	EnvContextWidth = "ENCFIX_CONTEXT_WIDTH"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Root:         DefaultRoot,
		Extensions:   append([]string(nil), DefaultExtensions...),
		Exclude:      append([]string(nil), DefaultExclude...),
		IgnoreFile:   DefaultIgnoreFile,
		ContextWidth: DefaultContextWidth,
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() error {
	if root := os.Getenv(EnvRoot); root != "" {
		c.Root = root
	}

	if width := os.Getenv(EnvContextWidth); width != "" {
		n, err := strconv.Atoi(width)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvContextWidth, err)
		}
		c.ContextWidth = n
	}

	return nil
}
