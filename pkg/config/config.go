package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// Load reads and validates a configuration file.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.applyEnvironmentOverrides(); err != nil {
		return nil, fmt.Errorf("applying environment: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Resolve loads the file at path, or starts from DefaultConfig when path is
// empty. Environment overrides and validation apply either way.
func Resolve(ctx context.Context, path string) (*Config, error) {
	if path != "" {
		return Load(ctx, path)
	}

	cfg := DefaultConfig()
	if err := cfg.applyEnvironmentOverrides(); err != nil {
		return nil, fmt.Errorf("applying environment: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Validate checks a configuration for errors and normalizes extensions and
// exclusion prefixes in place.
func Validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Root) == "" {
		return errors.New("root: a source directory is required")
	}

	if len(cfg.Extensions) == 0 {
		return errors.New("extensions: at least one extension is required")
	}

	for i := range cfg.Extensions {
		ext, err := normalizeExtension(cfg.Extensions[i])
		if err != nil {
			return fmt.Errorf("extensions[%d]: %w", i, err)
		}
		cfg.Extensions[i] = ext
	}

	for i := range cfg.Exclude {
		prefix, err := normalizePrefix(cfg.Exclude[i])
		if err != nil {
			return fmt.Errorf("exclude[%d]: %w", i, err)
		}
		cfg.Exclude[i] = prefix
	}

	if cfg.IgnoreFile != "" && (path.IsAbs(cfg.IgnoreFile) || strings.Contains(cfg.IgnoreFile, "..")) {
		return fmt.Errorf("ignore_file: %q must be a file name under root", cfg.IgnoreFile)
	}

	if cfg.ContextWidth < 0 {
		return fmt.Errorf("context_width: must be >= 0, got %d", cfg.ContextWidth)
	}

	return nil
}

func normalizeExtension(ext string) (string, error) {
	ext = strings.TrimSpace(ext)
	if ext == "" || ext == "." {
		return "", errors.New("extension is empty")
	}
	if ext[0] != '.' {
		ext = "." + ext
	}
	if strings.ContainsAny(ext, `/\`) {
		return "", fmt.Errorf("extension %q must not contain a path separator", ext)
	}
	if !doublestar.ValidatePattern("**/*" + ext) {
		return "", fmt.Errorf("extension %q is not a valid glob suffix", ext)
	}
	return ext, nil
}

func normalizePrefix(prefix string) (string, error) {
	prefix = strings.ReplaceAll(strings.TrimSpace(prefix), `\`, "/")
	if prefix == "" {
		return "", errors.New("prefix is empty")
	}
	if path.IsAbs(prefix) {
		return "", fmt.Errorf("prefix %q must be relative to root", prefix)
	}
	for _, part := range strings.Split(prefix, "/") {
		if part == ".." {
			return "", fmt.Errorf("prefix %q must not leave root", prefix)
		}
	}
	return strings.TrimPrefix(prefix, "./"), nil
}
