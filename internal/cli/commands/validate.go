package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/encfix/pkg/config"
	"github.com/ccollicutt/encfix/pkg/source"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate an encfix configuration file without touching any source file.

Checks:
  - YAML syntax
  - Extensions are non-empty suffixes
  - Exclusion prefixes are relative paths
  - Context width is not negative
  - Root directory existence and matched file count (warning only)`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := commandContext(cmd)
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(out, "\nConfiguration valid!\n")
	fmt.Fprintf(out, "  Root:          %s\n", cfg.Root)
	fmt.Fprintf(out, "  Extensions:    %v\n", cfg.Extensions)
	fmt.Fprintf(out, "  Exclude:       %d prefix(es)\n", len(cfg.Exclude))
	fmt.Fprintf(out, "  Context width: %d\n", cfg.ContextWidth)
	for _, prefix := range cfg.Exclude {
		fmt.Fprintf(out, "    - %s\n", prefix)
	}

	// The root may live on another machine; report, don't fail.
	listing, err := source.Discover(ctx, cfg.Root, source.Options{
		Patterns:   cfg.Patterns(),
		Exclude:    cfg.Exclude,
		IgnoreFile: cfg.IgnoreFile,
	})
	if err != nil {
		fmt.Fprintf(out, "\nWarning: %v\n", err)
		return nil
	}

	fmt.Fprintf(out, "\nSource files matched: %d\n", len(listing.Files)+listing.Excluded)
	if listing.Excluded > 0 {
		fmt.Fprintf(out, "  Excluded from fix: %d\n", listing.Excluded)
	}
	if listing.Ignored > 0 {
		fmt.Fprintf(out, "  Ignored: %d\n", listing.Ignored)
	}

	return nil
}
