package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/encfix/pkg/config"
	"github.com/ccollicutt/encfix/pkg/converter"
	"github.com/ccollicutt/encfix/pkg/output"
	"github.com/ccollicutt/encfix/pkg/source"
)

// FixOptions holds command-line options for the fix command.
type FixOptions struct {
	ReportOptions

	DryRun          bool
	Report          string
	IncludeExcluded bool
}

// NewFixCommand creates the fix command.
func NewFixCommand() *cobra.Command {
	opts := &FixOptions{}

	cmd := &cobra.Command{
		Use:   "fix [root]",
		Short: "Convert ISO-8859-1 bytes in comments to UTF-8",
		Long: `Rewrite non-ASCII bytes inside ; line comments and #| |# block comments
from ISO-8859-1 to UTF-8, in place.

Files that are pure ASCII or already valid UTF-8 are skipped. Non-ASCII
bytes in code or strings are never changed; each one is reported as a
warning for manual review. Files are rewritten atomically.

Files under the configured exclusion prefixes are left out unless
--include-excluded is given. With --report, only the files listed in a
prior scan report are processed.

Exit codes:
  0 - Conversion completed (see the report for warnings and errors)
  2 - Configuration or runtime error`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, args, opts)
		},
	}

	addReportFlags(cmd, &opts.ReportOptions, "json", "Report format on stdout (json|text|none)")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Report what would change without writing")
	cmd.Flags().StringVar(&opts.Report, "report", "", "Only process files listed in this scan report (path or URL)")
	cmd.Flags().BoolVar(&opts.IncludeExcluded, "include-excluded", false, "Also process files under the exclusion prefixes")

	return cmd
}

func runFix(cmd *cobra.Command, args []string, opts *FixOptions) error {
	if err := opts.check(); err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)

	listing, err := fixListing(cmd, cfg, rootFor(cfg, args), opts)
	if err != nil {
		return err
	}

	if !opts.Quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "Processing %d file(s)...\n", len(listing.Files))
	}

	c := converter.New(
		converter.WithDryRun(opts.DryRun),
		converter.WithContextWidth(cfg.ContextWidth),
	)
	result, err := c.Run(ctx, listing)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	return emitReport(cmd, &opts.ReportOptions, output.NewFixReport(listing.Root, result))
}

// fixListing selects the files to convert, from a scan report when one is
// given and by discovery otherwise. A malformed report stops the command
// before any file is touched.
func fixListing(cmd *cobra.Command, cfg *config.Config, root string, opts *FixOptions) (*source.Listing, error) {
	ctx := commandContext(cmd)
	srcOpts := source.Options{
		Patterns:        cfg.Patterns(),
		Exclude:         cfg.Exclude,
		IncludeExcluded: opts.IncludeExcluded,
		IgnoreFile:      cfg.IgnoreFile,
	}

	if opts.Report == "" {
		listing, err := source.Discover(ctx, root, srcOpts)
		if err != nil {
			return nil, fmt.Errorf("finding source files: %w", err)
		}
		return listing, nil
	}

	report, err := output.LoadScanReport(ctx, opts.Report)
	if err != nil {
		return nil, fmt.Errorf("loading scan report: %w", err)
	}

	listing, err := source.FromPaths(ctx, root, report.Paths(), srcOpts)
	if err != nil {
		return nil, fmt.Errorf("reading scan report %s: %w", opts.Report, err)
	}
	return listing, nil
}
