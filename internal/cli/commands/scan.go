package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/encfix/pkg/output"
	"github.com/ccollicutt/encfix/pkg/scanner"
	"github.com/ccollicutt/encfix/pkg/source"
)

// NewScanCommand creates the scan command.
func NewScanCommand() *cobra.Command {
	opts := &ReportOptions{}

	cmd := &cobra.Command{
		Use:   "scan [root]",
		Short: "Report every non-ASCII byte in a source tree",
		Long: `Scan source files for bytes above 0x7f and report where they are.

Nothing is modified. The JSON report on stdout lists, per file, the line,
column, value, ISO-8859-1 reading and context of every byte; it can be
handed to "encfix fix --report" to limit conversion to those files.

The root defaults to the configured root. Exclusion prefixes do not apply
to scanning; the ignore file does.

Exit codes:
  0 - Scan completed
  2 - Configuration or runtime error`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args, opts)
		},
	}

	addReportFlags(cmd, opts, "json", "Report format on stdout (json|text|none)")

	return cmd
}

func runScan(cmd *cobra.Command, args []string, opts *ReportOptions) error {
	if err := opts.check(); err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)

	listing, err := source.Discover(ctx, rootFor(cfg, args), source.Options{
		Patterns:   cfg.Patterns(),
		IgnoreFile: cfg.IgnoreFile,
	})
	if err != nil {
		return fmt.Errorf("finding source files: %w", err)
	}

	if !opts.Quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "Scanning %d files under %s...\n", len(listing.Files), listing.Root)
	}

	result, err := scanner.New(scanner.WithContextWidth(cfg.ContextWidth)).Run(ctx, listing)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	return emitReport(cmd, opts, output.NewScanReport(result))
}
