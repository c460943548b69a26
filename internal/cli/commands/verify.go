package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/encfix/pkg/output"
	"github.com/ccollicutt/encfix/pkg/source"
	"github.com/ccollicutt/encfix/pkg/verifier"
)

// NewVerifyCommand creates the verify command.
func NewVerifyCommand() *cobra.Command {
	opts := &ReportOptions{}

	cmd := &cobra.Command{
		Use:   "verify [root]",
		Short: "Check that every source file is valid UTF-8",
		Long: `Verify that all source files decode as UTF-8.

Every run of bytes that is not valid UTF-8 is reported with its line,
column, ISO-8859-1 reading and context. The summary goes to stderr; pass
-o json for a machine-readable report on stdout.

Exit codes:
  0 - All files are valid UTF-8
  1 - Invalid bytes remain, or a file could not be read
  2 - Configuration or runtime error`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd, args, opts)
		},
	}

	addReportFlags(cmd, opts, "", "Report format on stdout (json|text); none by default")

	return cmd
}

func runVerify(cmd *cobra.Command, args []string, opts *ReportOptions) error {
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
		fmt.Fprintf(cmd.ErrOrStderr(), "Verifying %d files for UTF-8 validity...\n", len(listing.Files))
	}

	result, err := verifier.New(verifier.WithContextWidth(cfg.ContextWidth)).Run(ctx, listing)
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}

	report := output.NewVerifyReport(result)
	if err := emitReport(cmd, opts, report); err != nil {
		return err
	}

	if report.HasProblems() {
		ExitCode = 1
	}
	return nil
}
