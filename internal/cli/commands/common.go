package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/encfix/pkg/config"
	"github.com/ccollicutt/encfix/pkg/output"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// ReportOptions are the output flags shared by scan, fix and verify.
type ReportOptions struct {
	Output  string
	Out     string
	Quiet   bool
	Verbose bool
}

// check rejects an unknown output format before any work is done.
func (o *ReportOptions) check() error {
	switch o.Output {
	case "", "none", "text", "json":
		return nil
	default:
		return fmt.Errorf("unknown output format %q (use text or json)", o.Output)
	}
}

func addReportFlags(cmd *cobra.Command, opts *ReportOptions, defaultOutput, outputHelp string) {
	cmd.Flags().StringVarP(&opts.Output, "output", "o", defaultOutput, outputHelp)
	cmd.Flags().StringVar(&opts.Out, "out", "", "Also write the report to a path or URL (file://, mem://, s3://, ...)")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only on stderr, no per-file detail")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Include the source line with each entry")
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadConfig reads the file named by the root command's --config flag, or
// the defaults when it is not set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var path string
	if f := cmd.Flags().Lookup("config"); f != nil {
		path = f.Value.String()
	}

	cfg, err := config.Resolve(commandContext(cmd), path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// rootFor returns the directory argument, falling back to the configured root.
func rootFor(cfg *config.Config, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.Root
}

// emitReport writes report to stdout in the chosen format (none when empty),
// a text summary to stderr unless stdout already carries text, and a copy to
// opts.Out when set.
func emitReport(cmd *cobra.Command, opts *ReportOptions, report any) error {
	ctx := commandContext(cmd)
	textOpts := output.FormatOptions{Quiet: opts.Quiet, Verbose: opts.Verbose}

	var stdout output.Formatter
	if opts.Output != "" && opts.Output != "none" {
		f, err := output.NewFormatter(opts.Output, textOpts)
		if err != nil {
			return err
		}
		stdout = f
	}

	if stdout == nil || stdout.Name() != "text" {
		if err := output.Render(ctx, output.NewTextFormatter(textOpts), report, cmd.ErrOrStderr()); err != nil {
			return err
		}
	}

	if stdout != nil {
		if err := output.Render(ctx, stdout, report, cmd.OutOrStdout()); err != nil {
			return err
		}
	}

	if opts.Out != "" {
		saver := stdout
		if saver == nil {
			saver = output.NewJSONFormatter()
		}
		if err := output.Save(ctx, opts.Out, saver, report); err != nil {
			return err
		}
	}

	return nil
}
