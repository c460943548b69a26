package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/encfix/pkg/detector"
	"github.com/ccollicutt/encfix/pkg/output"
)

// DetectOptions holds command-line options for the detect command.
type DetectOptions struct {
	Output     string
	SampleSize int
	Quiet      bool
}

// NewDetectCommand creates the detect command.
func NewDetectCommand() *cobra.Command {
	opts := &DetectOptions{}

	cmd := &cobra.Command{
		Use:   "detect <file>...",
		Short: "Detect the encoding of source files",
		Long: `Report whether each file is plain ASCII, valid UTF-8 or ISO-8859-1.

For every file the size, line count and number of non-ASCII bytes are
shown, with the first line holding a non-ASCII byte as a sample. A NUL
byte near the start of a file marks it as binary.

Example:
  encfix detect books/arithmetic/top.lisp
  encfix detect -o json books/*.lisp`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().IntVarP(&opts.SampleSize, "sample", "n", detector.DefaultSampleSize, "Number of leading bytes searched for NUL")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "One line per file")

	return cmd
}

func runDetect(cmd *cobra.Command, args []string, opts *DetectOptions) error {
	ctx := commandContext(cmd)

	formatter, err := output.NewFormatter(opts.Output, output.FormatOptions{Quiet: opts.Quiet})
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	d := detector.New(
		detector.WithSampleSize(opts.SampleSize),
		detector.WithContextWidth(cfg.ContextWidth),
	)

	report := &output.DetectReport{}
	for _, path := range args {
		result, err := d.DetectFromFile(ctx, path)
		if err != nil {
			return fmt.Errorf("detection failed: %w", err)
		}
		report.Files = append(report.Files, result)
	}

	return formatter.FormatDetect(ctx, report, cmd.OutOrStdout())
}
