package output

import (
	"context"
	"fmt"
	"io"
)

// Formatter renders reports in a specific format.
type Formatter interface {
	FormatScan(ctx context.Context, report *ScanReport, w io.Writer) error
	FormatFix(ctx context.Context, report *FixReport, w io.Writer) error
	FormatVerify(ctx context.Context, report *VerifyReport, w io.Writer) error
	FormatDetect(ctx context.Context, report *DetectReport, w io.Writer) error

	// Name returns the format name (text, json).
	Name() string
}

// FormatOptions controls text formatter behavior.
type FormatOptions struct {
	// Verbose adds the context line to every entry.
	Verbose bool

	// Quiet limits output to the summary.
	Quiet bool
}

// NewFormatter returns the formatter registered under name.
func NewFormatter(name string, opts FormatOptions) (Formatter, error) {
	switch name {
	case "text":
		return NewTextFormatter(opts), nil
	case "json":
		return NewJSONFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use text or json)", name)
	}
}
