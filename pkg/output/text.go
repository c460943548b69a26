package output

import (
	"context"
	"fmt"
	"io"

	"github.com/ccollicutt/encfix/pkg/scanner"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// FormatScan renders a scan report, grouping each file's bytes by value.
func (f *TextFormatter) FormatScan(ctx context.Context, report *ScanReport, w io.Writer) error {
	if f.opts.Quiet {
		_, err := fmt.Fprintf(w, "Found %d non-ASCII byte(s) in %d file(s) (%d scanned)\n",
			report.TotalNonASCIIBytes, report.FilesWithNonASCII, report.FilesScanned)
		return err
	}

	fmt.Fprintf(w, "Scanned %d file(s) under %s\n", report.FilesScanned, report.Root)
	fmt.Fprintf(w, "\nFound %d non-ASCII byte(s) in %d file(s):\n\n",
		report.TotalNonASCIIBytes, report.FilesWithNonASCII)

	for _, rel := range report.Paths() {
		hits := report.Results[rel]
		fmt.Fprintf(w, "  %s: %d non-ASCII byte(s)\n", rel, len(hits))
		for _, c := range scanner.CountBytes(hits) {
			fmt.Fprintf(w, "    %s '%s' x%d\n", c.Hex, c.Char, c.Count)
		}
		if f.opts.Verbose {
			for _, h := range hits {
				fmt.Fprintf(w, "    Line %d, col %d: %s  %s\n", h.Line, h.Col, h.Hex, h.Context)
			}
		}
	}

	f.formatErrors(w, len(report.Errors), func(i int) (string, string) {
		return report.Errors[i].Path, report.Errors[i].Error
	})
	return nil
}

// FormatFix renders a fix report.
func (f *TextFormatter) FormatFix(ctx context.Context, report *FixReport, w io.Writer) error {
	if !f.opts.Quiet {
		if report.Excluded > 0 {
			fmt.Fprintf(w, "Excluded %d file(s)\n", report.Excluded)
		}
		if report.DryRun {
			fmt.Fprintln(w, "DRY RUN: no files were modified")
		}
		f.formatFixDetail(report, w)
	}

	fmt.Fprintln(w, "\nSummary:")
	fmt.Fprintf(w, "  Files processed: %d\n", report.FilesProcessed)
	fmt.Fprintf(w, "  Skipped (already UTF-8): %d\n", report.SkippedUTF8)
	fmt.Fprintf(w, "  Skipped (all ASCII): %d\n", report.SkippedClean)
	if report.DryRun {
		fmt.Fprintf(w, "  Files to change: %d\n", report.FilesChanged)
	} else {
		fmt.Fprintf(w, "  Files changed: %d\n", report.FilesChanged)
	}
	fmt.Fprintf(w, "  Total bytes converted: %d\n", report.TotalReplacements)
	fmt.Fprintf(w, "  Warnings (left unchanged): %d\n", report.TotalWarnings)
	if len(report.Errors) > 0 {
		fmt.Fprintf(w, "  Errors: %d\n", len(report.Errors))
	}
	return nil
}

func (f *TextFormatter) formatFixDetail(report *FixReport, w io.Writer) {
	action := "Changed"
	if report.DryRun {
		action = "Would change"
	}

	touched := make(map[string]struct{}, len(report.Changes)+len(report.Warnings))
	for rel := range report.Changes {
		touched[rel] = struct{}{}
	}
	for rel := range report.Warnings {
		touched[rel] = struct{}{}
	}

	for _, rel := range sortedKeys(touched) {
		if changes := report.Changes[rel]; len(changes) > 0 {
			fmt.Fprintf(w, "  %s %s: %d byte(s)\n", action, rel, len(changes))
			for _, c := range changes {
				fmt.Fprintf(w, "    Line %d:%d: %s '%s' -> UTF-8\n", c.Line, c.Col, c.Byte, c.Char)
			}
		}
		for _, warn := range report.Warnings[rel] {
			fmt.Fprintf(w, "  WARNING %s:%d:%d: %s (%s '%s')\n",
				rel, warn.Line, warn.Col, warn.Reason, warn.Byte, warn.Char)
			if f.opts.Verbose {
				fmt.Fprintf(w, "    %s\n", warn.Context)
			}
		}
	}

	for _, rel := range report.Unterminated {
		fmt.Fprintf(w, "  WARNING %s: unterminated block comment\n", rel)
	}

	f.formatErrors(w, len(report.Errors), func(i int) (string, string) {
		return report.Errors[i].Path, report.Errors[i].Error
	})
}

// FormatVerify renders a verify report.
func (f *TextFormatter) FormatVerify(ctx context.Context, report *VerifyReport, w io.Writer) error {
	fmt.Fprintln(w, "Results:")
	fmt.Fprintf(w, "  %d files are valid UTF-8\n", report.ValidFiles)
	fmt.Fprintf(w, "  %d files have non-UTF-8 bytes (%d total)\n", report.InvalidFiles, report.TotalProblems)

	if f.opts.Quiet || report.InvalidFiles == 0 {
		if len(report.Errors) > 0 {
			fmt.Fprintf(w, "  %d files could not be read\n", len(report.Errors))
		}
		return nil
	}

	fmt.Fprintln(w, "\nFiles with remaining non-UTF-8 bytes:")
	for _, rel := range sortedKeys(report.Problems) {
		fmt.Fprintf(w, "  %s:\n", rel)
		for _, p := range report.Problems[rel] {
			fmt.Fprintf(w, "    Line %d, col %d: %s '%s': %s\n", p.Line, p.Col, p.Bytes, p.CharISO, p.Context)
		}
	}

	f.formatErrors(w, len(report.Errors), func(i int) (string, string) {
		return report.Errors[i].Path, report.Errors[i].Error
	})
	return nil
}

// FormatDetect renders detection results, one block per file.
func (f *TextFormatter) FormatDetect(ctx context.Context, report *DetectReport, w io.Writer) error {
	for i, r := range report.Files {
		if f.opts.Quiet {
			fmt.Fprintf(w, "%s: %s\n", r.Path, r.Encoding)
			continue
		}
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "File: %s\n", r.Path)
		fmt.Fprintf(w, "Encoding: %s\n", r.Encoding)
		if r.Binary {
			fmt.Fprintln(w, "WARNING: NUL byte found, file looks binary")
		}
		fmt.Fprintf(w, "Size: %d byte(s), %d line(s)\n", r.Size, r.Lines)
		fmt.Fprintf(w, "Non-ASCII bytes: %d\n", r.NonASCII)
		if r.Sample != "" {
			fmt.Fprintf(w, "First non-ASCII line (%d):\n  %s\n", r.SampleLine, r.Sample)
		}
	}
	return nil
}

func (f *TextFormatter) formatErrors(w io.Writer, n int, entry func(i int) (string, string)) {
	if n == 0 {
		return
	}
	fmt.Fprintf(w, "\nErrors (%d):\n", n)
	for i := 0; i < n; i++ {
		path, msg := entry(i)
		fmt.Fprintf(w, "  %s: %s\n", path, msg)
	}
}
