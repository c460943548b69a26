package output

import (
	"context"
	"encoding/json"
	"io"
)

// JSONFormatter formats reports as indented JSON. Non-ASCII text is written
// as UTF-8, not escaped. The full report is always written, since a scan
// report is read back by fix --report.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// FormatScan renders a scan report.
func (f *JSONFormatter) FormatScan(ctx context.Context, report *ScanReport, w io.Writer) error {
	return f.encode(w, report)
}

// FormatFix renders a fix report.
func (f *JSONFormatter) FormatFix(ctx context.Context, report *FixReport, w io.Writer) error {
	return f.encode(w, report)
}

// FormatVerify renders a verify report.
func (f *JSONFormatter) FormatVerify(ctx context.Context, report *VerifyReport, w io.Writer) error {
	return f.encode(w, report)
}

// FormatDetect renders detection results.
func (f *JSONFormatter) FormatDetect(ctx context.Context, report *DetectReport, w io.Writer) error {
	return f.encode(w, report)
}

func (f *JSONFormatter) encode(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(v)
}
