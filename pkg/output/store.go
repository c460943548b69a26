package output

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
)

// ErrMalformedReport is returned when a scan report has no results object.
var ErrMalformedReport = errors.New("malformed scan report")

// reportMode is the permission given to saved reports.
const reportMode = 0o644

// LoadScanReport reads a scan report from a local path or any URL afs can
// open (file://, mem://, s3://, ...).
func LoadScanReport(ctx context.Context, location string) (*ScanReport, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, normalizeLocation(location))
	if err != nil {
		return nil, fmt.Errorf("reading report %s: %w", location, err)
	}
	return ParseScanReport(data)
}

// ParseScanReport decodes a scan report. Only the results object is
// required; the counters are informational.
func ParseScanReport(data []byte) (*ScanReport, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedReport, err)
	}

	raw, ok := fields["results"]
	if !ok || !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
		return nil, fmt.Errorf("%w: no results object", ErrMalformedReport)
	}

	var report ScanReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedReport, err)
	}
	return &report, nil
}

// Save renders report with formatter and writes it to location, a local
// path or afs URL. report must be a *ScanReport, *FixReport, *VerifyReport
// or *DetectReport.
func Save(ctx context.Context, location string, formatter Formatter, report any) error {
	var buf bytes.Buffer
	if err := Render(ctx, formatter, report, &buf); err != nil {
		return err
	}

	fs := afs.New()
	if err := fs.Upload(ctx, normalizeLocation(location), reportMode, &buf); err != nil {
		return fmt.Errorf("writing report %s: %w", location, err)
	}
	return nil
}

// Render dispatches report to the matching Format method.
func Render(ctx context.Context, formatter Formatter, report any, w io.Writer) error {
	var err error
	switch r := report.(type) {
	case *ScanReport:
		err = formatter.FormatScan(ctx, r, w)
	case *FixReport:
		err = formatter.FormatFix(ctx, r, w)
	case *VerifyReport:
		err = formatter.FormatVerify(ctx, r, w)
	case *DetectReport:
		err = formatter.FormatDetect(ctx, r, w)
	default:
		return fmt.Errorf("unsupported report type %T", report)
	}
	if err != nil {
		return fmt.Errorf("formatting %s report: %w", formatter.Name(), err)
	}
	return nil
}

// normalizeLocation makes local paths absolute so afs resolves them
// against the working directory. URLs are left alone.
func normalizeLocation(location string) string {
	if strings.Contains(location, "://") {
		return location
	}
	if abs, err := filepath.Abs(location); err == nil {
		return abs
	}
	return location
}
