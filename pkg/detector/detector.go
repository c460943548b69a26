// Package detector identifies the text encoding of source files.
package detector

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/ccollicutt/encfix/pkg/latin1"
)

// Encoding is the detected byte encoding of a file.
type Encoding string

const (
	// EncodingASCII means every byte is 0x7f or below.
	EncodingASCII Encoding = "ascii"
	// EncodingUTF8 means the content has non-ASCII bytes and is valid UTF-8.
	EncodingUTF8 Encoding = "utf8"
	// EncodingLatin1 means the content is not valid UTF-8 and is taken to be
	// ISO-8859-1, where every byte is a character.
	EncodingLatin1 Encoding = "latin1"
)

// DefaultSampleSize is how many leading bytes are checked for NUL bytes.
const DefaultSampleSize = 512

// DetectionResult holds what was learned about one file.
type DetectionResult struct {
	Path       string   `json:"path,omitempty"`
	Encoding   Encoding `json:"encoding"`
	Binary     bool     `json:"binary"`
	Size       int      `json:"size"`
	Lines      int      `json:"lines"`
	NonASCII   int      `json:"non_ascii"`
	SampleLine int      `json:"sample_line,omitempty"`
	Sample     string   `json:"sample,omitempty"`
}

// Detector classifies file content.
type Detector struct {
	sampleSize   int
	contextWidth int
}

// Option configures the Detector.
type Option func(*Detector)

// WithSampleSize sets how many leading bytes are searched for NUL (default 512).
func WithSampleSize(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.sampleSize = n
		}
	}
}

// WithContextWidth bounds the sample line length (default 80, 0 = unbounded).
func WithContextWidth(n int) Option {
	return func(d *Detector) {
		if n >= 0 {
			d.contextWidth = n
		}
	}
}

// New creates a Detector.
func New(opts ...Option) *Detector {
	d := &Detector{
		sampleSize:   DefaultSampleSize,
		contextWidth: 80,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Classify returns the encoding of data without gathering statistics.
func Classify(data []byte) Encoding {
	if !HasNonASCII(data) {
		return EncodingASCII
	}
	if utf8.Valid(data) {
		return EncodingUTF8
	}
	return EncodingLatin1
}

// HasNonASCII reports whether any byte is above 0x7f.
func HasNonASCII(data []byte) bool {
	for _, b := range data {
		if b > 0x7f {
			return true
		}
	}
	return false
}

// IsBinary reports whether the first n bytes of data contain a NUL byte.
func IsBinary(data []byte, n int) bool {
	if len(data) < n {
		n = len(data)
	}
	return bytes.IndexByte(data[:n], 0) >= 0
}

// Detect classifies data and counts its lines and non-ASCII bytes. The
// sample is the first line holding a non-ASCII byte.
func (d *Detector) Detect(data []byte) *DetectionResult {
	result := &DetectionResult{
		Encoding: Classify(data),
		Binary:   IsBinary(data, d.sampleSize),
		Size:     len(data),
		Lines:    bytes.Count(data, []byte{'\n'}) + 1,
	}

	for _, b := range data {
		if b > 0x7f {
			result.NonASCII++
		}
	}

	if result.Encoding == EncodingASCII {
		return result
	}

	for i, line := range bytes.Split(data, []byte{'\n'}) {
		if !HasNonASCII(line) {
			continue
		}
		result.SampleLine = i + 1
		if result.Encoding == EncodingUTF8 {
			result.Sample = truncate(strings.TrimSpace(string(line)), d.contextWidth)
		} else {
			result.Sample = latin1.Context(line, d.contextWidth)
		}
		break
	}

	return result
}

// DetectFromFile reads path and classifies its content.
func (d *Detector) DetectFromFile(ctx context.Context, path string) (*DetectionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	result := d.Detect(data)
	result.Path = path
	return result, nil
}

func truncate(s string, width int) string {
	if width <= 0 || utf8.RuneCountInString(s) <= width {
		return s
	}
	return string([]rune(s)[:width]) + latin1.Ellipsis
}
