package converter

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/ccollicutt/encfix/pkg/classifier"
	"github.com/ccollicutt/encfix/pkg/detector"
	"github.com/ccollicutt/encfix/pkg/latin1"
	"github.com/ccollicutt/encfix/pkg/source"
)

// Converter rewrites comment bytes in the files of a listing.
type Converter struct {
	dryRun       bool
	contextWidth int
	logger       *slog.Logger
	write        func(path string, data []byte) error
}

// Option configures the Converter.
type Option func(*Converter)

// WithDryRun computes changes without writing files.
func WithDryRun(v bool) Option {
	return func(c *Converter) {
		c.dryRun = v
	}
}

// WithContextWidth bounds warning context snippets (0 = whole line).
func WithContextWidth(n int) Option {
	return func(c *Converter) {
		if n >= 0 {
			c.contextWidth = n
		}
	}
}

// WithLogger sets the logger for per-file diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Converter.
func New(opts ...Option) *Converter {
	c := &Converter{
		contextWidth: 80,
		logger:       slog.Default(),
		write:        source.WriteFileAtomic,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run converts every file in the listing, in order. A file that cannot be
// read or written is logged and recorded; the run carries on with the next.
func (c *Converter) Run(ctx context.Context, listing *source.Listing) (*Result, error) {
	result := NewResult(c.dryRun)
	result.Excluded = listing.Excluded

	for _, f := range listing.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fr, err := c.ProcessFile(f)
		if err != nil {
			c.logger.Error("skipping file", "path", f.Rel, "error", err)
			result.AddError(f.Rel, err)
			continue
		}

		c.logger.Debug("processed file",
			"path", f.Rel,
			"status", fr.Status,
			"changes", len(fr.Changes),
			"warnings", len(fr.Warnings))
		if fr.UnterminatedBlockComment {
			c.logger.Warn("block comment never closed", "path", f.Rel)
		}

		result.Add(f.Rel, fr)
	}

	return result, nil
}

// ProcessFile converts one file and writes it back when something changed,
// unless this is a dry run.
func (c *Converter) ProcessFile(f source.File) (*FileResult, error) {
	data, err := source.ReadFile(f)
	if err != nil {
		return nil, err
	}

	fr := ConvertBytes(data, c.contextWidth)
	if !fr.Modified() {
		return fr, nil
	}

	fr.Digest = Digest{Before: Sum(data), After: Sum(fr.Output)}

	if !c.dryRun {
		if err := c.write(f.Path, fr.Output); err != nil {
			return nil, fmt.Errorf("writing %s: %w", f.Rel, err)
		}
	}

	return fr, nil
}

// ConvertBytes decides how to treat data and, for ISO-8859-1 content,
// rewrites non-ASCII comment bytes as UTF-8.
//
// Content without non-ASCII bytes, or content that is already valid UTF-8,
// is returned untouched: converting UTF-8 again would corrupt its multi-byte
// sequences. Non-ASCII bytes in code and strings keep their value and produce
// a Warning. Comment text that already holds well-formed multi-byte UTF-8
// sequences keeps them, so running the conversion again changes nothing;
// each kept sequence is also reported as a Warning.
// Lines are split and rejoined on '\n' only, so line count and
// every other byte are preserved.
func ConvertBytes(data []byte, contextWidth int) *FileResult {
	switch detector.Classify(data) {
	case detector.EncodingASCII:
		return &FileResult{Status: StatusClean}
	case detector.EncodingUTF8:
		return &FileResult{Status: StatusUTF8}
	}

	fr := &FileResult{Status: StatusLatin1}
	lines := classifier.Lines(data)
	out := make([][]byte, len(lines))

	final := classifier.Fold(lines, classifier.State{}, func(lineNo int, line []byte, regions []classifier.Region) {
		out[lineNo-1] = convertLine(fr, lineNo, line, regions, contextWidth)
	})
	fr.UnterminatedBlockComment = final.InBlockComment

	if fr.Modified() {
		fr.Output = classifier.Join(out)
	}
	return fr
}

func convertLine(fr *FileResult, lineNo int, line []byte, regions []classifier.Region, contextWidth int) []byte {
	if !detector.HasNonASCII(line) {
		return line
	}

	buf := make([]byte, 0, len(line)+8)
	for col := 0; col < len(line); col++ {
		b := line[col]
		if b <= 0x7f {
			buf = append(buf, b)
			continue
		}

		if regions[col].IsComment() {
			// A multi-byte UTF-8 sequence in a comment was converted by an
			// earlier run; re-encoding it would double-encode it.
			if r, size := utf8.DecodeRune(line[col:]); r != utf8.RuneError && size > 1 {
				buf = append(buf, line[col:col+size]...)
				fr.Warnings = append(fr.Warnings, Warning{
					Line:    lineNo,
					Col:     col + 1,
					Byte:    latin1.HexRun(line[col : col+size]),
					Char:    string(r),
					Context: latin1.Context(line, contextWidth),
					Reason:  ReasonKeptUTF8,
				})
				col += size - 1
				continue
			}

			buf = latin1.AppendUTF8(buf, b)
			fr.Changes = append(fr.Changes, Change{
				Line: lineNo,
				Col:  col + 1,
				Byte: latin1.Hex(b),
				Char: latin1.Char(b),
			})
			continue
		}

		buf = append(buf, b)
		fr.Warnings = append(fr.Warnings, Warning{
			Line:    lineNo,
			Col:     col + 1,
			Byte:    latin1.Hex(b),
			Char:    latin1.Char(b),
			Context: latin1.Context(line, contextWidth),
			Reason:  ReasonCode,
		})
	}
	return buf
}
