package scanner

import (
	"context"
	"log/slog"

	"github.com/ccollicutt/encfix/pkg/latin1"
	"github.com/ccollicutt/encfix/pkg/source"
)

// Scanner walks a file listing and collects non-ASCII bytes. It only reads.
type Scanner struct {
	contextWidth int
	logger       *slog.Logger
}

// Option configures the Scanner.
type Option func(*Scanner)

// WithContextWidth bounds context snippets (0 = whole line).
func WithContextWidth(n int) Option {
	return func(s *Scanner) {
		if n >= 0 {
			s.contextWidth = n
		}
	}
}

// WithLogger sets the logger for per-file diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scanner) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Scanner.
func New(opts ...Option) *Scanner {
	s := &Scanner{
		contextWidth: 80,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run scans every file in the listing. Unreadable files are logged and
// recorded in the result; the scan carries on. Only context cancellation
// ends it early.
func (s *Scanner) Run(ctx context.Context, listing *source.Listing) (*Result, error) {
	result := NewResult(listing.Root)

	for _, f := range listing.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := source.ReadFile(f)
		if err != nil {
			s.logger.Error("skipping unreadable file", "path", f.Rel, "error", err)
			result.AddError(f.Rel, err)
			continue
		}

		hits := ScanBytes(data, s.contextWidth)
		s.logger.Debug("scanned file", "path", f.Rel, "hits", len(hits))
		result.Add(f.Rel, hits)
	}

	return result, nil
}

// ScanBytes returns a Hit for every byte above 0x7f in data.
func ScanBytes(data []byte, contextWidth int) []Hit {
	var hits []Hit
	var index *source.LineIndex

	for i, b := range data {
		if b <= 0x7f {
			continue
		}
		if index == nil {
			index = source.NewLineIndex(data)
		}

		line, col := index.Position(i)
		h := hitFor(b)
		h.Line = line
		h.Col = col
		h.Context = latin1.Context(index.Line(line), contextWidth)
		hits = append(hits, h)
	}

	return hits
}

func hitFor(b byte) Hit {
	return Hit{
		Byte: int(b),
		Hex:  latin1.Hex(b),
		Char: latin1.Char(b),
	}
}
