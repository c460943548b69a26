// Package verifier checks that source files are valid UTF-8 and pinpoints
// the bytes that are not.
package verifier

import (
	"context"
	"log/slog"
	"unicode/utf8"

	"github.com/ccollicutt/encfix/pkg/latin1"
	"github.com/ccollicutt/encfix/pkg/source"
)

// Problem is a maximal run of bytes that do not form valid UTF-8.
type Problem struct {
	// Line is 1-based, Col the 0-based byte offset within the line.
	Line int `json:"line"`
	Col  int `json:"col"`
	// Offset is the byte offset of the run within the file.
	Offset int `json:"offset"`
	Length int `json:"length"`
	// Byte is the first byte of the run, Bytes the whole run.
	Byte    string `json:"byte"`
	Bytes   string `json:"bytes"`
	CharISO string `json:"char_iso"`
	Context string `json:"context"`
}

// FileError records a file that could not be read.
type FileError struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// Result is the outcome of a verification run.
type Result struct {
	Root       string
	ValidFiles int
	Problems   map[string][]Problem
	Errors     []FileError
}

// InvalidFiles returns the number of files with at least one problem.
func (r *Result) InvalidFiles() int {
	return len(r.Problems)
}

// TotalProblems returns the number of invalid runs across all files.
func (r *Result) TotalProblems() int {
	total := 0
	for _, p := range r.Problems {
		total += len(p)
	}
	return total
}

// Clean reports whether every file was read and is valid UTF-8.
func (r *Result) Clean() bool {
	return len(r.Problems) == 0 && len(r.Errors) == 0
}

// Verifier checks a file listing.
type Verifier struct {
	contextWidth int
	logger       *slog.Logger
}

// Option configures the Verifier.
type Option func(*Verifier)

// WithContextWidth bounds context snippets (0 = whole line).
func WithContextWidth(n int) Option {
	return func(v *Verifier) {
		if n >= 0 {
			v.contextWidth = n
		}
	}
}

// WithLogger sets the logger for per-file diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(v *Verifier) {
		if l != nil {
			v.logger = l
		}
	}
}

// New creates a Verifier.
func New(opts ...Option) *Verifier {
	v := &Verifier{
		contextWidth: 80,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Run verifies every file in the listing.
func (v *Verifier) Run(ctx context.Context, listing *source.Listing) (*Result, error) {
	result := &Result{
		Root:     listing.Root,
		Problems: make(map[string][]Problem),
	}

	for _, f := range listing.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := source.ReadFile(f)
		if err != nil {
			v.logger.Error("skipping unreadable file", "path", f.Rel, "error", err)
			result.Errors = append(result.Errors, FileError{Path: f.Rel, Error: err.Error()})
			continue
		}

		problems := FindProblems(data, v.contextWidth)
		if len(problems) == 0 {
			result.ValidFiles++
			continue
		}
		v.logger.Debug("invalid UTF-8", "path", f.Rel, "problems", len(problems))
		result.Problems[f.Rel] = problems
	}

	return result, nil
}

// FindProblems returns every maximal run of bytes in data that cannot be
// decoded as UTF-8. Stray continuation bytes, truncated sequences, overlong
// forms and surrogates all count. Adjacent invalid bytes form one run; a
// valid character or an ASCII byte ends it.
func FindProblems(data []byte, contextWidth int) []Problem {
	if utf8.Valid(data) {
		return nil
	}

	index := source.NewLineIndex(data)
	var problems []Problem

	for i := 0; i < len(data); {
		if !invalidAt(data, i) {
			if data[i] < utf8.RuneSelf {
				i++
			} else {
				_, size := utf8.DecodeRune(data[i:])
				i += size
			}
			continue
		}

		start := i
		for i++; i < len(data) && invalidAt(data, i); i++ {
		}
		run := data[start:i]

		line, col := index.Position(start)
		problems = append(problems, Problem{
			Line:    line,
			Col:     col,
			Offset:  start,
			Length:  len(run),
			Byte:    latin1.Hex(run[0]),
			Bytes:   latin1.HexRun(run),
			CharISO: latin1.Decode(run),
			Context: latin1.Context(index.Line(line), contextWidth),
		})
	}

	return problems
}

// invalidAt reports whether no valid UTF-8 sequence starts at data[i].
func invalidAt(data []byte, i int) bool {
	if data[i] < utf8.RuneSelf {
		return false
	}
	r, size := utf8.DecodeRune(data[i:])
	return r == utf8.RuneError && size == 1
}
