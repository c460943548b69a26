// Package converter re-encodes ISO-8859-1 bytes found in comments as UTF-8.
package converter

// Status says how a file was handled.
type Status string

const (
	// StatusClean files hold no byte above 0x7f.
	StatusClean Status = "clean"
	// StatusUTF8 files already decode as UTF-8 and are left alone.
	StatusUTF8 Status = "utf8"
	// StatusLatin1 files were classified byte by byte. They may or may not
	// have had anything to change.
	StatusLatin1 Status = "latin1"
)

// Warning reasons.
const (
	// ReasonCode marks a non-ASCII byte outside comments.
	ReasonCode = "non-ASCII in code (not in comment)"
	// ReasonKeptUTF8 marks a well-formed UTF-8 sequence in a comment that
	// was left as is. In a file that is otherwise ISO-8859-1 it may also be
	// two Latin-1 characters such as "Ã©".
	ReasonKeptUTF8 = "kept existing UTF-8 sequence in comment"
)

// Change is one comment byte rewritten to UTF-8.
type Change struct {
	// Line is 1-based.
	Line int `json:"line"`
	// Col is the 1-based byte column in the original line.
	Col  int    `json:"col"`
	Byte string `json:"byte"`
	Char string `json:"char"`
}

// Warning is non-ASCII text left unchanged for a person to review: a byte
// in code or a string, or a UTF-8 sequence already present in a comment.
type Warning struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Byte    string `json:"byte"`
	Char    string `json:"char"`
	Context string `json:"context"`
	Reason  string `json:"reason"`
}

// Digest identifies a file's content before and after conversion.
type Digest struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

// FileResult is the outcome for one file.
type FileResult struct {
	Status   Status
	Changes  []Change
	Warnings []Warning

	// Output is the converted content. It is nil unless Modified.
	Output []byte

	// Digest is set when Modified.
	Digest Digest

	// UnterminatedBlockComment is set when a #| was never closed, so every
	// byte after it was treated as comment.
	UnterminatedBlockComment bool
}

// Modified reports whether any byte was rewritten.
func (r *FileResult) Modified() bool {
	return len(r.Changes) > 0
}

// FileError records a file that could not be read or written.
type FileError struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// Result accumulates the outcome of a run. It is built by Add and AddError
// as each file completes.
type Result struct {
	DryRun         bool
	FilesProcessed int
	SkippedUTF8    int
	SkippedClean   int
	Excluded       int
	Changes        map[string][]Change
	Warnings       map[string][]Warning
	Digests        map[string]Digest
	Unterminated   []string
	Errors         []FileError
}

// NewResult creates an empty Result.
func NewResult(dryRun bool) *Result {
	return &Result{
		DryRun:   dryRun,
		Changes:  make(map[string][]Change),
		Warnings: make(map[string][]Warning),
		Digests:  make(map[string]Digest),
	}
}

// Add folds one file's outcome into the totals.
func (r *Result) Add(rel string, fr *FileResult) {
	r.FilesProcessed++

	switch fr.Status {
	case StatusClean:
		r.SkippedClean++
		return
	case StatusUTF8:
		r.SkippedUTF8++
		return
	}

	if fr.Modified() {
		r.Changes[rel] = fr.Changes
		r.Digests[rel] = fr.Digest
	}
	if len(fr.Warnings) > 0 {
		r.Warnings[rel] = fr.Warnings
	}
	if fr.UnterminatedBlockComment {
		r.Unterminated = append(r.Unterminated, rel)
	}
}

// AddError records a file that failed.
func (r *Result) AddError(rel string, err error) {
	r.FilesProcessed++
	r.Errors = append(r.Errors, FileError{Path: rel, Error: err.Error()})
}

// FilesChanged returns the number of files with at least one change.
func (r *Result) FilesChanged() int {
	return len(r.Changes)
}

// TotalReplacements returns the number of bytes converted.
func (r *Result) TotalReplacements() int {
	total := 0
	for _, c := range r.Changes {
		total += len(c)
	}
	return total
}

// TotalWarnings returns the number of non-ASCII bytes left in code.
func (r *Result) TotalWarnings() int {
	total := 0
	for _, w := range r.Warnings {
		total += len(w)
	}
	return total
}
