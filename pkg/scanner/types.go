// Package scanner reports every non-ASCII byte in a source tree.
package scanner

// Hit is one byte above 0x7f.
type Hit struct {
	// Line is 1-based.
	Line int `json:"line"`
	// Col is the 0-based byte offset within the line.
	Col int `json:"col"`
	// Byte is the raw value.
	Byte int `json:"byte"`
	// Hex is Byte formatted as "0xe9".
	Hex string `json:"hex"`
	// Char is the ISO-8859-1 reading of the byte.
	Char string `json:"char"`
	// Context is the trimmed line the byte sits in.
	Context string `json:"context"`
}

// FileError records a file that could not be read.
type FileError struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// Result is the outcome of a scan.
type Result struct {
	Root         string
	FilesScanned int
	Results      map[string][]Hit
	Errors       []FileError
}

// NewResult creates an empty Result for root.
func NewResult(root string) *Result {
	return &Result{
		Root:    root,
		Results: make(map[string][]Hit),
	}
}

// Add records the hits of one scanned file.
func (r *Result) Add(rel string, hits []Hit) {
	r.FilesScanned++
	if len(hits) > 0 {
		r.Results[rel] = hits
	}
}

// AddError records a file that could not be scanned. It still counts as
// scanned, the way it counted towards the discovered total.
func (r *Result) AddError(rel string, err error) {
	r.FilesScanned++
	r.Errors = append(r.Errors, FileError{Path: rel, Error: err.Error()})
}

// FilesWithNonASCII returns the number of files with at least one hit.
func (r *Result) FilesWithNonASCII() int {
	return len(r.Results)
}

// TotalHits returns the number of non-ASCII bytes across all files.
func (r *Result) TotalHits() int {
	total := 0
	for _, hits := range r.Results {
		total += len(hits)
	}
	return total
}

// ByteCount is how often one byte value occurs in a file.
type ByteCount struct {
	Hex   string
	Char  string
	Count int
}

// CountBytes groups hits by byte value, ordered by value.
func CountBytes(hits []Hit) []ByteCount {
	var counts [256]int
	for _, h := range hits {
		counts[h.Byte]++
	}

	var out []ByteCount
	for i, n := range counts {
		if n == 0 {
			continue
		}
		h := hitFor(byte(i))
		out = append(out, ByteCount{Hex: h.Hex, Char: h.Char, Count: n})
	}
	return out
}
