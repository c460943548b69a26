// Package output renders encfix reports and moves them to and from storage.
package output

import (
	"sort"

	"github.com/ccollicutt/encfix/pkg/converter"
	"github.com/ccollicutt/encfix/pkg/detector"
	"github.com/ccollicutt/encfix/pkg/scanner"
	"github.com/ccollicutt/encfix/pkg/verifier"
)

// ScanReport lists every non-ASCII byte in a tree.
type ScanReport struct {
	Root               string                   `json:"root"`
	FilesScanned       int                      `json:"files_scanned"`
	FilesWithNonASCII  int                      `json:"files_with_non_ascii"`
	TotalNonASCIIBytes int                      `json:"total_non_ascii_bytes"`
	Results            map[string][]scanner.Hit `json:"results"`
	Errors             []scanner.FileError      `json:"errors"`
}

// NewScanReport creates a ScanReport from a scan result.
func NewScanReport(r *scanner.Result) *ScanReport {
	report := &ScanReport{
		Root:               r.Root,
		FilesScanned:       r.FilesScanned,
		FilesWithNonASCII:  r.FilesWithNonASCII(),
		TotalNonASCIIBytes: r.TotalHits(),
		Results:            r.Results,
		Errors:             r.Errors,
	}
	if report.Results == nil {
		report.Results = map[string][]scanner.Hit{}
	}
	if report.Errors == nil {
		report.Errors = []scanner.FileError{}
	}
	return report
}

// Paths returns the relative paths in the report, sorted.
func (r *ScanReport) Paths() []string {
	return sortedKeys(r.Results)
}

// FixReport is the outcome of a conversion run.
type FixReport struct {
	DryRun            bool                           `json:"dry_run"`
	Root              string                         `json:"root"`
	FilesProcessed    int                            `json:"files_processed"`
	SkippedUTF8       int                            `json:"skipped_utf8"`
	SkippedClean      int                            `json:"skipped_clean"`
	Excluded          int                            `json:"excluded"`
	FilesChanged      int                            `json:"files_changed"`
	TotalReplacements int                            `json:"total_replacements"`
	TotalWarnings     int                            `json:"total_warnings"`
	Changes           map[string][]converter.Change  `json:"changes"`
	Warnings          map[string][]converter.Warning `json:"warnings"`
	Digests           map[string]converter.Digest    `json:"digests"`
	Unterminated      []string                       `json:"unterminated_block_comments"`
	Errors            []converter.FileError          `json:"errors"`
}

// NewFixReport creates a FixReport from a conversion result.
func NewFixReport(root string, r *converter.Result) *FixReport {
	report := &FixReport{
		DryRun:            r.DryRun,
		Root:              root,
		FilesProcessed:    r.FilesProcessed,
		SkippedUTF8:       r.SkippedUTF8,
		SkippedClean:      r.SkippedClean,
		Excluded:          r.Excluded,
		FilesChanged:      r.FilesChanged(),
		TotalReplacements: r.TotalReplacements(),
		TotalWarnings:     r.TotalWarnings(),
		Changes:           r.Changes,
		Warnings:          r.Warnings,
		Digests:           r.Digests,
		Unterminated:      r.Unterminated,
		Errors:            r.Errors,
	}
	if report.Unterminated == nil {
		report.Unterminated = []string{}
	}
	if report.Errors == nil {
		report.Errors = []converter.FileError{}
	}
	return report
}

// VerifyReport lists the bytes that are still not UTF-8.
type VerifyReport struct {
	Root          string                        `json:"root"`
	ValidFiles    int                           `json:"valid_files"`
	InvalidFiles  int                           `json:"invalid_files"`
	TotalProblems int                           `json:"total_problems"`
	Problems      map[string][]verifier.Problem `json:"problems"`
	Errors        []verifier.FileError          `json:"errors"`
}

// NewVerifyReport creates a VerifyReport from a verification result.
func NewVerifyReport(r *verifier.Result) *VerifyReport {
	report := &VerifyReport{
		Root:          r.Root,
		ValidFiles:    r.ValidFiles,
		InvalidFiles:  r.InvalidFiles(),
		TotalProblems: r.TotalProblems(),
		Problems:      r.Problems,
		Errors:        r.Errors,
	}
	if report.Problems == nil {
		report.Problems = map[string][]verifier.Problem{}
	}
	if report.Errors == nil {
		report.Errors = []verifier.FileError{}
	}
	return report
}

// HasProblems returns true if any file is not valid UTF-8 or could not be
// read.
func (r *VerifyReport) HasProblems() bool {
	return r.InvalidFiles > 0 || len(r.Errors) > 0
}

// DetectReport holds the encoding of each inspected file.
type DetectReport struct {
	Files []*detector.DetectionResult `json:"files"`
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
