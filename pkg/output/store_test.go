package output

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveAndLoadScanReport(t *testing.T) {
	ctx := context.Background()
	location := filepath.Join(t.TempDir(), "scan.json")

	if err := Save(ctx, location, NewJSONFormatter(), createScanReport()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	report, err := LoadScanReport(ctx, location)
	if err != nil {
		t.Fatalf("LoadScanReport() error = %v", err)
	}

	paths := report.Paths()
	if len(paths) != 1 || paths[0] != "a.lisp" {
		t.Errorf("Paths() = %v, want [a.lisp]", paths)
	}
	if got := report.Results["a.lisp"][0].Char; got != "é" {
		t.Errorf("Char = %q, want é", got)
	}
}

func TestSave_Text(t *testing.T) {
	location := filepath.Join(t.TempDir(), "verify.txt")

	if err := Save(context.Background(), location, NewTextFormatter(FormatOptions{}), createVerifyReport()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(location)
	if err != nil {
		t.Fatalf("reading saved report: %v", err)
	}
	if !strings.Contains(string(data), "left.lisp:") {
		t.Errorf("unexpected report:\n%s", data)
	}
}

func TestSave_UnsupportedReport(t *testing.T) {
	location := filepath.Join(t.TempDir(), "x.json")

	err := Save(context.Background(), location, NewJSONFormatter(), "not a report")
	if err == nil {
		t.Fatal("expected error for unsupported report type")
	}
	if _, statErr := os.Stat(location); !os.IsNotExist(statErr) {
		t.Error("nothing should be written for an unsupported report")
	}
}

func TestLoadScanReport_Missing(t *testing.T) {
	_, err := LoadScanReport(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("expected error for missing report")
	}
}

func TestParseScanReport(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		wantPaths int
		wantErr   bool
	}{
		{
			name:      "report from an earlier scan",
			data:      `{"acl2_dir": "/x", "files_scanned": 2, "results": {"books/a.lisp": [{"line": 1, "col": 5, "byte": 233, "hex": "0xe9", "char": "é", "context": "; café"}]}}`,
			wantPaths: 1,
		},
		{
			name:      "empty results",
			data:      `{"results": {}}`,
			wantPaths: 0,
		},
		{
			name:    "no results",
			data:    `{"files_scanned": 2}`,
			wantErr: true,
		},
		{
			name:    "results is not an object",
			data:    `{"results": ["a.lisp"]}`,
			wantErr: true,
		},
		{
			name:    "null results",
			data:    `{"results": null}`,
			wantErr: true,
		},
		{
			name:    "not JSON",
			data:    `results:`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := ParseScanReport([]byte(tt.data))
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedReport) {
					t.Fatalf("error = %v, want ErrMalformedReport", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseScanReport() error = %v", err)
			}
			if len(report.Paths()) != tt.wantPaths {
				t.Errorf("len(Paths()) = %d, want %d", len(report.Paths()), tt.wantPaths)
			}
		})
	}
}
