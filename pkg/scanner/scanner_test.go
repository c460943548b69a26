package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccollicutt/encfix/pkg/source"
)

func TestScanBytes(t *testing.T) {
	data := []byte("(a)\n  ; caf\xe9 na\xefve  \n(b \"\xb0\")")

	hits := ScanBytes(data, 80)
	require.Len(t, hits, 3)

	assert.Equal(t, Hit{Line: 2, Col: 7, Byte: 0xE9, Hex: "0xe9", Char: "é", Context: "; café naïve"}, hits[0])
	assert.Equal(t, 2, hits[1].Line)
	assert.Equal(t, 11, hits[1].Col)
	assert.Equal(t, "ï", hits[1].Char)
	assert.Equal(t, Hit{Line: 3, Col: 4, Byte: 0xB0, Hex: "0xb0", Char: "°", Context: "(b \"°\")"}, hits[2])
}

func TestScanBytes_ASCII(t *testing.T) {
	assert.Empty(t, ScanBytes([]byte("(defun f (x) x)\n"), 80))
	assert.Empty(t, ScanBytes(nil, 80))
}

func TestScanBytes_UTF8CountsEveryByte(t *testing.T) {
	hits := ScanBytes([]byte("\xc3\xa9"), 80)
	require.Len(t, hits, 2)
	assert.Equal(t, 0, hits[0].Col)
	assert.Equal(t, 1, hits[1].Col)
}

func TestScanBytes_ContextWidth(t *testing.T) {
	hits := ScanBytes([]byte("; \xe9 abcdefghij"), 5)
	require.Len(t, hits, 1)
	assert.Equal(t, "; é a...", hits[0].Context)

	hits = ScanBytes([]byte("; \xe9 abcdefghij"), 0)
	assert.Equal(t, "; é abcdefghij", hits[0].Context)
}

func TestCountBytes(t *testing.T) {
	hits := ScanBytes([]byte("\xe9\xe8\xe9\xe9"), 80)
	counts := CountBytes(hits)

	assert.Equal(t, []ByteCount{
		{Hex: "0xe8", Char: "è", Count: 1},
		{Hex: "0xe9", Char: "é", Count: 3},
	}, counts)
}

func TestScanner_Run(t *testing.T) {
	root := t.TempDir()
	write := func(rel, content string) {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	write("clean.lisp", "(a)\n")
	write("books/latin.lisp", "; caf\xe9\n")
	write("books/utf8.lsp", "; caf\xc3\xa9\n")

	listing, err := source.Discover(context.Background(), root, source.Options{Patterns: []string{"**/*.lisp", "**/*.lsp"}})
	require.NoError(t, err)
	listing.Files = append(listing.Files, source.File{Path: filepath.Join(root, "gone.lisp"), Rel: "gone.lisp"})

	result, err := New().Run(context.Background(), listing)
	require.NoError(t, err)

	assert.Equal(t, 4, result.FilesScanned)
	assert.Equal(t, 2, result.FilesWithNonASCII())
	assert.Equal(t, 3, result.TotalHits())
	assert.Len(t, result.Results["books/latin.lisp"], 1)
	assert.Len(t, result.Results["books/utf8.lsp"], 2)
	assert.NotContains(t, result.Results, "clean.lisp")
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "gone.lisp", result.Errors[0].Path)
}

func TestScanner_RunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	listing := &source.Listing{Files: []source.File{{Path: "x", Rel: "x"}}}
	_, err := New().Run(ctx, listing)
	assert.ErrorIs(t, err, context.Canceled)
}
