package classifier

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// render maps regions to one letter per byte: c code, s string,
// l line comment, b block comment.
func render(regions []Region) string {
	var sb strings.Builder
	for _, r := range regions {
		switch r {
		case Code:
			sb.WriteByte('c')
		case String:
			sb.WriteByte('s')
		case LineComment:
			sb.WriteByte('l')
		case BlockComment:
			sb.WriteByte('b')
		}
	}
	return sb.String()
}

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		inBlock   bool
		want      string
		wantBlock bool
	}{
		{name: "plain code", line: "(f x)", want: "ccccc"},
		{name: "line comment", line: "(a ;b", want: "cccll"},
		{name: "semicolon in string", line: `"a;b" ;c`, want: "ssssscll"},
		{name: "escaped quote", line: `"a\"b;c" d`, want: "sssssssscc"},
		{name: "backslash in code does not escape", line: `a\;b`, want: "ccll"},
		{name: "block comment on one line", line: "#|x|#y", want: "bbbbbc"},
		{name: "block comment left open", line: "x #| open", want: "ccbbbbbbb", wantBlock: true},
		{name: "block comment closes carried state", line: "still |# (f)", inBlock: true, want: "bbbbbbbbcccc"},
		{name: "carried block comment stays open", line: "; not a line comment", inBlock: true, want: strings.Repeat("b", 20), wantBlock: true},
		{name: "pipe shared by opener and closer", line: "#|#", want: "bbb"},
		{name: "hash shared by closer and opener", line: "#|a|#|", want: "bbbbbb", wantBlock: true},
		{name: "shared hash reopens carried block", line: "x |#| y", inBlock: true, want: "bbbbbbb", wantBlock: true},
		{name: "code after shared pipe", line: "#|# (f)", want: "bbbcccc"},
		{name: "stray close marker in code", line: "|#", want: "cc"},
		{name: "block comment cannot open in string", line: `"#|" x`, want: "sssscc"},
		{name: "line comment hides block opener", line: "; #| x", want: "llllll"},
		{name: "unterminated string resets", line: `"abc`, want: "ssss"},
		{name: "empty line", line: "", want: ""},
		{name: "empty line keeps block state", line: "", inBlock: true, want: "", wantBlock: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			regions, st := ClassifyLine([]byte(tt.line), State{InBlockComment: tt.inBlock})
			assert.Equal(t, tt.want, render(regions))
			assert.Equal(t, tt.wantBlock, st.InBlockComment)
		})
	}
}

func TestClassifyLine_NonASCII(t *testing.T) {
	tests := []struct {
		name      string
		line      []byte
		inBlock   bool
		want      string
		wantBlock bool
	}{
		{name: "in line comment", line: []byte("; caf\xe9"), want: "llllll"},
		{name: "in string", line: []byte("(setq x \"caf\xe9\")"), want: "ccccccccssssssc"},
		{name: "in code", line: []byte("(f\xe9)"), want: "cccc"},
		{name: "before block opener", line: []byte("\xe9#|x"), want: "cbbb", wantBlock: true},
		{name: "between hash and pipe breaks opener", line: []byte("#\xe9|"), want: "ccc"},
		{name: "before block closer", line: []byte("x \xe9|# y"), inBlock: true, want: "bbbbbcc"},
		{name: "inside block comment", line: []byte("#|\xe9|#"), want: "bbbbb"},
		{name: "between pipe and hash breaks closer", line: []byte("#|x|\xe9#"), want: "bbbbbb", wantBlock: true},
		{name: "does not end string", line: []byte("\"\xe9\" ;"), want: "sssc" + "l"},
		{name: "high byte then comment", line: []byte{0xA2, ';', 0xE9}, want: "cll"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			regions, st := ClassifyLine(tt.line, State{InBlockComment: tt.inBlock})
			assert.Equal(t, tt.want, render(regions))
			assert.Equal(t, tt.wantBlock, st.InBlockComment)
		})
	}
}

func TestFold_BlockCommentAcrossLines(t *testing.T) {
	data := []byte("(defun f ()\n  #| start\n  caf\xe9 ; still block\n  end |# (g \"x;y\")\n; done")
	lines := Lines(data)
	require.Len(t, lines, 5)

	var got []string
	final := Fold(lines, State{}, func(lineNo int, line []byte, regions []Region) {
		require.Equal(t, len(line), len(regions), "line %d", lineNo)
		got = append(got, render(regions))
	})

	assert.False(t, final.InBlockComment)
	assert.Equal(t, []string{
		"ccccccccccc",
		"ccbbbbbbbb",
		strings.Repeat("b", 20),
		"bbbbbbbb" + "cccc" + "sssss" + "c",
		"llllll",
	}, got)
}

func TestFold_UnterminatedBlockComment(t *testing.T) {
	final := Fold(Lines([]byte("#| never\nclosed\n")), State{}, nil)
	assert.True(t, final.InBlockComment)
}

func TestLinesJoin(t *testing.T) {
	for _, s := range []string{"", "a", "a\n", "a\nb", "\n\n", "a\r\nb\r\n"} {
		assert.Equal(t, s, string(Join(Lines([]byte(s)))))
	}
	assert.Len(t, Lines([]byte("a\n")), 2)
}

func TestRegion(t *testing.T) {
	assert.True(t, LineComment.IsComment())
	assert.True(t, BlockComment.IsComment())
	assert.False(t, Code.IsComment())
	assert.False(t, String.IsComment())
	assert.Equal(t, "block_comment", BlockComment.String())
	assert.Equal(t, "unknown", Region(42).String())
}
