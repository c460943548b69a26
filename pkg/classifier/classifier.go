// Package classifier tells code apart from comments in Lisp-family source.
//
// Classification works on raw bytes, one line at a time. Only ASCII bytes
// drive state transitions; a byte above 0x7f takes the region that is in
// effect where it sits. The one piece of state that survives a line break is
// whether a #| ... |# block comment is still open, and it is passed in and
// returned explicitly so that a file is classified by folding over its lines.
package classifier

import "bytes"

// Region is the lexical context a byte sits in.
type Region int

const (
	// Code is anything outside strings and comments.
	Code Region = iota
	// String is a "..." literal, quotes included.
	String
	// LineComment runs from ';' to the end of the line.
	LineComment
	// BlockComment is delimited by #| and |#, markers included.
	BlockComment
)

// String returns the region name used in reports and logs.
func (r Region) String() string {
	switch r {
	case Code:
		return "code"
	case String:
		return "string"
	case LineComment:
		return "line_comment"
	case BlockComment:
		return "block_comment"
	default:
		return "unknown"
	}
}

// IsComment reports whether bytes in r are comment text.
func (r Region) IsComment() bool {
	return r == LineComment || r == BlockComment
}

// State is carried from one line to the next.
type State struct {
	InBlockComment bool
}

// ClassifyLine returns the region of every byte in line (which must not
// contain the '\n' separator) and the state to use for the following line.
//
// Line comments and strings never continue past the end of a line. Block
// comments do not nest, and a block comment cannot open inside a string. The
// two bytes of a #| or |# marker must be adjacent. A marker's second byte
// can also start the next marker, so "#|#" opens and closes a block comment
// and "|#|" inside one closes and reopens it.
func ClassifyLine(line []byte, st State) ([]Region, State) {
	regions := make([]Region, len(line))

	mode := Code
	if st.InBlockComment {
		mode = BlockComment
	}
	escape := false
	var prev byte

	for i, b := range line {
		if b > 0x7f {
			regions[i] = mode
			prev = b
			continue
		}

		switch mode {
		case BlockComment:
			regions[i] = BlockComment
			if prev == '|' && b == '#' {
				mode = Code
			}

		case LineComment:
			regions[i] = LineComment

		case String:
			regions[i] = String
			switch {
			case escape:
				escape = false
			case b == '\\':
				escape = true
			case b == '"':
				mode = Code
			}

		default:
			switch {
			case prev == '#' && b == '|':
				mode = BlockComment
				regions[i-1] = BlockComment
			case b == '"':
				mode = String
			case b == ';':
				mode = LineComment
			}
			regions[i] = mode
		}
		prev = b
	}

	return regions, State{InBlockComment: mode == BlockComment}
}

// Lines splits data on '\n'. The separators are dropped; Join restores them.
// A trailing newline yields a final empty line, so Join(Lines(d)) == d.
func Lines(data []byte) [][]byte {
	return bytes.Split(data, []byte{'\n'})
}

// Join concatenates lines with '\n'.
func Join(lines [][]byte) []byte {
	return bytes.Join(lines, []byte{'\n'})
}

// LineFunc receives each line with its 1-based number and byte regions.
type LineFunc func(lineNo int, line []byte, regions []Region)

// Fold classifies lines in order starting from st, hands every line to fn and
// returns the state after the last line. A final state with InBlockComment set
// means a block comment was never closed.
func Fold(lines [][]byte, st State, fn LineFunc) State {
	for i, line := range lines {
		var regions []Region
		regions, st = ClassifyLine(line, st)
		if fn != nil {
			fn(i+1, line, regions)
		}
	}
	return st
}
