package source

import "sort"

// LineIndex maps byte offsets in a file to line and column positions.
type LineIndex struct {
	data   []byte
	starts []int
}

// NewLineIndex records where every '\n'-separated line of data begins.
func NewLineIndex(data []byte) *LineIndex {
	starts := []int{0}
	for i, b := range data {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{data: data, starts: starts}
}

// Position returns the 1-based line and 0-based column of offset.
func (x *LineIndex) Position(offset int) (line, col int) {
	i := sort.Search(len(x.starts), func(i int) bool { return x.starts[i] > offset }) - 1
	return i + 1, offset - x.starts[i]
}

// Line returns the bytes of the 1-based line, without its newline.
func (x *LineIndex) Line(line int) []byte {
	if line < 1 || line > len(x.starts) {
		return nil
	}
	start := x.starts[line-1]
	end := len(x.data)
	if line < len(x.starts) {
		end = x.starts[line] - 1
	}
	return x.data[start:end]
}

// Lines returns the number of lines.
func (x *LineIndex) Lines() int {
	return len(x.starts)
}
