// Package latin1 maps ISO-8859-1 bytes to Unicode text and UTF-8 bytes.
//
// ISO-8859-1 assigns byte values 0x00-0xFF to the code points U+0000-U+00FF,
// so every byte decodes to exactly one rune and decoding never fails.
package latin1

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Ellipsis is appended to context snippets that were cut short.
const Ellipsis = "..."

// Rune returns the code point the ISO-8859-1 byte b stands for.
func Rune(b byte) rune {
	return charmap.ISO8859_1.DecodeByte(b)
}

// Char returns the ISO-8859-1 character for b as a UTF-8 string.
func Char(b byte) string {
	return string(Rune(b))
}

// Hex formats b the way reports print byte values, e.g. "0xe9".
func Hex(b byte) string {
	return fmt.Sprintf("0x%02x", b)
}

// HexRun formats a run of bytes as space separated hex values.
func HexRun(bs []byte) string {
	parts := make([]string, len(bs))
	for i, b := range bs {
		parts[i] = Hex(b)
	}
	return strings.Join(parts, " ")
}

// AppendUTF8 appends the UTF-8 encoding of the ISO-8859-1 byte b to dst.
// Bytes below 0x80 are appended unchanged; bytes 0x80-0xFF become two bytes.
func AppendUTF8(dst []byte, b byte) []byte {
	return utf8.AppendRune(dst, Rune(b))
}

// Decode renders data as text, treating every byte as ISO-8859-1.
func Decode(data []byte) string {
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		var sb strings.Builder
		for _, b := range data {
			sb.WriteRune(Rune(b))
		}
		return sb.String()
	}
	return string(out)
}

// Context renders a line for a report: decoded as ISO-8859-1, trimmed of
// surrounding white space and cut to width runes. A width of zero or less
// disables truncation.
func Context(line []byte, width int) string {
	s := strings.TrimSpace(Decode(line))
	if width <= 0 || utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width]) + Ellipsis
}
