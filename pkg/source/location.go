package source

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Location is a human-facing position inside a File.
type Location struct {
	Line   int // 1-based line number
	Column int // 1-based column, counted in runes
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// Location converts a byte offset into a line and column. Offsets past the
// end of the file are clamped to the end.
func (f *File) Location(offset int) Location {
	if offset > len(f.Contents) {
		offset = len(f.Contents)
	}
	if offset < 0 {
		offset = 0
	}

	start := f.LineStart(offset)
	line := strings.Count(f.Contents[:start], "\n") + 1
	column := utf8.RuneCountInString(f.Contents[start:offset]) + 1

	return Location{Line: line, Column: column}
}

// LineStart returns the byte offset of the first character on the line
// containing offset.
func (f *File) LineStart(offset int) int {
	if offset > len(f.Contents) {
		offset = len(f.Contents)
	}
	return strings.LastIndexByte(f.Contents[:offset], '\n') + 1
}

// LineEnd returns the byte offset of the newline ending the line containing
// offset, or the length of the file on the last line.
func (f *File) LineEnd(offset int) int {
	if offset > len(f.Contents) {
		return len(f.Contents)
	}
	if i := strings.IndexByte(f.Contents[offset:], '\n'); i >= 0 {
		return offset + i
	}
	return len(f.Contents)
}

// LineText returns the text of the line containing offset without its
// trailing newline.
func (f *File) LineText(offset int) string {
	return strings.TrimSuffix(f.Contents[f.LineStart(offset):f.LineEnd(offset)], "\r")
}
