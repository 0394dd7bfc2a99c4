package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFile_Location(t *testing.T) {
	f := NewFile("t.casm", "ab\nçd\n\nxyz")

	tests := []struct {
		name   string
		offset int
		want   Location
	}{
		{"start", 0, Location{Line: 1, Column: 1}},
		{"same line", 1, Location{Line: 1, Column: 2}},
		{"newline char", 2, Location{Line: 1, Column: 3}},
		{"second line", 3, Location{Line: 2, Column: 1}},
		{"after multibyte rune", 5, Location{Line: 2, Column: 2}},
		{"empty line", 7, Location{Line: 3, Column: 1}},
		{"last line", 9, Location{Line: 4, Column: 2}},
		{"end of file", 11, Location{Line: 4, Column: 4}},
		{"past end is clamped", 99, Location{Line: 4, Column: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Location(tt.offset))
		})
	}
}

func TestFile_LineText(t *testing.T) {
	f := NewFile("t.casm", "first\r\nsecond\nthird")

	assert.Equal(t, "first", f.LineText(0))
	assert.Equal(t, "first", f.LineText(3))
	assert.Equal(t, "second", f.LineText(7))
	assert.Equal(t, "third", f.LineText(len(f.Contents)))
	assert.Equal(t, 14, f.LineStart(16))
	assert.Equal(t, 13, f.LineEnd(7))
}

func TestLocation_String(t *testing.T) {
	assert.Equal(t, "3:14", Location{Line: 3, Column: 14}.String())
}
