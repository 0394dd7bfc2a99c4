// Package source tracks the source files a compilation reads.
//
// Every file handed to the lexer is registered in a Map first, which mints
// the ID that spans and diagnostics use to refer back to the file.
package source

import (
	"errors"
	"fmt"
	"math"
	"os"
	"unicode/utf8"
)

// ID identifies a file registered in a Map.
type ID uint

// NullID is the "no source" sentinel. A Map never mints it, so it compares
// unequal to every real ID.
const NullID ID = math.MaxUint

// IsNull reports whether id is the NullID sentinel.
func (id ID) IsNull() bool {
	return id == NullID
}

func (id ID) String() string {
	if id.IsNull() {
		return "source(null)"
	}
	return fmt.Sprintf("source(%d)", uint(id))
}

// File is a source file and its full text. It is never mutated once created.
type File struct {
	Path     string
	Contents string
}

// NewFile creates a File from already loaded contents.
func NewFile(path, contents string) *File {
	return &File{Path: path, Contents: contents}
}

// ErrInvalidUTF8 is returned by ReadFile for files that are not valid UTF-8.
var ErrInvalidUTF8 = errors.New("source file is not valid UTF-8")

// ReadFile loads the file at path. Contents must be valid UTF-8.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: reading user-supplied source files is the point
	if err != nil {
		return nil, fmt.Errorf("failed to read source file: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("failed to read source file %s: %w", path, ErrInvalidUTF8)
	}
	return NewFile(path, string(data)), nil
}

// Map owns every registered File, keyed by ID.
//
// Insert is the only mutation; entries are never removed and IDs are never
// reused. Reads are safe from any number of goroutines once registration has
// finished.
type Map struct {
	files  map[ID]*File
	order  []ID
	nextID ID
}

// NewMap creates an empty Map.
func NewMap() *Map {
	return &Map{files: make(map[ID]*File)}
}

// generateID mints the next ID. Reaching the sentinel means the counter is
// exhausted, which is treated as unrecoverable.
func (m *Map) generateID() ID {
	if m.nextID == NullID {
		panic(fmt.Sprintf("source map exhausted: %d source ids have been generated", uint(NullID)))
	}
	id := m.nextID
	m.nextID++
	return id
}

// Insert registers file and returns its freshly minted ID.
func (m *Map) Insert(file *File) ID {
	if m.files == nil {
		m.files = make(map[ID]*File)
	}
	id := m.generateID()
	m.files[id] = file
	m.order = append(m.order, id)
	return id
}

// Get returns the file registered under id. Use it for ids that come from
// outside the caller's control.
func (m *Map) Get(id ID) (*File, bool) {
	f, ok := m.files[id]
	return f, ok
}

// MustGet returns the file registered under id and panics if there is none.
// Only call it with ids minted by this Map.
func (m *Map) MustGet(id ID) *File {
	f, ok := m.Get(id)
	if !ok {
		panic(fmt.Sprintf("source not present in source map: %s", id))
	}
	return f
}

// Len returns the number of registered files.
func (m *Map) Len() int {
	return len(m.files)
}

// IDs returns the registered ids in the order they were minted.
func (m *Map) IDs() []ID {
	ids := make([]ID, len(m.order))
	copy(ids, m.order)
	return ids
}
