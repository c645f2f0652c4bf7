// Package source owns the immutable byte buffers that every other stage
// of the front-end addresses by offset: the lexer reads from a
// SourceFile, tokens are half-open byte ranges into one, and diagnostics
// render a Location back out of one.
package source

import (
	"io/ioutil"
	"sort"
	"unicode/utf8"

	"github.com/jinrudals/wake/wakeerrors"
)

// Coordinates is a 1-based (row, column) pair. Columns count Unicode
// code points, not bytes, per the rendering rules diagnostics rely on.
type Coordinates struct {
	Row    int
	Column int
}

// File owns an immutable UTF-8 byte range and tracks the offsets at
// which newlines occur, so any byte offset inside it can be mapped back
// to a Coordinates pair by binary search.
//
// A File is created once per input and lives for the duration of a
// front-end run; nothing mutates its Bytes after construction. The
// newline table is appended to during lexing (each '\n' byte the lexer
// crosses is recorded), then never touched again.
type File struct {
	Filename string
	Bytes    []byte

	// newlines holds the byte offset of every '\n' seen so far, in
	// increasing order.
	newlines []int
}

// Open reads path as a UTF-8 file. Invalid UTF-8 is reported via the
// returned error's Kind (wakeerrors.Invalid) but does not prevent the
// File from being constructed: callers that want to keep going (e.g. an
// LSP collaborator editing an in-flight buffer) may ignore the error.
func Open(path string) (*File, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, wakeerrors.E("Open", path, err)
	}
	return FromBytes(path, b)
}

// FromString constructs a File from an in-memory buffer, used by
// interactive collaborators (e.g. an editor) that hold unsaved text.
func FromString(name, text string) (*File, error) {
	return FromBytes(name, []byte(text))
}

// FromBytes constructs a File directly from a byte slice. If b is not
// valid UTF-8, a non-nil error of Kind wakeerrors.Invalid is returned
// alongside a still-usable File (the invalid run is left in place; the
// lexer will surface it token by token).
func FromBytes(name string, b []byte) (*File, error) {
	f := &File{Filename: name, Bytes: b}
	if !utf8.Valid(b) {
		return f, wakeerrors.E("Open", name, wakeerrors.Invalid, wakeerrors.New("not valid UTF-8"))
	}
	return f, nil
}

// Len returns the number of bytes in the file.
func (f *File) Len() int { return len(f.Bytes) }

// RecordNewline appends offset to the newline table. The lexer calls
// this exactly once per '\n' byte it crosses, in increasing offset
// order; offsets out of order or already recorded are ignored.
func (f *File) RecordNewline(offset int) {
	n := len(f.newlines)
	if n > 0 && f.newlines[n-1] >= offset {
		return
	}
	f.newlines = append(f.newlines, offset)
}

// Coordinates returns the 1-based (row, column) of byte offset.
// Offset 0 always yields (1, 1). Column counts code points from the
// start of the line up to (not including) offset.
func (f *File) Coordinates(offset int) Coordinates {
	if offset < 0 {
		offset = 0
	}
	if offset > len(f.Bytes) {
		offset = len(f.Bytes)
	}
	// row = 1 + count of newlines strictly before offset.
	row := sort.Search(len(f.newlines), func(i int) bool {
		return f.newlines[i] >= offset
	})
	lineStart := 0
	if row > 0 {
		lineStart = f.newlines[row-1] + 1
	}
	col := utf8.RuneCount(f.Bytes[lineStart:offset]) + 1
	return Coordinates{Row: row + 1, Column: col}
}

// Location names a half-open-in-spirit, closed-in-storage byte range
// within a named file: EndCoord refers to the last included byte, not
// one past the end, matching how tokens report their own extent.
type Location struct {
	Filename string
	Start    Coordinates
	End      Coordinates
}

// LocationOf builds a Location for the half-open byte range [start,
// end) in f. If end == start (an empty range), End mirrors Start and
// the rendered range is a single insertion point.
func (f *File) LocationOf(start, end int) Location {
	loc := Location{Filename: f.Filename, Start: f.Coordinates(start)}
	if end <= start {
		loc.End = loc.Start
		return loc
	}
	loc.End = f.Coordinates(end - 1)
	return loc
}
