// Package loc has routines for tracking file locations.
package loc

import (
	"fmt"
	"strings"
)

// Loc compactly identifies a string in a set of files.
// The zero value indicates no location.
type Loc [2]int

// A Locer has a location.
type Locer interface {
	Loc() Loc
}

// Join returns the smallest Loc that contains both a and b.
// If either is the zero Loc, the other is returned.
func Join(a, b Loc) Loc {
	switch {
	case a == Loc{}:
		return b
	case b == Loc{}:
		return a
	}
	l := a
	if b[0] < l[0] {
		l[0] = b[0]
	}
	if b[1] > l[1] {
		l[1] = b[1]
	}
	return l
}

// A Location identifies a string in a file.
// The zero value indicates no location.
type Location struct {
	Path string
	Line [2]int
	Col  [2]int
}

func (l Location) String() string {
	if (l == Location{}) {
		return ""
	}
	if l.Line[0] == l.Line[1] && l.Col[0] == l.Col[1] {
		return fmt.Sprintf("%s:%d.%d", l.Path, l.Line[0], l.Col[0])
	}
	return fmt.Sprintf("%s:%d.%d-%d.%d", l.Path, l.Line[0], l.Col[0], l.Line[1], l.Col[1])
}

// TrimPrefix returns the Location with the prefix removed from its path.
func TrimPrefix(l Location, prefix string) Location {
	l.Path = strings.TrimPrefix(l.Path, prefix)
	return l
}

// File is an interface describing a file
// by its path, size, and newline byte offsets.
type File interface {
	Path() string
	Len() int
	NewLines() []int
}

// Source is a File held in memory.
type Source struct {
	path string
	text string
	nls  []int
}

// NewSource returns a new Source.
func NewSource(path, text string) *Source {
	s := &Source{path: path, text: text}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			s.nls = append(s.nls, i)
		}
	}
	return s
}

func (s *Source) Path() string    { return s.path }
func (s *Source) Len() int        { return len(s.text) }
func (s *Source) NewLines() []int { return s.nls }
func (s *Source) Text() string    { return s.text }

// Files tracks locations within a set of files.
// A Loc into the ith file is offset by the lengths of the files before it.
type Files []File

// Len returns the total length of all files.
func (fs Files) Len() int {
	var n int
	for _, f := range fs {
		n += f.Len()
	}
	return n
}

// Base returns the offset of the first byte of the file with the given path,
// or -1 if there is no such file.
func (fs Files) Base(path string) int {
	var offs int
	for _, f := range fs {
		if f.Path() == path {
			return offs
		}
		offs += f.Len()
	}
	return -1
}

// Span returns the Loc of the bytes [start, end)
// of the file beginning at offset base.
func Span(base, start, end int) Loc {
	return Loc{base + start + 1, base + end + 1}
}

// Location returns the Location of a Loc.
func (fs Files) Location(l Loc) Location {
	switch {
	case len(fs) == 0:
		panic("no files")
	case l[0]-1 < 0 || l[1]-1 > fs.Len():
		panic("out of range")
	case l[0] > l[1]:
		panic("bad Loc")
	}
	p0, l0, c0 := fs.loc(l[0])
	p1, l1, c1 := fs.loc(l[1])
	if p0 != p1 {
		panic("multi-file Loc")
	}
	return Location{Path: p0, Line: [2]int{l0, l1}, Col: [2]int{c0, c1}}
}

func (fs Files) loc(q int) (string, int, int) {
	q-- // 0 value is no-location; locs start at 1
	var i int
	var f File
	var offs int
	for i, f = range fs {
		l := f.Len()
		if q < offs+l || q == offs+l && i == len(fs)-1 {
			break
		}
		offs += f.Len()
	}
	line, colStart := 1, offs-1
	for _, nl := range f.NewLines() {
		if offs+nl >= q {
			break
		}
		colStart = offs + nl
		line++
	}
	return f.Path(), line, q - colStart
}
