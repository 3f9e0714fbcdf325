// Package textbuf provides an in-memory, line-addressable text document and
// a caret with a selection, the two collaborators the delimiter matcher runs
// against.
//
// All offsets are absolute rune offsets. Line terminators are normalized to
// "\n" on load and count as one character between lines, so line i+1 starts
// one past the end of line i.
package textbuf

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"
)

// ErrOffsetOutOfRange is returned when a line/column or offset falls outside
// the document.
var ErrOffsetOutOfRange = errors.New("offset out of range")

// Position is a 0-indexed line and rune column.
type Position struct {
	Line int
	Col  int
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Col)
}

// Document is an immutable text buffer. Build a new one to change the text.
type Document struct {
	runes  []rune
	starts []int // rune offset of each line start
}

// New creates a document from text, normalizing CRLF and lone CR to LF.
// The empty string yields a document with one empty line.
func New(text string) *Document {
	text = normalizeLineEndings(text)
	d := &Document{
		runes:  []rune(text),
		starts: []int{0},
	}
	for i, r := range d.runes {
		if r == '\n' {
			d.starts = append(d.starts, i+1)
		}
	}
	return d
}

// FromReader reads all of r into a new document.
func FromReader(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading text: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("reading text: input is not valid UTF-8")
	}
	return New(string(data)), nil
}

func normalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// Text returns the full document.
func (d *Document) Text() string {
	return string(d.runes)
}

// Len returns the number of runes in the document, line terminators included.
func (d *Document) Len() int {
	return len(d.runes)
}

// LineCount returns the number of lines. A trailing newline starts a final
// empty line.
func (d *Document) LineCount() int {
	return len(d.starts)
}

// LineStartOffset returns the offset of the first rune of line.
// Lines past the end clamp to the document length.
func (d *Document) LineStartOffset(line int) int {
	switch {
	case line < 0:
		return 0
	case line >= len(d.starts):
		return len(d.runes)
	}
	return d.starts[line]
}

// LineEndOffset returns the offset just past the last rune of line,
// excluding the newline.
func (d *Document) LineEndOffset(line int) int {
	switch {
	case line < 0:
		return 0
	case line >= len(d.starts)-1:
		return len(d.runes)
	}
	return d.starts[line+1] - 1
}

// Line returns the text of line without its terminator.
func (d *Document) Line(line int) string {
	return d.TextInRange(d.LineStartOffset(line), d.LineEndOffset(line))
}

// TextInRange returns the runes in [start, end). Bounds are clamped to the
// document; an inverted range is empty.
func (d *Document) TextInRange(start, end int) string {
	start = clamp(start, 0, len(d.runes))
	end = clamp(end, 0, len(d.runes))
	if start >= end {
		return ""
	}
	return string(d.runes[start:end])
}

// LineOf returns the line containing offset. Offsets past the end map to the
// last line.
func (d *Document) LineOf(offset int) int {
	if offset <= 0 {
		return 0
	}
	return sort.Search(len(d.starts), func(i int) bool {
		return d.starts[i] > offset
	}) - 1
}

// PositionOf converts offset to a line and column, clamping it into the
// document first.
func (d *Document) PositionOf(offset int) Position {
	offset = clamp(offset, 0, len(d.runes))
	line := d.LineOf(offset)
	return Position{Line: line, Col: offset - d.starts[line]}
}

// OffsetOf converts a line and column to an offset. The column may equal the
// line length (the position just before the terminator).
func (d *Document) OffsetOf(line, col int) (int, error) {
	if line < 0 || line >= len(d.starts) {
		return 0, fmt.Errorf("line %d of %d: %w", line, len(d.starts), ErrOffsetOutOfRange)
	}
	length := d.LineEndOffset(line) - d.starts[line]
	if col < 0 || col > length {
		return 0, fmt.Errorf("column %d on line %d (length %d): %w", col, line, length, ErrOffsetOutOfRange)
	}
	return d.starts[line] + col, nil
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
