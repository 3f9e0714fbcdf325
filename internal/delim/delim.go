// Package delim finds and selects the text enclosed by a delimiter pair
// around a caret: brackets with nesting, and quotes paired by parity on a
// line or across lines.
//
// Offsets are absolute character (rune) offsets into the buffer. Columns are
// rune offsets within a line. Lines are scanned code point by code point.
//
// The matcher keeps no state between calls. The caret's current selection is
// the only implicit input: asking for the inner range when it is already
// selected grows the selection to include the delimiters.
package delim

// Buffer is a line-addressable, read-only view of the text being searched.
// It must not change for the duration of a call.
type Buffer interface {
	LineCount() int
	// LineStartOffset returns the absolute offset of the first character of line.
	LineStartOffset(line int) int
	// LineEndOffset returns the absolute offset just past the last character
	// of line, excluding the line terminator.
	LineEndOffset(line int) int
	// TextInRange returns the text in the half-open range [start, end).
	TextInRange(start, end int) string
}

// Caret is the cursor and selection owned by the host editor.
type Caret interface {
	Offset() int
	SelectionStart() int
	SelectionEnd() int
	SetSelection(start, end int)
}

// Position is a (line, column) location in a Buffer.
type Position struct {
	Line int
	Col  int
}

// Range is a half-open span of absolute offsets.
type Range struct {
	Start int
	End   int
}

// Pair holds the absolute offsets of a matched opening and closing delimiter.
type Pair struct {
	Open  int
	Close int
}

// Inner is the span strictly between the delimiters.
func (p Pair) Inner() Range {
	return Range{Start: p.Open + 1, End: p.Close}
}

// Outer is the span including both delimiters.
func (p Pair) Outer() Range {
	return Range{Start: p.Open, End: p.Close + 1}
}
