package textbuf

// Caret is a cursor offset plus a half-open selection [start, end).
// With no selection, start and end both equal the offset.
type Caret struct {
	offset   int
	selStart int
	selEnd   int
}

// NewCaret returns a caret at offset with an empty selection.
func NewCaret(offset int) *Caret {
	return &Caret{offset: offset, selStart: offset, selEnd: offset}
}

// Offset returns the cursor offset.
func (c *Caret) Offset() int {
	return c.offset
}

// SelectionStart returns the start of the selection.
func (c *Caret) SelectionStart() int {
	return c.selStart
}

// SelectionEnd returns the end of the selection.
func (c *Caret) SelectionEnd() int {
	return c.selEnd
}

// HasSelection reports whether the selection is non-empty.
func (c *Caret) HasSelection() bool {
	return c.selStart != c.selEnd
}

// SetSelection selects [start, end), swapping the bounds if needed.
// The cursor offset does not move, so repeating a selection command at the
// same spot sees the selection it just made.
func (c *Caret) SetSelection(start, end int) {
	if start > end {
		start, end = end, start
	}
	c.selStart = start
	c.selEnd = end
}

// ClearSelection collapses the selection onto the cursor.
func (c *Caret) ClearSelection() {
	c.selStart = c.offset
	c.selEnd = c.offset
}

// MoveTo places the cursor at offset and clears the selection.
func (c *Caret) MoveTo(offset int) {
	c.offset = offset
	c.ClearSelection()
}

// Clamp keeps the cursor and selection within [0, length].
func (c *Caret) Clamp(length int) {
	c.offset = clamp(c.offset, 0, length)
	c.selStart = clamp(c.selStart, 0, length)
	c.selEnd = clamp(c.selEnd, 0, length)
}

// Selected returns the selected text of doc.
func (c *Caret) Selected(doc *Document) string {
	return doc.TextInRange(c.selStart, c.selEnd)
}
