package delim

import (
	"github.com/zjrosen/quickselect/internal/log"
)

// Selector runs delimiter matching against one Buffer. It holds no state
// beyond the buffer, so a single Selector can serve any number of carets.
type Selector struct {
	buf Buffer
}

// NewSelector returns a Selector over buf.
func NewSelector(buf Buffer) *Selector {
	return &Selector{buf: buf}
}

// BracketPair finds the innermost openChar/closeChar pair enclosing offset.
// The character at offset counts as being under the cursor: an opening
// delimiter there is the pair's opener, a closing one is a nested level.
func (s *Selector) BracketPair(offset int, openChar, closeChar rune) (Pair, bool) {
	pos, ok := positionOf(s.buf, offset)
	if !ok {
		return Pair{}, false
	}

	start, ok := findPrevious(s.buf, pos.Line, openChar, pos.Col, closeChar)
	if !ok {
		return Pair{}, false
	}
	end, ok := findNext(s.buf, start.Line, closeChar, start.Col+1, openChar)
	if !ok {
		return Pair{}, false
	}

	return Pair{Open: offsetOf(s.buf, start), Close: offsetOf(s.buf, end)}, true
}

// QuotePair finds the quote pair for offset.
//
// When the cursor line holds an even number (at least two) of quotes they
// pair up in order (1st-2nd, 3rd-4th, ...) and the pair owning the first
// quote after the cursor wins. Otherwise, if multiline is set, the nearest
// quote at or before the cursor (searching back over lines) opens the pair
// and the next quote after it (searching forward over lines) closes it.
func (s *Selector) QuotePair(offset int, quote rune, multiline bool) (Pair, bool) {
	pos, ok := positionOf(s.buf, offset)
	if !ok {
		return Pair{}, false
	}

	matches := occurrences(s.buf, pos.Line, quote)
	nextIndex := -1
	for i, col := range matches {
		if col > pos.Col {
			nextIndex = i
			break
		}
	}

	if len(matches) > 1 && len(matches)%2 == 0 {
		if nextIndex == -1 {
			return Pair{}, false
		}
		startIndex := nextIndex
		if startIndex%2 != 0 {
			startIndex--
		}
		lineStart := s.buf.LineStartOffset(pos.Line)
		return Pair{
			Open:  lineStart + matches[startIndex],
			Close: lineStart + matches[startIndex+1],
		}, true
	}

	if !multiline {
		return Pair{}, false
	}

	// A single quote on the line also lands here when multiline is set.
	start, ok := findPrevious(s.buf, pos.Line, quote, pos.Col, noNest)
	if !ok {
		if nextIndex < 0 {
			return Pair{}, false
		}
		start = Position{Line: pos.Line, Col: matches[nextIndex]}
	}
	end, ok := findNext(s.buf, start.Line, quote, start.Col+1, noNest)
	if !ok {
		return Pair{}, false
	}

	return Pair{Open: offsetOf(s.buf, start), Close: offsetOf(s.buf, end)}, true
}

// SelectBetweenBrackets selects the text inside the innermost openChar/closeChar pair
// around the caret. With outer set, or when the inner text is already the
// current selection, the delimiters are included. Returns false and leaves
// the selection untouched when no pair encloses the caret.
func (s *Selector) SelectBetweenBrackets(caret Caret, openChar, closeChar rune, outer bool) bool {
	pair, ok := s.BracketPair(caret.Offset(), openChar, closeChar)
	if !ok {
		log.Debug(log.CatMatch, "No bracket pair", "open", string(openChar), "close", string(closeChar), "offset", caret.Offset())
		return false
	}
	apply(caret, pair, outer)
	return true
}

// SelectBetweenQuotes selects the text inside the quote pair around the
// caret. See QuotePair for how pairs are chosen and SelectBetweenBrackets for
// the inner/outer rules.
func (s *Selector) SelectBetweenQuotes(caret Caret, quote rune, outer, multiline bool) bool {
	pair, ok := s.QuotePair(caret.Offset(), quote, multiline)
	if !ok {
		log.Debug(log.CatMatch, "No quote pair", "quote", string(quote), "multiline", multiline, "offset", caret.Offset())
		return false
	}
	apply(caret, pair, outer)
	return true
}

// apply installs the range for pair on caret. An inner request whose range is
// already selected expands to outer.
func apply(caret Caret, pair Pair, outer bool) {
	r := Expand(pair, caret.SelectionStart(), caret.SelectionEnd(), outer)
	log.Debug(log.CatMatch, "Selecting", "start", r.Start, "end", r.End, "outer", r == pair.Outer())
	caret.SetSelection(r.Start, r.End)
}

// Expand returns the range to select for pair given the current selection
// bounds: the outer range when outer is requested or when the current
// selection is exactly the inner range, otherwise the inner range.
func Expand(pair Pair, selStart, selEnd int, outer bool) Range {
	inner := pair.Inner()
	if outer || (selStart == inner.Start && selEnd == inner.End) {
		return pair.Outer()
	}
	return inner
}
