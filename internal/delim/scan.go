package delim

import "sort"

// noNest disables nesting in findNext/findPrevious.
const noNest rune = -1

// occurrences returns the ascending columns of ch on line.
// Out-of-range lines have no occurrences.
func occurrences(buf Buffer, line int, ch rune) []int {
	if line < 0 || line >= buf.LineCount() {
		return nil
	}

	text := buf.TextInRange(buf.LineStartOffset(line), buf.LineEndOffset(line))

	var cols []int
	col := 0
	for _, r := range text {
		if r == ch {
			cols = append(cols, col)
		}
		col++
	}
	return cols
}

// lineLen returns the number of characters on line.
func lineLen(buf Buffer, line int) int {
	return buf.LineEndOffset(line) - buf.LineStartOffset(line)
}

// positionOf converts an absolute offset to a line and column.
// Offsets past the end land on the last line. Returns false for negative
// offsets or an empty buffer.
func positionOf(buf Buffer, offset int) (Position, bool) {
	n := buf.LineCount()
	if offset < 0 || n == 0 {
		return Position{}, false
	}
	line := sort.Search(n, func(i int) bool {
		return buf.LineStartOffset(i) > offset
	}) - 1
	if line < 0 {
		line = 0
	}
	return Position{Line: line, Col: offset - buf.LineStartOffset(line)}, true
}

// offsetOf converts a position back to an absolute offset.
func offsetOf(buf Buffer, pos Position) int {
	return buf.LineStartOffset(pos.Line) + pos.Col
}

// atOrAfter keeps the columns >= from. cols is ascending.
func atOrAfter(cols []int, from int) []int {
	i := sort.SearchInts(cols, from)
	return cols[i:]
}

// atOrBefore keeps the columns <= upTo. cols is ascending.
func atOrBefore(cols []int, upTo int) []int {
	i := sort.SearchInts(cols, upTo+1)
	return cols[:i]
}

// findNext scans forward from (line, startCol) inclusive for target.
// Each nest occurrence crossed opens a level that a later target closes;
// only a target met at depth zero is the match. Depth carries across lines.
func findNext(buf Buffer, line int, target rune, startCol int, nest rune) (Position, bool) {
	depth := 0
	for ; line < buf.LineCount(); line, startCol = line+1, 0 {
		targets := atOrAfter(occurrences(buf, line, target), startCol)
		var nests []int
		if nest != noNest {
			nests = atOrAfter(occurrences(buf, line, nest), startCol)
		}

		ti, ni := 0, 0
		for ti < len(targets) || ni < len(nests) {
			if ti < len(targets) && (ni >= len(nests) || targets[ti] < nests[ni]) {
				if depth == 0 {
					return Position{Line: line, Col: targets[ti]}, true
				}
				depth--
				ti++
				continue
			}
			depth++
			ni++
		}
	}
	return Position{}, false
}

// findPrevious scans backward from (line, startCol) inclusive for target,
// mirroring findNext. A negative startCol means the end of the line; every
// line after the first is scanned from its end.
func findPrevious(buf Buffer, line int, target rune, startCol int, nest rune) (Position, bool) {
	depth := 0
	if line >= buf.LineCount() {
		line, startCol = buf.LineCount()-1, -1
	}
	for ; line >= 0; line, startCol = line-1, -1 {
		limit := startCol
		if limit < 0 {
			limit = lineLen(buf, line)
		}
		targets := atOrBefore(occurrences(buf, line, target), limit)
		var nests []int
		if nest != noNest {
			nests = atOrBefore(occurrences(buf, line, nest), limit)
		}

		ti, ni := len(targets)-1, len(nests)-1
		for ti >= 0 || ni >= 0 {
			if ti >= 0 && (ni < 0 || targets[ti] > nests[ni]) {
				if depth == 0 {
					return Position{Line: line, Col: targets[ti]}, true
				}
				depth--
				ti--
				continue
			}
			depth++
			ni--
		}
	}
	return Position{}, false
}
