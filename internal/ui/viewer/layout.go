package viewer

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// tabWidth is the distance between tab stops in cells.
const tabWidth = 4

// cell is one grapheme cluster of a line as it is drawn.
type cell struct {
	text  string // drawn text; a tab becomes spaces
	col   int    // rune column of the cluster's first rune
	runes int
	x     int // display column
	width int
}

// layoutLine splits line into grapheme clusters and places them on screen.
func layoutLine(line string) []cell {
	var cells []cell
	col, x := 0, 0
	state := -1
	for len(line) > 0 {
		cluster, rest, _, newState := uniseg.StepString(line, state)
		c := cell{text: cluster, col: col, runes: utf8.RuneCountInString(cluster), x: x}
		if cluster == "\t" {
			c.width = tabWidth - x%tabWidth
			c.text = strings.Repeat(" ", c.width)
		} else {
			c.width = runewidth.StringWidth(cluster)
		}
		cells = append(cells, c)
		col += c.runes
		x += c.width
		line, state = rest, newState
	}
	return cells
}

// lineEnd returns the rune length and display width of a laid out line.
func lineEnd(cells []cell) (col, x int) {
	if len(cells) == 0 {
		return 0, 0
	}
	last := cells[len(cells)-1]
	return last.col + last.runes, last.x + last.width
}

// cellAt returns the index of the cell holding col, or len(cells) at the end
// of the line.
func cellAt(cells []cell, col int) int {
	return sort.Search(len(cells), func(i int) bool {
		return cells[i].col+cells[i].runes > col
	})
}

// caretSpan returns where the caret block at col is drawn.
// The block is at least one cell wide.
func caretSpan(cells []cell, col int) (x, width int) {
	if i := cellAt(cells, col); i < len(cells) {
		return cells[i].x, max(cells[i].width, 1)
	}
	_, x = lineEnd(cells)
	return x, 1
}

// colAtX returns the column of the cluster covering display column x, or the
// end of the line when x is past it.
func colAtX(cells []cell, x int) int {
	i := sort.Search(len(cells), func(i int) bool {
		return cells[i].x+cells[i].width > x
	})
	if i < len(cells) {
		return cells[i].col
	}
	col, _ := lineEnd(cells)
	return col
}
