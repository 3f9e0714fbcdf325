package delim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/quickselect/internal/textbuf"
)

func TestOccurrences(t *testing.T) {
	buf := textbuf.New("a(b(c)\n\n(x)")

	require.Equal(t, []int{1, 3}, occurrences(buf, 0, '('))
	require.Empty(t, occurrences(buf, 1, '('))
	require.Equal(t, []int{0}, occurrences(buf, 2, '('))
	require.Empty(t, occurrences(buf, -1, '('))
	require.Empty(t, occurrences(buf, 3, '('))
}

func TestOccurrences_ColumnsAreRunes(t *testing.T) {
	buf := textbuf.New("\u00e9\u00e9'\u00fc'")
	require.Equal(t, []int{2, 4}, occurrences(buf, 0, '\''))
}

func TestOccurrences_MatchesEveryCodePoint(t *testing.T) {
	// Combining marks, joiners and selectors next to a delimiter do not hide it
	buf := textbuf.New("'\u0301x'\uFE0F(\u200D")
	require.Equal(t, []int{0, 3}, occurrences(buf, 0, '\''))
	require.Equal(t, []int{5}, occurrences(buf, 0, '('))
}

func TestPositionOf(t *testing.T) {
	buf := textbuf.New("ab\ncd\n")

	tests := []struct {
		offset int
		want   Position
	}{
		{0, Position{0, 0}},
		{2, Position{0, 2}},
		{3, Position{1, 0}},
		{5, Position{1, 2}},
		{6, Position{2, 0}},
		{99, Position{2, 93}},
	}
	for _, tt := range tests {
		got, ok := positionOf(buf, tt.offset)
		require.True(t, ok, "offset %d", tt.offset)
		require.Equal(t, tt.want, got, "offset %d", tt.offset)
	}

	_, ok := positionOf(buf, -1)
	require.False(t, ok)
}

func TestFindNext_NestingCarriesAcrossLines(t *testing.T) {
	buf := textbuf.New("a)b\n(c)d)")

	pos, ok := findNext(buf, 0, ')', 0, '(')
	require.True(t, ok)
	require.Equal(t, Position{0, 1}, pos)

	pos, ok = findNext(buf, 0, ')', 2, '(')
	require.True(t, ok)
	require.Equal(t, Position{1, 4}, pos, "the ')' at column 2 closes the nested '('")
}

func TestFindNext_ExhaustedWhileNested(t *testing.T) {
	buf := textbuf.New("((x)\n")

	_, ok := findNext(buf, 0, ')', 1, '(')
	require.False(t, ok)
}

func TestFindNext_NoNest(t *testing.T) {
	buf := textbuf.New("``\nx`")

	pos, ok := findNext(buf, 0, '`', 2, noNest)
	require.True(t, ok)
	require.Equal(t, Position{1, 1}, pos)
}

func TestFindPrevious_NestingCarriesAcrossLines(t *testing.T) {
	buf := textbuf.New("(x\n(y)z")

	pos, ok := findPrevious(buf, 1, '(', -1, ')')
	require.True(t, ok)
	require.Equal(t, Position{0, 0}, pos)
}

func TestFindPrevious_InclusiveStart(t *testing.T) {
	buf := textbuf.New("ab(cd")

	pos, ok := findPrevious(buf, 0, '(', 2, ')')
	require.True(t, ok)
	require.Equal(t, Position{0, 2}, pos)

	_, ok = findPrevious(buf, 0, '(', 1, ')')
	require.False(t, ok)
}

func TestFindPrevious_LinePastEnd(t *testing.T) {
	buf := textbuf.New("(a")

	pos, ok := findPrevious(buf, 5, '(', 0, ')')
	require.True(t, ok)
	require.Equal(t, Position{0, 0}, pos)
}

func TestAtOrAfterAtOrBefore(t *testing.T) {
	cols := []int{1, 3, 5}
	require.Equal(t, []int{3, 5}, atOrAfter(cols, 3))
	require.Empty(t, atOrAfter(cols, 6))
	require.Equal(t, []int{1, 3}, atOrBefore(cols, 3))
	require.Empty(t, atOrBefore(cols, 0))
}
