package textbuf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCaret_New(t *testing.T) {
	c := NewCaret(4)

	require.Equal(t, 4, c.Offset())
	require.Equal(t, 4, c.SelectionStart())
	require.Equal(t, 4, c.SelectionEnd())
	require.False(t, c.HasSelection())
}

func TestCaret_SetSelectionKeepsOffset(t *testing.T) {
	c := NewCaret(4)
	c.SetSelection(2, 6)

	require.Equal(t, 4, c.Offset())
	require.Equal(t, 2, c.SelectionStart())
	require.Equal(t, 6, c.SelectionEnd())
	require.True(t, c.HasSelection())
}

func TestCaret_SetSelectionSwapsInvertedBounds(t *testing.T) {
	c := NewCaret(0)
	c.SetSelection(6, 2)

	require.Equal(t, 2, c.SelectionStart())
	require.Equal(t, 6, c.SelectionEnd())
}

func TestCaret_MoveToClearsSelection(t *testing.T) {
	c := NewCaret(0)
	c.SetSelection(1, 3)
	c.MoveTo(5)

	require.Equal(t, 5, c.Offset())
	require.False(t, c.HasSelection())
	require.Equal(t, 5, c.SelectionStart())
}

func TestCaret_Clamp(t *testing.T) {
	c := NewCaret(10)
	c.SetSelection(-2, 12)
	c.Clamp(8)

	require.Equal(t, 8, c.Offset())
	require.Equal(t, 0, c.SelectionStart())
	require.Equal(t, 8, c.SelectionEnd())
}

func TestCaret_Selected(t *testing.T) {
	d := New("say (hi)")
	c := NewCaret(5)
	c.SetSelection(5, 7)

	require.Equal(t, "hi", c.Selected(d))

	c.ClearSelection()
	require.Equal(t, "", c.Selected(d))
}
