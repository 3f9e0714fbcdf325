package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap_KeyAssignments(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name     string
		binding  key.Binding
		expected []string
	}{
		{"Up uses k and up", km.Up, []string{"k", "up"}},
		{"Down uses j and down", km.Down, []string{"j", "down"}},
		{"Left uses h and left", km.Left, []string{"h", "left"}},
		{"Right uses l and right", km.Right, []string{"l", "right"}},
		{"LineStart uses 0 and home", km.LineStart, []string{"0", "home"}},
		{"LineEnd uses $ and end", km.LineEnd, []string{"$", "end"}},
		{"Outer uses o", km.Outer, []string{"o"}},
		{"Clear uses esc", km.Clear, []string{"esc"}},
		{"Quit uses q and ctrl+c", km.Quit, []string{"q", "ctrl+c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.binding.Keys())
		})
	}
}

func TestDefaultKeyMap_HelpTextDefined(t *testing.T) {
	km := DefaultKeyMap()
	for _, group := range km.FullHelp() {
		for _, b := range group {
			help := b.Help()
			require.NotEmpty(t, help.Key, "binding %v has no help key", b.Keys())
			require.NotEmpty(t, help.Desc, "binding %v has no help desc", b.Keys())
		}
	}
}

func TestDefaultKeyMap_NoDelimiterCollisions(t *testing.T) {
	km := DefaultKeyMap()
	delimiters := []string{"(", ")", "[", "]", "{", "}", "'", "\"", "`"}

	for _, group := range km.FullHelp() {
		for _, b := range group {
			for _, d := range delimiters {
				require.NotContains(t, b.Keys(), d, "delimiter %s is bound to %s", d, b.Help().Desc)
			}
		}
	}
}

func TestDefaultKeyMap_Matches(t *testing.T) {
	km := DefaultKeyMap()

	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}, km.Down))
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyEsc}, km.Clear))
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlC}, km.Quit))
	require.False(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'('}}, km.Outer))
}

func TestShortHelp(t *testing.T) {
	short := DefaultKeyMap().ShortHelp()
	require.Len(t, short, 4)
	require.Equal(t, "quit", short[len(short)-1].Help().Desc)
}
