package viewer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/quickselect/internal/config"
)

// The caret uses reverse video so it stays visible on top of a selection.
const (
	cursorOn  = "\x1b[7m"
	cursorOff = "\x1b[27m"
)

type styles struct {
	selection lipgloss.Style
	gutter    lipgloss.Style
	statusBar lipgloss.Style
	statusErr lipgloss.Style
	muted     lipgloss.Style
}

func newStyles(ui config.UIConfig) styles {
	color := ui.SelectionColor
	if color == "" {
		color = config.Defaults().UI.SelectionColor
	}
	return styles{
		selection: lipgloss.NewStyle().
			Background(lipgloss.Color(color)).
			Foreground(lipgloss.Color("#FFFFFF")),
		gutter:    lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")),
		statusBar: lipgloss.NewStyle().Foreground(lipgloss.Color("#D1D5DB")),
		statusErr: lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true),
		muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")),
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var rows []string

	first := m.top
	last := m.doc.LineCount()
	if h := m.bodyHeight(); h > 0 {
		last = min(last, first+h)
	}
	for line := first; line < last; line++ {
		rows = append(rows, m.gutterFor(line)+m.renderLine(line))
	}

	if m.showHelp {
		rows = append(rows, m.help.FullHelpView(m.keys.FullHelp()))
	}
	if m.ui.ShowStatusBar {
		rows = append(rows, m.renderStatusBar())
	}
	return strings.Join(rows, "\n")
}

func (m Model) gutterWidth() int {
	if !m.ui.LineNumbers {
		return 0
	}
	return len(strconv.Itoa(m.doc.LineCount())) + 1
}

func (m Model) gutterFor(line int) string {
	w := m.gutterWidth()
	if w == 0 {
		return ""
	}
	return m.styles.gutter.Render(fmt.Sprintf("%*d ", w-1, line+1))
}

// textWidth is the number of cells available for text; zero means unbounded.
func (m Model) textWidth() int {
	if m.width <= 0 {
		return 0
	}
	return max(m.width-m.gutterWidth(), 1)
}

// renderLine draws the visible part of one line with the selection and caret.
// Clusters cut by the left edge are drawn as blanks so columns stay aligned.
func (m Model) renderLine(line int) string {
	cells := layoutLine(m.doc.Line(line))
	start := m.doc.LineStartOffset(line)
	selStart, selEnd := m.caret.SelectionStart(), m.caret.SelectionEnd()
	width := m.textWidth()
	right := m.left + width

	caretIdx := -1
	if col := m.caret.Offset() - start; col >= 0 && col <= m.doc.LineEndOffset(line)-start {
		caretIdx = cellAt(cells, col)
	}

	var out, run strings.Builder
	flush := func() {
		if run.Len() > 0 {
			out.WriteString(m.styles.selection.Render(run.String()))
			run.Reset()
		}
	}

	for i, c := range cells {
		end := c.x + c.width
		if c.x < m.left && end <= m.left {
			continue
		}
		if width > 0 && end > right {
			break
		}
		text := c.text
		if c.x < m.left {
			text = strings.Repeat(" ", end-m.left)
		}

		offset := start + c.col
		switch {
		case i == caretIdx:
			flush()
			out.WriteString(cursorOn + text + cursorOff)
		case offset >= selStart && offset < selEnd:
			run.WriteString(text)
		default:
			flush()
			out.WriteString(text)
		}
	}
	flush()

	if caretIdx == len(cells) {
		_, x := lineEnd(cells)
		if x >= m.left && (width == 0 || x < right) {
			out.WriteString(cursorOn + " " + cursorOff)
		}
	}
	if out.Len() == 0 {
		return " "
	}
	return out.String()
}

func (m Model) renderStatusBar() string {
	pos := m.doc.PositionOf(m.caret.Offset())
	parts := []string{
		m.path,
		fmt.Sprintf("%d:%d", pos.Line+1, pos.Col+1),
	}
	if m.caret.HasSelection() {
		parts = append(parts, fmt.Sprintf("sel %d", m.caret.SelectionEnd()-m.caret.SelectionStart()))
	}
	left := m.styles.statusBar.Render(strings.Join(parts, "  "))

	if m.status != "" {
		style := m.styles.muted
		if m.statusErr {
			style = m.styles.statusErr
		}
		left += "  " + style.Render(m.status)
	}

	if m.showHelp {
		return m.truncate(left)
	}
	right := m.help.ShortHelpView(m.keys.ShortHelp())
	if m.width > 0 {
		gap := m.width - ansi.StringWidth(left) - ansi.StringWidth(right)
		if gap < 2 {
			return m.truncate(left)
		}
		return left + strings.Repeat(" ", gap) + right
	}
	return left + "  " + right
}

func (m Model) truncate(s string) string {
	if m.width <= 0 {
		return s
	}
	return ansi.Truncate(s, m.width, "…")
}
