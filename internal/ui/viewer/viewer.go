// Package viewer is a read-only terminal view of one file where delimiter
// keys select the text around the caret.
package viewer

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/quickselect/internal/actions"
	"github.com/zjrosen/quickselect/internal/config"
	"github.com/zjrosen/quickselect/internal/delim"
	"github.com/zjrosen/quickselect/internal/keys"
	"github.com/zjrosen/quickselect/internal/log"
	"github.com/zjrosen/quickselect/internal/pubsub"
	"github.com/zjrosen/quickselect/internal/textbuf"
	"github.com/zjrosen/quickselect/internal/watcher"
)

// LoadFunc reads the document at path. Used for reloads.
type LoadFunc func(path string) (*textbuf.Document, error)

// LoadFile is the default LoadFunc.
func LoadFile(path string) (*textbuf.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return textbuf.FromReader(f)
}

// Options configures a Model.
type Options struct {
	Path     string
	Doc      *textbuf.Document
	Registry *actions.Registry
	UI       config.UIConfig
	// Changes, when set, triggers a reload on every ChangedEvent.
	Changes *pubsub.Broker[watcher.Change]
	Load    LoadFunc
}

// Model is the Bubble Tea model for the viewer.
type Model struct {
	path     string
	doc      *textbuf.Document
	caret    *textbuf.Caret
	registry *actions.Registry
	selector *delim.Selector
	load     LoadFunc
	listener *pubsub.Listener[watcher.Change]

	keys   keys.KeyMap
	help   help.Model
	ui     config.UIConfig
	styles styles

	width  int
	height int
	top    int // first visible line
	left   int // first visible display column

	// wantX is the display column vertical moves aim for.
	wantX int

	pendingOuter bool
	showHelp     bool
	status       string
	statusErr    bool
}

// New creates a viewer. The context bounds the change subscription.
func New(ctx context.Context, opts Options) Model {
	doc := opts.Doc
	if doc == nil {
		doc = textbuf.New("")
	}
	registry := opts.Registry
	if registry == nil {
		registry = actions.Default()
	}
	load := opts.Load
	if load == nil {
		load = LoadFile
	}

	m := Model{
		path:     opts.Path,
		doc:      doc,
		caret:    textbuf.NewCaret(0),
		registry: registry,
		selector: delim.NewSelector(doc),
		load:     load,
		keys:     keys.DefaultKeyMap(),
		help:     help.New(),
		ui:       opts.UI,
		styles:   newStyles(opts.UI),
	}
	if opts.Changes != nil {
		m.listener = pubsub.NewListener(ctx, opts.Changes)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.listener != nil {
		return m.listener.Listen()
	}
	return nil
}

// Caret returns the caret for inspection.
func (m Model) Caret() *textbuf.Caret {
	return m.caret
}

// Document returns the document currently shown.
func (m Model) Document() *textbuf.Document {
	return m.doc
}

// Status returns the status bar message.
func (m Model) Status() string {
	return m.status
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ensureVisible()
		return m, nil

	case pubsub.Event[watcher.Change]:
		m = m.handleChange(msg)
		if m.listener != nil {
			return m, m.listener.Listen()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleChange(event pubsub.Event[watcher.Change]) Model {
	switch event.Type {
	case pubsub.ChangedEvent:
		doc, err := m.load(m.path)
		if err != nil {
			log.ErrorErr(log.CatUI, "Reload failed", err, "path", m.path)
			m.setError(fmt.Sprintf("reload failed: %v", err))
			return m
		}
		m.doc = doc
		m.selector = delim.NewSelector(doc)
		m.caret.Clamp(doc.Len())
		m.ensureVisible()
		log.Debug(log.CatUI, "Reloaded document", "path", m.path, "len", doc.Len())
		m.setStatus("reloaded")
	case pubsub.RemovedEvent:
		m.setError("file removed")
	case pubsub.ErrorEvent:
		m.setError(fmt.Sprintf("watch error: %v", event.Payload.Error))
	}
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// Delimiters take precedence over navigation so custom pairs may use
	// characters like '$'.
	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		if a, ok := m.registry.ForRune(msg.Runes[0]); ok {
			m.runAction(a)
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, m.keys.Clear):
		m.caret.ClearSelection()
		m.pendingOuter = false
		m.setStatus("")
	case key.Matches(msg, m.keys.Outer):
		m.pendingOuter = !m.pendingOuter
		if m.pendingOuter {
			m.setStatus("outer")
		} else {
			m.setStatus("")
		}
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	case key.Matches(msg, m.keys.Left):
		m.moveTo(m.clusterStep(-1), true)
	case key.Matches(msg, m.keys.Right):
		m.moveTo(m.clusterStep(1), true)
	case key.Matches(msg, m.keys.Up):
		m.moveLine(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveLine(1)
	case key.Matches(msg, m.keys.LineStart):
		m.moveTo(m.doc.LineStartOffset(m.doc.LineOf(m.caret.Offset())), true)
	case key.Matches(msg, m.keys.LineEnd):
		m.moveTo(m.doc.LineEndOffset(m.doc.LineOf(m.caret.Offset())), true)
	case key.Matches(msg, m.keys.Top):
		m.moveTo(0, true)
	case key.Matches(msg, m.keys.Bottom):
		m.moveTo(m.doc.LineStartOffset(m.doc.LineCount()-1), true)
	}
	return m, nil
}

func (m *Model) runAction(a actions.Action) {
	outer := m.pendingOuter
	m.pendingOuter = false
	if !a.Run(m.selector, m.caret, outer) {
		m.setError(fmt.Sprintf("no match for %s", a.ID))
		return
	}
	m.setStatus("")
	m.ensureVisible()
}

// moveTo places the caret at offset, clamped to the document, and clears the
// selection. Horizontal moves reset the column vertical moves aim for.
func (m *Model) moveTo(offset int, horizontal bool) {
	offset = max(0, min(offset, m.doc.Len()))
	m.caret.MoveTo(offset)
	if horizontal {
		pos := m.doc.PositionOf(offset)
		m.wantX, _ = caretSpan(layoutLine(m.doc.Line(pos.Line)), pos.Col)
	}
	m.pendingOuter = false
	m.setStatus("")
	m.ensureVisible()
}

func (m *Model) moveLine(delta int) {
	line := m.doc.LineOf(m.caret.Offset()) + delta
	if line < 0 || line >= m.doc.LineCount() {
		return
	}
	m.moveTo(m.doc.LineStartOffset(line)+colAtX(layoutLine(m.doc.Line(line)), m.wantX), false)
}

// clusterStep returns the offset one grapheme cluster away from the caret.
// A line break counts as one step.
func (m Model) clusterStep(dir int) int {
	offset := m.caret.Offset()
	pos := m.doc.PositionOf(offset)
	cells := layoutLine(m.doc.Line(pos.Line))
	start := m.doc.LineStartOffset(pos.Line)

	if dir < 0 {
		if pos.Col == 0 {
			return offset - 1
		}
		return start + cells[cellAt(cells, pos.Col-1)].col
	}
	i := cellAt(cells, pos.Col)
	if i == len(cells) {
		return offset + 1
	}
	return start + cells[i].col + cells[i].runes
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}

// bodyHeight is the number of text rows; zero means unbounded.
func (m Model) bodyHeight() int {
	if m.height <= 0 {
		return 0
	}
	h := m.height
	if m.ui.ShowStatusBar {
		h--
	}
	if m.showHelp {
		h -= len(m.keys.FullHelp()[0])
	}
	return max(h, 1)
}

// ensureVisible scrolls so the caret line and column are on screen.
func (m *Model) ensureVisible() {
	pos := m.doc.PositionOf(m.caret.Offset())

	if h := m.bodyHeight(); h > 0 {
		if pos.Line < m.top {
			m.top = pos.Line
		} else if pos.Line >= m.top+h {
			m.top = pos.Line - h + 1
		}
	}
	m.top = max(0, min(m.top, m.doc.LineCount()-1))

	if w := m.textWidth(); w > 0 {
		x, cw := caretSpan(layoutLine(m.doc.Line(pos.Line)), pos.Col)
		if x < m.left {
			m.left = x
		} else if x+cw > m.left+w {
			m.left = min(x, x+cw-w)
		}
	} else {
		m.left = 0
	}
}
