package presentation

import (
	"github.com/zjrosen/quickselect/internal/actions"
	"github.com/zjrosen/quickselect/internal/textbuf"
)

// SelectionDTO is the result of running an action at one caret.
// Line and Col are 1-based and 0-based respectively, like the --at flag.
type SelectionDTO struct {
	Caret   int    `json:"caret" yaml:"caret"`
	Line    int    `json:"line" yaml:"line"`
	Col     int    `json:"col" yaml:"col"`
	Matched bool   `json:"matched" yaml:"matched"`
	Start   int    `json:"start" yaml:"start"`
	End     int    `json:"end" yaml:"end"`
	Text    string `json:"text" yaml:"text"`
}

// FromCaret converts a caret after an action ran on it.
func FromCaret(doc *textbuf.Document, caret *textbuf.Caret, matched bool) SelectionDTO {
	pos := doc.PositionOf(caret.Offset())
	dto := SelectionDTO{
		Caret:   caret.Offset(),
		Line:    pos.Line + 1,
		Col:     pos.Col,
		Matched: matched,
		Start:   caret.SelectionStart(),
		End:     caret.SelectionEnd(),
	}
	if matched {
		dto.Text = caret.Selected(doc)
	}
	return dto
}

// ActionDTO describes a registered action.
type ActionDTO struct {
	ID          string `json:"id" yaml:"id"`
	Kind        string `json:"kind" yaml:"kind"`
	Open        string `json:"open" yaml:"open"`
	Close       string `json:"close" yaml:"close"`
	Multiline   bool   `json:"multiline" yaml:"multiline"`
	Description string `json:"description" yaml:"description"`
}

// FromActions converts actions in order.
func FromActions(list []actions.Action) []ActionDTO {
	dtos := make([]ActionDTO, len(list))
	for i, a := range list {
		dtos[i] = ActionDTO{
			ID:          a.ID,
			Kind:        a.Kind.String(),
			Open:        string(a.Open),
			Close:       string(a.Close),
			Multiline:   a.Multiline,
			Description: a.Description,
		}
	}
	return dtos
}
