// Package presentation renders command results as text, JSON, or YAML.
package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"
)

// Format selects the output encoding.
type Format string

const (
	// FormatText prints matched text one per line, and a table for actions.
	FormatText Format = "text"
	// FormatJSON prints indented JSON.
	FormatJSON Format = "json"
	// FormatYAML prints YAML with two-space indentation.
	FormatYAML Format = "yaml"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, json, or yaml)", s)
	}
}

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
	format Format
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer, format Format) *Formatter {
	return &Formatter{
		writer: writer,
		format: format,
	}
}

// FormatSelections writes one record per caret. The text format prints only
// the selected text of carets that matched, one per line.
func (f *Formatter) FormatSelections(results []SelectionDTO) error {
	if f.format != FormatText {
		return f.encode(results)
	}
	for _, r := range results {
		if !r.Matched {
			continue
		}
		if _, err := fmt.Fprintln(f.writer, r.Text); err != nil {
			return err
		}
	}
	return nil
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// FormatActions writes the action list, as a table for the text format.
func (f *Formatter) FormatActions(list []ActionDTO) error {
	if f.format != FormatText {
		return f.encode(list)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderColumn(false).
		BorderLeft(false).
		BorderRight(false).
		BorderTop(false).
		BorderBottom(false).
		Headers("ID", "KIND", "PAIR", "MULTILINE", "DESCRIPTION").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, a := range list {
		t.Row(a.ID, a.Kind, a.Open+" "+a.Close, strconv.FormatBool(a.Multiline), a.Description)
	}
	_, err := fmt.Fprintln(f.writer, t.Render())
	return err
}

func (f *Formatter) encode(v any) error {
	switch f.format {
	case FormatJSON:
		encoder := json.NewEncoder(f.writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case FormatYAML:
		encoder := yaml.NewEncoder(f.writer)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return fmt.Errorf("unknown format %q", f.format)
	}
}
