package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/quickselect/internal/actions"
	"github.com/zjrosen/quickselect/internal/delim"
	"github.com/zjrosen/quickselect/internal/log"
	"github.com/zjrosen/quickselect/internal/presentation"
	"github.com/zjrosen/quickselect/internal/textbuf"
)

var (
	selectAt        []string
	selectSelection string
	selectOuter     bool
	selectFormat    string
)

var selectCmd = &cobra.Command{
	Use:   "select <action> [file]",
	Short: "Print the text between the delimiters around each position",
	Long: `Select the text inside the innermost delimiter pair around each --at
position and print it. The action is an ID from "quickselect actions" or one
of its delimiter characters. The file defaults to stdin.

Positions are rune offsets (--at 42) or LINE:COL with a 1-based line and a
0-based column (--at 3:10). --selection gives every caret an existing
selection; if it equals the inner text the outer text is selected instead,
just like pressing the key twice.

Exits non-zero when no position has a match.

Examples:
  quickselect select paren main.go --at 12:8
  quickselect select '"' --at 0 --format json < notes.txt
  quickselect select curly main.go --at 120 --at 480 --outer`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSelect,
}

func init() {
	selectCmd.Flags().StringArrayVarP(&selectAt, "at", "a", nil, "caret position, OFFSET or LINE:COL (repeatable)")
	selectCmd.Flags().StringVarP(&selectSelection, "selection", "s", "", "existing selection START:END applied to every caret")
	selectCmd.Flags().BoolVarP(&selectOuter, "outer", "o", false, "include the delimiters")
	selectCmd.Flags().StringVarP(&selectFormat, "format", "f", "text", "output format: text, json, or yaml")
	_ = selectCmd.MarkFlagRequired("at")
	rootCmd.AddCommand(selectCmd)
}

func runSelect(cmd *cobra.Command, args []string) error {
	format, err := presentation.ParseFormat(selectFormat)
	if err != nil {
		return err
	}
	r, err := registry()
	if err != nil {
		return err
	}
	action, err := r.Resolve(args[0])
	if err != nil {
		return err
	}

	doc, err := readDocument(cmd.InOrStdin(), args[1:])
	if err != nil {
		return err
	}

	carets := make([]*textbuf.Caret, 0, len(selectAt))
	for _, at := range selectAt {
		offset, err := parseAt(doc, at)
		if err != nil {
			return fmt.Errorf("--at %s: %w", at, err)
		}
		caret := textbuf.NewCaret(offset)
		if selectSelection != "" {
			start, end, err := parseSelection(doc, selectSelection)
			if err != nil {
				return fmt.Errorf("--selection %s: %w", selectSelection, err)
			}
			caret.SetSelection(start, end)
		}
		carets = append(carets, caret)
	}

	results, runErr := runCarets(action, doc, carets, selectOuter)
	log.Debug(log.CatCLI, "Select finished", "action", action.ID, "carets", len(carets), "err", runErr)

	formatter := presentation.NewFormatter(cmd.OutOrStdout(), format)
	if err := formatter.FormatSelections(results); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return runErr
}

// trackedCaret records whether an action selected anything on it.
type trackedCaret struct {
	*textbuf.Caret
	matched bool
}

func (c *trackedCaret) SetSelection(start, end int) {
	c.matched = true
	c.Caret.SetSelection(start, end)
}

// runCarets runs action on every caret and reports each outcome.
func runCarets(action actions.Action, doc *textbuf.Document, carets []*textbuf.Caret, outer bool) ([]presentation.SelectionDTO, error) {
	tracked := make([]*trackedCaret, len(carets))
	targets := make([]delim.Caret, len(carets))
	for i, c := range carets {
		tracked[i] = &trackedCaret{Caret: c}
		targets[i] = tracked[i]
	}

	_, err := actions.RunAll(action, doc, targets, outer)

	results := make([]presentation.SelectionDTO, len(tracked))
	for i, c := range tracked {
		results[i] = presentation.FromCaret(doc, c.Caret, c.matched)
	}
	return results, err
}

func readDocument(stdin io.Reader, args []string) (*textbuf.Document, error) {
	if len(args) == 0 || args[0] == "-" {
		doc, err := textbuf.FromReader(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return doc, nil
	}

	f, err := os.Open(args[0])
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	doc, err := textbuf.FromReader(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", args[0], err)
	}
	return doc, nil
}

// parseAt converts OFFSET or LINE:COL (1-based line) to a rune offset.
func parseAt(doc *textbuf.Document, s string) (int, error) {
	if lineStr, colStr, ok := strings.Cut(s, ":"); ok {
		line, err := strconv.Atoi(lineStr)
		if err != nil {
			return 0, fmt.Errorf("bad line %q", lineStr)
		}
		col, err := strconv.Atoi(colStr)
		if err != nil {
			return 0, fmt.Errorf("bad column %q", colStr)
		}
		if line < 1 {
			return 0, fmt.Errorf("line %d: lines start at 1: %w", line, textbuf.ErrOffsetOutOfRange)
		}
		return doc.OffsetOf(line-1, col)
	}

	offset, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.New("want OFFSET or LINE:COL")
	}
	return checkOffset(doc, offset)
}

// parseSelection parses START:END rune offsets.
func parseSelection(doc *textbuf.Document, s string) (int, int, error) {
	startStr, endStr, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, errors.New("want START:END")
	}
	start, err := strconv.Atoi(startStr)
	if err != nil {
		return 0, 0, fmt.Errorf("bad start %q", startStr)
	}
	end, err := strconv.Atoi(endStr)
	if err != nil {
		return 0, 0, fmt.Errorf("bad end %q", endStr)
	}
	if _, err := checkOffset(doc, start); err != nil {
		return 0, 0, err
	}
	if _, err := checkOffset(doc, end); err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func checkOffset(doc *textbuf.Document, offset int) (int, error) {
	if offset < 0 || offset > doc.Len() {
		return 0, fmt.Errorf("offset %d outside [0, %d]: %w", offset, doc.Len(), textbuf.ErrOffsetOutOfRange)
	}
	return offset, nil
}
