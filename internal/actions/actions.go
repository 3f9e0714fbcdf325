// Package actions is the invocation surface for delimiter selection: a
// registry of named actions, each binding a delimiter pair to the bracket or
// quote matcher.
package actions

import (
	"errors"
	"fmt"
	"sort"

	"github.com/zjrosen/quickselect/internal/config"
	"github.com/zjrosen/quickselect/internal/delim"
	"github.com/zjrosen/quickselect/internal/log"
)

var (
	// ErrNoMatch is returned when no caret has a matching delimiter pair.
	ErrNoMatch = errors.New("no matching delimiter pair")
	// ErrUnknownAction is returned for IDs missing from the registry.
	ErrUnknownAction = errors.New("unknown action")
)

// Kind selects which matcher an action runs.
type Kind int

const (
	// KindBracket pairs distinct open and close characters with nesting.
	KindBracket Kind = iota
	// KindQuote pairs identical characters by position on the line.
	KindQuote
)

func (k Kind) String() string {
	switch k {
	case KindBracket:
		return "bracket"
	case KindQuote:
		return "quote"
	default:
		return "unknown"
	}
}

// Action selects the text between one delimiter pair.
type Action struct {
	ID          string
	Description string
	Open        rune
	Close       rune
	Kind        Kind
	Multiline   bool // quote actions only
}

// Pair locates the delimiter pair for offset without touching any caret.
func (a Action) Pair(sel *delim.Selector, offset int) (delim.Pair, bool) {
	if a.Kind == KindQuote {
		return sel.QuotePair(offset, a.Open, a.Multiline)
	}
	return sel.BracketPair(offset, a.Open, a.Close)
}

// Run selects inside (or, with outer, around) the pair at caret.
// Returns false when there is no pair; the selection is then unchanged.
func (a Action) Run(sel *delim.Selector, caret delim.Caret, outer bool) bool {
	log.Debug(log.CatAction, "Running action", "id", a.ID, "offset", caret.Offset(), "outer", outer)
	if a.Kind == KindQuote {
		return sel.SelectBetweenQuotes(caret, a.Open, outer, a.Multiline)
	}
	return sel.SelectBetweenBrackets(caret, a.Open, a.Close, outer)
}

// RunAll applies a to every caret independently and returns how many
// matched. ErrNoMatch is returned when none did.
func RunAll(a Action, buf delim.Buffer, carets []delim.Caret, outer bool) (int, error) {
	sel := delim.NewSelector(buf)
	matched := 0
	for _, c := range carets {
		if a.Run(sel, c, outer) {
			matched++
		}
	}
	if matched == 0 {
		return 0, fmt.Errorf("%s: %w", a.ID, ErrNoMatch)
	}
	return matched, nil
}

// builtins mirror the delimiter commands of the editor plugin this tool
// grew from. Only backticks may span lines.
var builtins = []Action{
	{ID: "paren", Description: "Select inside parentheses ()", Open: '(', Close: ')', Kind: KindBracket},
	{ID: "square", Description: "Select inside square brackets []", Open: '[', Close: ']', Kind: KindBracket},
	{ID: "curly", Description: "Select inside curly brackets {}", Open: '{', Close: '}', Kind: KindBracket},
	{ID: "single-quote", Description: "Select inside single quotes ''", Open: '\'', Close: '\'', Kind: KindQuote},
	{ID: "double-quote", Description: `Select inside double quotes ""`, Open: '"', Close: '"', Kind: KindQuote},
	{ID: "backtick", Description: "Select inside backticks ``", Open: '`', Close: '`', Kind: KindQuote, Multiline: true},
}

// BuiltinIDs returns the IDs of the built-in actions in registration order.
func BuiltinIDs() []string {
	ids := make([]string, len(builtins))
	for i, a := range builtins {
		ids[i] = a.ID
	}
	return ids
}

// Registry maps action IDs and delimiter characters to actions.
type Registry struct {
	byID   map[string]Action
	byRune map[rune]string
}

// NewRegistry creates a Registry from actions. A later action claiming a
// delimiter already bound keeps the earlier binding for ForRune.
func NewRegistry(list ...Action) (*Registry, error) {
	r := &Registry{
		byID:   make(map[string]Action, len(list)),
		byRune: make(map[rune]string, len(list)*2),
	}
	for _, a := range list {
		if err := r.add(a); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) add(a Action) error {
	if a.ID == "" {
		return fmt.Errorf("action with delimiters %q/%q has no ID", a.Open, a.Close)
	}
	if _, exists := r.byID[a.ID]; exists {
		return fmt.Errorf("action %q registered twice", a.ID)
	}
	if a.Kind == KindBracket && a.Open == a.Close {
		return fmt.Errorf("action %q: bracket actions need distinct delimiters", a.ID)
	}
	if a.Kind == KindQuote && a.Open != a.Close {
		return fmt.Errorf("action %q: quote actions need identical delimiters", a.ID)
	}
	r.byID[a.ID] = a
	for _, ch := range []rune{a.Open, a.Close} {
		if _, taken := r.byRune[ch]; !taken {
			r.byRune[ch] = a.ID
		}
	}
	return nil
}

// Default returns a registry of the built-in actions.
func Default() *Registry {
	r, err := NewRegistry(builtins...)
	if err != nil {
		panic(fmt.Sprintf("built-in actions: %v", err))
	}
	return r
}

// FromConfig builds a registry from the built-ins minus cfg.Disabled, plus
// one action per configured pair. cfg must already be validated.
func FromConfig(cfg config.Config) (*Registry, error) {
	disabled := make(map[string]bool, len(cfg.Disabled))
	for _, id := range cfg.Disabled {
		disabled[id] = true
	}

	var list []Action
	for _, a := range builtins {
		if disabled[a.ID] {
			delete(disabled, a.ID)
			continue
		}
		list = append(list, a)
	}
	for id := range disabled {
		return nil, fmt.Errorf("disabled: %q: %w", id, ErrUnknownAction)
	}

	for _, p := range cfg.Pairs {
		for _, id := range BuiltinIDs() {
			if p.Name == id {
				return nil, fmt.Errorf("pair %q: name is taken by a built-in action", p.Name)
			}
		}
		a := Action{
			ID:          p.Name,
			Description: fmt.Sprintf("Select inside %s%s", p.Open, p.Close),
			Open:        p.OpenRune(),
			Close:       p.CloseRune(),
			Kind:        KindBracket,
		}
		if p.IsQuote() {
			a.Kind = KindQuote
			a.Multiline = p.Multiline
		}
		list = append(list, a)
	}

	r, err := NewRegistry(list...)
	if err != nil {
		return nil, err
	}
	log.Debug(log.CatAction, "Action registry built", "count", len(list), "disabled", len(cfg.Disabled), "custom", len(cfg.Pairs))
	return r, nil
}

// Lookup returns the action registered under id.
func (r *Registry) Lookup(id string) (Action, error) {
	a, ok := r.byID[id]
	if !ok {
		return Action{}, fmt.Errorf("%q: %w", id, ErrUnknownAction)
	}
	return a, nil
}

// ForRune returns the action bound to ch as either its open or close delimiter.
func (r *Registry) ForRune(ch rune) (Action, bool) {
	id, ok := r.byRune[ch]
	if !ok {
		return Action{}, false
	}
	return r.byID[id], true
}

// Resolve accepts an action ID or a single delimiter character.
func (r *Registry) Resolve(name string) (Action, error) {
	if a, err := r.Lookup(name); err == nil {
		return a, nil
	}
	if runes := []rune(name); len(runes) == 1 {
		if a, ok := r.ForRune(runes[0]); ok {
			return a, nil
		}
	}
	return Action{}, fmt.Errorf("%q: %w", name, ErrUnknownAction)
}

// All returns every action sorted by ID.
func (r *Registry) All() []Action {
	list := make([]Action, 0, len(r.byID))
	for _, a := range r.byID {
		list = append(list, a)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

// Len returns the number of registered actions.
func (r *Registry) Len() int {
	return len(r.byID)
}
