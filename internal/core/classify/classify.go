// Package classify walks rider lines once, carrying the current category and room,
// and turns item lines into entity.Item values.
package classify

import (
	"strings"
	"unicode"

	"github.com/joseph-ayodele/rider-parser/constants"
	"github.com/joseph-ayodele/rider-parser/internal/core/normalize"
	"github.com/joseph-ayodele/rider-parser/internal/entity"
	"github.com/joseph-ayodele/rider-parser/internal/patterns"
)

// State is the running context between lines. Values are never mutated in place;
// each step returns the next State.
type State struct {
	Category string
	Room     string
}

// InitialState is the state before the first line.
func InitialState() State {
	return State{Category: string(constants.General)}
}

type LineKind int

const (
	LineBlank LineKind = iota
	LineHeader
	LineRoom
	LineItem
	LineDiscarded
)

func (k LineKind) String() string {
	switch k {
	case LineBlank:
		return "blank"
	case LineHeader:
		return "header"
	case LineRoom:
		return "room"
	case LineItem:
		return "item"
	case LineDiscarded:
		return "discarded"
	default:
		return "unknown"
	}
}

// Line is one classified line with the state in force after it.
type Line struct {
	Text  string
	Kind  LineKind
	State State
	Item  *entity.Item
}

// Result is the output of one pass.
type Result struct {
	Lines []Line
	Items []entity.Item
	Final State
}

type Options struct {
	MinItemNameLength int
	MaxCategoryLength int
}

func DefaultOptions() Options {
	return Options{
		MinItemNameLength: constants.DefaultMinItemNameLength,
		MaxCategoryLength: constants.DefaultMaxCategoryLength,
	}
}

type Classifier struct {
	opts Options
}

func New(opts Options) *Classifier {
	d := DefaultOptions()
	if opts.MinItemNameLength <= 0 {
		opts.MinItemNameLength = d.MinItemNameLength
	}
	if opts.MaxCategoryLength <= 0 {
		opts.MaxCategoryLength = d.MaxCategoryLength
	}
	return &Classifier{opts: opts}
}

// Run folds Next over every line of text, starting from InitialState.
func (c *Classifier) Run(text string) Result {
	res := Result{Lines: []Line{}, Items: []entity.Item{}, Final: InitialState()}
	state := res.Final
	for _, raw := range normalize.Lines(text) {
		var line Line
		state, line = c.Next(state, raw)
		res.Lines = append(res.Lines, line)
		if line.Item != nil {
			res.Items = append(res.Items, *line.Item)
		}
	}
	res.Final = state
	return res
}

// Next classifies one line against the current state.
// Headers replace the category and end the step. Room markers replace the room and
// still go through item parsing. Blank lines leave the state alone.
func (c *Classifier) Next(s State, raw string) (State, Line) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return s, Line{Text: text, Kind: LineBlank, State: s}
	}

	if cat, ok := c.Header(text); ok {
		next := State{Category: cat, Room: s.Room}
		return next, Line{Text: text, Kind: LineHeader, State: next}
	}

	next := s
	kind := LineItem
	if m, ok := patterns.First(patterns.RoomRules, text); ok {
		next.Room = m.Group(1)
		kind = LineRoom
	}

	line := Line{Text: text, Kind: kind, State: next}
	if item, ok := c.BuildItem(text, next); ok {
		line.Item = &item
	} else if kind == LineItem {
		line.Kind = LineDiscarded
	}
	return next, line
}

// Header reports whether a trimmed line is a category header and returns the
// standard category name for it.
func (c *Classifier) Header(line string) (string, bool) {
	if m, ok := patterns.First(patterns.CategoryHeaderRules, line); ok {
		cat, _ := constants.Canonicalize(m.Group(1))
		return string(cat), true
	}
	if m, ok := patterns.First(patterns.CategoryKeywordRules, line); ok {
		return m.Rule.Label, true
	}
	if runeCount(line) < c.opts.MaxCategoryLength && patterns.AllCapsHeader.MatchString(line) && letterCount(line) >= 2 {
		cat, _ := constants.Canonicalize(line)
		return string(cat), true
	}
	return "", false
}

func runeCount(s string) int {
	return len([]rune(s))
}

func letterCount(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			n++
		}
	}
	return n
}
