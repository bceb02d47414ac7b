// Package extract scans whole rider text for facets that do not depend on line
// position: artists, rooms, contacts, allergies and special requirements.
package extract

import (
	"context"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/joseph-ayodele/rider-parser/constants"
	"github.com/joseph-ayodele/rider-parser/internal/entity"
)

// Options tunes the extractors. Zero fields fall back to the package defaults.
type Options struct {
	MinArtistLength          int
	ContactWindowBefore      int
	ContactWindowAfter       int
	AllergyMaxLength         int
	AllergyVerbatimMaxLength int
	MustHaveLookahead        int
}

// DefaultOptions returns the stock thresholds.
func DefaultOptions() Options {
	return Options{
		MinArtistLength:          constants.DefaultMinArtistLength,
		ContactWindowBefore:      constants.DefaultContactWindowBefore,
		ContactWindowAfter:       constants.DefaultContactWindowAfter,
		AllergyMaxLength:         constants.DefaultAllergyMaxLength,
		AllergyVerbatimMaxLength: constants.DefaultAllergyVerbatimMaxLength,
		MustHaveLookahead:        constants.DefaultMustHaveLookahead,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.MinArtistLength <= 0 {
		o.MinArtistLength = d.MinArtistLength
	}
	if o.ContactWindowBefore <= 0 {
		o.ContactWindowBefore = d.ContactWindowBefore
	}
	if o.ContactWindowAfter <= 0 {
		o.ContactWindowAfter = d.ContactWindowAfter
	}
	if o.AllergyMaxLength <= 0 {
		o.AllergyMaxLength = d.AllergyMaxLength
	}
	if o.AllergyVerbatimMaxLength <= 0 {
		o.AllergyVerbatimMaxLength = d.AllergyVerbatimMaxLength
	}
	if o.MustHaveLookahead <= 0 {
		o.MustHaveLookahead = d.MustHaveLookahead
	}
	return o
}

// Extractor runs the field extractors. It holds no per-parse state and is safe
// for concurrent use.
type Extractor struct {
	opts Options
}

func New(opts Options) *Extractor {
	return &Extractor{opts: opts.withDefaults()}
}

// Facets is the combined output of every field extractor.
type Facets struct {
	Artists             []string
	Rooms               []*entity.Room
	Contacts            []entity.Contact
	Allergies           []string
	SpecialRequirements []string
}

// All runs every extractor sequentially.
func (e *Extractor) All(text string) Facets {
	return Facets{
		Artists:             e.Artists(text),
		Rooms:               e.Rooms(text),
		Contacts:            e.Contacts(text),
		Allergies:           e.Allergies(text),
		SpecialRequirements: e.Requirements(text),
	}
}

// AllConcurrent runs every extractor on its own goroutine. The result equals All(text);
// the only error is ctx's.
func (e *Extractor) AllConcurrent(ctx context.Context, text string) (Facets, error) {
	var f Facets
	g, gctx := errgroup.WithContext(ctx)

	run := func(fn func()) {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn()
			return nil
		})
	}
	run(func() { f.Artists = e.Artists(text) })
	run(func() { f.Rooms = e.Rooms(text) })
	run(func() { f.Contacts = e.Contacts(text) })
	run(func() { f.Allergies = e.Allergies(text) })
	run(func() { f.SpecialRequirements = e.Requirements(text) })

	if err := g.Wait(); err != nil {
		return Facets{}, err
	}
	return f, nil
}

// orderedSet keeps first-seen order and drops exact duplicates.
type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: map[string]struct{}{}, items: []string{}}
}

func (s *orderedSet) add(v string) {
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
}

func (s *orderedSet) list() []string { return s.items }

// backRunes returns the byte offset n runes before pos, clipped to 0.
func backRunes(s string, pos, n int) int {
	for ; n > 0 && pos > 0; n-- {
		_, size := utf8.DecodeLastRuneInString(s[:pos])
		pos -= size
	}
	return pos
}

// forwardRunes returns the byte offset n runes after pos, clipped to len(s).
func forwardRunes(s string, pos, n int) int {
	for ; n > 0 && pos < len(s); n-- {
		_, size := utf8.DecodeRuneInString(s[pos:])
		pos += size
	}
	return pos
}

func runeLen(s string) int { return utf8.RuneCountInString(s) }

// trimLabel trims whitespace and the separators that sit between a label and its value.
func trimLabel(s string) string {
	return strings.Trim(strings.Join(strings.Fields(s), " "), " -–—:;,.")
}
