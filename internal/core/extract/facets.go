package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/joseph-ayodele/rider-parser/internal/entity"
	"github.com/joseph-ayodele/rider-parser/internal/patterns"
	"github.com/joseph-ayodele/rider-parser/internal/utils"
)

var (
	reAllergyNoise = regexp.MustCompile(`[^\w,\s]`)
	rePhoneKeep    = regexp.MustCompile(`[^0-9+\-(). ]`)
)

// Artists returns candidate act names in first-seen order.
func (e *Extractor) Artists(text string) []string {
	set := newOrderedSet()
	for _, m := range patterns.Apply(patterns.ArtistRules, text) {
		name := trimLabel(m.Group(1))
		if runeLen(name) >= e.opts.MinArtistLength {
			set.add(name)
		}
	}
	return set.list()
}

// Rooms returns one Room per distinct id. The seen set spans every room rule,
// so "Dressing Room 2" and a later "Room 2" produce a single room.
func (e *Extractor) Rooms(text string) []*entity.Room {
	rooms := []*entity.Room{}
	seen := map[string]struct{}{}
	for _, m := range patterns.Apply(patterns.RoomRules, text) {
		id := m.Group(1)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		rooms = append(rooms, &entity.Room{
			ID:          id,
			Name:        fmt.Sprintf(m.Rule.Label, id),
			Description: utils.StrPtr(trimLabel(m.Group(2))),
			Items:       []entity.Item{},
		})
	}
	return rooms
}

// Contacts pairs each labelled name with the first email and phone found within
// a fixed window around it. Dense contact blocks can cross-attribute; names are
// not deduplicated.
func (e *Extractor) Contacts(text string) []entity.Contact {
	contacts := []entity.Contact{}
	for _, m := range patterns.Apply(patterns.ContactRules, text) {
		name := utils.CollapseSpaces(m.Group(1))
		if name == "" {
			continue
		}
		lo := backRunes(text, m.Start, e.opts.ContactWindowBefore)
		hi := forwardRunes(text, m.Start, e.opts.ContactWindowAfter)
		window := text[lo:hi]

		c := entity.Contact{Name: name, Role: "Contact"}
		if strings.Contains(strings.ToLower(m.Text()), "manager") {
			c.Role = "Tour Manager"
		}
		c.Email = utils.StrPtr(patterns.EmailPattern.FindString(window))
		if phone := patterns.PhonePattern.FindString(window); phone != "" {
			c.Phone = utils.StrPtr(strings.TrimSpace(rePhoneKeep.ReplaceAllString(phone, "")))
		}
		contacts = append(contacts, c)
	}
	return contacts
}

// Allergies returns allergen vocabulary hits plus short allergy phrases verbatim.
func (e *Extractor) Allergies(text string) []string {
	set := newOrderedSet()
	for _, m := range patterns.Apply(patterns.AllergyRules, text) {
		cleaned := utils.CollapseSpaces(reAllergyNoise.ReplaceAllString(m.Group(1), ""))
		if cleaned == "" || patterns.NoAllergyPattern.MatchString(cleaned) {
			continue
		}
		n := runeLen(cleaned)
		if n < e.opts.AllergyMaxLength {
			lower := strings.ToLower(cleaned)
			for _, term := range patterns.AllergenVocabulary {
				if strings.Contains(lower, term) {
					set.add(term)
				}
			}
		}
		if n < e.opts.AllergyVerbatimMaxLength {
			set.add(cleaned)
		}
	}
	return set.list()
}

// Requirements returns temperature, timing and must-have notes in that order.
// Duplicates are kept.
func (e *Extractor) Requirements(text string) []string {
	out := []string{}
	for _, m := range patterns.Apply(patterns.RequirementRules, text) {
		switch m.Rule.Kind {
		case patterns.KindTemperature:
			out = append(out, fmt.Sprintf(m.Rule.Label, m.Group(1), strings.ToUpper(m.Group(2))))
		case patterns.KindTiming:
			out = append(out, fmt.Sprintf(m.Rule.Label, strings.TrimSpace(m.Text())))
		case patterns.KindMustHave:
			window := text[m.End:forwardRunes(text, m.End, e.opts.MustHaveLookahead)]
			subject := strings.TrimSpace(patterns.MustHaveSubject.FindString(window))
			if subject != "" {
				out = append(out, fmt.Sprintf(m.Rule.Label, subject))
			}
		}
	}
	return out
}
