// Package patterns holds the rule tables the extraction engine runs over rider text.
// Rules are data: each extractor picks a ruleset and applies it with Apply or First.
package patterns

import "regexp"

// Kind tags the facet a rule feeds.
type Kind string

const (
	KindArtist      Kind = "artist"
	KindRoom        Kind = "room"
	KindContact     Kind = "contact"
	KindAllergy     Kind = "allergy"
	KindTemperature Kind = "temperature"
	KindTiming      Kind = "timing"
	KindMustHave    Kind = "must_have"
	KindCategory    Kind = "category"
	KindUnit        Kind = "unit"
)

// Rule is one named pattern. Label carries the value the rule produces when it
// matches (a unit name, a category, or a format string for room names).
type Rule struct {
	Kind    Kind
	Name    string
	Pattern *regexp.Regexp
	Label   string
}

// Match is one hit of a rule against a text, with byte offsets into that text.
type Match struct {
	Rule  *Rule
	Start int
	End   int

	groups  []string
	present []bool
}

// Text returns the full matched text.
func (m Match) Text() string { return m.Group(0) }

// Group returns capture i, or "" when the group did not participate.
func (m Match) Group(i int) string {
	if i < 0 || i >= len(m.groups) {
		return ""
	}
	return m.groups[i]
}

// Has reports whether capture i participated in the match.
func (m Match) Has(i int) bool {
	return i >= 0 && i < len(m.present) && m.present[i]
}

func newMatch(r *Rule, text string, loc []int) Match {
	n := len(loc) / 2
	m := Match{
		Rule:    r,
		Start:   loc[0],
		End:     loc[1],
		groups:  make([]string, n),
		present: make([]bool, n),
	}
	for i := 0; i < n; i++ {
		a, b := loc[2*i], loc[2*i+1]
		if a < 0 || b < 0 {
			continue
		}
		m.groups[i] = text[a:b]
		m.present[i] = true
	}
	return m
}

// Apply runs every rule over text in rule order and returns all non-overlapping
// matches of each rule, grouped by rule and ordered by position within a rule.
func Apply(rules []Rule, text string) []Match {
	var out []Match
	for i := range rules {
		r := &rules[i]
		for _, loc := range r.Pattern.FindAllStringSubmatchIndex(text, -1) {
			out = append(out, newMatch(r, text, loc))
		}
	}
	return out
}

// First returns the first match of the first rule that matches s.
func First(rules []Rule, s string) (Match, bool) {
	for i := range rules {
		r := &rules[i]
		if loc := r.Pattern.FindStringSubmatchIndex(s); loc != nil {
			return newMatch(r, s, loc), true
		}
	}
	return Match{}, false
}

// Any reports whether some rule matches s.
func Any(rules []Rule, s string) bool {
	for i := range rules {
		if rules[i].Pattern.MatchString(s) {
			return true
		}
	}
	return false
}

// OfKind filters rules down to one kind, keeping their order.
func OfKind(rules []Rule, kind Kind) []Rule {
	out := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}
