package patterns

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply_OrdersByRuleThenPosition(t *testing.T) {
	rules := []Rule{
		{Kind: KindUnit, Name: "digits", Pattern: regexp.MustCompile(`\d+`)},
		{Kind: KindUnit, Name: "letters", Pattern: regexp.MustCompile(`[a-z]+`)},
	}

	got := Apply(rules, "ab 12 cd 34")
	require.Len(t, got, 4)
	assert.Equal(t, "12", got[0].Text())
	assert.Equal(t, "34", got[1].Text())
	assert.Equal(t, "ab", got[2].Text())
	assert.Equal(t, "cd", got[3].Text())
	assert.Equal(t, "letters", got[3].Rule.Name)
	assert.Equal(t, 6, got[3].Start)
	assert.Equal(t, 8, got[3].End)
}

func TestMatch_OptionalGroups(t *testing.T) {
	m, ok := First(RoomRules, "Room 4")
	require.True(t, ok)
	assert.Equal(t, "4", m.Group(1))
	assert.False(t, m.Has(2))
	assert.Equal(t, "", m.Group(2))
	assert.Equal(t, "", m.Group(9))
}

func TestFirst_NoMatch(t *testing.T) {
	_, ok := First(RoomRules, "nothing to see")
	assert.False(t, ok)
	assert.False(t, Any(RoomRules, "nothing to see"))
}

func TestOfKind(t *testing.T) {
	temp := OfKind(RequirementRules, KindTemperature)
	require.Len(t, temp, 1)
	assert.Equal(t, "temperature", temp[0].Name)
	assert.Empty(t, OfKind(RequirementRules, KindRoom))
}

func TestArtistRules(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"label", "Artist: The Midnight Owls", "The Midnight Owls"},
		{"performer dash", "Performer - DJ Nova", "DJ Nova"},
		{"tour suffix", "Neon Tigers Tour 2024", "Neon Tigers"},
		{"rider suffix", "Neon Tigers rider", "Neon Tigers"},
		{"featuring", "An evening featuring Luna Park", "Luna Park"},
		{"dressing room", "Dressing Room 1 - Lead Singer", "Lead Singer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, m := range Apply(ArtistRules, tt.text) {
				got = append(got, m.Group(1))
			}
			assert.Contains(t, got, tt.want)
		})
	}
}

func TestAllergyRules_IgnoresOtherWords(t *testing.T) {
	for _, text := range []string{"No known allergies", "Food Allergies", "crew allergy list attached"} {
		for _, m := range Apply(AllergyRules, text) {
			assert.NotEqual(t, "allergen_before_allergy", m.Rule.Name, text)
		}
	}
}

func TestNoAllergyPattern(t *testing.T) {
	for _, s := range []string{"none", "None known", "na", "N A", "nil", "no known allergies", "Not applicable"} {
		assert.True(t, NoAllergyPattern.MatchString(s), s)
	}
	for _, s := range []string{"peanuts", "none of the nuts", "no peanuts"} {
		assert.False(t, NoAllergyPattern.MatchString(s), s)
	}
}

func TestRoomRules(t *testing.T) {
	tests := []struct {
		text     string
		rule     string
		id       string
		describe string
	}{
		{"Dressing Room 2 - Headliner", "dressing_room", "2", "Headliner"},
		{"dressing room B: support act", "dressing_room", "B", "support act"},
		{"Room 12", "room", "12", ""},
		{"ROOM C — band", "room", "C", "band"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			m, ok := First(RoomRules, tt.text)
			require.True(t, ok)
			assert.Equal(t, tt.rule, m.Rule.Name)
			assert.Equal(t, tt.id, m.Group(1))
			assert.Equal(t, tt.describe, m.Group(2))
		})
	}

	// a lowercase single letter is a word, not a room id
	assert.False(t, Any(RoomRules, "the room a bit warm"))
	assert.False(t, Any(RoomRules, "dressing room is small"))
}

func TestContactAndReachPatterns(t *testing.T) {
	m, ok := First(ContactRules, "Tour Manager: Jane Doe\njane@example.com")
	require.True(t, ok)
	assert.Equal(t, "Jane Doe", m.Group(1))

	assert.Equal(t, "jane.doe+tour@example.co.uk", EmailPattern.FindString("mail jane.doe+tour@example.co.uk now"))
	assert.Equal(t, "+1 555-123-4567", PhonePattern.FindString("call +1 555-123-4567 anytime"))
	assert.Equal(t, "(555) 123-4567", PhonePattern.FindString("(555) 123-4567"))
}

func TestAllergyRules(t *testing.T) {
	tests := []struct {
		text string
		rule string
		want string
	}{
		{"Allergies: peanuts, shellfish", "allergy_label", "peanuts, shellfish"},
		{"allergic to strawberries", "allergy_label", "strawberries"},
		{"no peanuts or shellfish please", "avoid_allergen", "peanuts or shellfish please"},
		{"Dietary restrictions: vegan", "dietary_restriction", "vegan"},
		{"severe nut allergy", "allergen_before_allergy", "nut"},
		{"Peanut allergy on crew", "allergen_before_allergy", "Peanut"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			var got []string
			for _, m := range Apply(AllergyRules, tt.text) {
				if m.Rule.Name == tt.rule {
					got = append(got, m.Group(1))
				}
			}
			assert.Contains(t, got, tt.want)
		})
	}
}

func TestRequirementRules(t *testing.T) {
	tests := []struct {
		text string
		kind Kind
		want string
	}{
		{"keep it at 68°F", KindTemperature, "68°F"},
		{"20 degrees C in the room", KindTemperature, "20 degrees C"},
		{"Load in: 2:00 PM", KindTiming, "Load in: 2:00 PM"},
		{"Doors open at 7pm", KindTiming, "Doors open at 7pm"},
		{"Soundcheck 16:30", KindTiming, "Soundcheck 16:30"},
		{"This is mandatory", KindMustHave, "mandatory"},
		{"non-negotiable", KindMustHave, "non-negotiable"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			ms := Apply(OfKind(RequirementRules, tt.kind), tt.text)
			require.NotEmpty(t, ms)
			assert.Equal(t, tt.want, ms[0].Text())
		})
	}

	assert.False(t, MustHavePattern.MatchString("Special Requirements"))
}

func TestCategoryRules(t *testing.T) {
	m, ok := First(CategoryHeaderRules, "Beverages:")
	require.True(t, ok)
	assert.Equal(t, "Beverages", m.Group(1))

	m, ok = First(CategoryHeaderRules, "== Green Room ==")
	require.True(t, ok)
	assert.Equal(t, "Green Room", m.Group(1))

	assert.False(t, Any(CategoryHeaderRules, "24 bottles of beverages"))

	m, ok = First(CategoryKeywordRules, "TECHNICAL  REQUIREMENTS (see stage plot)")
	require.True(t, ok)
	assert.Equal(t, "Technical", m.Rule.Label)

	assert.True(t, AllCapsHeader.MatchString("FOOD & DRINK"))
	assert.False(t, AllCapsHeader.MatchString("ROOM 2"))
}

func TestUnitRules(t *testing.T) {
	tests := map[string]string{
		"Red Bull cans":        "can",
		"bottles of Fiji":      "bottle",
		"a case of Heineken":   "case",
		"6-pack of beer":       "pack",
		"box of tissues":       "box",
		"bag of ice":           "bag",
		"dozen roses":          "dozen",
		"2 lbs of grapes":      "pound",
		"gallon of milk":       "gallon",
		"litres of juice":      "liter",
		"cans in a box":        "can",
		"bottled water":        "",
		"fresh towels":         "",
		"candles":              "",
	}
	for name, want := range tests {
		m, ok := First(UnitRules, name)
		if want == "" {
			assert.False(t, ok, name)
			continue
		}
		require.True(t, ok, name)
		assert.Equal(t, want, m.Rule.Label, name)
	}
}

func TestItemPattern(t *testing.T) {
	tests := []struct {
		line  string
		num   string
		word  string
		paren string
		name  string
		note  string
	}{
		{"(3) Red Bull cans", "", "", "3", "Red Bull cans", ""},
		{"two bottles of Fiji water", "", "two", "", "bottles of Fiji water", ""},
		{"24 bottles water - room temp", "24", "", "", "bottles water", "room temp"},
		{"- 2x Red Bull", "2", "", "", "Red Bull", ""},
		{"half dozen bagels", "", "half dozen", "", "bagels", ""},
		{"some ice", "", "some", "", "ice", ""},
		{"Dressing Room 2 - Headliner", "", "", "", "Dressing Room 2", "Headliner"},
		{"1. Towels", "", "", "", "Towels", ""},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			g := ItemPattern.FindStringSubmatch(tt.line)
			require.NotNil(t, g)
			assert.Equal(t, tt.num, g[ItemGroupNumber])
			assert.Equal(t, tt.word, g[ItemGroupWord])
			assert.Equal(t, tt.paren, g[ItemGroupParen])
			assert.Equal(t, tt.name, g[ItemGroupName])
			assert.Equal(t, tt.note, g[ItemGroupNote])
		})
	}
}

func TestQuantityWord(t *testing.T) {
	assert.Equal(t, 2, QuantityWord("two"))
	assert.Equal(t, 12, QuantityWord("Dozen"))
	assert.Equal(t, 6, QuantityWord("half  dozen"))
	assert.Equal(t, 1, QuantityWord("some"))
	assert.Equal(t, 1, QuantityWord("several"))
}
