package extract

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRider = `The Midnight Owls Tour 2024
Artist: The Midnight Owls
Tour Manager: Jane Doe
jane@owls.example | +1 555-123-4567

Dressing Room 2 - Headliner
BEVERAGES
24 bottles of water
(3) Red Bull cans
Room 2
Room B: Support act

Allergies: no peanuts or shellfish please
Keep dressing rooms at 68°F
Load in: 2:00 PM
Required: bottled water`

func TestArtists(t *testing.T) {
	ex := New(Options{})
	got := ex.Artists(sampleRider)
	assert.Contains(t, got, "The Midnight Owls")
	assert.Contains(t, got, "Headliner")

	// exact duplicates collapse, first seen wins
	count := 0
	for _, a := range got {
		if a == "The Midnight Owls" {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Equal(t, "The Midnight Owls", got[0])
}

func TestArtists_MinLength(t *testing.T) {
	ex := New(Options{MinArtistLength: 3})
	assert.Empty(t, ex.Artists("Artist: DJ"))
	assert.Equal(t, []string{"DJX"}, ex.Artists("Artist: DJX"))
}

func TestRooms(t *testing.T) {
	ex := New(Options{})
	rooms := ex.Rooms(sampleRider)
	require.Len(t, rooms, 2)

	assert.Equal(t, "2", rooms[0].ID)
	assert.Equal(t, "Dressing Room 2", rooms[0].Name)
	require.NotNil(t, rooms[0].Description)
	assert.Equal(t, "Headliner", *rooms[0].Description)
	assert.NotNil(t, rooms[0].Items)
	assert.Empty(t, rooms[0].Items)

	assert.Equal(t, "B", rooms[1].ID)
	assert.Equal(t, "Room B", rooms[1].Name)
	require.NotNil(t, rooms[1].Description)
	assert.Equal(t, "Support act", *rooms[1].Description)
}

func TestRooms_NoDescription(t *testing.T) {
	rooms := New(Options{}).Rooms("Room 7")
	require.Len(t, rooms, 1)
	assert.Nil(t, rooms[0].Description)
}

func TestContacts(t *testing.T) {
	ex := New(Options{})
	contacts := ex.Contacts(sampleRider)
	require.Len(t, contacts, 1)

	c := contacts[0]
	assert.Equal(t, "Jane Doe", c.Name)
	assert.Equal(t, "Tour Manager", c.Role)
	require.NotNil(t, c.Email)
	assert.Equal(t, "jane@owls.example", *c.Email)
	require.NotNil(t, c.Phone)
	assert.Equal(t, "+1 555-123-4567", *c.Phone)
}

func TestContacts_RoleAndWindow(t *testing.T) {
	ex := New(Options{ContactWindowBefore: 10, ContactWindowAfter: 30})
	text := "Contact: Sam Reed\n" + strings.Repeat("x", 60) + " sam@example.com"
	contacts := ex.Contacts(text)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Contact", contacts[0].Role)
	assert.Nil(t, contacts[0].Email, "email outside the window is not attached")
	assert.Nil(t, contacts[0].Phone)
}

func TestAllergies(t *testing.T) {
	ex := New(Options{})
	got := ex.Allergies("Please: no peanuts or shellfish please")
	assert.Contains(t, got, "peanuts")
	assert.Contains(t, got, "shellfish")
	assert.Contains(t, got, "peanuts or shellfish please")
}

func TestAllergies_NothingToReport(t *testing.T) {
	ex := New(Options{})
	tests := []string{
		"No known allergies",
		"Food Allergies: none",
		"No known allergies\nFood Allergies: none",
		"Allergies: N/A",
		"Dietary restrictions: None.",
	}
	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			got := ex.Allergies(text)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestAllergies_AllergenBeforeWord(t *testing.T) {
	got := New(Options{}).Allergies("Drummer has a severe peanut allergy")
	assert.Equal(t, []string{"peanut"}, got)
}

func TestAllergies_LengthLimits(t *testing.T) {
	ex := New(Options{})

	long := "Allergies: " + strings.Repeat("word ", 12) + "gluten"
	got := ex.Allergies(long)
	assert.Contains(t, got, "gluten")
	for _, a := range got {
		assert.Less(t, len(a), 50)
	}

	tooLong := "Allergies: " + strings.Repeat("word ", 25) + "gluten"
	assert.Empty(t, ex.Allergies(tooLong))
}

func TestAllergies_StripsPunctuation(t *testing.T) {
	got := New(Options{}).Allergies("Allergies: dairy (severe)!")
	assert.Equal(t, []string{"dairy", "dairy severe"}, got)
}

func TestRequirements(t *testing.T) {
	ex := New(Options{})
	got := ex.Requirements(sampleRider)
	assert.Equal(t, []string{
		"Temperature: 68°F",
		"Timing: Load in: 2:00 PM",
		"Must Have: bottled water",
	}, got)
}

func TestRequirements_KeepsDuplicates(t *testing.T) {
	got := New(Options{}).Requirements("20°c\n20 °C")
	assert.Equal(t, []string{"Temperature: 20°C", "Temperature: 20°C"}, got)
}

func TestRequirements_MustHaveLookahead(t *testing.T) {
	ex := New(Options{MustHaveLookahead: 5})
	text := "mandatory: " + strings.Repeat("1", 10) + " towels"
	assert.Empty(t, ex.Requirements(text))
}

func TestNoStructure(t *testing.T) {
	f := New(Options{}).All("lorem ipsum 42")
	assert.NotNil(t, f.Artists)
	assert.Empty(t, f.Artists)
	assert.NotNil(t, f.Rooms)
	assert.Empty(t, f.Rooms)
	assert.NotNil(t, f.Contacts)
	assert.Empty(t, f.Contacts)
	assert.NotNil(t, f.Allergies)
	assert.Empty(t, f.Allergies)
	assert.NotNil(t, f.SpecialRequirements)
	assert.Empty(t, f.SpecialRequirements)
}

func TestAllConcurrent_MatchesSequential(t *testing.T) {
	ex := New(Options{})
	want := ex.All(sampleRider)

	got, err := ex.AllConcurrent(context.Background(), sampleRider)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestAllConcurrent_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Options{}).AllConcurrent(ctx, sampleRider)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRuneWindow(t *testing.T) {
	s := "héllo wörld"
	assert.Equal(t, 0, backRunes(s, 3, 10))
	assert.Equal(t, 1, backRunes(s, 3, 1))
	assert.Equal(t, len(s), forwardRunes(s, 0, 100))
	assert.Equal(t, 3, forwardRunes(s, 0, 2))
}
