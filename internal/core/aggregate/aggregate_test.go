package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/rider-parser/internal/core/extract"
	"github.com/joseph-ayodele/rider-parser/internal/entity"
)

func strp(s string) *string { return &s }

func item(name, category, room string) entity.Item {
	it := entity.Item{Name: name, Quantity: 1, Unit: "item", Category: category}
	if room != "" {
		it.Room = strp(room)
	}
	return it
}

func TestAggregate_Attachments(t *testing.T) {
	facets := extract.Facets{
		Artists: []string{"The Band"},
		Rooms: []*entity.Room{
			{ID: "2", Name: "Dressing Room 2", Items: []entity.Item{}},
		},
	}
	items := []entity.Item{
		item("Water", "Beverages", "2"),
		item("Hummus", "Catering", ""),
		item("Towels", "Towels", "9"),
	}

	r := Aggregate(facets, items)

	assert.Equal(t, []string{"The Band"}, r.Artists)
	require.Len(t, r.Rooms, 1)
	assert.Equal(t, []entity.Item{items[0]}, r.Rooms[0].Items)
	assert.Equal(t, []entity.Item{items[0]}, r.Categories["Beverages"])
	assert.Equal(t, []entity.Item{items[1]}, r.Categories["Catering"])
	assert.Equal(t, []entity.Item{items[2]}, r.Categories["Towels"], "unknown room still lands in its category")
	assert.Equal(t, items, r.Items)
}

func TestAggregate_DedupFlatViewOnly(t *testing.T) {
	facets := extract.Facets{
		Rooms: []*entity.Room{{ID: "2", Name: "Dressing Room 2", Items: []entity.Item{}}},
	}
	water := item("Water", "Beverages", "2")

	r := Aggregate(facets, []entity.Item{water, water})

	assert.Len(t, r.Items, 1)
	assert.Len(t, r.Categories["Beverages"], 2)
	assert.Len(t, r.Rooms[0].Items, 2)
}

func TestAggregate_NeverNil(t *testing.T) {
	r := Aggregate(extract.Facets{}, nil)
	assert.NotNil(t, r.Artists)
	assert.NotNil(t, r.Rooms)
	assert.NotNil(t, r.Categories)
	assert.NotNil(t, r.Items)
	assert.NotNil(t, r.Allergies)
	assert.NotNil(t, r.Contacts)
	assert.NotNil(t, r.SpecialRequirements)
	assert.True(t, r.IsEmpty())
}

func TestFlatten_ItemInRoomAndCategory(t *testing.T) {
	water := item("Water", "Beverages", "2")
	r := &entity.StructuredRider{
		Rooms:      []*entity.Room{{ID: "2", Items: []entity.Item{water}}},
		Categories: map[string][]entity.Item{"Beverages": {water}},
	}

	got := Flatten(r)
	assert.Equal(t, []entity.Item{water}, got)
}

func TestFlatten_DistinctRoomsKept(t *testing.T) {
	r := &entity.StructuredRider{
		Items: []entity.Item{
			item("Water", "Beverages", "1"),
			item("Water", "Beverages", "2"),
			item("Red Bull", "Beverages", "1"),
			item("Red Bull can", "Beverages", "1"),
		},
	}
	assert.Len(t, Flatten(r), 4, "near-duplicate names stay distinct")
}

func TestFlattenForDisplay(t *testing.T) {
	w1 := item("Water", "Beverages", "1")
	w2 := item("Water", "Beverages", "2")
	h := item("Hummus", "Catering", "")
	r := &entity.StructuredRider{
		Rooms: []*entity.Room{
			{ID: "1", Items: []entity.Item{w1}},
			{ID: "2", Items: []entity.Item{w2}},
		},
		Categories: map[string][]entity.Item{
			"Beverages": {w1, w2},
			"Catering":  {h},
		},
		Items: []entity.Item{w1, w2, h},
	}

	got := FlattenForDisplay(r)
	assert.Equal(t, []entity.Item{w1, h}, got)
	assert.Empty(t, FlattenForDisplay(nil))
}

func TestCategoryOrder(t *testing.T) {
	r := &entity.StructuredRider{
		Items: []entity.Item{item("a", "Towels", ""), item("b", "Beverages", ""), item("c", "Towels", "")},
		Categories: map[string][]entity.Item{
			"Beverages": {item("b", "Beverages", "")},
			"Towels":    {item("a", "Towels", "")},
			"Wardrobe":  {},
			"Catering":  {},
		},
	}
	assert.Equal(t, []string{"Towels", "Beverages", "Catering", "Wardrobe"}, CategoryOrder(r))
}
