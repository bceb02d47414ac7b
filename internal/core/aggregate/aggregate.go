// Package aggregate assembles a StructuredRider from extractor facets and classified
// items, and reshapes riders for display.
package aggregate

import (
	"sort"

	"github.com/joseph-ayodele/rider-parser/internal/core/extract"
	"github.com/joseph-ayodele/rider-parser/internal/entity"
)

// RoomLookup resolves an item's room reference. nil means no such room.
type RoomLookup func(id string) *entity.Room

// Aggregate builds the rider. Items go to their category bucket and, when lookup
// finds their room, to that room. The flat Items view is deduplicated by
// name, category and room; buckets keep every item.
func Aggregate(f extract.Facets, items []entity.Item) *entity.StructuredRider {
	r := entity.NewStructuredRider()
	r.Artists = orEmpty(f.Artists)
	r.Allergies = orEmpty(f.Allergies)
	r.SpecialRequirements = orEmpty(f.SpecialRequirements)
	if f.Contacts != nil {
		r.Contacts = f.Contacts
	}
	if f.Rooms != nil {
		r.Rooms = f.Rooms
	}

	lookup := RoomLookup(r.RoomByID)
	for _, it := range items {
		r.Categories[it.Category] = append(r.Categories[it.Category], it)
		if room := lookup(it.RoomID()); room != nil {
			room.Items = append(room.Items, it)
		}
	}
	r.Items = items
	r.Items = Flatten(r)
	return r
}

// key identifies an item for the flat view.
type key struct {
	name, category, room string
}

// Flatten merges Items, every category bucket and every room bucket into one
// sequence, first occurrence wins on (name, category, room).
func Flatten(r *entity.StructuredRider) []entity.Item {
	out := []entity.Item{}
	if r == nil {
		return out
	}
	seen := map[key]struct{}{}
	add := func(it entity.Item) {
		k := key{it.Name, it.Category, it.RoomID()}
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		out = append(out, it)
	}

	for _, it := range r.Items {
		add(it)
	}
	for _, cat := range CategoryOrder(r) {
		for _, it := range r.Categories[cat] {
			add(it)
		}
	}
	for _, room := range r.Rooms {
		if room == nil {
			continue
		}
		for _, it := range room.Items {
			add(it)
		}
	}
	return out
}

// FlattenForDisplay is the checklist view: rooms, then categories, deduplicated on
// name and category only, so the same request in two rooms shows once.
func FlattenForDisplay(r *entity.StructuredRider) []entity.Item {
	out := []entity.Item{}
	if r == nil {
		return out
	}
	seen := map[key]struct{}{}
	add := func(it entity.Item) {
		k := key{name: it.Name, category: it.Category}
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		out = append(out, it)
	}

	for _, room := range r.Rooms {
		if room == nil {
			continue
		}
		for _, it := range room.Items {
			add(it)
		}
	}
	for _, cat := range CategoryOrder(r) {
		for _, it := range r.Categories[cat] {
			add(it)
		}
	}
	for _, it := range r.Items {
		add(it)
	}
	return out
}

// CategoryOrder lists category names in order of first appearance in Items,
// followed by any remaining bucket names sorted.
func CategoryOrder(r *entity.StructuredRider) []string {
	if r == nil {
		return nil
	}
	order := make([]string, 0, len(r.Categories))
	seen := map[string]struct{}{}
	for _, it := range r.Items {
		if _, ok := r.Categories[it.Category]; !ok {
			continue
		}
		if _, ok := seen[it.Category]; ok {
			continue
		}
		seen[it.Category] = struct{}{}
		order = append(order, it.Category)
	}

	var rest []string
	for cat := range r.Categories {
		if _, ok := seen[cat]; !ok {
			rest = append(rest, cat)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
