package aggregate

import (
	"fmt"
	"strings"

	"github.com/joseph-ayodele/rider-parser/constants"
	"github.com/joseph-ayodele/rider-parser/internal/entity"
)

// Coerce fills the gaps an external extractor may leave: nil collections become
// empty, items get default quantity, unit and category, rooms get a name, and the
// flat Items view is rebuilt so every bucketed item is reachable from it.
// Items and contacts without a name are dropped. The input is not modified.
func Coerce(in *entity.StructuredRider) *entity.StructuredRider {
	r := entity.NewStructuredRider()
	if in == nil {
		return r
	}

	r.Artists = nonBlank(in.Artists)
	r.Allergies = nonBlank(in.Allergies)
	r.SpecialRequirements = nonBlank(in.SpecialRequirements)

	for _, c := range in.Contacts {
		c.Name = strings.TrimSpace(c.Name)
		if c.Name == "" {
			continue
		}
		if strings.TrimSpace(c.Role) == "" {
			c.Role = "Contact"
		}
		r.Contacts = append(r.Contacts, c)
	}

	for _, room := range in.Rooms {
		if room == nil || strings.TrimSpace(room.ID) == "" {
			continue
		}
		out := &entity.Room{
			ID:          strings.TrimSpace(room.ID),
			Name:        strings.TrimSpace(room.Name),
			Description: room.Description,
			Items:       coerceItems(room.Items, ""),
		}
		if out.Name == "" {
			out.Name = fmt.Sprintf("Room %s", out.ID)
		}
		for i := range out.Items {
			if out.Items[i].Room == nil {
				id := out.ID
				out.Items[i].Room = &id
			}
		}
		r.Rooms = append(r.Rooms, out)
	}

	for cat, items := range in.Categories {
		name := strings.TrimSpace(cat)
		if name == "" {
			name = string(constants.General)
		}
		r.Categories[name] = append(r.Categories[name], coerceItems(items, name)...)
	}

	r.Items = coerceItems(in.Items, "")
	if len(in.Categories) == 0 {
		for _, it := range r.Items {
			r.Categories[it.Category] = append(r.Categories[it.Category], it)
		}
	}
	r.Items = Flatten(r)
	return r
}

// HasItems reports whether a rider carries at least one item in any view.
func HasItems(r *entity.StructuredRider) bool {
	if r == nil {
		return false
	}
	if len(r.Items) > 0 {
		return true
	}
	for _, items := range r.Categories {
		if len(items) > 0 {
			return true
		}
	}
	for _, room := range r.Rooms {
		if room != nil && len(room.Items) > 0 {
			return true
		}
	}
	return false
}

// coerceItems copies items with defaults applied. category, when set, overrides an
// empty item category.
func coerceItems(items []entity.Item, category string) []entity.Item {
	out := make([]entity.Item, 0, len(items))
	for _, it := range items {
		it.Name = strings.TrimSpace(it.Name)
		if it.Name == "" {
			continue
		}
		if it.Quantity <= 0 {
			it.Quantity = 1
		}
		if strings.TrimSpace(it.Unit) == "" {
			it.Unit = constants.DefaultUnit
		}
		if strings.TrimSpace(it.Category) == "" {
			it.Category = category
		}
		if it.Category == "" {
			it.Category = string(constants.General)
		}
		out = append(out, it)
	}
	return out
}

func nonBlank(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
