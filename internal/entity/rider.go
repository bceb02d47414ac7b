package entity

// StructuredRider is the result of one parse. Every parse builds a fresh tree;
// nothing here is shared between two riders.
type StructuredRider struct {
	Artists             []string          `json:"artists" yaml:"artists"`
	Rooms               []*Room           `json:"rooms" yaml:"rooms"`
	Categories          map[string][]Item `json:"categories" yaml:"categories"`
	Items               []Item            `json:"items" yaml:"items"`
	Allergies           []string          `json:"allergies" yaml:"allergies"`
	Contacts            []Contact         `json:"contacts" yaml:"contacts"`
	SpecialRequirements []string          `json:"specialRequirements" yaml:"specialRequirements"`
}

// Room is a dressing room or numbered room found in the document.
type Room struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Description *string `json:"description,omitempty" yaml:"description,omitempty"`
	Items       []Item  `json:"items" yaml:"items"`
}

// Item is one requested line. Room holds the id of a Room, not the Room itself.
type Item struct {
	Name     string  `json:"name" yaml:"name"`
	Quantity int     `json:"quantity" yaml:"quantity"`
	Unit     string  `json:"unit" yaml:"unit"`
	Brand    *string `json:"brand,omitempty" yaml:"brand,omitempty"`
	Room     *string `json:"room,omitempty" yaml:"room,omitempty"`
	Category string  `json:"category" yaml:"category"`
	Notes    *string `json:"notes,omitempty" yaml:"notes,omitempty"`
	MustHave bool    `json:"mustHave" yaml:"mustHave"`
}

// Contact is a named person with whatever email/phone sat near the name.
type Contact struct {
	Name  string  `json:"name" yaml:"name"`
	Role  string  `json:"role" yaml:"role"`
	Email *string `json:"email,omitempty" yaml:"email,omitempty"`
	Phone *string `json:"phone,omitempty" yaml:"phone,omitempty"`
}

// NewStructuredRider returns a rider with every collection allocated.
func NewStructuredRider() *StructuredRider {
	return &StructuredRider{
		Artists:             []string{},
		Rooms:               []*Room{},
		Categories:          map[string][]Item{},
		Items:               []Item{},
		Allergies:           []string{},
		Contacts:            []Contact{},
		SpecialRequirements: []string{},
	}
}

// RoomByID resolves an item's room reference. Returns nil when no room has that id.
func (r *StructuredRider) RoomByID(id string) *Room {
	if r == nil || id == "" {
		return nil
	}
	for _, room := range r.Rooms {
		if room != nil && room.ID == id {
			return room
		}
	}
	return nil
}

// IsEmpty reports whether no facet produced anything.
func (r *StructuredRider) IsEmpty() bool {
	if r == nil {
		return true
	}
	return len(r.Artists) == 0 && len(r.Rooms) == 0 && len(r.Categories) == 0 &&
		len(r.Items) == 0 && len(r.Allergies) == 0 && len(r.Contacts) == 0 &&
		len(r.SpecialRequirements) == 0
}

// RoomID returns the referenced room id or "".
func (i Item) RoomID() string {
	if i.Room == nil {
		return ""
	}
	return *i.Room
}
