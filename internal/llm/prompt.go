package llm

import (
	"strings"

	"github.com/joseph-ayodele/rider-parser/constants"
	"github.com/joseph-ayodele/rider-parser/internal/utils"
)

// BuildSystemPrompt composes the system message: output shape, category enum and
// formatting rules.
func BuildSystemPrompt() string {
	parts := []string{
		"You are an event rider parser. Riders are the hospitality and technical requirement documents artists send to venues.",
		"Return ONLY a JSON object that matches the provided JSON Schema. No prose, no markdown fences.",
		"Top-level keys: artists, rooms, categories, items, allergies, contacts, specialRequirements.",
		"Every requested thing goes into 'items' with a name, an integer quantity (default 1) and a category.",
		"Prefer these categories: " + strings.Join(constants.AsStringSlice(), ", ") + ". Use a short title-case label if none fits.",
		"When an item belongs to a dressing room, set its 'room' to the room id (for 'Dressing Room 2' the id is \"2\") and list the room under 'rooms'.",
		"Set mustHave to true only when the rider marks the item as mandatory (must have, required, essential).",
		"Put allergens and dietary restrictions in 'allergies' as short phrases.",
		"Put temperatures, timings and other non-item demands in 'specialRequirements'.",
		"Never output null. If a field is not present, omit it.",
	}
	return strings.Join(parts, " ")
}

// BuildUserPrompt packages the rider text, truncated to maxChars bytes.
func BuildUserPrompt(text string, maxChars int) string {
	text = strings.TrimSpace(text)

	var b strings.Builder
	b.WriteString("Rider text:\n")
	if maxChars > 0 && len(text) > maxChars {
		b.WriteString(utils.Truncate(text, maxChars))
		b.WriteString("\n…(truncated)")
	} else {
		b.WriteString(text)
	}
	return b.String()
}
