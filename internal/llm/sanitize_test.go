package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAndSanitizeJSON(t *testing.T) {
	raw := "```json\n" + `{
  "requirements": "Stage at 68F",
  "line_items": [{"item": "Water", "qty": "6", "must_have": "yes", "room_id": 2, "extra": 1}],
  "allergens": ["peanuts", null],
  "rooms": [{"number": 2, "label": "Dressing Room 2"}],
  "contacts": {"name": " Jane ", "title": "TM"},
  "categories": [{"name": "Beverages", "items": ["Water"]}],
  "junk": true
}` + "\n```"

	out, dropped, err := NormalizeAndSanitizeJSON([]byte(raw), nil)
	require.NoError(t, err)

	assert.JSONEq(t, `{
  "artists": [],
  "allergies": ["peanuts"],
  "specialRequirements": ["Stage at 68F"],
  "items": [{"name": "Water", "quantity": 6, "mustHave": true, "room": "2"}],
  "rooms": [{"id": "2", "name": "Dressing Room 2"}],
  "contacts": [{"name": "Jane", "role": "TM"}],
  "categories": {"Beverages": [{"name": "Water"}]}
}`, string(out))

	assert.Contains(t, dropped, "line_items->items")
	assert.Contains(t, dropped, "junk(unknown)")
	assert.Contains(t, dropped, "items[0].extra(unknown)")
	require.NoError(t, ValidateJSONAgainstSchema(BuildRiderJSONSchema(), out))
}

func TestNormalizeAndSanitizeJSON_NotAnObject(t *testing.T) {
	for _, raw := range []string{`[1,2]`, `null`, `not json`} {
		_, _, err := NormalizeAndSanitizeJSON([]byte(raw), nil)
		assert.Error(t, err, raw)
	}
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"items":[]}`, `{"items":[]}`},
		{"fenced", "```json\n{\"items\":[]}\n```", `{"items":[]}`},
		{"bare fence", "```\n{\"items\":[]}\n```", `{"items":[]}`},
		{"prose around", `Here you go: {"items":[]} thanks`, `{"items":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(StripCodeFences([]byte(tt.in))))
		})
	}
}

func TestCoerceQuantity(t *testing.T) {
	assert.Equal(t, 3, coerceQuantity(float64(3)))
	assert.Equal(t, 3, coerceQuantity(" 3 "))
	assert.Equal(t, 4, coerceQuantity("4.0"))
	assert.Equal(t, 2.5, coerceQuantity(2.5))
	assert.Equal(t, "lots", coerceQuantity("lots"))
}
