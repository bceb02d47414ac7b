package llm

// BuildRiderJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a generic map.
// We pass it to providers that accept a structured output hint and use it locally to validate.
func BuildRiderJSONSchema() map[string]any {
	item := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"name":     map[string]any{"type": "string", "minLength": 1},
			"quantity": map[string]any{"type": "integer", "minimum": 1},
			"unit":     map[string]any{"type": "string"},
			"brand":    map[string]any{"type": "string"},
			"room":     map[string]any{"type": "string"},
			"category": map[string]any{"type": "string"},
			"notes":    map[string]any{"type": "string"},
			"mustHave": map[string]any{"type": "boolean"},
		},
		"required": []string{"name"},
	}
	items := map[string]any{"type": "array", "items": item}

	room := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"id":          map[string]any{"type": "string", "minLength": 1},
			"name":        map[string]any{"type": "string"},
			"description": map[string]any{"type": "string"},
			"items":       items,
		},
		"required": []string{"id"},
	}

	contact := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"name":  map[string]any{"type": "string", "minLength": 1},
			"role":  map[string]any{"type": "string"},
			"email": map[string]any{"type": "string"},
			"phone": map[string]any{"type": "string"},
		},
		"required": []string{"name"},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"artists":             stringList(),
			"rooms":               map[string]any{"type": "array", "items": room},
			"categories":          map[string]any{"type": "object", "additionalProperties": items},
			"items":               items,
			"allergies":           stringList(),
			"contacts":            map[string]any{"type": "array", "items": contact},
			"specialRequirements": stringList(),
		},
		"required": []string{"items"},
	}
}

func stringList() map[string]any {
	return map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "string"},
	}
}
