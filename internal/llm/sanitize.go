package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"math"
	"strconv"
	"strings"
)

var (
	topLevelKeys = keySet("artists", "rooms", "categories", "items", "allergies", "contacts", "specialRequirements")
	itemKeys     = keySet("name", "quantity", "unit", "brand", "room", "category", "notes", "mustHave")
	roomKeys     = keySet("id", "name", "description", "items")
	contactKeys  = keySet("name", "role", "email", "phone")

	topLevelSynonyms = map[string]string{
		"artist":               "artists",
		"performers":           "artists",
		"room":                 "rooms",
		"dressing_rooms":       "rooms",
		"dressingRooms":        "rooms",
		"category":             "categories",
		"line_items":           "items",
		"lineItems":            "items",
		"allergens":            "allergies",
		"allergy":              "allergies",
		"contact":              "contacts",
		"special_requirements": "specialRequirements",
		"requirements":         "specialRequirements",
		"special_requests":     "specialRequirements",
	}
	itemSynonyms = map[string]string{
		"item":      "name",
		"title":     "name",
		"qty":       "quantity",
		"count":     "quantity",
		"amount":    "quantity",
		"must_have": "mustHave",
		"musthave":  "mustHave",
		"required":  "mustHave",
		"mandatory": "mustHave",
		"note":      "notes",
		"room_id":   "room",
		"roomId":    "room",
	}
	roomSynonyms = map[string]string{
		"room_id": "id",
		"number":  "id",
		"label":   "name",
		"notes":   "description",
	}
	contactSynonyms = map[string]string{
		"title":     "role",
		"position":  "role",
		"mail":      "email",
		"e-mail":    "email",
		"telephone": "phone",
		"tel":       "phone",
		"mobile":    "phone",
	}
)

// NormalizeAndSanitizeJSON
// - Strips markdown code fences around the JSON
// - Renames known synonyms (qty -> quantity, special_requirements -> specialRequirements)
// - Drops nulls and unknown keys at every level
// - Wraps single values where a list is expected and fills missing top-level lists
// - Coerces numeric strings for quantity, numbers for ids, "true"/"yes" for mustHave
func NormalizeAndSanitizeJSON(raw []byte, logger *slog.Logger) ([]byte, []string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var m map[string]any
	if err := json.Unmarshal(StripCodeFences(raw), &m); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}
	if m == nil {
		return nil, nil, fmt.Errorf("sanitize: decode: not a JSON object")
	}

	s := &sanitizer{}
	s.shape(m, "", topLevelSynonyms, topLevelKeys)

	m["artists"] = s.strings(m["artists"])
	m["allergies"] = s.strings(m["allergies"])
	m["specialRequirements"] = s.strings(m["specialRequirements"])
	m["items"] = s.items(m["items"], "items")
	m["rooms"] = s.rooms(m["rooms"])
	m["contacts"] = s.contacts(m["contacts"])
	m["categories"] = s.categories(m["categories"])

	out, err := json.Marshal(m)
	if err != nil {
		return nil, s.dropped, fmt.Errorf("sanitize: encode: %w", err)
	}
	if len(s.dropped) > 0 {
		logger.Warn("llm.extract.normalize_sanitize", "dropped", s.dropped)
	}
	return out, s.dropped, nil
}

// StripCodeFences removes a ```json ... ``` wrapper and any text around the outer object.
func StripCodeFences(raw []byte) []byte {
	b := bytes.TrimSpace(raw)
	if bytes.HasPrefix(b, []byte("```")) {
		b = b[3:]
		if nl := bytes.IndexByte(b, '\n'); nl >= 0 {
			b = b[nl+1:]
		}
		if end := bytes.LastIndex(b, []byte("```")); end >= 0 {
			b = b[:end]
		}
		b = bytes.TrimSpace(b)
	}
	if len(b) > 0 && b[0] != '{' {
		start := bytes.IndexByte(b, '{')
		end := bytes.LastIndexByte(b, '}')
		if start >= 0 && end > start {
			b = b[start : end+1]
		}
	}
	return b
}

type sanitizer struct {
	dropped []string
}

func (s *sanitizer) note(path, what string) {
	s.dropped = append(s.dropped, path+"("+what+")")
}

// shape renames synonyms, then removes nulls and keys outside allowed.
func (s *sanitizer) shape(m map[string]any, path string, synonyms map[string]string, allowed map[string]struct{}) {
	for from, to := range synonyms {
		v, ok := m[from]
		if !ok {
			continue
		}
		// don't overwrite existing value if already present
		if _, exists := m[to]; !exists {
			m[to] = v
		}
		delete(m, from)
		s.dropped = append(s.dropped, path+from+"->"+to)
	}
	for k, v := range maps.Clone(m) {
		if _, ok := allowed[k]; !ok {
			delete(m, k)
			s.note(path+k, "unknown")
			continue
		}
		if v == nil {
			delete(m, k)
			s.note(path+k, "null")
		}
	}
}

// list wraps a lone value into a slice; nil becomes empty.
func list(v any) []any {
	switch t := v.(type) {
	case nil:
		return []any{}
	case []any:
		return t
	default:
		return []any{t}
	}
}

func (s *sanitizer) strings(v any) []any {
	out := []any{}
	for _, e := range list(v) {
		switch t := e.(type) {
		case nil:
		case string:
			if t = strings.TrimSpace(t); t != "" {
				out = append(out, t)
			}
		case float64:
			out = append(out, strconv.FormatFloat(t, 'f', -1, 64))
		default:
			out = append(out, e)
		}
	}
	return out
}

func (s *sanitizer) items(v any, path string) []any {
	out := []any{}
	for i, e := range list(v) {
		if e == nil {
			continue
		}
		m, ok := e.(map[string]any)
		if !ok {
			// a bare string is an item name
			if name, isStr := e.(string); isStr && strings.TrimSpace(name) != "" {
				out = append(out, map[string]any{"name": strings.TrimSpace(name)})
				continue
			}
			out = append(out, e)
			continue
		}
		p := fmt.Sprintf("%s[%d].", path, i)
		s.shape(m, p, itemSynonyms, itemKeys)
		trimString(m, "name", "unit", "brand", "category", "notes")
		if q, ok := m["quantity"]; ok {
			m["quantity"] = coerceQuantity(q)
		}
		if r, ok := m["room"]; ok {
			m["room"] = idString(r)
		}
		if mh, ok := m["mustHave"]; ok {
			m["mustHave"] = coerceBool(mh)
		}
		out = append(out, m)
	}
	return out
}

func (s *sanitizer) rooms(v any) []any {
	out := []any{}
	for i, e := range list(v) {
		m, ok := e.(map[string]any)
		if !ok {
			out = append(out, e)
			continue
		}
		p := fmt.Sprintf("rooms[%d].", i)
		s.shape(m, p, roomSynonyms, roomKeys)
		if id, ok := m["id"]; ok {
			m["id"] = idString(id)
		}
		trimString(m, "name", "description")
		if _, ok := m["items"]; ok {
			m["items"] = s.items(m["items"], p+"items")
		}
		out = append(out, m)
	}
	return out
}

func (s *sanitizer) contacts(v any) []any {
	out := []any{}
	for i, e := range list(v) {
		m, ok := e.(map[string]any)
		if !ok {
			out = append(out, e)
			continue
		}
		s.shape(m, fmt.Sprintf("contacts[%d].", i), contactSynonyms, contactKeys)
		trimString(m, "name", "role", "email", "phone")
		out = append(out, m)
	}
	return out
}

// categories accepts {"Beverages": [...]} or [{"name": "Beverages", "items": [...]}].
func (s *sanitizer) categories(v any) map[string]any {
	out := map[string]any{}
	switch t := v.(type) {
	case map[string]any:
		for name, items := range t {
			out[name] = s.items(items, "categories."+name)
		}
	case []any:
		for _, e := range t {
			m, ok := e.(map[string]any)
			if !ok {
				continue
			}
			name, _ := m["name"].(string)
			if name == "" {
				name, _ = m["category"].(string)
			}
			if name = strings.TrimSpace(name); name == "" {
				s.note("categories", "unnamed")
				continue
			}
			out[name] = s.items(m["items"], "categories."+name)
		}
	case nil:
	default:
		s.note("categories", "type")
	}
	return out
}

func trimString(m map[string]any, keys ...string) {
	for _, k := range keys {
		if v, ok := m[k].(string); ok {
			m[k] = strings.TrimSpace(v)
		}
	}
}

// coerceQuantity turns 3, 3.0 and "3" into 3. Anything unreadable is left for
// validation to reject.
func coerceQuantity(v any) any {
	switch t := v.(type) {
	case float64:
		if t == math.Trunc(t) {
			return int(t)
		}
	case string:
		s := strings.TrimSpace(t)
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil && f == math.Trunc(f) {
			return int(f)
		}
	}
	return v
}

func coerceBool(v any) any {
	if s, ok := v.(string); ok {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "yes", "y", "1":
			return true
		case "false", "no", "n", "0", "":
			return false
		}
	}
	return v
}

func idString(v any) any {
	switch t := v.(type) {
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case string:
		return strings.TrimSpace(t)
	}
	return v
}

func keySet(keys ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		m[k] = struct{}{}
	}
	return m
}
