package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SanitizeOptionalFields repairs a sanitized document that still fails the schema.
// Entries without their required key (item/contact name, room id) are dropped,
// optional fields of the wrong type are removed and bad quantities become 1.
func SanitizeOptionalFields(doc []byte) ([]byte, []string, error) {
	var m map[string]any
	if err := json.Unmarshal(doc, &m); err != nil {
		return nil, nil, err
	}

	l := &lenient{}
	for _, k := range []string{"artists", "allergies", "specialRequirements"} {
		m[k] = l.strings(m[k], k)
	}
	m["items"] = l.items(m["items"], "items")

	var rooms []any
	for i, e := range asList(m["rooms"]) {
		r, ok := e.(map[string]any)
		path := fmt.Sprintf("rooms[%d]", i)
		if !ok || !nonEmptyString(r["id"]) {
			l.drop(path)
			continue
		}
		l.optionalStrings(r, path, "name", "description")
		if _, has := r["items"]; has {
			r["items"] = l.items(r["items"], path+".items")
		}
		rooms = append(rooms, r)
	}
	m["rooms"] = orEmpty(rooms)

	var contacts []any
	for i, e := range asList(m["contacts"]) {
		c, ok := e.(map[string]any)
		path := fmt.Sprintf("contacts[%d]", i)
		if !ok || !nonEmptyString(c["name"]) {
			l.drop(path)
			continue
		}
		l.optionalStrings(c, path, "role", "email", "phone")
		contacts = append(contacts, c)
	}
	m["contacts"] = orEmpty(contacts)

	cats, ok := m["categories"].(map[string]any)
	if !ok {
		if _, present := m["categories"]; present {
			l.drop("categories")
		}
		cats = map[string]any{}
	}
	for name, items := range cats {
		cats[name] = l.items(items, "categories."+name)
	}
	m["categories"] = cats

	b, err := json.Marshal(m)
	if err != nil {
		return nil, nil, err
	}
	return b, l.dropped, nil
}

type lenient struct {
	dropped []string
}

func (l *lenient) drop(path string) {
	l.dropped = append(l.dropped, path)
}

func (l *lenient) strings(v any, path string) []any {
	var out []any
	for i, e := range asList(v) {
		if !nonEmptyString(e) {
			l.drop(fmt.Sprintf("%s[%d]", path, i))
			continue
		}
		out = append(out, e)
	}
	return orEmpty(out)
}

func (l *lenient) items(v any, path string) []any {
	var out []any
	for i, e := range asList(v) {
		it, ok := e.(map[string]any)
		p := fmt.Sprintf("%s[%d]", path, i)
		if !ok || !nonEmptyString(it["name"]) {
			l.drop(p)
			continue
		}
		if q, has := it["quantity"]; has {
			if n, isNum := q.(float64); !isNum || n < 1 || n != float64(int(n)) {
				it["quantity"] = 1
				l.drop(p + ".quantity")
			}
		}
		if mh, has := it["mustHave"]; has {
			if _, isBool := mh.(bool); !isBool {
				delete(it, "mustHave")
				l.drop(p + ".mustHave")
			}
		}
		l.optionalStrings(it, p, "unit", "brand", "room", "category", "notes")
		out = append(out, it)
	}
	return orEmpty(out)
}

func (l *lenient) optionalStrings(m map[string]any, path string, keys ...string) {
	for _, k := range keys {
		v, has := m[k]
		if !has {
			continue
		}
		if _, ok := v.(string); !ok {
			delete(m, k)
			l.drop(path + "." + k)
		}
	}
}

func asList(v any) []any {
	if l, ok := v.([]any); ok {
		return l
	}
	return nil
}

func orEmpty(l []any) []any {
	if l == nil {
		return []any{}
	}
	return l
}

func nonEmptyString(v any) bool {
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) != ""
}
