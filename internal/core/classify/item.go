package classify

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/joseph-ayodele/rider-parser/constants"
	"github.com/joseph-ayodele/rider-parser/internal/entity"
	"github.com/joseph-ayodele/rider-parser/internal/patterns"
	"github.com/joseph-ayodele/rider-parser/internal/utils"
)

// BuildItem parses one item line under state s. ok is false when the line has no
// usable name.
func (c *Classifier) BuildItem(line string, s State) (entity.Item, bool) {
	g := patterns.ItemPattern.FindStringSubmatch(line)
	if g == nil {
		return entity.Item{}, false
	}

	name := utils.CollapseSpaces(g[patterns.ItemGroupName])
	if runeCount(name) < c.opts.MinItemNameLength || !hasAlnum(name) {
		return entity.Item{}, false
	}

	return entity.Item{
		Name:     name,
		Quantity: quantity(g),
		Unit:     Unit(name),
		Brand:    utils.StrPtr(Brand(name)),
		Room:     utils.StrPtr(s.Room),
		Category: s.Category,
		Notes:    utils.StrPtr(utils.CollapseSpaces(g[patterns.ItemGroupNote])),
		MustHave: patterns.MustHavePattern.MatchString(line),
	}, true
}

// quantity applies parenthetical > leading number > leading word > 1.
func quantity(g []string) int {
	n := 1
	switch {
	case g[patterns.ItemGroupParen] != "":
		n = atoiOr(g[patterns.ItemGroupParen], 1)
	case g[patterns.ItemGroupNumber] != "":
		n = atoiOr(g[patterns.ItemGroupNumber], 1)
	case g[patterns.ItemGroupWord] != "":
		n = patterns.QuantityWord(g[patterns.ItemGroupWord])
	}
	if n <= 0 {
		return 1
	}
	return n
}

func atoiOr(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// Unit infers the unit from an item name, defaulting to "item".
func Unit(name string) string {
	if m, ok := patterns.First(patterns.UnitRules, name); ok {
		return m.Rule.Label
	}
	return constants.DefaultUnit
}

// Brand returns the first known brand contained in name, or "".
func Brand(name string) string {
	lower := strings.ToLower(name)
	for _, b := range patterns.Brands {
		if strings.Contains(lower, strings.ToLower(b)) {
			return b
		}
	}
	return ""
}

func hasAlnum(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
