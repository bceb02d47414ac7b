package patterns

import (
	"regexp"
	"strings"
)

// AllergenVocabulary is checked by case-insensitive containment against cleaned
// allergy text. Every contained term is reported.
var AllergenVocabulary = []string{
	"peanuts",
	"tree nuts",
	"nuts",
	"shellfish",
	"fish",
	"dairy",
	"milk",
	"lactose",
	"gluten",
	"wheat",
	"soy",
	"eggs",
	"sesame",
	"mushrooms",
	"strawberries",
	"citrus",
	"latex",
	"pollen",
}

// allergenAlternation is the regex form of the vocabulary used by the allergy rules.
const allergenAlternation = `peanuts?|tree[ \t]+nuts|nuts|shellfish|fish|dairy|milk|lactose|gluten|wheat|soy|eggs?|sesame|` +
	`mushrooms?|strawberr(?:y|ies)|citrus|latex|pollen`

// Brands is checked in order; multi-word and more specific names come first.
var Brands = []string{
	"Red Bull",
	"Coca-Cola",
	"Diet Coke",
	"Coke Zero",
	"Coke",
	"Pepsi",
	"Sprite",
	"Heineken",
	"Corona",
	"Stella Artois",
	"Budweiser",
	"Modelo",
	"Jameson",
	"Jack Daniels",
	"Grey Goose",
	"Tito's",
	"Patron",
	"Perrier",
	"San Pellegrino",
	"Evian",
	"Smartwater",
	"LaCroix",
	"Gatorade",
	"Monster",
}

// QuantityWords resolves written quantities. Words captured as quantities but
// missing here ("some", "several", "a few") resolve to 1.
var QuantityWords = map[string]int{
	"one":          1,
	"two":          2,
	"three":        3,
	"four":         4,
	"five":         5,
	"six":          6,
	"seven":        7,
	"eight":        8,
	"nine":         9,
	"ten":          10,
	"eleven":       11,
	"twelve":       12,
	"dozen":        12,
	"a dozen":      12,
	"half dozen":   6,
	"half a dozen": 6,
}

// quantityWordAlternation lists longer phrases first so they win the alternation.
const quantityWordAlternation = `half[ \t]+a[ \t]+dozen|half[ \t]+dozen|a[ \t]+dozen|a[ \t]+few|a[ \t]+couple(?:[ \t]+of)?|couple(?:[ \t]+of)?|` +
	`one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve|dozen|some|several|few|an|a`

// ItemPattern splits an item line. Groups:
//
//	1 leading number, 2 leading quantity word, 3 parenthetical quantity,
//	4 name, 5 trailing note after a spaced dash
var ItemPattern = regexp.MustCompile(`(?i)^[ \t]*(?:(?:[\-*•·▪◦>]|\d{1,2}[.)])[ \t]+)?` +
	`(?:(\d+)(?:[ \t]*x)?[ \t]+|(` + quantityWordAlternation + `)[ \t]+)?` +
	`(?:\((\d+)\)[ \t]*)?` +
	`(?:of[ \t]+)?` +
	`(.+?)` +
	`(?:[ \t]+[\-–—][ \t]+(.+?))?[ \t]*$`)

const (
	ItemGroupNumber = 1
	ItemGroupWord   = 2
	ItemGroupParen  = 3
	ItemGroupName   = 4
	ItemGroupNote   = 5
)

// QuantityWord resolves a captured quantity word, defaulting to 1.
func QuantityWord(word string) int {
	w := strings.ToLower(strings.Join(strings.Fields(word), " "))
	if n, ok := QuantityWords[w]; ok {
		return n
	}
	return 1
}
