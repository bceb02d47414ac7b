package patterns

import (
	"regexp"

	"github.com/joseph-ayodele/rider-parser/constants"
)

// ArtistRules capture candidate act names. Order matters only for output order.
var ArtistRules = []Rule{
	{
		Kind:    KindArtist,
		Name:    "label",
		Pattern: regexp.MustCompile(`(?i)\b(?:artist|performer|talent|act)[ \t]*[:\-][ \t]*([^\n]+)`),
	},
	{
		Kind:    KindArtist,
		Name:    "tour_or_rider_suffix",
		Pattern: regexp.MustCompile(`(?im)^[ \t]*([A-Za-z0-9&'.\- ]+?)[ \t]+(?:tour|rider)\b`),
	},
	{
		Kind:    KindArtist,
		Name:    "for_featuring_presents",
		Pattern: regexp.MustCompile(`\b(?:[Ff]or|[Ff]eaturing|[Pp]resents)[ \t]+([A-Z][\w&'.\-]*(?:[ \t]+[A-Z][\w&'.\-]*)*)`),
	},
	{
		Kind:    KindArtist,
		Name:    "dressing_room_description",
		Pattern: regexp.MustCompile(`(?i:dressing[ \t]+room)[ \t]+(?:[0-9]+|[A-Z])\b[ \t]*[-–—:][ \t]*([^\n]+)`),
	},
}

// RoomRules capture a room id (group 1) and an optional description (group 2).
// Label is the fmt pattern for the room name.
var RoomRules = []Rule{
	{
		Kind:    KindRoom,
		Name:    "dressing_room",
		Pattern: regexp.MustCompile(`\b(?i:dressing[ \t]+room)[ \t]+([0-9]+|[A-Z])\b(?:[ \t]*[-–—:][ \t]*([^\n]*))?`),
		Label:   "Dressing Room %s",
	},
	{
		Kind:    KindRoom,
		Name:    "room",
		Pattern: regexp.MustCompile(`\b(?i:room)[ \t]+([0-9]+|[A-Z])\b(?:[ \t]*[-–—:][ \t]*([^\n]*))?`),
		Label:   "Room %s",
	},
}

// ContactRules capture a capitalized person name after a role label.
var ContactRules = []Rule{
	{
		Kind: KindContact,
		Name: "role_label",
		Pattern: regexp.MustCompile(`\b(?i:tour[ \t]+manager|production[ \t]+manager|stage[ \t]+manager|manager|contact|advance)` +
			`[ \t]*[:\-][ \t]*([A-Z][a-zA-Z'\-]*(?:[ \t]+[A-Z][a-zA-Z'\-]*){0,3})`),
	},
}

var (
	EmailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	PhonePattern = regexp.MustCompile(`(?:\+?\d{1,3}[ .\-]?)?\(?\d{3}\)?[ .\-]?\d{3}[ .\-]?\d{4}`)
)

// AllergyRules capture free text that may name allergens.
var AllergyRules = []Rule{
	{
		Kind:    KindAllergy,
		Name:    "allergy_label",
		Pattern: regexp.MustCompile(`(?i)\ballerg(?:y|ies|ic)(?:[ \t]+to)?[ \t]*[:\-]?[ \t]*([^\n]+)`),
	},
	{
		Kind:    KindAllergy,
		Name:    "avoid_allergen",
		Pattern: regexp.MustCompile(`(?i)\b(?:no|avoid|without)[ \t]+((?:` + allergenAlternation + `)\b[^\n.;!]*)`),
	},
	{
		Kind:    KindAllergy,
		Name:    "dietary_restriction",
		Pattern: regexp.MustCompile(`(?i)\b(?:dietary[ \t]+restrictions?|intoleran(?:ce|t)(?:[ \t]+to)?)[ \t]*[:\-]?[ \t]*([^\n]+)`),
	},
	{
		Kind:    KindAllergy,
		Name:    "allergen_before_allergy",
		Pattern: regexp.MustCompile(`(?i)\b(` + allergenAlternation + `|nut)[ \t]+allerg(?:y|ies)\b`),
	},
}

// NoAllergyPattern matches captured allergy text that declares there is nothing to report.
var NoAllergyPattern = regexp.MustCompile(`(?i)^(?:none(?:[ \t]+known)?|nil|nothing|n[ \t]?a|no|not[ \t]+applicable|no[ \t]+known(?:[ \t]+allergies)?)$`)

// MustHavePattern flags mandatory wording anywhere in a line.
var MustHavePattern = regexp.MustCompile(`(?i)\b(?:must[ \t]+have|must-have|required|requirement|mandatory|essential|non[ \t\-]?negotiable)\b`)

// RequirementRules feed the special requirements facet, emitted in this order.
var RequirementRules = []Rule{
	{
		Kind:    KindTemperature,
		Name:    "temperature",
		Pattern: regexp.MustCompile(`(?i)(\d{1,3})[ \t]*(?:°|º|degrees?)[ \t]*([CF])\b`),
		Label:   "Temperature: %s°%s",
	},
	{
		Kind: KindTiming,
		Name: "timing",
		Pattern: regexp.MustCompile(`(?i)\b(?:load[ \t\-]?in|sound[ \t]?check|doors|set[ \t]+time|curfew|call[ \t]+time|changeover)` +
			`(?:[ \t]+opens?)?[ \t]*[:\-@]?[ \t]*(?:at[ \t]+)?\d{1,2}(?::\d{2})?(?:[ \t]*[ap]\.?m\b\.?)?`),
		Label: "Timing: %s",
	},
	{
		Kind:    KindMustHave,
		Name:    "must_have",
		Pattern: MustHavePattern,
		Label:   "Must Have: %s",
	},
}

// MustHaveSubject picks the first run of letters and spaces after a must-have keyword.
var MustHaveSubject = regexp.MustCompile(`[A-Za-z][A-Za-z ]*`)

// CategoryHeaderRules match a whole line that is only a category label.
var CategoryHeaderRules = []Rule{
	{
		Kind: KindCategory,
		Name: "header_line",
		Pattern: regexp.MustCompile(`(?i)^[ \t]*(?:[#=*\-]+[ \t]*)?` +
			`(beverages?|drinks?|bar|food|catering|meals|snacks|hospitality|equipment|backline|gear|technical|tech|audio|lighting|` +
			`towels|linens|transportation|transport|hotels?|accommodations?|security|merch(?:andise)?|wardrobe|green[ \t]+room|misc(?:ellaneous)?|other)` +
			`[ \t]*:?[ \t]*(?:[#=*\-]+)?[ \t]*$`),
	},
}

// CategoryKeywordRules mark a line as a header when it contains a heading phrase.
// Label is the standard category.
var CategoryKeywordRules = []Rule{
	keyword("hospitality rider", constants.Hospitality),
	keyword("hospitality requirements", constants.Hospitality),
	keyword("catering rider", constants.Catering),
	keyword("catering requirements", constants.Catering),
	keyword("beverage requirements", constants.Beverages),
	keyword("drink requirements", constants.Beverages),
	keyword("technical rider", constants.Technical),
	keyword("technical requirements", constants.Technical),
	keyword("tech rider", constants.Technical),
	keyword("stage plot", constants.Technical),
	keyword("input list", constants.Technical),
	keyword("backline requirements", constants.Equipment),
	keyword("ground transportation", constants.Transportation),
	keyword("hotel accommodations", constants.Accommodation),
	keyword("accommodation requirements", constants.Accommodation),
	keyword("security requirements", constants.Security),
	keyword("wardrobe requirements", constants.Wardrobe),
	keyword("merchandise", constants.Merchandise),
}

func keyword(phrase string, cat constants.Category) Rule {
	return Rule{
		Kind:    KindCategory,
		Name:    "keyword:" + phrase,
		Pattern: regexp.MustCompile(`(?i)\b` + spaced(phrase) + `\b`),
		Label:   string(cat),
	}
}

// spaced lets a literal phrase match any run of spaces or tabs between its words.
func spaced(phrase string) string {
	return regexp.MustCompile(` +`).ReplaceAllString(regexp.QuoteMeta(phrase), `[ \t]+`)
}

// AllCapsHeader matches a short line of capitals, spaces and ampersands.
var AllCapsHeader = regexp.MustCompile(`^[A-Z][A-Z &]*:?$`)

// UnitRules infer a unit from an item name. First match wins.
var UnitRules = []Rule{
	unit("bottle", `bottles?`),
	unit("can", `cans?`),
	unit("case", `cases?`),
	unit("pack", `packs?|\d+[ \-]?pack`),
	unit("box", `box(?:es)?`),
	unit("bag", `bags?`),
	unit("dozen", `dozens?`),
	unit("pound", `pounds?|lbs?`),
	unit("gallon", `gallons?|gal`),
	unit("liter", `liters?|litres?|ltrs?`),
}

func unit(name, alt string) Rule {
	return Rule{
		Kind:    KindUnit,
		Name:    name,
		Pattern: regexp.MustCompile(`(?i)\b(?:` + alt + `)\b`),
		Label:   name,
	}
}
