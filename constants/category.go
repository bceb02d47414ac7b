package constants

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type Category string

const (
	General        Category = "General"
	Beverages      Category = "Beverages"
	Catering       Category = "Catering"
	Hospitality    Category = "Hospitality"
	Equipment      Category = "Equipment"
	Technical      Category = "Technical"
	Towels         Category = "Towels"
	Transportation Category = "Transportation"
	Accommodation  Category = "Accommodation"
	Security       Category = "Security"
	Merchandise    Category = "Merchandise"
	Wardrobe       Category = "Wardrobe"
	GreenRoom      Category = "Green Room"
	Miscellaneous  Category = "Miscellaneous"
)

var allCategories = []Category{
	General,
	Beverages,
	Catering,
	Hospitality,
	Equipment,
	Technical,
	Towels,
	Transportation,
	Accommodation,
	Security,
	Merchandise,
	Wardrobe,
	GreenRoom,
	Miscellaneous,
}

// aliases maps lowercased header labels to the standard category name.
var aliases = map[string]Category{
	"beverage":       Beverages,
	"beverages":      Beverages,
	"drinks":         Beverages,
	"drink":          Beverages,
	"bar":            Beverages,
	"alcohol":        Beverages,
	"food":           Catering,
	"catering":       Catering,
	"meals":          Catering,
	"snacks":         Catering,
	"hospitality":    Hospitality,
	"equipment":      Equipment,
	"backline":       Equipment,
	"gear":           Equipment,
	"audio":          Technical,
	"lighting":       Technical,
	"technical":      Technical,
	"tech":           Technical,
	"towels":         Towels,
	"linens":         Towels,
	"transportation": Transportation,
	"transport":      Transportation,
	"hotel":          Accommodation,
	"hotels":         Accommodation,
	"accommodation":  Accommodation,
	"accommodations": Accommodation,
	"security":       Security,
	"merch":          Merchandise,
	"merchandise":    Merchandise,
	"wardrobe":       Wardrobe,
	"green room":     GreenRoom,
	"misc":           Miscellaneous,
	"miscellaneous":  Miscellaneous,
	"other":          Miscellaneous,
}

func AsStringSlice() []string {
	result := make([]string, len(allCategories))
	for i, cat := range allCategories {
		result[i] = string(cat)
	}
	return result
}

// Canonicalize maps a raw header label to its standard category name.
// Unknown labels are lowercased and capitalized on the first letter; ok reports
// whether the label was a known alias.
func Canonicalize(input string) (Category, bool) {
	normalized := strings.ToLower(strings.Join(strings.Fields(input), " "))
	normalized = strings.TrimRight(normalized, ":")
	normalized = strings.TrimSpace(normalized)
	if normalized == "" {
		return General, false
	}

	if cat, ok := aliases[normalized]; ok {
		return cat, true
	}

	return Category(capitalizeFirst(normalized)), false
}

func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
