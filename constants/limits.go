package constants

// Engine defaults. Each is overridable through the engine config section.
const (
	DefaultMinArtistLength          = 3
	DefaultMinItemNameLength        = 2
	DefaultMaxCategoryLength        = 30
	DefaultContactWindowBefore      = 100
	DefaultContactWindowAfter       = 200
	DefaultAllergyMaxLength         = 100
	DefaultAllergyVerbatimMaxLength = 50
	DefaultMustHaveLookahead        = 100

	DefaultUnit = "item"
)
