package constants

// Source names the path that produced a StructuredRider.
type Source string

// Stable values (logged and surfaced by the CLI).
const (
	SourceExternal Source = "EXTERNAL" // optional model-backed extractor returned items
	SourceRules    Source = "RULES"    // deterministic pattern engine
)
