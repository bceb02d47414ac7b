package constants

import "strings"

// AllowedExtensions holds the text file extensions the CLI accepts as rider input.
var AllowedExtensions = map[string]struct{}{
	"txt":  {},
	"text": {},
	"md":   {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsAllowedExt reports whether ext (with or without the dot) is accepted.
func IsAllowedExt(ext string) bool {
	_, ok := AllowedExtensions[NormalizeExt(ext)]
	return ok
}
