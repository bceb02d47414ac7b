package normalize

import (
	"regexp"
	"strings"
)

var (
	reCRLF       = regexp.MustCompile(`\r\n?`)
	reHSpace     = regexp.MustCompile(`[ \t\f\v\x{00A0}]+`)
	reTrailSpace = regexp.MustCompile(`(?m) +$`)
	reMultiBlank = regexp.MustCompile(`\n{3,}`)
)

// Text collapses noisy whitespace left by OCR and PDF extraction.
// Line breaks are kept; more than one blank line in a row becomes a single blank line.
// Normalizing already normalized text returns it unchanged.
func Text(s string) string {
	if s == "" {
		return s
	}
	s = reCRLF.ReplaceAllString(s, "\n")
	s = reHSpace.ReplaceAllString(s, " ")
	// trim trailing spaces on lines before counting blank lines,
	// otherwise " \n \n" survives the first pass
	s = reTrailSpace.ReplaceAllString(s, "")
	s = reMultiBlank.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// Lines splits normalized text into lines.
func Lines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
