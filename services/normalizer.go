package services

import (
	"regexp"
	"strings"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	ligatures = strings.NewReplacer(
		"ﬁ", "fi",
		"ﬂ", "fl",
		"ﬀ", "ff",
		"ﬃ", "ffi",
		"ﬄ", "ffl",
		"ﬆ", "st",
	)
	// Tabs, NBSP und Zeilenumbrüche zählen als ein Leerzeichen
	spaceRE = regexp.MustCompile(`[\s\x{00A0}]+`)
)

// NormalizeTerm bereitet einen Suchbegriff auf: NFC, Ligaturen aufgelöst,
// Whitespace zusammengefasst.
func NormalizeTerm(s string) string {
	s = ligatures.Replace(s)
	normalized, _, err := transform.String(norm.NFC, s)
	if err != nil {
		normalized = s
	}
	return strings.TrimSpace(spaceRE.ReplaceAllString(normalized, " "))
}
