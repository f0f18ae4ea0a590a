package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeText collapses whitespace runs into single spaces and trims
// the ends. Portal markup is full of stray newlines and tab indentation.
func NormalizeText(s string) string {
	s = whitespaceRegex.ReplaceAllString(s, " ")
	return strings.Trim(s, " ")
}

// NormalizeLabel prepares a table-row label for matching: collapsed
// whitespace, no trailing colon, lowercased.
func NormalizeLabel(s string) string {
	s = NormalizeText(s)
	s = strings.TrimSuffix(s, ":")
	return strings.ToLower(s)
}

// PickFirst returns the first candidate whose normalized form is
// non-empty, or "" when every candidate is blank. Extractors use this to
// degrade across markup variants of the same logical page.
func PickFirst(candidates ...string) string {
	for _, c := range candidates {
		c = NormalizeText(c)
		if c != "" {
			return c
		}
	}
	return ""
}

// CapitalizeName turns the portal's shouting-case names into
// word-capitalized form.
func CapitalizeName(name string) string {
	words := strings.Split(NormalizeText(name), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		runes := []rune(strings.ToLower(w))
		runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
