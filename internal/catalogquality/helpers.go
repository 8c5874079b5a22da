package catalogquality

import (
	"strings"
	"unicode"
)

// NormalizeText lowercases text, strips punctuation, and collapses whitespace.
func NormalizeText(value string) string {
	fields := strings.FieldsFunc(strings.ToLower(value), func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	})
	return strings.Join(fields, " ")
}

// ContainsAnyPhrase reports whether value contains one of phrases as whole
// words after normalization.
func ContainsAnyPhrase(value string, phrases []string) bool {
	normalized := NormalizeText(value)
	if normalized == "" {
		return false
	}
	bounded := " " + normalized + " "
	for _, phrase := range phrases {
		p := NormalizeText(phrase)
		if p != "" && strings.Contains(bounded, " "+p+" ") {
			return true
		}
	}
	return false
}

func wordCount(value string) int {
	return len(strings.Fields(NormalizeText(value)))
}

func containsDigit(value string) bool {
	return strings.IndexFunc(value, unicode.IsDigit) >= 0
}
