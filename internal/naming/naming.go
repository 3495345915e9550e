// Package naming converts schema identifiers between the casing conventions
// used by the generated languages.
package naming

import (
	"strings"
	"unicode"
)

// Capitalize upper-cases the first letter of s.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// LowerFirst lower-cases the first letter of s.
func LowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// Words splits an identifier into its words. Underscores, dashes and spaces
// separate words, and so do case changes: "apiLevel" is [api Level],
// "DeviceInfoIOS" is [Device Info IOS] and "HTTPServer" is [HTTP Server].
func Words(s string) []string {
	var words []string
	runes := []rune(s)
	start := -1
	flush := func(end int) {
		if start >= 0 && end > start {
			words = append(words, string(runes[start:end]))
		}
		start = -1
	}
	for i, r := range runes {
		if r == '_' || r == '-' || r == ' ' {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
			continue
		}
		prev := runes[i-1]
		switch {
		case unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)):
			flush(i)
			start = i
		case unicode.IsUpper(r) && unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
			flush(i)
			start = i
		}
	}
	flush(len(runes))
	return words
}

// SnakeCase converts CamelCase, PascalCase or SCREAMING_SNAKE input to snake_case.
func SnakeCase(s string) string {
	return strings.ToLower(strings.Join(Words(s), "_"))
}

// ScreamingSnakeCase converts s to SCREAMING_SNAKE_CASE.
func ScreamingSnakeCase(s string) string {
	return strings.ToUpper(strings.Join(Words(s), "_"))
}

// CamelCase converts s to lowerCamelCase. Words that are entirely upper case,
// as in enum values, are folded: "IN_PROGRESS" becomes "inProgress".
func CamelCase(s string) string {
	return LowerFirst(PascalCase(s))
}

// PascalCase converts s to UpperCamelCase.
func PascalCase(s string) string {
	var b strings.Builder
	for _, word := range Words(s) {
		if isUpper(word) {
			word = strings.ToLower(word)
		}
		b.WriteString(Capitalize(word))
	}
	return b.String()
}

func isUpper(s string) bool {
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
	}
	return true
}
