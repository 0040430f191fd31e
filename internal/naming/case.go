package naming

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PascalCase splits s on underscores and upper-cases the first rune of each
// word with full Unicode case mapping, so a leading "ß" becomes "SS".
// Empty words are dropped; the rest of each word is left untouched.
func PascalCase(s string) string {
	// A Caser keeps state and must not be shared across goroutines.
	upper := cases.Upper(language.Und)
	var b strings.Builder
	b.Grow(len(s))
	for _, word := range strings.Split(s, "_") {
		if word == "" {
			continue
		}
		_, size := utf8.DecodeRuneInString(word)
		b.WriteString(upper.String(word[:size]))
		b.WriteString(word[size:])
	}
	return b.String()
}

// SnakeCase turns hyphens and spaces into underscores, leaving every other
// rune as typed.
func SnakeCase(s string) string {
	return strings.NewReplacer("-", "_", " ", "_").Replace(s)
}
