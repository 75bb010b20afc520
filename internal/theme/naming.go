package theme

import (
	"strings"
	"unicode"
)

// words splits an identifier into lowercase-comparable words: any
// non-alphanumeric rune separates, and so do lower-to-upper case changes,
// letter/digit boundaries and the last capital of an acronym ("XLarge" ->
// "X", "Large").
func words(s string) []string {
	runes := []rune(s)
	var out []string
	var current []rune

	flush := func() {
		if len(current) > 0 {
			out = append(out, string(current))
			current = current[:0]
		}
	}

	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if len(current) > 0 {
			prev := current[len(current)-1]
			switch {
			case unicode.IsDigit(prev) != unicode.IsDigit(r):
				flush()
			case unicode.IsLower(prev) && unicode.IsUpper(r):
				flush()
			case unicode.IsUpper(prev) && unicode.IsUpper(r) &&
				i+1 < len(runes) && unicode.IsLower(runes[i+1]):
				flush()
			}
		}
		current = append(current, r)
	}
	flush()

	return out
}

// KebabCase converts an identifier to kebab-case: "marginTop-0.5" becomes
// "margin-top-0-5" and "2xl" becomes "2-xl".
func KebabCase(s string) string {
	parts := words(s)
	for i, p := range parts {
		parts[i] = strings.ToLower(p)
	}
	return strings.Join(parts, "-")
}

// UpperCamelCase converts an identifier to PascalCase: "fontSizes" becomes
// "FontSizes" and "z-indices" becomes "ZIndices".
func UpperCamelCase(s string) string {
	var b strings.Builder
	for _, p := range words(s) {
		runes := []rune(strings.ToLower(p))
		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}
	return b.String()
}
