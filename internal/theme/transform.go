package theme

import (
	"strconv"
	"strings"
	"unicode"
)

// TransformPolicy selects how a raw scale value becomes CSS text.
type TransformPolicy string

// Transform policies. The zero value behaves as TransformPixels.
const (
	TransformPixels TransformPolicy = "pixels"
	TransformString TransformPolicy = "string"
)

// Transform turns a raw scale value into a CSS-ready literal. Unitless
// numbers gain a px suffix, zero stays bare, values with units pass through
// and anything unparsable is returned untouched for the caller to judge.
func Transform(v Value, policy TransformPolicy) string {
	if policy == TransformString {
		return v.Raw
	}

	if !v.Numeric && hasLetter(v.Raw) {
		return v.Raw
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(v.Raw), 64)
	if err != nil {
		return v.Raw
	}
	if f == 0 {
		return "0"
	}
	return v.Raw + "px"
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// IsNumeric reports whether a scale key parses completely as a number.
func IsNumeric(key string) bool {
	_, err := strconv.ParseFloat(key, 64)
	return err == nil
}
