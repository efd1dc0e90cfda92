package textutil

import (
	"strings"
	"unicode"
)

// CompactName removes every whitespace rune from value after trimming it.
func CompactName(value string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, strings.TrimSpace(value))
}

// IsNumeric reports whether every rune of value is a Unicode number.
// The empty string counts as numeric.
func IsNumeric(value string) bool {
	for _, r := range value {
		if !unicode.IsNumber(r) {
			return false
		}
	}
	return true
}
