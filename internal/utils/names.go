package utils

import (
	"strings"
	"unicode"
)

// FoldName lowercases and trims a free-text item name. All aggregation and
// lookup keys across the shopping pipeline go through this so that names
// differing only in case or surrounding whitespace match.
func FoldName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// TitleCase uppercases the first letter of each word for display names on
// the generated shopping list.
func TitleCase(name string) string {
	var b strings.Builder
	prevSpace := true
	for _, r := range name {
		if prevSpace {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteRune(r)
		}
		prevSpace = unicode.IsSpace(r)
	}
	return b.String()
}
