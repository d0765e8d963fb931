package utils

import "strings"

// EscapeLike escapes PostgreSQL ILIKE metacharacters in user input
// để search query không bị inject wildcard.
func EscapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`) // escape backslash trước
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
