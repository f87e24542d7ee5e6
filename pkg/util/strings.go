package util

import "strings"

// NormalizeTicker trims whitespace and uppercases a raw ticker input.
func NormalizeTicker(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
