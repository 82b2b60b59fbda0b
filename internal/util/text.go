package util

import (
	"regexp"
	"strings"
)

var reSpaces = regexp.MustCompile(`\s+`)

func NormalizeSpaces(input string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(input, " "))
}

// CleanHeader trims feed artifacts around a column name ("2019 " -> "2019").
func CleanHeader(input string) string {
	return strings.TrimSpace(strings.TrimPrefix(input, "\ufeff"))
}

func ToString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}
