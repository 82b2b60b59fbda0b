package util

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Eurostat marks a missing observation with a bare colon.
const MissingMarker = ":"

var nonNumeric = regexp.MustCompile(`[^0-9.]`)

// ParseMeasure parses a raw cell such as "81.2 b" or "79.9e". Footnote flags and
// whitespace are stripped; ok is false for missing or unparseable cells.
func ParseMeasure(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || s == MissingMarker {
		return 0, false
	}
	s = nonNumeric.ReplaceAllString(s, "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseYear parses a four digit calendar year.
func ParseYear(raw string) (int, bool) {
	y, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || y < 1000 || y > 9999 {
		return 0, false
	}
	return y, true
}

// FormatMeasure renders v with the shortest representation that round-trips.
func FormatMeasure(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
