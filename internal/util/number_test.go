package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMeasure(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  float64
		ok    bool
	}{
		{name: "plain", input: "83.1", want: 83.1, ok: true},
		{name: "break flag", input: "81.2 b", want: 81.2, ok: true},
		{name: "estimate flag", input: "79.9e", want: 79.9, ok: true},
		{name: "leading flag", input: "p 80.0", want: 80, ok: true},
		{name: "padding", input: "  77.4  ", want: 77.4, ok: true},
		{name: "missing", input: ":", ok: false},
		{name: "missing with flag", input: ": c", ok: false},
		{name: "empty", input: "", ok: false},
		{name: "letters only", input: "bep", ok: false},
		{name: "two dots", input: "8.1.2", ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseMeasure(tc.input)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.InDelta(t, tc.want, got, 1e-9)
			}
		})
	}
}

func TestParseYear(t *testing.T) {
	y, ok := ParseYear(" 2019 ")
	assert.True(t, ok)
	assert.Equal(t, 2019, y)

	_, ok = ParseYear("19")
	assert.False(t, ok)
	_, ok = ParseYear("20x9")
	assert.False(t, ok)
}

func TestFormatMeasure(t *testing.T) {
	assert.Equal(t, "83.1", FormatMeasure(83.1))
	assert.Equal(t, "80", FormatMeasure(80))
}

func TestCleanHeader(t *testing.T) {
	assert.Equal(t, "2019", CleanHeader("2019 "))
	assert.Equal(t, `unit,sex,age,geo\time`, CleanHeader("\ufeffunit,sex,age,geo\\time"))
}
