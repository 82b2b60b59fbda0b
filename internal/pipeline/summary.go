package pipeline

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"lifeexp/internal"
)

// Summary describes a cleaned table: row count, covered years and the value range.
type Summary struct {
	Rows      int
	FirstYear int
	LastYear  int
	Min       float64
	Max       float64
	Mean      float64
}

func Summarize(table internal.CleanedTable) Summary {
	if len(table) == 0 {
		return Summary{}
	}
	values := table.Values()
	s := Summary{
		Rows:      len(table),
		FirstYear: table[0].Year,
		LastYear:  table[0].Year,
		Min:       floats.Min(values),
		Max:       floats.Max(values),
		Mean:      stat.Mean(values, nil),
	}
	for _, r := range table[1:] {
		if r.Year < s.FirstYear {
			s.FirstYear = r.Year
		}
		if r.Year > s.LastYear {
			s.LastYear = r.Year
		}
	}
	return s
}
