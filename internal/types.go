package internal

import "math"

const (
	ColUnit   = "unit"
	ColSex    = "sex"
	ColAge    = "age"
	ColRegion = "region"
	ColYear   = "year"
	ColValue  = "value"
)

var CanonicalHeader = []string{ColUnit, ColSex, ColAge, ColRegion, ColYear, ColValue}

type CleanedRecord struct {
	Unit   string  `json:"unit"`
	Sex    string  `json:"sex"`
	Age    string  `json:"age"`
	Region string  `json:"region"`
	Year   int     `json:"year"`
	Value  float64 `json:"value"`
}

func (r CleanedRecord) Valid() bool {
	return r.Year >= 1000 && r.Year <= 9999 && !math.IsNaN(r.Value) && !math.IsInf(r.Value, 0)
}

type CleanedTable []CleanedRecord

// Filter keeps the rows for one region code; applying it twice is a no-op.
func (t CleanedTable) Filter(region string) CleanedTable {
	out := make(CleanedTable, 0, len(t))
	for _, r := range t {
		if r.Region == region {
			out = append(out, r)
		}
	}
	return out
}

func (t CleanedTable) Values() []float64 {
	out := make([]float64, 0, len(t))
	for _, r := range t {
		out = append(out, r.Value)
	}
	return out
}

type RunRow struct {
	ID           string
	Region       string
	Format       string
	Source       string
	Output       string
	OutputFormat string
	Rows         int
	CreatedAt    string
}
