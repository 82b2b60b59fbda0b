package pipeline

import (
	"fmt"
	"log/slog"
	"math"

	"lifeexp/internal"
	"lifeexp/internal/catalog"
	"lifeexp/internal/util"
)

// Clean normalizes a raw table into the canonical long format and keeps the rows of one region.
func Clean(raw *internal.RawTable, region catalog.Region) (internal.CleanedTable, error) {
	return clean(raw, &region)
}

// Normalize runs the cleaning steps for every region in the table.
func Normalize(raw *internal.RawTable) (internal.CleanedTable, error) {
	return clean(raw, nil)
}

func clean(raw *internal.RawTable, region *catalog.Region) (internal.CleanedTable, error) {
	schema, err := DetectSchema(raw)
	if err != nil {
		return nil, err
	}

	var steps []Step
	switch schema {
	case SchemaWide:
		steps = wideSteps()
		if region != nil {
			steps = append(steps, filterStep(*region))
		}
	case SchemaFlat:
		steps = flatSteps()
		if region != nil {
			steps = append(steps, filterStep(*region))
		}
		steps = append(steps, projectStep())
	}

	table, err := runSteps(raw, steps)
	if err != nil {
		return nil, err
	}
	return materialize(table)
}

func runSteps(t *internal.RawTable, steps []Step) (*internal.RawTable, error) {
	cur := t
	for _, step := range steps {
		next, err := step.Apply(cur)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name, err)
		}
		slog.Debug("pipeline step", "step", step.Name, "rows_in", cur.Len(), "rows_out", next.Len())
		cur = next
	}
	return cur, nil
}

// materialize converts the canonical columns into records. Rows without a measure are dropped.
func materialize(t *internal.RawTable) (internal.CleanedTable, error) {
	cols := make([][]any, len(internal.CanonicalHeader))
	for i, name := range internal.CanonicalHeader {
		v, ok := t.Column(name)
		if !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrMalformedRecord, name)
		}
		cols[i] = v
	}

	out := make(internal.CleanedTable, 0, t.Len())
	for row := 0; row < t.Len(); row++ {
		value, ok, err := asMeasure(cols[5][row])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		if !ok {
			continue
		}
		year, err := asYear(cols[4][row])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		rec := internal.CleanedRecord{Year: year, Value: value}
		for i, dst := range []*string{&rec.Unit, &rec.Sex, &rec.Age, &rec.Region} {
			s, ok := util.ToString(cols[i][row])
			if !ok {
				return nil, fmt.Errorf("row %d: %w: %s is %v", row, ErrMalformedRecord, internal.CanonicalHeader[i], cols[i][row])
			}
			*dst = s
		}
		out = append(out, rec)
	}
	return out, nil
}

func asYear(v any) (int, error) {
	var y int
	switch t := v.(type) {
	case int:
		y = t
	case float64:
		if t != math.Trunc(t) {
			return 0, fmt.Errorf("%w: %v", ErrInvalidYear, v)
		}
		y = int(t)
	default:
		return 0, fmt.Errorf("%w: %v is %T", ErrMalformedRecord, v, v)
	}
	if y < 1000 || y > 9999 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidYear, y)
	}
	return y, nil
}

// asMeasure reports ok=false for a missing measure (JSON null).
func asMeasure(v any) (float64, bool, error) {
	switch t := v.(type) {
	case nil:
		return 0, false, nil
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0, false, nil
		}
		return t, true, nil
	default:
		return 0, false, fmt.Errorf("%w: value %v is %T", ErrMalformedRecord, v, v)
	}
}
