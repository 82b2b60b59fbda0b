package pipeline

import (
	"fmt"
	"strings"

	"lifeexp/internal"
	"lifeexp/internal/catalog"
	"lifeexp/internal/util"
)

// Step is one whole-table transformation of the cleaning pipeline.
type Step struct {
	Name  string
	Apply func(*internal.RawTable) (*internal.RawTable, error)
}

var idColumns = []string{internal.ColUnit, internal.ColSex, internal.ColAge, internal.ColRegion}

func wideSteps() []Step {
	return []Step{
		{Name: "split_composite", Apply: splitComposite},
		{Name: "drop_composite", Apply: dropComposite},
		{Name: "trim_headers", Apply: trimHeaders},
		{Name: "melt", Apply: meltYears},
		{Name: "normalize_year", Apply: normalizeYear},
		{Name: "normalize_value", Apply: normalizeValue},
	}
}

func flatSteps() []Step {
	return []Step{
		{Name: "rename", Apply: renameFlat},
	}
}

func filterStep(region catalog.Region) Step {
	return Step{Name: "filter_region", Apply: func(t *internal.RawTable) (*internal.RawTable, error) {
		return filterRegion(t, region)
	}}
}

func projectStep() Step {
	return Step{Name: "project", Apply: func(t *internal.RawTable) (*internal.RawTable, error) {
		return t.Project(internal.CanonicalHeader...)
	}}
}

// splitComposite expands "unit,sex,age,geo" cells into four id columns.
func splitComposite(t *internal.RawTable) (*internal.RawTable, error) {
	composite, _ := t.Column(CompositeColumn)
	parts := make([][]any, len(idColumns))
	for i := range parts {
		parts[i] = make([]any, len(composite))
	}
	for row, cell := range composite {
		s, ok := util.ToString(cell)
		if !ok {
			return nil, fmt.Errorf("%w: row %d holds %v", ErrMalformedComposite, row, cell)
		}
		fields := strings.Split(s, ",")
		if len(fields) != len(idColumns) {
			return nil, fmt.Errorf("%w: row %d %q has %d parts", ErrMalformedComposite, row, s, len(fields))
		}
		for i, f := range fields {
			parts[i][row] = f
		}
	}
	for i, name := range idColumns {
		if err := t.SetColumn(name, parts[i]); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func dropComposite(t *internal.RawTable) (*internal.RawTable, error) {
	return t.Drop(CompositeColumn), nil
}

func trimHeaders(t *internal.RawTable) (*internal.RawTable, error) {
	mapping := map[string]string{}
	for _, c := range t.Columns() {
		if cleaned := util.CleanHeader(c); cleaned != c {
			mapping[c] = cleaned
		}
	}
	if len(mapping) == 0 {
		return t, nil
	}
	return t.Rename(mapping)
}

// meltYears turns every non-id column into (year, value) rows, one year column at a time.
func meltYears(t *internal.RawTable) (*internal.RawTable, error) {
	isID := map[string]struct{}{}
	for _, c := range idColumns {
		isID[c] = struct{}{}
	}
	years := []string{}
	for _, c := range t.Columns() {
		if _, ok := isID[c]; !ok {
			years = append(years, c)
		}
	}

	n := t.Len() * len(years)
	out := make(map[string][]any, len(internal.CanonicalHeader))
	for _, c := range internal.CanonicalHeader {
		out[c] = make([]any, 0, n)
	}
	for _, year := range years {
		cells, _ := t.Column(year)
		for row := 0; row < t.Len(); row++ {
			for _, id := range idColumns {
				v, _ := t.Column(id)
				out[id] = append(out[id], v[row])
			}
			out[internal.ColYear] = append(out[internal.ColYear], year)
			out[internal.ColValue] = append(out[internal.ColValue], cells[row])
		}
	}

	long := internal.NewRawTable()
	for _, c := range internal.CanonicalHeader {
		if err := long.AddColumn(c, out[c]); err != nil {
			return nil, err
		}
	}
	return long, nil
}

func normalizeYear(t *internal.RawTable) (*internal.RawTable, error) {
	raw, _ := t.Column(internal.ColYear)
	years := make([]any, len(raw))
	for i, cell := range raw {
		s, _ := util.ToString(cell)
		y, ok := util.ParseYear(s)
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidYear, cell)
		}
		years[i] = y
	}
	if err := t.SetColumn(internal.ColYear, years); err != nil {
		return nil, err
	}
	return t, nil
}

// normalizeValue parses measures and drops rows without one.
func normalizeValue(t *internal.RawTable) (*internal.RawTable, error) {
	raw, _ := t.Column(internal.ColValue)
	parsed := make([]any, len(raw))
	for i, cell := range raw {
		if s, ok := util.ToString(cell); ok {
			if v, ok := util.ParseMeasure(s); ok {
				parsed[i] = v
			}
		}
	}
	if err := t.SetColumn(internal.ColValue, parsed); err != nil {
		return nil, err
	}
	return t.Filter(func(row int) bool { return parsed[row] != nil }), nil
}

func renameFlat(t *internal.RawTable) (*internal.RawTable, error) {
	return t.Rename(map[string]string{
		FlatCountryColumn: internal.ColRegion,
		FlatValueColumn:   internal.ColValue,
	})
}

func filterRegion(t *internal.RawTable, region catalog.Region) (*internal.RawTable, error) {
	codes, ok := t.Column(internal.ColRegion)
	if !ok {
		return nil, fmt.Errorf("missing column %q", internal.ColRegion)
	}
	want := region.String()
	return t.Filter(func(row int) bool {
		s, _ := util.ToString(codes[row])
		return s == want
	}), nil
}
