package internal

import "fmt"

// RawTable is a column-ordered in-memory table. All columns have the same length.
type RawTable struct {
	columns []string
	values  map[string][]any
	rows    int
}

func NewRawTable() *RawTable {
	return &RawTable{values: map[string][]any{}}
}

// AddColumn appends a new column. The first column fixes the row count.
func (t *RawTable) AddColumn(name string, values []any) error {
	if _, exists := t.values[name]; exists {
		return fmt.Errorf("duplicate column %q", name)
	}
	if len(t.columns) > 0 && len(values) != t.rows {
		return fmt.Errorf("column %q has %d values, table has %d rows", name, len(values), t.rows)
	}
	t.columns = append(t.columns, name)
	t.values[name] = values
	t.rows = len(values)
	return nil
}

// SetColumn replaces an existing column in place or appends a new one.
func (t *RawTable) SetColumn(name string, values []any) error {
	if _, exists := t.values[name]; !exists {
		return t.AddColumn(name, values)
	}
	if len(values) != t.rows {
		return fmt.Errorf("column %q has %d values, table has %d rows", name, len(values), t.rows)
	}
	t.values[name] = values
	return nil
}

func (t *RawTable) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

func (t *RawTable) Column(name string) ([]any, bool) {
	v, ok := t.values[name]
	return v, ok
}

func (t *RawTable) Has(name string) bool {
	_, ok := t.values[name]
	return ok
}

func (t *RawTable) Len() int {
	return t.rows
}

func (t *RawTable) Row(i int) map[string]any {
	row := make(map[string]any, len(t.columns))
	for _, c := range t.columns {
		row[c] = t.values[c][i]
	}
	return row
}

func (t *RawTable) Drop(names ...string) *RawTable {
	drop := map[string]struct{}{}
	for _, n := range names {
		drop[n] = struct{}{}
	}
	out := &RawTable{values: map[string][]any{}, rows: t.rows}
	for _, c := range t.columns {
		if _, ok := drop[c]; ok {
			continue
		}
		out.columns = append(out.columns, c)
		out.values[c] = t.values[c]
	}
	return out
}

// Rename maps old column names to new ones, keeping column order and contents.
func (t *RawTable) Rename(mapping map[string]string) (*RawTable, error) {
	out := &RawTable{values: map[string][]any{}, rows: t.rows}
	for _, c := range t.columns {
		name := c
		if renamed, ok := mapping[c]; ok {
			name = renamed
		}
		if _, exists := out.values[name]; exists {
			return nil, fmt.Errorf("rename produces duplicate column %q", name)
		}
		out.columns = append(out.columns, name)
		out.values[name] = t.values[c]
	}
	return out, nil
}

func (t *RawTable) Filter(keep func(row int) bool) *RawTable {
	idx := make([]int, 0, t.rows)
	for i := 0; i < t.rows; i++ {
		if keep(i) {
			idx = append(idx, i)
		}
	}
	out := &RawTable{values: map[string][]any{}, rows: len(idx)}
	for _, c := range t.columns {
		src := t.values[c]
		dst := make([]any, len(idx))
		for j, i := range idx {
			dst[j] = src[i]
		}
		out.columns = append(out.columns, c)
		out.values[c] = dst
	}
	return out
}

func (t *RawTable) Project(names ...string) (*RawTable, error) {
	out := &RawTable{values: map[string][]any{}, rows: t.rows}
	for _, n := range names {
		v, ok := t.values[n]
		if !ok {
			return nil, fmt.Errorf("missing column %q", n)
		}
		out.columns = append(out.columns, n)
		out.values[n] = v
	}
	return out, nil
}
