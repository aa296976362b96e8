package pipeline

import (
	"fmt"
	"slices"
)

// LongRow is one cell of a long-form table.
type LongRow struct {
	Row    string
	Column string
	Value  float64
}

// LongForm converts two-key aggregates into long rows, the first key part
// becoming the row and the second the column. Undefined values are dropped.
func LongForm(rows []AggregateRow) ([]LongRow, error) {
	out := make([]LongRow, 0, len(rows))
	for _, r := range rows {
		if r.Key.Len != 2 {
			return nil, fmt.Errorf("long form: key %s has %d parts, want 2", r.Key, r.Key.Len)
		}
		if !r.Defined {
			continue
		}
		out = append(out, LongRow{Row: r.Key.At(0), Column: r.Key.At(1), Value: r.Value})
	}
	return out, nil
}

type cell struct {
	row, column string
}

// WideTable holds one row per row key and one column per category. Reading
// a combination that was never set yields 0.
type WideTable struct {
	rows    []string
	columns []string
	cells   map[cell]float64
}

// NewWideTable returns an empty table.
func NewWideTable() *WideTable {
	return &WideTable{cells: make(map[cell]float64)}
}

// RowKeys returns the row keys in display order.
func (w *WideTable) RowKeys() []string { return slices.Clone(w.rows) }

// Columns returns the columns in display order.
func (w *WideTable) Columns() []string { return slices.Clone(w.columns) }

// Get returns the value at (row, column), or 0 if it was never set.
func (w *WideTable) Get(row, column string) float64 {
	return w.cells[cell{row, column}]
}

// Has reports whether (row, column) was set explicitly.
func (w *WideTable) Has(row, column string) bool {
	_, ok := w.cells[cell{row, column}]
	return ok
}

// Set stores a value, appending the row and column if they are new.
func (w *WideTable) Set(row, column string, v float64) {
	if !slices.Contains(w.rows, row) {
		w.rows = append(w.rows, row)
	}
	if !slices.Contains(w.columns, column) {
		w.columns = append(w.columns, column)
	}
	w.cells[cell{row, column}] = v
}

// Total sums a row over the table's columns.
func (w *WideTable) Total(row string) float64 {
	var total float64
	for _, c := range w.columns {
		total += w.Get(row, c)
	}
	return total
}

// SelectColumns returns a table restricted to the given columns, keeping the
// table's own column order. Unknown columns are ignored.
func (w *WideTable) SelectColumns(columns []string) *WideTable {
	out := NewWideTable()
	out.rows = slices.Clone(w.rows)
	for _, c := range w.columns {
		if slices.Contains(columns, c) {
			out.columns = append(out.columns, c)
		}
	}
	for k, v := range w.cells {
		if slices.Contains(out.columns, k.column) {
			out.cells[k] = v
		}
	}
	return out
}

// SelectRows returns a table restricted to the given rows, keeping the
// table's own row order.
func (w *WideTable) SelectRows(rows []string) *WideTable {
	out := NewWideTable()
	out.columns = slices.Clone(w.columns)
	for _, r := range w.rows {
		if slices.Contains(rows, r) {
			out.rows = append(out.rows, r)
		}
	}
	for k, v := range w.cells {
		if slices.Contains(out.rows, k.row) {
			out.cells[k] = v
		}
	}
	return out
}

// SortByTotal orders rows by descending row total; equal totals keep their
// current order.
func (w *WideTable) SortByTotal() {
	totals := make(map[string]float64, len(w.rows))
	for _, r := range w.rows {
		totals[r] = w.Total(r)
	}
	slices.SortStableFunc(w.rows, func(a, b string) int {
		switch {
		case totals[a] > totals[b]:
			return -1
		case totals[a] < totals[b]:
			return 1
		}
		return 0
	})
}

// Pivot spreads long rows into a wide table. Rows and columns are sorted
// ascending. Each (row, column) pair may appear only once.
func Pivot(rows []LongRow) (*WideTable, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyInput
	}
	w := NewWideTable()
	for _, r := range rows {
		if w.Has(r.Row, r.Column) {
			return nil, fmt.Errorf("pivot: duplicate cell (%s, %s)", r.Row, r.Column)
		}
		w.Set(r.Row, r.Column, r.Value)
	}
	slices.SortFunc(w.rows, compareValues)
	slices.SortFunc(w.columns, compareValues)
	return w, nil
}

// Melt turns the given columns of a wide table back into long rows, in row
// then column order. Only cells that were set are emitted, so melting a
// pivoted table restores the original rows.
func Melt(w *WideTable, valueVars []string) []LongRow {
	var out []LongRow
	for _, r := range w.rows {
		for _, c := range w.columns {
			if !slices.Contains(valueVars, c) {
				continue
			}
			if v, ok := w.cells[cell{r, c}]; ok {
				out = append(out, LongRow{Row: r, Column: c, Value: v})
			}
		}
	}
	return out
}
