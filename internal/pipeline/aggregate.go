package pipeline

import (
	"fmt"
	"slices"

	"github.com/ademuri/discogs-eda/internal/release"
)

// MetricKind selects how rows in a group are reduced.
type MetricKind int

const (
	CountMetric MetricKind = iota
	MeanMetric
	NUniqueMetric
)

// Metric is a reduction over one field. Field is unused for CountMetric.
type Metric struct {
	Kind  MetricKind
	Field release.Field
}

// Count counts rows per group.
func Count() Metric { return Metric{Kind: CountMetric} }

// Mean averages a numeric field per group, ignoring missing values.
func Mean(f release.Field) Metric { return Metric{Kind: MeanMetric, Field: f} }

// NUnique counts distinct non-empty values of a field per group.
func NUnique(f release.Field) Metric { return Metric{Kind: NUniqueMetric, Field: f} }

func (m Metric) String() string {
	switch m.Kind {
	case MeanMetric:
		return fmt.Sprintf("mean(%s)", m.Field)
	case NUniqueMetric:
		return fmt.Sprintf("nunique(%s)", m.Field)
	}
	return "count"
}

// AggregateRow is the value of one metric for one group. Defined is false
// when the group had no valid values for the metric's field; Value is then 0
// and must not be plotted.
type AggregateRow struct {
	Key     Key
	Metric  string
	Value   float64
	Defined bool
}

type group struct {
	count    int
	sum      float64
	valid    int
	distinct map[string]struct{}
}

// Aggregate groups rows by one or two fields and reduces each group with m.
// The result is sorted by key ascending.
func Aggregate(rows []Row, groupBy []release.Field, m Metric) ([]AggregateRow, error) {
	if len(groupBy) < 1 || len(groupBy) > 2 {
		return nil, fmt.Errorf("aggregate: need one or two group-by fields, got %d", len(groupBy))
	}
	if m.Kind == MeanMetric && !m.Field.Numeric() {
		return nil, fmt.Errorf("aggregate: can't average non-numeric field %s", m.Field)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyInput
	}

	groups := make(map[Key]*group)
	for _, r := range rows {
		var parts [2]string
		for i, f := range groupBy {
			parts[i] = r.Text(f)
		}
		key := NewKey(parts[:len(groupBy)]...)

		g, ok := groups[key]
		if !ok {
			g = &group{}
			if m.Kind == NUniqueMetric {
				g.distinct = make(map[string]struct{})
			}
			groups[key] = g
		}
		g.count++

		switch m.Kind {
		case MeanMetric:
			if v, ok := r.Number(m.Field); ok {
				g.sum += v
				g.valid++
			}
		case NUniqueMetric:
			if v := r.Text(m.Field); v != "" {
				g.distinct[v] = struct{}{}
			}
		}
	}

	name := m.String()
	out := make([]AggregateRow, 0, len(groups))
	for key, g := range groups {
		row := AggregateRow{Key: key, Metric: name, Defined: true}
		switch m.Kind {
		case CountMetric:
			row.Value = float64(g.count)
		case MeanMetric:
			if g.valid == 0 {
				row.Defined = false
			} else {
				row.Value = g.sum / float64(g.valid)
			}
		case NUniqueMetric:
			if len(g.distinct) == 0 {
				row.Defined = false
			} else {
				row.Value = float64(len(g.distinct))
			}
		}
		out = append(out, row)
	}
	slices.SortFunc(out, func(a, b AggregateRow) int { return compareKeys(a.Key, b.Key) })
	return out, nil
}

// Undefined returns an *UndefinedAggregateError naming every group of rows
// whose value is undefined, or nil if all are defined.
func Undefined(rows []AggregateRow) error {
	var e *UndefinedAggregateError
	for _, r := range rows {
		if r.Defined {
			continue
		}
		if e == nil {
			e = &UndefinedAggregateError{Metric: r.Metric}
		}
		e.Groups = append(e.Groups, r.Key)
	}
	if e == nil {
		return nil
	}
	return e
}

// Defined drops rows whose value is undefined.
func Defined(rows []AggregateRow) []AggregateRow {
	var out []AggregateRow
	for _, r := range rows {
		if r.Defined {
			out = append(out, r)
		}
	}
	return out
}

// Sum adds up every defined value.
func Sum(rows []AggregateRow) float64 {
	var total float64
	for _, r := range rows {
		if r.Defined {
			total += r.Value
		}
	}
	return total
}
