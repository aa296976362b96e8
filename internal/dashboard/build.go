package dashboard

import (
	"github.com/ademuri/discogs-eda/internal/pipeline"
	"github.com/ademuri/discogs-eda/internal/release"
)

// countTable counts rows by (row, column) and spreads the counts into a
// wide table with missing combinations reading as 0.
func countTable(rows []pipeline.Row, row, column release.Field) (*pipeline.WideTable, error) {
	agg, err := pipeline.Aggregate(rows, []release.Field{row, column}, pipeline.Count())
	if err != nil {
		return nil, err
	}
	long, err := pipeline.LongForm(agg)
	if err != nil {
		return nil, err
	}
	return pipeline.Pivot(long)
}

// countLong counts rows by (row, column) as long rows, in key order.
func countLong(rows []pipeline.Row, row, column release.Field) ([]pipeline.LongRow, error) {
	agg, err := pipeline.Aggregate(rows, []release.Field{row, column}, pipeline.Count())
	if err != nil {
		return nil, err
	}
	return pipeline.LongForm(agg)
}

// topCounts is a bar chart of the k most frequent values of f.
func topCounts(title string, rows []pipeline.Row, f release.Field, k int, xLabel string) Chart {
	c := Chart{Title: title, Kind: Bar, XLabel: xLabel, YLabel: "Count"}
	c.Counts, c.Err = pipeline.TopK(rows, f, k)
	return c
}

// topByFormat is a stacked bar of the k most frequent values of f split by
// the given formats, busiest first.
func topByFormat(title string, rows []pipeline.Row, f release.Field, k int, formats []string, xLabel string) Chart {
	c := Chart{Title: title, Kind: StackedBar, XLabel: xLabel, YLabel: "Number of Releases", Legend: "Format"}
	top, err := pipeline.TopK(rows, f, k)
	if err != nil {
		c.Err = err
		return c
	}
	w, err := countTable(pipeline.Where(rows, pipeline.In(f, pipeline.KeySet(top))), f, release.Format)
	if err != nil {
		c.Err = err
		return c
	}
	w = w.SelectColumns(formats)
	w.SortByTotal()
	c.Wide = w
	return c
}

// meanByYear is a line of the average of f per release year.
func meanByYear(title string, rows []pipeline.Row, f release.Field, yLabel string) Chart {
	c := Chart{Title: title, Kind: Line, XLabel: "Release Year", YLabel: yLabel}
	series, err := pipeline.Aggregate(rows, []release.Field{release.ReleaseYear}, pipeline.Mean(f))
	if err != nil {
		c.Err = err
		return c
	}
	c.Series = series
	if err := pipeline.Undefined(series); err != nil {
		c.Note = err.Error()
	}
	return c
}
