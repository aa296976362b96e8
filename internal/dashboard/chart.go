// Package dashboard builds the chart-ready tables behind each dashboard page.
package dashboard

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ademuri/discogs-eda/internal/pipeline"
	"github.com/ademuri/discogs-eda/internal/release"
)

// Kind is how a presentation layer is expected to draw a chart.
type Kind string

const (
	Bar        Kind = "bar"
	GroupedBar Kind = "grouped-bar"
	StackedBar Kind = "stacked-bar"
	Line       Kind = "line"
	Area       Kind = "area"
	Treemap    Kind = "treemap"
	Sunburst   Kind = "sunburst"
	Histogram  Kind = "histogram"
	Heatmap    Kind = "heatmap"
	Records    Kind = "records"
)

// Chart is one chart's data. Exactly one of the data fields is set unless Err
// is non-nil.
type Chart struct {
	Title  string
	Kind   Kind
	XLabel string
	YLabel string
	Legend string

	Counts    []pipeline.KeyCount
	Series    []pipeline.AggregateRow
	Long      []pipeline.LongRow
	Wide      *pipeline.WideTable
	Histogram *pipeline.Histogram
	Matrix    *pipeline.CorrelationMatrix
	Extremes  *pipeline.PriceExtremes

	// Note describes values that could not be computed, such as groups
	// with an undefined mean.
	Note string
	Err  error
}

// Empty reports whether the chart had no input rows.
func (c Chart) Empty() bool {
	return errors.Is(c.Err, pipeline.ErrEmptyInput)
}

// Page is a titled list of charts.
type Page struct {
	Name   string
	Title  string
	Charts []Chart
}

// Table is a chart flattened to text cells; Header names the columns.
type Table struct {
	Header []string
	Rows   [][]string
}

// Table flattens the chart's data. It returns an empty table for failed
// charts.
func (c Chart) Table() Table {
	switch {
	case c.Err != nil:
		return Table{}
	case c.Counts != nil:
		t := Table{Header: []string{c.XLabel, c.YLabel}}
		for _, kc := range c.Counts {
			t.Rows = append(t.Rows, []string{kc.Key, strconv.Itoa(kc.Count)})
		}
		return t
	case c.Series != nil:
		t := Table{Header: []string{c.XLabel, c.YLabel}}
		for _, r := range c.Series {
			t.Rows = append(t.Rows, []string{r.Key.String(), formatAggregate(r)})
		}
		return t
	case c.Long != nil:
		t := Table{Header: []string{c.XLabel, c.Legend, c.YLabel}}
		for _, r := range c.Long {
			t.Rows = append(t.Rows, []string{r.Row, r.Column, formatNumber(r.Value)})
		}
		return t
	case c.Wide != nil:
		columns := c.Wide.Columns()
		t := Table{Header: append([]string{c.XLabel}, columns...)}
		for _, row := range c.Wide.RowKeys() {
			cells := []string{row}
			for _, col := range columns {
				cells = append(cells, formatNumber(c.Wide.Get(row, col)))
			}
			t.Rows = append(t.Rows, cells)
		}
		return t
	case c.Histogram != nil:
		t := Table{Header: []string{c.XLabel, c.YLabel}}
		for i, b := range c.Histogram.Bins {
			closing := ")"
			if i == len(c.Histogram.Bins)-1 {
				closing = "]"
			}
			t.Rows = append(t.Rows, []string{
				fmt.Sprintf("[%s, %s%s", formatNumber(b.Low), formatNumber(b.High), closing),
				strconv.Itoa(b.Count),
			})
		}
		return t
	case c.Matrix != nil:
		t := Table{Header: []string{""}}
		for _, f := range c.Matrix.Fields {
			t.Header = append(t.Header, f.String())
		}
		for i, f := range c.Matrix.Fields {
			cells := []string{f.String()}
			for j := range c.Matrix.Fields {
				if c.Matrix.Defined[i][j] {
					cells = append(cells, strconv.FormatFloat(c.Matrix.Values[i][j], 'f', 2, 64))
				} else {
					cells = append(cells, "n/a")
				}
			}
			t.Rows = append(t.Rows, cells)
		}
		return t
	case c.Extremes != nil:
		t := Table{Header: []string{"", "ID", "Label", "Country", "Format", "Year", "Price (USD)"}}
		if r := c.Extremes.Cheapest; r != nil {
			t.Rows = append(t.Rows, recordRow("Cheapest", r, r.LowestPrice))
		}
		if r := c.Extremes.MostExpensive; r != nil {
			t.Rows = append(t.Rows, recordRow("Most expensive", r, r.HighestPrice))
		}
		return t
	}
	return Table{}
}

func recordRow(name string, r *release.Release, price release.Metric) []string {
	return []string{name, r.ID, r.Label, r.Country, r.Format, strconv.Itoa(r.ReleaseYear), formatNumber(price.Value)}
}

func formatAggregate(r pipeline.AggregateRow) string {
	if !r.Defined {
		return "n/a"
	}
	return formatNumber(r.Value)
}

// formatNumber prints whole numbers without decimals and everything else
// rounded to two places.
func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Summary is a one-line description of the chart's data, for captions.
func (c Chart) Summary() string {
	if c.Err != nil {
		return ""
	}
	switch {
	case c.Histogram != nil:
		b := c.Histogram.Box
		s := fmt.Sprintf("%d values; min %s, Q1 %s, median %s, Q3 %s, max %s",
			c.Histogram.Count, formatNumber(b.Min), formatNumber(b.Q1), formatNumber(b.Median), formatNumber(b.Q3), formatNumber(b.Max))
		if c.Histogram.Missing > 0 {
			s += fmt.Sprintf("; %d missing", c.Histogram.Missing)
		}
		return s
	case c.Counts != nil:
		total := 0
		for _, kc := range c.Counts {
			total += kc.Count
		}
		return fmt.Sprintf("%d categories, %d releases", len(c.Counts), total)
	case c.Series != nil:
		return fmt.Sprintf("%d points", len(c.Series))
	case c.Long != nil:
		return fmt.Sprintf("%d points", len(c.Long))
	case c.Wide != nil:
		return fmt.Sprintf("%d rows x %d columns", len(c.Wide.RowKeys()), len(c.Wide.Columns()))
	}
	return ""
}
