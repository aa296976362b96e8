package pipeline

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"github.com/ademuri/discogs-eda/internal/release"
)

// CorrelationMatrix holds Pearson coefficients between numeric fields.
// Defined[i][j] is false when the pair had fewer than two complete
// observations or one side had no variance.
type CorrelationMatrix struct {
	Fields  []release.Field
	Values  [][]float64
	Defined [][]bool
}

// Correlation computes the Pearson correlation of every pair of fields,
// using for each pair only the rows where both values are present.
func Correlation(rows []Row, fields []release.Field) (*CorrelationMatrix, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyInput
	}
	for _, f := range fields {
		if !f.Numeric() {
			return nil, fmt.Errorf("correlation: field %s is not numeric", f)
		}
	}

	n := len(fields)
	m := &CorrelationMatrix{
		Fields:  fields,
		Values:  make([][]float64, n),
		Defined: make([][]bool, n),
	}
	for i := range fields {
		m.Values[i] = make([]float64, n)
		m.Defined[i] = make([]bool, n)
	}

	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v, ok := pearson(rows, fields[i], fields[j])
			m.Values[i][j], m.Values[j][i] = v, v
			m.Defined[i][j], m.Defined[j][i] = ok, ok
		}
	}
	return m, nil
}

func pearson(rows []Row, a, b release.Field) (float64, bool) {
	var xs, ys stats.Float64Data
	for _, r := range rows {
		x, okX := r.Number(a)
		y, okY := r.Number(b)
		if okX && okY {
			xs = append(xs, x)
			ys = append(ys, y)
		}
	}
	if len(xs) < 2 {
		return 0, false
	}
	sx, err := xs.StandardDeviationPopulation()
	if err != nil || sx == 0 {
		return 0, false
	}
	sy, err := ys.StandardDeviationPopulation()
	if err != nil || sy == 0 {
		return 0, false
	}
	c, err := stats.Correlation(xs, ys)
	if err != nil || math.IsNaN(c) {
		return 0, false
	}
	return c, true
}

// Bin is one histogram bucket covering [Low, High); the last bin also
// includes High.
type Bin struct {
	Low   float64
	High  float64
	Count int
}

// BoxSummary is the five-number summary drawn as a box plot.
type BoxSummary struct {
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}

// Histogram is the distribution of one numeric field.
type Histogram struct {
	Field   release.Field
	Bins    []Bin
	Box     BoxSummary
	Count   int
	Missing int
}

// Distribution buckets the present values of f into equal-width bins
// between their minimum and maximum.
func Distribution(rows []Row, f release.Field, bins int) (*Histogram, error) {
	if !f.Numeric() {
		return nil, fmt.Errorf("distribution: field %s is not numeric", f)
	}
	if bins < 1 {
		return nil, fmt.Errorf("distribution: need at least one bin, got %d", bins)
	}

	h := &Histogram{Field: f}
	var values stats.Float64Data
	for _, r := range rows {
		if v, ok := r.Number(f); ok {
			values = append(values, v)
		} else {
			h.Missing++
		}
	}
	if len(values) == 0 {
		return nil, ErrEmptyInput
	}
	h.Count = len(values)

	lo, _ := values.Min()
	hi, _ := values.Max()
	median, _ := values.Median()
	h.Box = BoxSummary{Min: lo, Q1: median, Median: median, Q3: median, Max: hi}
	if len(values) > 1 {
		if q, err := stats.Quartile(values); err == nil && !math.IsNaN(q.Q1) && !math.IsNaN(q.Q3) {
			h.Box.Q1, h.Box.Q3 = q.Q1, q.Q3
		}
	}

	if lo == hi {
		h.Bins = []Bin{{Low: lo, High: hi, Count: len(values)}}
		return h, nil
	}
	width := (hi - lo) / float64(bins)
	h.Bins = make([]Bin, bins)
	for i := range h.Bins {
		h.Bins[i].Low = lo + float64(i)*width
		h.Bins[i].High = lo + float64(i+1)*width
	}
	h.Bins[bins-1].High = hi
	for _, v := range values {
		i := int((v - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		h.Bins[i].Count++
	}
	return h, nil
}

// PriceExtremes are the releases at either end of the price range.
type PriceExtremes struct {
	Cheapest      *release.Release
	MostExpensive *release.Release
}

// Extremes finds the release with the lowest lowest-price and the one with
// the highest highest-price. The first row wins a tie.
func Extremes(rows []Row) (PriceExtremes, error) {
	var e PriceExtremes
	for _, r := range rows {
		if r.LowestPrice.Valid && (e.Cheapest == nil || r.LowestPrice.Value < e.Cheapest.LowestPrice.Value) {
			e.Cheapest = r.Release
		}
		if r.HighestPrice.Valid && (e.MostExpensive == nil || r.HighestPrice.Value > e.MostExpensive.HighestPrice.Value) {
			e.MostExpensive = r.Release
		}
	}
	if e.Cheapest == nil && e.MostExpensive == nil {
		return e, ErrEmptyInput
	}
	return e, nil
}
