package release

import (
	"strconv"
	"strings"
)

// Metric is a numeric release attribute that may be absent in the source data.
type Metric struct {
	Value float64
	Valid bool
}

// Known returns a valid Metric holding v.
func Known(v float64) Metric {
	return Metric{Value: v, Valid: true}
}

// Release is one catalog entry.
type Release struct {
	ID          string
	Country     string
	Label       string
	Format      string
	Genre       string
	Styles      string // Comma separated, as stored in the source file.
	ReleaseYear int

	Have         Metric
	Want         Metric
	LowestPrice  Metric
	MedianPrice  Metric
	HighestPrice Metric
	MeanRating   Metric
	NumRatings   Metric
}

// StyleTokens splits the styles field, trimming whitespace and dropping empty
// tokens.
func (r Release) StyleTokens() []string {
	if r.Styles == "" {
		return nil
	}
	parts := strings.Split(r.Styles, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// Text returns the categorical value of f. Style is not a release attribute
// and yields "" here; see pipeline.Row for exploded styles.
func (r Release) Text(f Field) string {
	switch f {
	case Country:
		return r.Country
	case Label:
		return r.Label
	case Format:
		return r.Format
	case Genre:
		return r.Genre
	case ReleaseYear:
		return strconv.Itoa(r.ReleaseYear)
	case ID:
		return r.ID
	}
	if m, ok := r.metric(f); ok && m.Valid {
		return strconv.FormatFloat(m.Value, 'g', -1, 64)
	}
	return ""
}

// Number returns the numeric value of f and whether it is present.
func (r Release) Number(f Field) (float64, bool) {
	if f == ReleaseYear {
		return float64(r.ReleaseYear), true
	}
	m, ok := r.metric(f)
	if !ok || !m.Valid {
		return 0, false
	}
	return m.Value, true
}

func (r Release) metric(f Field) (Metric, bool) {
	switch f {
	case Have:
		return r.Have, true
	case Want:
		return r.Want, true
	case LowestPrice:
		return r.LowestPrice, true
	case MedianPrice:
		return r.MedianPrice, true
	case HighestPrice:
		return r.HighestPrice, true
	case MeanRating:
		return r.MeanRating, true
	case NumRatings:
		return r.NumRatings, true
	}
	return Metric{}, false
}

func (r *Release) setMetric(f Field, m Metric) {
	switch f {
	case Have:
		r.Have = m
	case Want:
		r.Want = m
	case LowestPrice:
		r.LowestPrice = m
	case MedianPrice:
		r.MedianPrice = m
	case HighestPrice:
		r.HighestPrice = m
	case MeanRating:
		r.MeanRating = m
	case NumRatings:
		r.NumRatings = m
	}
}
