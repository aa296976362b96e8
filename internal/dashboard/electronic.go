package dashboard

import (
	"fmt"

	"github.com/ademuri/discogs-eda/internal/pipeline"
	"github.com/ademuri/discogs-eda/internal/release"
)

// distributionFields are the vinyl metrics shown as histograms.
var distributionFields = []release.Field{
	release.Have,
	release.Want,
	release.LowestPrice,
	release.MedianPrice,
	release.HighestPrice,
	release.MeanRating,
}

// correlationFields are the metrics of the correlation heatmap.
var correlationFields = []release.Field{
	release.Have,
	release.Want,
	release.LowestPrice,
	release.MedianPrice,
	release.HighestPrice,
	release.MeanRating,
	release.NumRatings,
	release.ReleaseYear,
}

// Electronic breaks a single-genre dataset down by label, country, style and
// format, then looks at opts.Format releases in detail.
func Electronic(releases []release.Release, opts Options) Page {
	rows := pipeline.Rows(releases)
	exploded := pipeline.ExplodeRows(rows)

	var formats []string
	if top, err := pipeline.TopK(rows, release.Format, 3); err == nil {
		formats = pipeline.Keys(top)
	}

	charts := []Chart{
		topByFormat("Top 15 Labels with Top 3 Formats", rows, release.Label, 15, formats, "Label"),
		topByFormat("Top 15 Countries with Top 3 Formats", rows, release.Country, 15, formats, "Country"),
		topByFormat("Top 20 Styles with Top 3 Formats", exploded, release.Style, 20, formats, "Style"),
		yearsByFormat(rows, formats),
	}

	detail := pipeline.Where(rows, pipeline.Equals(release.Format, opts.Format))
	charts = append(charts,
		meanByYear(fmt.Sprintf(`Average "Have" for Each Release Year (%s Format)`, opts.Format), detail, release.Have, "Average 'Have'"),
		meanByYear(fmt.Sprintf(`Average "Want" for Each Release Year (%s Format)`, opts.Format), detail, release.Want, "Average 'Want'"),
		meanByYear(fmt.Sprintf(`Average "Median Price (USD)" for Each Release Year (%s Format)`, opts.Format), detail, release.MedianPrice, "Average Median Price (USD)"),
	)
	for _, f := range distributionFields {
		charts = append(charts, distribution(detail, f, opts.Bins))
	}
	charts = append(charts, correlation(detail, opts), extremes(detail))

	return Page{
		Name:   "electronic",
		Title:  "EDA for Discogs 90s Electronic Releases",
		Charts: charts,
	}
}

func yearsByFormat(rows []pipeline.Row, formats []string) Chart {
	c := Chart{
		Title:  "Distribution of Releases Over the Years with Top 3 Formats",
		Kind:   StackedBar,
		XLabel: "Release Year",
		YLabel: "Number of Releases",
		Legend: "Format",
	}
	w, err := countTable(rows, release.ReleaseYear, release.Format)
	if err != nil {
		c.Err = err
		return c
	}
	c.Wide = w.SelectColumns(formats)
	return c
}

func distribution(rows []pipeline.Row, f release.Field, bins int) Chart {
	title := fieldTitle(f)
	c := Chart{
		Title:  fmt.Sprintf("Distribution of '%s'", title),
		Kind:   Histogram,
		XLabel: title,
		YLabel: "Count",
	}
	c.Histogram, c.Err = pipeline.Distribution(rows, f, bins)
	return c
}

func correlation(rows []pipeline.Row, opts Options) Chart {
	c := Chart{
		Title: fmt.Sprintf("Correlation Matrix for %s Releases", opts.Format),
		Kind:  Heatmap,
	}
	c.Matrix, c.Err = pipeline.Correlation(rows, correlationFields)
	return c
}

func extremes(rows []pipeline.Row) Chart {
	c := Chart{
		Title: "The Cheapest and the Most Expensive Records",
		Kind:  Records,
	}
	e, err := pipeline.Extremes(rows)
	if err != nil {
		c.Err = err
		return c
	}
	c.Extremes = &e
	return c
}

func fieldTitle(f release.Field) string {
	switch f {
	case release.Have:
		return "Have"
	case release.Want:
		return "Want"
	case release.LowestPrice:
		return "Lowest Price (USD)"
	case release.MedianPrice:
		return "Median Price (USD)"
	case release.HighestPrice:
		return "Highest Price (USD)"
	case release.MeanRating:
		return "Mean Rating"
	case release.NumRatings:
		return "Num Ratings"
	}
	return f.String()
}
