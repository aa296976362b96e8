package dashboard

import (
	"fmt"

	"github.com/ademuri/discogs-eda/internal/pipeline"
	"github.com/ademuri/discogs-eda/internal/release"
)

// Overview charts the whole catalogue and how opts.Genre compares to it.
func Overview(releases []release.Release, opts Options) Page {
	rows := pipeline.Rows(releases)
	return Page{
		Name:  "overview",
		Title: "Some General Insights into Discogs Catalogue",
		Charts: []Chart{
			topCounts("Top 10 Genres", rows, release.Genre, 10, "Genre"),
			topCounts("Top 5 Formats", rows, release.Format, 5, "Format"),
			countriesWithGenre(rows, opts),
			genresByYear(rows, opts),
			labelsByGenreAndYear(rows, opts),
			stylesByYear(rows, opts),
		},
	}
}

func countriesWithGenre(rows []pipeline.Row, opts Options) Chart {
	c := Chart{
		Title:  fmt.Sprintf("Top 10 Countries in Terms of Total Music Releases compared to %s Music Genre", opts.Genre),
		Kind:   GroupedBar,
		XLabel: "Country",
		YLabel: "Count",
	}
	top, err := pipeline.TopK(pipeline.Where(rows, pipeline.NotEquals(release.Country, opts.ExcludeCountry)), release.Country, 10)
	if err != nil {
		c.Err = err
		return c
	}

	genreCounts := make(map[string]int)
	for _, r := range pipeline.Where(rows, pipeline.Equals(release.Genre, opts.Genre)) {
		genreCounts[r.Country]++
	}

	totalColumn := "Total Count"
	genreColumn := opts.Genre + " Count"
	w := pipeline.NewWideTable()
	for _, kc := range top {
		w.Set(kc.Key, totalColumn, float64(kc.Count))
		w.Set(kc.Key, genreColumn, float64(genreCounts[kc.Key]))
	}
	c.Long = pipeline.Melt(w, []string{totalColumn, genreColumn})
	return c
}

func genresByYear(rows []pipeline.Row, opts Options) Chart {
	c := Chart{
		Title:  "Trends of Music Releases by Genre Over Years",
		Kind:   Line,
		XLabel: "Year",
		YLabel: "Number of Releases",
		Legend: "Genre",
	}
	top, err := pipeline.TopK(rows, release.Genre, 10)
	if err != nil {
		c.Err = err
		return c
	}
	filtered := pipeline.Where(rows, pipeline.All(
		pipeline.In(release.Genre, pipeline.KeySet(top)),
		pipeline.YearAtMost(opts.YearCutoff),
	))
	c.Wide, c.Err = countTable(filtered, release.ReleaseYear, release.Genre)
	return c
}

func labelsByGenreAndYear(rows []pipeline.Row, opts Options) Chart {
	c := Chart{
		Title:  "Number of Labels Issuing Releases by Genre and Year",
		Kind:   Line,
		XLabel: "Year",
		YLabel: "Number of Unique Labels",
		Legend: "Genre",
	}
	top, err := pipeline.TopK(rows, release.Genre, 5)
	if err != nil {
		c.Err = err
		return c
	}
	filtered := pipeline.Where(rows, pipeline.All(
		pipeline.In(release.Genre, pipeline.KeySet(top)),
		pipeline.YearAtMost(opts.YearCutoff),
	))
	agg, err := pipeline.Aggregate(filtered, []release.Field{release.ReleaseYear, release.Genre}, pipeline.NUnique(release.Label))
	if err != nil {
		c.Err = err
		return c
	}
	if err := pipeline.Undefined(agg); err != nil {
		c.Note = err.Error()
	}
	c.Long, c.Err = pipeline.LongForm(agg)
	return c
}

func stylesByYear(rows []pipeline.Row, opts Options) Chart {
	c := Chart{
		Title:  fmt.Sprintf("Analysis of %s Music Subgenres Over Time", opts.Genre),
		Kind:   Line,
		XLabel: "Year",
		YLabel: "Unique Styles",
	}
	filtered := pipeline.Where(rows, pipeline.All(
		pipeline.Equals(release.Genre, opts.Genre),
		pipeline.YearAtMost(opts.YearCutoff),
	))
	series, err := pipeline.Aggregate(pipeline.ExplodeRows(filtered), []release.Field{release.ReleaseYear}, pipeline.NUnique(release.Style))
	if err != nil {
		c.Err = err
		return c
	}
	c.Series = series
	return c
}
