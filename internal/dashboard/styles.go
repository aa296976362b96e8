package dashboard

import (
	"fmt"

	"github.com/ademuri/discogs-eda/internal/pipeline"
	"github.com/ademuri/discogs-eda/internal/release"
)

// Styles follows how the most common styles develop over the years.
func Styles(releases []release.Release, opts Options) Page {
	exploded := pipeline.Explode(releases)
	return Page{
		Name:  "styles",
		Title: fmt.Sprintf("Development of %s Music Styles Over Time", opts.Genre),
		Charts: []Chart{
			stylesOverTime("Development of Top 15 Styles Over Time", Line, exploded, 15),
			topCounts("Tree Map of Electronic Music Subgenres", exploded, release.Style, 40, "Style").as(Treemap, "Number of Releases"),
			stylesOverTime("Development of Top 15 Electronic Music Subgenres in the 90s", Area, exploded, 15),
			stylesOverTime("Sunburst Chart of Top 10 Electronic Music Subgenres in the 90s", Sunburst, exploded, 10),
		},
	}
}

// stylesOverTime counts releases per (year, style) for the k most common
// styles.
func stylesOverTime(title string, kind Kind, exploded []pipeline.Row, k int) Chart {
	c := Chart{
		Title:  title,
		Kind:   kind,
		XLabel: "Release Year",
		YLabel: "Number of Releases",
		Legend: "Style",
	}
	top, err := pipeline.TopK(exploded, release.Style, k)
	if err != nil {
		c.Err = err
		return c
	}
	c.Long, c.Err = countLong(pipeline.Where(exploded, pipeline.In(release.Style, pipeline.KeySet(top))), release.ReleaseYear, release.Style)
	return c
}

func (c Chart) as(kind Kind, yLabel string) Chart {
	c.Kind = kind
	c.YLabel = yLabel
	return c
}
