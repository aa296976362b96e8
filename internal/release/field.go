package release

import "fmt"

// Field names one typed column of the release schema.
type Field int

const (
	ID Field = iota
	Country
	Label
	Format
	Genre
	Style
	ReleaseYear
	Have
	Want
	LowestPrice
	MedianPrice
	HighestPrice
	MeanRating
	NumRatings
)

type fieldInfo struct {
	name     string // Short name used in metric names and config.
	column   string // Header in the source CSV.
	numeric  bool
	required bool
}

var fields = map[Field]fieldInfo{
	ID:           {name: "id", column: "release_id"},
	Country:      {name: "country", column: "country", required: true},
	Label:        {name: "label", column: "label", required: true},
	Format:       {name: "format", column: "format", required: true},
	Genre:        {name: "genre", column: "genre", required: true},
	Style:        {name: "style", column: "styles", required: true},
	ReleaseYear:  {name: "release_year", column: "release_year", numeric: true, required: true},
	Have:         {name: "have", column: "have", numeric: true},
	Want:         {name: "want", column: "want", numeric: true},
	LowestPrice:  {name: "lowest_price", column: "lowest_price_(USD)", numeric: true},
	MedianPrice:  {name: "median_price", column: "median price_(USD)", numeric: true},
	HighestPrice: {name: "highest_price", column: "highest_price_(USD)", numeric: true},
	MeanRating:   {name: "mean_rating", column: "mean_rating", numeric: true},
	NumRatings:   {name: "num_ratings", column: "num_ratings", numeric: true},
}

// Metrics lists the optional numeric columns in source order.
var Metrics = []Field{Have, Want, LowestPrice, MedianPrice, HighestPrice, MeanRating, NumRatings}

func (f Field) String() string {
	if info, ok := fields[f]; ok {
		return info.name
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

// Column returns the CSV header for f.
func (f Field) Column() string {
	return fields[f].column
}

// Numeric reports whether f carries a number.
func (f Field) Numeric() bool {
	return fields[f].numeric
}

// Required reports whether a source file must contain f's column.
func (f Field) Required() bool {
	return fields[f].required
}

// ParseField looks up a field by its short name or CSV column.
func ParseField(s string) (Field, error) {
	for f, info := range fields {
		if info.name == s || info.column == s {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown field %q", s)
}
