package release

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Load reads every release from the CSV file at path.
func Load(path string) ([]Release, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DataFormatError{Path: path, Err: err}
	}
	defer f.Close()

	releases, err := Read(f)
	if err != nil {
		var dfe *DataFormatError
		if errors.As(err, &dfe) {
			dfe.Path = path
		}
		return nil, err
	}
	return releases, nil
}

// Read parses releases from CSV with a named header row. Columns are matched
// by name, so their order and any extra columns don't matter.
func Read(r io.Reader) ([]Release, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &DataFormatError{Err: errors.New("missing header row")}
	}
	if err != nil {
		return nil, &DataFormatError{Err: err}
	}

	index := make(map[Field]int)
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		for f, info := range fields {
			if info.column == name {
				index[f] = i
			}
		}
	}
	for f := ID; f <= NumRatings; f++ {
		if _, ok := index[f]; !ok && f.Required() {
			return nil, &DataFormatError{Column: f.Column(), Err: errors.New("required column missing")}
		}
	}

	var releases []Release
	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, &DataFormatError{Row: row, Err: err}
		}

		rel, err := parseRecord(record, index, row)
		if err != nil {
			return nil, err
		}
		releases = append(releases, rel)
	}
	return releases, nil
}

func parseRecord(record []string, index map[Field]int, row int) (Release, error) {
	cell := func(f Field) string {
		i, ok := index[f]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	rel := Release{
		ID:      cell(ID),
		Country: cell(Country),
		Label:   cell(Label),
		Format:  cell(Format),
		Genre:   cell(Genre),
		Styles:  cell(Style),
	}
	if rel.ID == "" {
		rel.ID = strconv.Itoa(row - 1)
	}

	year, err := parseYear(cell(ReleaseYear))
	if err != nil {
		return Release{}, &DataFormatError{Column: ReleaseYear.Column(), Row: row, Err: err}
	}
	rel.ReleaseYear = year

	for _, f := range Metrics {
		m, err := parseMetric(cell(f))
		if err != nil {
			return Release{}, &DataFormatError{Column: f.Column(), Row: row, Err: err}
		}
		rel.setMetric(f, m)
	}
	return rel, nil
}

// parseYear accepts "1995" as well as the "1995.0" pandas writes for float
// columns.
func parseYear(s string) (int, error) {
	if s == "" {
		return 0, errors.New("empty release year")
	}
	if y, err := strconv.Atoi(s); err == nil {
		return y, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("invalid release year %q", s)
	}
	return int(f), nil
}

func parseMetric(s string) (Metric, error) {
	switch strings.ToLower(s) {
	case "", "nan", "na", "null":
		return Metric{}, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Metric{}, fmt.Errorf("invalid number %q", s)
	}
	if math.IsNaN(v) {
		return Metric{}, nil
	}
	return Known(v), nil
}
