package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ademuri/discogs-eda/internal/release"
)

var ErrDatasetNotFound = errors.New("dataset not found")

// DatasetInfo summarizes an imported dataset.
type DatasetInfo struct {
	Name           string
	Source         string
	Imported       time.Time
	SourceModified time.Time
	Rows           int
}

// Datasets lists every imported dataset by name.
func (s *Store) Datasets() ([]DatasetInfo, error) {
	rows, err := s.db.Query("SELECT name, source, imported, source_modified, row_count FROM Dataset ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("querying datasets: %w", err)
	}
	defer rows.Close()

	var out []DatasetInfo
	for rows.Next() {
		var d DatasetInfo
		var imported, modified sql.NullTime
		if err := rows.Scan(&d.Name, &d.Source, &imported, &modified, &d.Rows); err != nil {
			return nil, fmt.Errorf("scanning dataset: %w", err)
		}
		d.Imported = imported.Time
		d.SourceModified = modified.Time
		out = append(out, d)
	}
	return out, rows.Err()
}

// Releases returns a dataset's releases in their original file order.
func (s *Store) Releases(dataset string) ([]release.Release, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	exists, err := datasetExists(tx, dataset)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrDatasetNotFound, dataset)
	}

	rows, err := tx.Query(`
	SELECT release_id, country, label, format, genre, styles, release_year,
		have, want, lowest_price, median_price, highest_price, mean_rating, num_ratings
	FROM Releases
	WHERE dataset = ?
	ORDER BY position
	`, dataset)
	if err != nil {
		return nil, fmt.Errorf("querying releases: %w", err)
	}
	defer rows.Close()

	var releases []release.Release
	for rows.Next() {
		var r release.Release
		var metrics [7]sql.NullFloat64
		err := rows.Scan(&r.ID, &r.Country, &r.Label, &r.Format, &r.Genre, &r.Styles, &r.ReleaseYear,
			&metrics[0], &metrics[1], &metrics[2], &metrics[3], &metrics[4], &metrics[5], &metrics[6])
		if err != nil {
			return nil, fmt.Errorf("scanning release: %w", err)
		}
		r.Have = metric(metrics[0])
		r.Want = metric(metrics[1])
		r.LowestPrice = metric(metrics[2])
		r.MedianPrice = metric(metrics[3])
		r.HighestPrice = metric(metrics[4])
		r.MeanRating = metric(metrics[5])
		r.NumRatings = metric(metrics[6])
		releases = append(releases, r)
	}
	return releases, rows.Err()
}

func datasetExists(tx *sql.Tx, name string) (bool, error) {
	row := tx.QueryRow("SELECT name FROM Dataset WHERE name = ?", name)
	var found string
	err := row.Scan(&found)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking dataset %q: %w", name, err)
	}
	return true, nil
}

func metric(n sql.NullFloat64) release.Metric {
	return release.Metric{Value: n.Float64, Valid: n.Valid}
}
