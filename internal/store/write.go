package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ademuri/discogs-eda/internal/release"
)

// DatasetImport describes a file being imported as a named dataset.
type DatasetImport struct {
	Name           string
	Source         string
	SourceModified time.Time
	Releases       []release.Release
}

// SaveDataset replaces the dataset with the given name, transactionally.
func (s *Store) SaveDataset(d DatasetImport) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := deleteDataset(tx, d.Name); err != nil {
		return err
	}

	_, err = tx.Exec("INSERT INTO Dataset (name, source, imported, row_count, source_modified) VALUES (?, ?, ?, ?, ?)",
		d.Name, d.Source, time.Now(), len(d.Releases), d.SourceModified)
	if err != nil {
		return fmt.Errorf("inserting dataset %q: %w", d.Name, err)
	}

	stmt, err := tx.Prepare(`
	INSERT INTO Releases (
		dataset, position, release_id, country, label, format, genre, styles, release_year,
		have, want, lowest_price, median_price, highest_price, mean_rating, num_ratings
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing release insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range d.Releases {
		_, err := stmt.Exec(d.Name, i, r.ID, r.Country, r.Label, r.Format, r.Genre, r.Styles, r.ReleaseYear,
			nullable(r.Have), nullable(r.Want), nullable(r.LowestPrice), nullable(r.MedianPrice),
			nullable(r.HighestPrice), nullable(r.MeanRating), nullable(r.NumRatings))
		if err != nil {
			return fmt.Errorf("inserting release %q: %w", r.ID, err)
		}
	}

	return tx.Commit()
}

// DeleteDataset removes a dataset and its releases.
func (s *Store) DeleteDataset(name string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	exists, err := datasetExists(tx, name)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %q", ErrDatasetNotFound, name)
	}
	if err := deleteDataset(tx, name); err != nil {
		return err
	}
	return tx.Commit()
}

func deleteDataset(tx *sql.Tx, name string) error {
	if _, err := tx.Exec("DELETE FROM Releases WHERE dataset = ?", name); err != nil {
		return fmt.Errorf("deleting releases of %q: %w", name, err)
	}
	if _, err := tx.Exec("DELETE FROM Dataset WHERE name = ?", name); err != nil {
		return fmt.Errorf("deleting dataset %q: %w", name, err)
	}
	return nil
}

func nullable(m release.Metric) sql.NullFloat64 {
	return sql.NullFloat64{Float64: m.Value, Valid: m.Valid}
}
