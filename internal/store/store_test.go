package store

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/ademuri/discogs-eda/internal/release"
)

func createTestDb(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "discogs.db")

	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("New(%s) error: %v", dbPath, err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func testReleases() []release.Release {
	return []release.Release{
		{ID: "10", Country: "UK", Label: "Warp Records", Format: "Vinyl", Genre: "Electronic", Styles: "IDM, Ambient", ReleaseYear: 1994, Have: release.Known(500), MedianPrice: release.Known(12.5)},
		{ID: "11", Country: "Belgium", Label: "R&S Records", Format: "Vinyl", Genre: "Electronic", Styles: "Techno", ReleaseYear: 1992},
	}
}

func TestSaveAndLoadDataset(t *testing.T) {
	s := createTestDb(t)

	modified := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	err := s.SaveDataset(DatasetImport{Name: "electronic", Source: "data/e.csv", SourceModified: modified, Releases: testReleases()})
	if err != nil {
		t.Fatalf("SaveDataset() error: %v", err)
	}

	releases, err := s.Releases("electronic")
	if err != nil {
		t.Fatalf("Releases() error: %v", err)
	}
	if len(releases) != 2 {
		t.Fatalf("Expected 2 releases, got %d", len(releases))
	}
	first := releases[0]
	if first.ID != "10" || first.Styles != "IDM, Ambient" || first.ReleaseYear != 1994 {
		t.Errorf("Unexpected first release: %+v", first)
	}
	if !first.Have.Valid || first.Have.Value != 500 {
		t.Errorf("Expected have=500, got %+v", first.Have)
	}
	if first.Want.Valid {
		t.Errorf("Expected want to stay missing, got %+v", first.Want)
	}

	datasets, err := s.Datasets()
	if err != nil {
		t.Fatalf("Datasets() error: %v", err)
	}
	if len(datasets) != 1 || datasets[0].Rows != 2 || datasets[0].Source != "data/e.csv" {
		t.Errorf("Unexpected datasets: %+v", datasets)
	}
	if !datasets[0].SourceModified.Equal(modified) {
		t.Errorf("Expected source modified %v, got %v", modified, datasets[0].SourceModified)
	}
}

func TestSaveDatasetReplaces(t *testing.T) {
	s := createTestDb(t)

	if err := s.SaveDataset(DatasetImport{Name: "all", Releases: testReleases()}); err != nil {
		t.Fatalf("SaveDataset() error: %v", err)
	}
	if err := s.SaveDataset(DatasetImport{Name: "all", Releases: testReleases()[:1]}); err != nil {
		t.Fatalf("SaveDataset() (repeat) error: %v", err)
	}

	releases, err := s.Releases("all")
	if err != nil {
		t.Fatalf("Releases() error: %v", err)
	}
	if len(releases) != 1 {
		t.Errorf("Expected 1 release after replace, got %d", len(releases))
	}
}

func TestDeleteDataset(t *testing.T) {
	s := createTestDb(t)

	if err := s.SaveDataset(DatasetImport{Name: "all", Releases: testReleases()}); err != nil {
		t.Fatalf("SaveDataset() error: %v", err)
	}
	if err := s.DeleteDataset("all"); err != nil {
		t.Fatalf("DeleteDataset() error: %v", err)
	}

	_, err := s.Releases("all")
	if !errors.Is(err, ErrDatasetNotFound) {
		t.Errorf("Expected ErrDatasetNotFound, got %v", err)
	}

	err = s.DeleteDataset("all")
	if !errors.Is(err, ErrDatasetNotFound) {
		t.Errorf("Expected ErrDatasetNotFound deleting twice, got %v", err)
	}
}

func TestReopenKeepsSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "discogs.db")
	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	s.Close()

	s, err = New(dbPath)
	if err != nil {
		t.Fatalf("New() on existing database error: %v", err)
	}
	defer s.Close()

	exists, err := columnExists(s.db, "Dataset", "source_modified")
	if err != nil || !exists {
		t.Errorf("Expected source_modified column, got %v, %v", exists, err)
	}
}

func TestNewAddsMissingColumns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "discogs.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("sql.Open() error: %v", err)
	}
	if _, err := db.Exec("CREATE TABLE Dataset (name TEXT PRIMARY KEY, source TEXT, imported DATETIME, row_count INTEGER)"); err != nil {
		t.Fatalf("creating Dataset table: %v", err)
	}
	db.Close()

	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer s.Close()

	exists, err := columnExists(s.db, "Dataset", "source_modified")
	if err != nil || !exists {
		t.Errorf("Expected source_modified column, got %v, %v", exists, err)
	}
	if err := s.SaveDataset(DatasetImport{Name: "electr_90s", SourceModified: time.Now(), Releases: testReleases()}); err != nil {
		t.Fatalf("SaveDataset() error: %v", err)
	}
}
