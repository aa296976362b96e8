package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS Dataset (
  name TEXT PRIMARY KEY,
  source TEXT,
  imported DATETIME,
  row_count INTEGER,
  source_modified DATETIME
);

CREATE TABLE IF NOT EXISTS Releases (
  dataset TEXT,
  position INTEGER,
  release_id TEXT,
  country TEXT,
  label TEXT,
  format TEXT,
  genre TEXT,
  styles TEXT,
  release_year INTEGER,
  have REAL,
  want REAL,
  lowest_price REAL,
  median_price REAL,
  highest_price REAL,
  mean_rating REAL,
  num_ratings REAL,
  FOREIGN KEY (dataset) REFERENCES Dataset(name),
  PRIMARY KEY (dataset, position)
);
`

// Store keeps imported release datasets in SQLite. Only raw releases are
// stored; aggregates are always recomputed.
type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	if err := ensureSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensuring schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func ensureSchema(db *sql.DB) error {
	// CREATE TABLE IF NOT EXISTS leaves an existing table as it is, so columns
	// missing from it are added here.
	return addColumnIfNotExists(db, "Dataset", "source_modified", "DATETIME")
}

func addColumnIfNotExists(db *sql.DB, table, column, typeDef string) error {
	exists, err := columnExists(db, table, column)
	if err != nil {
		return fmt.Errorf("checking column %s.%s: %w", table, column, err)
	}
	if !exists {
		query := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, typeDef)
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("adding column %s.%s: %w", table, column, err)
		}
	}
	return nil
}

func columnExists(db *sql.DB, tableName string, columnName string) (bool, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", tableName))
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var cid int
		var name string
		var ctype string
		var notnull int
		var dfltValue interface{}
		var pk int
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dfltValue, &pk); err != nil {
			return false, err
		}
		if name == columnName {
			return true, nil
		}
	}
	return false, rows.Err()
}
