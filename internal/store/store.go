// Package store persists assembled insights to a sqlite database so runs
// over successive exports can be compared later.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func createTables(db *sql.DB) error {
	query := `
CREATE TABLE IF NOT EXISTS run (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  generated_at TEXT NOT NULL,
  files INTEGER NOT NULL,
  events INTEGER NOT NULL,
  total_ms INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS top_artist (
  run INTEGER NOT NULL,
  rank INTEGER NOT NULL,
  artist TEXT NOT NULL,
  plays INTEGER NOT NULL,
  hours REAL NOT NULL,
  FOREIGN KEY (run) REFERENCES run(id),
  PRIMARY KEY (run, rank)
);

CREATE TABLE IF NOT EXISTS artist_spike (
  run INTEGER NOT NULL,
  rank INTEGER NOT NULL,
  artist TEXT NOT NULL,
  album TEXT NOT NULL,
  month TEXT NOT NULL,
  plays INTEGER NOT NULL,
  z REAL NOT NULL,
  FOREIGN KEY (run) REFERENCES run(id),
  PRIMARY KEY (run, rank)
);

CREATE TABLE IF NOT EXISTS album_spike (
  run INTEGER NOT NULL,
  rank INTEGER NOT NULL,
  artist TEXT NOT NULL,
  album TEXT NOT NULL,
  month TEXT NOT NULL,
  plays INTEGER NOT NULL,
  z REAL NOT NULL,
  FOREIGN KEY (run) REFERENCES run(id),
  PRIMARY KEY (run, rank)
);

CREATE TABLE IF NOT EXISTS artist_dropoff (
  run INTEGER NOT NULL,
  rank INTEGER NOT NULL,
  artist TEXT NOT NULL,
  album TEXT NOT NULL,
  peak_month TEXT NOT NULL,
  peak_plays INTEGER NOT NULL,
  lifetime INTEGER NOT NULL,
  share REAL NOT NULL,
  last_played TEXT NOT NULL,
  FOREIGN KEY (run) REFERENCES run(id),
  PRIMARY KEY (run, rank)
);

CREATE TABLE IF NOT EXISTS album_dropoff (
  run INTEGER NOT NULL,
  rank INTEGER NOT NULL,
  artist TEXT NOT NULL,
  album TEXT NOT NULL,
  peak_month TEXT NOT NULL,
  peak_plays INTEGER NOT NULL,
  lifetime INTEGER NOT NULL,
  share REAL NOT NULL,
  last_played TEXT NOT NULL,
  FOREIGN KEY (run) REFERENCES run(id),
  PRIMARY KEY (run, rank)
);

CREATE TABLE IF NOT EXISTS dormant_artist (
  run INTEGER NOT NULL,
  rank INTEGER NOT NULL,
  artist TEXT NOT NULL,
  plays INTEGER NOT NULL,
  hours REAL NOT NULL,
  months_dormant INTEGER NOT NULL,
  last_played TEXT NOT NULL,
  FOREIGN KEY (run) REFERENCES run(id),
  PRIMARY KEY (run, rank)
);

CREATE TABLE IF NOT EXISTS album_obsession (
  run INTEGER NOT NULL,
  rank INTEGER NOT NULL,
  artist TEXT NOT NULL,
  album TEXT NOT NULL,
  album_plays INTEGER NOT NULL,
  artist_plays INTEGER NOT NULL,
  share REAL NOT NULL,
  peak_month TEXT NOT NULL,
  FOREIGN KEY (run) REFERENCES run(id),
  PRIMARY KEY (run, rank)
);
`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("executing schema: %w", err)
	}
	return nil
}
