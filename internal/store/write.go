package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/thenickcox/spotify-rediscover/internal/analysis"
)

// RunMeta describes the input one run was computed from.
type RunMeta struct {
	GeneratedAt time.Time
	Files       int
	Events      int
	TotalMS     int64
}

// SaveInsights writes one run and all of its insight rows in a single
// transaction and returns the new run id. Saving into an existing database
// appends a run; earlier runs are never touched.
func (s *Store) SaveInsights(meta RunMeta, in *analysis.Insights) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		"INSERT INTO run (generated_at, files, events, total_ms) VALUES (?, ?, ?, ?)",
		meta.GeneratedAt.UTC().Format(time.RFC3339), meta.Files, meta.Events, meta.TotalMS)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	run, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	for i, a := range in.TopArtists {
		_, err := tx.Exec(
			"INSERT INTO top_artist (run, rank, artist, plays, hours) VALUES (?, ?, ?, ?, ?)",
			run, i+1, a.Artist, a.Plays, a.Hours)
		if err != nil {
			return 0, fmt.Errorf("inserting top artist %q: %w", a.Artist, err)
		}
	}

	if err := insertSpikes(tx, run, "artist_spike", in.ArtistSpikes); err != nil {
		return 0, err
	}
	if err := insertSpikes(tx, run, "album_spike", in.AlbumSpikes); err != nil {
		return 0, err
	}
	if err := insertDropoffs(tx, run, "artist_dropoff", in.ArtistDropoffs); err != nil {
		return 0, err
	}
	if err := insertDropoffs(tx, run, "album_dropoff", in.AlbumDropoffs); err != nil {
		return 0, err
	}

	for i, d := range in.Dormant {
		_, err := tx.Exec(
			"INSERT INTO dormant_artist (run, rank, artist, plays, hours, months_dormant, last_played) VALUES (?, ?, ?, ?, ?, ?, ?)",
			run, i+1, d.Artist, d.Plays, d.Hours, d.MonthsDormant,
			d.LastPlayed.UTC().Format(time.RFC3339))
		if err != nil {
			return 0, fmt.Errorf("inserting dormant artist %q: %w", d.Artist, err)
		}
	}

	for i, o := range in.Obsessions {
		_, err := tx.Exec(
			"INSERT INTO album_obsession (run, rank, artist, album, album_plays, artist_plays, share, peak_month) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			run, i+1, o.Artist, o.Album, o.AlbumPlays, o.ArtistPlays, o.Share, o.PeakMonth)
		if err != nil {
			return 0, fmt.Errorf("inserting obsession %q: %w", o.Artist, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return run, nil
}

func insertSpikes(tx *sql.Tx, run int64, table string, spikes []analysis.Spike) error {
	query := fmt.Sprintf(
		"INSERT INTO %s (run, rank, artist, album, month, plays, z) VALUES (?, ?, ?, ?, ?, ?, ?)", table)
	for i, sp := range spikes {
		if _, err := tx.Exec(query, run, i+1, sp.Artist, sp.Album, sp.Month, sp.Plays, sp.Z); err != nil {
			return fmt.Errorf("inserting into %s: %w", table, err)
		}
	}
	return nil
}

func insertDropoffs(tx *sql.Tx, run int64, table string, drops []analysis.Dropoff) error {
	query := fmt.Sprintf(
		"INSERT INTO %s (run, rank, artist, album, peak_month, peak_plays, lifetime, share, last_played) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)", table)
	for i, d := range drops {
		_, err := tx.Exec(query, run, i+1, d.Artist, d.Album, d.PeakMonth, d.PeakPlays,
			d.Lifetime, d.Share, d.LastPlayed.UTC().Format(time.RFC3339))
		if err != nil {
			return fmt.Errorf("inserting into %s: %w", table, err)
		}
	}
	return nil
}
