package store

import (
	"fmt"

	"github.com/thenickcox/spotify-rediscover/internal/analysis"
)

// RunCount reports how many runs the database holds.
func (s *Store) RunCount() (int, error) {
	row := s.db.QueryRow("SELECT COUNT(*) FROM run")
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("counting runs: %w", err)
	}
	return n, nil
}

// TopArtists reads back the all-time ranking saved for one run, in rank
// order.
func (s *Store) TopArtists(run int64) ([]analysis.TopArtist, error) {
	rows, err := s.db.Query(
		"SELECT artist, plays, hours FROM top_artist WHERE run = ? ORDER BY rank ASC", run)
	if err != nil {
		return nil, fmt.Errorf("querying top artists: %w", err)
	}
	defer rows.Close()

	var artists []analysis.TopArtist
	for rows.Next() {
		var a analysis.TopArtist
		if err := rows.Scan(&a.Artist, &a.Plays, &a.Hours); err != nil {
			return nil, fmt.Errorf("scanning top artist: %w", err)
		}
		artists = append(artists, a)
	}
	return artists, rows.Err()
}
