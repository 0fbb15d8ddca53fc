package analysis

import (
	"sort"
	"time"

	"github.com/thenickcox/spotify-rediscover/internal/history"
)

// AlbumKey identifies an album within an artist's catalog. Empty strings
// are legitimate components for records with missing metadata.
type AlbumKey struct {
	Artist string
	Album  string
}

// Series accumulates one entity's play history. A Series is owned by the
// Aggregator while it runs and is read-only once classification starts.
type Series struct {
	// Monthly maps "YYYY-MM" to play count. Sparse: only months with at
	// least one play appear.
	Monthly map[string]int

	// Plays is the lifetime play count, untimed events included.
	Plays int

	// MS is the lifetime played duration in milliseconds.
	MS int64

	// First and Last are the earliest and latest timed plays.
	First time.Time
	Last  time.Time
}

// TimedPlays is the sum of the monthly counts. It differs from Plays only
// when untimed events were kept upstream.
func (s *Series) TimedPlays() int {
	total := 0
	for _, v := range s.Monthly {
		total += v
	}
	return total
}

// Hours is the lifetime listening time in hours.
func (s *Series) Hours() float64 {
	return float64(s.MS) / 1000 / 60 / 60
}

func (s *Series) observe(e history.PlayEvent) {
	s.Plays++
	s.MS += e.MS
	if e.Time.IsZero() {
		return
	}
	s.Monthly[history.MonthKey(e.Time)]++
	s.observeTime(e.Time)
}

func (s *Series) observeTime(t time.Time) {
	if s.First.IsZero() || t.Before(s.First) {
		s.First = t
	}
	if t.After(s.Last) {
		s.Last = t
	}
}

// Stats is the aggregation of one filtered dataset.
type Stats struct {
	Artists map[string]*Series
	Albums  map[AlbumKey]*Series

	// Months is the global month axis: every month key present anywhere
	// in the dataset, ascending. Every entity's z-scores are computed
	// over this shared axis so entities compare apples-to-apples.
	Months []string

	// Events counts the aggregated play events, Untimed the subset with
	// no usable timestamp.
	Events  int
	Untimed int

	// TotalMS is the summed played duration across all events.
	TotalMS int64
}

// Aggregate builds per-artist and per-album series plus the global month
// axis from already-filtered play events.
func Aggregate(events []history.PlayEvent) *Stats {
	stats := &Stats{
		Artists: make(map[string]*Series),
		Albums:  make(map[AlbumKey]*Series),
	}
	monthSet := make(map[string]bool)

	for _, e := range events {
		stats.Events++
		stats.TotalMS += e.MS
		if e.Time.IsZero() {
			stats.Untimed++
		} else {
			monthSet[history.MonthKey(e.Time)] = true
		}

		stats.artistSeries(e.Artist).observe(e)
		stats.albumSeries(AlbumKey{Artist: e.Artist, Album: e.Album}).observe(e)
	}

	stats.Months = make([]string, 0, len(monthSet))
	for m := range monthSet {
		stats.Months = append(stats.Months, m)
	}
	sort.Strings(stats.Months)

	return stats
}

// ObserveRecency widens first/last timestamps of known entities from
// events that were excluded from play counting, for callers that want
// "last played" to reflect podcast or below-minimum listens too. Entities
// with no qualifying plays are not created, and no counts change.
func (st *Stats) ObserveRecency(events []history.PlayEvent) {
	for _, e := range events {
		if e.Time.IsZero() {
			continue
		}
		if s, ok := st.Artists[e.Artist]; ok {
			s.observeTime(e.Time)
		}
		if s, ok := st.Albums[AlbumKey{Artist: e.Artist, Album: e.Album}]; ok {
			s.observeTime(e.Time)
		}
	}
}

func (st *Stats) artistSeries(name string) *Series {
	s := st.Artists[name]
	if s == nil {
		s = &Series{Monthly: make(map[string]int)}
		st.Artists[name] = s
	}
	return s
}

func (st *Stats) albumSeries(key AlbumKey) *Series {
	s := st.Albums[key]
	if s == nil {
		s = &Series{Monthly: make(map[string]int)}
		st.Albums[key] = s
	}
	return s
}
