// Package history loads Spotify extended streaming history exports and
// normalizes them into play events.
package history

import "time"

// RawRecord is a single entry of the exported streaming history JSON.
// Spotify emits null for metadata fields that do not apply, so those are
// pointers to keep null and empty distinguishable.
type RawRecord struct {
	Ts       string  `json:"ts"`
	MsPlayed int64   `json:"ms_played"`
	Track    *string `json:"master_metadata_track_name"`
	Album    *string `json:"master_metadata_album_album_name"`
	Artist   *string `json:"master_metadata_album_artist_name"`
	Episode  *string `json:"episode_name"`
	Show     *string `json:"episode_show_name"`
}

// PlayEvent is a normalized play. Missing metadata becomes the empty
// string, which is a legitimate grouping key, not a sentinel. A zero Time
// means the record's timestamp was absent or unparseable.
type PlayEvent struct {
	Time    time.Time
	MS      int64
	Track   string
	Album   string
	Artist  string
	Podcast bool
}

// IsPodcast reports whether the record is a podcast episode. Only the
// episode fields matter; the presence of music metadata does not make a
// record "not a podcast".
func (r *RawRecord) IsPodcast() bool {
	return deref(r.Episode) != "" || deref(r.Show) != ""
}

// Metadata extracts the track, album, and artist names, substituting the
// empty string for null or absent fields.
func (r *RawRecord) Metadata() (track, album, artist string) {
	return deref(r.Track), deref(r.Album), deref(r.Artist)
}

// Normalize converts the raw record into a PlayEvent.
func (r *RawRecord) Normalize() PlayEvent {
	track, album, artist := r.Metadata()
	return PlayEvent{
		Time:    ParseTimestamp(r.Ts),
		MS:      r.MsPlayed,
		Track:   track,
		Album:   album,
		Artist:  artist,
		Podcast: r.IsPodcast(),
	}
}

// Timestamp layouts seen across export generations. Layouts without a zone
// are taken as UTC.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseTimestamp parses an ISO-8601 timestamp into UTC. It accepts a
// trailing Z, an explicit numeric offset, or no offset at all. The zero
// time is returned for empty or unparseable input; this never fails. Two
// strings naming the same instant under different offsets parse to the
// same result.
func ParseTimestamp(ts string) time.Time {
	if ts == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// MonthKey projects a timestamp to its UTC calendar month, "YYYY-MM".
func MonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
