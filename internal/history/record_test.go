package history

import (
	"testing"
	"time"
)

func strPtr(s string) *string {
	return &s
}

func TestParseTimestamp_utc(t *testing.T) {
	got := ParseTimestamp("2023-01-15T14:30:45Z")
	want := time.Date(2023, 1, 15, 14, 30, 45, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("ParseTimestamp(Z form) = %v, want %v", got, want)
	}
	if got.Location() != time.UTC {
		t.Fatalf("ParseTimestamp should normalize to UTC, got %v", got.Location())
	}
}

func TestParseTimestamp_sameInstantDifferentOffsets(t *testing.T) {
	forms := []string{
		"2023-01-15T14:30:45Z",
		"2023-01-15T14:30:45+00:00",
		"2023-01-15T09:30:45-05:00",
		"2023-01-15T16:30:45+02:00",
	}

	want := time.Date(2023, 1, 15, 14, 30, 45, 0, time.UTC)
	for _, form := range forms {
		got := ParseTimestamp(form)
		if !got.Equal(want) {
			t.Errorf("ParseTimestamp(%q) = %v, want %v", form, got, want)
		}
		if mk := MonthKey(got); mk != "2023-01" {
			t.Errorf("MonthKey(ParseTimestamp(%q)) = %q, want %q", form, mk, "2023-01")
		}
	}
}

func TestParseTimestamp_naiveIsUTC(t *testing.T) {
	got := ParseTimestamp("2023-01-15T14:30:45")
	want := time.Date(2023, 1, 15, 14, 30, 45, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("ParseTimestamp(naive) = %v, want %v", got, want)
	}
}

func TestParseTimestamp_invalid(t *testing.T) {
	for _, ts := range []string{"", "invalid", "2023-13-45T99:99:99Z", "15/01/2023"} {
		if got := ParseTimestamp(ts); !got.IsZero() {
			t.Errorf("ParseTimestamp(%q) = %v, want zero time", ts, got)
		}
	}
}

func TestMonthKey_boundaries(t *testing.T) {
	tests := []struct {
		ts   string
		want string
	}{
		{"2023-01-31T23:59:59Z", "2023-01"},
		{"2023-02-01T00:00:00Z", "2023-02"},
		// 00:30+02:00 is 22:30 UTC the previous day, so the previous month.
		{"2023-02-01T00:30:00+02:00", "2023-01"},
		{"2022-12-31T19:30:00-05:00", "2023-01"},
	}

	for _, tc := range tests {
		parsed := ParseTimestamp(tc.ts)
		if parsed.IsZero() {
			t.Fatalf("ParseTimestamp(%q) unexpectedly failed", tc.ts)
		}
		if got := MonthKey(parsed); got != tc.want {
			t.Errorf("MonthKey(%q) = %q, want %q", tc.ts, got, tc.want)
		}
	}
}

func TestIsPodcast(t *testing.T) {
	tests := []struct {
		name   string
		record RawRecord
		want   bool
	}{
		{"episode name set", RawRecord{Episode: strPtr("Episode 12")}, true},
		{"show name set", RawRecord{Show: strPtr("Some Show")}, true},
		{"both set", RawRecord{Episode: strPtr("Episode 12"), Show: strPtr("Some Show")}, true},
		{"both nil", RawRecord{}, false},
		{"both empty", RawRecord{Episode: strPtr(""), Show: strPtr("")}, false},
		{"music metadata only", RawRecord{Track: strPtr("Song"), Artist: strPtr("Band")}, false},
		{"music metadata plus show", RawRecord{Track: strPtr("Song"), Show: strPtr("Some Show")}, true},
	}

	for _, tc := range tests {
		if got := tc.record.IsPodcast(); got != tc.want {
			t.Errorf("%s: IsPodcast() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestMetadata_missingFieldsBecomeEmpty(t *testing.T) {
	record := RawRecord{Track: strPtr("Song"), Album: nil, Artist: strPtr("")}
	track, album, artist := record.Metadata()
	if track != "Song" {
		t.Errorf("track = %q, want %q", track, "Song")
	}
	if album != "" {
		t.Errorf("album = %q, want empty", album)
	}
	if artist != "" {
		t.Errorf("artist = %q, want empty", artist)
	}
}

func TestNormalize(t *testing.T) {
	record := RawRecord{
		Ts:       "2023-01-15T09:30:45-05:00",
		MsPlayed: 215000,
		Track:    strPtr("Song"),
		Album:    strPtr("Album"),
		Artist:   strPtr("Band"),
	}

	event := record.Normalize()
	want := time.Date(2023, 1, 15, 14, 30, 45, 0, time.UTC)
	if !event.Time.Equal(want) {
		t.Errorf("Time = %v, want %v", event.Time, want)
	}
	if event.MS != 215000 {
		t.Errorf("MS = %d, want 215000", event.MS)
	}
	if event.Artist != "Band" || event.Album != "Album" || event.Track != "Song" {
		t.Errorf("metadata = (%q, %q, %q), want (Band, Album, Song)", event.Artist, event.Album, event.Track)
	}
	if event.Podcast {
		t.Error("Podcast = true for a music record")
	}
}

func TestNormalize_badTimestamp(t *testing.T) {
	record := RawRecord{Ts: "not a timestamp", MsPlayed: 1000}
	event := record.Normalize()
	if !event.Time.IsZero() {
		t.Fatalf("Time = %v, want zero", event.Time)
	}
	if event.MS != 1000 {
		t.Fatalf("MS = %d, want 1000", event.MS)
	}
}
