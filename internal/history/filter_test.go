package history

import (
	"testing"
	"time"
)

func musicRecord(ts string, ms int64, artist string) RawRecord {
	return RawRecord{
		Ts:       ts,
		MsPlayed: ms,
		Track:    strPtr("Song"),
		Album:    strPtr("Album"),
		Artist:   strPtr(artist),
	}
}

func TestFilterRecords_minMS(t *testing.T) {
	records := []RawRecord{
		musicRecord("2023-01-15T14:30:45Z", 30000, "Band"),
		musicRecord("2023-01-16T14:30:45Z", 29999, "Band"),
	}

	res := FilterRecords(records, FilterOptions{MinMS: 30000})
	if len(res.Events) != 1 {
		t.Fatalf("got %d events, want 1", len(res.Events))
	}
	if res.Events[0].MS != 30000 {
		t.Errorf("kept event MS = %d, want 30000", res.Events[0].MS)
	}
	if len(res.Excluded) != 1 {
		t.Fatalf("got %d excluded, want 1", len(res.Excluded))
	}
}

func TestFilterRecords_excludePodcasts(t *testing.T) {
	records := []RawRecord{
		musicRecord("2023-01-15T14:30:45Z", 1000, "Band"),
		{Ts: "2023-01-16T14:30:45Z", MsPlayed: 1000, Episode: strPtr("Episode 12")},
	}

	res := FilterRecords(records, FilterOptions{ExcludePodcasts: true})
	if len(res.Events) != 1 {
		t.Fatalf("got %d events, want 1", len(res.Events))
	}
	if res.Events[0].Podcast {
		t.Error("kept event is a podcast")
	}
	if len(res.Excluded) != 1 || !res.Excluded[0].Podcast {
		t.Fatalf("podcast should land in Excluded, got %+v", res.Excluded)
	}

	// Without the flag podcasts pass through.
	res = FilterRecords(records, FilterOptions{})
	if len(res.Events) != 2 {
		t.Fatalf("got %d events without flag, want 2", len(res.Events))
	}
}

func TestFilterRecords_untimed(t *testing.T) {
	records := []RawRecord{
		musicRecord("", 1000, "Band"),
		musicRecord("2023-01-15T14:30:45Z", 1000, "Band"),
	}

	res := FilterRecords(records, FilterOptions{})
	if len(res.Events) != 1 {
		t.Fatalf("untimed events should be dropped by default, got %d events", len(res.Events))
	}
	if len(res.Excluded) != 0 {
		t.Fatalf("untimed events must not reach Excluded, got %d", len(res.Excluded))
	}

	res = FilterRecords(records, FilterOptions{KeepUntimed: true})
	if len(res.Events) != 2 {
		t.Fatalf("got %d events with KeepUntimed, want 2", len(res.Events))
	}

	var untimed int
	for _, e := range res.Events {
		if e.Time.IsZero() {
			untimed++
		}
	}
	if untimed != 1 {
		t.Fatalf("got %d untimed events, want 1", untimed)
	}
}

func TestFilterRecords_untimedRejectsAreDiscarded(t *testing.T) {
	// A podcast with an unparseable timestamp is useless even for recency.
	records := []RawRecord{
		{Ts: "garbage", MsPlayed: 1000, Episode: strPtr("Episode 12")},
	}

	res := FilterRecords(records, FilterOptions{ExcludePodcasts: true, KeepUntimed: true})
	if len(res.Events) != 0 || len(res.Excluded) != 0 {
		t.Fatalf("got %d events and %d excluded, want none", len(res.Events), len(res.Excluded))
	}
}

func TestFilterRecords_excludedKeepsTimestamp(t *testing.T) {
	records := []RawRecord{
		{Ts: "2023-06-01T12:00:00Z", MsPlayed: 1000, Episode: strPtr("Episode 12")},
	}

	res := FilterRecords(records, FilterOptions{ExcludePodcasts: true})
	if len(res.Excluded) != 1 {
		t.Fatalf("got %d excluded, want 1", len(res.Excluded))
	}
	want := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)
	if !res.Excluded[0].Time.Equal(want) {
		t.Errorf("excluded time = %v, want %v", res.Excluded[0].Time, want)
	}
}
