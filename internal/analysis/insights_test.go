package analysis

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/thenickcox/spotify-rediscover/internal/history"
)

// insightFixture builds a dataset exercising every insight category:
//
//	Surge  - 90 plays of one album in 2022-03, silent since. Spikes at both
//	         levels, drops off, and is a one-album obsession.
//	Ghost  - 50 plays split over two albums in 2020-06, dormant by 2023-01.
//	Steady - one play a month through 2022, too flat and too small for
//	         anything but the all-time ranking.
func insightFixture() []history.PlayEvent {
	var events []history.PlayEvent
	for i := 0; i < 90; i++ {
		events = append(events, playAt("2022-03-05T12:00:00Z", "Surge", "Eruption", 180000))
	}
	for i := 0; i < 25; i++ {
		events = append(events, playAt("2020-06-01T08:00:00Z", "Ghost", "Apparition", 180000))
		events = append(events, playAt("2020-06-02T08:00:00Z", "Ghost", "Haunting", 180000))
	}
	for m := 1; m <= 6; m++ {
		ts := fmt.Sprintf("2022-%02d-15T20:00:00Z", m)
		events = append(events, playAt(ts, "Steady", "Even", 180000))
	}
	return events
}

func TestBuildInsights(t *testing.T) {
	now := date(2023, time.January, 15)
	stats := Aggregate(insightFixture())
	in := BuildInsights(stats, DefaultConfig(), now)

	if !in.GeneratedAt.Equal(now) {
		t.Errorf("GeneratedAt = %v, want %v", in.GeneratedAt, now)
	}

	wantTop := []TopArtist{
		{Artist: "Surge", Plays: 90, Hours: 4.5},
		{Artist: "Ghost", Plays: 50, Hours: 2.5},
		{Artist: "Steady", Plays: 6, Hours: 0.3},
	}
	if !reflect.DeepEqual(in.TopArtists, wantTop) {
		t.Errorf("TopArtists = %+v, want %+v", in.TopArtists, wantTop)
	}

	if len(in.ArtistSpikes) != 1 {
		t.Fatalf("ArtistSpikes = %+v, want exactly one", in.ArtistSpikes)
	}
	spike := in.ArtistSpikes[0]
	if spike.Artist != "Surge" || spike.Month != "2022-03" || spike.Plays != 90 {
		t.Errorf("artist spike = %+v", spike)
	}
	if spike.Z < 2.0 {
		t.Errorf("artist spike z = %v, want >= 2.0", spike.Z)
	}

	if len(in.AlbumSpikes) != 1 {
		t.Fatalf("AlbumSpikes = %+v, want exactly one", in.AlbumSpikes)
	}
	if a := in.AlbumSpikes[0]; a.Artist != "Surge" || a.Album != "Eruption" || a.Month != "2022-03" {
		t.Errorf("album spike = %+v", a)
	}

	if len(in.ArtistDropoffs) != 2 {
		t.Fatalf("ArtistDropoffs = %+v, want two", in.ArtistDropoffs)
	}
	// Both have a full-share peak; higher peak plays rank first.
	if in.ArtistDropoffs[0].Artist != "Surge" || in.ArtistDropoffs[1].Artist != "Ghost" {
		t.Errorf("artist drop-off order = %q, %q, want Surge, Ghost",
			in.ArtistDropoffs[0].Artist, in.ArtistDropoffs[1].Artist)
	}
	surge := in.ArtistDropoffs[0]
	if surge.PeakMonth != "2022-03" || surge.PeakPlays != 90 || surge.Lifetime != 90 || surge.Share != 1.0 {
		t.Errorf("Surge drop-off = %+v", surge)
	}

	wantAlbumOrder := []struct{ artist, album string }{
		{"Surge", "Eruption"},
		{"Ghost", "Apparition"},
		{"Ghost", "Haunting"},
	}
	if len(in.AlbumDropoffs) != len(wantAlbumOrder) {
		t.Fatalf("AlbumDropoffs = %+v, want three", in.AlbumDropoffs)
	}
	for i, want := range wantAlbumOrder {
		got := in.AlbumDropoffs[i]
		if got.Artist != want.artist || got.Album != want.album {
			t.Errorf("album drop-off %d = %q/%q, want %q/%q",
				i, got.Artist, got.Album, want.artist, want.album)
		}
	}

	if len(in.Dormant) != 1 {
		t.Fatalf("Dormant = %+v, want exactly one", in.Dormant)
	}
	ghost := in.Dormant[0]
	if ghost.Artist != "Ghost" || ghost.Plays != 50 || ghost.MonthsDormant != 31 {
		t.Errorf("dormant = %+v", ghost)
	}

	if len(in.Obsessions) != 1 {
		t.Fatalf("Obsessions = %+v, want exactly one", in.Obsessions)
	}
	ob := in.Obsessions[0]
	if ob.Artist != "Surge" || ob.Album != "Eruption" || ob.AlbumPlays != 90 ||
		ob.ArtistPlays != 90 || ob.Share != 1.0 || ob.PeakMonth != "2022-03" {
		t.Errorf("obsession = %+v", ob)
	}
}

func TestBuildInsights_empty(t *testing.T) {
	now := date(2023, time.January, 15)
	in := BuildInsights(Aggregate(nil), DefaultConfig(), now)

	if len(in.TopArtists) != 0 || len(in.ArtistSpikes) != 0 || len(in.AlbumSpikes) != 0 ||
		len(in.ArtistDropoffs) != 0 || len(in.AlbumDropoffs) != 0 ||
		len(in.Dormant) != 0 || len(in.Obsessions) != 0 {
		t.Errorf("insights over no events should be empty, got %+v", in)
	}
	if !in.GeneratedAt.Equal(now) {
		t.Errorf("GeneratedAt = %v, want %v", in.GeneratedAt, now)
	}
}

func TestBuildInsights_truncation(t *testing.T) {
	var events []history.PlayEvent
	for i := 0; i < 10; i++ {
		artist := fmt.Sprintf("Artist %02d", i)
		for p := 0; p <= i; p++ {
			events = append(events, playAt("2022-01-10T10:00:00Z", artist, "Album", 60000))
		}
	}

	cfg := DefaultConfig()
	cfg.TopN = 3
	in := BuildInsights(Aggregate(events), cfg, date(2023, time.January, 15))

	if len(in.TopArtists) != 3 {
		t.Fatalf("TopArtists length = %d, want 3", len(in.TopArtists))
	}
	for i, want := range []string{"Artist 09", "Artist 08", "Artist 07"} {
		if in.TopArtists[i].Artist != want {
			t.Errorf("TopArtists[%d] = %q, want %q", i, in.TopArtists[i].Artist, want)
		}
	}
}

func TestBuildInsights_topArtistTieBreak(t *testing.T) {
	events := []history.PlayEvent{
		playAt("2022-01-10T10:00:00Z", "Zebra", "A", 60000),
		playAt("2022-01-10T10:00:00Z", "Aardvark", "A", 60000),
	}
	in := BuildInsights(Aggregate(events), DefaultConfig(), date(2023, time.January, 15))

	if in.TopArtists[0].Artist != "Aardvark" || in.TopArtists[1].Artist != "Zebra" {
		t.Errorf("equal play counts should rank by name, got %+v", in.TopArtists)
	}
}

func TestBuildInsights_deterministic(t *testing.T) {
	now := date(2023, time.January, 15)
	cfg := DefaultConfig()

	first := BuildInsights(Aggregate(insightFixture()), cfg, now)
	for i := 0; i < 5; i++ {
		next := BuildInsights(Aggregate(insightFixture()), cfg, now)
		if !reflect.DeepEqual(first, next) {
			t.Fatalf("run %d differed from the first run", i+2)
		}
	}
}
