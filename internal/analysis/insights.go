package analysis

import (
	"sort"
	"time"
)

// TopArtist is one row of the all-time ranking.
type TopArtist struct {
	Artist string  `yaml:"artist"`
	Plays  int     `yaml:"plays"`
	Hours  float64 `yaml:"hours"`
}

// Spike flags one unusually intense month for an entity. Album is empty
// for artist-level spikes.
type Spike struct {
	Artist string  `yaml:"artist"`
	Album  string  `yaml:"album,omitempty"`
	Month  string  `yaml:"month"`
	Plays  int     `yaml:"plays"`
	Z      float64 `yaml:"z"`
}

// Dropoff describes a dominant peak month followed by lasting silence.
// Album is empty for artist-level drop-offs.
type Dropoff struct {
	Artist     string    `yaml:"artist"`
	Album      string    `yaml:"album,omitempty"`
	PeakMonth  string    `yaml:"peak_month"`
	PeakPlays  int       `yaml:"peak_plays"`
	Lifetime   int       `yaml:"lifetime_plays"`
	Share      float64   `yaml:"peak_share"`
	LastPlayed time.Time `yaml:"last_played"`
}

// DormantArtist is an artist with a substantial history and no recent
// plays.
type DormantArtist struct {
	Artist        string    `yaml:"artist"`
	Plays         int       `yaml:"plays"`
	Hours         float64   `yaml:"hours"`
	MonthsDormant int       `yaml:"months_dormant"`
	LastPlayed    time.Time `yaml:"last_played"`
}

// Obsession marks an artist whose lifetime plays concentrate on a single
// album.
type Obsession struct {
	Artist      string  `yaml:"artist"`
	Album       string  `yaml:"album"`
	AlbumPlays  int     `yaml:"album_plays"`
	ArtistPlays int     `yaml:"artist_plays"`
	Share       float64 `yaml:"share"`
	PeakMonth   string  `yaml:"peak_month"`
}

// Insights is the assembled output of one run: every list is ranked by its
// category's natural key and truncated to the configured top-N.
type Insights struct {
	GeneratedAt    time.Time       `yaml:"generated_at"`
	TopArtists     []TopArtist     `yaml:"top_artists"`
	ArtistSpikes   []Spike         `yaml:"artist_spikes"`
	AlbumSpikes    []Spike         `yaml:"album_spikes"`
	ArtistDropoffs []Dropoff       `yaml:"artist_dropoffs"`
	AlbumDropoffs  []Dropoff       `yaml:"album_dropoffs"`
	Dormant        []DormantArtist `yaml:"dormant_artists"`
	Obsessions     []Obsession     `yaml:"album_obsessions"`
}

// BuildInsights classifies every entity in stats and assembles the ranked
// insight lists. Output is fully deterministic: every sort carries a
// tie-break chain that ends in entity names, so map iteration order never
// shows through.
func BuildInsights(stats *Stats, cfg Config, now time.Time) *Insights {
	in := &Insights{GeneratedAt: now}

	for name, s := range stats.Artists {
		in.TopArtists = append(in.TopArtists, TopArtist{
			Artist: name,
			Plays:  s.Plays,
			Hours:  s.Hours(),
		})

		for _, hit := range findSpikes(s.Monthly, stats.Months, cfg.SpikeMinPlays, cfg.SpikeZ) {
			in.ArtistSpikes = append(in.ArtistSpikes, Spike{
				Artist: name, Month: hit.Month, Plays: hit.Plays, Z: hit.Z,
			})
		}

		if peakMonth, peakPlays, ok := qualifiesDropoff(s, now, cfg); ok {
			lifetime := s.TimedPlays()
			in.ArtistDropoffs = append(in.ArtistDropoffs, Dropoff{
				Artist:     name,
				PeakMonth:  peakMonth,
				PeakPlays:  peakPlays,
				Lifetime:   lifetime,
				Share:      float64(peakPlays) / float64(lifetime),
				LastPlayed: s.Last,
			})
		}

		if monthsDormant, ok := qualifiesDormant(s, now, cfg); ok {
			in.Dormant = append(in.Dormant, DormantArtist{
				Artist:        name,
				Plays:         s.Plays,
				Hours:         s.Hours(),
				MonthsDormant: monthsDormant,
				LastPlayed:    s.Last,
			})
		}
	}

	for key, s := range stats.Albums {
		for _, hit := range findSpikes(s.Monthly, stats.Months, cfg.AlbumSpikeMinPlays, cfg.SpikeZ) {
			in.AlbumSpikes = append(in.AlbumSpikes, Spike{
				Artist: key.Artist, Album: key.Album,
				Month: hit.Month, Plays: hit.Plays, Z: hit.Z,
			})
		}

		if peakMonth, peakPlays, ok := qualifiesDropoff(s, now, cfg); ok {
			lifetime := s.TimedPlays()
			in.AlbumDropoffs = append(in.AlbumDropoffs, Dropoff{
				Artist:     key.Artist,
				Album:      key.Album,
				PeakMonth:  peakMonth,
				PeakPlays:  peakPlays,
				Lifetime:   lifetime,
				Share:      float64(peakPlays) / float64(lifetime),
				LastPlayed: s.Last,
			})
		}
	}

	albumsByArtist := make(map[string]map[string]*Series)
	for key, s := range stats.Albums {
		byName := albumsByArtist[key.Artist]
		if byName == nil {
			byName = make(map[string]*Series)
			albumsByArtist[key.Artist] = byName
		}
		byName[key.Album] = s
	}
	for name, s := range stats.Artists {
		album, plays, ok := qualifiesObsession(s.Plays, albumsByArtist[name], cfg)
		if !ok {
			continue
		}
		peakMonth, _ := peakOf(albumsByArtist[name][album].Monthly)
		in.Obsessions = append(in.Obsessions, Obsession{
			Artist:      name,
			Album:       album,
			AlbumPlays:  plays,
			ArtistPlays: s.Plays,
			Share:       float64(plays) / float64(s.Plays),
			PeakMonth:   peakMonth,
		})
	}

	in.sortAndTruncate(cfg.TopN)
	return in
}

func (in *Insights) sortAndTruncate(topN int) {
	sort.Slice(in.TopArtists, func(i, j int) bool {
		a, b := in.TopArtists[i], in.TopArtists[j]
		if a.Plays != b.Plays {
			return a.Plays > b.Plays
		}
		return a.Artist < b.Artist
	})
	in.TopArtists = truncate(in.TopArtists, topN)

	sortSpikes(in.ArtistSpikes)
	in.ArtistSpikes = truncate(in.ArtistSpikes, topN)
	sortSpikes(in.AlbumSpikes)
	in.AlbumSpikes = truncate(in.AlbumSpikes, topN)

	sortDropoffs(in.ArtistDropoffs)
	in.ArtistDropoffs = truncate(in.ArtistDropoffs, topN)
	sortDropoffs(in.AlbumDropoffs)
	in.AlbumDropoffs = truncate(in.AlbumDropoffs, topN)

	sort.Slice(in.Dormant, func(i, j int) bool {
		a, b := in.Dormant[i], in.Dormant[j]
		if a.Plays != b.Plays {
			return a.Plays > b.Plays
		}
		if a.MonthsDormant != b.MonthsDormant {
			return a.MonthsDormant > b.MonthsDormant
		}
		return a.Artist < b.Artist
	})
	in.Dormant = truncate(in.Dormant, topN)

	sort.Slice(in.Obsessions, func(i, j int) bool {
		a, b := in.Obsessions[i], in.Obsessions[j]
		if a.Share != b.Share {
			return a.Share > b.Share
		}
		if a.AlbumPlays != b.AlbumPlays {
			return a.AlbumPlays > b.AlbumPlays
		}
		return a.Artist < b.Artist
	})
	in.Obsessions = truncate(in.Obsessions, topN)
}

func sortSpikes(spikes []Spike) {
	sort.Slice(spikes, func(i, j int) bool {
		a, b := spikes[i], spikes[j]
		if a.Z != b.Z {
			return a.Z > b.Z
		}
		if a.Plays != b.Plays {
			return a.Plays > b.Plays
		}
		if a.Month != b.Month {
			return a.Month < b.Month
		}
		if a.Artist != b.Artist {
			return a.Artist < b.Artist
		}
		return a.Album < b.Album
	})
}

func sortDropoffs(drops []Dropoff) {
	sort.Slice(drops, func(i, j int) bool {
		a, b := drops[i], drops[j]
		if a.Share != b.Share {
			return a.Share > b.Share
		}
		if a.PeakPlays != b.PeakPlays {
			return a.PeakPlays > b.PeakPlays
		}
		if a.Artist != b.Artist {
			return a.Artist < b.Artist
		}
		return a.Album < b.Album
	})
}

func truncate[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}
