package analysis

import "time"

// MonthsSince counts whole calendar months from past to now using only the
// (year, month) components. Day-of-month is ignored entirely.
func MonthsSince(past, now time.Time) int {
	return (now.Year()-past.Year())*12 + int(now.Month()) - int(past.Month())
}

// spikeHit marks one month whose play count stands out against the
// entity's whole history.
type spikeHit struct {
	Month string
	Plays int
	Z     float64
}

// findSpikes returns the axis months, in order, where the series both
// clears the z-score threshold and the raw play floor. Ties at either
// threshold qualify.
func findSpikes(monthly map[string]int, months []string, minPlays int, minZ float64) []spikeHit {
	series := ZScoreSeries(monthly, months)

	var hits []spikeHit
	for _, m := range months {
		p := series[m]
		if p.Plays >= minPlays && p.Z >= minZ {
			hits = append(hits, spikeHit{Month: m, Plays: p.Plays, Z: p.Z})
		}
	}
	return hits
}

// peakOf finds the month with the maximum count. Equal counts resolve to
// the earliest month key, never to map iteration order.
func peakOf(monthly map[string]int) (month string, plays int) {
	for m, v := range monthly {
		if v > plays || (v == plays && (month == "" || m < month)) {
			month, plays = m, v
		}
	}
	return month, plays
}

// qualifiesDropoff reports the peak month of a series when that peak
// dominated lifetime plays and the entity has since gone quiet:
// the peak must reach the raw floor, hold at least DropPeakShare of the
// timed lifetime plays, and the last play must be at least
// DropSilenceMonths whole months before now.
func qualifiesDropoff(s *Series, now time.Time, cfg Config) (peakMonth string, peakPlays int, ok bool) {
	lifetime := s.TimedPlays()
	if lifetime == 0 {
		return "", 0, false
	}

	peakMonth, peakPlays = peakOf(s.Monthly)
	if peakPlays < cfg.DropPeakMinPlays {
		return "", 0, false
	}
	if float64(peakPlays)/float64(lifetime) < cfg.DropPeakShare {
		return "", 0, false
	}
	if s.Last.IsZero() || MonthsSince(s.Last, now) < cfg.DropSilenceMonths {
		return "", 0, false
	}
	return peakMonth, peakPlays, true
}

// qualifiesDormant reports how long an artist has been quiet when its
// lifetime plays reach the floor and its last play is more than
// DormantMonths whole months ago.
func qualifiesDormant(s *Series, now time.Time, cfg Config) (monthsDormant int, ok bool) {
	if s.Plays < cfg.DormantMinPlays || s.Last.IsZero() {
		return 0, false
	}
	monthsDormant = MonthsSince(s.Last, now)
	if monthsDormant <= cfg.DormantMonths {
		return 0, false
	}
	return monthsDormant, true
}

// qualifiesObsession picks the artist's most played album (smallest name
// wins ties) and reports it when it reaches the raw floor and holds at
// least ObsessionDominance of the artist's lifetime plays. This is the
// drop-off dominance rule applied to album-within-artist instead of
// month-within-entity.
func qualifiesObsession(artistPlays int, albums map[string]*Series, cfg Config) (album string, plays int, ok bool) {
	if artistPlays == 0 || len(albums) == 0 {
		return "", 0, false
	}

	first := true
	for name, s := range albums {
		if first || s.Plays > plays || (s.Plays == plays && name < album) {
			album, plays = name, s.Plays
			first = false
		}
	}

	if plays < cfg.ObsessionMinPlays {
		return "", 0, false
	}
	if float64(plays)/float64(artistPlays) < cfg.ObsessionDominance {
		return "", 0, false
	}
	return album, plays, true
}
