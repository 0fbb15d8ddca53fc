// Package analysis aggregates play events into monthly series and applies
// statistical classifiers to surface forgotten listening habits.
package analysis

// Config holds every classification threshold. Thresholds travel as plain
// values so tests can vary them without touching shared state.
type Config struct {
	// SpikeZ is the minimum z-score for a month to count as a spike.
	// Ties qualify.
	SpikeZ float64

	// SpikeMinPlays is the raw play floor for artist spikes, guarding
	// against "3 plays when you normally have 0".
	SpikeMinPlays int

	// AlbumSpikeMinPlays is the raw play floor for album spikes.
	AlbumSpikeMinPlays int

	// DropPeakShare is the minimum fraction of lifetime plays the peak
	// month must hold for a drop-off.
	DropPeakShare float64

	// DropPeakMinPlays is the raw play floor for a drop-off peak month.
	DropPeakMinPlays int

	// DropSilenceMonths is the minimum whole calendar months of silence
	// since the last play for a drop-off.
	DropSilenceMonths int

	// DormantMinPlays is the lifetime play floor for dormant artists.
	DormantMinPlays int

	// DormantMonths is how long an artist must be quiet, in whole
	// calendar months, before counting as dormant. Strictly more than
	// this many months qualifies.
	DormantMonths int

	// ObsessionDominance is the minimum share of an artist's lifetime
	// plays that a single album must hold.
	ObsessionDominance float64

	// ObsessionMinPlays is the raw play floor for the dominant album.
	ObsessionMinPlays int

	// TopN caps every assembled insight list.
	TopN int
}

// DefaultConfig returns the stock thresholds.
func DefaultConfig() Config {
	return Config{
		SpikeZ:             2.0,
		SpikeMinPlays:      60,
		AlbumSpikeMinPlays: 30,
		DropPeakShare:      0.40,
		DropPeakMinPlays:   20,
		DropSilenceMonths:  6,
		DormantMinPlays:    50,
		DormantMonths:      24,
		ObsessionDominance: 0.80,
		ObsessionMinPlays:  20,
		TopN:               100,
	}
}
