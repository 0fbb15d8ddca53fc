package history

// FilterOptions control which raw records become analyzable play events.
type FilterOptions struct {
	// MinMS drops events played for fewer milliseconds than this.
	MinMS int64

	// ExcludePodcasts drops podcast episodes.
	ExcludePodcasts bool

	// KeepUntimed retains events whose timestamp could not be parsed.
	// Such events count toward lifetime totals but can never be bucketed
	// by month. When false they are dropped outright.
	KeepUntimed bool
}

// FilterResult separates qualifying events from timed rejects.
type FilterResult struct {
	// Events qualified for aggregation.
	Events []PlayEvent

	// Excluded holds podcast and below-minimum events that still carry a
	// usable timestamp. Callers that want "last played" to reflect any
	// listen at all feed these to Stats.ObserveRecency.
	Excluded []PlayEvent
}

// FilterRecords normalizes raw records and applies the filter rules.
func FilterRecords(records []RawRecord, opts FilterOptions) FilterResult {
	var res FilterResult
	for i := range records {
		event := records[i].Normalize()

		if (opts.ExcludePodcasts && event.Podcast) || event.MS < opts.MinMS {
			if !event.Time.IsZero() {
				res.Excluded = append(res.Excluded, event)
			}
			continue
		}

		if event.Time.IsZero() && !opts.KeepUntimed {
			continue
		}
		res.Events = append(res.Events, event)
	}
	return res
}
