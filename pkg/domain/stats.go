package domain

import "time"

// SourceStats holds per-source counts for one pass
type SourceStats struct {
	Source     string
	Fetched    int // raw items returned by the feed API
	New        int // items past the cursor frontier
	Filtered   int // items that passed the prefilter
	Classified int // items sent to the classifier
	Matched    int // items with intent above threshold
	Notified   int // match notifications dispatched
	Errors     int // per-item failures, isolated
	Skipped    bool
	SkipReason string
}

// PassStats aggregates one full pass over all configured sources
type PassStats struct {
	StartedAt time.Time
	Duration  time.Duration
	Sources   []SourceStats
}

// Add appends one source's stats
func (p *PassStats) Add(s SourceStats) {
	p.Sources = append(p.Sources, s)
}

// Totals sums counts across sources
func (p *PassStats) Totals() (fetched, newItems, filtered, matched, notified, errors, skipped int) {
	for _, s := range p.Sources {
		fetched += s.Fetched
		newItems += s.New
		filtered += s.Filtered
		matched += s.Matched
		notified += s.Notified
		errors += s.Errors
		if s.Skipped {
			skipped++
		}
	}
	return fetched, newItems, filtered, matched, notified, errors, skipped
}
