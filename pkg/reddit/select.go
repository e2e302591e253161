package reddit

import "github.com/grimdealz/dealscout/pkg/domain"

// SelectNewItems walks a newest-first sequence and returns the prefix
// strictly newer than lastSeenID, preserving order. With no prior cursor it
// returns at most seedCount items, bounding first-run backfill noise. When
// lastSeenID is set but absent from the page (feed rotated past it) the whole
// page is treated as new - documented at-least-once behavior, callers must
// tolerate the occasional duplicate.
func SelectNewItems(items []domain.FeedItem, lastSeenID string, seedCount int) []domain.FeedItem {
	if lastSeenID == "" {
		if len(items) > seedCount {
			return items[:seedCount]
		}
		return items
	}

	for i, item := range items {
		if item.Fullname == lastSeenID {
			return items[:i]
		}
	}
	return items
}
