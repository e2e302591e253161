// Package prefilter screens feed items with cheap local rules before the
// expensive LLM classification call. False positives cost one LLM request,
// false negatives are accepted.
package prefilter

import (
	"regexp"
	"strings"

	"github.com/grimdealz/dealscout/pkg/domain"
)

// DefaultDenylist rejects the usual non-human subreddit authors
var DefaultDenylist = []string{"AutoModerator", "RemindMeBot", "sneakpeekbot"}

// intent-signaling patterns, checked in order against title+body.
// Purchase verbs first, then price queries, then deal seeking.
var patternSources = []string{
	`looking to buy`,
	`want(?:ing)? to buy`,
	`\bwtb\b`,
	`where (?:can|do|should) i (?:buy|find|order|get)`,
	`(?:planning|about) to (?:buy|order|pick up)`,
	`should i (?:buy|get|pick up)`,
	`how much (?:is|does|would|for)`,
	`price check`,
	`what'?s a (?:good|fair) price`,
	`is \$?\d+(?:\.\d+)? a (?:good|fair) (?:price|deal)`,
	`worth (?:it|buying|the price|\$\d+)`,
	`any (?:good )?deals on`,
	`looking for a (?:deal|discount)`,
	`cheapest (?:place|way|price)`,
	`on sale anywhere`,
	`best price (?:on|for)`,
	`where.{0,20}discount`,
}

// Filter is a pure predicate over feed items. Construct once, patterns are
// compiled at creation.
type Filter struct {
	denylist map[string]struct{}
	patterns []*regexp.Regexp
}

// New creates a filter with the given author denylist. Nil denylist means
// DefaultDenylist; pass an empty slice to disable author filtering.
func New(denylist []string) *Filter {
	if denylist == nil {
		denylist = DefaultDenylist
	}

	deny := make(map[string]struct{}, len(denylist))
	for _, a := range denylist {
		deny[strings.ToLower(a)] = struct{}{}
	}

	patterns := make([]*regexp.Regexp, 0, len(patternSources))
	for _, src := range patternSources {
		patterns = append(patterns, regexp.MustCompile(`(?i)`+src))
	}

	return &Filter{denylist: deny, patterns: patterns}
}

// Passes reports whether the item is worth escalating to the classifier.
// Denylisted authors are rejected regardless of text content.
func (f *Filter) Passes(item domain.FeedItem) bool {
	if _, denied := f.denylist[strings.ToLower(item.Author)]; denied {
		return false
	}

	text := item.Text()
	for _, p := range f.patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}
