package prefilter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grimdealz/dealscout/pkg/domain"
)

func TestFilter_Passes(t *testing.T) {
	f := New(nil)

	tests := []struct {
		name     string
		item     domain.FeedItem
		expected bool
	}{
		{
			name:     "purchase verb in title",
			item:     domain.FeedItem{Author: "hobbyist42", Title: "Looking to buy Leviathan", Body: "anyone selling?"},
			expected: true,
		},
		{
			name:     "purchase verb in body only",
			item:     domain.FeedItem{Author: "hobbyist42", Body: "I'm looking to buy a Combat Patrol box for my nephew"},
			expected: true,
		},
		{
			name:     "painted model is not purchase intent",
			item:     domain.FeedItem{Author: "hobbyist42", Title: "I painted my Leviathan", Body: "took three weeks"},
			expected: false,
		},
		{
			name:     "price check phrasing",
			item:     domain.FeedItem{Author: "newbie", Body: "Price check on a sealed Indomitus box?"},
			expected: true,
		},
		{
			name:     "how much question",
			item:     domain.FeedItem{Author: "newbie", Body: "how much is a combat patrol these days"},
			expected: true,
		},
		{
			name:     "deal seeking",
			item:     domain.FeedItem{Author: "cheapskate", Body: "Any deals on Necron stuff this week?"},
			expected: true,
		},
		{
			name:     "wtb abbreviation",
			item:     domain.FeedItem{Author: "trader", Title: "WTB: Heavy Intercessors NIB"},
			expected: true,
		},
		{
			name:     "wtb inside word does not match",
			item:     domain.FeedItem{Author: "trader", Body: "newtbridge painting guide"},
			expected: false,
		},
		{
			name:     "case insensitive match",
			item:     domain.FeedItem{Author: "shouty", Body: "WHERE CAN I BUY A LEVIATHAN"},
			expected: true,
		},
		{
			name:     "denylisted author rejected despite matching text",
			item:     domain.FeedItem{Author: "AutoModerator", Body: "looking to buy something? read the wiki"},
			expected: false,
		},
		{
			name:     "denylist is case insensitive",
			item:     domain.FeedItem{Author: "automoderator", Body: "looking to buy something?"},
			expected: false,
		},
		{
			name:     "no intent at all",
			item:     domain.FeedItem{Author: "lurker", Title: "Battle report", Body: "my necrons got tabled turn 3"},
			expected: false,
		},
		{
			name:     "empty item",
			item:     domain.FeedItem{Author: "lurker"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, f.Passes(tt.item))
		})
	}
}

func TestFilter_CustomDenylist(t *testing.T) {
	f := New([]string{"spambot9000"})

	denied := domain.FeedItem{Author: "spambot9000", Body: "looking to buy everything"}
	assert.False(t, f.Passes(denied))

	// default denylist not in effect when a custom one is given
	automod := domain.FeedItem{Author: "AutoModerator", Body: "looking to buy something"}
	assert.True(t, f.Passes(automod))
}

func TestFilter_EmptyDenylistDisablesAuthorFiltering(t *testing.T) {
	f := New([]string{})
	item := domain.FeedItem{Author: "AutoModerator", Body: "price check on Leviathan"}
	assert.True(t, f.Passes(item))
}
