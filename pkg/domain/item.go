package domain

import "time"

// ItemKind distinguishes posts from comments
type ItemKind string

const (
	KindPost    ItemKind = "post"
	KindComment ItemKind = "comment"
)

// FeedItem represents a normalized discussion unit (post or comment) fetched
// from one source. Immutable once fetched; items live for a single pass and
// are never persisted individually.
type FeedItem struct {
	Fullname  string   // opaque unique id, e.g. "t3_abc123" for posts, "t1_xyz789" for comments
	Kind      ItemKind
	Source    string // subreddit name without the /r/ prefix
	Author    string
	Title     string // empty for comments
	Body      string
	Permalink string // human-navigable URL
	CreatedAt time.Time
}

// Text returns the combined searchable text of the item
func (i *FeedItem) Text() string {
	if i.Title == "" {
		return i.Body
	}
	if i.Body == "" {
		return i.Title
	}
	return i.Title + "\n" + i.Body
}

// IntentType is the classifier's judgment of what the author wants
type IntentType string

const (
	IntentBuying         IntentType = "buying"
	IntentPriceCheck     IntentType = "price_check"
	IntentRecommendation IntentType = "recommendation"
)

// ValidIntentType reports whether t is one of the known intent kinds
func ValidIntentType(t IntentType) bool {
	switch t {
	case IntentBuying, IntentPriceCheck, IntentRecommendation:
		return true
	}
	return false
}

// IntentResult is the classifier output for a single item. Ephemeral,
// produced fresh per item and never persisted.
type IntentResult struct {
	HasPurchaseIntent bool       `json:"has_purchase_intent"`
	Confidence        float64    `json:"confidence"` // [0,1]
	ProductQuery      string     `json:"product_query"`
	IntentType        IntentType `json:"intent_type"`
	Summary           string     `json:"summary"`
}

// SafeIntentDefault is what the classifier degrades to on any malformed or
// out-of-domain model response
func SafeIntentDefault() IntentResult {
	return IntentResult{HasPurchaseIntent: false, Confidence: 0}
}

// MatchResult is the unit handed to the notifier: the originating item, its
// classification and the (possibly absent) catalog resolution. Constructed
// once, consumed once, not retried.
type MatchResult struct {
	Item    FeedItem
	Intent  IntentResult
	Product *ProductMatch // nil means "no match", a valid outcome
}
