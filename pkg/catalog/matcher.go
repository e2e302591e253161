package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-pkgz/lgr"

	"github.com/grimdealz/dealscout/pkg/domain"
)

//go:generate moq -out mocks/product_store.go -pkg mocks -skip-ensure -fmt goimports . ProductStore

// ProductStore is the read-only catalog query surface the matcher needs
type ProductStore interface {
	SearchByName(ctx context.Context, query string) ([]domain.Product, error)
	SearchByTokens(ctx context.Context, tokens []string) ([]domain.Product, error)
	BestListing(ctx context.Context, productID string) (*domain.Listing, error)
}

// minTokenLen filters insignificant tokens from stage-two matching
const minTokenLen = 3

// Matcher resolves a free-text product query to the best catalog candidate
// using staged text matching
type Matcher struct {
	store ProductStore
}

// NewMatcher creates a matcher over the given store
func NewMatcher(store ProductStore) *Matcher {
	return &Matcher{store: store}
}

// FindMatch resolves query in two stages, stopping at the first stage with
// candidates: (1) full-query substring against product names, (2) every
// significant token must match (AND). Shortest matching name wins the
// tie-break: a shorter name is a more specific product than a longer one
// that happens to contain the same terms. Returns nil, nil when nothing
// matches - "no match" is an expected outcome, not an error.
func (m *Matcher) FindMatch(ctx context.Context, query string) (*domain.ProductMatch, error) {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return nil, nil
	}

	candidates, err := m.store.SearchByName(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("stage one search %q: %w", query, err)
	}

	if len(candidates) == 0 {
		tokens := significantTokens(query)
		if len(tokens) == 0 {
			return nil, nil
		}
		candidates, err = m.store.SearchByTokens(ctx, tokens)
		if err != nil {
			return nil, fmt.Errorf("stage two search %q: %w", query, err)
		}
	}

	if len(candidates) == 0 {
		lgr.Printf("[DEBUG] no catalog match for %q", query)
		return nil, nil
	}

	winner := candidates[0]
	for _, c := range candidates[1:] {
		if len(c.Name) < len(winner.Name) {
			winner = c
		}
	}

	match := &domain.ProductMatch{
		ProductID: winner.ID,
		Name:      winner.Name,
		Slug:      winner.Slug,
		RRPUSD:    winner.RRPUSD,
	}

	listing, err := m.store.BestListing(ctx, winner.ID)
	if err != nil {
		return nil, fmt.Errorf("best listing for %q: %w", winner.Name, err)
	}
	if listing != nil {
		price := listing.Price
		match.BestPrice = &price
		match.BestStore = listing.StoreName
		match.BestURL = listing.URL

		discount := listing.DiscountPct
		if discount == 0 && winner.RRPUSD > 0 && price < winner.RRPUSD {
			// scrapers normally store discount_pct; derive it from RRP when absent
			discount = (winner.RRPUSD - price) / winner.RRPUSD * 100
		}
		match.DiscountPct = &discount
	}

	return match, nil
}

// significantTokens splits the query into lowercase tokens of minTokenLen or
// longer, dropping punctuation-only fragments
func significantTokens(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, `.,:;!?"'()[]`)
		if len(f) >= minTokenLen {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
