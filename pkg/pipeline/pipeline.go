// Package pipeline drives the signal ingestion passes: fetch new items per
// source, prefilter, classify, match against the catalog, notify, then
// persist the advanced cursors once per pass.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/grimdealz/dealscout/pkg/domain"
	"github.com/grimdealz/dealscout/pkg/reddit"
)

//go:generate moq -out mocks/feed_client.go -pkg mocks -skip-ensure -fmt goimports . FeedClient
//go:generate moq -out mocks/classifier.go -pkg mocks -skip-ensure -fmt goimports . Classifier
//go:generate moq -out mocks/matcher.go -pkg mocks -skip-ensure -fmt goimports . Matcher
//go:generate moq -out mocks/notifier.go -pkg mocks -skip-ensure -fmt goimports . Notifier
//go:generate moq -out mocks/state_store.go -pkg mocks -skip-ensure -fmt goimports . StateStore
//go:generate moq -out mocks/prefilter.go -pkg mocks -skip-ensure -fmt goimports . Prefilter

// FeedClient fetches newest-first listings per source
type FeedClient interface {
	FetchNewPosts(ctx context.Context, source string, limit int) ([]domain.FeedItem, error)
	FetchNewComments(ctx context.Context, source string, limit int) ([]domain.FeedItem, error)
}

// Prefilter screens items before classification
type Prefilter interface {
	Passes(item domain.FeedItem) bool
}

// Classifier detects purchase intent for one item
type Classifier interface {
	Classify(ctx context.Context, item domain.FeedItem) (domain.IntentResult, error)
}

// Matcher resolves a product query against the catalog
type Matcher interface {
	FindMatch(ctx context.Context, query string) (*domain.ProductMatch, error)
}

// Notifier dispatches match, error and summary messages
type Notifier interface {
	SendMatch(ctx context.Context, match domain.MatchResult) error
	SendError(ctx context.Context, msg string)
	SendSummary(ctx context.Context, stats domain.PassStats) error
}

// StateStore persists the cursor state between passes
type StateStore interface {
	Load() (*domain.PipelineState, error)
	Save(state *domain.PipelineState) error
}

// Config holds pipeline configuration
type Config struct {
	Sources             []string
	PollInterval        time.Duration
	FetchLimit          int
	SeedCount           int
	ConfidenceThreshold float64
	MaxWorkers          int
}

// Pipeline owns the collaborators and runs passes. State is mutated only at
// pass boundaries: one load at the start, one save after all sources finish.
type Pipeline struct {
	feed       FeedClient
	prefilter  Prefilter
	classifier Classifier
	matcher    Matcher
	notifier   Notifier
	store      StateStore
	cfg        Config

	mu       sync.RWMutex
	lastPass *domain.PassStats
	cursors  *domain.PipelineState
}

// New creates a pipeline with the given collaborators
func New(feed FeedClient, prefilter Prefilter, classifier Classifier, matcher Matcher, notifier Notifier, store StateStore, cfg Config) *Pipeline {
	if cfg.FetchLimit == 0 {
		cfg.FetchLimit = 50
	}
	if cfg.SeedCount == 0 {
		cfg.SeedCount = 10
	}
	if cfg.MaxWorkers == 0 {
		cfg.MaxWorkers = 1
	}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = 5 * time.Minute
	}

	return &Pipeline{
		feed:       feed,
		prefilter:  prefilter,
		classifier: classifier,
		matcher:    matcher,
		notifier:   notifier,
		store:      store,
		cfg:        cfg,
	}
}

// Run executes passes until the context is canceled: one immediately, then
// one per poll interval. Pass failures are logged, the loop keeps going.
func (p *Pipeline) Run(ctx context.Context) error {
	lgr.Printf("[INFO] pipeline started, %d sources, poll interval %v", len(p.cfg.Sources), p.cfg.PollInterval)

	if _, err := p.RunPass(ctx); err != nil {
		lgr.Printf("[ERROR] pass failed: %v", err)
	}

	ticker := time.NewTicker(p.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			lgr.Printf("[INFO] pipeline stopped")
			return nil
		case <-ticker.C:
			if _, err := p.RunPass(ctx); err != nil {
				lgr.Printf("[ERROR] pass failed: %v", err)
			}
		}
	}
}

// RunPass processes every configured source once. Sources run under a
// bounded errgroup; cursors are merged into a single in-memory state and
// saved exactly once after all sources finish. Per-source failures skip that
// source without advancing its cursor and without aborting the pass.
func (p *Pipeline) RunPass(ctx context.Context) (domain.PassStats, error) {
	started := time.Now()
	stats := domain.PassStats{StartedAt: started}

	st, err := p.store.Load()
	if err != nil {
		return stats, fmt.Errorf("load state: %w", err)
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.MaxWorkers)

	for _, source := range p.cfg.Sources {
		g.Go(func() error {
			srcStats, cursor := p.processSource(gctx, source, st.Cursor(source))
			mu.Lock()
			defer mu.Unlock()
			stats.Add(srcStats)
			if cursor != nil {
				st.SetCursor(source, *cursor)
			}
			return nil
		})
	}
	_ = g.Wait() // source errors never propagate, they are recorded in stats

	if err := p.store.Save(st); err != nil {
		// losing a cursor save means duplicates next pass, not lost items
		lgr.Printf("[ERROR] failed to save state: %v", err)
		p.notifier.SendError(ctx, fmt.Sprintf("failed to save cursor state: %v", err))
	}

	stats.Duration = time.Since(started)

	if err := p.notifier.SendSummary(ctx, stats); err != nil {
		lgr.Printf("[WARN] failed to send pass summary: %v", err)
	}

	p.mu.Lock()
	p.lastPass = &stats
	p.cursors = st
	p.mu.Unlock()

	fetched, newItems, filtered, matched, notified, errCount, skipped := stats.Totals()
	lgr.Printf("[INFO] pass completed in %v: %d fetched, %d new, %d past prefilter, %d matched, %d notified, %d errors, %d sources skipped",
		stats.Duration.Round(time.Millisecond), fetched, newItems, filtered, matched, notified, errCount, skipped)
	return stats, nil
}

// processSource runs one source through fetch, filter, classify, match and
// notify. The returned cursor is nil when the fetch failed, leaving the
// stored cursor untouched; otherwise it advances to the newest raw fetched
// ids regardless of downstream per-item failures.
func (p *Pipeline) processSource(ctx context.Context, source string, cursor domain.SourceCursor) (domain.SourceStats, *domain.SourceCursor) {
	stats := domain.SourceStats{Source: source}

	posts, err := p.feed.FetchNewPosts(ctx, source, p.cfg.FetchLimit)
	if err != nil {
		return p.skipSource(ctx, source, "fetch posts", err), nil
	}
	comments, err := p.feed.FetchNewComments(ctx, source, p.cfg.FetchLimit)
	if err != nil {
		return p.skipSource(ctx, source, "fetch comments", err), nil
	}
	stats.Fetched = len(posts) + len(comments)

	newPosts := reddit.SelectNewItems(posts, cursor.LastPostID, p.cfg.SeedCount)
	newComments := reddit.SelectNewItems(comments, cursor.LastCommentID, p.cfg.SeedCount)
	stats.New = len(newPosts) + len(newComments)

	items := make([]domain.FeedItem, 0, stats.New)
	items = append(items, newPosts...)
	items = append(items, newComments...)

	for _, item := range items {
		if !p.prefilter.Passes(item) {
			continue
		}
		stats.Filtered++
		p.processItem(ctx, item, &stats)
	}

	// advance to the newest raw fetch ids, not the newest filtered item:
	// matching rules may change without re-scanning history
	next := cursor
	if len(posts) > 0 {
		next.LastPostID = posts[0].Fullname
	}
	if len(comments) > 0 {
		next.LastCommentID = comments[0].Fullname
	}
	next.LastRunAt = time.Now().UTC()

	lgr.Printf("[DEBUG] source r/%s: %d fetched, %d new, %d past prefilter", source, stats.Fetched, stats.New, stats.Filtered)
	return stats, &next
}

// processItem classifies one item and notifies on a confident match.
// Failures are isolated: logged, counted, the rest of the source continues.
func (p *Pipeline) processItem(ctx context.Context, item domain.FeedItem, stats *domain.SourceStats) {
	result, err := p.classifier.Classify(ctx, item)
	if err != nil {
		lgr.Printf("[WARN] classify %s failed: %v", item.Fullname, err)
		stats.Errors++
		return
	}
	stats.Classified++

	if !result.HasPurchaseIntent || result.Confidence < p.cfg.ConfidenceThreshold {
		return
	}
	stats.Matched++

	match := domain.MatchResult{Item: item, Intent: result}
	if result.ProductQuery != "" {
		product, err := p.matcher.FindMatch(ctx, result.ProductQuery)
		if err != nil {
			lgr.Printf("[WARN] catalog match for %s (%q) failed: %v", item.Fullname, result.ProductQuery, err)
			stats.Errors++
			return
		}
		match.Product = product // nil product means "no match", still notified
	}

	if err := p.notifier.SendMatch(ctx, match); err != nil {
		lgr.Printf("[WARN] notify for %s failed: %v", item.Fullname, err)
		stats.Errors++
		return
	}
	stats.Notified++
}

// skipSource records a fetch/auth failure for one source. Auth failures get
// an operator notification, the cursor stays put either way.
func (p *Pipeline) skipSource(ctx context.Context, source, stage string, err error) domain.SourceStats {
	lgr.Printf("[WARN] source r/%s skipped: %s: %v", source, stage, err)
	if errors.Is(err, reddit.ErrAuth) {
		p.notifier.SendError(ctx, fmt.Sprintf("r/%s skipped: authentication failed", source))
	}
	return domain.SourceStats{Source: source, Skipped: true, SkipReason: fmt.Sprintf("%s: %v", stage, err)}
}

// LastPass returns the stats of the most recently completed pass
func (p *Pipeline) LastPass() (domain.PassStats, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.lastPass == nil {
		return domain.PassStats{}, false
	}
	return *p.lastPass, true
}

// Cursors returns a copy of the cursor state after the last completed pass
func (p *Pipeline) Cursors() *domain.PipelineState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.cursors == nil {
		return domain.NewPipelineState()
	}
	out := domain.NewPipelineState()
	for source, cursor := range p.cursors.Sources {
		out.SetCursor(source, cursor)
	}
	return out
}
