// Package reddit is the feed client: it authenticates against the Reddit
// OAuth2 API with the script-app password grant and fetches newest-first
// listings of posts and comments per subreddit.
package reddit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"
	"github.com/microcosm-cc/bluemonday"

	"github.com/grimdealz/dealscout/pkg/config"
	"github.com/grimdealz/dealscout/pkg/domain"
)

// ErrAuth marks authentication failures. Non-retryable within a pass: the
// orchestrator skips the source and keeps its cursor unchanged.
var ErrAuth = errors.New("reddit authentication failed")

// errPermanent marks non-auth failures repeater must not retry
var errPermanent = errors.New("permanent reddit error")

// tokenSafetyMargin forces re-auth this long before the token actually expires
const tokenSafetyMargin = 60 * time.Second

// Client talks to the Reddit API. The access token is cached on the client
// and refreshed transparently; the client is owned by the orchestrator and
// passed into each source's processing, not shared global state.
type Client struct {
	cfg       config.RedditConfig
	client    *http.Client
	sanitizer *bluemonday.Policy

	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
}

// NewClient creates a reddit client from config
func NewClient(cfg config.RedditConfig) *Client {
	return &Client{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// FetchNewPosts returns the newest posts for a subreddit, newest first
func (c *Client) FetchNewPosts(ctx context.Context, subreddit string, limit int) ([]domain.FeedItem, error) {
	return c.fetchListing(ctx, subreddit, fmt.Sprintf("/r/%s/new", subreddit), domain.KindPost, limit)
}

// FetchNewComments returns the newest comments for a subreddit, newest first
func (c *Client) FetchNewComments(ctx context.Context, subreddit string, limit int) ([]domain.FeedItem, error) {
	return c.fetchListing(ctx, subreddit, fmt.Sprintf("/r/%s/comments", subreddit), domain.KindComment, limit)
}

// tokenResponse is the OAuth2 token endpoint reply. Reddit reports bad
// credentials with a 200 status and an error field, so both are checked.
type tokenResponse struct {
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
	ExpiresIn   float64 `json:"expires_in"`
	Error       string  `json:"error"`
}

// listingResponse is the common shape of /new and /comments replies
type listingResponse struct {
	Data struct {
		Children []struct {
			Kind string      `json:"kind"`
			Data listingItem `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// listingItem covers both post (t3) and comment (t1) payload fields
type listingItem struct {
	Name         string  `json:"name"` // fullname, e.g. t3_abc or t1_xyz
	Subreddit    string  `json:"subreddit"`
	Author       string  `json:"author"`
	Title        string  `json:"title"`    // posts only
	SelfText     string  `json:"selftext"` // posts only
	SelfTextHTML string  `json:"selftext_html"`
	Body         string  `json:"body"` // comments only
	BodyHTML     string  `json:"body_html"`
	Permalink    string  `json:"permalink"`
	CreatedUTC   float64 `json:"created_utc"`
}

// fetchListing GETs an authenticated listing endpoint and normalizes the
// result. Transient 429/5xx are retried with backoff; auth failures and
// unexpected statuses stop retrying immediately.
func (c *Client) fetchListing(ctx context.Context, subreddit, path string, kind domain.ItemKind, limit int) ([]domain.FeedItem, error) {
	var listing listingResponse

	retrier := repeater.NewBackoff(3, 500*time.Millisecond, repeater.WithMaxDelay(5*time.Second))
	err := retrier.Do(ctx, func() error {
		token, err := c.ensureToken(ctx)
		if err != nil {
			return err
		}

		reqURL := fmt.Sprintf("%s%s?limit=%d&raw_json=1", c.cfg.APIURL, path, limit)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
		if err != nil {
			return fmt.Errorf("%w: create listing request: %v", errPermanent, err)
		}
		req.Header.Set("Authorization", "bearer "+token)
		req.Header.Set("User-Agent", c.cfg.UserAgent)

		resp, err := c.client.Do(req)
		if err != nil {
			return fmt.Errorf("fetch %s: %w", path, err)
		}
		defer resp.Body.Close() //nolint:errcheck // read-only body

		switch {
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			c.invalidateToken()
			return fmt.Errorf("listing %s rejected with status %d: %w", path, resp.StatusCode, ErrAuth)
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
			return fmt.Errorf("fetch %s: transient status %d", path, resp.StatusCode)
		case resp.StatusCode != http.StatusOK:
			return fmt.Errorf("%w: fetch %s: unexpected status %d", errPermanent, path, resp.StatusCode)
		}

		listing = listingResponse{}
		if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
			return fmt.Errorf("%w: decode %s listing: %v", errPermanent, path, err)
		}
		return nil
	}, ErrAuth, errPermanent)
	if err != nil {
		return nil, err
	}

	items := make([]domain.FeedItem, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		items = append(items, c.toFeedItem(subreddit, kind, child.Data))
	}
	lgr.Printf("[DEBUG] fetched %d %ss from r/%s", len(items), kind, subreddit)
	return items, nil
}

// toFeedItem normalizes a raw listing entry
func (c *Client) toFeedItem(subreddit string, kind domain.ItemKind, raw listingItem) domain.FeedItem {
	item := domain.FeedItem{
		Fullname:  raw.Name,
		Kind:      kind,
		Source:    subreddit,
		Author:    raw.Author,
		Permalink: "https://www.reddit.com" + raw.Permalink,
		CreatedAt: time.Unix(int64(raw.CreatedUTC), 0).UTC(),
	}
	if raw.Subreddit != "" {
		item.Source = raw.Subreddit
	}

	if kind == domain.KindPost {
		item.Title = raw.Title
		item.Body = c.normalizeBody(raw.SelfText, raw.SelfTextHTML)
		return item
	}
	item.Body = c.normalizeBody(raw.Body, raw.BodyHTML)
	return item
}

// normalizeBody prefers the plain text body; when only an HTML variant is
// present it is stripped to text before classification.
func (c *Client) normalizeBody(plain, htmlBody string) string {
	if plain != "" {
		return plain
	}
	if htmlBody == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(c.sanitizer.Sanitize(htmlBody)))
}

// ensureToken returns a valid access token, re-authenticating when the cached
// one is absent or within the safety margin of expiry
func (c *Client) ensureToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.expiresAt.Add(-tokenSafetyMargin)) {
		return c.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", c.cfg.Username)
	form.Set("password", c.cfg.Password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create token request: %w", err)
	}
	req.SetBasicAuth(c.cfg.ClientID, c.cfg.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", fmt.Errorf("token endpoint rejected credentials with status %d: %w", resp.StatusCode, ErrAuth)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		// an outage at the token endpoint is not a credential problem
		return "", fmt.Errorf("token endpoint transient status %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("%w: token endpoint returned status %d", errPermanent, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return "", fmt.Errorf("read token response: %w", err)
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return "", fmt.Errorf("parse token response: %w", err)
	}
	// reddit reports invalid_grant with a 200 status
	if token.Error != "" || token.AccessToken == "" {
		return "", fmt.Errorf("token endpoint error %q: %w", token.Error, ErrAuth)
	}

	c.accessToken = token.AccessToken
	c.expiresAt = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	lgr.Printf("[DEBUG] reddit token refreshed, expires in %s", strconv.FormatFloat(token.ExpiresIn, 'f', 0, 64)+"s")
	return c.accessToken, nil
}

// invalidateToken drops the cached token so the next call re-authenticates
func (c *Client) invalidateToken() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = ""
	c.expiresAt = time.Time{}
}
