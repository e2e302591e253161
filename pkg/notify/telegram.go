// Package notify dispatches pipeline notifications to a Telegram chat via
// the Bot API. Three message kinds: match found, error, pass summary.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"

	"github.com/grimdealz/dealscout/pkg/config"
	"github.com/grimdealz/dealscout/pkg/domain"
)

// errPermanent marks dispatch failures repeater must not retry
var errPermanent = errors.New("permanent telegram error")

// Telegram sends MarkdownV2 messages to a fixed chat
type Telegram struct {
	cfg    config.TelegramConfig
	client *http.Client
}

// NewTelegram creates a notifier from config
func NewTelegram(cfg config.TelegramConfig) *Telegram {
	return &Telegram{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// SendMatch dispatches a purchase-intent match notification. Failures
// propagate to the orchestrator, which isolates them per item.
func (t *Telegram) SendMatch(ctx context.Context, match domain.MatchResult) error {
	return t.send(ctx, formatMatch(match))
}

// SendError notifies about a pipeline error. Dispatch failures are logged
// only: reporting an error must never crash the process.
func (t *Telegram) SendError(ctx context.Context, msg string) {
	text := fmt.Sprintf("⚠️ *dealscout error*\n%s", escapeMarkdownV2(msg))
	if err := t.send(ctx, text); err != nil {
		lgr.Printf("[WARN] failed to send error notification: %v", err)
	}
}

// SendSummary dispatches the end-of-pass aggregate counts
func (t *Telegram) SendSummary(ctx context.Context, stats domain.PassStats) error {
	return t.send(ctx, formatSummary(stats))
}

// formatMatch renders one MatchResult; every item/product-derived value goes
// through escaping before interpolation
func formatMatch(match domain.MatchResult) string {
	var sb strings.Builder

	intentKind := string(match.Intent.IntentType)
	if intentKind == "" {
		intentKind = "unknown"
	}
	sb.WriteString("🛒 *Purchase intent detected*\n")
	sb.WriteString(fmt.Sprintf("r/%s — u/%s \\(%s, %s confidence\\)\n",
		escapeMarkdownV2(match.Item.Source),
		escapeMarkdownV2(match.Item.Author),
		escapeMarkdownV2(intentKind),
		escapeMarkdownV2(fmt.Sprintf("%.0f%%", match.Intent.Confidence*100))))

	if match.Intent.Summary != "" {
		sb.WriteString(fmt.Sprintf("_%s_\n", escapeMarkdownV2(match.Intent.Summary)))
	}
	sb.WriteString(fmt.Sprintf("Query: %s\n", escapeMarkdownV2(match.Intent.ProductQuery)))

	if match.Product == nil {
		sb.WriteString("No catalog match\n")
	} else {
		line := fmt.Sprintf("Matched: *%s*", escapeMarkdownV2(match.Product.Name))
		if match.Product.BestPrice != nil {
			line += fmt.Sprintf(" — %s at %s",
				escapeMarkdownV2(fmt.Sprintf("$%.2f", *match.Product.BestPrice)),
				escapeMarkdownV2(match.Product.BestStore))
			if match.Product.DiscountPct != nil && *match.Product.DiscountPct > 0 {
				line += fmt.Sprintf(" \\(%s off RRP %s\\)",
					escapeMarkdownV2(fmt.Sprintf("%.0f%%", *match.Product.DiscountPct)),
					escapeMarkdownV2(fmt.Sprintf("$%.2f", match.Product.RRPUSD)))
			}
		} else {
			line += " — no store has it in stock"
		}
		sb.WriteString(line + "\n")
		if match.Product.BestURL != "" {
			sb.WriteString(escapeMarkdownV2(match.Product.BestURL) + "\n")
		}
	}

	sb.WriteString(escapeMarkdownV2(match.Item.Permalink))
	return sb.String()
}

// formatSummary renders the pass summary counts
func formatSummary(stats domain.PassStats) string {
	fetched, newItems, filtered, matched, notified, errCount, skipped := stats.Totals()

	var sb strings.Builder
	sb.WriteString("📊 *Pass summary*\n")
	sb.WriteString(fmt.Sprintf("sources: %d \\(%d skipped\\)\n", len(stats.Sources), skipped))
	sb.WriteString(fmt.Sprintf("items: %d fetched, %d new, %d past prefilter\n", fetched, newItems, filtered))
	sb.WriteString(fmt.Sprintf("matches: %d, notified: %d, errors: %d\n", matched, notified, errCount))
	sb.WriteString(fmt.Sprintf("duration: %s", escapeMarkdownV2(stats.Duration.Round(time.Millisecond).String())))
	return sb.String()
}

// sendMessageRequest is the Bot API sendMessage payload
type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

// send POSTs one message, retrying transient 429/5xx with backoff
func (t *Telegram) send(ctx context.Context, text string) error {
	payload, err := json.Marshal(sendMessageRequest{
		ChatID:                t.cfg.ChatID,
		Text:                  text,
		ParseMode:             "MarkdownV2",
		DisableWebPagePreview: true,
	})
	if err != nil {
		return fmt.Errorf("marshal telegram message: %w", err)
	}

	reqURL := fmt.Sprintf("%s/bot%s/sendMessage", t.cfg.APIURL, t.cfg.Token)

	retrier := repeater.NewBackoff(3, 500*time.Millisecond, repeater.WithMaxDelay(5*time.Second))
	return retrier.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("%w: create request: %v", errPermanent, err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := t.client.Do(req)
		if err != nil {
			return fmt.Errorf("telegram request: %w", err)
		}
		defer resp.Body.Close() //nolint:errcheck // read-only body

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("telegram transient status %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			return fmt.Errorf("%w: telegram status %d: %s", errPermanent, resp.StatusCode, strings.TrimSpace(string(body)))
		}
		return nil
	}, errPermanent)
}

// markdownV2Escaper covers Telegram's full reserved set for MarkdownV2
var markdownV2Escaper = strings.NewReplacer(
	`\`, `\\`,
	"_", `\_`, "*", `\*`, "[", `\[`, "]", `\]`, "(", `\(`, ")", `\)`,
	"~", `\~`, "`", "\\`", ">", `\>`, "#", `\#`, "+", `\+`, "-", `\-`,
	"=", `\=`, "|", `\|`, "{", `\{`, "}", `\}`, ".", `\.`, "!", `\!`,
)

// escapeMarkdownV2 escapes characters meaningful to Telegram MarkdownV2
func escapeMarkdownV2(s string) string {
	return markdownV2Escaper.Replace(s)
}
