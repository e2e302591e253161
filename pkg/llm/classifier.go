// Package llm wraps the LLM call confirming purchase intent for a single
// feed item. Malformed model output degrades to a safe default instead of
// failing the item: classification ambiguity is a normal operating condition.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-pkgz/lgr"
	"github.com/sashabaranov/go-openai"

	"github.com/grimdealz/dealscout/pkg/config"
	"github.com/grimdealz/dealscout/pkg/domain"
)

// Classifier detects purchase intent with a single LLM request per item
type Classifier struct {
	client    *openai.Client
	config    config.LLMConfig
	systemMsg string
}

// NewClassifier creates a new LLM classifier
func NewClassifier(cfg config.LLMConfig) *Classifier {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}
	if cfg.Timeout > 0 {
		// a hung completion must fail the item, not stall the whole pass
		clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Classifier{
		client:    openai.NewClientWithConfig(clientConfig),
		config:    cfg,
		systemMsg: defaultSystemPrompt,
	}
}

// default system prompt pinning the strict single-object JSON contract
const defaultSystemPrompt = `You are an assistant that detects purchase intent in discussion posts and comments about Warhammer and other miniature wargaming products.

Given one post or comment, decide whether the author wants to buy a product, is checking a price, or is asking for a purchase recommendation. Painting showcases, battle reports, rules questions and sold/completed trades are NOT purchase intent.

Respond with a single JSON object and nothing else:
{
  "has_purchase_intent": true or false,
  "confidence": number between 0 and 1,
  "product_query": "the product the author wants, suitable as a catalog search query, empty if none",
  "intent_type": "buying" | "price_check" | "recommendation",
  "summary": "one line describing what the author wants"
}

If there is no purchase intent, set has_purchase_intent to false, confidence to your certainty of that judgment, and leave product_query empty.`

// Classify sends one request for the item and parses the strict JSON reply.
// Transport failures return an error; malformed or out-of-domain replies are
// logged and resolved to the safe default with a nil error.
func (c *Classifier) Classify(ctx context.Context, item domain.FeedItem) (domain.IntentResult, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.config.Model,
		Temperature: float32(c.config.Temperature),
		MaxTokens:   c.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: c.systemMsg},
			{Role: openai.ChatMessageRoleUser, Content: c.buildPrompt(item)},
		},
	}
	if c.config.UseJSONMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return domain.SafeIntentDefault(), fmt.Errorf("llm request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return domain.SafeIntentDefault(), fmt.Errorf("no response from llm")
	}

	result, err := parseIntentResponse(resp.Choices[0].Message.Content)
	if err != nil {
		lgr.Printf("[WARN] unusable classification for %s, using safe default: %v", item.Fullname, err)
		return domain.SafeIntentDefault(), nil
	}
	return result, nil
}

// buildPrompt renders one item for the user message, truncating long bodies
func (c *Classifier) buildPrompt(item domain.FeedItem) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Source: r/%s\n", item.Source))
	sb.WriteString(fmt.Sprintf("Author: %s\n", item.Author))
	if item.Title != "" {
		sb.WriteString(fmt.Sprintf("Title: %s\n", item.Title))
	}

	text := item.Body
	if c.config.MaxTextLen > 0 && len(text) > c.config.MaxTextLen {
		text = text[:c.config.MaxTextLen] + "..."
	}
	sb.WriteString(fmt.Sprintf("Text: %s\n", text))
	return sb.String()
}

// rawIntent mirrors the wire contract with pointers so absent fields are
// distinguishable from zero values
type rawIntent struct {
	HasPurchaseIntent *bool    `json:"has_purchase_intent"`
	Confidence        *float64 `json:"confidence"`
	ProductQuery      string   `json:"product_query"`
	IntentType        string   `json:"intent_type"`
	Summary           string   `json:"summary"`
}

// parseIntentResponse validates the model reply against the IntentResult
// shape. Anything short of a complete, in-domain object is an error the
// caller resolves to the safe default.
func parseIntentResponse(content string) (domain.IntentResult, error) {
	// models occasionally wrap the object in prose or code fences
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || start >= end {
		return domain.IntentResult{}, fmt.Errorf("no json object found in response")
	}

	var raw rawIntent
	if err := json.Unmarshal([]byte(content[start:end+1]), &raw); err != nil {
		return domain.IntentResult{}, fmt.Errorf("parse json response: %w", err)
	}

	if raw.HasPurchaseIntent == nil {
		return domain.IntentResult{}, fmt.Errorf("has_purchase_intent missing")
	}
	if raw.Confidence == nil {
		return domain.IntentResult{}, fmt.Errorf("confidence missing")
	}
	if *raw.Confidence < 0 || *raw.Confidence > 1 {
		return domain.IntentResult{}, fmt.Errorf("confidence %v out of range", *raw.Confidence)
	}

	result := domain.IntentResult{
		HasPurchaseIntent: *raw.HasPurchaseIntent,
		Confidence:        *raw.Confidence,
		ProductQuery:      strings.TrimSpace(raw.ProductQuery),
		IntentType:        domain.IntentType(raw.IntentType),
		Summary:           strings.TrimSpace(raw.Summary),
	}

	if result.HasPurchaseIntent && !domain.ValidIntentType(result.IntentType) {
		return domain.IntentResult{}, fmt.Errorf("unknown intent_type %q", raw.IntentType)
	}
	if !result.HasPurchaseIntent {
		// negative judgments don't need an intent kind
		result.IntentType = ""
	}
	return result, nil
}
