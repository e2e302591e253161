package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grimdealz/dealscout/pkg/config"
	"github.com/grimdealz/dealscout/pkg/domain"
)

func llmServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		resp := openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp) //nolint:errcheck
	}))
}

func testLLMConfig(endpoint string) config.LLMConfig {
	return config.LLMConfig{
		Endpoint:    endpoint + "/v1",
		APIKey:      "test-key",
		Model:       "gpt-4o-mini",
		Temperature: 0.1,
		MaxTokens:   300,
		UseJSONMode: false,
		MaxTextLen:  2000,
	}
}

func TestClassifier_Classify(t *testing.T) {
	server := llmServer(t, `{
		"has_purchase_intent": true,
		"confidence": 0.85,
		"product_query": "Combat Patrol Necrons",
		"intent_type": "buying",
		"summary": "wants to buy the Necrons Combat Patrol box"
	}`)
	defer server.Close()

	classifier := NewClassifier(testLLMConfig(server.URL))

	item := domain.FeedItem{
		Fullname: "t3_abc",
		Source:   "Warhammer40k",
		Author:   "buyer1",
		Title:    "Looking to buy Combat Patrol",
		Body:     "thinking about the Necrons one, any advice?",
	}

	result, err := classifier.Classify(context.Background(), item)
	require.NoError(t, err)
	assert.True(t, result.HasPurchaseIntent)
	assert.InDelta(t, 0.85, result.Confidence, 0.001)
	assert.Equal(t, "Combat Patrol Necrons", result.ProductQuery)
	assert.Equal(t, domain.IntentBuying, result.IntentType)
	assert.Equal(t, "wants to buy the Necrons Combat Patrol box", result.Summary)
}

func TestClassifier_ClassifyWrappedInProse(t *testing.T) {
	server := llmServer(t, "Here is my analysis:\n```json\n"+
		`{"has_purchase_intent": true, "confidence": 0.7, "product_query": "Leviathan", "intent_type": "price_check", "summary": "price check"}`+
		"\n```")
	defer server.Close()

	classifier := NewClassifier(testLLMConfig(server.URL))

	result, err := classifier.Classify(context.Background(), domain.FeedItem{Fullname: "t1_x", Body: "how much is leviathan"})
	require.NoError(t, err)
	assert.True(t, result.HasPurchaseIntent)
	assert.Equal(t, domain.IntentPriceCheck, result.IntentType)
}

func TestClassifier_ClassifyNegative(t *testing.T) {
	server := llmServer(t, `{"has_purchase_intent": false, "confidence": 0.9, "product_query": "", "intent_type": "", "summary": "painting showcase"}`)
	defer server.Close()

	classifier := NewClassifier(testLLMConfig(server.URL))

	result, err := classifier.Classify(context.Background(), domain.FeedItem{Fullname: "t3_p", Body: "painted my leviathan"})
	require.NoError(t, err)
	assert.False(t, result.HasPurchaseIntent)
	assert.InDelta(t, 0.9, result.Confidence, 0.001)
	assert.Empty(t, result.IntentType)
}

func TestClassifier_MalformedResponsesDegradeToSafeDefault(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "not json at all", content: "I think the author wants to buy something."},
		{name: "broken json", content: `{"has_purchase_intent": true, "confidence":`},
		{name: "missing intent flag", content: `{"confidence": 0.8, "product_query": "x", "intent_type": "buying"}`},
		{name: "missing confidence", content: `{"has_purchase_intent": true, "product_query": "x", "intent_type": "buying"}`},
		{name: "confidence out of range", content: `{"has_purchase_intent": true, "confidence": 1.5, "product_query": "x", "intent_type": "buying"}`},
		{name: "out-of-domain intent type", content: `{"has_purchase_intent": true, "confidence": 0.8, "product_query": "x", "intent_type": "selling"}`},
		{name: "empty response", content: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := llmServer(t, tt.content)
			defer server.Close()

			classifier := NewClassifier(testLLMConfig(server.URL))

			result, err := classifier.Classify(context.Background(), domain.FeedItem{Fullname: "t3_x", Body: "wtb stuff"})
			require.NoError(t, err, "malformed output is not an error")
			assert.False(t, result.HasPurchaseIntent)
			assert.Zero(t, result.Confidence)
		})
	}
}

func TestClassifier_TransportErrorPropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	classifier := NewClassifier(testLLMConfig(server.URL))

	_, err := classifier.Classify(context.Background(), domain.FeedItem{Fullname: "t3_x", Body: "wtb"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "llm request failed")
}

func TestClassifier_StalledEndpointFailsWithinTimeout(t *testing.T) {
	// endpoint accepts the request and never responds; the body must be
	// drained so the server notices the client disconnect and unblocks
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body) //nolint:errcheck
		<-r.Context().Done()
	}))
	defer server.Close()

	cfg := testLLMConfig(server.URL)
	cfg.Timeout = 100 * time.Millisecond
	classifier := NewClassifier(cfg)

	started := time.Now()
	_, err := classifier.Classify(context.Background(), domain.FeedItem{Fullname: "t3_x", Body: "wtb"})
	elapsed := time.Since(started)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "llm request failed")
	assert.Less(t, elapsed, 2*time.Second, "a hung completion must fail the item, not stall the pass")
}

func TestClassifier_TruncatesLongText(t *testing.T) {
	var gotPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotPrompt = req.Messages[1].Content

		resp := openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: `{"has_purchase_intent": false, "confidence": 1}`}},
			},
		}
		json.NewEncoder(w).Encode(resp) //nolint:errcheck
	}))
	defer server.Close()

	cfg := testLLMConfig(server.URL)
	cfg.MaxTextLen = 50
	classifier := NewClassifier(cfg)

	long := make([]byte, 500)
	for i := range long {
		long[i] = 'a'
	}

	_, err := classifier.Classify(context.Background(), domain.FeedItem{Fullname: "t3_x", Source: "Warhammer40k", Author: "verbose", Body: string(long)})
	require.NoError(t, err)
	assert.Contains(t, gotPrompt, "Source: r/Warhammer40k")
	assert.Contains(t, gotPrompt, "...")
	assert.Less(t, len(gotPrompt), 200)
}

func TestParseIntentResponse(t *testing.T) {
	result, err := parseIntentResponse(`{"has_purchase_intent": true, "confidence": 0.6, "product_query": "Intercessors", "intent_type": "recommendation", "summary": "asking what to get"}`)
	require.NoError(t, err)
	assert.Equal(t, domain.IntentRecommendation, result.IntentType)
	assert.Equal(t, "Intercessors", result.ProductQuery)

	_, err = parseIntentResponse(`"just a string"`)
	require.Error(t, err)
}
