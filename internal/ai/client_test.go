package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/social-agent/internal/apperr"
	"github.com/social-agent/internal/config"
	"github.com/social-agent/pkg/logger"
	"github.com/social-agent/pkg/ratelimit"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, apiKey string) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(config.AnthropicConfig{
		APIKey:         apiKey,
		Model:          "claude-test",
		BaseURL:        srv.URL,
		RequestTimeout: 5 * time.Second,
	}, ratelimit.NewLimiter(6000, 100), logger.Nop())
}

func TestClient_Complete(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-test",
			"content": [{"type": "text", "text": "  Hello world  "}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 3, "output_tokens": 2}
		}`))
	}, "test-key")

	text, err := client.Complete(context.Background(), CompletionRequest{
		SystemPrompt: "system",
		UserPrompt:   "user",
		MaxTokens:    50,
		Temperature:  TemperatureGeneration,
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello world", text)
}

func TestClient_Complete_MissingKey(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	}, "")

	_, err := client.Complete(context.Background(), CompletionRequest{UserPrompt: "x", MaxTokens: 10})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindConfiguration))
	assert.False(t, called, "no request should be sent without credentials")
}

func TestClient_Complete_ErrorClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		kind   apperr.Kind
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, kind: apperr.KindConfiguration},
		{name: "forbidden", status: http.StatusForbidden, kind: apperr.KindConfiguration},
		{name: "rate limited", status: http.StatusTooManyRequests, kind: apperr.KindTransport},
		{name: "server error", status: http.StatusInternalServerError, kind: apperr.KindTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				calls++
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"type":"error","error":{"type":"api_error","message":"nope"}}`))
			}, "test-key")

			_, err := client.Complete(context.Background(), CompletionRequest{UserPrompt: "x", MaxTokens: 10})
			require.Error(t, err)
			assert.True(t, apperr.Is(err, tt.kind), "got %v", err)
			assert.Equal(t, 1, calls, "completions must not be retried")
		})
	}
}

func TestClient_Complete_Cancelled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}, "test-key")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Complete(ctx, CompletionRequest{UserPrompt: "x", MaxTokens: 10})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindTransport))
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		response string
		expected string
	}{
		{name: "plain object", response: `{"a":1}`, expected: `{"a":1}`},
		{name: "fenced object", response: "```json\n{\"a\":1}\n```", expected: `{"a":1}`},
		{name: "array with prose", response: "Here you go:\n[{\"a\":1}]\nEnjoy", expected: `[{"a":1}]`},
		{name: "no json", response: "nothing here", expected: "nothing here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractJSON(tt.response))
		})
	}
}

func TestDecodeJSON_ParseError(t *testing.T) {
	var v struct{ A int }
	err := DecodeJSON("test", "not json at all", &v)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindParse))
}
