package ai

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/social-agent/internal/apperr"
	"github.com/social-agent/internal/config"
	"github.com/social-agent/pkg/logger"
	"github.com/social-agent/pkg/ratelimit"
)

// Sampling temperatures per task
const (
	TemperatureGeneration = 0.7
	TemperatureTone       = 0.3
	TemperatureIdeas      = 0.8
	TemperatureHashtags   = 0.5
	TemperatureHealth     = 0.1
	TemperatureRanking    = 0.3
)

// CompletionRequest is one system+user prompt exchange
type CompletionRequest struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
	Temperature  float64
}

// Completer is the text-completion backend boundary. Implementations return
// apperr kinds: Configuration for credential problems, Transport for
// everything that went wrong on the wire. They never retry.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// Client implements Completer on top of the Anthropic SDK
type Client struct {
	client      anthropic.Client
	model       string
	timeout     time.Duration
	configured  bool
	rateLimiter *ratelimit.MultiLimiter
	log         *logger.Logger
}

// NewClient creates a new Anthropic client
func NewClient(cfg config.AnthropicConfig, limiter *ratelimit.MultiLimiter, log *logger.Logger) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Client{
		client:      anthropic.NewClient(opts...),
		model:       cfg.Model,
		timeout:     cfg.RequestTimeout,
		configured:  strings.TrimSpace(cfg.APIKey) != "",
		rateLimiter: limiter,
		log:         log.WithComponent("ai"),
	}
}

// Complete sends a message to Claude and returns the response text
func (c *Client) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	const op = "ai.Complete"

	if !c.configured {
		return "", apperr.Configuration(op, errors.New("anthropic API key not configured"))
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx, ratelimit.LimiterAnthropic); err != nil {
			return "", apperr.Transport(op, err)
		}
	}

	c.log.Debug().
		Str("model", c.model).
		Int("max_tokens", req.MaxTokens).
		Float64("temperature", req.Temperature).
		Msg("Sending request to Claude")

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   int64(req.MaxTokens),
		Temperature: anthropic.Float(req.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.UserPrompt)),
		},
	}
	// the API rejects empty text blocks
	if req.SystemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.SystemPrompt}}
	}

	message, err := c.client.Messages.New(ctx, params)
	if err != nil {
		c.log.Error().Err(err).Msg("Claude API error")
		return "", classify(op, err)
	}

	var response strings.Builder
	for _, block := range message.Content {
		if text := block.AsText().Text; text != "" {
			response.WriteString(text)
		}
	}

	c.log.Debug().
		Int("input_tokens", int(message.Usage.InputTokens)).
		Int("output_tokens", int(message.Usage.OutputTokens)).
		Msg("Received Claude response")

	return strings.TrimSpace(response.String()), nil
}

// classify maps SDK errors onto the pipeline error kinds
func classify(op string, err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return apperr.Configuration(op, err)
		}
	}
	return apperr.Transport(op, err)
}

var _ Completer = (*Client)(nil)
